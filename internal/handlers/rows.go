package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"github.com/jirani/uchunguzi/internal/database"
	"github.com/jirani/uchunguzi/internal/logging"
	"github.com/jirani/uchunguzi/internal/models"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
}

func (p *RowPayload) toResponse() models.SurveyResponse {
	return models.SurveyResponse{
		PhoneNumber:      p.PhoneNumber,
		EFD:              p.EFD,
		JobCategory:      p.JobCategory,
		EmploymentStatus: p.EmploymentStatus,
		Sex:              p.Sex,
		Status:           p.Status,
		Q1:               p.Q1,
		Q2:               p.Q2,
		Q3:               p.Q3,
	}
}

func decodeRowPayload(c fiber.Ctx) (*RowPayload, error) {
	var payload RowPayload
	if err := json.Unmarshal(c.Body(), &payload); err != nil {
		return nil, errors.New("Invalid JSON payload")
	}
	if err := validate.Struct(payload); err != nil {
		return nil, errors.New("Invalid field values")
	}
	return &payload, nil
}

// HandleAddRow inserts a single survey response.
// POST /api/data
func HandleAddRow(c fiber.Ctx) error {
	payload, err := decodeRowPayload(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	row := payload.toResponse()
	if err := models.Insert(database.DB, &row); err != nil {
		logging.L().Error("failed to add survey response", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"error": "Error adding data"})
	}

	return c.Status(201).JSON(fiber.Map{"message": "Data added successfully"})
}

// HandleUpdateRow rewrites every survey column of one response.
// PUT /api/data/:id
func HandleUpdateRow(c fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid row ID"})
	}

	payload, err := decodeRowPayload(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	row := payload.toResponse()
	if err := models.Update(database.DB, id, &row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.Status(404).JSON(fiber.Map{"error": "Row not found"})
		}
		logging.L().Error("failed to update survey response",
			zap.Int64("id", id), zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"error": "Error updating data"})
	}

	return c.JSON(fiber.Map{"message": "Data updated successfully"})
}

// HandleDeleteRow removes one response.
// DELETE /api/data/:id
func HandleDeleteRow(c fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid row ID"})
	}

	if err := models.Delete(database.DB, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.Status(404).JSON(fiber.Map{"error": "Row not found"})
		}
		logging.L().Error("failed to delete survey response",
			zap.Int64("id", id), zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"error": "Error deleting data"})
	}

	return c.JSON(fiber.Map{"message": "Data deleted successfully"})
}
