package handlers

import (
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"github.com/jirani/uchunguzi/internal/database"
	"github.com/jirani/uchunguzi/internal/logging"
	"github.com/jirani/uchunguzi/internal/models"
	"github.com/jirani/uchunguzi/internal/workbook"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// HandleDownload streams the full survey table as an .xlsx attachment with
// duplicate rows highlighted.
// GET /download
func HandleDownload(c fiber.Ctx) error {
	rows, err := models.FetchAll(database.DB)
	if err != nil {
		logging.L().Error("failed to load rows for download", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"error": "Error generating download"})
	}

	data, err := workbook.Export(rows)
	if err != nil {
		logging.L().Error("failed to build export workbook", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"error": "Error generating download"})
	}

	c.Set("Content-Type", xlsxContentType)
	c.Set("Content-Disposition", `attachment; filename="survey_data.xlsx"`)
	return c.Send(data)
}
