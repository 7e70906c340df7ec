package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jirani/uchunguzi/internal/database"
	"github.com/jirani/uchunguzi/internal/logging"
	"github.com/jirani/uchunguzi/internal/models"
	"github.com/jirani/uchunguzi/internal/realtime"
	"github.com/jirani/uchunguzi/internal/workbook"
)

// insertBatchSize caps the rows per INSERT statement, matching the original
// importer's batching.
const insertBatchSize = 1000

// HandleUpload accepts a survey workbook and replaces the stored responses
// with its rows. Truncate and insert run in one transaction, so by the time
// the response is written the new batch is fully visible to /api/data.
// POST /upload
func HandleUpload(hub *realtime.Hub) fiber.Handler {
	return func(c fiber.Ctx) error {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "No file uploaded"})
		}

		file, err := fileHeader.Open()
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "No file uploaded"})
		}
		defer func() { _ = file.Close() }()

		rows, err := workbook.ParseResponses(file)
		if err != nil {
			if errors.Is(err, workbook.ErrMissingColumns) {
				return c.Status(400).JSON(fiber.Map{"error": "Missing required columns"})
			}
			logging.L().Warn("rejected unreadable upload",
				zap.String("filename", fileHeader.Filename),
				zap.Error(err))
			return c.Status(400).JSON(fiber.Map{"error": "Could not read workbook"})
		}

		models.SortByIdentity(rows)

		batchID := uuid.New()
		if err := models.ReplaceAll(database.DB, rows, insertBatchSize); err != nil {
			logging.L().Error("failed to store upload",
				zap.String("batch_id", batchID.String()),
				zap.Error(err))
			return c.Status(500).JSON(fiber.Map{"error": "Error processing upload"})
		}

		logging.L().Info("survey upload stored",
			zap.String("batch_id", batchID.String()),
			zap.String("filename", fileHeader.Filename),
			zap.Int("rows", len(rows)))

		if hub != nil {
			hub.NotifyRefresh()
		}

		return c.JSON(UploadResult{
			Message: "File uploaded and data saved successfully",
			Rows:    len(rows),
			BatchID: batchID.String(),
		})
	}
}
