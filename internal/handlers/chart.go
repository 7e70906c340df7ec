package handlers

import (
	"bytes"

	"github.com/gofiber/fiber/v3"
	"github.com/wcharczuk/go-chart/v2"
	"go.uber.org/zap"

	"github.com/jirani/uchunguzi/internal/database"
	"github.com/jirani/uchunguzi/internal/logging"
	"github.com/jirani/uchunguzi/internal/models"
)

// HandleQ1DistChart renders the answer-rate donut as a PNG, mirroring the
// dashboard's pie widget for use in reports.
// GET /api/chart/q1.png
func HandleQ1DistChart(c fiber.Ctx) error {
	rows, err := models.FetchAll(database.DB)
	if err != nil {
		logging.L().Error("failed to load rows for chart", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"error": "Error rendering chart"})
	}
	if len(rows) == 0 {
		return c.Status(404).JSON(fiber.Map{"error": "No survey data to chart"})
	}

	dist := BuildAggregate(rows).Q1Dist
	donut := chart.DonutChart{
		Title:  "Question Answer Rates",
		Width:  512,
		Height: 512,
		Values: []chart.Value{
			{Value: dist["Q1"] * 100, Label: "Q1"},
			{Value: dist["Q2"] * 100, Label: "Q2"},
			{Value: dist["Q3"] * 100, Label: "Q3"},
		},
	}

	var buf bytes.Buffer
	if err := donut.Render(chart.PNG, &buf); err != nil {
		logging.L().Error("failed to render distribution chart", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"error": "Error rendering chart"})
	}

	c.Set("Content-Type", "image/png")
	return c.Send(buf.Bytes())
}

// HandleQ1CountsChart renders the per-option counts as a PNG bar chart.
// GET /api/chart/q1_counts.png
func HandleQ1CountsChart(c fiber.Ctx) error {
	rows, err := models.FetchAll(database.DB)
	if err != nil {
		logging.L().Error("failed to load rows for chart", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"error": "Error rendering chart"})
	}

	counts := BuildAggregate(rows).Q1Counts
	bars := make([]chart.Value, 0, len(models.Q1Options))
	var totalCount int
	for _, option := range models.Q1Options {
		bars = append(bars, chart.Value{Value: float64(counts[option]), Label: option})
		totalCount += counts[option]
	}
	if totalCount == 0 {
		return c.Status(404).JSON(fiber.Map{"error": "No survey data to chart"})
	}

	bar := chart.BarChart{
		Title:    "Awareness Option Counts",
		Width:    1024,
		Height:   512,
		BarWidth: 80,
		Bars:     bars,
	}

	var buf bytes.Buffer
	if err := bar.Render(chart.PNG, &buf); err != nil {
		logging.L().Error("failed to render counts chart", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"error": "Error rendering chart"})
	}

	c.Set("Content-Type", "image/png")
	return c.Send(buf.Bytes())
}
