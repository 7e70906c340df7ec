package handlers

import (
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"github.com/jirani/uchunguzi/internal/database"
	"github.com/jirani/uchunguzi/internal/logging"
	"github.com/jirani/uchunguzi/internal/models"
)

// HandleAggregate returns the aggregation payload for the dashboard:
// per-option counts and answer-rate distribution for Q1, the free-text
// answers for Q2/Q3, and the attribute columns of every row.
// GET /api/data
func HandleAggregate(c fiber.Ctx) error {
	rows, err := models.FetchAll(database.DB)
	if err != nil {
		logging.L().Error("failed to load survey responses", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"error": "Error fetching data"})
	}

	return c.JSON(BuildAggregate(rows))
}

// BuildAggregate computes the dashboard payload from raw rows.
func BuildAggregate(rows []models.SurveyResponse) AggregatePayload {
	payload := AggregatePayload{
		Q1Counts: make(map[string]int, len(models.Q1Options)),
		Q1Dist:   make(map[string]float64, 3),
		Col2:     make([]string, 0, len(rows)),
		Col3:     make([]string, 0, len(rows)),
		Col4:     make([]string, 0, len(rows)),
		Col5:     make([]string, 0, len(rows)),
		Q2:       make([]string, 0, len(rows)),
		Q3:       make([]string, 0, len(rows)),
	}

	known := make(map[string]struct{}, len(models.Q1Options))
	for _, option := range models.Q1Options {
		payload.Q1Counts[option] = 0
		known[option] = struct{}{}
	}

	var q1Answered, q2Answered, q3Answered int
	for i := range rows {
		r := &rows[i]

		if r.Q1 != nil {
			q1Answered++
			for _, option := range models.SplitQ1(*r.Q1) {
				// Fragments outside the fixed vocabulary are ignored
				if _, ok := known[option]; ok {
					payload.Q1Counts[option]++
				}
			}
		}
		if r.Q2 != nil {
			q2Answered++
		}
		if r.Q3 != nil {
			q3Answered++
		}

		payload.Col2 = append(payload.Col2, fillUnknown(r.JobCategory))
		payload.Col3 = append(payload.Col3, fillUnknown(r.EmploymentStatus))
		payload.Col4 = append(payload.Col4, fillUnknown(r.Sex))
		payload.Col5 = append(payload.Col5, fillUnknown(r.EFD))
		payload.Q2 = append(payload.Q2, fillNA(r.Q2))
		payload.Q3 = append(payload.Q3, fillNA(r.Q3))
	}

	total := len(rows)
	payload.Q1Dist["Q1"] = fraction(q1Answered, total)
	payload.Q1Dist["Q2"] = fraction(q2Answered, total)
	payload.Q1Dist["Q3"] = fraction(q3Answered, total)

	return payload
}

func fraction(answered, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(answered) / float64(total)
}

func fillUnknown(s *string) string {
	if s == nil {
		return "Unknown"
	}
	return *s
}

func fillNA(s *string) string {
	if s == nil {
		return "N/A"
	}
	return *s
}
