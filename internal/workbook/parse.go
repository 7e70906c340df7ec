// Package workbook reads uploaded survey spreadsheets and writes the
// exported .xlsx with duplicate highlighting.
package workbook

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/jirani/uchunguzi/internal/models"
)

// ErrMissingColumns is returned when the uploaded sheet lacks one of the
// required survey columns.
var ErrMissingColumns = errors.New("missing required columns")

// ErrEmptyWorkbook is returned when the workbook has no sheets or no header row.
var ErrEmptyWorkbook = errors.New("workbook has no data")

// RequiredHeaders are the spreadsheet column titles, in the order the survey
// template lays them out. They map 1:1 onto models.Columns.
var RequiredHeaders = []string{
	"Phone_Number",
	"EFD",
	"Job Category",
	"Employment Status",
	"Sex",
	"Status",
	"Q1",
	"Q2",
	"Q3",
}

// ParseResponses reads the first sheet of an .xlsx workbook into survey rows.
// The first row must be a header containing every required column; extra
// columns are ignored. Empty cells become NULLs.
func ParseResponses(r io.Reader) ([]models.SurveyResponse, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, ErrEmptyWorkbook
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyWorkbook
	}

	indexes, err := headerIndexes(rows[0])
	if err != nil {
		return nil, err
	}

	responses := make([]models.SurveyResponse, 0, len(rows)-1)
	for _, cells := range rows[1:] {
		resp, empty := rowToResponse(cells, indexes)
		if empty {
			continue
		}
		responses = append(responses, resp)
	}

	return responses, nil
}

// headerIndexes maps each required header title to its column index.
func headerIndexes(header []string) (map[string]int, error) {
	positions := make(map[string]int, len(header))
	for i, title := range header {
		positions[title] = i
	}

	indexes := make(map[string]int, len(RequiredHeaders))
	for _, title := range RequiredHeaders {
		idx, ok := positions[title]
		if !ok {
			return nil, ErrMissingColumns
		}
		indexes[title] = idx
	}
	return indexes, nil
}

func rowToResponse(cells []string, indexes map[string]int) (models.SurveyResponse, bool) {
	cell := func(title string) *string {
		idx := indexes[title]
		// GetRows drops trailing empty cells
		if idx >= len(cells) || cells[idx] == "" {
			return nil
		}
		value := cells[idx]
		return &value
	}

	resp := models.SurveyResponse{
		PhoneNumber:      cell("Phone_Number"),
		EFD:              cell("EFD"),
		JobCategory:      cell("Job Category"),
		EmploymentStatus: cell("Employment Status"),
		Sex:              cell("Sex"),
		Status:           cell("Status"),
		Q1:               cell("Q1"),
		Q2:               cell("Q2"),
		Q3:               cell("Q3"),
	}

	empty := resp.PhoneNumber == nil && resp.EFD == nil && resp.JobCategory == nil &&
		resp.EmploymentStatus == nil && resp.Sex == nil && resp.Status == nil &&
		resp.Q1 == nil && resp.Q2 == nil && resp.Q3 == nil
	return resp, empty
}
