package workbook

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jirani/uchunguzi/internal/models"
)

// ExportSheetName is the sheet the exported workbook carries its data on.
const ExportSheetName = "SurveyData"

// Export writes all survey rows to an .xlsx workbook. An is_duplicate column
// is appended, and every member of a duplicate (phone_number, efd,
// job_category, sex) group gets a yellow row highlight.
func Export(rows []models.SurveyResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	index, err := f.NewSheet(ExportSheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	header := append([]interface{}{"id"}, headerCells()...)
	header = append(header, "is_duplicate")
	if err := f.SetSheetRow(ExportSheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	highlight, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"FFFF00"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create highlight style: %w", err)
	}

	duplicates := models.MarkDuplicates(rows)
	for i := range rows {
		rowNum := i + 2 // row 1 is the header
		cells := append([]interface{}{rows[i].ID}, rowCells(&rows[i])...)
		cells = append(cells, duplicates[i])

		start, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(ExportSheetName, start, &cells); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", rowNum, err)
		}

		if duplicates[i] {
			end, err := excelize.CoordinatesToCellName(len(cells), rowNum)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellStyle(ExportSheetName, start, end, highlight); err != nil {
				return nil, fmt.Errorf("failed to style row %d: %w", rowNum, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func headerCells() []interface{} {
	cells := make([]interface{}, len(models.Columns))
	for i, c := range models.Columns {
		cells[i] = c
	}
	return cells
}

func rowCells(r *models.SurveyResponse) []interface{} {
	values := r.Values()
	cells := make([]interface{}, len(values))
	for i, v := range values {
		if s, ok := v.(*string); ok && s != nil {
			cells[i] = *s
		}
	}
	return cells
}
