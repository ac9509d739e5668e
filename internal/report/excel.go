package report

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"migration-service/internal/models"
)

var summaryColumns = []string{"Entity", "Scope", "Mode", "Status", "Rows Seen", "Created", "Updated", "Skipped", "Errors", "Warnings", "Started", "Finished"}

// WriteWorkbook renders run audit records into an XLSX workbook at path:
// one Runs sheet with a styled header row, one row per run.
func WriteWorkbook(path string, recs []models.MigrationRunRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheetName = "Runs"
	f.SetSheetName("Sheet1", sheetName)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})

	for i, col := range summaryColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, col)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)

		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 18)
	}

	for rowIdx, rec := range recs {
		finished := ""
		if rec.FinishedAt != nil {
			finished = rec.FinishedAt.Format("2006-01-02 15:04:05")
		}
		values := []any{
			rec.EntityType,
			rec.Scope,
			string(rec.Mode),
			string(rec.Status),
			rec.RowsSeen,
			rec.Created,
			rec.Updated,
			rec.Skipped,
			rec.Errors,
			rec.Warnings,
			rec.StartedAt.Format("2006-01-02 15:04:05"),
			finished,
		}
		for colIdx, v := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, v)
		}
	}

	if !strings.HasSuffix(path, ".xlsx") {
		path += ".xlsx"
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write report workbook %s: %w", path, err)
	}
	return nil
}
