package history

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"medipredict/internal/domain"
)

// exportHeader is the column layout of the history export.
var exportHeader = []string{
	"Date",
	"Disease",
	"Result",
	"Status",
	"Confidence (%)",
	"Input Type",
}

// GenerateExport renders the decorated history entries as an .xlsx
// workbook, most recent first (input order is preserved).
func GenerateExport(entries []Entry) ([]byte, error) {
	f := excelize.NewFile()
	// Note: don't defer Close() here, WriteTo needs the file open.

	sheetName := "Prediction History"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, title := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheetName, cell, title); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
		_ = f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for row, e := range entries {
		values := []any{
			e.CreatedAt.Format("2006-01-02 15:04"),
			displayDiseaseName(e.DiseaseType),
			resultOrProcessing(e),
			string(e.Badge),
			confidenceOrNA(e.ConfidenceScore),
			e.InputType,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to write row %d: %w", row+2, err)
			}
		}
	}

	// Readable default widths
	_ = f.SetColWidth(sheetName, "A", "B", 18)
	_ = f.SetColWidth(sheetName, "C", "F", 22)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func resultOrProcessing(e Entry) string {
	if e.PredictionResult.Result == "" {
		return "Processing"
	}
	return e.PredictionResult.Result
}

func confidenceOrNA(score *float64) any {
	if score == nil {
		return "N/A"
	}
	return *score
}

// displayDiseaseName title-cases the snake_case disease type, same as the
// history page did ("heart_disease" -> "Heart Disease").
func displayDiseaseName(t domain.DiseaseType) string {
	out := make([]byte, 0, len(t))
	upper := true
	for i := 0; i < len(t); i++ {
		c := t[i]
		if c == '_' {
			out = append(out, ' ')
			upper = true
			continue
		}
		if upper && c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		upper = false
		out = append(out, c)
	}
	return string(out)
}
