package exporter

import (
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"transcriptcli/internal/dataprocessing"
)

// XLSXFile is the optional combined workbook, one sheet per output table.
const XLSXFile = "transcripts.xlsx"

// WriteWorkbook writes every output table into one Excel workbook. The sheet
// contents mirror the CSV files cell for cell.
func WriteWorkbook(baseDir string, result *dataprocessing.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	sheets := []struct {
		name    string
		headers []string
		records [][]string
	}{
		{"students", StudentHeaders(), studentRows(result)},
		{"grades", GradeHeaders(), gradeRows(result)},
		{"narratives", NarrativeHeaders(), narrativeRows(result)},
		{"volatility", VolatilityHeaders(), volatilityRows(result)},
		{"yearly_flags", YearlyFlagHeaders(), yearlyFlagRows(result)},
		{"keyword_totals", KeywordTotalHeaders(), keywordTotalRows(result)},
	}

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet.name); err != nil {
				return fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(sheet.name); err != nil {
				return fmt.Errorf("failed to create sheet %s: %w", sheet.name, err)
			}
		}

		if err := writeSheet(f, sheet.name, sheet.headers, sheet.records); err != nil {
			return err
		}
	}

	if err := f.SaveAs(filepath.Join(baseDir, XLSXFile)); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, name string, headers []string, records [][]string) error {
	rows := append([][]string{headers}, records...)
	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to compute cell name: %w", err)
		}
		if err := f.SetSheetRow(name, cell, &cells); err != nil {
			return fmt.Errorf("failed to write row %d of %s: %w", i+1, name, err)
		}
	}
	return nil
}
