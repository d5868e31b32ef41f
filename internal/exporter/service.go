package exporter

import (
	"context"
	"log/slog"

	"transcriptcli/internal/config"
	"transcriptcli/internal/dataprocessing"
	"transcriptcli/internal/infrastructure"
)

// Service writes a processing result to disk: the CSV tables, the error log
// and, when enabled, the combined workbook.
type Service struct {
	logger *slog.Logger
	cfg    config.ExportConfig
}

// NewService creates an export service.
func NewService(logger *slog.Logger, cfg config.ExportConfig) *Service {
	return &Service{logger: logger, cfg: cfg}
}

// Export writes every output table under outDir. Table rows preserve the
// result's order, so identical results export byte-identically.
func (s *Service) Export(ctx context.Context, result *dataprocessing.Result, outDir string) error {
	writer := NewCSVWriter(outDir, s.cfg.BOMPrefix)

	tables := []struct {
		name    string
		headers []string
		records [][]string
	}{
		{StudentsFile, StudentHeaders(), studentRows(result)},
		{GradesFile, GradeHeaders(), gradeRows(result)},
		{NarrativesFile, NarrativeHeaders(), narrativeRows(result)},
		{VolatilityFile, VolatilityHeaders(), volatilityRows(result)},
		{YearlyFlagsFile, YearlyFlagHeaders(), yearlyFlagRows(result)},
		{KeywordTotalsFile, KeywordTotalHeaders(), keywordTotalRows(result)},
	}

	for _, table := range tables {
		if err := writer.WriteTable(table.name, table.headers, table.records); err != nil {
			return err
		}
		s.logger.InfoContext(ctx, "table written",
			slog.String("file", table.name),
			slog.Int("rows", len(table.records)))
	}

	runID := infrastructure.GetRunID(ctx)
	if err := WriteErrorLog(outDir, runID, result.Issues.Issues); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "error log written",
		slog.String("file", ErrorLogFile),
		slog.Int("entries", len(result.Issues.Issues)))

	if s.cfg.XLSX {
		if err := WriteWorkbook(outDir, result); err != nil {
			return err
		}
		s.logger.InfoContext(ctx, "workbook written", slog.String("file", XLSXFile))
	}

	return nil
}

func studentRows(result *dataprocessing.Result) [][]string {
	return mapRows(result.Students, StudentRow)
}

func gradeRows(result *dataprocessing.Result) [][]string {
	return mapRows(result.Grades, GradeRow)
}

func narrativeRows(result *dataprocessing.Result) [][]string {
	return mapRows(result.Narratives, NarrativeRow)
}

func volatilityRows(result *dataprocessing.Result) [][]string {
	return mapRows(result.Volatility, VolatilityRow)
}

func yearlyFlagRows(result *dataprocessing.Result) [][]string {
	return mapRows(result.YearlyFlags, YearlyFlagRow)
}

func keywordTotalRows(result *dataprocessing.Result) [][]string {
	return mapRows(result.KeywordTotals, KeywordTotalRow)
}

func mapRows[T any](items []T, row func(T) []string) [][]string {
	records := make([][]string, 0, len(items))
	for _, item := range items {
		records = append(records, row(item))
	}
	return records
}
