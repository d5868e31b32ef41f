package exporter

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// CSVWriter writes the output tables under a base directory.
type CSVWriter struct {
	baseDir   string
	bomPrefix bool
}

// NewCSVWriter creates a CSV writer rooted at baseDir. When bomPrefix is set
// every file starts with a UTF-8 BOM so Excel opens Korean text correctly.
func NewCSVWriter(baseDir string, bomPrefix bool) *CSVWriter {
	return &CSVWriter{baseDir: baseDir, bomPrefix: bomPrefix}
}

// WriteTable writes one table: header row first, then the records, replacing
// any previous file. The base directory is created on first use.
func (w *CSVWriter) WriteTable(name string, headers []string, records [][]string) error {
	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	fullPath := filepath.Join(w.baseDir, name)
	file, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer file.Close()

	if w.bomPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	for i, record := range records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	return writer.Error()
}
