package exporter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"transcriptcli/internal/dataprocessing"
)

// ErrorLogFile is the machine-readable error log, one JSON object per line.
const ErrorLogFile = "parse_errors.jsonl"

// errorLogLine is one serialized issue. The run ID ties the line back to the
// structured log output of the run that produced it.
type errorLogLine struct {
	RunID  string `json:"run_id"`
	File   string `json:"file"`
	Row    string `json:"row,omitempty"`
	Kind   string `json:"kind"`
	Reason string `json:"reason"`
}

// WriteErrorLog writes the run's parse issues as JSON lines, replacing any
// previous log. An issue-free run still produces the file, empty, so a
// missing file always means the run never finished.
func WriteErrorLog(baseDir, runID string, issues []dataprocessing.Issue) error {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(filepath.Join(baseDir, ErrorLogFile))
	if err != nil {
		return fmt.Errorf("failed to create error log: %w", err)
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	for _, issue := range issues {
		line := errorLogLine{
			RunID:  runID,
			File:   issue.File,
			Row:    issue.Row,
			Kind:   string(issue.Kind),
			Reason: issue.Reason,
		}
		if err := enc.Encode(line); err != nil {
			return fmt.Errorf("failed to write error log line: %w", err)
		}
	}

	return nil
}
