package dataprocessing

import (
	"transcriptcli/internal/errors"
)

// Issue is one entry of the run's error log: a skipped document or a
// malformed row, with the reason it could not be parsed.
type Issue struct {
	File   string           `json:"file"`
	Row    string           `json:"row,omitempty"`
	Kind   errors.ErrorType `json:"kind"`
	Reason string           `json:"reason"`
}

// Accumulator collects parse issues and counters for one document (and,
// merged, for the whole run). It replaces process-wide mutable state so
// per-document extraction stays pure and independently testable.
type Accumulator struct {
	Issues           []Issue
	UnmappedSubjects int
	SkippedDocuments int
}

// AddIssue records one skipped document or malformed row.
func (a *Accumulator) AddIssue(file, row string, kind errors.ErrorType, reason string) {
	a.Issues = append(a.Issues, Issue{File: file, Row: row, Kind: kind, Reason: reason})
}

// CountUnmapped tallies an unmapped subject label. Unmapped labels are
// counted rather than logged per occurrence to keep the error log readable.
func (a *Accumulator) CountUnmapped() {
	a.UnmappedSubjects++
}

// Merge folds another accumulator into this one, preserving issue order.
func (a *Accumulator) Merge(other *Accumulator) {
	a.Issues = append(a.Issues, other.Issues...)
	a.UnmappedSubjects += other.UnmappedSubjects
	a.SkippedDocuments += other.SkippedDocuments
}

// IssuesOfKind returns the issues matching the given error type.
func (a *Accumulator) IssuesOfKind(kind errors.ErrorType) []Issue {
	var out []Issue
	for _, issue := range a.Issues {
		if issue.Kind == kind {
			out = append(out, issue)
		}
	}
	return out
}
