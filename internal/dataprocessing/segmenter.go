package dataprocessing

import (
	"regexp"
	"strings"

	"transcriptcli/pkg/contracts/domain"
)

// Heading patterns are OCR-tolerant: converted documents carry irregular
// spacing inside headings, so every pattern allows optional whitespace
// between the characters that matter.
var (
	gradeYearHeading    = regexp.MustCompile(`^\s*\[\s*\d\s*학년\s*\]`)
	gradeSectionHeading = regexp.MustCompile(`교\s*과\s*학\s*습\s*발\s*달\s*상\s*황`)
	peArtHeading        = regexp.MustCompile(`<\s*체\s*육\s*[.·]?\s*예\s*술`)
	narrativeHeading    = regexp.MustCompile(`세\s*부\s*능\s*력\s*및\s*특\s*기\s*사\s*항`)
)

// SegmentDocument splits raw document text into an ordered sequence of
// labeled blocks in one linear pass over its lines. The first occurrence of
// a heading opens a block of that kind; a repeated heading of the same kind
// is a section continuation, not a new block. Text before any recognized
// heading becomes an "other" block. Finding zero grade blocks is legal here;
// the corpus driver decides whether that warrants a structural warning.
func SegmentDocument(text string) []domain.RawBlock {
	lines := strings.Split(text, "\n")

	var blocks []domain.RawBlock
	var current *domain.RawBlock

	open := func(kind domain.BlockKind, label string, lineNo int) {
		if current != nil {
			blocks = append(blocks, *current)
		}
		current = &domain.RawBlock{Kind: kind, Label: label, Line: lineNo}
	}

	for i, line := range lines {
		kind, label := classifyHeading(line)

		switch {
		case kind == "":
			// Not a heading: text accumulates in the open block.
			if current == nil {
				open(domain.BlockOther, "", i+1)
			}
			current.Text += line + "\n"
		case current != nil && current.Kind == kind:
			// Duplicate heading of the open kind: continuation.
			current.Text += line + "\n"
		default:
			open(kind, label, i+1)
			current.Text += line + "\n"
		}
	}

	if current != nil {
		blocks = append(blocks, *current)
	}

	// Drop leading/trailing blocks that are pure whitespace; they carry no
	// signal and would only produce noise rows downstream.
	filtered := blocks[:0]
	for _, b := range blocks {
		if strings.TrimSpace(b.Text) != "" {
			filtered = append(filtered, b)
		}
	}

	return filtered
}

// classifyHeading reports the block kind a line opens, or "" when the line
// is not a recognized heading.
func classifyHeading(line string) (domain.BlockKind, string) {
	switch {
	case narrativeHeading.MatchString(line):
		return domain.BlockNarrative, "세부능력 및 특기사항"
	case gradeYearHeading.MatchString(line), gradeSectionHeading.MatchString(line):
		return domain.BlockGrades, "교과학습발달상황"
	case peArtHeading.MatchString(line):
		return domain.BlockGrades, "체육·예술"
	}
	return "", ""
}

// GradeBlocks filters the grade-table blocks out of a segmented document.
func GradeBlocks(blocks []domain.RawBlock) []domain.RawBlock {
	return blocksOfKind(blocks, domain.BlockGrades)
}

// NarrativeBlocks filters the narrative blocks out of a segmented document.
func NarrativeBlocks(blocks []domain.RawBlock) []domain.RawBlock {
	return blocksOfKind(blocks, domain.BlockNarrative)
}

func blocksOfKind(blocks []domain.RawBlock, kind domain.BlockKind) []domain.RawBlock {
	var out []domain.RawBlock
	for _, b := range blocks {
		if b.Kind == kind {
			out = append(out, b)
		}
	}
	return out
}
