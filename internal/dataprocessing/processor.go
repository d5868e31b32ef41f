package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/encoding/korean"

	"transcriptcli/internal/config"
	"transcriptcli/internal/errors"
	"transcriptcli/pkg/contracts/domain"
)

// Result aggregates everything one corpus run produced, in document
// processing order. The accumulator carries the run's error log.
type Result struct {
	Students      []domain.StudentRecord
	Grades        []domain.GradeEntry
	Narratives    []domain.NarrativeRecord
	Volatility    []domain.VolatilityRecord
	YearlyFlags   []domain.YearlyFlag
	KeywordTotals []domain.KeywordTotals
	Issues        Accumulator
	Documents     int
}

// Processor drives extraction over a corpus directory. A document that fails
// to parse is logged and skipped; only an empty or unreadable corpus aborts
// the run.
type Processor struct {
	logger   *slog.Logger
	cfg      *config.Config
	subjects *SubjectMapping
}

// NewProcessor creates a corpus processor with the given configuration.
func NewProcessor(logger *slog.Logger, cfg *config.Config) *Processor {
	return &Processor{
		logger:   logger,
		cfg:      cfg,
		subjects: NewSubjectMapping(cfg.Parsing.FuzzyThreshold),
	}
}

// docResult holds one document's extraction output before the ordered merge.
type docResult struct {
	student     *domain.StudentRecord
	grades      []domain.GradeEntry
	narratives  []domain.NarrativeRecord
	volatility  *domain.VolatilityRecord
	yearlyFlags []domain.YearlyFlag
	acc         Accumulator
}

// Process runs extraction over every .txt document under inputDir. Documents
// are processed in filename order and the merged output preserves that order
// regardless of worker count, so reruns over the same corpus are
// byte-identical.
func (p *Processor) Process(ctx context.Context, inputDir string) (*Result, error) {
	names, err := listDocuments(inputDir)
	if err != nil {
		return nil, err
	}

	p.logger.InfoContext(ctx, "corpus scan complete",
		slog.String("input_dir", inputDir),
		slog.Int("documents", len(names)))

	results := make([]*docResult, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.Parsing.Workers)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = p.processDocument(gctx, inputDir, name)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &Result{Documents: len(names)}
	for _, r := range results {
		out.Issues.Merge(&r.acc)
		if r.student == nil {
			continue
		}
		out.Students = append(out.Students, *r.student)
		out.Grades = append(out.Grades, r.grades...)
		out.Narratives = append(out.Narratives, r.narratives...)
		out.Volatility = append(out.Volatility, *r.volatility)
		out.YearlyFlags = append(out.YearlyFlags, r.yearlyFlags...)
	}
	out.KeywordTotals = keywordTotals(out.Narratives)

	p.logger.InfoContext(ctx, "corpus processed",
		slog.Int("students", len(out.Students)),
		slog.Int("grade_entries", len(out.Grades)),
		slog.Int("skipped_documents", out.Issues.SkippedDocuments),
		slog.Int("issues", len(out.Issues.Issues)),
		slog.Int("unmapped_subjects", out.Issues.UnmappedSubjects))

	return out, nil
}

// listDocuments returns the corpus document names in sorted order. A missing
// directory or an empty corpus is the run's only fatal condition.
func listDocuments(inputDir string) ([]string, error) {
	dirEntries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, errors.NewStorageError(
			fmt.Sprintf("cannot read input directory %s", inputDir), err)
	}

	var names []string
	for _, entry := range dirEntries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	if len(names) == 0 {
		return nil, errors.NewStorageError(
			fmt.Sprintf("no .txt documents found in %s", inputDir), nil)
	}
	return names, nil
}

// processDocument extracts everything one document yields. Failures that
// concern only this document land in its accumulator, never in an error
// return.
func (p *Processor) processDocument(ctx context.Context, inputDir, name string) *docResult {
	r := &docResult{}

	identity, err := DecodeFilename(name)
	if err != nil {
		r.acc.AddIssue(name, "", errors.ErrTypeFilenameFormat, err.Error())
		r.acc.SkippedDocuments++
		p.logger.WarnContext(ctx, "document skipped", slog.String("file", name), slog.Any("error", err))
		return r
	}

	text, err := readDocument(filepath.Join(inputDir, name))
	if err != nil {
		r.acc.AddIssue(name, "", errors.ErrTypeEncoding, err.Error())
		r.acc.SkippedDocuments++
		p.logger.WarnContext(ctx, "document skipped", slog.String("file", name), slog.Any("error", err))
		return r
	}

	years := EstimateGradeYears(text, identity.GradeLevel)
	blocks := SegmentDocument(text)

	gradeBlocks := GradeBlocks(blocks)
	if len(gradeBlocks) == 0 {
		// A structural warning, not a skip: the narrative sections may
		// still carry signal.
		r.acc.AddIssue(name, "", errors.ErrTypeStructure, "no grade table section found")
	}
	for _, block := range gradeBlocks {
		r.grades = append(r.grades, ExtractGrades(block, identity, years, p.subjects, &r.acc)...)
	}

	for _, block := range NarrativeBlocks(blocks) {
		r.narratives = append(r.narratives,
			ExtractNarratives(block, identity, p.subjects, p.cfg.Parsing.MinNarrativeRunes, &r.acc)...)
	}

	vol := ComputeVolatility(identity.AnonymousID, r.grades)
	r.volatility = &vol
	r.yearlyFlags = YearlyFlags(identity.AnonymousID, years)
	r.student = &domain.StudentRecord{
		Identity:   identity,
		GradeYears: years,
		Disruption: ComputeDisruption(years),
	}

	p.logger.DebugContext(ctx, "document processed",
		slog.String("file", name),
		slog.Int("grade_entries", len(r.grades)),
		slog.Int("narratives", len(r.narratives)))

	return r
}

// readDocument loads a document as UTF-8 text. The corpus predates the UTF-8
// convention, so bytes that are not valid UTF-8 get one decode attempt as
// EUC-KR before the document is rejected.
func readDocument(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.NewStorageError(fmt.Sprintf("cannot read %s", path), err)
	}

	// Strip a UTF-8 BOM if present.
	data = []byte(strings.TrimPrefix(string(data), "\ufeff"))

	if utf8.Valid(data) {
		return string(data), nil
	}

	decoded, err := korean.EUCKR.NewDecoder().Bytes(data)
	if err != nil {
		return "", errors.NewEncodingError("document is neither valid UTF-8 nor EUC-KR", err)
	}
	return string(decoded), nil
}

// keywordTotals aggregates narrative keyword counts per student, in first
// appearance order.
func keywordTotals(narratives []domain.NarrativeRecord) []domain.KeywordTotals {
	index := make(map[string]int)
	var totals []domain.KeywordTotals

	for _, n := range narratives {
		i, ok := index[n.StudentID]
		if !ok {
			i = len(totals)
			index[n.StudentID] = i
			totals = append(totals, domain.KeywordTotals{StudentID: n.StudentID})
		}
		totals[i].ExplorationTotal += n.ExplorationCount
		totals[i].OnlineTotal += n.OnlineCount
		totals[i].QualitativeTotal += n.QualitativeCount
	}
	return totals
}
