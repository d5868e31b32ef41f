package dataprocessing

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"transcriptcli/internal/errors"
	"transcriptcli/pkg/contracts/domain"
)

// achievementPoints maps achievement marks and rank bands onto the 1..5
// grade-point scale the volatility metrics consume. P (pass) is qualitative
// and deliberately absent: a P row carries no numeric score.
var achievementPoints = map[string]float64{
	"A": 1, "B": 2, "C": 3, "D": 4, "E": 5,
	"수": 1, "우": 2, "미": 3, "양": 4, "가": 5,
}

// Row layouts vary per document author. Three are recognized; anything that
// looks like a grade row but matches none of them is logged for review.
var (
	// standard layout: subject units score/mean(std) achievement(takers) [rank]
	stdRowPattern = regexp.MustCompile(`^([가-힣A-Za-zⅠⅡ .·/]+?) (\d+) (\d+(?:\.\d+)?) ?/ ?(\d+(?:\.\d+)?) ?\( ?(\d+(?:\.\d+)?) ?\) ([A-EP]) ?\( ?(\d+) ?\)(?: ([1-9]))?$`)

	// PE and art layout: two terms on one row, achievement marks only.
	peArtRowPattern = regexp.MustCompile(`^(체육|예술\S*) ([가-힣A-Za-zⅠⅡ ]+?) (\d+) ([A-EP수우미양가]) (\d+) ([A-EP수우미양가])$`)

	// simple layout: subject units achievement, optional taker count.
	simpleRowPattern = regexp.MustCompile(`^([가-힣A-Za-zⅠⅡ .·/]+?) (\d+) ([A-EP수우미양가])(?: ?\( ?(\d+) ?\))?$`)

	// yearMarkerPattern matches a [N학년] marker at the start of a line.
	// Corpus markers carry trailing text ("[2학년] 2020학년도"), so the
	// marker is a prefix, not the whole line.
	yearMarkerPattern = regexp.MustCompile(`^\[ ?(\d) ?학년 ?\]`)

	// candidateRowPattern flags lines that carry grade-row structure
	// (score slash, a parenthesized count, or a unit count followed by an
	// achievement mark) so malformed rows are logged instead of silently
	// dropped, while prose and column headers pass. Rows garbled badly
	// enough to lose all three shapes still slip through unlogged.
	candidateRowPattern = regexp.MustCompile(`\d ?/ ?\d|\( ?\d+ ?\)|(?:^| )\d+ [A-EP수우미양가](?: |$)`)

	headerWords = []string{"교과", "과목", "단위수", "학기", "석차", "성취도", "원점수", "학년"}
)

// ExtractGrades parses the rows of one grade-table block into grade entries.
// A malformed row is logged through the accumulator and skipped; it never
// aborts extraction of the remaining table. Duplicate (grade year, term,
// subject) rows are a parse anomaly: the first row wins and the duplicate is
// logged. Numeric values that fail to parse become absent, not zero.
func ExtractGrades(
	block domain.RawBlock,
	identity domain.StudentIdentity,
	years domain.GradeYears,
	subjects *SubjectMapping,
	acc *Accumulator,
) []domain.GradeEntry {
	revision := CurriculumRevision(identity.AdmissionYear)

	var entries []domain.GradeEntry
	seen := make(map[string]bool)
	gradeYear := 1

	for _, rawLine := range strings.Split(block.Text, "\n") {
		line := strings.Join(strings.Fields(rawLine), " ")
		if line == "" {
			continue
		}

		if loc := yearMarkerPattern.FindStringSubmatchIndex(line); loc != nil {
			gradeYear, _ = strconv.Atoi(line[loc[2]:loc[3]])
			// Anything after the marker ("2020학년도", or a row sharing
			// the line) is processed like any other line content.
			line = strings.TrimSpace(line[loc[1]:])
			if line == "" {
				continue
			}
		}
		if isTableHeader(line) {
			continue
		}

		rows, ok := parseGradeRow(line, gradeYear)
		if !ok {
			if candidateRowPattern.MatchString(line) {
				acc.AddIssue(identity.SourceFile, line, errors.ErrTypeRowParse,
					"row matches no recognized grade table layout")
			}
			continue
		}

		for _, row := range rows {
			match := subjects.Normalize(revision, row.rawSubject)
			if !match.Matched {
				acc.CountUnmapped()
			}

			key := fmt.Sprintf("%d|%d|%s", row.gradeYear, row.term, match.Canonical)
			if seen[key] {
				acc.AddIssue(identity.SourceFile, line, errors.ErrTypeRowParse,
					fmt.Sprintf("duplicate grade row for %s (grade %d term %d); first occurrence kept",
						match.Canonical, row.gradeYear, row.term))
				continue
			}
			seen[key] = true

			entries = append(entries, domain.GradeEntry{
				StudentID:    identity.AnonymousID,
				GradeYear:    row.gradeYear,
				Term:         row.term,
				Year:         years[row.gradeYear],
				RawSubject:   row.rawSubject,
				Subject:      match.Canonical,
				SubjectGroup: match.Group,
				Units:        row.units,
				RawScore:     row.rawScore,
				Achievement:  row.achievement,
				Rank:         row.rank,
				Score:        pointForMark(row.achievement, row.rank),
				MatchTier:    string(match.Tier),
				MatchScore:   match.Score,
			})
		}
	}

	return entries
}

// parsedRow is one recognized grade observation before subject normalization.
type parsedRow struct {
	gradeYear   int
	term        int
	rawSubject  string
	units       int
	rawScore    *float64
	achievement string
	rank        string
}

// parseGradeRow tries the known layouts in order of specificity. The PE/art
// layout yields two rows, one per term.
func parseGradeRow(line string, gradeYear int) ([]parsedRow, bool) {
	if m := stdRowPattern.FindStringSubmatch(line); m != nil {
		units, _ := strconv.Atoi(m[2])
		return []parsedRow{{
			gradeYear:   gradeYear,
			term:        1,
			rawSubject:  strings.TrimSpace(m[1]),
			units:       units,
			rawScore:    parseScore(m[3]),
			achievement: m[6],
			rank:        m[8],
		}}, true
	}

	if m := peArtRowPattern.FindStringSubmatch(line); m != nil {
		subject := strings.TrimSpace(m[2])
		units1, _ := strconv.Atoi(m[3])
		units2, _ := strconv.Atoi(m[5])
		return []parsedRow{
			{gradeYear: gradeYear, term: 1, rawSubject: subject, units: units1, achievement: m[4]},
			{gradeYear: gradeYear, term: 2, rawSubject: subject, units: units2, achievement: m[6]},
		}, true
	}

	if m := simpleRowPattern.FindStringSubmatch(line); m != nil {
		units, _ := strconv.Atoi(m[2])
		return []parsedRow{{
			gradeYear:   gradeYear,
			term:        1,
			rawSubject:  strings.TrimSpace(m[1]),
			units:       units,
			achievement: m[3],
		}}, true
	}

	return nil, false
}

// parseScore parses a printed exam score, tolerating OCR-injected spaces
// inside the number. A value that still fails to parse is absent, not zero.
func parseScore(s string) *float64 {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, " ", ""), 64)
	if err != nil {
		return nil
	}
	return &v
}

// pointForMark derives the numeric grade point from the achievement mark,
// falling back to the rank band digit. Qualitative-only rows get nil.
func pointForMark(achievement, rank string) *float64 {
	if p, ok := achievementPoints[achievement]; ok {
		return &p
	}
	if rank != "" {
		if r, err := strconv.ParseFloat(rank, 64); err == nil {
			return &r
		}
	}
	return nil
}

// isTableHeader reports whether a collapsed line is a column header rather
// than a data row. Header lines repeat per grade-year segment and carry no
// observations.
func isTableHeader(line string) bool {
	if candidateRowPattern.MatchString(line) {
		return false
	}
	hits := 0
	for _, w := range headerWords {
		if strings.Contains(line, w) {
			hits++
		}
	}
	return hits >= 2
}
