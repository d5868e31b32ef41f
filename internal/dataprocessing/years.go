package dataprocessing

import (
	"regexp"
	"strconv"

	"transcriptcli/pkg/contracts/domain"
)

// Calendar years outside this range are treated as OCR noise.
const (
	minPlausibleYear = 2010
	maxPlausibleYear = 2025
)

// Disruption window: grade years attended in these calendar years are
// flagged as disrupted.
const (
	disruptionStart = 2020
	disruptionEnd   = 2022
)

var (
	// Direct bindings between a grade-year marker and a calendar year
	// appearing close to it, in either order.
	gradeThenYearPattern = regexp.MustCompile(`\[? ?([1-3]) ?학년 ?\]?[^0-9]{0,40}(20\d{2})`)
	yearThenGradePattern = regexp.MustCompile(`(20\d{2})[^0-9]{0,40}\[? ?([1-3]) ?학년`)

	// Loose calendar-year mentions used for the offset fallback.
	datedEntryPattern   = regexp.MustCompile(`(20\d{2})[.,\-/] ?\d{1,2}[.,\-/] ?\d{1,2}`)
	parenYearPattern    = regexp.MustCompile(`\( ?(20\d{2}) ?\)`)
	suffixedYearPattern = regexp.MustCompile(`(20\d{2})(?:학년도|학년|년)`)
)

// EstimateGradeYears infers which calendar year the student attended each
// grade year, from dated patterns in the document body. Direct grade-to-year
// bindings win; remaining grades are filled by offset from a bound grade, or
// from the earliest plausible year mentioned anywhere when nothing binds.
// Grades that cannot be estimated stay absent from the map.
func EstimateGradeYears(text string, gradeLevel int) domain.GradeYears {
	years := domain.GradeYears{}

	bind := func(grade, year int) {
		if year < minPlausibleYear || year > maxPlausibleYear {
			return
		}
		if _, ok := years[grade]; !ok {
			years[grade] = year
		}
	}

	for _, m := range gradeThenYearPattern.FindAllStringSubmatch(text, -1) {
		grade, _ := strconv.Atoi(m[1])
		year, _ := strconv.Atoi(m[2])
		bind(grade, year)
	}
	for _, m := range yearThenGradePattern.FindAllStringSubmatch(text, -1) {
		year, _ := strconv.Atoi(m[1])
		grade, _ := strconv.Atoi(m[2])
		bind(grade, year)
	}

	maxGrade := gradeLevel
	if maxGrade < 1 || maxGrade > 3 {
		maxGrade = 3
	}

	// Offset fill from the lowest directly bound grade, so reruns over the
	// same document always pick the same anchor.
	for grade := 1; grade <= maxGrade; grade++ {
		if _, ok := years[grade]; ok {
			continue
		}
		for known := 1; known <= 3; known++ {
			year, ok := years[known]
			if !ok {
				continue
			}
			candidate := year + (grade - known)
			if candidate >= minPlausibleYear && candidate <= maxPlausibleYear {
				years[grade] = candidate
				break
			}
		}
	}
	if len(years) > 0 {
		return years
	}

	// Nothing bound a grade directly: anchor grade 1 on the earliest year
	// mentioned anywhere in the document.
	earliest := 0
	for _, pattern := range []*regexp.Regexp{datedEntryPattern, parenYearPattern, suffixedYearPattern} {
		for _, m := range pattern.FindAllStringSubmatch(text, -1) {
			year, _ := strconv.Atoi(m[1])
			if year < minPlausibleYear || year > maxPlausibleYear {
				continue
			}
			if earliest == 0 || year < earliest {
				earliest = year
			}
		}
	}
	if earliest == 0 {
		return years
	}

	for grade := 1; grade <= maxGrade; grade++ {
		candidate := earliest + grade - 1
		if candidate <= maxPlausibleYear {
			years[grade] = candidate
		}
	}
	return years
}

// ComputeDisruption derives the per-grade disruption flags from the
// estimated grade years. A grade year with no estimate is not disrupted.
func ComputeDisruption(years domain.GradeYears) domain.DisruptionFlags {
	flags := domain.DisruptionFlags{}

	mark := func(grade int, hit *bool) {
		year, ok := years[grade]
		if !ok {
			return
		}
		if year >= disruptionStart && year <= disruptionEnd {
			*hit = true
			flags.Intensity++
			flags.Any = true
		}
	}

	mark(1, &flags.Grade1)
	mark(2, &flags.Grade2)
	mark(3, &flags.Grade3)
	return flags
}

// YearlyFlags expands the estimated grade years into one row per known
// (student, grade year) pair, in grade order.
func YearlyFlags(studentID string, years domain.GradeYears) []domain.YearlyFlag {
	var out []domain.YearlyFlag
	for grade := 1; grade <= 3; grade++ {
		year, ok := years[grade]
		if !ok {
			continue
		}
		out = append(out, domain.YearlyFlag{
			StudentID: studentID,
			GradeYear: grade,
			Year:      year,
			Disrupted: year >= disruptionStart && year <= disruptionEnd,
		})
	}
	return out
}
