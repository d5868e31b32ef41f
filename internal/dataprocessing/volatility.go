package dataprocessing

import (
	"math"
	"sort"

	"transcriptcli/pkg/contracts/domain"
)

// ComputeVolatility derives the per-student dispersion metrics from the
// student's grade entries. Only entries carrying a numeric score contribute.
// Every statistic needs at least two qualifying observations; with fewer it
// stays nil. The record is always produced, even for a student with no
// scored entries at all.
func ComputeVolatility(studentID string, entries []domain.GradeEntry) domain.VolatilityRecord {
	rec := domain.VolatilityRecord{
		StudentID:       studentID,
		GroupStdDev:     make(map[string]*float64),
		GradeYearStdDev: make(map[int]*float64),
	}

	var scores []float64
	byGroup := make(map[string][]float64)
	byGradeYear := make(map[int][]float64)
	bySubject := make(map[string][]domain.GradeEntry)

	for _, e := range entries {
		if e.Score == nil {
			continue
		}
		scores = append(scores, *e.Score)
		byGroup[e.SubjectGroup] = append(byGroup[e.SubjectGroup], *e.Score)
		byGradeYear[e.GradeYear] = append(byGradeYear[e.GradeYear], *e.Score)
		bySubject[e.Subject] = append(bySubject[e.Subject], e)
	}

	rec.ScoreCount = len(scores)
	if len(scores) >= 2 {
		m := mean(scores)
		s := sampleStdDev(scores, m)
		rec.OverallMean = &m
		rec.OverallStdDev = &s
		// A zero mean makes the ratio meaningless, so it stays absent
		// rather than becoming infinite.
		if m != 0 {
			cv := s / m
			rec.CoefficientOfVariation = &cv
		}
	}

	for group, values := range byGroup {
		rec.GroupStdDev[group] = stdDevOrNil(values)
	}
	for gradeYear, values := range byGradeYear {
		rec.GradeYearStdDev[gradeYear] = stdDevOrNil(values)
	}

	rec.MeanAbsTermChange = meanAbsTermChange(bySubject)
	return rec
}

// meanAbsTermChange averages, across subjects, the mean absolute change
// between a subject's consecutive scored terms. A subject qualifies with at
// least two scored terms; with no qualifying subject the metric is nil.
func meanAbsTermChange(bySubject map[string][]domain.GradeEntry) *float64 {
	subjects := make([]string, 0, len(bySubject))
	for subject := range bySubject {
		subjects = append(subjects, subject)
	}
	sort.Strings(subjects)

	var perSubject []float64
	for _, subject := range subjects {
		terms := bySubject[subject]
		if len(terms) < 2 {
			continue
		}
		sort.Slice(terms, func(i, j int) bool {
			if terms[i].GradeYear != terms[j].GradeYear {
				return terms[i].GradeYear < terms[j].GradeYear
			}
			return terms[i].Term < terms[j].Term
		})

		var changes []float64
		for i := 1; i < len(terms); i++ {
			changes = append(changes, math.Abs(*terms[i].Score-*terms[i-1].Score))
		}
		perSubject = append(perSubject, mean(changes))
	}

	if len(perSubject) == 0 {
		return nil
	}
	m := mean(perSubject)
	return &m
}

func stdDevOrNil(values []float64) *float64 {
	if len(values) < 2 {
		return nil
	}
	s := sampleStdDev(values, mean(values))
	return &s
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// sampleStdDev is the n-1 denominator standard deviation.
func sampleStdDev(values []float64, m float64) float64 {
	sum := 0.0
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)-1))
}
