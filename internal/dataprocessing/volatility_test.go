package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transcriptcli/pkg/contracts/domain"
)

func scoredEntry(subject, group string, gradeYear, term int, score float64) domain.GradeEntry {
	return domain.GradeEntry{
		StudentID:    "abc",
		GradeYear:    gradeYear,
		Term:         term,
		Subject:      subject,
		SubjectGroup: group,
		Score:        &score,
	}
}

func TestComputeVolatility_OverallStats(t *testing.T) {
	entries := []domain.GradeEntry{
		scoredEntry("국어", GroupKorean, 1, 1, 1),
		scoredEntry("수학", GroupMath, 1, 1, 2),
		scoredEntry("영어", GroupEnglish, 1, 1, 3),
	}

	rec := ComputeVolatility("abc", entries)

	assert.Equal(t, 3, rec.ScoreCount)
	require.NotNil(t, rec.OverallMean)
	assert.InDelta(t, 2.0, *rec.OverallMean, 1e-9)
	require.NotNil(t, rec.OverallStdDev)
	assert.InDelta(t, 1.0, *rec.OverallStdDev, 1e-9)
	require.NotNil(t, rec.CoefficientOfVariation)
	assert.InDelta(t, 0.5, *rec.CoefficientOfVariation, 1e-9)
}

func TestComputeVolatility_SingleObservationIsNil(t *testing.T) {
	entries := []domain.GradeEntry{scoredEntry("국어", GroupKorean, 1, 1, 2)}

	rec := ComputeVolatility("abc", entries)

	assert.Equal(t, 1, rec.ScoreCount)
	assert.Nil(t, rec.OverallMean)
	assert.Nil(t, rec.OverallStdDev)
	assert.Nil(t, rec.CoefficientOfVariation)
	assert.Nil(t, rec.MeanAbsTermChange)
	assert.Nil(t, rec.GroupStdDev[GroupKorean])
}

func TestComputeVolatility_NoScoredEntries(t *testing.T) {
	pass := domain.GradeEntry{Subject: "과학탐구실험", SubjectGroup: GroupScience, Achievement: "P"}

	rec := ComputeVolatility("abc", []domain.GradeEntry{pass})

	assert.Equal(t, 0, rec.ScoreCount)
	assert.Nil(t, rec.OverallMean)
	assert.Empty(t, rec.GroupStdDev)
	assert.Empty(t, rec.GradeYearStdDev)
}

func TestComputeVolatility_ZeroMeanHasNoCV(t *testing.T) {
	entries := []domain.GradeEntry{
		scoredEntry("국어", GroupKorean, 1, 1, -1),
		scoredEntry("수학", GroupMath, 1, 1, 1),
	}

	rec := ComputeVolatility("abc", entries)

	require.NotNil(t, rec.OverallStdDev)
	assert.Nil(t, rec.CoefficientOfVariation)
}

func TestComputeVolatility_MeanAbsTermChange(t *testing.T) {
	entries := []domain.GradeEntry{
		// 국어 moves 1 -> 3 -> 2: changes 2 and 1, mean 1.5.
		scoredEntry("국어", GroupKorean, 1, 1, 1),
		scoredEntry("국어", GroupKorean, 1, 2, 3),
		scoredEntry("국어", GroupKorean, 2, 1, 2),
		// 수학 moves 2 -> 2: change 0.
		scoredEntry("수학", GroupMath, 1, 1, 2),
		scoredEntry("수학", GroupMath, 1, 2, 2),
		// 영어 has a single term and does not qualify.
		scoredEntry("영어", GroupEnglish, 1, 1, 4),
	}

	rec := ComputeVolatility("abc", entries)

	require.NotNil(t, rec.MeanAbsTermChange)
	assert.InDelta(t, 0.75, *rec.MeanAbsTermChange, 1e-9)
}

func TestComputeVolatility_TermChangeOrderedByYearAndTerm(t *testing.T) {
	// Entries arrive out of document order; the metric must sort them.
	entries := []domain.GradeEntry{
		scoredEntry("국어", GroupKorean, 2, 1, 5),
		scoredEntry("국어", GroupKorean, 1, 1, 1),
		scoredEntry("국어", GroupKorean, 1, 2, 3),
	}

	rec := ComputeVolatility("abc", entries)

	require.NotNil(t, rec.MeanAbsTermChange)
	assert.InDelta(t, 2.0, *rec.MeanAbsTermChange, 1e-9)
}

func TestComputeVolatility_GroupAndGradeYearBreakdowns(t *testing.T) {
	entries := []domain.GradeEntry{
		scoredEntry("국어", GroupKorean, 1, 1, 1),
		scoredEntry("문학", GroupKorean, 1, 2, 3),
		scoredEntry("수학", GroupMath, 2, 1, 2),
	}

	rec := ComputeVolatility("abc", entries)

	require.Contains(t, rec.GroupStdDev, GroupKorean)
	require.NotNil(t, rec.GroupStdDev[GroupKorean])
	assert.InDelta(t, 1.4142135, *rec.GroupStdDev[GroupKorean], 1e-6)
	assert.Nil(t, rec.GroupStdDev[GroupMath])

	require.NotNil(t, rec.GradeYearStdDev[1])
	assert.Nil(t, rec.GradeYearStdDev[2])
}
