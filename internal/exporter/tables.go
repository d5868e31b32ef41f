package exporter

import (
	"fmt"
	"strconv"

	"transcriptcli/internal/dataprocessing"
	"transcriptcli/pkg/contracts/domain"
)

// Output table filenames.
const (
	StudentsFile      = "students.csv"
	GradesFile        = "grades.csv"
	NarrativesFile    = "narratives.csv"
	VolatilityFile    = "volatility.csv"
	YearlyFlagsFile   = "yearly_flags.csv"
	KeywordTotalsFile = "keyword_totals.csv"
)

// StudentHeaders returns the students table column order. The raw student ID
// and name never leave the pipeline; rows key on the derived anonymous ID.
func StudentHeaders() []string {
	return []string{
		"student_id", "admission_year", "grade_level", "department", "track",
		"curriculum_revision", "source_file",
		"grade1_year", "grade2_year", "grade3_year",
		"disrupted_grade1", "disrupted_grade2", "disrupted_grade3",
		"disruption_intensity", "disruption_any",
	}
}

// StudentRow flattens one student record into its CSV row.
func StudentRow(s domain.StudentRecord) []string {
	return []string{
		s.Identity.AnonymousID,
		intOrEmpty(s.Identity.AdmissionYear),
		strconv.Itoa(s.Identity.GradeLevel),
		s.Identity.Department,
		s.Identity.Track,
		strconv.Itoa(dataprocessing.CurriculumRevision(s.Identity.AdmissionYear)),
		s.Identity.SourceFile,
		intOrEmpty(s.GradeYears[1]),
		intOrEmpty(s.GradeYears[2]),
		intOrEmpty(s.GradeYears[3]),
		formatBool(s.Disruption.Grade1),
		formatBool(s.Disruption.Grade2),
		formatBool(s.Disruption.Grade3),
		strconv.Itoa(s.Disruption.Intensity),
		formatBool(s.Disruption.Any),
	}
}

// GradeHeaders returns the grades table column order.
func GradeHeaders() []string {
	return []string{
		"student_id", "grade_year", "term", "year",
		"raw_subject", "subject", "subject_group", "units",
		"raw_score", "achievement", "rank", "score",
		"match_tier", "match_score",
	}
}

// GradeRow flattens one grade entry into its CSV row. Absent numeric values
// become empty cells, never zeros.
func GradeRow(g domain.GradeEntry) []string {
	return []string{
		g.StudentID,
		strconv.Itoa(g.GradeYear),
		strconv.Itoa(g.Term),
		intOrEmpty(g.Year),
		g.RawSubject,
		g.Subject,
		g.SubjectGroup,
		strconv.Itoa(g.Units),
		floatOrEmpty(g.RawScore),
		g.Achievement,
		g.Rank,
		floatOrEmpty(g.Score),
		g.MatchTier,
		formatFloat(g.MatchScore),
	}
}

// NarrativeHeaders returns the narratives table column order.
func NarrativeHeaders() []string {
	return []string{
		"student_id", "grade_year", "category", "text_length",
		"exploration_count", "online_count", "qualitative_count",
		"exploration_rate", "online_rate", "qualitative_rate",
	}
}

// NarrativeRow flattens one narrative record into its CSV row.
func NarrativeRow(n domain.NarrativeRecord) []string {
	return []string{
		n.StudentID,
		intOrEmpty(n.GradeYear),
		n.Category,
		strconv.Itoa(n.TextLength),
		strconv.Itoa(n.ExplorationCount),
		strconv.Itoa(n.OnlineCount),
		strconv.Itoa(n.QualitativeCount),
		formatFloat(n.ExplorationRate),
		formatFloat(n.OnlineRate),
		formatFloat(n.QualitativeRate),
	}
}

// VolatilityHeaders returns the volatility table column order: the overall
// statistics followed by one column per subject group and per grade year.
func VolatilityHeaders() []string {
	headers := []string{
		"student_id", "score_count", "overall_mean", "overall_std_dev",
		"coefficient_of_variation", "mean_abs_term_change",
	}
	for _, group := range dataprocessing.SubjectGroups() {
		headers = append(headers, group+"_std_dev")
	}
	for grade := 1; grade <= 3; grade++ {
		headers = append(headers, fmt.Sprintf("grade%d_std_dev", grade))
	}
	return headers
}

// VolatilityRow flattens one volatility record into its CSV row. Statistics
// that could not be computed stay empty.
func VolatilityRow(v domain.VolatilityRecord) []string {
	row := []string{
		v.StudentID,
		strconv.Itoa(v.ScoreCount),
		floatOrEmpty(v.OverallMean),
		floatOrEmpty(v.OverallStdDev),
		floatOrEmpty(v.CoefficientOfVariation),
		floatOrEmpty(v.MeanAbsTermChange),
	}
	for _, group := range dataprocessing.SubjectGroups() {
		row = append(row, floatOrEmpty(v.GroupStdDev[group]))
	}
	for grade := 1; grade <= 3; grade++ {
		row = append(row, floatOrEmpty(v.GradeYearStdDev[grade]))
	}
	return row
}

// YearlyFlagHeaders returns the yearly flags table column order.
func YearlyFlagHeaders() []string {
	return []string{"student_id", "grade_year", "year", "disrupted"}
}

// YearlyFlagRow flattens one yearly flag into its CSV row.
func YearlyFlagRow(f domain.YearlyFlag) []string {
	return []string{
		f.StudentID,
		strconv.Itoa(f.GradeYear),
		strconv.Itoa(f.Year),
		formatBool(f.Disrupted),
	}
}

// KeywordTotalHeaders returns the keyword totals table column order.
func KeywordTotalHeaders() []string {
	return []string{"student_id", "exploration_total", "online_total", "qualitative_total"}
}

// KeywordTotalRow flattens one keyword totals record into its CSV row.
func KeywordTotalRow(k domain.KeywordTotals) []string {
	return []string{
		k.StudentID,
		strconv.Itoa(k.ExplorationTotal),
		strconv.Itoa(k.OnlineTotal),
		strconv.Itoa(k.QualitativeTotal),
	}
}

// formatFloat renders a float with four decimal places, the precision every
// numeric column shares.
func formatFloat(v float64) string {
	return fmt.Sprintf("%.4f", v)
}

// floatOrEmpty renders an optional float, empty when absent.
func floatOrEmpty(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}

// intOrEmpty renders an int whose zero value means unknown.
func intOrEmpty(v int) string {
	if v == 0 {
		return ""
	}
	return strconv.Itoa(v)
}

func formatBool(v bool) string {
	return strconv.FormatBool(v)
}
