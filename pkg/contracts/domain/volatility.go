package domain

// VolatilityRecord holds the per-student dispersion metrics derived from the
// student's scored grade entries. Every statistic requires at least two
// qualifying observations; with fewer the field is nil, never zero.
// CoefficientOfVariation is additionally nil when the mean is zero.
type VolatilityRecord struct {
	StudentID              string              `json:"student_id"`
	ScoreCount             int                 `json:"score_count"`
	OverallMean            *float64            `json:"overall_mean"`
	OverallStdDev          *float64            `json:"overall_std_dev"`
	CoefficientOfVariation *float64            `json:"coefficient_of_variation"`
	MeanAbsTermChange      *float64            `json:"mean_abs_term_change"`
	GroupStdDev            map[string]*float64 `json:"group_std_dev"`
	GradeYearStdDev        map[int]*float64    `json:"grade_year_std_dev"`
}
