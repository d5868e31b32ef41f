package domain

// NarrativeRecord is one (student, subject-or-category) narrative text block
// with its derived keyword features. Counts are always computed; empty text
// yields zero counts and zero rates, never missing fields. Rates are
// occurrences per 1000 runes of block text.
type NarrativeRecord struct {
	StudentID        string  `json:"student_id"`
	GradeYear        int     `json:"grade_year"` // 0 when the section carries no year marker
	Category         string  `json:"category"`
	TextLength       int     `json:"text_length"` // runes, not bytes
	ExplorationCount int     `json:"exploration_count"`
	OnlineCount      int     `json:"online_count"`
	QualitativeCount int     `json:"qualitative_count"`
	ExplorationRate  float64 `json:"exploration_rate"`
	OnlineRate       float64 `json:"online_rate"`
	QualitativeRate  float64 `json:"qualitative_rate"`
}

// KeywordTotals is one per-student row of summed keyword counts across all
// of the student's narrative records.
type KeywordTotals struct {
	StudentID        string `json:"student_id"`
	ExplorationTotal int    `json:"exploration_total"`
	OnlineTotal      int    `json:"online_total"`
	QualitativeTotal int    `json:"qualitative_total"`
}
