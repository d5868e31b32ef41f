package domain

// MatchTier records which lookup tier resolved a raw subject label.
type MatchTier string

const (
	MatchExact   MatchTier = "exact"
	MatchCleaned MatchTier = "cleaned"
	MatchFuzzy   MatchTier = "fuzzy"
	MatchNone    MatchTier = "none"
)

// SubjectMatch is the result of normalizing a raw subject label.
// When Matched is false, Canonical echoes the raw label and Group is the
// unmapped sentinel group.
type SubjectMatch struct {
	Canonical string    `json:"canonical"`
	Group     string    `json:"group"`
	Tier      MatchTier `json:"tier"`
	Score     float64   `json:"score"`
	Matched   bool      `json:"matched"`
}

// GradeEntry is one (student, subject, term) grade observation.
// Score is the numeric grade point derived from the achievement mark or rank
// band on a 1..5 scale; it is nil when the row reports only a qualitative
// mark (such as P) or no parsable mark at all.
type GradeEntry struct {
	StudentID    string   `json:"student_id"`
	GradeYear    int      `json:"grade_year"`
	Term         int      `json:"term"`
	Year         int      `json:"year"` // calendar year, 0 when unknown
	RawSubject   string   `json:"raw_subject"`
	Subject      string   `json:"subject"`
	SubjectGroup string   `json:"subject_group"`
	Units        int      `json:"units"`
	RawScore     *float64 `json:"raw_score"` // exam score as printed, nil when absent
	Achievement  string   `json:"achievement"`
	Rank         string   `json:"rank"`
	Score        *float64 `json:"score"`
	MatchTier    string   `json:"match_tier"`
	MatchScore   float64  `json:"match_score"`
}
