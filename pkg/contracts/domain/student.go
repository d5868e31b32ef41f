package domain

// StudentIdentity holds the identity and cohort metadata decoded from a
// document filename. StudentID is the raw identifier from the filename;
// AnonymousID is the SHA-256 derived identifier that all output tables key on.
type StudentIdentity struct {
	StudentID     string `json:"student_id"`
	AnonymousID   string `json:"anonymous_id"`
	AdmissionYear int    `json:"admission_year"` // 0 when the ID carries no year prefix
	GradeLevel    int    `json:"grade_level"`
	Department    string `json:"department"`
	Name          string `json:"name"`
	Track         string `json:"track"`
	SourceFile    string `json:"source_file"`
}

// GradeYears maps a grade year (1..3) to the calendar year the student
// attended it, as estimated from dated patterns in the document body.
// A missing entry means the year could not be determined.
type GradeYears map[int]int

// DisruptionFlags marks which of a student's grade years fall inside the
// disruption window (calendar years 2020 through 2022).
type DisruptionFlags struct {
	Grade1    bool `json:"grade1"`
	Grade2    bool `json:"grade2"`
	Grade3    bool `json:"grade3"`
	Intensity int  `json:"intensity"` // number of affected grade years, 0..3
	Any       bool `json:"any"`
}

// StudentRecord is one row of the student info table: identity plus the
// derived cohort fields.
type StudentRecord struct {
	Identity   StudentIdentity `json:"identity"`
	GradeYears GradeYears      `json:"grade_years"`
	Disruption DisruptionFlags `json:"disruption"`
}

// YearlyFlag is one (student, grade year) row of the yearly disruption table.
type YearlyFlag struct {
	StudentID string `json:"student_id"`
	GradeYear int    `json:"grade_year"`
	Year      int    `json:"year"`
	Disrupted bool   `json:"disrupted"`
}
