package dataprocessing

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strconv"

	"transcriptcli/internal/errors"
	"transcriptcli/pkg/contracts/domain"
)

// filenamePattern is the fixed corpus naming convention:
// {id}_{N}학년_{department}_{name}_{track}_censored.txt
var filenamePattern = regexp.MustCompile(`^([^_]+)_(\d)학년_([^_]+)_([^_]+)_([^_]+)_censored\.txt$`)

// admissionYearPattern matches a plausible admission year prefix on the raw
// student ID, e.g. "2019" in "201901234".
var admissionYearPattern = regexp.MustCompile(`^(20[0-2]\d)`)

// DecodeFilename parses a document filename into a StudentIdentity.
// On mismatch it returns a FILENAME_FORMAT error carrying the filename; the
// corpus driver logs the document as skipped and continues. No side effects.
func DecodeFilename(name string) (domain.StudentIdentity, error) {
	m := filenamePattern.FindStringSubmatch(name)
	if m == nil {
		return domain.StudentIdentity{}, errors.NewFilenameFormatError(name)
	}

	gradeLevel, err := strconv.Atoi(m[2])
	if err != nil {
		return domain.StudentIdentity{}, errors.NewFilenameFormatError(name)
	}

	id := domain.StudentIdentity{
		StudentID:   m[1],
		GradeLevel:  gradeLevel,
		Department:  m[3],
		Name:        m[4],
		Track:       m[5],
		SourceFile:  name,
		AnonymousID: AnonymousID(m[4], m[1]),
	}

	if ym := admissionYearPattern.FindStringSubmatch(id.StudentID); ym != nil {
		id.AdmissionYear, _ = strconv.Atoi(ym[1])
	}

	return id, nil
}

// AnonymousID derives the pseudonymous identifier all output tables key on:
// the first 16 hex characters of sha256(name + "_" + studentID).
func AnonymousID(name, studentID string) string {
	sum := sha256.Sum256([]byte(name + "_" + studentID))
	return hex.EncodeToString(sum[:])[:16]
}

// CurriculumRevision maps an admission year to the curriculum revision whose
// subject naming that cohort follows. Cohorts admitted before 2018 sit on the
// 2009 revision; later cohorts on the 2015 revision. An unknown admission
// year defaults to the 2015 revision, the corpus majority.
func CurriculumRevision(admissionYear int) int {
	if admissionYear != 0 && admissionYear < 2018 {
		return 2009
	}
	return 2015
}
