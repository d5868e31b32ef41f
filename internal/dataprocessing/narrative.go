package dataprocessing

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"transcriptcli/pkg/contracts/domain"
)

// Keyword sets for the narrative-frequency features. Matching is
// case-insensitive substring counting: the source script has no word
// segmentation, so tokenized matching would undercount badly.
var (
	explorationKeywords = []string{
		"실험", "실습", "관찰", "측정", "분석", "탐구", "연구", "조사",
		"탐색", "발견", "현장", "답사", "견학", "방문", "체험",
		"프로젝트", "과제연구", "팀프로젝트", "모둠활동",
		"가설", "검증", "실험설계", "데이터", "결과분석", "보고서", "문제해결",
	}

	onlineKeywords = []string{
		"온라인", "원격", "비대면", "화상", "실시간", "쌍방향",
		"zoom", "줌", "구글클래스룸", "e-학습터", "e학습터", "이학습터",
		"ebs", "위두랑", "디지털", "인터넷", "원격수업",
		"온라인수업", "화상수업", "동영상", "영상", "lms",
	}

	qualitativeKeywords = []string{
		"과정", "노력", "태도", "참여", "열정", "몰입", "집중",
		"협력", "협동", "배려", "나눔", "소통", "공감", "존중",
		"성장", "발전", "개선", "극복", "도전", "변화",
	}
)

// narrativeLabelPattern finds "label:" boundaries that open a per-subject
// narrative entry within a narrative block.
var narrativeLabelPattern = regexp.MustCompile(`([가-힣A-Za-zⅠⅡ ]{2,}?) ?: ?`)

// ExtractNarratives splits one narrative block into per-subject records and
// computes the keyword-frequency features over each. Fragments shorter than
// minRunes are folded into the preceding record's text instead of being
// dropped. Keyword counts are always computed; empty text yields zeros.
func ExtractNarratives(
	block domain.RawBlock,
	identity domain.StudentIdentity,
	subjects *SubjectMapping,
	minRunes int,
	acc *Accumulator,
) []domain.NarrativeRecord {
	revision := CurriculumRevision(identity.AdmissionYear)
	text := strings.Join(strings.Fields(strings.ReplaceAll(block.Text, "\n", " ")), " ")

	// Strip the section heading itself so it cannot become a label.
	text = narrativeHeading.ReplaceAllString(text, "")

	type fragment struct {
		label string
		body  string
	}
	var fragments []fragment

	matches := narrativeLabelPattern.FindAllStringSubmatchIndex(text, -1)
	for i, m := range matches {
		label := strings.TrimSpace(text[m[2]:m[3]])
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		body := strings.TrimSpace(text[m[1]:end])

		if utf8.RuneCountInString(body) < minRunes && len(fragments) > 0 {
			// Too short to stand alone: continuation of the previous entry.
			fragments[len(fragments)-1].body += " " + label + ": " + body
			continue
		}
		fragments = append(fragments, fragment{label: label, body: body})
	}

	var records []domain.NarrativeRecord
	for _, frag := range fragments {
		category := frag.label
		if match := subjects.Normalize(revision, frag.label); match.Matched {
			category = match.Canonical
		}
		records = append(records, newNarrativeRecord(identity.AnonymousID, category, frag.body))
	}

	return records
}

// newNarrativeRecord computes the keyword features for one narrative text.
func newNarrativeRecord(studentID, category, text string) domain.NarrativeRecord {
	length := utf8.RuneCountInString(text)
	exploration := countKeywords(text, explorationKeywords)
	online := countKeywords(text, onlineKeywords)
	qualitative := countKeywords(text, qualitativeKeywords)

	return domain.NarrativeRecord{
		StudentID:        studentID,
		Category:         category,
		TextLength:       length,
		ExplorationCount: exploration,
		OnlineCount:      online,
		QualitativeCount: qualitative,
		ExplorationRate:  ratePerThousand(exploration, length),
		OnlineRate:       ratePerThousand(online, length),
		QualitativeRate:  ratePerThousand(qualitative, length),
	}
}

// countKeywords sums the case-insensitive occurrence counts of every term.
// Occurrences, not presence: a term appearing three times counts three.
func countKeywords(text string, keywords []string) int {
	lower := strings.ToLower(text)
	total := 0
	for _, kw := range keywords {
		total += strings.Count(lower, kw)
	}
	return total
}

// ratePerThousand scales a count to occurrences per 1000 runes. Texts
// shorter than 1000 runes produce a proportionally scaled rate; only a
// zero-length text yields zero.
func ratePerThousand(count, length int) float64 {
	if length == 0 {
		return 0
	}
	return float64(count) / float64(length) * 1000
}
