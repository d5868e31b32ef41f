package dataprocessing

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agext/levenshtein"

	"transcriptcli/pkg/contracts/domain"
)

// Subject group names used across the output tables.
const (
	GroupKorean     = "국어"
	GroupMath       = "수학"
	GroupEnglish    = "영어"
	GroupSocial     = "사회"
	GroupScience    = "과학"
	GroupPE         = "체육"
	GroupArts       = "예술"
	GroupTechHome   = "기술가정"
	GroupSecondLang = "제2외국어"
	GroupGeneral    = "교양"
	// GroupUnmapped is the sentinel group for labels that no tier could
	// resolve. Rows land here instead of being dropped.
	GroupUnmapped = "미분류"
)

// SubjectGroups returns the fixed group column order used by the volatility
// table. GroupUnmapped is last.
func SubjectGroups() []string {
	return []string{
		GroupKorean, GroupMath, GroupEnglish, GroupSocial, GroupScience,
		GroupPE, GroupArts, GroupTechHome, GroupSecondLang, GroupGeneral,
		GroupUnmapped,
	}
}

// subjectDef declares one canonical subject and the raw spellings that map
// to it. Spelling variants beyond these (spacing, Roman numeral forms) are
// handled mechanically by the cleaned-label tier.
type subjectDef struct {
	canonical string
	aliases   []string
}

// baseSubjects are offered under both curriculum revisions.
var baseSubjects = []subjectDef{
	{canonical: "국어"},
	{canonical: "문학"},
	{canonical: "독서"},
	{canonical: "화법과 작문", aliases: []string{"화법과작문"}},
	{canonical: "고전읽기", aliases: []string{"고전"}},
	{canonical: "수학"},
	{canonical: "수학Ⅰ", aliases: []string{"수학 I"}},
	{canonical: "수학Ⅱ", aliases: []string{"수학 II"}},
	{canonical: "확률과 통계", aliases: []string{"확률과통계"}},
	{canonical: "영어"},
	{canonical: "영어Ⅰ", aliases: []string{"영어 I"}},
	{canonical: "영어Ⅱ", aliases: []string{"영어 II"}},
	{canonical: "영어회화"},
	{canonical: "영어독해와 작문", aliases: []string{"영어독해와작문"}},
	{canonical: "한국사"},
	{canonical: "한국지리"},
	{canonical: "세계지리"},
	{canonical: "세계사"},
	{canonical: "동아시아사"},
	{canonical: "경제"},
	{canonical: "사회·문화", aliases: []string{"사회문화"}},
	{canonical: "생활과 윤리", aliases: []string{"생활과윤리"}},
	{canonical: "윤리와 사상", aliases: []string{"윤리와사상"}},
	{canonical: "물리학Ⅰ", aliases: []string{"물리 I", "물리학 I"}},
	{canonical: "물리학Ⅱ", aliases: []string{"물리 II", "물리학 II"}},
	{canonical: "화학Ⅰ", aliases: []string{"화학 I"}},
	{canonical: "화학Ⅱ", aliases: []string{"화학 II"}},
	{canonical: "생명과학Ⅰ", aliases: []string{"생명과학 I"}},
	{canonical: "생명과학Ⅱ", aliases: []string{"생명과학 II"}},
	{canonical: "지구과학Ⅰ", aliases: []string{"지구과학 I"}},
	{canonical: "지구과학Ⅱ", aliases: []string{"지구과학 II"}},
	{canonical: "체육"},
	{canonical: "운동과 건강", aliases: []string{"운동과건강"}},
	{canonical: "스포츠 생활", aliases: []string{"스포츠생활"}},
	{canonical: "음악"},
	{canonical: "음악 감상과 비평", aliases: []string{"음악감상과비평"}},
	{canonical: "미술"},
	{canonical: "미술창작"},
	{canonical: "미술 감상과 비평", aliases: []string{"미술감상과비평"}},
	{canonical: "기술·가정", aliases: []string{"기술가정", "기술 . 가정"}},
	{canonical: "정보"},
	{canonical: "한문Ⅰ", aliases: []string{"한문 I", "한문"}},
	{canonical: "한문Ⅱ", aliases: []string{"한문 II"}},
	{canonical: "중국어Ⅰ", aliases: []string{"중국어 I"}},
	{canonical: "중국어Ⅱ", aliases: []string{"중국어 II"}},
	{canonical: "일본어Ⅰ", aliases: []string{"일본어 I"}},
	{canonical: "일본어Ⅱ", aliases: []string{"일본어 II"}},
	{canonical: "독일어Ⅰ"},
	{canonical: "프랑스어Ⅰ"},
	{canonical: "스페인어Ⅰ"},
	{canonical: "논술"},
	{canonical: "진로와 직업", aliases: []string{"진로와직업"}},
	{canonical: "철학"},
	{canonical: "심리학"},
	{canonical: "교육학"},
	{canonical: "실용경제"},
}

// subjects2009 existed only under the 2009 revision.
var subjects2009 = []subjectDef{
	{canonical: "국어Ⅰ", aliases: []string{"국어 I"}},
	{canonical: "국어Ⅱ", aliases: []string{"국어 II"}},
	{canonical: "독서와 문법", aliases: []string{"독서와문법"}},
	{canonical: "미적분Ⅰ", aliases: []string{"미적분 I"}},
	{canonical: "미적분Ⅱ", aliases: []string{"미적분 II"}},
	{canonical: "기하와 벡터", aliases: []string{"기하와벡터"}},
	{canonical: "실용영어Ⅰ", aliases: []string{"실용영어 I"}},
	{canonical: "실용영어Ⅱ", aliases: []string{"실용영어 II"}},
	{canonical: "실용영어"},
	{canonical: "법과정치", aliases: []string{"법과 정치"}},
	{canonical: "사회"},
	{canonical: "과학"},
	{canonical: "융합과학"},
	{canonical: "음악과생활", aliases: []string{"음악과 생활"}},
}

// subjects2015 were introduced by the 2015 revision.
var subjects2015 = []subjectDef{
	{canonical: "언어와 매체", aliases: []string{"언어와매체"}},
	{canonical: "미적분"},
	{canonical: "기하"},
	{canonical: "통합사회"},
	{canonical: "통합과학"},
	{canonical: "과학탐구실험", aliases: []string{"과학탐구 실험"}},
	{canonical: "정치와 법", aliases: []string{"정치와법"}},
	{canonical: "스포츠문화"},
	{canonical: "스포츠과학"},
	{canonical: "음악과진로", aliases: []string{"음악과 진로"}},
}

type subjectEntry struct {
	canonical string
	group     string
}

// SubjectMapping is the static reference table mapping (curriculum revision,
// raw label) to (canonical subject, subject group). It is immutable for the
// duration of a run; lookups are safe from concurrent goroutines.
type SubjectMapping struct {
	exact      map[int]map[string]subjectEntry
	cleaned    map[int]map[string]subjectEntry
	canonicals map[int][]string // sorted, for deterministic fuzzy iteration
	aliasCount map[int]map[string]int
	threshold  float64
}

// NewSubjectMapping builds the mapping table for both curriculum revisions.
// threshold is the minimum fuzzy similarity for tier-3 acceptance.
func NewSubjectMapping(threshold float64) *SubjectMapping {
	m := &SubjectMapping{
		exact:      make(map[int]map[string]subjectEntry),
		cleaned:    make(map[int]map[string]subjectEntry),
		canonicals: make(map[int][]string),
		aliasCount: make(map[int]map[string]int),
		threshold:  threshold,
	}

	revisionDefs := map[int][][]subjectDef{
		2009: {baseSubjects, subjects2009},
		2015: {baseSubjects, subjects2015},
	}

	for rev, defSets := range revisionDefs {
		m.exact[rev] = make(map[string]subjectEntry)
		m.cleaned[rev] = make(map[string]subjectEntry)
		m.aliasCount[rev] = make(map[string]int)

		for _, defs := range defSets {
			for _, def := range defs {
				entry := subjectEntry{
					canonical: def.canonical,
					group:     classifySubjectGroup(def.canonical),
				}
				m.exact[rev][def.canonical] = entry
				m.cleaned[rev][cleanSubjectLabel(def.canonical)] = entry
				m.aliasCount[rev][def.canonical] = 1 + len(def.aliases)
				m.canonicals[rev] = append(m.canonicals[rev], def.canonical)

				for _, alias := range def.aliases {
					m.exact[rev][alias] = entry
					m.cleaned[rev][cleanSubjectLabel(alias)] = entry
				}
			}
		}
		sort.Strings(m.canonicals[rev])
	}

	return m
}

// Normalize resolves a raw subject label under the given curriculum revision
// using three tiers: exact lookup, cleaned lookup, then fuzzy similarity
// against every canonical label of the revision. Ties on similarity prefer
// the canonical label with more raw spellings in the table, then the
// lexicographically smaller label, so repeated lookups are reproducible.
// An unresolvable label returns the unmapped sentinel, never an error.
func (m *SubjectMapping) Normalize(revision int, raw string) domain.SubjectMatch {
	if _, ok := m.exact[revision]; !ok {
		revision = 2015
	}

	label := strings.Join(strings.Fields(raw), " ")
	if utf8.RuneCountInString(label) < 2 {
		return unmappedMatch(raw)
	}

	if entry, ok := m.exact[revision][label]; ok {
		return domain.SubjectMatch{
			Canonical: entry.canonical,
			Group:     entry.group,
			Tier:      domain.MatchExact,
			Score:     1.0,
			Matched:   true,
		}
	}

	cleanedLabel := cleanSubjectLabel(label)
	if entry, ok := m.cleaned[revision][cleanedLabel]; ok {
		return domain.SubjectMatch{
			Canonical: entry.canonical,
			Group:     entry.group,
			Tier:      domain.MatchCleaned,
			Score:     1.0,
			Matched:   true,
		}
	}

	var bestLabel string
	var bestScore float64
	for _, canonical := range m.canonicals[revision] {
		score := levenshtein.Similarity(cleanedLabel, cleanSubjectLabel(canonical), nil)
		if score > bestScore {
			bestLabel, bestScore = canonical, score
			continue
		}
		if score == bestScore && bestLabel != "" {
			if m.aliasCount[revision][canonical] > m.aliasCount[revision][bestLabel] {
				bestLabel = canonical
			}
			// Equal score and equal alias count: canonicals iterate in sorted
			// order, so the lexicographically smaller label is already held.
		}
	}

	if bestScore >= m.threshold {
		entry := m.exact[revision][bestLabel]
		return domain.SubjectMatch{
			Canonical: entry.canonical,
			Group:     entry.group,
			Tier:      domain.MatchFuzzy,
			Score:     bestScore,
			Matched:   true,
		}
	}

	return unmappedMatch(raw)
}

// Labels returns the canonical labels of a revision in sorted order.
func (m *SubjectMapping) Labels(revision int) []string {
	return append([]string(nil), m.canonicals[revision]...)
}

func unmappedMatch(raw string) domain.SubjectMatch {
	return domain.SubjectMatch{
		Canonical: strings.TrimSpace(raw),
		Group:     GroupUnmapped,
		Tier:      domain.MatchNone,
		Score:     0,
		Matched:   false,
	}
}

var subjectLabelCleaner = strings.NewReplacer(
	" ", "", "\t", "", ".", "", "·", "", "/", "",
	"Ⅰ", "I", "Ⅱ", "II",
)

// cleanSubjectLabel strips spacing and punctuation noise and folds Roman
// numeral codepoints so OCR variants of the same label collide.
func cleanSubjectLabel(label string) string {
	return strings.ToLower(subjectLabelCleaner.Replace(label))
}

// classifySubjectGroup buckets a canonical subject into its coarse group.
// Bucket order matters: 중국어 contains 국어 and 영어독해와 작문 contains
// 작문, so the second-language and English buckets run before the Korean one.
func classifySubjectGroup(subject string) string {
	switch {
	case containsAny(subject, "독일어", "프랑스어", "스페인어", "중국어", "일본어", "한문"):
		return GroupSecondLang
	case containsAny(subject, "영어", "English"):
		return GroupEnglish
	case containsAny(subject, "국어", "화법", "작문", "독서", "언어", "문학", "고전", "논술"):
		return GroupKorean
	case containsAny(subject, "수학", "미적분", "확률", "통계", "기하"):
		return GroupMath
	case containsAny(subject, "역사", "한국사", "세계사", "동아시아", "지리", "경제", "정치", "법", "사회", "윤리"):
		return GroupSocial
	case containsAny(subject, "과학", "물리", "화학", "생명", "지구", "융합"):
		return GroupScience
	case containsAny(subject, "체육", "운동", "스포츠"):
		return GroupPE
	case containsAny(subject, "음악", "미술", "연극", "예술"):
		return GroupArts
	case containsAny(subject, "기술", "가정", "정보"):
		return GroupTechHome
	default:
		return GroupGeneral
	}
}

func containsAny(s string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
