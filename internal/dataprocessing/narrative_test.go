package dataprocessing

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transcriptcli/pkg/contracts/domain"
)

func narrativeBlock(text string) domain.RawBlock {
	return domain.RawBlock{Kind: domain.BlockNarrative, Text: text}
}

func TestExtractNarratives_PerSubjectSplit(t *testing.T) {
	subjects := NewSubjectMapping(0.70)
	acc := &Accumulator{}

	block := narrativeBlock(
		"세부능력 및 특기사항\n" +
			"국어: 토론 수업에서 자료 조사와 분석을 주도하며 모둠활동을 이끌었음. 발표 태도가 우수함.\n" +
			"수학: 확률 단원의 과제연구 프로젝트에서 데이터 수집과 검증 과정을 보고서로 정리하여 제출함.",
	)

	records := ExtractNarratives(block, testIdentity(), subjects, 20, acc)
	require.Len(t, records, 2)

	assert.Equal(t, "국어", records[0].Category)
	assert.Equal(t, "수학", records[1].Category)
	assert.Equal(t, "abcdef0123456789", records[0].StudentID)

	// 조사, 분석, 모둠활동 in the first entry.
	assert.Equal(t, 3, records[0].ExplorationCount)
	assert.Positive(t, records[0].QualitativeCount)
	assert.Zero(t, records[0].OnlineCount)
}

func TestExtractNarratives_OnlineKeywordsCounted(t *testing.T) {
	subjects := NewSubjectMapping(0.70)
	acc := &Accumulator{}

	block := narrativeBlock(
		"영어: 원격수업 기간 중 Zoom 화상 토의에 실시간으로 참여하였고 EBS 강의를 활용하여 복습함.",
	)

	records := ExtractNarratives(block, testIdentity(), subjects, 20, acc)
	require.Len(t, records, 1)

	// 원격수업 contains 원격 as a substring, so it counts twice by design;
	// zoom and ebs match case-insensitively.
	assert.GreaterOrEqual(t, records[0].OnlineCount, 5)
}

// Doubling the text while doubling keyword occurrences leaves the rate
// unchanged.
func TestExtractNarratives_RateScaleInvariant(t *testing.T) {
	base := "실험 설계를 맡아 관찰 결과를 기록하고 정리하였으며 이를 바탕으로 원리를 설명함. 꼼꼼한 기록 습관이 돋보임."

	single := newNarrativeRecord("s", "과학", base)
	double := newNarrativeRecord("s", "과학", base+base)

	require.Positive(t, single.ExplorationCount)
	assert.Equal(t, single.ExplorationCount*2, double.ExplorationCount)
	assert.InDelta(t, single.ExplorationRate, double.ExplorationRate, 1e-9)
}

func TestNewNarrativeRecord_EmptyText(t *testing.T) {
	rec := newNarrativeRecord("s", "국어", "")

	assert.Zero(t, rec.TextLength)
	assert.Zero(t, rec.ExplorationCount)
	assert.Zero(t, rec.OnlineCount)
	assert.Zero(t, rec.QualitativeCount)
	assert.Zero(t, rec.ExplorationRate)
	assert.False(t, math.IsNaN(rec.OnlineRate))
}

func TestNewNarrativeRecord_OccurrencesNotPresence(t *testing.T) {
	rec := newNarrativeRecord("s", "과학", "실험 실험 실험")
	assert.Equal(t, 3, rec.ExplorationCount)
}

func TestNewNarrativeRecord_ShortTextScalesProportionally(t *testing.T) {
	// 10 runes, 1 occurrence: 100 per 1000 runes, not a special-cased zero.
	text := "실험을하고기록했다"
	rec := newNarrativeRecord("s", "과학", text)
	require.Equal(t, 1, rec.ExplorationCount)
	assert.InDelta(t, 1000.0/float64(rec.TextLength), rec.ExplorationRate, 1e-9)
}

func TestExtractNarratives_ShortFragmentFoldsIntoPrevious(t *testing.T) {
	subjects := NewSubjectMapping(0.70)
	acc := &Accumulator{}

	block := narrativeBlock(
		"문학: 시 감상문 쓰기 활동에서 자신의 경험과 연결한 해석을 제시하였고 낭독 발표에 참여함.\n" +
			"비고: 우수.",
	)

	records := ExtractNarratives(block, testIdentity(), subjects, 20, acc)
	require.Len(t, records, 1)
	assert.Equal(t, "문학", records[0].Category)

	// The folded fragment's runes count toward the surviving record.
	assert.Greater(t, records[0].TextLength, 40)
}

func TestExtractNarratives_KeywordSetSizes(t *testing.T) {
	assert.Len(t, explorationKeywords, 26)
	assert.Len(t, onlineKeywords, 22)
	assert.Len(t, qualitativeKeywords, 20)

	// Sets must be lowercase so case-insensitive counting works.
	for _, kw := range onlineKeywords {
		assert.Equal(t, strings.ToLower(kw), kw)
	}
}
