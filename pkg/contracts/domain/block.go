package domain

// BlockKind identifies the section type a RawBlock was segmented into.
type BlockKind string

const (
	BlockGrades    BlockKind = "grades"
	BlockNarrative BlockKind = "narrative"
	BlockOther     BlockKind = "other"
)

// RawBlock is a contiguous span of document text tagged with the section
// kind its heading matched. Blocks are consumed immediately by the matching
// extractor and never stored.
type RawBlock struct {
	Kind  BlockKind `json:"kind"`
	Label string    `json:"label"`
	Text  string    `json:"text"`
	Line  int       `json:"line"` // 1-based line of the heading in the document
}
