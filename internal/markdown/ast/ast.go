// Package ast defines the block and inline-run data model the parser
// (internal/markdown/block, internal/markdown/inline) produces and the
// renderer (internal/render) and cache (internal/markdown/cache) consume.
//
// Blocks and runs are stored in parallel slices owned by the cache rather
// than as a pointer-linked tree: a Block references its inline runs by a
// (start, count) index pair into a shared run slice. This keeps the whole
// parsed document contiguous and trivially copyable, and sidesteps the
// ownership questions a pointer-rich tree would raise.
package ast

// BlockType classifies a block's markdown construct.
type BlockType int

const (
	Paragraph BlockType = iota
	Header
	ListItem
	Blockquote
	Code
	Math
	Table
	Image
	HR
	FootnoteDef
)

// Alignment is a table column's (or cell's) horizontal alignment.
type Alignment int

const (
	AlignDefault Alignment = iota
	AlignLeft
	AlignRight
	AlignCenter
)

// TaskState is a list item's optional checkbox state.
type TaskState int

const (
	TaskNone TaskState = iota
	TaskUnchecked
	TaskChecked
)

// Span is a byte range, always [Start, End).
type Span struct {
	Start int
	End   int
}

// Empty reports whether the span contains no bytes.
func (s Span) Empty() bool { return s.End <= s.Start }

// Len returns the span's byte length.
func (s Span) Len() int { return s.End - s.Start }

// TableCell is one cell of a Table block.
type TableCell struct {
	Span      Span
	Align     Alignment
	RunStart  int
	RunCount  int
}

// HeaderPayload holds header-specific metadata.
type HeaderPayload struct {
	Level        int // 1..6
	ContentStart int // byte offset where heading text begins (after "# ")
}

// ListPayload holds list-item-specific metadata.
type ListPayload struct {
	Indent       int
	ContentStart int
	Ordered      bool
	OrderValue   int // the numeric value of an ordered marker, e.g. 2 for "2."
	Task         TaskState
}

// BlockquotePayload holds blockquote-specific metadata.
type BlockquotePayload struct {
	Level int
}

// CodePayload holds fenced-code-specific metadata.
type CodePayload struct {
	Language Span
	Content  Span
	FenceCh  byte // '`' or '~'
	FenceLen int
}

// MathPayload holds block-math-specific metadata.
type MathPayload struct {
	Content Span
	Sketch  *Sketch // lazily populated, owned by the cache; nil until rendered once
}

// TablePayload holds table-specific metadata.
type TablePayload struct {
	Rows    int
	Cols    int
	Aligns  []Alignment
	Cells   [][]TableCell // Cells[row][col]
}

// ImagePayload holds image-specific metadata. Width/Height: positive values
// are cell counts, negative values encode a percentage (-N means N%).
type ImagePayload struct {
	Alt    Span
	Path   Span
	Title  Span
	Width  int
	Height int
}

// FootnotePayload holds footnote-definition-specific metadata.
type FootnotePayload struct {
	ID           Span
	ContentStart int
}

// Block is one contiguous, typed region of the document.
type Block struct {
	Span               Span
	Type               BlockType
	LeadingBlankLines  int
	BlankStart         int
	VRowStart          int
	VRowCount          int

	Header      HeaderPayload
	List        ListPayload
	Blockquote  BlockquotePayload
	Code        CodePayload
	Math        MathPayload
	Table       TablePayload
	Image       ImagePayload
	Footnote    FootnotePayload

	RunStart int
	RunCount int
}

// HasProse reports whether this block type carries inline runs.
func (b *Block) HasProse() bool {
	switch b.Type {
	case Paragraph, Header, ListItem, Blockquote, FootnoteDef:
		return true
	default:
		return false
	}
}

// RunType classifies an inline run.
type RunType int

const (
	Text RunType = iota
	Delim
	Link
	InlineMath
	FootnoteRef
	HeadingID
	Emoji
	Autolink
	Entity
	Escape
)

// DelimKind identifies which delimiter family a Delim run belongs to.
type DelimKind int

const (
	DelimStar1   DelimKind = iota // *em*
	DelimUnder1                   // _em_
	DelimStar2                    // **bold**
	DelimUnder2                   // __bold__
	DelimStrike                   // ~~strike~~
	DelimMark                     // ==mark==
	DelimCode                     // `code`
)

// StyleBit flags the visual style a Delim run toggles.
type StyleBit int

const (
	StyleItalic StyleBit = 1 << iota
	StyleBold
	StyleStrike
	StyleMark
	StyleCode
)

// DelimPayload is a Delim run's metadata.
type DelimPayload struct {
	Kind  DelimKind
	Open  bool // true if this is the opening half of a pair
	Style StyleBit
	// PairIndex is the run index of the matching open/close delimiter, or
	// -1 if this delimiter never paired and degraded to plain text styling.
	PairIndex int
}

// LinkPayload is a Link run's metadata.
type LinkPayload struct {
	Text Span
	URL  Span
}

// InlineMathPayload is an InlineMath run's metadata.
type InlineMathPayload struct {
	Content Span
	Sketch  *Sketch
}

// FootnoteRefPayload is a FootnoteRef run's metadata.
type FootnoteRefPayload struct {
	ID Span
}

// EmojiPayload is an Emoji run's metadata: the decoded UTF-8 replacement.
type EmojiPayload struct {
	Replacement string
}

// AutolinkPayload is an Autolink run's metadata.
type AutolinkPayload struct {
	URL Span
}

// EntityPayload is an Entity run's metadata: the decoded UTF-8 text.
type EntityPayload struct {
	Decoded string
}

// EscapePayload is an Escape run's metadata.
type EscapePayload struct {
	Char       byte
	HardBreak  bool // true when the escaped character was a newline
}

// Run is a typed, byte-bounded slice of a block's prose.
type Run struct {
	Span Span
	Type RunType

	Delim       DelimPayload
	Link        LinkPayload
	InlineMath  InlineMathPayload
	FootnoteRef FootnoteRefPayload
	Emoji       EmojiPayload
	Autolink    AutolinkPayload
	Entity      EntityPayload
	Escape      EscapePayload
}

// Cell is one styled cell of a rasterized math sketch.
type Cell struct {
	Rune  rune
	Style uint32 // opaque style attribute bits, interpreted by internal/render
}

// Sketch is a pre-rasterized 2-D grid of styled cells, used for block and
// inline math. Row 0 is the top row; sketches are cached on their owning
// block/run and dropped whenever the block cache is invalidated.
type Sketch struct {
	Rows [][]Cell
}

// Width returns the sketch's column count (widest row).
func (s *Sketch) Width() int {
	w := 0
	for _, row := range s.Rows {
		if len(row) > w {
			w = len(row)
		}
	}
	return w
}

// Height returns the sketch's row count.
func (s *Sketch) Height() int { return len(s.Rows) }
