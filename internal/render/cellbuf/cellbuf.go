// Package cellbuf provides a fixed-size terminal cell grid and a diff
// routine that reduces two grids to the minimal set of "set this cell"
// operations, generalizing the teacher's cell-buffer diff service from a
// whole-screen renderer to the markdown renderer's block-by-block draw
// calls.
package cellbuf

// Attr is a comparable, cell-level style attribute set. It deliberately
// does not embed phxstyle.Style (whose internal option map isn't
// comparable with ==), keeping the cell grid itself cheaply diffable;
// internal/render/style.ToPhoenixStyle converts an Attr to a
// phxstyle.Style, though neither the renderer nor the host draws from a
// cell grid.
type Attr struct {
	Fg      uint32 // packed 0xRRGGBB, high bit set means "use terminal default"
	Bg      uint32
	Bold    bool
	Italic  bool
	Strike  bool
	Dim     bool
	Reverse bool
}

// DefaultAttr is the "use terminal default colors" style. It differs
// from the zero Attr, whose Fg and Bg of 0 are packed black.
var DefaultAttr = Attr{Fg: 1 << 31, Bg: 1 << 31}

// Cell is one terminal cell: a rune plus its rendered style.
type Cell struct {
	Rune  rune
	Style Attr
}

// Buffer is a fixed Width x Height grid of cells.
type Buffer struct {
	width, height int
	cells         []Cell
}

// New allocates a blank buffer of the given dimensions.
func New(width, height int) *Buffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Buffer{width: width, height: height, cells: make([]Cell, width*height)}
}

func (b *Buffer) Width() int  { return b.width }
func (b *Buffer) Height() int { return b.height }

func (b *Buffer) index(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return 0, false
	}
	return y*b.width + x, true
}

// Get returns the cell at (x, y), or a blank cell if out of range.
func (b *Buffer) Get(x, y int) Cell {
	i, ok := b.index(x, y)
	if !ok {
		return Cell{Rune: ' '}
	}
	return b.cells[i]
}

// Set writes a cell at (x, y), silently clipping out-of-range writes.
func (b *Buffer) Set(x, y int, c Cell) {
	i, ok := b.index(x, y)
	if !ok {
		return
	}
	b.cells[i] = c
}

// SetString writes each rune of s starting at (x, y), advancing one
// column per rune (callers are responsible for pre-expanding wide
// graphemes across multiple cells via internal/unicode before calling
// this; cellbuf itself is width-agnostic).
func (b *Buffer) SetString(x, y int, s string, style Attr) {
	col := x
	for _, r := range s {
		b.Set(col, y, Cell{Rune: r, Style: style})
		col++
	}
}

// Clear resets every cell to a blank space with no style.
func (b *Buffer) Clear() {
	for i := range b.cells {
		b.cells[i] = Cell{Rune: ' '}
	}
}

// OpType classifies a DiffOp.
type OpType int

const (
	OpSet OpType = iota
	OpClear
)

// DiffOp is one minimal rendering instruction.
type DiffOp struct {
	Type OpType
	X, Y int
	Cell Cell
}

// Diff compares old and next cell-by-cell and returns the minimal set of
// operations needed to transform a terminal showing old into one showing
// next. A dimension mismatch forces a full repaint, same as the teacher's
// diff service does for resized buffers.
func Diff(old, next *Buffer) []DiffOp {
	if old == nil || next == nil || old.width != next.width || old.height != next.height {
		return fullRepaint(next)
	}
	var ops []DiffOp
	for y := 0; y < next.height; y++ {
		for x := 0; x < next.width; x++ {
			o := old.Get(x, y)
			n := next.Get(x, y)
			if o != n {
				ops = append(ops, DiffOp{Type: OpSet, X: x, Y: y, Cell: n})
			}
		}
	}
	return ops
}

func fullRepaint(buf *Buffer) []DiffOp {
	if buf == nil {
		return nil
	}
	ops := make([]DiffOp, 0, buf.width*buf.height)
	for y := 0; y < buf.height; y++ {
		for x := 0; x < buf.width; x++ {
			ops = append(ops, DiffOp{Type: OpSet, X: x, Y: y, Cell: buf.Get(x, y)})
		}
	}
	return ops
}
