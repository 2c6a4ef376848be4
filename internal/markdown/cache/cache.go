// Package cache holds a document's parsed block vector, valid for the
// (length, width) the blocks were computed for, exposing binary-search
// lookups by byte offset and by virtual (wrapped) row. The text height is
// recorded but is not part of the validity check.
//
// The invalidation rule mirrors the diff service's dimension check in the
// rendering package this module is styled after: a cache whose recorded
// width no longer matches the viewport is as stale as a buffer whose
// dimensions no longer match, so either triggers a full re-parse rather
// than an incremental patch.
package cache

import (
	"sort"

	"github.com/andrewmd5/scribe/internal/markdown/ast"
	"github.com/andrewmd5/scribe/internal/markdown/block"
)

// Cache holds one document's parsed blocks plus the inputs they were
// computed against.
type Cache struct {
	blocks []ast.Block
	runs   []ast.Run

	srcLen int
	width  int
	height int
}

// New builds an empty cache; call Refresh to populate it.
func New() *Cache {
	return &Cache{}
}

// Valid reports whether the cache's blocks were computed for the given
// source length and viewport width. Height does not affect block
// layout (blocks wrap to width, not height) but is recorded for callers
// that want it as part of their own staleness checks.
func (c *Cache) Valid(srcLen, width int) bool {
	return c.blocks != nil && c.srcLen == srcLen && c.width == width
}

// Refresh re-parses data if the cache is stale for (len(data), width),
// including both block and inline passes, and returns whether a
// re-parse actually happened. height is recorded; a change of height
// alone does not trigger a re-parse.
func Refresh(c *Cache, data []byte, width, height int, wrapCfg block.Config) bool {
	if c.Valid(len(data), width) {
		return false
	}
	cfg := wrapCfg
	cfg.Width = width
	blocks := block.Parse(data, cfg)

	var runs []ast.Run
	for i := range blocks {
		b := &blocks[i]
		if !b.HasProse() {
			continue
		}
		start := proseStart(b)
		b.RunStart = len(runs)
		blockRuns := parseInlineSpan(data, start, b.Span.End)
		runs = append(runs, blockRuns...)
		b.RunCount = len(blockRuns)
	}

	c.blocks = blocks
	c.runs = runs
	c.srcLen = len(data)
	c.width = width
	c.height = height
	return true
}

// proseStart returns the byte offset within b's span where its inline
// content actually begins, skipping the block-level marker bytes (list
// bullet, heading '#'s, footnote label) that the block pass already
// stripped out of the payload but left inside Span for display purposes.
// Blockquote content starts at Span.Start, so its '>' bytes are part of
// its runs.
func proseStart(b *ast.Block) int {
	switch b.Type {
	case ast.Header:
		return b.Header.ContentStart
	case ast.ListItem:
		return b.List.ContentStart
	case ast.FootnoteDef:
		return b.Footnote.ContentStart
	default:
		return b.Span.Start
	}
}

// parseInlineSpan is a thin indirection point so the cache package does
// not import internal/markdown/inline directly into its exported
// surface; it's set by SetInlineParser during program init and returns
// no runs until then.
var parseInlineSpan = func(data []byte, start, end int) []ast.Run { return nil }

// SetInlineParser installs the inline-run parser. internal/editor wires
// this once at startup to internal/markdown/inline.Parse.
func SetInlineParser(fn func(data []byte, start, end int) []ast.Run) {
	parseInlineSpan = fn
}

// Blocks returns the cached block slice. Callers must not retain it past
// the next Refresh call that actually re-parses.
func (c *Cache) Blocks() []ast.Block { return c.blocks }

// Runs returns the cached run slice backing all blocks' inline content.
func (c *Cache) Runs() []ast.Run { return c.runs }

// RunsFor returns the inline runs belonging to block b.
func (c *Cache) RunsFor(b *ast.Block) []ast.Run {
	if b.RunCount == 0 {
		return nil
	}
	return c.runs[b.RunStart : b.RunStart+b.RunCount]
}

// BlockAtOffset returns the index of the first block whose Span.End lies
// past byte offset pos, via binary search over the monotonically
// increasing Span.End values. A pos past the last block maps to the last
// block; -1 is returned only when there are no blocks.
func (c *Cache) BlockAtOffset(pos int) int {
	n := len(c.blocks)
	if n == 0 {
		return -1
	}
	idx := sort.Search(n, func(i int) bool { return c.blocks[i].Span.End > pos })
	if idx >= n {
		return n - 1
	}
	return idx
}

// BlockAtVRow returns the index of the block occupying virtual row row,
// via binary search over VRowStart.
func (c *Cache) BlockAtVRow(row int) int {
	n := len(c.blocks)
	if n == 0 {
		return -1
	}
	idx := sort.Search(n, func(i int) bool {
		b := c.blocks[i]
		return b.VRowStart+b.VRowCount > row
	})
	if idx >= n {
		return n - 1
	}
	return idx
}

// TotalVRows returns the document's total wrapped-row count.
func (c *Cache) TotalVRows() int {
	if len(c.blocks) == 0 {
		return 0
	}
	last := c.blocks[len(c.blocks)-1]
	return last.VRowStart + last.VRowCount
}

// InvalidateSketches drops every cached math rasterization, forcing the
// renderer to rebuild them on next draw. Only this package's tests call
// it; the editor does not call it when the theme or color profile
// changes.
func (c *Cache) InvalidateSketches() {
	for i := range c.blocks {
		c.blocks[i].Math.Sketch = nil
	}
	for i := range c.runs {
		c.runs[i].InlineMath.Sketch = nil
	}
}
