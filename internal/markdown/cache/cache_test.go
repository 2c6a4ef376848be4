package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrewmd5/scribe/internal/markdown/ast"
	"github.com/andrewmd5/scribe/internal/markdown/block"
	"github.com/andrewmd5/scribe/internal/markdown/inline"
)

func TestMain(m *testing.M) {
	SetInlineParser(func(data []byte, start, end int) []ast.Run {
		return inline.Parse(data, start, end)
	})
	m.Run()
}

func TestRefreshPopulatesBlocksAndRuns(t *testing.T) {
	c := New()
	data := []byte("# Title\n\nsome *emphasis* text\n")
	changed := Refresh(c, data, 80, 24, block.DefaultConfig())
	assert.True(t, changed)
	assert.NotEmpty(t, c.Blocks())
	assert.NotEmpty(t, c.Runs())
}

func TestRefreshIsNoOpWhenValid(t *testing.T) {
	c := New()
	data := []byte("hello world\n")
	Refresh(c, data, 80, 24, block.DefaultConfig())
	changed := Refresh(c, data, 80, 24, block.DefaultConfig())
	assert.False(t, changed)
}

func TestRefreshInvalidatesOnWidthChange(t *testing.T) {
	c := New()
	data := []byte("hello world\n")
	Refresh(c, data, 80, 24, block.DefaultConfig())
	changed := Refresh(c, data, 40, 24, block.DefaultConfig())
	assert.True(t, changed)
}

func TestBlockAtOffset(t *testing.T) {
	c := New()
	data := []byte("# Title\n\npara one\n\npara two\n")
	Refresh(c, data, 80, 24, block.DefaultConfig())
	idx := c.BlockAtOffset(0)
	assert.Equal(t, ast.Header, c.Blocks()[idx].Type)
}

func TestBlockAtVRow(t *testing.T) {
	c := New()
	data := []byte("# Title\n\npara one\n\npara two\n")
	Refresh(c, data, 80, 24, block.DefaultConfig())
	idx := c.BlockAtVRow(0)
	assert.Equal(t, 0, idx)
	assert.GreaterOrEqual(t, c.TotalVRows(), len(c.Blocks()))
}

func TestRunsForReturnsBlockSlice(t *testing.T) {
	c := New()
	data := []byte("plain *bold* text\n")
	Refresh(c, data, 80, 24, block.DefaultConfig())
	b := &c.Blocks()[0]
	runs := c.RunsFor(b)
	assert.Equal(t, b.RunCount, len(runs))
}

func TestInvalidateSketchesClearsCachedMath(t *testing.T) {
	c := New()
	data := []byte("$$\nx\n$$\n")
	Refresh(c, data, 80, 24, block.DefaultConfig())
	c.Blocks()[0].Math.Sketch = &ast.Sketch{Rows: [][]ast.Cell{{{Rune: 'x'}}}}
	c.InvalidateSketches()
	assert.Nil(t, c.Blocks()[0].Math.Sketch)
}
