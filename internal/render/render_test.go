package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrewmd5/scribe/internal/markdown/ast"
	"github.com/andrewmd5/scribe/internal/markdown/block"
	"github.com/andrewmd5/scribe/internal/markdown/cache"
	"github.com/andrewmd5/scribe/internal/markdown/inline"
	"github.com/andrewmd5/scribe/internal/render/style"
)

func newCache(t *testing.T, data []byte, width int) *cache.Cache {
	t.Helper()
	cache.SetInlineParser(func(data []byte, start, end int) []ast.Run {
		return inline.Parse(data, start, end)
	})
	c := cache.New()
	cache.Refresh(c, data, width, 24, block.DefaultConfig())
	return c
}

func TestRenderHeaderIsCentered(t *testing.T) {
	data := []byte("# Hi\n")
	c := newCache(t, data, 20)
	frame := Render(data, c, Options{Width: 20, Height: 10, CursorByte: -1, Theme: style.Dark})
	found := false
	for _, l := range frame.Lines {
		if l.Plain() != "" {
			found = true
			assert.True(t, len(l.Plain()) <= 20)
		}
	}
	assert.True(t, found)
}

func TestRenderParagraphWraps(t *testing.T) {
	data := []byte("one two three four five six seven\n")
	c := newCache(t, data, 10)
	frame := Render(data, c, Options{Width: 10, Height: 10, CursorByte: -1, Theme: style.Dark})
	assert.Greater(t, len(frame.Lines), 1)
}

func TestRenderEmphasisHidesDelimitersWhenCursorOutside(t *testing.T) {
	data := []byte("a *bold* b\n")
	c := newCache(t, data, 80)
	frame := Render(data, c, Options{Width: 80, Height: 10, CursorByte: -1, Theme: style.Dark})
	assert.Equal(t, "a bold b", frame.Lines[0].Plain())
}

func TestRenderEmphasisRevealsSourceWhenCursorInside(t *testing.T) {
	data := []byte("a *bold* b\n")
	c := newCache(t, data, 80)
	frame := Render(data, c, Options{Width: 80, Height: 10, CursorByte: 3, Theme: style.Dark})
	assert.Contains(t, frame.Lines[0].Plain(), "*")
}

func TestRenderTableDrawsBorders(t *testing.T) {
	data := []byte("| a | b |\n| --- | --- |\n| 1 | 2 |\n")
	c := newCache(t, data, 40)
	frame := Render(data, c, Options{Width: 40, Height: 10, CursorByte: -1, Theme: style.Dark})
	assert.Contains(t, frame.Lines[0].Plain(), "┌")
}

func TestRenderCursorRowTracksBlock(t *testing.T) {
	data := []byte("para one\n\npara two\n")
	c := newCache(t, data, 80)
	secondBlockStart := c.Blocks()[1].Span.Start
	frame := Render(data, c, Options{Width: 80, Height: 10, CursorByte: secondBlockStart, Theme: style.Dark})
	assert.GreaterOrEqual(t, frame.CursorRow, 0)
}
