package inline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrewmd5/scribe/internal/markdown/ast"
)

func TestParseEmphasisPairs(t *testing.T) {
	src := []byte("hello *world* there")
	runs := Parse(src, 0, len(src))
	var open, close *ast.Run
	for i := range runs {
		if runs[i].Type == ast.Delim && runs[i].Delim.Kind == ast.DelimStar1 {
			if runs[i].Delim.Open {
				open = &runs[i]
			} else {
				close = &runs[i]
			}
		}
	}
	if assert.NotNil(t, open) && assert.NotNil(t, close) {
		assert.NotEqual(t, -1, open.Delim.PairIndex)
	}
}

func TestParseBoldDelimiter(t *testing.T) {
	src := []byte("**strong** text")
	runs := Parse(src, 0, len(src))
	assert.Equal(t, ast.Delim, runs[0].Type)
	assert.Equal(t, ast.DelimStar2, runs[0].Delim.Kind)
}

func TestParseCodeSpanIsAtomic(t *testing.T) {
	src := []byte("see `a * b` here")
	runs := Parse(src, 0, len(src))
	found := false
	for _, r := range runs {
		if r.Type == ast.Delim && r.Delim.Kind == ast.DelimCode {
			found = true
			assert.Equal(t, "`a * b`", string(src[r.Span.Start:r.Span.End]))
		}
	}
	assert.True(t, found)
}

func TestParseLink(t *testing.T) {
	src := []byte("[click here](https://example.com)")
	runs := Parse(src, 0, len(src))
	if assert.Len(t, runs, 1) {
		assert.Equal(t, ast.Link, runs[0].Type)
		assert.Equal(t, "click here", string(src[runs[0].Link.Text.Start:runs[0].Link.Text.End]))
		assert.Equal(t, "https://example.com", string(src[runs[0].Link.URL.Start:runs[0].Link.URL.End]))
	}
}

func TestParseFootnoteRef(t *testing.T) {
	src := []byte("see[^1] note")
	runs := Parse(src, 0, len(src))
	found := false
	for _, r := range runs {
		if r.Type == ast.FootnoteRef {
			found = true
			assert.Equal(t, "1", string(src[r.FootnoteRef.ID.Start:r.FootnoteRef.ID.End]))
		}
	}
	assert.True(t, found)
}

func TestParseInlineMath(t *testing.T) {
	src := []byte("energy $E=mc^2$ here")
	runs := Parse(src, 0, len(src))
	found := false
	for _, r := range runs {
		if r.Type == ast.InlineMath {
			found = true
			assert.Equal(t, "E=mc^2", string(src[r.InlineMath.Content.Start:r.InlineMath.Content.End]))
		}
	}
	assert.True(t, found)
}

func TestParseEscape(t *testing.T) {
	src := []byte(`\*not emphasis\*`)
	runs := Parse(src, 0, len(src))
	count := 0
	for _, r := range runs {
		if r.Type == ast.Escape {
			count++
			assert.Equal(t, byte('*'), r.Escape.Char)
		}
	}
	assert.Equal(t, 2, count)
}

func TestParseEntity(t *testing.T) {
	src := []byte("a &amp; b")
	runs := Parse(src, 0, len(src))
	found := false
	for _, r := range runs {
		if r.Type == ast.Entity {
			found = true
			assert.Equal(t, "&", r.Entity.Decoded)
		}
	}
	assert.True(t, found)
}

func TestParseEmojiShortcode(t *testing.T) {
	src := []byte("nice :fire: work")
	runs := Parse(src, 0, len(src))
	found := false
	for _, r := range runs {
		if r.Type == ast.Emoji {
			found = true
			assert.Equal(t, "🔥", r.Emoji.Replacement)
		}
	}
	assert.True(t, found)
}

func TestParseAutolink(t *testing.T) {
	src := []byte("visit https://example.com/x today")
	runs := Parse(src, 0, len(src))
	found := false
	for _, r := range runs {
		if r.Type == ast.Autolink {
			found = true
		}
	}
	assert.True(t, found)
}

func TestParseUnmatchedDelimiterDegradesGracefully(t *testing.T) {
	src := []byte("a * lone star")
	runs := Parse(src, 0, len(src))
	assert.NotPanics(t, func() {
		for _, r := range runs {
			_ = r
		}
	})
}
