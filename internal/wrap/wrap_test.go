package wrap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapSimpleWordBoundary(t *testing.T) {
	text := []byte("abcdefghij klm")
	lines := Wrap(text, 0, len(text), 6, DefaultConfig())
	if assert.GreaterOrEqual(t, len(lines), 2) {
		for _, l := range lines {
			assert.LessOrEqual(t, l.DisplayWidth, 6)
		}
	}
}

func TestWrapRespectsHardNewline(t *testing.T) {
	text := []byte("ab\ncd")
	lines := Wrap(text, 0, len(text), 80, DefaultConfig())
	if assert.Len(t, lines, 2) {
		assert.True(t, lines[0].IsHardBreak)
		assert.Equal(t, "ab", string(text[lines[0].Start:lines[0].End]))
		assert.Equal(t, "cd", string(text[lines[1].Start:lines[1].End]))
	}
}

func TestWrapCRLFCountsAsOneBreak(t *testing.T) {
	text := []byte("ab\r\ncd")
	lines := Wrap(text, 0, len(text), 80, DefaultConfig())
	assert.Len(t, lines, 2)
}

func TestWrapWidthNeverExceededExceptSingleOversizedGrapheme(t *testing.T) {
	text := []byte("the quick brown fox jumps over the lazy dog")
	lines := Wrap(text, 0, len(text), 10, DefaultConfig())
	for _, l := range lines {
		assert.LessOrEqual(t, l.DisplayWidth, 10)
	}
}

func TestWrapHyphenRuleBothSidesWordy(t *testing.T) {
	// A long unbroken run of letters, narrower than the word, should split
	// with a hyphen since both sides of the cut are letters.
	text := []byte("abcdefghijklmnopqrstuvwxyz")
	lines := Wrap(text, 0, len(text), 6, DefaultConfig())
	foundSplit := false
	for _, l := range lines {
		if l.EndsWithSplit {
			foundSplit = true
			left := string(text[:l.End])[len(text[:l.Start]):]
			// last char before split and first after must both be letters.
			if assert.NotEmpty(t, left) && assert.Less(t, l.End, len(text)) {
				assert.True(t, isWordy(rune(text[l.End-1])))
				assert.True(t, isWordy(rune(text[l.End])))
			}
		}
	}
	assert.True(t, foundSplit)
}

func TestWrapNBSPKeepsWordTogether(t *testing.T) {
	// U+00A0 between "New" and "York" should not be treated as a breakable space.
	text := []byte("New York is big")
	lines := Wrap(text, 0, len(text), 6, DefaultConfig())
	for _, l := range lines {
		s := string(text[l.Start:l.End])
		// "New York" (with NBSP) must never be split across s unless the
		// whole token is emitted as a single (possibly overflowing) line.
		if l.DisplayWidth < 8 {
			assert.NotContains(t, s, "New York"[:3])
		}
	}
}

func TestWrapMinimumWidthClampedToTwo(t *testing.T) {
	text := []byte("ab")
	lines := Wrap(text, 0, len(text), 0, DefaultConfig())
	assert.NotEmpty(t, lines)
}

func TestWrapEmptyRange(t *testing.T) {
	text := []byte("hello")
	lines := Wrap(text, 2, 2, 10, DefaultConfig())
	assert.Len(t, lines, 1)
	assert.Equal(t, 0, lines[0].DisplayWidth)
}

func TestWrapTabExpandsToTabStop(t *testing.T) {
	text := []byte("a\tb")
	lines := Wrap(text, 0, len(text), 80, DefaultConfig())
	assert.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].DisplayWidth) // "a" + 3 cols to next tab stop (4) + "b"
}
