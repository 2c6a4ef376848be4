package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInsertAndString(t *testing.T) {
	b := New(0)
	b.InsertRange(0, []byte("hello"))
	assert.Equal(t, "hello", b.String())
	assert.Equal(t, 5, b.Len())
}

func TestInsertAtMiddle(t *testing.T) {
	b := NewFromString("helo")
	b.Insert(3, 'l')
	assert.Equal(t, "hello", b.String())
}

func TestInsertOutOfRangeClamped(t *testing.T) {
	b := NewFromString("ab")
	b.InsertRange(100, []byte("c"))
	assert.Equal(t, "abc", b.String())

	b2 := NewFromString("ab")
	b2.InsertRange(-5, []byte("c"))
	assert.Equal(t, "cab", b2.String())
}

func TestDelete(t *testing.T) {
	b := NewFromString("hello world")
	b.Delete(5, 6)
	assert.Equal(t, "hello", b.String())
}

func TestDeleteOutOfRangeClamped(t *testing.T) {
	b := NewFromString("hi")
	b.Delete(0, 100)
	assert.Equal(t, "", b.String())
	assert.Equal(t, 0, b.Len())
}

func TestAtOutOfRangeReturnsZero(t *testing.T) {
	b := NewFromString("x")
	assert.Equal(t, byte(0), b.At(-1))
	assert.Equal(t, byte(0), b.At(5))
}

func TestGapMovesBothDirections(t *testing.T) {
	b := NewFromString("0123456789")
	// Force the gap to relocate left then right repeatedly.
	b.Insert(2, 'a')
	b.Insert(8, 'b')
	b.Insert(0, 'c')
	b.Insert(5, 'd')
	assert.Equal(t, "c01a2d3456b789", b.String())
}

func TestCopyTo(t *testing.T) {
	b := NewFromString("abcdef")
	out := make([]byte, 3)
	n := b.CopyTo(2, 3, out)
	assert.Equal(t, 3, n)
	assert.Equal(t, "cde", string(out[:n]))
}

func TestCopyToPastEndTruncates(t *testing.T) {
	b := NewFromString("abc")
	out := make([]byte, 10)
	n := b.CopyTo(1, 10, out)
	assert.Equal(t, 2, n)
	assert.Equal(t, "bc", string(out[:n]))
}

func TestUtf8Navigation(t *testing.T) {
	// "é" is U+00E9, 2 bytes in UTF-8; "中" is U+4E2D, 3 bytes.
	b := NewFromString("é中x")
	pos := 0
	r, n := b.Utf8At(pos)
	assert.Equal(t, rune('é'), r)
	assert.Equal(t, 2, n)

	pos = b.Utf8Next(pos)
	assert.Equal(t, 2, pos)
	r, n = b.Utf8At(pos)
	assert.Equal(t, rune('中'), r)
	assert.Equal(t, 3, n)

	pos = b.Utf8Next(pos)
	assert.Equal(t, 5, pos)

	pos = b.Utf8Prev(pos)
	assert.Equal(t, 2, pos)
	pos = b.Utf8Prev(pos)
	assert.Equal(t, 0, pos)
}

func TestUtf8NextAtEndReturnsLen(t *testing.T) {
	b := NewFromString("ab")
	assert.Equal(t, 2, b.Utf8Next(2))
	assert.Equal(t, 2, b.Utf8Next(50))
}

func TestUtf8PrevAtStartReturnsZero(t *testing.T) {
	b := NewFromString("ab")
	assert.Equal(t, 0, b.Utf8Prev(0))
}

func TestUtf8BoundaryInvariantUnderNavigation(t *testing.T) {
	b := NewFromString("héllo 世界 café")
	// Every navigation call must land on a boundary; Utf8At on the result
	// should never see a continuation byte as the leading byte.
	pos := 0
	for pos < b.Len() {
		_, n := b.Utf8At(pos)
		assert.Greater(t, n, 0)
		next := b.Utf8Next(pos)
		assert.Equal(t, pos+n, next)
		pos = next
	}
}

func TestBytesIsDefensiveCopy(t *testing.T) {
	b := NewFromString("abc")
	snap := b.Bytes()
	b.Insert(0, 'z')
	assert.Equal(t, "abc", string(snap))
	assert.Equal(t, "zabc", b.String())
}
