package unicode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringWidthASCII(t *testing.T) {
	assert.Equal(t, 5, StringWidth("Hello"))
}

func TestStringWidthEmoji(t *testing.T) {
	assert.Equal(t, 2, StringWidth("👋"))
}

func TestStringWidthEmojiWithModifier(t *testing.T) {
	assert.Equal(t, 2, StringWidth("👋🏻"))
}

func TestStringWidthCJK(t *testing.T) {
	assert.Equal(t, 10, StringWidth("こんにちは"))
}

func TestStringWidthCombining(t *testing.T) {
	// "Café" written as Cafe + combining acute.
	assert.Equal(t, 4, StringWidth("Café"))
}

func TestStringWidthEmpty(t *testing.T) {
	assert.Equal(t, 0, StringWidth(""))
}

func TestClusterWidthCombiningMarkIsZero(t *testing.T) {
	assert.Equal(t, 0, ClusterWidth("́"))
}

func TestGraphemeNextAndPrevRoundTrip(t *testing.T) {
	s := "a👋🏻b"
	pos := 0
	var bounds []int
	for pos < len(s) {
		bounds = append(bounds, pos)
		pos = GraphemeNext(s, pos)
	}
	bounds = append(bounds, len(s))

	for i := len(bounds) - 1; i > 0; i-- {
		assert.Equal(t, bounds[i-1], GraphemePrev(s, bounds[i]))
	}
}

func TestClustersSplitsEmojiFamilyAsOneCluster(t *testing.T) {
	family := "👨‍👩‍👧‍👦"
	clusters := Clusters(family)
	assert.Len(t, clusters, 1)
}
