// Package unicode provides grapheme-cluster iteration and terminal display
// width, the shared foundation the wrap engine, block parser, and renderer
// all build on for anything that needs to know "how many cells wide is
// this text".
//
// Width calculation follows a tiered strategy: a fast path through
// uniwidth for the overwhelming majority of ASCII/CJK/simple-emoji text,
// falling back to full uniseg grapheme-cluster segmentation only when the
// string contains constructs that require it (ZWJ sequences, emoji
// modifiers, variation selectors, combining marks). This mirrors the
// approach used by the wider Unicode-handling corpus: uniwidth's own
// fast/slow split, and uniseg's segmentation for the remainder.
package unicode

import (
	stdunicode "unicode"

	"github.com/rivo/uniseg"
	"github.com/unilibs/uniwidth"
)

// StringWidth returns the visual width of s in terminal columns.
//
//	StringWidth("Hello")   // 5
//	StringWidth("👋")       // 2
//	StringWidth("👋🏻")      // 2 (emoji + modifier = 1 cluster, 2 columns)
//	StringWidth("こんにちは") // 10
//	StringWidth("Café")    // 4
func StringWidth(s string) int {
	if s == "" {
		return 0
	}
	if !containsComplexUnicode(s) {
		return uniwidth.StringWidth(s)
	}
	width := 0
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		width += ClusterWidth(gr.Str())
	}
	return width
}

// containsComplexUnicode reports whether s contains a construct that
// requires grapheme-cluster segmentation rather than the per-rune fast path:
// ZWJ sequences, variation selectors, emoji skin-tone modifiers, or
// combining marks.
func containsComplexUnicode(s string) bool {
	for _, r := range s {
		if r == 0x200D { // zero-width joiner
			return true
		}
		if r >= 0xFE00 && r <= 0xFE0F { // variation selectors
			return true
		}
		if r >= 0x1F3FB && r <= 0x1F3FF { // emoji skin-tone modifiers
			return true
		}
		if stdunicode.In(r, stdunicode.Mn, stdunicode.Me, stdunicode.Mc) {
			return true
		}
	}
	return false
}

// ClusterWidth returns the visual width of a single grapheme cluster.
// For multi-rune clusters (emoji + modifier, ZWJ sequences, base + combining
// mark) the width of the base (first) rune is used, since modifiers and
// combining marks never add visual width of their own.
func ClusterWidth(cluster string) int {
	if cluster == "" {
		return 0
	}
	runes := []rune(cluster)
	if len(runes) == 1 {
		return uniwidth.RuneWidth(runes[0])
	}
	first := runes[0]
	if isZeroWidth(first) {
		return 0
	}
	if len(runes) >= 2 && (runes[1] == 0xFE0E || runes[1] == 0xFE0F) {
		return uniwidth.StringWidth(cluster)
	}
	return uniwidth.RuneWidth(first)
}

func isZeroWidth(r rune) bool {
	if stdunicode.In(r, stdunicode.Mn, stdunicode.Me, stdunicode.Mc, stdunicode.Cf) {
		return true
	}
	return r == '\u200B' || r == '\uFEFF'
}

// DisplayWidth sums grapheme widths across a byte range, honoring grapheme
// cluster boundaries rather than naive rune counting.
func DisplayWidth(s string) int {
	return StringWidth(s)
}
