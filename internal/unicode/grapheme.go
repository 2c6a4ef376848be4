package unicode

import "github.com/rivo/uniseg"

// GraphemeNext returns the byte offset (within s) of the grapheme cluster
// boundary following pos. If pos is at or past the end of s, it returns
// len(s).
func GraphemeNext(s string, pos int) int {
	if pos >= len(s) {
		return len(s)
	}
	rest := s[pos:]
	_, n, _, _ := uniseg.FirstGraphemeClusterInString(rest, -1)
	if n <= 0 {
		return len(s)
	}
	return pos + n
}

// GraphemePrev returns the byte offset of the grapheme cluster boundary
// preceding pos. It rescans from the start of the string since grapheme
// segmentation is not reversible from a single trailing byte; callers are
// internal/wrap's trailing-space trim and the editor's single-step
// backspace and cursor movement.
func GraphemePrev(s string, pos int) int {
	if pos <= 0 {
		return 0
	}
	last := 0
	cursor := 0
	for cursor < pos {
		next := GraphemeNext(s, cursor)
		if next > pos || next == cursor {
			break
		}
		last = cursor
		cursor = next
	}
	return last
}

// GraphemeWidth returns the display width, in cells, of the grapheme
// cluster starting at byte offset pos within s.
func GraphemeWidth(s string, pos int) int {
	if pos < 0 || pos >= len(s) {
		return 0
	}
	end := GraphemeNext(s, pos)
	return ClusterWidth(s[pos:end])
}

// Clusters splits s into its grapheme clusters.
func Clusters(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		out = append(out, gr.Str())
	}
	return out
}
