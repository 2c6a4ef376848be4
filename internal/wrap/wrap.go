// Package wrap implements word-boundary wrapping of a byte range to a
// fixed terminal column width.
//
// The algorithm is a single left-to-right scan over grapheme clusters that
// tracks an accumulating "word" and the current line's display width,
// flushing either at whitespace, at a hard newline, or when the word
// itself needs to be split because it alone exceeds the wrap width.
// Classification of line-break and dash characters follows the exception
// tables long used for Unicode-aware text wrapping (whitespace that must
// not break: NBSP, ZWNBSP; dash characters that permit a break after them
// but are never confused with minus/tilde/wavy-dash).
package wrap

import (
	stdunicode "unicode"

	"github.com/andrewmd5/scribe/internal/unicode"
)

// Config controls wrap behavior.
type Config struct {
	TabSize                   int
	TrimTrailingWhitespace    bool
	AllowWordSplitWithHyphen  bool
	KeepDashWithPrecedingWord bool
}

// DefaultConfig matches the spec's defaults: 4-column tabs, trailing
// whitespace trimmed, mid-word splitting with a visible hyphen allowed.
func DefaultConfig() Config {
	return Config{
		TabSize:                  4,
		TrimTrailingWhitespace:   true,
		AllowWordSplitWithHyphen: true,
	}
}

// Line is one wrapped output line.
type Line struct {
	Start         int  // absolute byte offset, inclusive
	End           int  // absolute byte offset, exclusive
	DisplayWidth  int  // visual width of the line's content (post-trim)
	Segment       int  // 0-based index of this line within its hard-break paragraph
	IsHardBreak   bool // true if this line was terminated by a literal newline
	EndsWithSplit bool // true if a hyphen was synthesized at the split point
}

// Dash characters permit a break after their occurrence. Tilde, minus
// sign, and wavy dash are deliberately excluded (they read as math/tilde
// glyphs, not word-joining hyphens).
var dashRunes = map[rune]bool{
	'\u002D': true, // hyphen-minus
	'\u00AD': true, // soft hyphen
	'\u058A': true, // armenian hyphen
	'\u2010': true, // hyphen
	'\u2012': true, // figure dash
	'\u2013': true, // en dash
	'\u2014': true, // em dash
	'\u2015': true, // horizontal bar
	'\uFE63': true, // small hyphen-minus
	'\uFF0D': true, // fullwidth hyphen-minus
}

func isDash(r rune) bool { return dashRunes[r] }

// Space characters that are valid break opportunities. NBSP (U+00A0) and
// ZWNBSP (U+FEFF) are deliberately excluded -- they are handled as the
// "unsplittable" NBSP case, not as ordinary spaces.
var spaceRunes = map[rune]bool{
	'\u0020': true, // space
	'\u1680': true, // ogham space mark
	'\u2000': true, // en quad
	'\u2001': true, // em quad
	'\u2002': true, // en space
	'\u2003': true, // em space
	'\u2004': true, // three-per-em space
	'\u2005': true, // four-per-em space
	'\u2006': true, // six-per-em space
	'\u2007': true, // figure space
	'\u2008': true, // punctuation space
	'\u2009': true, // thin space
	'\u200A': true, // hair space
	'\u200B': true, // zero width space
	'\u205F': true, // medium mathematical space
	'\u3000': true, // ideographic space
}

func isSpace(r rune) bool { return spaceRunes[r] }

const nbsp = '\u00A0'

func isWordy(r rune) bool {
	return stdunicode.IsLetter(r) || stdunicode.IsNumber(r)
}

func firstRune(cluster string) rune {
	for _, r := range cluster {
		return r
	}
	return 0
}

// word buffers an in-progress, not-yet-flushed token along with its
// absolute starting byte offset and display width.
type word struct {
	start      int
	clusters   []string
	width      int
	unsplittable bool
}

func (w *word) reset(start int) {
	w.start = start
	w.clusters = w.clusters[:0]
	w.width = 0
	w.unsplittable = false
}

func (w *word) append(cluster string) {
	w.clusters = append(w.clusters, cluster)
	w.width += unicode.ClusterWidth(cluster)
}

func (w *word) empty() bool { return len(w.clusters) == 0 }

func (w *word) end() int {
	e := w.start
	for _, c := range w.clusters {
		e += len(c)
	}
	return e
}

// scanner accumulates line state during the left-to-right pass.
type scanner struct {
	data  []byte
	width int
	cfg   Config
	lines []Line

	lineStart      int
	lineWidth      int
	lineHasContent bool
	segment        int

	w word
}

// Wrap wraps data[start:end] to the given column width, returning wrap
// lines with absolute byte offsets into data. width < 2 is treated as 2,
// so the hyphenation rule always has room to operate.
func Wrap(data []byte, start, end int, width int, cfg Config) []Line {
	if width < 2 {
		width = 2
	}
	if start < 0 {
		start = 0
	}
	if end > len(data) {
		end = len(data)
	}
	if end < start {
		end = start
	}

	s := &scanner{data: data, width: width, cfg: cfg, lineStart: start}
	s.w.reset(start)

	pos := start
	for pos < end {
		cluster, n := nextCluster(data, pos, end)
		r := firstRune(cluster)
		switch {
		case r == '\n':
			s.flushWord()
			s.emitLine(pos, true)
			pos += n
			s.lineStart = pos
			s.segment = 0
			s.w.reset(pos)
		case r == '\r' && pos+1 < end && data[pos+1] == '\n':
			s.flushWord()
			s.emitLine(pos, true)
			pos += 2
			s.lineStart = pos
			s.segment = 0
			s.w.reset(pos)
		case r == '\t':
			s.flushWord()
			s.appendTab(pos)
			pos += n
		case isSpace(r):
			s.appendSpace(pos, pos+n)
			pos += n
		case isDash(r):
			if s.w.empty() {
				s.w.reset(pos)
			}
			s.w.append(cluster)
			if s.lineWidth+s.w.width <= s.width {
				s.flushWord()
			} else if s.w.width > s.width && s.cfg.AllowWordSplitWithHyphen && !s.w.unsplittable {
				s.splitOversizedWord()
			}
			pos += n
		case r == nbsp:
			if s.w.empty() {
				s.w.reset(pos)
			}
			s.w.unsplittable = true
			s.w.append(cluster)
			pos += n
		default:
			if s.w.empty() {
				s.w.reset(pos)
			}
			s.w.append(cluster)
			if s.w.width > s.width && s.cfg.AllowWordSplitWithHyphen && !s.w.unsplittable {
				s.splitOversizedWord()
			}
			pos += n
		}
	}
	s.flushWord()
	if s.lineHasContent || len(s.lines) == 0 {
		s.emitLine(end, false)
	}
	return s.lines
}

// nextCluster returns the grapheme cluster starting at pos (within
// data[pos:end]) and its byte length.
func nextCluster(data []byte, pos, end int) (string, int) {
	sub := string(data[pos:end])
	n := unicode.GraphemeNext(sub, 0)
	if n <= 0 {
		n = 1
	}
	return sub[:n], n
}

// flushWord moves the accumulated word onto the current line, wrapping
// first if the word doesn't fit on what remains of the line.
func (s *scanner) flushWord() {
	if s.w.empty() {
		return
	}
	if s.lineWidth+s.w.width > s.width && s.lineHasContent {
		s.emitLine(s.w.start, false)
		s.lineStart = s.w.start
		s.lineWidth = 0
		s.lineHasContent = false
	}
	s.lineWidth += s.w.width
	s.lineHasContent = true
	s.w.reset(s.w.end())
}

// appendSpace flushes the accumulating word (recording a break
// opportunity), then either advances the line by one column for the space
// itself, or, if that would overflow, wraps at the space.
func (s *scanner) appendSpace(spaceStart, spaceEnd int) {
	s.flushWord()
	if !s.lineHasContent {
		// Leading whitespace on an otherwise-empty line: drop it (the
		// trim-trailing pass handles the symmetric case at line end).
		return
	}
	if s.lineWidth+1 > s.width {
		s.emitLine(spaceStart, false)
		s.lineStart = spaceEnd
		s.lineWidth = 0
		s.lineHasContent = false
		s.w.reset(spaceEnd)
		return
	}
	s.lineWidth++
}

// appendTab expands to the next multiple of TabSize relative to the
// current line width, wrapping first if the expansion would overflow.
func (s *scanner) appendTab(tabPos int) {
	tab := s.cfg.TabSize
	if tab <= 0 {
		tab = 4
	}
	next := ((s.lineWidth / tab) + 1) * tab
	if next > s.width && s.lineHasContent {
		s.emitLine(tabPos, false)
		s.lineStart = tabPos
		s.lineWidth = 0
		s.lineHasContent = false
		next = tab
	}
	s.lineWidth = next
	s.lineHasContent = true
}

// splitOversizedWord breaks a word that by itself already exceeds the
// line width, at grapheme boundaries. A visible hyphen is recorded at the
// split point only when both the trailing grapheme of the emitted piece
// and the leading grapheme of the remainder are "wordy" (letter/number).
func (s *scanner) splitOversizedWord() {
	avail := s.width - s.lineWidth
	if avail < 1 {
		avail = s.width
	}
	clusters := s.w.clusters
	if len(clusters) < 2 {
		return
	}
	cum := 0
	splitIdx := -1
	for i, c := range clusters {
		cw := unicode.ClusterWidth(c)
		if i > 0 && cum+cw > avail-1 {
			splitIdx = i
			break
		}
		cum += cw
	}
	if splitIdx <= 0 {
		return
	}
	left := clusters[:splitIdx]
	right := clusters[splitIdx:]

	leftBytes := 0
	for _, c := range left {
		leftBytes += len(c)
	}
	splitPos := s.w.start + leftBytes

	hyphen := isWordy(firstRune(left[len(left)-1])) && isWordy(firstRune(right[0]))

	s.lines = append(s.lines, Line{
		Start:         s.lineStart,
		End:           splitPos,
		DisplayWidth:  s.lineWidth + cum,
		Segment:       s.segment,
		EndsWithSplit: hyphen,
	})
	s.segment++
	s.lineStart = splitPos
	s.lineWidth = 0
	s.lineHasContent = false

	remaining := make([]string, len(right))
	copy(remaining, right)
	s.w.start = splitPos
	s.w.clusters = remaining
	s.w.width = 0
	for _, c := range remaining {
		s.w.width += unicode.ClusterWidth(c)
	}
}

// emitLine closes out the current line at byte position end.
func (s *scanner) emitLine(end int, hard bool) {
	if end < s.lineStart {
		end = s.lineStart
	}
	width := s.lineWidth
	if s.cfg.TrimTrailingWhitespace {
		end, width = trimTrailing(s.data, s.lineStart, end, width)
	}
	s.lines = append(s.lines, Line{
		Start:        s.lineStart,
		End:          end,
		DisplayWidth: width,
		Segment:      s.segment,
		IsHardBreak:  hard,
	})
	s.segment++
}

// trimTrailing removes trailing space bytes from [start, end) and
// recomputes display width accordingly.
func trimTrailing(data []byte, start, end, width int) (int, int) {
	for end > start {
		sub := string(data[start:end])
		prevBoundary := unicode.GraphemePrev(sub, len(sub))
		cluster := sub[prevBoundary:]
		r := firstRune(cluster)
		if !isSpace(r) {
			break
		}
		width -= unicode.ClusterWidth(cluster)
		end = start + prevBoundary
	}
	if width < 0 {
		width = 0
	}
	return end, width
}
