package editor

import (
	"strings"
	"unicode/utf8"

	"github.com/andrewmd5/scribe/internal/unicode"
)

// InsertRune inserts r at the cursor, replacing any active selection
// first, then advances the cursor past the inserted rune. Completing an
// image's closing paren/brace, a fence's third backtick/tilde, or a
// math block's second `$` (completing a "$$" line) auto-appends a newline, so the writer
// doesn't have to reach for Enter right after closing punctuation.
func (e *Editor) InsertRune(r rune) {
	e.deleteSelectionIfAny()
	e.buf.Insert(e.cursor, r)
	e.cursor += utf8.RuneLen(r)
	if e.shouldAutoAppendNewline(r) {
		e.buf.Insert(e.cursor, '\n')
		e.cursor++
	}
	e.pushUndoSnapshot()
}

// shouldAutoAppendNewline reports whether the rune just inserted at
// e.cursor completes a line that the spec says auto-continues onto a
// fresh line: an image syntax's closing ")"/"}", a fence delimiter line
// ("```"/"~~~"), or a "$$" math-fence line.
func (e *Editor) shouldAutoAppendNewline(r rune) bool {
	data := e.buf.Bytes()
	lineStart := lineStartBefore(data, e.cursor)
	line := strings.TrimSpace(string(data[lineStart:e.cursor]))

	switch r {
	case ')':
		return strings.HasPrefix(line, "![") && strings.Contains(line, "](")
	case '}':
		return strings.HasPrefix(line, "![") && strings.Contains(line, "){")
	case '`':
		return line == "```" || (len(line) >= 3 && strings.Trim(line, "`") == "" && len(line) > 3)
	case '~':
		return line == "~~~"
	case '$':
		return line == "$$"
	}
	return false
}

// InsertText inserts a string at the cursor.
func (e *Editor) InsertText(s string) {
	e.deleteSelectionIfAny()
	e.buf.InsertRange(e.cursor, []byte(s))
	e.cursor += len(s)
	e.pushUndoSnapshot()
}

// Backspace deletes the grapheme cluster before the cursor, or the
// active selection if one exists. When deleting a list/blockquote
// marker's trailing space at the very start of a structural line, the
// whole marker is removed in one step (a "smart backspace" so undoing a
// continued list item doesn't leave a dangling bullet).
func (e *Editor) Backspace() {
	if e.deleteSelectionIfAny() {
		return
	}
	if e.cursor == 0 {
		return
	}
	if e.smartStructuralBackspace() {
		return
	}
	start := e.smartBackspaceStart()
	n := e.cursor - start
	e.buf.Delete(start, n)
	e.cursor = start
	e.pushUndoSnapshot()
}

// smartBackspaceStart returns where a backspace at the cursor should
// actually start deleting from: normally one grapheme back, but if the
// cursor sits immediately after a list/blockquote marker's separating
// space at the start of a line, the whole marker.
func (e *Editor) smartBackspaceStart() int {
	data := e.buf.Bytes()
	lineStart := lineStartBefore(data, e.cursor)
	prefix := data[lineStart:e.cursor]
	if markerLen := structuralMarkerLen(prefix); markerLen > 0 && lineStart+markerLen == e.cursor {
		return lineStart
	}
	return unicode.GraphemePrev(string(data), e.cursor)
}

func lineStartBefore(data []byte, pos int) int {
	for i := pos - 1; i >= 0; i-- {
		if data[i] == '\n' {
			return i + 1
		}
	}
	return 0
}

// structuralMarkerLen returns the byte length of a list/blockquote
// marker (e.g. "- ", "12. ", "> ") at the start of prefix, including any
// leading indent, or 0 if prefix does not start with one. Text after the
// marker does not affect the result.
func structuralMarkerLen(prefix []byte) int {
	trimmed := strings.TrimLeft(string(prefix), " ")
	indent := len(prefix) - len(trimmed)
	if len(trimmed) >= 2 && (trimmed[0] == '-' || trimmed[0] == '*' || trimmed[0] == '+' || trimmed[0] == '>') && trimmed[1] == ' ' {
		return indent + 2
	}
	n := 0
	for n < len(trimmed) && trimmed[n] >= '0' && trimmed[n] <= '9' {
		n++
	}
	if n > 0 && n+1 < len(trimmed) && (trimmed[n] == '.' || trimmed[n] == ')') && trimmed[n+1] == ' ' {
		return indent + n + 2
	}
	return 0
}

// Delete removes the grapheme cluster after the cursor, or the active
// selection if one exists.
func (e *Editor) Delete() {
	if e.deleteSelectionIfAny() {
		return
	}
	end := unicode.GraphemeNext(e.buf.String(), e.cursor)
	if end == e.cursor {
		return
	}
	e.buf.Delete(e.cursor, end-e.cursor)
	e.pushUndoSnapshot()
}

// Enter inserts a newline, continuing the enclosing list item or
// blockquote marker onto the new line -- an empty continued marker (one
// typed at the end of an already-empty list item) instead terminates
// the list, matching ordinary markdown-editor ergonomics.
func (e *Editor) Enter() {
	e.deleteSelectionIfAny()
	data := e.buf.Bytes()
	lineStart := lineStartBefore(data, e.cursor)
	prefix := data[lineStart:e.cursor]
	marker := continuationMarker(prefix)

	if marker != "" && (strings.TrimSpace(string(prefix)) == strings.TrimSpace(marker) || structuralMarkerLen(prefix) == len(prefix)) {
		// The current line is just the marker with no content: Enter
		// clears it instead of continuing the list.
		e.buf.Delete(lineStart, e.cursor-lineStart)
		e.cursor = lineStart
		e.buf.Insert(e.cursor, '\n')
		e.cursor++
		e.pushUndoSnapshot()
		return
	}

	e.buf.Insert(e.cursor, '\n')
	e.cursor++
	if marker != "" {
		e.buf.InsertRange(e.cursor, []byte(marker))
		e.cursor += len(marker)
	}
	e.pushUndoSnapshot()
}

// continuationMarker derives what should be repeated at the start of the
// next line given the current line's prefix: bullet lists repeat their
// bullet, ordered lists increment their number, blockquotes repeat '> '.
func continuationMarker(prefix []byte) string {
	trimmed := strings.TrimLeft(string(prefix), " ")
	indent := string(prefix[:len(prefix)-len(trimmed)])
	if len(trimmed) >= 2 && (trimmed[0] == '-' || trimmed[0] == '*' || trimmed[0] == '+') && trimmed[1] == ' ' {
		return indent + trimmed[:1] + " "
	}
	if len(trimmed) >= 1 && trimmed[0] == '>' {
		return indent + "> "
	}
	n := 0
	for n < len(trimmed) && trimmed[n] >= '0' && trimmed[n] <= '9' {
		n++
	}
	if n > 0 && n+1 < len(trimmed) && (trimmed[n] == '.' || trimmed[n] == ')') && trimmed[n+1] == ' ' {
		val := 0
		for _, c := range trimmed[:n] {
			val = val*10 + int(c-'0')
		}
		return indent + itoa(val+1) + string(trimmed[n]) + " "
	}
	return ""
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

// MoveLeft/MoveRight move the cursor one grapheme cluster, clearing any
// active selection (arrow keys without Shift collapse a selection to
// its edge, matching ordinary text-editor behavior).
func (e *Editor) MoveLeft(extendSelection bool) {
	e.beginOrExtendSelection(extendSelection)
	e.cursor = unicode.GraphemePrev(e.buf.String(), e.cursor)
	e.endSelectionIfNotExtending(extendSelection)
}

func (e *Editor) MoveRight(extendSelection bool) {
	e.beginOrExtendSelection(extendSelection)
	e.cursor = unicode.GraphemeNext(e.buf.String(), e.cursor)
	e.endSelectionIfNotExtending(extendSelection)
}

func (e *Editor) beginOrExtendSelection(extend bool) {
	if extend && e.selectionFrom < 0 {
		e.selectionFrom = e.cursor
	}
}

func (e *Editor) endSelectionIfNotExtending(extend bool) {
	if !extend {
		e.selectionFrom = -1
	}
}

// HasSelection reports whether a selection is active.
func (e *Editor) HasSelection() bool { return e.selectionFrom >= 0 }

// SelectionRange returns the normalized [start, end) byte range of the
// active selection. Callers must check HasSelection first.
func (e *Editor) SelectionRange() (int, int) {
	if e.selectionFrom <= e.cursor {
		return e.selectionFrom, e.cursor
	}
	return e.cursor, e.selectionFrom
}

// deleteSelectionIfAny removes the active selection's text, if any, and
// reports whether it did so.
func (e *Editor) deleteSelectionIfAny() bool {
	if !e.HasSelection() {
		return false
	}
	start, end := e.SelectionRange()
	e.buf.Delete(start, end-start)
	e.cursor = start
	e.selectionFrom = -1
	e.pushUndoSnapshot()
	return true
}

// Copy returns the active selection's text without modifying the buffer.
func (e *Editor) Copy() (string, bool) {
	if !e.HasSelection() {
		return "", false
	}
	start, end := e.SelectionRange()
	return string(e.buf.Bytes()[start:end]), true
}

// Cut removes and returns the active selection's text.
func (e *Editor) Cut() (string, bool) {
	text, ok := e.Copy()
	if !ok {
		return "", false
	}
	e.deleteSelectionIfAny()
	return text, true
}

// Paste inserts s at the cursor, replacing any active selection.
func (e *Editor) Paste(s string) {
	e.InsertText(s)
}
