package editor

import "github.com/andrewmd5/scribe/internal/markdown/ast"

// smartStructuralBackspace implements the spec's smart-delete rule:
// backspace at the right edge of a paired delimiter, link, autolink,
// inline-math span, or an image block removes the entire syntax in one
// step rather than one byte at a time. Reports whether it handled the
// backspace; the caller falls back to ordinary grapheme deletion
// otherwise.
func (e *Editor) smartStructuralBackspace() bool {
	if e.cursor <= 0 {
		return false
	}
	e.refreshCache()
	blocks := e.cache.Blocks()
	bi := e.cache.BlockAtOffset(e.cursor - 1)
	if bi < 0 || bi >= len(blocks) {
		return false
	}
	b := &blocks[bi]

	if b.Type == ast.Image && b.Span.End == e.cursor {
		start := b.Span.Start
		e.buf.Delete(start, e.cursor-start)
		e.cursor = start
		e.pushUndoSnapshot()
		return true
	}

	if !b.HasProse() {
		return false
	}
	runs := e.cache.RunsFor(b)
	for i := range runs {
		r := &runs[i]
		if r.Span.End != e.cursor {
			continue
		}
		switch r.Type {
		case ast.Link, ast.FootnoteRef, ast.Autolink, ast.InlineMath:
			e.buf.Delete(r.Span.Start, r.Span.End-r.Span.Start)
			e.cursor = r.Span.Start
			e.pushUndoSnapshot()
			return true
		case ast.Delim:
			if start, ok := pairedDelimStart(runs, r); ok {
				e.buf.Delete(start, e.cursor-start)
				e.cursor = start
				e.pushUndoSnapshot()
				return true
			}
		}
	}
	return false
}

// pairedDelimStart returns the byte offset where a fully paired
// delimiter span begins, given its closing run, or false if close isn't
// actually the closing half of a pair.
func pairedDelimStart(runs []ast.Run, close *ast.Run) (int, bool) {
	if close.Delim.Open || close.Delim.PairIndex < 0 {
		return 0, false
	}
	if close.Delim.PairIndex >= len(runs) {
		return 0, false
	}
	open := &runs[close.Delim.PairIndex]
	return open.Span.Start, true
}

// deleteWordLeft implements ctrl-W: delete from the cursor back to the
// start of the previous word, treating runs of whitespace and runs of
// word characters as the two token kinds to stop between.
func (e *Editor) deleteWordLeft() {
	if e.deleteSelectionIfAny() {
		return
	}
	data := e.buf.Bytes()
	pos := e.cursor
	for pos > 0 && isSpaceByte(data[pos-1]) {
		pos--
	}
	for pos > 0 && !isSpaceByte(data[pos-1]) {
		pos--
	}
	if pos == e.cursor {
		return
	}
	e.buf.Delete(pos, e.cursor-pos)
	e.cursor = pos
	e.pushUndoSnapshot()
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// deleteToLineStart implements ctrl-U.
func (e *Editor) deleteToLineStart() {
	if e.deleteSelectionIfAny() {
		return
	}
	start := lineStartBefore(e.buf.Bytes(), e.cursor)
	if start == e.cursor {
		return
	}
	e.buf.Delete(start, e.cursor-start)
	e.cursor = start
	e.pushUndoSnapshot()
}

// deleteToLineEnd implements ctrl-K.
func (e *Editor) deleteToLineEnd() {
	if e.deleteSelectionIfAny() {
		return
	}
	data := e.buf.Bytes()
	end := e.cursor
	for end < len(data) && data[end] != '\n' {
		end++
	}
	if end == e.cursor {
		return
	}
	e.buf.Delete(e.cursor, end-e.cursor)
	e.pushUndoSnapshot()
}

// deleteStructuralOrForward implements ctrl-D: delete the structural
// element the cursor sits at the left edge of (mirroring
// smartStructuralBackspace but looking forward), else the forward
// grapheme.
func (e *Editor) deleteStructuralOrForward() {
	if e.deleteSelectionIfAny() {
		return
	}
	e.refreshCache()
	blocks := e.cache.Blocks()
	bi := e.cache.BlockAtOffset(e.cursor)
	if bi >= 0 && bi < len(blocks) {
		b := &blocks[bi]
		if b.Type == ast.Image && b.Span.Start == e.cursor {
			e.buf.Delete(b.Span.Start, b.Span.End-b.Span.Start)
			e.pushUndoSnapshot()
			return
		}
		if b.HasProse() {
			for _, r := range e.cache.RunsFor(b) {
				if r.Span.Start != e.cursor {
					continue
				}
				switch r.Type {
				case ast.Link, ast.FootnoteRef, ast.Autolink, ast.InlineMath:
					e.buf.Delete(r.Span.Start, r.Span.End-r.Span.Start)
					e.pushUndoSnapshot()
					return
				}
			}
		}
	}
	e.Delete()
}

// wordRight/wordLeft return the cursor position after/before one word
// step, used for ctrl/alt+arrow navigation.
func (e *Editor) wordRight() int {
	data := e.buf.Bytes()
	pos := e.cursor
	for pos < len(data) && isSpaceByte(data[pos]) {
		pos++
	}
	for pos < len(data) && !isSpaceByte(data[pos]) {
		pos++
	}
	return pos
}

func (e *Editor) wordLeft() int {
	data := e.buf.Bytes()
	pos := e.cursor
	for pos > 0 && isSpaceByte(data[pos-1]) {
		pos--
	}
	for pos > 0 && !isSpaceByte(data[pos-1]) {
		pos--
	}
	return pos
}
