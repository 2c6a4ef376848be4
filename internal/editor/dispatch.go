package editor

import (
	"time"

	"github.com/andrewmd5/scribe/internal/host"
)

func durationMinutes(n int) time.Duration {
	return time.Duration(n) * time.Minute
}

// HandleKey routes a decoded keypress to the active mode's handler. It
// is the single entry point Run's frame loop calls after reading a key
// from the host.
func (e *Editor) HandleKey(k host.Key) {
	switch e.mode {
	case ModeWelcome:
		e.handleWelcomeKey(k)
	case ModeTimerSelect:
		e.handleTimerSelectKey(k)
	case ModeWriting:
		e.handleWritingKey(k)
	case ModeHistory, ModeFinished:
		e.handleMenuKey(k)
	case ModeHelp, ModeTOC, ModeSearch, ModeBlockEdit, ModeFrontmatterEdit:
		e.handleOverlayKey(k)
	}
}

// HandleMouse routes a decoded mouse event; only wheel scroll affects
// the editor, matching the spec's "mouse-wheel (scroll only)" rule.
func (e *Editor) HandleMouse(m host.MouseEvent) {
	if e.mode != ModeWriting {
		return
	}
	switch m.Type {
	case host.MouseWheelUp:
		e.scrollBy(-3)
	case host.MouseWheelDown:
		e.scrollBy(3)
	}
}

func (e *Editor) scrollBy(delta int) {
	e.refreshCache()
	e.scrollRow = clamp(e.scrollRow+delta, 0, maxInt(0, e.cache.TotalVRows()-1))
}

func (e *Editor) handleWelcomeKey(k host.Key) {
	if k.Name == "enter" {
		e.mode = ModeTimerSelect
	}
}

func (e *Editor) handleTimerSelectKey(k host.Key) {
	switch {
	case k.Name == "esc":
		e.mode = ModeWelcome
	case k.Rune >= '1' && k.Rune <= '9':
		minutes := int(k.Rune - '0')
		e.sessionLimit = durationMinutes(minutes)
		e.beginWritingSession()
	case k.Name == "enter":
		e.sessionLimit = durationMinutes(15)
		e.beginWritingSession()
	}
}

func (e *Editor) beginWritingSession() {
	e.sessionStart = e.host.Now()
	e.mode = ModeWriting
}

func (e *Editor) handleMenuKey(k host.Key) {
	if k.Name == "enter" || k.Name == "esc" {
		e.mode = ModeWelcome
	}
}

func (e *Editor) handleOverlayKey(k host.Key) {
	if k.Name == "esc" {
		e.popOverlay()
		return
	}
	if e.mode == ModeSearch {
		e.handleSearchKey(k)
	}
}

// handleWritingKey implements the Writing-mode key bindings from the
// editor state machine: cursor motion, edits, clipboard, undo/redo, and
// modal entry.
func (e *Editor) handleWritingKey(k host.Key) {
	switch {
	case k.Name == "esc":
		e.mode = ModeWelcome
		return
	case k.Ctrl && k.Rune == 'l':
		e.pushOverlay(ModeTOC)
		return
	case k.Ctrl && k.Rune == 's':
		e.pushOverlay(ModeSearch)
		return
	case k.Ctrl && k.Rune == 'e':
		e.pushOverlay(ModeBlockEdit)
		return
	case k.Ctrl && k.Rune == 'g':
		e.pushOverlay(ModeFrontmatterEdit)
		return
	case k.Ctrl && k.Rune == 'o':
		e.pushOverlay(ModeHelp)
		return
	case k.Ctrl && k.Rune == 'p':
		e.togglePause()
		return
	case k.Ctrl && k.Rune == 't':
		e.sessionLimit += durationMinutes(5)
		return
	}

	switch k.Name {
	case "up":
		e.moveVertical(-1, k.Shift)
		return
	case "down":
		e.moveVertical(1, k.Shift)
		return
	case "left":
		if k.Ctrl || k.Alt {
			e.moveToWithSelection(e.wordLeft(), k.Shift)
		} else {
			e.MoveLeft(k.Shift)
		}
		return
	case "right":
		if k.Ctrl || k.Alt {
			e.moveToWithSelection(e.wordRight(), k.Shift)
		} else {
			e.MoveRight(k.Shift)
		}
		return
	case "home":
		if k.Ctrl {
			e.moveToWithSelection(0, k.Shift)
		} else {
			e.moveToWithSelection(lineStartBefore(e.buf.Bytes(), e.cursor), k.Shift)
		}
		return
	case "end":
		if k.Ctrl {
			e.moveToWithSelection(e.buf.Len(), k.Shift)
		} else {
			e.moveToWithSelection(lineEndAt(e.buf.Bytes(), e.cursor), k.Shift)
		}
		return
	case "pageup":
		e.scrollBy(-maxInt(1, e.height/2))
		return
	case "pagedown":
		e.scrollBy(maxInt(1, e.height/2))
		return
	case "enter":
		e.Enter()
		return
	case "tab":
		e.InsertRune('\t')
		return
	case "backspace":
		e.Backspace()
		return
	case "delete":
		e.Delete()
		return
	}

	if k.Ctrl {
		switch k.Rune {
		case 'w':
			e.deleteWordLeft()
		case 'u':
			e.deleteToLineStart()
		case 'k':
			e.deleteToLineEnd()
		case 'd':
			e.deleteStructuralOrForward()
		case 'z':
			e.Undo()
		case 'y':
			e.Redo()
		case 'c':
			if s, ok := e.Copy(); ok {
				e.host.ClipboardWrite(s)
			}
		case 'x':
			if s, ok := e.Cut(); ok {
				e.host.ClipboardWrite(s)
			}
		case 'v':
			if s, err := e.host.ClipboardRead(); err == nil {
				e.Paste(normalizeLineEndings(s))
			}
		}
		return
	}

	if k.Rune != 0 {
		e.InsertRune(k.Rune)
	}
}

func (e *Editor) handleSearchKey(k host.Key) {
	if k.Name == "enter" {
		e.popOverlay()
	}
}

func (e *Editor) togglePause() {
	if e.paused {
		e.sessionStart = e.host.Now().Add(-e.pausedElapsed)
		e.paused = false
		return
	}
	e.pausedElapsed = e.host.Now().Sub(e.sessionStart)
	e.paused = true
}

func (e *Editor) moveToWithSelection(pos int, extend bool) {
	e.beginOrExtendSelection(extend)
	e.cursor = clamp(pos, 0, e.buf.Len())
	e.endSelectionIfNotExtending(extend)
}

// moveVertical moves the cursor dir lines up/down, preserving its byte
// offset within the line (not its on-screen display column -- a
// simplification that is exact for ASCII lines and approximate once a
// line contains multi-byte graphemes before the cursor's column).
func (e *Editor) moveVertical(dir int, extend bool) {
	e.beginOrExtendSelection(extend)
	data := e.buf.Bytes()
	lineStart := lineStartBefore(data, e.cursor)
	col := e.cursor - lineStart
	var targetLineStart int
	if dir < 0 {
		if lineStart == 0 {
			e.endSelectionIfNotExtending(extend)
			return
		}
		targetLineStart = lineStartBefore(data, lineStart-1)
	} else {
		nextStart := lineEndAt(data, e.cursor) + 1
		if nextStart > len(data) {
			e.endSelectionIfNotExtending(extend)
			return
		}
		targetLineStart = nextStart
	}
	targetLineEnd := lineEndAt(data, targetLineStart)
	e.cursor = clamp(targetLineStart+col, targetLineStart, targetLineEnd)
	e.endSelectionIfNotExtending(extend)
}

func lineEndAt(data []byte, pos int) int {
	for pos < len(data) && data[pos] != '\n' {
		pos++
	}
	return pos
}

func normalizeLineEndings(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\r' {
			if i+1 < len(s) && s[i+1] == '\n' {
				continue
			}
			out = append(out, '\n')
			continue
		}
		out = append(out, s[i])
	}
	return string(out)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
