// Package editor implements the modal editing state machine: the
// document buffer, cursor/selection, undo/redo ring, and the
// cooperative frame loop that ties the host, cache, and renderer
// together. Its loop shape -- poll input, dispatch to the active
// mode, re-render -- follows the teacher's Elm-Architecture program
// loop (tea/internal/application/program/program.go), generalized from
// a generic message-dispatch model to this editor's fixed modal set.
package editor

import (
	"time"

	"github.com/google/uuid"

	"github.com/andrewmd5/scribe/internal/buffer"
	"github.com/andrewmd5/scribe/internal/host"
	"github.com/andrewmd5/scribe/internal/markdown/ast"
	"github.com/andrewmd5/scribe/internal/markdown/block"
	"github.com/andrewmd5/scribe/internal/markdown/cache"
	"github.com/andrewmd5/scribe/internal/markdown/inline"
	"github.com/andrewmd5/scribe/internal/render"
	"github.com/andrewmd5/scribe/internal/render/style"
)

func init() {
	cache.SetInlineParser(func(data []byte, start, end int) []ast.Run {
		return inline.Parse(data, start, end)
	})
}

// Mode names a top-level or overlay editing state.
type Mode int

const (
	ModeWelcome Mode = iota
	ModeTimerSelect
	ModeWriting
	ModeHistory
	ModeFinished
	ModeHelp
	ModeTOC
	ModeSearch
	ModeBlockEdit
	ModeFrontmatterEdit
)

// undoEntry is one snapshot in the bounded undo ring: the full buffer
// contents plus cursor position at the time of the snapshot, tagged with
// a UUID so external tooling (a future session-history feature) could
// correlate entries without relying on array index stability.
type undoEntry struct {
	id     string
	text   string
	cursor int
}

const maxUndoEntries = 100

// Editor owns the document buffer, cursor, modal state, and the
// rendering pipeline's cache. It is the single point where a keypress
// becomes a buffer mutation becomes a re-render.
type Editor struct {
	buf    *buffer.Buffer
	cache  *cache.Cache
	host   host.Host
	theme  style.Theme

	mode     Mode
	prevMode Mode // single-slot "return to" mode for overlays, not a general stack

	cursor        int
	selectionFrom int // -1 when there is no active selection
	scrollRow     int

	undoStack []undoEntry
	undoPos   int // one past the index of the entry representing "now"; redo walks forward from here

	width, height int

	sessionStart  time.Time
	sessionLimit  time.Duration
	paused        bool
	pausedElapsed time.Duration
}

// New constructs an Editor over initial document text, wired to h for
// display/input/clipboard/time and rendering with theme.
func New(h host.Host, initialText string, theme style.Theme) *Editor {
	e := &Editor{
		buf:           buffer.NewFromString(initialText),
		cache:         cache.New(),
		host:          h,
		theme:         theme,
		mode:          ModeWelcome,
		selectionFrom: -1,
	}
	e.width, e.height = h.Size()
	e.pushUndoSnapshot()
	return e
}

// Mode returns the editor's current top-level or overlay mode.
func (e *Editor) Mode() Mode { return e.mode }

// ForceMode sets the editor's mode directly, bypassing the normal
// push/pop transitions. Used by non-interactive callers (the CLI's
// print mode) that need a Writing-style frame without ever driving the
// welcome/timer menus.
func (e *Editor) ForceMode(m Mode) { e.mode = m }

// Text returns the document's current contents.
func (e *Editor) Text() string { return e.buf.String() }

// Cursor returns the cursor's absolute byte offset.
func (e *Editor) Cursor() int { return e.cursor }

// pushOverlay enters an overlay mode, remembering the mode to return to.
// Only one level of nesting is supported -- entering a second overlay
// while already in one simply overwrites prevMode, matching the spec's
// single-slot push/pop rule rather than a general mode stack.
func (e *Editor) pushOverlay(m Mode) {
	e.prevMode = e.mode
	e.mode = m
}

// popOverlay returns to the remembered previous mode.
func (e *Editor) popOverlay() {
	e.mode = e.prevMode
}

func (e *Editor) refreshCache() {
	cfg := block.DefaultConfig()
	cache.Refresh(e.cache, e.buf.Bytes(), e.width, e.height, cfg)
}

// Frame re-parses if needed and renders the current viewport.
func (e *Editor) Frame() render.Frame {
	switch e.mode {
	case ModeWelcome, ModeTimerSelect, ModeHistory, ModeFinished:
		return e.menuFrame()
	}
	e.refreshCache()
	cursorByte := e.cursor
	if e.mode != ModeWriting && e.mode != ModeBlockEdit {
		cursorByte = -1
	}
	frame := render.Render(e.buf.Bytes(), e.cache, render.Options{
		Width:      e.width,
		Height:     e.height,
		ScrollRow:  e.scrollRow,
		CursorByte: cursorByte,
		Theme:      e.theme,
	})
	if status := e.StatusLine(); status != "" && len(frame.Lines) > 0 {
		frame.Lines[len(frame.Lines)-1] = render.Line{Spans: []render.Span{{Text: status}}}
	}
	return frame
}

// Resize updates the viewport dimensions, invalidating the cache (a
// width change reflows every block).
func (e *Editor) Resize(width, height int) {
	e.width, e.height = width, height
}

// pushUndoSnapshot records the current buffer+cursor as a new undo
// point, truncating any redo history beyond the current position and
// evicting the oldest entry once the ring exceeds maxUndoEntries.
func (e *Editor) pushUndoSnapshot() {
	entry := undoEntry{id: uuid.NewString(), text: e.buf.String(), cursor: e.cursor}
	e.undoStack = e.undoStack[:e.undoPos]
	e.undoStack = append(e.undoStack, entry)
	if len(e.undoStack) > maxUndoEntries {
		e.undoStack = e.undoStack[len(e.undoStack)-maxUndoEntries:]
	}
	e.undoPos = len(e.undoStack)
}

// Undo restores the previous buffer snapshot, if any.
func (e *Editor) Undo() bool {
	if e.undoPos <= 1 {
		return false
	}
	e.undoPos--
	e.restoreSnapshot(e.undoStack[e.undoPos-1])
	return true
}

// Redo re-applies a snapshot undone by Undo, if any.
func (e *Editor) Redo() bool {
	if e.undoPos >= len(e.undoStack) {
		return false
	}
	e.restoreSnapshot(e.undoStack[e.undoPos])
	e.undoPos++
	return true
}

func (e *Editor) restoreSnapshot(entry undoEntry) {
	e.buf = buffer.NewFromString(entry.text)
	e.cursor = clamp(entry.cursor, 0, e.buf.Len())
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
