// Package host defines the Host capability contract the editor state
// machine (internal/editor) depends on, plus the one concrete
// implementation the module ships: an ANSI terminal driver. Every
// dependency the implementation needs (raw mode, color-profile
// detection, clipboard, mouse decoding) is injected through this
// interface so internal/editor never imports a terminal library
// directly -- the same inversion the teacher's terminal.Terminal
// interface uses to keep its platform-specific code out of the core
// event loop.
package host

import (
	"time"

	"github.com/andrewmd5/scribe/internal/render"
)

// Key is one decoded keypress or control sequence.
type Key struct {
	Rune      rune
	Name      string // "enter", "esc", "up", "down", "tab", "backspace", "delete", "" for plain runes
	Ctrl      bool
	Alt       bool
	Shift     bool
}

// MouseEventType classifies a decoded mouse event.
type MouseEventType int

const (
	MousePress MouseEventType = iota
	MouseRelease
	MouseWheelUp
	MouseWheelDown
)

// MouseEvent is a decoded pointer event. Drag/hover tracking is
// deliberately not modeled -- press, release and wheel events are
// decoded, and the editor acts only on wheel events.
type MouseEvent struct {
	Type MouseEventType
	X, Y int
}

// ImageHandle is an opaque reference to an image the host has decoded
// and is ready to display inline; its zero value means "no image
// protocol available, render the alt-text placeholder instead."
type ImageHandle struct {
	ID     string
	Cols   int
	Rows   int
	Valid  bool
}

// Capabilities reports what a host implementation can actually do, so
// the editor can degrade gracefully (e.g. skip image decode calls
// entirely on a host with no graphics protocol).
type Capabilities struct {
	TrueColor       bool
	Images          bool
	Clipboard       bool
	Mouse           bool
	BracketedPaste  bool
	SynchronizedOut bool
}

// Host is the capability contract the editor state machine is built
// against. Construction of a concrete Host (raw mode setup, color
// profile detection) happens once at program startup in cmd/scribe;
// everything after that flows through this interface.
type Host interface {
	// Display
	Size() (cols, rows int)
	Draw(frame render.Frame)
	Capabilities() Capabilities

	// Input
	ReadKey(timeout time.Duration) (Key, bool)
	ReadMouse(timeout time.Duration) (MouseEvent, bool)

	// Clipboard
	ClipboardRead() (string, error)
	ClipboardWrite(s string) error

	// Images
	LoadImage(path string) (ImageHandle, error)

	// Time (injected so the editor's timer/session-length features are
	// testable without wall-clock dependence)
	Now() time.Time

	// Lifecycle
	EnterRawMode() error
	ExitRawMode() error
	Close() error
}
