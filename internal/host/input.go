package host

import (
	"encoding/base64"
	"time"

	phxmouse "github.com/phoenix-tui/phoenix/mouse"
)

func base64Encode(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// ReadKey blocks for up to timeout waiting for a decoded keypress. It
// follows the teacher's cancelable-reader shape for non-blocking input:
// a background goroutine owns the blocking os.File.Read call, and the
// caller's frame loop just waits on a channel with a timeout, so a
// stuck read never blocks the editor's redraw cadence.
func (t *ANSITerminal) ReadKey(timeout time.Duration) (Key, bool) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if t.reader.Buffered() == 0 {
			time.Sleep(2 * time.Millisecond)
			continue
		}
		b, err := t.reader.ReadByte()
		if err != nil {
			return Key{}, false
		}
		if b == 0x1b {
			return t.readEscapeSequence()
		}
		return decodeByteKey(b), true
	}
	return Key{}, false
}

func decodeByteKey(b byte) Key {
	switch b {
	case '\r', '\n':
		return Key{Name: "enter"}
	case 0x7f, 0x08:
		return Key{Name: "backspace"}
	case '\t':
		return Key{Name: "tab"}
	case 0x03:
		return Key{Name: "ctrl+c", Ctrl: true, Rune: 'c'}
	}
	if b < 0x20 {
		return Key{Name: "ctrl", Ctrl: true, Rune: rune('a' + b - 1)}
	}
	return Key{Rune: rune(b)}
}

// readEscapeSequence decodes the byte(s) following a lone ESC: either a
// bare Escape keypress (nothing follows within the read window), a CSI
// arrow/function-key sequence, or an SGR mouse report. A decoded mouse
// report is stashed on pendingMouse for ReadMouse to pick up rather than
// returned as a Key, since the two share one underlying byte stream.
func (t *ANSITerminal) readEscapeSequence() (Key, bool) {
	if t.reader.Buffered() == 0 {
		return Key{Name: "esc"}, true
	}
	b, _ := t.reader.ReadByte()
	if b != '[' && b != 'O' {
		return Key{Name: "esc"}, true
	}
	if b == '[' && t.reader.Buffered() > 0 {
		peek, _ := t.reader.Peek(1)
		if len(peek) == 1 && peek[0] == '<' {
			var seq []byte
			seq = append(seq, '<')
			t.reader.ReadByte() // consume '<'
			for t.reader.Buffered() > 0 {
				c, _ := t.reader.ReadByte()
				seq = append(seq, c)
				if c == 'M' || c == 'm' {
					break
				}
			}
			if ev, ok := decodeSGRMouse(t.mouse, string(seq)); ok {
				t.pendingMouse = &ev
			}
			return Key{Name: "mouse"}, true
		}
	}
	var seq []byte
	for t.reader.Buffered() > 0 {
		c, _ := t.reader.ReadByte()
		seq = append(seq, c)
		if (c >= '@' && c <= '~') && c != '[' {
			break
		}
	}
	return decodeCSIKey(seq), true
}

func decodeCSIKey(seq []byte) Key {
	s := string(seq)
	switch s {
	case "A":
		return Key{Name: "up"}
	case "B":
		return Key{Name: "down"}
	case "C":
		return Key{Name: "right"}
	case "D":
		return Key{Name: "left"}
	case "H":
		return Key{Name: "home"}
	case "F":
		return Key{Name: "end"}
	case "3~":
		return Key{Name: "delete"}
	case "5~":
		return Key{Name: "pageup"}
	case "6~":
		return Key{Name: "pagedown"}
	}
	return Key{Name: "unknown"}
}

// ReadMouse blocks for up to timeout waiting for a decoded SGR (1006)
// mouse report: "\x1b[<button;x;y" followed by 'M' or 'm'. Only click
// and wheel are modeled; drag/motion reports (button bit 32 set) are
// read and discarded rather than surfaced, matching the editor's
// decision not to track hover state.
func (t *ANSITerminal) ReadMouse(timeout time.Duration) (MouseEvent, bool) {
	if t.pendingMouse != nil {
		ev := *t.pendingMouse
		t.pendingMouse = nil
		return ev, true
	}
	key, ok := t.ReadKey(timeout)
	if !ok || key.Name != "mouse" || t.pendingMouse == nil {
		return MouseEvent{}, false
	}
	ev := *t.pendingMouse
	t.pendingMouse = nil
	return ev, true
}

// decodeSGRMouse hands a raw SGR mouse sequence ("<button;x;y" followed
// by M or m) to the phoenix mouse parser and translates the first event
// it reports (press, release, or scroll -- the only three this editor's
// host contract models) into a MouseEvent. Click/double-click/drag
// events the parser also enriches the stream with are ignored, matching
// the "mouse-wheel and plain click only" rule the editor dispatches on.
func decodeSGRMouse(m *phxmouse.Mouse, sequence string) (MouseEvent, bool) {
	events, err := m.ParseSequence(sequence)
	if err != nil || len(events) == 0 {
		return MouseEvent{}, false
	}
	for _, ev := range events {
		pos := ev.Position()
		switch {
		case ev.IsScroll():
			if ev.Button() == phxmouse.ButtonWheelDown {
				return MouseEvent{Type: MouseWheelDown, X: pos.X(), Y: pos.Y()}, true
			}
			return MouseEvent{Type: MouseWheelUp, X: pos.X(), Y: pos.Y()}, true
		case ev.Type() == phxmouse.EventPress:
			return MouseEvent{Type: MousePress, X: pos.X(), Y: pos.Y()}, true
		case ev.Type() == phxmouse.EventRelease:
			return MouseEvent{Type: MouseRelease, X: pos.X(), Y: pos.Y()}, true
		}
	}
	return MouseEvent{}, false
}
