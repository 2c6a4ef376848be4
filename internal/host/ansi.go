package host

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	phxclipboard "github.com/phoenix-tui/phoenix/clipboard"
	phxmouse "github.com/phoenix-tui/phoenix/mouse"
	phxstyle "github.com/phoenix-tui/phoenix/style"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/andrewmd5/scribe/internal/render"
)

// ANSITerminal is the module's one concrete Host implementation: a
// raw-mode ANSI terminal driver built on x/term for raw-mode handling
// and termenv for color-profile detection, following the same
// "detect capability once at startup, then assume it for the session"
// posture as the teacher's terminal capability detection.
type ANSITerminal struct {
	in       *os.File
	out      *os.File
	reader   *bufio.Reader
	oldState *term.State
	profile  termenv.Profile
	caps     Capabilities
	clip     *phxclipboard.Clipboard
	mouse    *phxmouse.Mouse

	pendingMouse *MouseEvent
}

// NewANSITerminal builds a driver over stdin/stdout, detecting color
// profile and clipboard availability but not yet entering raw mode
// (call EnterRawMode once the caller is ready to take over the
// terminal). Clipboard access goes through phxclipboard, whose provider
// chain already picks native-vs-OSC-52 and detects SSH sessions, so the
// driver doesn't duplicate that fallback logic itself.
func NewANSITerminal() *ANSITerminal {
	profile := termenv.ColorProfile()
	clip, _ := phxclipboard.New()
	t := &ANSITerminal{
		in:      os.Stdin,
		out:     os.Stdout,
		reader:  bufio.NewReader(os.Stdin),
		profile: profile,
		clip:    clip,
		mouse:   phxmouse.New(),
	}
	t.caps = Capabilities{
		TrueColor:       profile == termenv.TrueColor,
		Images:          detectKittyGraphics(),
		Clipboard:       clip != nil && clip.IsAvailable(),
		Mouse:           true,
		BracketedPaste:  true,
		SynchronizedOut: true,
	}
	return t
}

// detectKittyGraphics checks the TERM/TERM_PROGRAM environment for a
// known Kitty-graphics-capable terminal. A query-based detection (write
// the Kitty "does your terminal support this" escape and read the
// response) would be more accurate but risks hanging on terminals that
// never answer; the env-based heuristic is the same tradeoff the
// teacher's own terminal package makes for Windows-vs-ANSI detection.
func detectKittyGraphics() bool {
	term := os.Getenv("TERM")
	prog := os.Getenv("TERM_PROGRAM")
	return strings.Contains(term, "kitty") || prog == "kitty" || prog == "WezTerm" || prog == "ghostty"
}

func (t *ANSITerminal) Size() (int, int) {
	w, h, err := term.GetSize(int(t.out.Fd()))
	if err != nil {
		return 80, 24
	}
	return w, h
}

func (t *ANSITerminal) Capabilities() Capabilities { return t.caps }

func (t *ANSITerminal) EnterRawMode() error {
	state, err := term.MakeRaw(int(t.in.Fd()))
	if err != nil {
		return fmt.Errorf("enter raw mode: %w", err)
	}
	t.oldState = state
	fmt.Fprint(t.out, "\x1b[?1049h") // alternate screen
	fmt.Fprint(t.out, "\x1b[?25l")   // hide cursor
	if t.caps.Mouse {
		fmt.Fprint(t.out, "\x1b[?1006h\x1b[?1000h") // SGR mouse mode
	}
	if t.caps.BracketedPaste {
		fmt.Fprint(t.out, "\x1b[?2004h")
	}
	return nil
}

func (t *ANSITerminal) ExitRawMode() error {
	if t.caps.BracketedPaste {
		fmt.Fprint(t.out, "\x1b[?2004l")
	}
	if t.caps.Mouse {
		fmt.Fprint(t.out, "\x1b[?1000l\x1b[?1006l")
	}
	fmt.Fprint(t.out, "\x1b[?25h")   // show cursor
	fmt.Fprint(t.out, "\x1b[?1049l") // primary screen
	if t.oldState != nil {
		return term.Restore(int(t.in.Fd()), t.oldState)
	}
	return nil
}

func (t *ANSITerminal) Close() error {
	return t.ExitRawMode()
}

func (t *ANSITerminal) Now() time.Time { return time.Now() }

// Draw flattens a render.Frame to ANSI-styled lines and writes them in
// one synchronized-output bracket, so the terminal never shows a
// partially painted frame.
func (t *ANSITerminal) Draw(frame render.Frame) {
	var b strings.Builder
	if t.caps.SynchronizedOut {
		b.WriteString("\x1b[?2026h")
	}
	b.WriteString("\x1b[H")
	for i, line := range frame.Lines {
		if i > 0 {
			b.WriteString("\r\n")
		}
		b.WriteString("\x1b[2K")
		for _, span := range line.Spans {
			b.WriteString(phxstyle.Render(span.Style, span.Text))
		}
	}
	if frame.CursorRow >= 0 {
		b.WriteString(fmt.Sprintf("\x1b[%d;%dH", frame.CursorRow+1, frame.CursorCol+1))
		b.WriteString("\x1b[?25h")
	} else {
		b.WriteString("\x1b[?25l")
	}
	if t.caps.SynchronizedOut {
		b.WriteString("\x1b[?2026l")
	}
	io.WriteString(t.out, b.String())
}

func (t *ANSITerminal) ClipboardRead() (string, error) {
	if t.clip == nil {
		return "", fmt.Errorf("clipboard unavailable")
	}
	return t.clip.Read()
}

// ClipboardWrite delegates to phxclipboard, which already tries its
// provider chain (native first, then OSC 52) internally -- the driver
// used to hand-roll that fallback itself.
func (t *ANSITerminal) ClipboardWrite(s string) error {
	if t.clip == nil {
		return fmt.Errorf("clipboard unavailable")
	}
	return t.clip.Write(s)
}

func (t *ANSITerminal) LoadImage(path string) (ImageHandle, error) {
	if !t.caps.Images {
		return ImageHandle{}, fmt.Errorf("host has no image protocol available")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ImageHandle{}, fmt.Errorf("load image %s: %w", path, err)
	}
	id := kittyTransmit(t.out, data)
	return ImageHandle{ID: id, Valid: true}, nil
}

// kittyTransmit sends an image over the Kitty graphics protocol and
// returns the image ID it chose for the transfer (from nextImageID), so later frames can
// re-place it with a cheap "display image N at (x,y)" command instead
// of re-transmitting the bytes every redraw.
func kittyTransmit(out io.Writer, data []byte) string {
	id := nextImageID()
	encoded := base64Encode(data)
	const chunkSize = 4096
	for i := 0; i < len(encoded); i += chunkSize {
		end := i + chunkSize
		if end > len(encoded) {
			end = len(encoded)
		}
		more := 0
		if end < len(encoded) {
			more = 1
		}
		first := i == 0
		if first {
			fmt.Fprintf(out, "\x1b_Ga=t,f=100,i=%s,m=%d;%s\x1b\\", id, more, encoded[i:end])
		} else {
			fmt.Fprintf(out, "\x1b_Gm=%d;%s\x1b\\", more, encoded[i:end])
		}
	}
	return id
}

var imageIDCounter int

func nextImageID() string {
	imageIDCounter++
	return strconv.Itoa(imageIDCounter)
}
