package editor

import (
	phxstyle "github.com/phoenix-tui/phoenix/style"

	"github.com/andrewmd5/scribe/internal/render"
	"github.com/andrewmd5/scribe/internal/render/layout"
)

// menuFrame renders one of the top-level menu modes (Welcome,
// TimerSelect, History, Finished) as a small block of centered lines --
// these modes have no document to render, just a fixed prompt, so they
// bypass the block-cache renderer entirely.
func (e *Editor) menuFrame() render.Frame {
	var lines []string
	switch e.mode {
	case ModeWelcome:
		lines = []string{"scribe", "", "press enter to begin"}
	case ModeTimerSelect:
		lines = []string{"choose a session length", "", "press 1-9 for minutes, enter for 15"}
	case ModeHistory:
		lines = []string{"session history", "", "press enter or esc to return"}
	case ModeFinished:
		lines = []string{"time's up", "", "press enter or esc to return"}
	}

	heading := e.theme.Heading
	out := make([]render.Line, 0, e.height)
	blank := maxInt(0, (e.height-len(lines))/2)
	for i := 0; i < blank; i++ {
		out = append(out, render.Line{})
	}
	for i, s := range lines {
		lineStyle := phxstyle.New()
		if i == 0 {
			lineStyle = lineStyle.Foreground(heading).Bold(true)
		}
		col := layout.CenterString(s, e.width)
		pad := ""
		for j := 0; j < col; j++ {
			pad += " "
		}
		out = append(out, render.Line{Spans: []render.Span{{Text: pad + s, Style: lineStyle}}})
	}
	for len(out) < e.height {
		out = append(out, render.Line{})
	}
	return render.Frame{Lines: out, CursorRow: -1, CursorCol: -1}
}
