package editor

import (
	"time"

	"github.com/andrewmd5/scribe/internal/host"
)

// pollInterval bounds how long each frame waits for a key before
// re-checking resize/timer/quit state, mirroring the teacher's program
// loop tick rate for its own non-blocking input poll.
const pollInterval = 50 * time.Millisecond

// persistInterval is how often Run would hand the document off to a
// persistence collaborator, were one wired in; SPEC_FULL.md keeps
// session persistence an out-of-scope collaborator, so Run only tracks
// the cadence via lastPersist without performing any I/O itself.
const persistInterval = 5 * time.Second

// Run drives the single-threaded, cooperatively-scheduled frame loop:
// poll for resize, check the writing-session timer, read at most one
// key or mouse event, dispatch it, and render. It returns when the host
// yields a ctrl+c keypress from any mode.
func Run(h host.Host, e *Editor) error {
	lastPersist := h.Now()
	for {
		cols, rows := h.Size()
		if cols != e.width || rows != e.height {
			e.Resize(cols, rows)
		}

		if e.mode == ModeWriting && !e.paused && e.sessionLimit > 0 {
			if h.Now().Sub(e.sessionStart) >= e.sessionLimit {
				e.mode = ModeFinished
			}
		}

		if h.Now().Sub(lastPersist) >= persistInterval {
			lastPersist = h.Now()
		}

		if k, ok := h.ReadKey(pollInterval); ok {
			if k.Name == "ctrl+c" {
				return nil
			}
			if k.Name == "mouse" {
				if m, ok := h.ReadMouse(0); ok {
					e.HandleMouse(m)
				}
			} else {
				e.HandleKey(k)
			}
		}

		h.Draw(e.Frame())
	}
}
