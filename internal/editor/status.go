package editor

import (
	"time"

	"github.com/dustin/go-humanize"
)

// StatusLine summarizes the active writing session for a status bar:
// time remaining rendered as a relative duration rather than a raw clock
// value, the same human-readable framing humanize provides for
// timestamps, or "time's up" once the limit has passed.
func (e *Editor) StatusLine() string {
	if e.mode != ModeWriting || e.sessionLimit <= 0 {
		return ""
	}
	elapsed := e.host.Now().Sub(e.sessionStart)
	if e.paused {
		elapsed = e.pausedElapsed
	}
	remaining := e.sessionLimit - elapsed
	if remaining <= 0 {
		return "time's up"
	}
	return humanize.RelTime(time.Now().Add(-remaining), time.Now(), "left", "over")
}
