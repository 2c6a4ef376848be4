package editor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrewmd5/scribe/internal/host"
	"github.com/andrewmd5/scribe/internal/render"
	"github.com/andrewmd5/scribe/internal/render/style"
)

type fakeHost struct {
	cols, rows int
	now        time.Time
	clipboard  string
	keys       []host.Key
}

func (f *fakeHost) Size() (int, int)                 { return f.cols, f.rows }
func (f *fakeHost) Draw(render.Frame)                 {}
func (f *fakeHost) Capabilities() host.Capabilities   { return host.Capabilities{} }
func (f *fakeHost) Now() time.Time                    { return f.now }
func (f *fakeHost) EnterRawMode() error               { return nil }
func (f *fakeHost) ExitRawMode() error                { return nil }
func (f *fakeHost) Close() error                      { return nil }
func (f *fakeHost) ClipboardRead() (string, error)    { return f.clipboard, nil }
func (f *fakeHost) ClipboardWrite(s string) error     { f.clipboard = s; return nil }
func (f *fakeHost) LoadImage(string) (host.ImageHandle, error) {
	return host.ImageHandle{}, nil
}
func (f *fakeHost) ReadKey(time.Duration) (host.Key, bool) {
	if len(f.keys) == 0 {
		return host.Key{}, false
	}
	k := f.keys[0]
	f.keys = f.keys[1:]
	return k, true
}
func (f *fakeHost) ReadMouse(time.Duration) (host.MouseEvent, bool) {
	return host.MouseEvent{}, false
}

func newTestEditor(t *testing.T, text string) (*Editor, *fakeHost) {
	t.Helper()
	h := &fakeHost{cols: 80, rows: 24, now: time.Now()}
	e := New(h, text, style.Dark)
	e.mode = ModeWriting
	return e, h
}

func TestInsertRuneAdvancesCursor(t *testing.T) {
	e, _ := newTestEditor(t, "")
	e.InsertRune('a')
	assert.Equal(t, "a", e.Text())
	assert.Equal(t, 1, e.Cursor())
}

func TestBackspaceRemovesGrapheme(t *testing.T) {
	e, _ := newTestEditor(t, "ab")
	e.cursor = 2
	e.Backspace()
	assert.Equal(t, "a", e.Text())
}

func TestBackspaceRemovesPairedDelimiter(t *testing.T) {
	e, _ := newTestEditor(t, "**bold**")
	e.cursor = len(e.Text())
	e.Backspace()
	assert.Equal(t, "", e.Text())
}

func TestBackspaceRemovesLinkSyntax(t *testing.T) {
	e, _ := newTestEditor(t, "[text](url)")
	e.cursor = len(e.Text())
	e.Backspace()
	assert.Equal(t, "", e.Text())
}

func TestEnterContinuesListItem(t *testing.T) {
	e, _ := newTestEditor(t, "- a\n- b\n")
	e.cursor = 3 // end of "- a"
	e.Enter()
	assert.Equal(t, "- a\n- \n- b\n", e.Text())
}

func TestEnterOnEmptyListItemTerminatesList(t *testing.T) {
	e, _ := newTestEditor(t, "- ")
	e.cursor = len(e.Text())
	e.Enter()
	assert.Equal(t, "\n", e.Text())
}

func TestUndoRedoRoundTrip(t *testing.T) {
	e, _ := newTestEditor(t, "a")
	e.cursor = 1
	e.InsertRune('b')
	require.Equal(t, "ab", e.Text())
	ok := e.Undo()
	require.True(t, ok)
	assert.Equal(t, "a", e.Text())
	ok = e.Redo()
	require.True(t, ok)
	assert.Equal(t, "ab", e.Text())
}

func TestCutThenPasteRoundTrips(t *testing.T) {
	e, _ := newTestEditor(t, "hello world")
	e.cursor = 0
	e.selectionFrom = 5
	text, ok := e.Cut()
	require.True(t, ok)
	assert.Equal(t, "hello", text)
	assert.Equal(t, " world", e.Text())
	e.cursor = 0
	e.Paste(text)
	assert.Equal(t, "hello world", e.Text())
}

func TestSmartBackspaceRemovesListMarker(t *testing.T) {
	e, _ := newTestEditor(t, "- ")
	e.cursor = len(e.Text())
	e.Backspace()
	assert.Equal(t, "", e.Text())
}

func TestDeleteWordLeft(t *testing.T) {
	e, _ := newTestEditor(t, "hello world")
	e.cursor = len(e.Text())
	e.deleteWordLeft()
	assert.Equal(t, "hello ", e.Text())
}

func TestWelcomeEnterEntersTimerSelect(t *testing.T) {
	e, h := newTestEditor(t, "")
	e.mode = ModeWelcome
	e.HandleKey(host.Key{Name: "enter"})
	assert.Equal(t, ModeTimerSelect, e.Mode())
	_ = h
}

func TestTimerSelectDigitEntersWriting(t *testing.T) {
	e, _ := newTestEditor(t, "")
	e.mode = ModeTimerSelect
	e.HandleKey(host.Key{Rune: '5'})
	assert.Equal(t, ModeWriting, e.Mode())
	assert.Equal(t, 5*time.Minute, e.sessionLimit)
}

func TestOverlayPushPopReturnsToWriting(t *testing.T) {
	e, _ := newTestEditor(t, "")
	e.mode = ModeWriting
	e.HandleKey(host.Key{Ctrl: true, Rune: 'l'})
	assert.Equal(t, ModeTOC, e.Mode())
	e.HandleKey(host.Key{Name: "esc"})
	assert.Equal(t, ModeWriting, e.Mode())
}

func TestArrowKeyMovesCursor(t *testing.T) {
	e, _ := newTestEditor(t, "abc")
	e.cursor = 0
	e.HandleKey(host.Key{Name: "right"})
	assert.Equal(t, 1, e.Cursor())
	e.HandleKey(host.Key{Name: "left"})
	assert.Equal(t, 0, e.Cursor())
}

func TestFrameRendersWithoutPanicking(t *testing.T) {
	e, _ := newTestEditor(t, "# Hello\n\nworld\n")
	f := e.Frame()
	assert.NotEmpty(t, f.Lines)
}
