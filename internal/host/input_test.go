package host

import (
	"testing"

	phxmouse "github.com/phoenix-tui/phoenix/mouse"
	"github.com/stretchr/testify/assert"
)

func TestDecodeByteKeyEnter(t *testing.T) {
	assert.Equal(t, "enter", decodeByteKey('\r').Name)
}

func TestDecodeByteKeyBackspace(t *testing.T) {
	assert.Equal(t, "backspace", decodeByteKey(0x7f).Name)
}

func TestDecodeByteKeyPlainRune(t *testing.T) {
	k := decodeByteKey('a')
	assert.Equal(t, 'a', k.Rune)
	assert.Empty(t, k.Name)
}

func TestDecodeByteKeyCtrl(t *testing.T) {
	k := decodeByteKey(0x01)
	assert.True(t, k.Ctrl)
	assert.Equal(t, 'a', k.Rune)
}

func TestDecodeCSIKeyArrows(t *testing.T) {
	assert.Equal(t, "up", decodeCSIKey([]byte("A")).Name)
	assert.Equal(t, "down", decodeCSIKey([]byte("B")).Name)
	assert.Equal(t, "left", decodeCSIKey([]byte("D")).Name)
	assert.Equal(t, "right", decodeCSIKey([]byte("C")).Name)
}

func TestDecodeCSIKeyDelete(t *testing.T) {
	assert.Equal(t, "delete", decodeCSIKey([]byte("3~")).Name)
}

func TestDecodeSGRMousePress(t *testing.T) {
	ev, ok := decodeSGRMouse(phxmouse.New(), "<0;10;5M")
	assert.True(t, ok)
	assert.Equal(t, MousePress, ev.Type)
	assert.Equal(t, 9, ev.X)
	assert.Equal(t, 4, ev.Y)
}

func TestDecodeSGRMouseRelease(t *testing.T) {
	ev, ok := decodeSGRMouse(phxmouse.New(), "<0;10;5m")
	assert.True(t, ok)
	assert.Equal(t, MouseRelease, ev.Type)
}

func TestDecodeSGRMouseWheelUp(t *testing.T) {
	ev, ok := decodeSGRMouse(phxmouse.New(), "<64;1;1M")
	assert.True(t, ok)
	assert.Equal(t, MouseWheelUp, ev.Type)
}

func TestDecodeSGRMouseWheelDown(t *testing.T) {
	ev, ok := decodeSGRMouse(phxmouse.New(), "<65;1;1M")
	assert.True(t, ok)
	assert.Equal(t, MouseWheelDown, ev.Type)
}

func TestDecodeSGRMouseMalformedRejected(t *testing.T) {
	_, ok := decodeSGRMouse(phxmouse.New(), "<not;a;mouse;eventM")
	assert.False(t, ok)
}

func TestBase64EncodeRoundTripShape(t *testing.T) {
	out := base64Encode([]byte("hello"))
	assert.NotEmpty(t, out)
}
