// Package style maps the renderer's cell-level attribute bits to
// phoenix/style styles, and holds the small set of named themes a
// document can render with. It follows the teacher's own style package
// for color and text-attribute handling rather than charmbracelet's
// lipgloss, which phoenix/style's doc comment notes it exists specifically
// to avoid (lipgloss #562 mis-measures emoji/CJK width); the host's ANSI
// writer layer is the only place raw escape codes are assembled, for
// sequences neither library covers -- screen and cursor control, mouse
// and paste modes, synchronized output, Kitty graphics. OSC 52 clipboard
// writes go through phoenix/clipboard, and no OSC 8 links are emitted.
package style

import (
	phxstyle "github.com/phoenix-tui/phoenix/style"

	"github.com/andrewmd5/scribe/internal/render/cellbuf"
)

// Theme names the small palette a document renders with. Headings,
// links, marks, and code spans each resolve through the active theme
// rather than hardcoded colors, so a user who prefers a light terminal
// isn't stuck with colors picked for a dark one. The renderer does not
// apply the Emphasis, Strong, Strike, Quote, Rule, or TableBorder colors;
// emphasis, strong, and strikethrough text get attributes only. Colors are specified as
// ANSI-256 indices, same palette a lipgloss.Color("39")-style literal
// would have picked, just resolved through phxstyle.Color256 so the
// degrade-to-ANSI16 path goes through the teacher's own color adapter.
type Theme struct {
	Name string

	Heading     phxstyle.Color
	Emphasis    phxstyle.Color
	Strong      phxstyle.Color
	Strike      phxstyle.Color
	Mark        phxstyle.Color
	Link        phxstyle.Color
	Code        phxstyle.Color
	CodeBg      phxstyle.Color
	Quote       phxstyle.Color
	Rule        phxstyle.Color
	Dim         phxstyle.Color
	TableBorder phxstyle.Color
}

// Dark is the default theme, tuned for a dark terminal background.
var Dark = Theme{
	Name:        "dark",
	Heading:     phxstyle.Color256(39),
	Emphasis:    phxstyle.Color256(215),
	Strong:      phxstyle.Color256(214),
	Strike:      phxstyle.Color256(244),
	Mark:        phxstyle.Color256(226),
	Link:        phxstyle.Color256(75),
	Code:        phxstyle.Color256(204),
	CodeBg:      phxstyle.Color256(236),
	Quote:       phxstyle.Color256(109),
	Rule:        phxstyle.Color256(240),
	Dim:         phxstyle.Color256(245),
	TableBorder: phxstyle.Color256(240),
}

// Light is tuned for a light terminal background.
var Light = Theme{
	Name:        "light",
	Heading:     phxstyle.Color256(25),
	Emphasis:    phxstyle.Color256(94),
	Strong:      phxstyle.Color256(130),
	Strike:      phxstyle.Color256(247),
	Mark:        phxstyle.Color256(178),
	Link:        phxstyle.Color256(26),
	Code:        phxstyle.Color256(125),
	CodeBg:      phxstyle.Color256(254),
	Quote:       phxstyle.Color256(60),
	Rule:        phxstyle.Color256(250),
	Dim:         phxstyle.Color256(243),
	TableBorder: phxstyle.Color256(250),
}

// Themes indexes the built-in themes by name.
var Themes = map[string]Theme{
	"dark":  Dark,
	"light": Light,
}

// Lookup returns the named theme, falling back to Dark if name is unknown.
func Lookup(name string) Theme {
	if t, ok := Themes[name]; ok {
		return t
	}
	return Dark
}

// ToPhoenixStyle converts a cellbuf.Attr to a phxstyle.Style; neither the
// renderer nor the host calls it. phxstyle has no reverse-video or
// faint attribute, so Reverse swaps foreground/background and Dim
// substitutes a flat muted gray foreground -- the closest approximation
// the library's text-attribute set allows.
func ToPhoenixStyle(a cellbuf.Attr) phxstyle.Style {
	s := phxstyle.New()
	fg, hasFg := packedColor(a.Fg)
	bg, hasBg := packedColor(a.Bg)
	if a.Reverse {
		fg, bg = bg, fg
		hasFg, hasBg = hasBg, hasFg
	}
	if a.Dim {
		fg, hasFg = phxstyle.Color256(245), true
	}
	if hasFg {
		s = s.Foreground(fg)
	}
	if hasBg {
		s = s.Background(bg)
	}
	if a.Bold {
		s = s.Bold(true)
	}
	if a.Italic {
		s = s.Italic(true)
	}
	if a.Strike {
		s = s.Strikethrough(true)
	}
	return s
}

// packedColor unpacks a cellbuf.Attr color field back into a
// phxstyle.Color. The high bit marks "no color set"; the next bit marks
// an ANSI-256 index (see Attr256) rather than a packed 0xRRGGBB value.
func packedColor(c uint32) (phxstyle.Color, bool) {
	if c&(1<<31) != 0 {
		return phxstyle.Color{}, false
	}
	if c&(1<<30) != 0 {
		return phxstyle.Color256(uint8(c)), true
	}
	return phxstyle.RGB(uint8(c>>16), uint8(c>>8), uint8(c)), true
}

// Attr256 packs an ANSI-256 palette index into the uint32 representation
// cellbuf.Attr uses for colors whose source is a palette index rather
// than a 24-bit RGB triple.
func Attr256(idx uint8) uint32 {
	return 1<<30 | uint32(idx)
}
