// Package layout computes the centering and scaling math the renderer
// needs for headings and rules, generalizing the teacher's box
// measurement service (content width + padding + border + margin,
// unicode-aware) down to the narrower "how many columns to indent this
// already-wrapped line to center it" question the markdown renderer
// actually has.
package layout

import "github.com/andrewmd5/scribe/internal/unicode"

// CenterPad returns the number of blank columns to place before content
// of the given display width so it's centered within totalWidth. Returns
// 0 if content is already as wide as or wider than totalWidth.
func CenterPad(contentWidth, totalWidth int) int {
	if contentWidth >= totalWidth {
		return 0
	}
	return (totalWidth - contentWidth) / 2
}

// CenterString returns the column offset to center s (measured via
// internal/unicode's display-width rules) within totalWidth.
func CenterString(s string, totalWidth int) int {
	return CenterPad(unicode.StringWidth(s), totalWidth)
}

// HeadingScale maps a heading level (1-6) to a vertical/visual scale
// factor used to pick how many blank lines precede it; level 1 is the
// most prominent.
func HeadingScale(level int) int {
	switch {
	case level <= 1:
		return 3
	case level == 2:
		return 2
	default:
		return 1
	}
}

// HeadingBlankLines returns how many blank output lines precede a
// heading of the given level: more prominent headings get more
// breathing room above.
func HeadingBlankLines(level int) int {
	switch HeadingScale(level) {
	case 3:
		return 2
	case 2:
		return 1
	default:
		return 0
	}
}

// RuleWidth returns the column span of a horizontal rule given the
// viewport width, capped for readability on very wide terminals.
func RuleWidth(totalWidth int) int {
	if totalWidth > 100 {
		return 100
	}
	if totalWidth < 3 {
		return totalWidth
	}
	return totalWidth
}
