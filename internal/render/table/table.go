// Package table computes column widths and draws box-drawing borders
// for markdown table blocks, generalizing the teacher's table component
// (column width negotiation plus an alignment value object) from an
// interactively-built widget to a read-only layout pass over an already
// parsed ast.Block.
package table

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/andrewmd5/scribe/internal/markdown/ast"
	"github.com/andrewmd5/scribe/internal/unicode"
)

// Layout holds the computed per-column widths for a table block.
type Layout struct {
	ColWidths []int
	Aligns    []ast.Alignment
}

// Measure computes column widths as the max display width of any cell's
// text in that column, clamped so the table never exceeds maxWidth
// (columns shrink proportionally if needed, each keeping at least 3
// columns for "a…" truncation headroom).
func Measure(data []byte, b *ast.Block, maxWidth int) Layout {
	cols := b.Table.Cols
	widths := make([]int, cols)
	for _, row := range b.Table.Cells {
		for c, cell := range row {
			if c >= cols {
				continue
			}
			w := unicode.StringWidth(string(data[cell.Span.Start:cell.Span.End]))
			if w > widths[c] {
				widths[c] = w
			}
		}
	}
	// Borders: "| " + content + " " per column, plus one trailing "|".
	overhead := cols*3 + 1
	total := overhead
	for _, w := range widths {
		total += w
	}
	if total > maxWidth && maxWidth > overhead+cols*3 {
		shrinkTableWidths(widths, maxWidth-overhead)
	}
	return Layout{ColWidths: widths, Aligns: b.Table.Aligns}
}

func shrinkTableWidths(widths []int, budget int) {
	total := 0
	for _, w := range widths {
		total += w
	}
	if total <= 0 {
		return
	}
	remaining := budget
	for i := range widths {
		share := widths[i] * budget / total
		if share < 3 {
			share = 3
		}
		widths[i] = share
		remaining -= share
	}
}

// PadCell pads or truncates text to fit width columns per its alignment.
func PadCell(text string, width int, align ast.Alignment) string {
	w := unicode.StringWidth(text)
	if w > width {
		return truncate(text, width)
	}
	gap := width - w
	switch align {
	case ast.AlignRight:
		return strings.Repeat(" ", gap) + text
	case ast.AlignCenter:
		left := gap / 2
		right := gap - left
		return strings.Repeat(" ", left) + text + strings.Repeat(" ", right)
	default:
		return text + strings.Repeat(" ", gap)
	}
}

func truncate(text string, width int) string {
	if width <= 1 {
		return runewidth.Truncate(text, width, "")
	}
	return runewidth.Truncate(text, width, "…")
}

// TopBorder, MidBorder, and BottomBorder draw the three box-drawing rule
// styles a table needs: above the header, between header and body, and
// beneath the last row.
func TopBorder(widths []int) string    { return border(widths, '┌', '┬', '┐') }
func MidBorder(widths []int) string    { return border(widths, '├', '┼', '┤') }
func BottomBorder(widths []int) string { return border(widths, '└', '┴', '┘') }

func border(widths []int, left, mid, right rune) string {
	var b strings.Builder
	b.WriteRune(left)
	for i, w := range widths {
		b.WriteString(strings.Repeat("─", w+2))
		if i < len(widths)-1 {
			b.WriteRune(mid)
		}
	}
	b.WriteRune(right)
	return b.String()
}

// Row renders one data row with vertical bar separators and single-space
// cell padding.
func Row(data []byte, cells []ast.TableCell, widths []int) string {
	var b strings.Builder
	b.WriteRune('│')
	for i, w := range widths {
		text := ""
		align := ast.AlignDefault
		if i < len(cells) {
			text = string(data[cells[i].Span.Start:cells[i].Span.End])
			align = cells[i].Align
		}
		b.WriteByte(' ')
		b.WriteString(PadCell(text, w, align))
		b.WriteByte(' ')
		b.WriteRune('│')
	}
	return b.String()
}
