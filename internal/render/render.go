// Package render turns a cached block/run stream, a cursor position, and
// a scroll offset into styled draw calls for the host to paint. It walks
// blocks in document order, dispatching each block type to its own
// layout routine (the same per-type-callback shape the teacher's
// renderer uses for its draw primitives, generalized from "paint a UI
// widget" to "paint a markdown block").
package render

import (
	"strings"

	phxstyle "github.com/phoenix-tui/phoenix/style"

	"github.com/andrewmd5/scribe/internal/markdown/ast"
	"github.com/andrewmd5/scribe/internal/markdown/cache"
	"github.com/andrewmd5/scribe/internal/render/layout"
	"github.com/andrewmd5/scribe/internal/render/style"
	"github.com/andrewmd5/scribe/internal/render/table"
	"github.com/andrewmd5/scribe/internal/unicode"
	"github.com/andrewmd5/scribe/internal/wrap"
)

// Span describes one piece of already-styled text within a drawn line.
type Span struct {
	Text  string
	Style phxstyle.Style
}

// Line is one fully composed output row, ready to be painted starting at
// column 0 of some viewport row.
type Line struct {
	Spans []Span
}

// Plain returns the line's unstyled text, used by tests and by the
// host's width accounting.
func (l Line) Plain() string {
	var b strings.Builder
	for _, s := range l.Spans {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Frame is a fully rendered viewport: a window of Lines starting at
// scroll row ScrollRow, plus the cursor's on-screen position if visible.
type Frame struct {
	Lines       []Line
	CursorRow   int // -1 if the cursor isn't in view
	CursorCol   int
}

// Options controls a render pass.
type Options struct {
	Width      int
	Height     int
	ScrollRow  int
	CursorByte int // absolute byte offset of the cursor; -1 if none (e.g. read-only preview)
	Theme      style.Theme
}

// Render walks c's blocks and produces the Height lines starting at
// ScrollRow. Blocks (or inline runs) spanning the cursor's byte offset
// render in "edit view": their raw markdown source, dimmed, instead of
// the styled visual form -- this is the one place cursor position
// changes rendering output, by design (see spec's inline-style reveal
// rule).
func Render(data []byte, c *cache.Cache, opts Options) Frame {
	frame := Frame{CursorRow: -1, CursorCol: -1}
	blocks := c.Blocks()
	if opts.Height <= 0 || len(blocks) == 0 {
		return frame
	}

	startIdx := c.BlockAtVRow(opts.ScrollRow)
	if startIdx < 0 {
		return frame
	}

	row := blocks[startIdx].VRowStart
	for bi := startIdx; bi < len(blocks) && len(frame.Lines) < opts.Height; bi++ {
		b := &blocks[bi]
		lines := renderBlock(data, c, b, opts)
		for li, ln := range lines {
			vrow := row + li
			if vrow < opts.ScrollRow {
				continue
			}
			frame.Lines = append(frame.Lines, ln)
			if opts.CursorByte >= b.Span.Start && opts.CursorByte <= b.Span.End {
				frame.CursorRow = len(frame.Lines) - 1
			}
			if len(frame.Lines) >= opts.Height {
				break
			}
		}
		row += b.VRowCount
	}
	return frame
}

func renderBlock(data []byte, c *cache.Cache, b *ast.Block, opts Options) []Line {
	switch b.Type {
	case ast.HR:
		return []Line{renderHR(opts)}
	case ast.Header:
		return renderHeader(data, c, b, opts)
	case ast.Code:
		return renderCode(data, b, opts)
	case ast.Math:
		return renderMath(b, opts)
	case ast.Table:
		return renderTable(data, b, opts)
	case ast.Image:
		return renderImage(data, b, opts)
	case ast.Blockquote:
		return renderBlockquote(data, c, b, opts)
	case ast.ListItem:
		return renderListItem(data, c, b, opts)
	case ast.FootnoteDef:
		return renderFootnoteDef(data, c, b, opts)
	default:
		return renderParagraph(data, c, b, opts)
	}
}

func renderHR(opts Options) Line {
	w := layout.RuleWidth(opts.Width)
	s := phxstyle.New().Foreground(opts.Theme.Rule)
	return Line{Spans: []Span{{Text: strings.Repeat("─", w), Style: s}}}
}

func renderHeader(data []byte, c *cache.Cache, b *ast.Block, opts Options) []Line {
	text := renderProse(data, c, b, opts, headerStyle(opts.Theme, b.Header.Level))
	centered := make([]Line, len(text))
	for i, ln := range text {
		pad := layout.CenterPad(unicode.StringWidth(ln.Plain()), opts.Width)
		centered[i] = prependPad(ln, pad)
	}
	blanks := layout.HeadingBlankLines(b.Header.Level)
	var out []Line
	for i := 0; i < blanks; i++ {
		out = append(out, Line{})
	}
	out = append(out, centered...)
	return out
}

func headerStyle(th style.Theme, level int) phxstyle.Style {
	s := phxstyle.New().Foreground(th.Heading).Bold(true)
	if level <= 2 {
		s = s.Underline(true)
	}
	return s
}

func renderCode(data []byte, b *ast.Block, opts Options) []Line {
	content := data[b.Code.Content.Start:b.Code.Content.End]
	rawLines := strings.Split(string(content), "\n")
	out := make([]Line, 0, len(rawLines))
	bg := phxstyle.New().Background(phxstyle.Color256(236))
	for _, l := range rawLines {
		out = append(out, Line{Spans: []Span{{Text: "  " + l, Style: bg}}})
	}
	return out
}

func renderMath(b *ast.Block, opts Options) []Line {
	if b.Math.Sketch == nil {
		return []Line{{Spans: []Span{{Text: "[math]"}}}}
	}
	out := make([]Line, 0, b.Math.Sketch.Height())
	for _, row := range b.Math.Sketch.Rows {
		var sb strings.Builder
		for _, cell := range row {
			sb.WriteRune(cell.Rune)
		}
		out = append(out, Line{Spans: []Span{{Text: sb.String()}}})
	}
	return out
}

func renderTable(data []byte, b *ast.Block, opts Options) []Line {
	lay := table.Measure(data, b, opts.Width)
	var out []Line
	out = append(out, Line{Spans: []Span{{Text: table.TopBorder(lay.ColWidths)}}})
	out = append(out, Line{Spans: []Span{{Text: table.Row(data, b.Table.Cells[0], lay.ColWidths), Style: phxstyle.New().Bold(true)}}})
	out = append(out, Line{Spans: []Span{{Text: table.MidBorder(lay.ColWidths)}}})
	for i := 1; i < len(b.Table.Cells); i++ {
		out = append(out, Line{Spans: []Span{{Text: table.Row(data, b.Table.Cells[i], lay.ColWidths)}}})
	}
	out = append(out, Line{Spans: []Span{{Text: table.BottomBorder(lay.ColWidths)}}})
	return out
}

func renderImage(data []byte, b *ast.Block, opts Options) []Line {
	alt := "image"
	if !b.Image.Alt.Empty() {
		alt = string(data[b.Image.Alt.Start:b.Image.Alt.End])
	}
	box := "[ " + alt + " ]"
	pad := layout.CenterPad(unicode.StringWidth(box), opts.Width)
	return []Line{prependPad(Line{Spans: []Span{{Text: box, Style: phxstyle.New().Italic(true)}}}, pad)}
}

func renderBlockquote(data []byte, c *cache.Cache, b *ast.Block, opts Options) []Line {
	inner := opts
	inner.Width = opts.Width - 2
	lines := renderProse(data, c, b, inner, phxstyle.New().Foreground(opts.Theme.Quote).Italic(true))
	marker := phxstyle.Render(phxstyle.New().Foreground(opts.Theme.Quote), "│ ")
	out := make([]Line, len(lines))
	for i, ln := range lines {
		spans := append([]Span{{Text: marker}}, ln.Spans...)
		out[i] = Line{Spans: spans}
	}
	return out
}

func renderListItem(data []byte, c *cache.Cache, b *ast.Block, opts Options) []Line {
	marker := "• "
	if b.List.Ordered {
		marker = itoa(b.List.OrderValue) + ". "
	}
	switch b.List.Task {
	case ast.TaskUnchecked:
		marker = "☐ "
	case ast.TaskChecked:
		marker = "☑ "
	}
	inner := opts
	inner.Width = opts.Width - unicode.StringWidth(marker) - b.List.Indent
	lines := renderProse(data, c, b, inner, phxstyle.New())
	indent := strings.Repeat(" ", b.List.Indent)
	out := make([]Line, len(lines))
	for i, ln := range lines {
		prefix := indent + strings.Repeat(" ", len(marker))
		if i == 0 {
			prefix = indent + marker
		}
		spans := append([]Span{{Text: prefix}}, ln.Spans...)
		out[i] = Line{Spans: spans}
	}
	return out
}

func renderFootnoteDef(data []byte, c *cache.Cache, b *ast.Block, opts Options) []Line {
	id := string(data[b.Footnote.ID.Start:b.Footnote.ID.End])
	lines := renderProse(data, c, b, opts, phxstyle.New().Foreground(opts.Theme.Dim))
	out := make([]Line, len(lines))
	for i, ln := range lines {
		prefix := "    "
		if i == 0 {
			prefix = "[" + id + "]: "
		}
		spans := append([]Span{{Text: prefix}}, ln.Spans...)
		out[i] = Line{Spans: spans}
	}
	return out
}

func renderParagraph(data []byte, c *cache.Cache, b *ast.Block, opts Options) []Line {
	return renderProse(data, c, b, opts, phxstyle.New())
}

// styledByte tags one source byte with the style active at that point,
// after resolving delimiter pairs into an active-style stack. Building
// this flat per-byte annotation once per block (rather than per wrapped
// line) means a bold run that straddles a wrap boundary is styled
// identically on both halves.
type styledByte struct {
	style   phxstyle.Style
	replace string // non-empty for runs whose display text differs from source (entities, emoji, footnote markers)
	skip    bool   // true for delimiter marker bytes that carry no visible glyph once paired
}

// renderProse wraps a block's content to the viewport width and applies
// inline-run styling, dispatching each run through the same table C5
// describes, then reveals raw source for any run the cursor sits inside.
func renderProse(data []byte, c *cache.Cache, b *ast.Block, opts Options, base phxstyle.Style) []Line {
	runs := c.RunsFor(b)
	annotated := annotateRuns(data, runs, b.Span.Start, b.Span.End, opts.CursorByte, base, opts.Theme)
	lines := wrap.Wrap(data, b.Span.Start, b.Span.End, maxInt(opts.Width, 2), wrap.DefaultConfig())
	out := make([]Line, len(lines))
	for i, wl := range lines {
		out[i] = renderAnnotatedRange(data, annotated, wl.Start, wl.End, base)
	}
	return out
}

// annotateRuns resolves delimiter pairs into an active-style stack and
// returns one styledByte entry per absolute byte offset in [start, end).
func annotateRuns(data []byte, runs []ast.Run, start, end, cursor int, base phxstyle.Style, th style.Theme) map[int]styledByte {
	out := make(map[int]styledByte, end-start)
	activeStyle := base
	for i := 0; i < len(runs); i++ {
		r := runs[i]
		cursorInside := cursor >= r.Span.Start && cursor <= r.Span.End
		switch r.Type {
		case ast.Delim:
			if r.Delim.PairIndex < 0 || cursorInside {
				tagRange(out, r.Span.Start, r.Span.End, activeStyle)
				continue
			}
			if r.Delim.Open {
				tagRange(out, r.Span.Start, r.Span.End, activeStyle)
				for p := r.Span.Start; p < r.Span.End; p++ {
					e := out[p]
					e.skip = true
					out[p] = e
				}
				activeStyle = applyDelimStyle(activeStyle, r.Delim, th)
			} else {
				for p := r.Span.Start; p < r.Span.End; p++ {
					e := out[p]
					e.skip = true
					e.style = activeStyle
					out[p] = e
				}
				activeStyle = base
			}
		case ast.Link:
			s := activeStyle.Foreground(th.Link).Underline(true)
			if cursorInside {
				s = base.Foreground(th.Dim)
				tagRange(out, r.Span.Start, r.Span.End, s)
			} else {
				tagRange(out, r.Link.Text.Start, r.Link.Text.End, s)
				hideRange(out, r.Span.Start, r.Link.Text.Start)
				hideRange(out, r.Link.Text.End, r.Span.End)
			}
		case ast.Autolink:
			s := activeStyle.Foreground(th.Link).Underline(true)
			tagRange(out, r.Span.Start, r.Span.End, s)
		case ast.Entity:
			if cursorInside {
				tagRange(out, r.Span.Start, r.Span.End, base.Foreground(th.Dim))
			} else {
				replaceRange(out, r.Span.Start, r.Span.End, r.Entity.Decoded, activeStyle)
			}
		case ast.Emoji:
			if cursorInside {
				tagRange(out, r.Span.Start, r.Span.End, base.Foreground(th.Dim))
			} else {
				replaceRange(out, r.Span.Start, r.Span.End, r.Emoji.Replacement, activeStyle)
			}
		case ast.Escape:
			if cursorInside {
				tagRange(out, r.Span.Start, r.Span.End, base.Foreground(th.Dim))
			} else {
				replaceRange(out, r.Span.Start, r.Span.End, string(r.Escape.Char), activeStyle)
			}
		case ast.FootnoteRef:
			s := base.Foreground(th.Dim)
			if cursorInside {
				tagRange(out, r.Span.Start, r.Span.End, s)
			} else {
				id := string(data[r.FootnoteRef.ID.Start:r.FootnoteRef.ID.End])
				replaceRange(out, r.Span.Start, r.Span.End, "["+id+"]", s)
			}
		case ast.InlineMath:
			if !cursorInside && r.InlineMath.Sketch != nil {
				replaceRange(out, r.Span.Start, r.Span.End, sketchToString(r.InlineMath.Sketch.Rows), activeStyle)
			} else {
				tagRange(out, r.Span.Start, r.Span.End, activeStyle)
			}
		default:
			tagRange(out, r.Span.Start, r.Span.End, activeStyle)
		}
	}
	return out
}

func tagRange(out map[int]styledByte, start, end int, s phxstyle.Style) {
	for p := start; p < end; p++ {
		out[p] = styledByte{style: s}
	}
}

func hideRange(out map[int]styledByte, start, end int) {
	for p := start; p < end; p++ {
		out[p] = styledByte{skip: true}
	}
}

func replaceRange(out map[int]styledByte, start, end int, replacement string, s phxstyle.Style) {
	for p := start; p < end; p++ {
		text := ""
		if p == start {
			text = replacement
		}
		out[p] = styledByte{style: s, replace: text, skip: p != start}
	}
}

func applyDelimStyle(s phxstyle.Style, d ast.DelimPayload, th style.Theme) phxstyle.Style {
	if d.Style&ast.StyleItalic != 0 {
		s = s.Italic(true)
	}
	if d.Style&ast.StyleBold != 0 {
		s = s.Bold(true)
	}
	if d.Style&ast.StyleStrike != 0 {
		s = s.Strikethrough(true)
	}
	if d.Style&ast.StyleMark != 0 {
		s = s.Background(th.Mark).Foreground(phxstyle.Black)
	}
	if d.Style&ast.StyleCode != 0 {
		s = s.Foreground(th.Code).Background(th.CodeBg)
	}
	return s
}

// renderAnnotatedRange flattens the per-byte style map over [start, end)
// into coalesced spans, skipping bytes marked skip (consumed delimiter
// markers) and substituting any replacement text.
func renderAnnotatedRange(data []byte, annotated map[int]styledByte, start, end int, base phxstyle.Style) Line {
	var spans []Span
	var curText strings.Builder
	curStyle := base
	flush := func() {
		if curText.Len() > 0 {
			spans = append(spans, Span{Text: curText.String(), Style: curStyle})
			curText.Reset()
		}
	}
	for p := start; p < end; p++ {
		entry, ok := annotated[p]
		if !ok {
			entry = styledByte{style: base}
		}
		if entry.skip && entry.replace == "" {
			continue
		}
		text := entry.replace
		if text == "" && !entry.skip {
			text = string(data[p])
		}
		if text == "" {
			continue
		}
		if !stylesEqual(entry.style, curStyle) {
			flush()
			curStyle = entry.style
		}
		curText.WriteString(text)
	}
	flush()
	return Line{Spans: spans}
}

func sketchToString(rows [][]ast.Cell) string {
	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		for _, c := range row {
			b.WriteRune(c.Rune)
		}
	}
	return b.String()
}

func prependPad(l Line, pad int) Line {
	if pad <= 0 {
		return l
	}
	return Line{Spans: append([]Span{{Text: strings.Repeat(" ", pad)}}, l.Spans...)}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// stylesEqual compares two phxstyle.Style values field-by-field through
// their exported getters. phxstyle.Style embeds an internal option map
// that isn't itself comparable with ==, so direct equality isn't an
// option here.
func stylesEqual(a, b phxstyle.Style) bool {
	aFg, aHasFg := a.GetForeground()
	bFg, bHasFg := b.GetForeground()
	aBg, aHasBg := a.GetBackground()
	bBg, bHasBg := b.GetBackground()
	return aHasFg == bHasFg && aFg == bFg &&
		aHasBg == bHasBg && aBg == bBg &&
		a.GetBold() == b.GetBold() &&
		a.GetItalic() == b.GetItalic() &&
		a.GetStrikethrough() == b.GetStrikethrough() &&
		a.GetUnderline() == b.GetUnderline()
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
