// Package block implements the one-pass block-level classifier: it walks
// a document's bytes line by line and emits typed ast.Block values, in the
// style of blackfriday's line-oriented block scanner (detect the
// construct a line starts, then consume lines until that construct ends)
// generalized from a single HTML-emitting pass into a typed-block pass
// that leaves each block's prose unparsed for the inline pass to handle.
package block

import (
	"bytes"

	"github.com/andrewmd5/scribe/internal/markdown/ast"
	"github.com/andrewmd5/scribe/internal/wrap"
)

// Config controls block detection.
type Config struct {
	Width    int // viewport column width, used to pre-compute VRowCount
	WrapCfg  wrap.Config
}

// DefaultConfig returns sensible defaults for an 80-column viewport.
func DefaultConfig() Config {
	return Config{Width: 80, WrapCfg: wrap.DefaultConfig()}
}

// Parse splits data into typed blocks in document order. A block's Span
// does not include the blank lines after it; those are counted as
// LeadingBlankLines on the following block.
func Parse(data []byte, cfg Config) []ast.Block {
	p := &parser{data: data, cfg: cfg}
	p.run()
	return p.blocks
}

type parser struct {
	data   []byte
	cfg    Config
	blocks []ast.Block
	vrow   int
}

func (p *parser) run() {
	pos := 0
	blanks := 0
	blankStart := -1
	n := len(p.data)
	for pos < n {
		lineEnd := p.lineEnd(pos)
		if p.isBlankLine(pos, lineEnd) {
			if blankStart < 0 {
				blankStart = pos
			}
			blanks++
			pos = p.nextLineStart(lineEnd)
			continue
		}

		var b ast.Block
		var consumed int
		switch {
		case p.isHR(pos, lineEnd):
			b, consumed = p.scanHR(pos)
		case p.isHeader(pos, lineEnd):
			b, consumed = p.scanHeader(pos)
		case p.isFence(pos, lineEnd):
			b, consumed = p.scanFence(pos)
		case p.isMathFence(pos, lineEnd):
			b, consumed = p.scanMathBlock(pos)
		case p.isTableStart(pos):
			b, consumed = p.scanTable(pos)
		case p.isImageLine(pos, lineEnd):
			b, consumed = p.scanImage(pos, lineEnd)
		case p.isBlockquote(pos, lineEnd):
			b, consumed = p.scanBlockquote(pos)
		case p.isListItem(pos, lineEnd):
			b, consumed = p.scanListItem(pos)
		case p.isFootnoteDef(pos, lineEnd):
			b, consumed = p.scanFootnoteDef(pos)
		default:
			b, consumed = p.scanParagraph(pos)
		}

		b.LeadingBlankLines = blanks
		b.BlankStart = blankStart
		blanks = 0
		blankStart = -1

		p.assignVRows(&b)
		p.blocks = append(p.blocks, b)
		pos += consumed
	}
}

// assignVRows pre-computes the block's wrapped-row extent using the wrap
// engine, so the cache can later binary-search by virtual row without
// re-wrapping every block on every lookup.
func (p *parser) assignVRows(b *ast.Block) {
	b.VRowStart = p.vrow
	rows := 1
	if b.HasProse() {
		lines := wrap.Wrap(p.data, b.Span.Start, b.Span.End, p.cfg.Width, p.cfg.WrapCfg)
		if len(lines) > 0 {
			rows = len(lines)
		}
	} else if b.Type == ast.Table {
		rows = b.Table.Rows + 1
	} else if b.Type == ast.Code || b.Type == ast.Math {
		rows = bytes.Count(p.data[b.Span.Start:b.Span.End], []byte("\n")) + 1
	}
	b.VRowCount = rows
	p.vrow += rows
}

// lineEnd returns the offset of the newline terminating the line starting
// at pos, or len(data) if this is the final, unterminated line.
func (p *parser) lineEnd(pos int) int {
	idx := bytes.IndexByte(p.data[pos:], '\n')
	if idx < 0 {
		return len(p.data)
	}
	return pos + idx
}

// nextLineStart returns the byte offset just past the newline at lineEnd.
func (p *parser) nextLineStart(lineEnd int) int {
	if lineEnd < len(p.data) && p.data[lineEnd] == '\n' {
		return lineEnd + 1
	}
	return lineEnd
}

func (p *parser) isBlankLine(start, end int) bool {
	for i := start; i < end; i++ {
		switch p.data[i] {
		case ' ', '\t', '\r':
		default:
			return false
		}
	}
	return true
}

func leadingSpaces(line []byte) int {
	n := 0
	for n < len(line) && line[n] == ' ' {
		n++
	}
	return n
}

// isHR matches a line of 3+ identical '*', '-', or '_' characters,
// optionally separated by spaces.
func (p *parser) isHR(start, end int) bool {
	line := bytes.TrimRight(p.data[start:end], " \t\r")
	if leadingSpaces(line) > 3 {
		return false
	}
	line = bytes.TrimLeft(line, " ")
	if len(line) < 3 {
		return false
	}
	var marker byte
	count := 0
	for _, c := range line {
		if c == ' ' {
			continue
		}
		if marker == 0 {
			if c != '*' && c != '-' && c != '_' {
				return false
			}
			marker = c
		}
		if c != marker {
			return false
		}
		count++
	}
	return count >= 3
}

func (p *parser) scanHR(pos int) (ast.Block, int) {
	end := p.lineEnd(pos)
	consumed := p.nextLineStart(end) - pos
	return ast.Block{Span: ast.Span{Start: pos, End: end}, Type: ast.HR}, consumed
}

// isHeader matches 1-6 leading '#' characters followed by a space (or end
// of line), per the spec's relaxed ATX-header rule.
func (p *parser) isHeader(start, end int) bool {
	line := p.data[start:end]
	if leadingSpaces(line) > 3 {
		return false
	}
	line = bytes.TrimLeft(line, " ")
	n := 0
	for n < len(line) && n < 6 && line[n] == '#' {
		n++
	}
	if n == 0 || n > 6 {
		return false
	}
	return n == len(line) || line[n] == ' ' || line[n] == '\t'
}

func (p *parser) scanHeader(pos int) (ast.Block, int) {
	end := p.lineEnd(pos)
	line := p.data[pos:end]
	indent := leadingSpaces(line)
	n := indent
	for n < len(line) && line[n] == '#' {
		n++
	}
	level := n - indent
	contentStart := pos + n
	for contentStart < end && (p.data[contentStart] == ' ' || p.data[contentStart] == '\t') {
		contentStart++
	}
	// Trim optional trailing closing sequence of '#'.
	trimEnd := end
	for trimEnd > contentStart && p.data[trimEnd-1] == '#' {
		trimEnd--
	}
	for trimEnd > contentStart && (p.data[trimEnd-1] == ' ' || p.data[trimEnd-1] == '\t') {
		trimEnd--
	}
	consumed := p.nextLineStart(end) - pos
	return ast.Block{
		Span:   ast.Span{Start: pos, End: trimEnd},
		Type:   ast.Header,
		Header: ast.HeaderPayload{Level: level, ContentStart: contentStart},
	}, consumed
}

// isFence matches a fenced code block opener: 3+ backticks or tildes.
func (p *parser) isFence(start, end int) bool {
	ch, _, ok := fenceMarker(p.data[start:end])
	return ok && ch != '$'
}

func (p *parser) isMathFence(start, end int) bool {
	ch, _, ok := fenceMarker(p.data[start:end])
	return ok && ch == '$'
}

// fenceMarker inspects a line for a fence opener: ``` / ~~~ for code,
// $$ for block math. Returns the marker byte, its run length, and whether
// one was found.
func fenceMarker(line []byte) (byte, int, bool) {
	trimmed := bytes.TrimLeft(line, " ")
	if leadingSpaces(line) > 3 {
		return 0, 0, false
	}
	if len(trimmed) >= 2 && trimmed[0] == '$' && trimmed[1] == '$' {
		return '$', 2, true
	}
	if len(trimmed) >= 3 {
		ch := trimmed[0]
		if ch == '`' || ch == '~' {
			n := 0
			for n < len(trimmed) && trimmed[n] == ch {
				n++
			}
			if n >= 3 {
				return ch, n, true
			}
		}
	}
	return 0, 0, false
}

func (p *parser) scanFence(pos int) (ast.Block, int) {
	end := p.lineEnd(pos)
	line := p.data[pos:end]
	ch, flen, _ := fenceMarker(line)
	indent := leadingSpaces(line)
	lang := bytes.TrimSpace(line[indent+flen:])

	cursor := p.nextLineStart(end)
	contentStart := cursor
	contentEnd := contentStart
	closed := false
	for cursor < len(p.data) {
		lEnd := p.lineEnd(cursor)
		closeLine := bytes.TrimRight(p.data[cursor:lEnd], " \t\r")
		trimmedClose := bytes.TrimLeft(closeLine, " ")
		if leadingSpaces(closeLine) <= 3 && isCloseFence(trimmedClose, ch, flen) {
			contentEnd = cursor
			cursor = p.nextLineStart(lEnd)
			closed = true
			break
		}
		cursor = p.nextLineStart(lEnd)
	}
	if !closed {
		contentEnd = len(p.data)
		cursor = contentEnd
	}
	blockEnd := cursor
	return ast.Block{
		Span: ast.Span{Start: pos, End: blockEnd},
		Type: ast.Code,
		Code: ast.CodePayload{
			Language: ast.Span{Start: pos + indent + flen, End: pos + indent + flen + len(lang)},
			Content:  ast.Span{Start: contentStart, End: contentEnd},
			FenceCh:  ch,
			FenceLen: flen,
		},
	}, blockEnd - pos
}

func isCloseFence(trimmed []byte, ch byte, minLen int) bool {
	if len(trimmed) < minLen {
		return false
	}
	for _, c := range trimmed {
		if c != ch {
			return false
		}
	}
	return true
}

func (p *parser) scanMathBlock(pos int) (ast.Block, int) {
	end := p.lineEnd(pos)
	cursor := p.nextLineStart(end)
	contentStart := cursor
	contentEnd := contentStart
	closed := false
	for cursor < len(p.data) {
		lEnd := p.lineEnd(cursor)
		trimmed := bytes.TrimSpace(p.data[cursor:lEnd])
		if bytes.Equal(trimmed, []byte("$$")) {
			contentEnd = cursor
			cursor = p.nextLineStart(lEnd)
			closed = true
			break
		}
		cursor = p.nextLineStart(lEnd)
	}
	if !closed {
		contentEnd = len(p.data)
		cursor = contentEnd
	}
	return ast.Block{
		Span: ast.Span{Start: pos, End: cursor},
		Type: ast.Math,
		Math: ast.MathPayload{Content: ast.Span{Start: contentStart, End: contentEnd}},
	}, cursor - pos
}

// isTableStart requires the current line to contain a pipe and the next
// line to be a valid delimiter row (e.g. "| --- | :---: |").
func (p *parser) isTableStart(pos int) bool {
	headerEnd := p.lineEnd(pos)
	if !bytes.ContainsRune(p.data[pos:headerEnd], '|') {
		return false
	}
	delimStart := p.nextLineStart(headerEnd)
	if delimStart >= len(p.data) {
		return false
	}
	delimEnd := p.lineEnd(delimStart)
	return isDelimiterRow(p.data[delimStart:delimEnd])
}

func isDelimiterRow(line []byte) bool {
	line = bytes.TrimSpace(line)
	if len(line) == 0 {
		return false
	}
	cells := splitTableRow(line)
	if len(cells) == 0 {
		return false
	}
	for _, c := range cells {
		c = bytes.TrimSpace(c)
		if len(c) == 0 {
			return false
		}
		i := 0
		if c[i] == ':' {
			i++
		}
		dashes := 0
		for i < len(c) && c[i] == '-' {
			i++
			dashes++
		}
		if dashes == 0 {
			return false
		}
		if i < len(c) && c[i] == ':' {
			i++
		}
		if i != len(c) {
			return false
		}
	}
	return true
}

func splitTableRow(line []byte) [][]byte {
	line = bytes.TrimSpace(line)
	line = bytes.TrimPrefix(line, []byte("|"))
	line = bytes.TrimSuffix(line, []byte("|"))
	var cells [][]byte
	start := 0
	for i := 0; i < len(line); i++ {
		if line[i] == '\\' {
			i++
			continue
		}
		if line[i] == '|' {
			cells = append(cells, line[start:i])
			start = i + 1
		}
	}
	cells = append(cells, line[start:])
	return cells
}

func cellAlignment(delim []byte) ast.Alignment {
	delim = bytes.TrimSpace(delim)
	left := len(delim) > 0 && delim[0] == ':'
	right := len(delim) > 0 && delim[len(delim)-1] == ':'
	switch {
	case left && right:
		return ast.AlignCenter
	case right:
		return ast.AlignRight
	case left:
		return ast.AlignLeft
	default:
		return ast.AlignDefault
	}
}

func (p *parser) scanTable(pos int) (ast.Block, int) {
	headerEnd := p.lineEnd(pos)
	delimStart := p.nextLineStart(headerEnd)
	delimEnd := p.lineEnd(delimStart)

	headerCells := splitTableRow(p.data[pos:headerEnd])
	delimCells := splitTableRow(p.data[delimStart:delimEnd])
	cols := len(headerCells)
	aligns := make([]ast.Alignment, cols)
	for i := 0; i < cols && i < len(delimCells); i++ {
		aligns[i] = cellAlignment(delimCells[i])
	}

	rows := [][]ast.TableCell{tableRowCells(p.data, pos, headerCells, aligns)}

	cursor := p.nextLineStart(delimEnd)
	rowStarts := []int{pos}
	for cursor < len(p.data) {
		lEnd := p.lineEnd(cursor)
		line := p.data[cursor:lEnd]
		if p.isBlankLine(cursor, lEnd) || !bytes.ContainsRune(line, '|') {
			break
		}
		cells := splitTableRow(line)
		rows = append(rows, tableRowCells(p.data, cursor, cells, aligns))
		rowStarts = append(rowStarts, cursor)
		cursor = p.nextLineStart(lEnd)
	}
	_ = rowStarts

	return ast.Block{
		Span: ast.Span{Start: pos, End: cursor},
		Type: ast.Table,
		Table: ast.TablePayload{
			Rows:   len(rows) - 1,
			Cols:   cols,
			Aligns: aligns,
			Cells:  rows,
		},
	}, cursor - pos
}

// tableRowCells recomputes each cell's byte span by re-walking the raw
// line from the absolute offset lineStart, since splitTableRow returns
// trimmed cell slices without their offsets.
func tableRowCells(data []byte, lineStart int, rawCells [][]byte, aligns []ast.Alignment) []ast.TableCell {
	line := data[lineStart:]
	trimmed := bytes.TrimLeft(line, " \t")
	offset := lineStart + (len(line) - len(trimmed))
	if len(trimmed) > 0 && trimmed[0] == '|' {
		offset++
	}
	cells := make([]ast.TableCell, len(rawCells))
	cursor := offset
	for i, raw := range rawCells {
		trimmedCell := bytes.TrimSpace(raw)
		start := bytes.Index(data[cursor:], trimmedCell)
		cellStart := cursor
		cellEnd := cursor + len(raw)
		if start >= 0 {
			cellStart = cursor + start
			cellEnd = cellStart + len(trimmedCell)
		}
		align := ast.AlignDefault
		if i < len(aligns) {
			align = aligns[i]
		}
		cells[i] = ast.TableCell{Span: ast.Span{Start: cellStart, End: cellEnd}, Align: align}
		cursor += len(raw) + 1
	}
	return cells
}

// isImageLine matches a line whose entire (trimmed) content is a single
// image construct: ![alt](path "title").
func (p *parser) isImageLine(start, end int) bool {
	line := bytes.TrimSpace(p.data[start:end])
	return len(line) > 2 && line[0] == '!' && line[1] == '[' && bytes.HasSuffix(line, []byte(")"))
}

func (p *parser) scanImage(pos, end int) (ast.Block, int) {
	line := p.data[pos:end]
	trimmed := bytes.TrimSpace(line)
	offset := pos + (len(line) - len(bytes.TrimLeft(line, " \t")))

	altEnd := bytes.IndexByte(trimmed, ']')
	var alt ast.Span
	pathStart := -1
	if altEnd > 1 {
		alt = ast.Span{Start: offset + 2, End: offset + altEnd}
		if altEnd+1 < len(trimmed) && trimmed[altEnd+1] == '(' {
			pathStart = altEnd + 2
		}
	}
	var path, title ast.Span
	width, height := 0, 0
	if pathStart >= 0 {
		closeParen := bytes.LastIndexByte(trimmed, ')')
		inner := trimmed[pathStart:closeParen]
		quoteIdx := bytes.IndexByte(inner, '"')
		pathPart := inner
		if quoteIdx >= 0 {
			pathPart = bytes.TrimSpace(inner[:quoteIdx])
			titlePart := bytes.Trim(inner[quoteIdx:], "\" ")
			title = ast.Span{Start: offset + pathStart + quoteIdx + 1, End: offset + pathStart + quoteIdx + 1 + len(titlePart)}
		}
		path = ast.Span{Start: offset + pathStart, End: offset + pathStart + len(pathPart)}
	}
	consumed := p.nextLineStart(p.lineEnd(pos)) - pos
	return ast.Block{
		Span:  ast.Span{Start: pos, End: end},
		Type:  ast.Image,
		Image: ast.ImagePayload{Alt: alt, Path: path, Title: title, Width: width, Height: height},
	}, consumed
}

// isBlockquote matches a line starting with 0-3 spaces then '>'.
func (p *parser) isBlockquote(start, end int) bool {
	line := p.data[start:end]
	if leadingSpaces(line) > 3 {
		return false
	}
	trimmed := bytes.TrimLeft(line, " ")
	return len(trimmed) > 0 && trimmed[0] == '>'
}

func (p *parser) scanBlockquote(pos int) (ast.Block, int) {
	cursor := pos
	level := 0
	for cursor < len(p.data) {
		lEnd := p.lineEnd(cursor)
		line := p.data[cursor:lEnd]
		if p.isBlankLine(cursor, lEnd) {
			break
		}
		trimmed := bytes.TrimLeft(line, " ")
		if len(trimmed) == 0 || trimmed[0] != '>' {
			if cursor == pos {
				break
			}
			// Lazy continuation line (no leading '>') still belongs to the
			// quote if non-blank and the quote has already started.
		} else {
			lvl := 0
			for lvl < len(trimmed) && trimmed[lvl] == '>' {
				lvl++
			}
			if lvl > level {
				level = lvl
			}
		}
		cursor = p.nextLineStart(lEnd)
	}
	end := cursor
	for end > pos && p.data[end-1] == '\n' {
		end--
	}
	return ast.Block{
		Span:       ast.Span{Start: pos, End: end},
		Type:       ast.Blockquote,
		Blockquote: ast.BlockquotePayload{Level: level},
	}, cursor - pos
}

// isListItem matches "- ", "* ", "+ ", or "N. "/"N) " markers, with up to
// 3 leading spaces.
func (p *parser) isListItem(start, end int) bool {
	line := p.data[start:end]
	indent := leadingSpaces(line)
	if indent > 3 {
		return false
	}
	rest := line[indent:]
	if len(rest) >= 2 && (rest[0] == '-' || rest[0] == '*' || rest[0] == '+') && rest[1] == ' ' {
		return true
	}
	n := 0
	for n < len(rest) && rest[n] >= '0' && rest[n] <= '9' {
		n++
	}
	if n > 0 && n < len(rest) && (rest[n] == '.' || rest[n] == ')') && n+1 < len(rest) && rest[n+1] == ' ' {
		return true
	}
	return false
}

func (p *parser) scanListItem(pos int) (ast.Block, int) {
	end := p.lineEnd(pos)
	line := p.data[pos:end]
	indent := leadingSpaces(line)
	rest := line[indent:]

	ordered := false
	orderValue := 0
	markerLen := 0
	if rest[0] == '-' || rest[0] == '*' || rest[0] == '+' {
		markerLen = 2
	} else {
		n := 0
		for n < len(rest) && rest[n] >= '0' && rest[n] <= '9' {
			orderValue = orderValue*10 + int(rest[n]-'0')
			n++
		}
		ordered = true
		markerLen = n + 2
	}
	contentStart := pos + indent + markerLen
	for contentStart < end && p.data[contentStart] == ' ' {
		contentStart++
	}

	task := ast.TaskNone
	if contentStart+3 <= end {
		box := p.data[contentStart : contentStart+3]
		if box[0] == '[' && box[2] == ']' {
			switch box[1] {
			case ' ':
				task = ast.TaskUnchecked
				contentStart += 4
			case 'x', 'X':
				task = ast.TaskChecked
				contentStart += 4
			}
		}
	}

	cursor := p.nextLineStart(end)
	contentIndent := indent + markerLen
	for cursor < len(p.data) {
		lEnd := p.lineEnd(cursor)
		cline := p.data[cursor:lEnd]
		if p.isBlankLine(cursor, lEnd) {
			break
		}
		if leadingSpaces(cline) < contentIndent {
			break
		}
		cursor = p.nextLineStart(lEnd)
	}
	blockEnd := cursor
	for blockEnd > pos && p.data[blockEnd-1] == '\n' {
		blockEnd--
	}

	return ast.Block{
		Span: ast.Span{Start: pos, End: blockEnd},
		Type: ast.ListItem,
		List: ast.ListPayload{
			Indent:       indent,
			ContentStart: contentStart,
			Ordered:      ordered,
			OrderValue:   orderValue,
			Task:         task,
		},
	}, cursor - pos
}

// isFootnoteDef matches "[^id]: " at line start.
func (p *parser) isFootnoteDef(start, end int) bool {
	line := p.data[start:end]
	if len(line) < 4 || line[0] != '[' || line[1] != '^' {
		return false
	}
	idx := bytes.IndexByte(line, ']')
	return idx > 2 && idx+1 < len(line) && line[idx+1] == ':'
}

func (p *parser) scanFootnoteDef(pos int) (ast.Block, int) {
	end := p.lineEnd(pos)
	line := p.data[pos:end]
	idx := bytes.IndexByte(line, ']')
	id := ast.Span{Start: pos + 2, End: pos + idx}
	contentStart := pos + idx + 2
	for contentStart < end && p.data[contentStart] == ' ' {
		contentStart++
	}

	cursor := p.nextLineStart(end)
	for cursor < len(p.data) {
		lEnd := p.lineEnd(cursor)
		if p.isBlankLine(cursor, lEnd) {
			break
		}
		if leadingSpaces(p.data[cursor:lEnd]) < 2 {
			break
		}
		cursor = p.nextLineStart(lEnd)
	}
	blockEnd := cursor
	for blockEnd > pos && p.data[blockEnd-1] == '\n' {
		blockEnd--
	}

	return ast.Block{
		Span:     ast.Span{Start: pos, End: blockEnd},
		Type:     ast.FootnoteDef,
		Footnote: ast.FootnotePayload{ID: id, ContentStart: contentStart},
	}, cursor - pos
}

// scanParagraph consumes lines until a blank line or a line that starts a
// different block construct (checked loosely: header/fence/HR/blockquote/
// list markers interrupt a paragraph; table lookahead does not since it
// needs two lines of context already handled by isTableStart upstream).
func (p *parser) scanParagraph(pos int) (ast.Block, int) {
	cursor := pos
	for cursor < len(p.data) {
		lEnd := p.lineEnd(cursor)
		if cursor > pos {
			if p.isBlankLine(cursor, lEnd) ||
				p.isHeader(cursor, lEnd) ||
				p.isHR(cursor, lEnd) ||
				p.isFence(cursor, lEnd) ||
				p.isMathFence(cursor, lEnd) ||
				p.isBlockquote(cursor, lEnd) ||
				p.isListItem(cursor, lEnd) ||
				p.isFootnoteDef(cursor, lEnd) {
				break
			}
		}
		cursor = p.nextLineStart(lEnd)
	}
	end := cursor
	for end > pos && p.data[end-1] == '\n' {
		end--
	}
	return ast.Block{Span: ast.Span{Start: pos, End: end}, Type: ast.Paragraph}, cursor - pos
}
