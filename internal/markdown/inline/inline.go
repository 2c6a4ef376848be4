// Package inline implements the second parser pass: it walks a single
// block's prose bytes and emits typed ast.Run values for emphasis,
// strong, strikethrough, mark, inline code, links, inline math, footnote
// references, autolinks, HTML entities, emoji shortcodes, and backslash
// escapes.
//
// The scan is byte-driven through a 256-entry jump table keyed by each
// byte's special-character class, the same dispatch shape blackfriday
// uses for its span-level callbacks, generalized here from "invoke a
// render callback" to "append a typed run and advance the cursor".
package inline

import (
	"github.com/andrewmd5/scribe/internal/markdown/ast"
)

// delimHandler classifies and may produce a run rooted at byte pos,
// returning the run and the number of bytes consumed, or ok=false if
// this position does not actually start the construct it guards.
type delimHandler func(p *parser, pos int) (ast.Run, int, bool)

var dispatch [256]delimHandler

func init() {
	dispatch['*'] = scanEmphasisRun
	dispatch['_'] = scanEmphasisRun
	dispatch['~'] = scanStrikeRun
	dispatch['='] = scanMarkRun
	dispatch['`'] = scanCodeSpan
	dispatch['['] = scanLinkOrFootnoteRef
	dispatch['$'] = scanInlineMath
	dispatch['\\'] = scanEscape
	dispatch['&'] = scanEntity
	dispatch[':'] = scanEmojiShortcode
	dispatch['h'] = scanAutolink
	dispatch['H'] = scanAutolink
	dispatch['f'] = scanAutolink
	dispatch['F'] = scanAutolink
	dispatch['m'] = scanAutolink
	dispatch['M'] = scanAutolink
}

type parser struct {
	data  []byte // full document bytes; spans are absolute offsets
	start int
	end   int
	runs  []ast.Run
}

// Parse scans data[start:end] and returns its inline runs in document
// order. Delimiters that find no partner stay Delim runs with PairIndex
// -1 (see pairDelimiters).
func Parse(data []byte, start, end int) []ast.Run {
	p := &parser{data: data, start: start, end: end}
	p.scan()
	pairDelimiters(p.runs)
	return p.runs
}

func (p *parser) scan() {
	pos := p.start
	textStart := pos
	for pos < p.end {
		c := p.data[pos]
		h := dispatch[c]
		if h == nil {
			pos++
			continue
		}
		run, n, ok := h(p, pos)
		if !ok {
			pos++
			continue
		}
		if pos > textStart {
			p.emitText(textStart, pos)
		}
		p.runs = append(p.runs, run)
		pos += n
		textStart = pos
	}
	if textStart < p.end {
		p.emitText(textStart, p.end)
	}
}

func (p *parser) emitText(start, end int) {
	p.runs = append(p.runs, ast.Run{Span: ast.Span{Start: start, End: end}, Type: ast.Text})
}

func isWordBoundary(data []byte, pos int) bool {
	if pos < 0 || pos >= len(data) {
		return true
	}
	c := data[pos]
	return c == ' ' || c == '\t' || c == '\n' || isPunct(c)
}

func isPunct(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return false
	default:
		return true
	}
}

// runLen counts a contiguous run of byte ch starting at pos.
func runLen(data []byte, pos int, ch byte) int {
	n := 0
	for pos+n < len(data) && data[pos+n] == ch {
		n++
	}
	return n
}

// scanEmphasisRun classifies a run of '*'/'_' delimiter characters,
// consuming two of them as a strong delimiter when the run is at least
// two long and one otherwise, so a longer run yields several delimiter
// runs. Pairing across runs happens afterward in pairDelimiters;
// here we only classify this occurrence as an open or close candidate
// using the simple left/right-flanking heuristic (CommonMark's fuller
// flanking rule is deliberately not implemented, per the parser's
// reduced-dialect scope).
func scanEmphasisRun(p *parser, pos int) (ast.Run, int, bool) {
	ch := p.data[pos]
	n := runLen(p.data, pos, ch)
	if n > 3 {
		n = 3 // "****" etc degrade to the longest meaningful pairing, 3
	}
	kind := ast.DelimStar1
	style := ast.StyleItalic
	switch {
	case n >= 2 && ch == '*':
		kind, style = ast.DelimStar2, ast.StyleBold
	case n >= 2 && ch == '_':
		kind, style = ast.DelimUnder2, ast.StyleBold
	case ch == '_':
		kind = ast.DelimUnder1
	}
	consumed := 1
	if n >= 2 {
		consumed = 2
	}
	openCandidate := pos+consumed < p.end && !isWordBoundary(p.data, pos+consumed)
	run := ast.Run{
		Span: ast.Span{Start: pos, End: pos + consumed},
		Type: ast.Delim,
		Delim: ast.DelimPayload{
			Kind:      kind,
			Open:      openCandidate,
			Style:     style,
			PairIndex: -1,
		},
	}
	return run, consumed, true
}

func scanStrikeRun(p *parser, pos int) (ast.Run, int, bool) {
	if runLen(p.data, pos, '~') < 2 {
		return ast.Run{}, 0, false
	}
	openCandidate := pos+2 < p.end && !isWordBoundary(p.data, pos+2)
	run := ast.Run{
		Span:  ast.Span{Start: pos, End: pos + 2},
		Type:  ast.Delim,
		Delim: ast.DelimPayload{Kind: ast.DelimStrike, Open: openCandidate, Style: ast.StyleStrike, PairIndex: -1},
	}
	return run, 2, true
}

func scanMarkRun(p *parser, pos int) (ast.Run, int, bool) {
	if pos+1 >= p.end || p.data[pos+1] != '=' {
		return ast.Run{}, 0, false
	}
	openCandidate := pos+2 < p.end && !isWordBoundary(p.data, pos+2)
	run := ast.Run{
		Span:  ast.Span{Start: pos, End: pos + 2},
		Type:  ast.Delim,
		Delim: ast.DelimPayload{Kind: ast.DelimMark, Open: openCandidate, Style: ast.StyleMark, PairIndex: -1},
	}
	return run, 2, true
}

// scanCodeSpan matches a backtick run and its matching close of the same
// length, consuming the whole span (including delimiters) as one Delim
// run flagged StyleCode, since code spans never nest or contain further
// inline constructs.
func scanCodeSpan(p *parser, pos int) (ast.Run, int, bool) {
	n := runLen(p.data, pos, '`')
	searchFrom := pos + n
	for i := searchFrom; i+n <= p.end; i++ {
		if p.data[i] == '`' {
			closeLen := runLen(p.data, i, '`')
			if closeLen == n {
				run := ast.Run{
					Span:  ast.Span{Start: pos, End: i + n},
					Type:  ast.Delim,
					Delim: ast.DelimPayload{Kind: ast.DelimCode, Style: ast.StyleCode, PairIndex: -1},
				}
				return run, (i + n) - pos, true
			}
			i += closeLen - 1
		}
	}
	return ast.Run{}, 0, false
}

// scanLinkOrFootnoteRef handles both "[text](url)" and "[^id]" forms; the
// latter is handed off whenever the bracket content starts with '^'.
func scanLinkOrFootnoteRef(p *parser, pos int) (ast.Run, int, bool) {
	if pos+1 < p.end && p.data[pos+1] == '^' {
		return scanFootnoteRef(p, pos)
	}
	close := indexByteFrom(p.data, pos+1, p.end, ']')
	if close < 0 || close+1 >= p.end || p.data[close+1] != '(' {
		return ast.Run{}, 0, false
	}
	parenClose := indexByteFrom(p.data, close+2, p.end, ')')
	if parenClose < 0 {
		return ast.Run{}, 0, false
	}
	run := ast.Run{
		Span: ast.Span{Start: pos, End: parenClose + 1},
		Type: ast.Link,
		Link: ast.LinkPayload{
			Text: ast.Span{Start: pos + 1, End: close},
			URL:  ast.Span{Start: close + 2, End: parenClose},
		},
	}
	return run, (parenClose + 1) - pos, true
}

func scanFootnoteRef(p *parser, pos int) (ast.Run, int, bool) {
	close := indexByteFrom(p.data, pos+2, p.end, ']')
	if close < 0 {
		return ast.Run{}, 0, false
	}
	run := ast.Run{
		Span:        ast.Span{Start: pos, End: close + 1},
		Type:        ast.FootnoteRef,
		FootnoteRef: ast.FootnoteRefPayload{ID: ast.Span{Start: pos + 2, End: close}},
	}
	return run, (close + 1) - pos, true
}

// scanInlineMath matches "$...$" (single-line, no nested "$").
func scanInlineMath(p *parser, pos int) (ast.Run, int, bool) {
	if pos+1 >= p.end || p.data[pos+1] == '$' {
		return ast.Run{}, 0, false // "$$" is handled as block math upstream
	}
	close := indexByteFrom(p.data, pos+1, p.end, '$')
	if close < 0 {
		return ast.Run{}, 0, false
	}
	run := ast.Run{
		Span:       ast.Span{Start: pos, End: close + 1},
		Type:       ast.InlineMath,
		InlineMath: ast.InlineMathPayload{Content: ast.Span{Start: pos + 1, End: close}},
	}
	return run, (close + 1) - pos, true
}

func scanEscape(p *parser, pos int) (ast.Run, int, bool) {
	if pos+1 >= p.end {
		return ast.Run{}, 0, false
	}
	c := p.data[pos+1]
	if !isEscapable(c) {
		return ast.Run{}, 0, false
	}
	run := ast.Run{
		Span:   ast.Span{Start: pos, End: pos + 2},
		Type:   ast.Escape,
		Escape: ast.EscapePayload{Char: c, HardBreak: c == '\n'},
	}
	return run, 2, true
}

func isEscapable(c byte) bool {
	switch c {
	case '\\', '`', '*', '_', '{', '}', '[', ']', '(', ')', '#', '+', '-', '.', '!', '>', '~', '=', '$', '\n':
		return true
	default:
		return false
	}
}

func scanEntity(p *parser, pos int) (ast.Run, int, bool) {
	close := indexByteFrom(p.data, pos+1, p.end, ';')
	if close < 0 || close-pos > 12 || close == pos+1 {
		return ast.Run{}, 0, false
	}
	name := string(p.data[pos+1 : close])
	decoded, ok := htmlEntities[name]
	if !ok {
		return ast.Run{}, 0, false
	}
	run := ast.Run{
		Span:   ast.Span{Start: pos, End: close + 1},
		Type:   ast.Entity,
		Entity: ast.EntityPayload{Decoded: decoded},
	}
	return run, (close + 1) - pos, true
}

func scanEmojiShortcode(p *parser, pos int) (ast.Run, int, bool) {
	close := indexByteFrom(p.data, pos+1, p.end, ':')
	if close < 0 || close == pos+1 {
		return ast.Run{}, 0, false
	}
	name := string(p.data[pos+1 : close])
	replacement, ok := emojiShortcodes[name]
	if !ok {
		return ast.Run{}, 0, false
	}
	run := ast.Run{
		Span:  ast.Span{Start: pos, End: close + 1},
		Type:  ast.Emoji,
		Emoji: ast.EmojiPayload{Replacement: replacement},
	}
	return run, (close + 1) - pos, true
}

var autolinkPrefixes = []string{"http://", "https://", "ftp://", "mailto:"}

func scanAutolink(p *parser, pos int) (ast.Run, int, bool) {
	rest := p.data[pos:p.end]
	for _, prefix := range autolinkPrefixes {
		if hasPrefixFold(rest, prefix) {
			end := pos + len(prefix)
			for end < p.end && !isWordBoundary(p.data, end) {
				end++
			}
			run := ast.Run{
				Span:     ast.Span{Start: pos, End: end},
				Type:     ast.Autolink,
				Autolink: ast.AutolinkPayload{URL: ast.Span{Start: pos, End: end}},
			}
			return run, end - pos, true
		}
	}
	return ast.Run{}, 0, false
}

func hasPrefixFold(data []byte, prefix string) bool {
	if len(data) < len(prefix) {
		return false
	}
	for i := 0; i < len(prefix); i++ {
		a, b := data[i], prefix[i]
		if a >= 'A' && a <= 'Z' {
			a += 'a' - 'A'
		}
		if a != b {
			return false
		}
	}
	return true
}

func indexByteFrom(data []byte, from, end int, ch byte) int {
	for i := from; i < end; i++ {
		if data[i] == ch {
			return i
		}
	}
	return -1
}

// pairDelimiters walks the run slice pairing each opening Delim with the
// nearest following close of the same Kind, in the stack-based style
// blackfriday's inlineEmphasis scan uses to find a matching close marker.
// Delimiters that never find a partner keep PairIndex -1 and render as
// literal text (their Span still covers the original marker bytes).
func pairDelimiters(runs []ast.Run) {
	var stack []int
	for i := range runs {
		if runs[i].Type != ast.Delim || runs[i].Delim.Kind == ast.DelimCode {
			continue
		}
		if runs[i].Delim.Open {
			stack = append(stack, i)
			continue
		}
		for j := len(stack) - 1; j >= 0; j-- {
			openIdx := stack[j]
			if runs[openIdx].Delim.Kind == runs[i].Delim.Kind {
				runs[openIdx].Delim.PairIndex = i
				runs[i].Delim.PairIndex = openIdx
				stack = append(stack[:j], stack[j+1:]...)
				break
			}
		}
	}
}
