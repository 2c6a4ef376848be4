package block

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrewmd5/scribe/internal/markdown/ast"
)

func TestParseHeader(t *testing.T) {
	blocks := Parse([]byte("# Title\n"), DefaultConfig())
	if assert.Len(t, blocks, 1) {
		assert.Equal(t, ast.Header, blocks[0].Type)
		assert.Equal(t, 1, blocks[0].Header.Level)
	}
}

func TestParseParagraphStopsAtHeader(t *testing.T) {
	blocks := Parse([]byte("hello\nworld\n\n# Next\n"), DefaultConfig())
	if assert.Len(t, blocks, 2) {
		assert.Equal(t, ast.Paragraph, blocks[0].Type)
		assert.Equal(t, ast.Header, blocks[1].Type)
		assert.Equal(t, 1, blocks[1].LeadingBlankLines)
	}
}

func TestParseHR(t *testing.T) {
	blocks := Parse([]byte("---\n"), DefaultConfig())
	if assert.Len(t, blocks, 1) {
		assert.Equal(t, ast.HR, blocks[0].Type)
	}
}

func TestParseFencedCode(t *testing.T) {
	src := "```go\nfmt.Println(1)\n```\n"
	blocks := Parse([]byte(src), DefaultConfig())
	if assert.Len(t, blocks, 1) {
		assert.Equal(t, ast.Code, blocks[0].Type)
		assert.Equal(t, byte('`'), blocks[0].Code.FenceCh)
		lang := src[blocks[0].Code.Language.Start:blocks[0].Code.Language.End]
		assert.Equal(t, "go", lang)
	}
}

func TestParseMathBlock(t *testing.T) {
	src := "$$\nx^2\n$$\n"
	blocks := Parse([]byte(src), DefaultConfig())
	if assert.Len(t, blocks, 1) {
		assert.Equal(t, ast.Math, blocks[0].Type)
	}
}

func TestParseTable(t *testing.T) {
	src := "| a | b |\n| --- | ---: |\n| 1 | 2 |\n"
	blocks := Parse([]byte(src), DefaultConfig())
	if assert.Len(t, blocks, 1) {
		assert.Equal(t, ast.Table, blocks[0].Type)
		assert.Equal(t, 2, blocks[0].Table.Cols)
		assert.Equal(t, 1, blocks[0].Table.Rows)
		assert.Equal(t, ast.AlignRight, blocks[0].Table.Aligns[1])
	}
}

func TestParseBlockquote(t *testing.T) {
	blocks := Parse([]byte("> quoted text\n> more\n"), DefaultConfig())
	if assert.Len(t, blocks, 1) {
		assert.Equal(t, ast.Blockquote, blocks[0].Type)
	}
}

func TestParseOrderedListItem(t *testing.T) {
	blocks := Parse([]byte("2. second item\n"), DefaultConfig())
	if assert.Len(t, blocks, 1) {
		assert.Equal(t, ast.ListItem, blocks[0].Type)
		assert.True(t, blocks[0].List.Ordered)
		assert.Equal(t, 2, blocks[0].List.OrderValue)
	}
}

func TestParseTaskListItem(t *testing.T) {
	blocks := Parse([]byte("- [x] done\n"), DefaultConfig())
	if assert.Len(t, blocks, 1) {
		assert.Equal(t, ast.TaskChecked, blocks[0].List.Task)
	}
}

func TestParseFootnoteDef(t *testing.T) {
	blocks := Parse([]byte("[^1]: a note\n"), DefaultConfig())
	if assert.Len(t, blocks, 1) {
		assert.Equal(t, ast.FootnoteDef, blocks[0].Type)
	}
}

func TestParseImageLine(t *testing.T) {
	src := `![alt text](pic.png "a title")` + "\n"
	blocks := Parse([]byte(src), DefaultConfig())
	if assert.Len(t, blocks, 1) {
		assert.Equal(t, ast.Image, blocks[0].Type)
		assert.Equal(t, "alt text", src[blocks[0].Image.Alt.Start:blocks[0].Image.Alt.End])
		assert.Equal(t, "pic.png", src[blocks[0].Image.Path.Start:blocks[0].Image.Path.End])
	}
}

func TestParseVRowsMonotonic(t *testing.T) {
	src := "# T\n\npara one\n\npara two\n"
	blocks := Parse([]byte(src), DefaultConfig())
	for i := 1; i < len(blocks); i++ {
		assert.GreaterOrEqual(t, blocks[i].VRowStart, blocks[i-1].VRowStart)
	}
}
