// Package toc extracts a table of contents from post Markdown. It parses
// the source with the same auto heading ID option the HTML renderer uses,
// so the anchors it emits always match the rendered headings.
package toc

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Heading is one entry of a post's table of contents.
type Heading struct {
	ID    string
	Text  string
	Level int // 2 or 3
}

var mdParser = goldmark.New(
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
).Parser()

// Extract returns the h2 and h3 headings of the Markdown source in
// document order. Top-level h1 headings are skipped; the post title plays
// that role.
func Extract(source string) []Heading {
	src := []byte(source)
	doc := mdParser.Parse(text.NewReader(src))

	var headings []Heading
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok || h.Level < 2 || h.Level > 3 {
			return ast.WalkContinue, nil
		}

		id := ""
		if v, ok := h.AttributeString("id"); ok {
			if b, ok := v.([]byte); ok {
				id = string(b)
			}
		}

		var sb strings.Builder
		lines := h.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			sb.Write(seg.Value(src))
		}

		headings = append(headings, Heading{
			ID:    id,
			Text:  strings.TrimSpace(sb.String()),
			Level: h.Level,
		})
		return ast.WalkContinue, nil
	})
	return headings
}
