package serialization

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const previewLength = 120

// Summary is the short form of a card body shown in listings
type Summary struct {
	Heading string `json:"heading,omitempty" yaml:"heading,omitempty"`
	Preview string `json:"preview,omitempty" yaml:"preview,omitempty"`
}

// Summarize returns the first heading and the first paragraph of a
// markdown body, the paragraph cut to a fixed length.
func Summarize(body string) Summary {
	source := []byte(body)
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))

	var s Summary
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			if s.Heading == "" {
				s.Heading = blockText(node, source)
			}
			return ast.WalkSkipChildren, nil
		case *ast.Paragraph:
			if s.Preview == "" {
				s.Preview = truncate(blockText(node, source), previewLength)
			}
			return ast.WalkSkipChildren, nil
		}

		if s.Heading != "" && s.Preview != "" {
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})

	return s
}

// blockText joins the raw lines of a block, collapsing whitespace
func blockText(n ast.Node, source []byte) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(source))
		b.WriteByte(' ')
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}
