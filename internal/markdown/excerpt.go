package markdown

import (
	"strings"

	gmast "github.com/yuin/goldmark/ast"
)

// FirstParagraphText returns the flattened, trimmed text of the first
// top-level paragraph with non-empty content, or "" when no qualifying
// paragraph exists. Blockquotes, lists, code blocks, and headings are not
// paragraphs and are skipped.
func FirstParagraphText(root gmast.Node, source []byte) string {
	for c := root.FirstChild(); c != nil; c = c.NextSibling() {
		para, ok := c.(*gmast.Paragraph)
		if !ok {
			continue
		}
		if text := strings.TrimSpace(FlattenText(para, source)); text != "" {
			return text
		}
	}
	return ""
}

// PlainTextExcerpt extracts an excerpt from content that has no syntax tree
// (non-Markdown parser output): the first double-newline separated segment
// whose trimmed form is non-empty, or "" if none.
func PlainTextExcerpt(content string) string {
	for _, para := range strings.Split(content, "\n\n") {
		if trimmed := strings.TrimSpace(para); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// ResolveExcerpt applies the excerpt priority: an explicit metadata excerpt
// always wins; extraction from the body tree is attempted only when the
// metadata excerpt is absent.
func ResolveExcerpt(metaExcerpt string, root gmast.Node, source []byte) string {
	if metaExcerpt != "" {
		return metaExcerpt
	}
	return FirstParagraphText(root, source)
}
