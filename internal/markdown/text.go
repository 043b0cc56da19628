package markdown

import (
	"strings"

	gmast "github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
)

// FlattenText returns the plain text of a node's inline children with all
// formatting stripped: emphasis and strong wrappers removed but inner text
// kept, inline code verbatim, links and images reduced to their visible or
// alt text, unsupported nodes reduced to nothing. Nested formatting is
// flattened to arbitrary depth; concatenation follows node order with no
// separators beyond what the source text nodes already contain.
func FlattenText(n gmast.Node, source []byte) string {
	var sb strings.Builder
	flattenInto(&sb, n, source)
	return sb.String()
}

func flattenInto(sb *strings.Builder, n gmast.Node, source []byte) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch node := c.(type) {
		case *gmast.Text:
			sb.Write(node.Segment.Value(source))
			if node.SoftLineBreak() || node.HardLineBreak() {
				sb.WriteByte('\n')
			}
		case *gmast.String:
			sb.Write(node.Value)
		case *gmast.CodeSpan:
			flattenInto(sb, node, source)
		case *gmast.Emphasis:
			flattenInto(sb, node, source)
		case *gmast.Link:
			flattenInto(sb, node, source)
		case *gmast.Image:
			// Image children carry the alt text.
			flattenInto(sb, node, source)
		case *gmast.AutoLink:
			sb.Write(node.Label(source))
		case *extast.Strikethrough:
			flattenInto(sb, node, source)
		default:
			// Raw HTML and other embedded-language nodes contribute nothing.
		}
	}
}
