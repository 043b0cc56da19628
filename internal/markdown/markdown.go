// Package markdown provides position-aware extraction and HTML conversion
// for Markdown document bodies.
package markdown

import (
	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// bodyParser is the shared GFM parser used for structural extraction. It is
// stateless, so a single instance serves all documents.
var bodyParser = goldmark.New(goldmark.WithExtensions(extension.GFM))

// ParseBody parses a Markdown body (metadata header already removed) into a
// goldmark AST rooted at the returned node.
func ParseBody(body []byte) (gmast.Node, error) {
	root := bodyParser.Parser().Parse(text.NewReader(body))
	return root, nil
}
