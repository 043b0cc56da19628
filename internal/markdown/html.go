package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// deniedTags is the fixed denylist of element tags that must never reach
// rendered output, regardless of whether the HTML came from our converter or
// an external parser plugin.
var deniedTags = map[string]struct{}{
	"script": {},
	"iframe": {},
	"object": {},
	"embed":  {},
	"form":   {},
}

const (
	unorderedListClass = "content-list"
	orderedListClass   = "numbered-list"
)

// htmlConverter renders GFM Markdown. Raw HTML passes through so the safety
// check below stays authoritative for every content origin.
var htmlConverter = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
)

// UnsafeElementError reports a denylisted element found in rendered output.
type UnsafeElementError struct {
	Tag string
}

func (e *UnsafeElementError) Error() string {
	return fmt.Sprintf("rendered HTML contains unsafe element: <%s>", e.Tag)
}

// ToHTML converts a Markdown body to HTML and applies the semantic
// post-passes. It returns an error, and no output, when the rendered HTML
// contains a denylisted element.
func ToHTML(body []byte) (string, error) {
	var buf bytes.Buffer
	if err := htmlConverter.Convert(body, &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return PostProcess(buf.String())
}

// PostProcess applies the semantic enhancement passes to rendered HTML:
// top-level list elements gain a fixed class, and output with more than one
// heading is wrapped in a single article container. Both passes are
// idempotent, so re-processing already-processed output is a no-op. Input
// containing a denylisted element is rejected with UnsafeElementError.
//
// PostProcess is also the safety gate for plugin-supplied HTML, which is
// trusted no more than converted Markdown.
func PostProcess(rendered string) (string, error) {
	nodes, err := parseFragment(rendered)
	if err != nil {
		return "", fmt.Errorf("parse rendered html: %w", err)
	}

	if tag, found := findDeniedTag(nodes); found {
		return "", &UnsafeElementError{Tag: tag}
	}

	tagTopLevelLists(nodes)
	nodes = wrapArticle(nodes)

	return renderNodes(nodes)
}

func parseFragment(s string) ([]*html.Node, error) {
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	return html.ParseFragment(strings.NewReader(s), context)
}

func findDeniedTag(nodes []*html.Node) (string, bool) {
	var denied string
	walkNodes(nodes, func(n *html.Node) {
		if denied != "" || n.Type != html.ElementNode {
			return
		}
		if _, bad := deniedTags[n.Data]; bad {
			denied = n.Data
		}
	})
	return denied, denied != ""
}

// tagTopLevelLists appends the fixed class to every list element that is not
// nested inside another list. Nested lists keep their classes untouched.
func tagTopLevelLists(nodes []*html.Node) {
	var walk func(n *html.Node, inList bool)
	walk = func(n *html.Node, inList bool) {
		if n.Type == html.ElementNode && (n.Data == "ul" || n.Data == "ol") {
			if !inList {
				class := unorderedListClass
				if n.Data == "ol" {
					class = orderedListClass
				}
				appendClass(n, class)
			}
			inList = true
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, inList)
		}
	}
	for _, n := range nodes {
		walk(n, false)
	}
}

// appendClass adds a class token unless it is already present.
func appendClass(n *html.Node, class string) {
	for i := range n.Attr {
		if n.Attr[i].Key != "class" {
			continue
		}
		for _, token := range strings.Fields(n.Attr[i].Val) {
			if token == class {
				return
			}
		}
		n.Attr[i].Val = strings.TrimSpace(n.Attr[i].Val + " " + class)
		return
	}
	n.Attr = append(n.Attr, html.Attribute{Key: "class", Val: class})
}

// wrapArticle wraps the output in a single article container when it holds
// more than one heading. Output that is already a lone article is left alone.
func wrapArticle(nodes []*html.Node) []*html.Node {
	if countHeadings(nodes) <= 1 || isSingleArticle(nodes) {
		return nodes
	}

	article := &html.Node{Type: html.ElementNode, Data: "article", DataAtom: atom.Article}
	article.AppendChild(&html.Node{Type: html.TextNode, Data: "\n"})
	for _, n := range nodes {
		article.AppendChild(n)
	}
	article.AppendChild(&html.Node{Type: html.TextNode, Data: "\n"})
	return []*html.Node{article}
}

func countHeadings(nodes []*html.Node) int {
	count := 0
	walkNodes(nodes, func(n *html.Node) {
		if n.Type != html.ElementNode {
			return
		}
		switch n.Data {
		case "h1", "h2", "h3", "h4", "h5", "h6":
			count++
		}
	})
	return count
}

// isSingleArticle reports whether nodes already form exactly one article
// element, ignoring whitespace-only text around it.
func isSingleArticle(nodes []*html.Node) bool {
	articles := 0
	for _, n := range nodes {
		switch n.Type {
		case html.ElementNode:
			if n.Data != "article" {
				return false
			}
			articles++
		case html.TextNode:
			if strings.TrimSpace(n.Data) != "" {
				return false
			}
		}
	}
	return articles == 1
}

func walkNodes(nodes []*html.Node, visit func(*html.Node)) {
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		visit(n)
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range nodes {
		walk(n)
	}
}

func renderNodes(nodes []*html.Node) (string, error) {
	var sb strings.Builder
	for _, n := range nodes {
		if err := html.Render(&sb, n); err != nil {
			return "", fmt.Errorf("render html: %w", err)
		}
	}
	return sb.String(), nil
}
