package document

import (
	stderrors "errors"
	"path"
	"strings"

	"github.com/pagemill/pagemill/internal/errors"
	"github.com/pagemill/pagemill/internal/frontmatter"
	"github.com/pagemill/pagemill/internal/markdown"
	"github.com/pagemill/pagemill/internal/plugin"
)

// Builder assembles Documents from raw source bytes. Markdown goes through
// the native frontmatter/convert path; any other registered extension is
// handed to its plugin parser and then pushed through the same HTML
// post-processing gate.
type Builder struct {
	registry *plugin.Registry
}

// NewBuilder returns a builder using the given parser registry. A nil
// registry means Markdown only.
func NewBuilder(registry *plugin.Registry) *Builder {
	if registry == nil {
		registry = plugin.NewRegistry()
	}
	return &Builder{registry: registry}
}

// Supports reports whether the builder can assemble the given source path.
func (b *Builder) Supports(srcPath string) bool {
	if isMarkdown(srcPath) {
		return true
	}
	_, ok := b.registry.Lookup(srcPath)
	return ok
}

// Build assembles one document. srcPath is slash-separated and relative to
// the content root.
//
// A malformed metadata header is not fatal: Build returns the document,
// assembled with empty metadata and the full source as body, together with a
// warning-severity error. Callers treat a non-nil document with a non-nil
// error as a degraded success.
func (b *Builder) Build(srcPath string, raw []byte) (*Document, error) {
	if isMarkdown(srcPath) {
		return b.buildMarkdown(srcPath, raw)
	}
	if parser, ok := b.registry.Lookup(srcPath); ok {
		return b.buildPlugin(parser, srcPath, raw)
	}
	return nil, errors.ContentParseFailed(srcPath, stderrors.New("no parser registered for extension "+path.Ext(srcPath)))
}

func (b *Builder) buildMarkdown(srcPath string, raw []byte) (*Document, error) {
	meta, body, metaErr := frontmatter.Parse(raw)

	root, err := markdown.ParseBody(body)
	if err != nil {
		return nil, errors.ContentParseFailed(srcPath, err)
	}

	rendered, err := markdown.ToHTML(body)
	if err != nil {
		var unsafe *markdown.UnsafeElementError
		if stderrors.As(err, &unsafe) {
			return nil, errors.UnsafeContent(srcPath, unsafe.Tag)
		}
		return nil, errors.ContentParseFailed(srcPath, err)
	}

	doc := &Document{
		SourcePath: srcPath,
		Body:       rendered,
		Metadata:   meta,
		Title:      markdown.ResolveTitle(meta.Title, root, body, srcPath),
		Excerpt:    markdown.ResolveExcerpt(meta.Excerpt, root, body),
	}
	if metaErr != nil {
		return doc, errors.MetadataMalformed(srcPath, metaErr)
	}
	return doc, nil
}

func (b *Builder) buildPlugin(parser plugin.ContentParser, srcPath string, raw []byte) (*Document, error) {
	parsed, err := parser.Parse(raw, srcPath)
	if err != nil {
		return nil, errors.ContentParseFailed(srcPath, err)
	}

	// Plugin output is trusted no more than converted Markdown: the same
	// post-processing and denylist apply.
	rendered, err := markdown.PostProcess(parsed.HTML)
	if err != nil {
		var unsafe *markdown.UnsafeElementError
		if stderrors.As(err, &unsafe) {
			return nil, errors.UnsafeContent(srcPath, unsafe.Tag)
		}
		return nil, errors.ContentParseFailed(srcPath, err)
	}

	return &Document{
		SourcePath: srcPath,
		Body:       rendered,
		Metadata:   parsed.Metadata,
		Title:      resolvePluginTitle(parsed, srcPath),
		Excerpt:    resolvePluginExcerpt(parsed, raw),
	}, nil
}

// resolvePluginTitle keeps the metadata-first rule: explicit metadata beats
// whatever the parser derived from content, and the file stem is the final
// fallback.
func resolvePluginTitle(parsed plugin.ParsedDocument, srcPath string) string {
	if t := strings.TrimSpace(parsed.Metadata.Title); t != "" {
		return t
	}
	if t := strings.TrimSpace(parsed.Title); t != "" {
		return t
	}
	return markdown.TitleFromPath(srcPath)
}

// resolvePluginExcerpt falls back to the plain-text first-segment rule on the
// raw source, since non-Markdown formats have no syntax tree to walk.
func resolvePluginExcerpt(parsed plugin.ParsedDocument, raw []byte) string {
	if e := strings.TrimSpace(parsed.Metadata.Excerpt); e != "" {
		return e
	}
	return markdown.PlainTextExcerpt(string(raw))
}

func isMarkdown(srcPath string) bool {
	switch strings.ToLower(path.Ext(srcPath)) {
	case ".md", ".markdown":
		return true
	}
	return false
}
