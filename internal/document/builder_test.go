package document

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	pmerrors "github.com/pagemill/pagemill/internal/errors"
	"github.com/pagemill/pagemill/internal/frontmatter"
	"github.com/pagemill/pagemill/internal/plugin"
)

func TestBuilder_MarkdownWithHeader(t *testing.T) {
	source := "+++\ntitle = \"From Metadata\"\ndate = \"2024-03-15\"\n+++\n\n# Heading Title\n\nFirst paragraph here.\n"

	b := NewBuilder(nil)
	d, err := b.Build("blog/post.md", []byte(source))
	require.NoError(t, err)

	require.Equal(t, "From Metadata", d.Title)
	require.Equal(t, "2024-03-15", d.Metadata.Date)
	require.Equal(t, "First paragraph here.", d.Excerpt)
	require.Contains(t, d.Body, "<h1>Heading Title</h1>")
}

func TestBuilder_MarkdownWithoutHeader(t *testing.T) {
	b := NewBuilder(nil)
	d, err := b.Build("notes.md", []byte("# Notes\n\nSome notes.\n"))
	require.NoError(t, err)
	require.Equal(t, "Notes", d.Title)
	require.True(t, d.Metadata.IsZero())
}

func TestBuilder_MalformedHeaderFailSoft(t *testing.T) {
	source := "---\ntitle: [unclosed\n---\n\n# Real Title\n\nBody.\n"

	b := NewBuilder(nil)
	d, err := b.Build("broken.md", []byte(source))

	// Degraded success: document plus warning.
	require.Error(t, err)
	require.NotNil(t, d)
	require.True(t, pmerrors.IsCategory(err, pmerrors.CategoryMetadata))

	var pmErr *pmerrors.PagemillError
	require.ErrorAs(t, err, &pmErr)
	require.Equal(t, pmerrors.SeverityWarning, pmErr.Severity)

	// Empty metadata; title comes from the heading, which survives because
	// the full source is kept as body.
	require.True(t, d.Metadata.IsZero())
	require.Equal(t, "Real Title", d.Title)
}

func TestBuilder_UnsafeContentRejected(t *testing.T) {
	b := NewBuilder(nil)
	_, err := b.Build("evil.md", []byte("Text\n\n<script>alert(1)</script>\n"))
	require.Error(t, err)
	require.True(t, pmerrors.IsCategory(err, pmerrors.CategoryRender))
}

func TestBuilder_FilenameFallbackTitle(t *testing.T) {
	b := NewBuilder(nil)
	d, err := b.Build("docs/getting-started.md", []byte("No heading, just text.\n"))
	require.NoError(t, err)
	require.Equal(t, "getting-started", d.Title)
}

type stubParser struct {
	parsed plugin.ParsedDocument
	err    error
}

func (p *stubParser) Parse(raw []byte, path string) (plugin.ParsedDocument, error) {
	return p.parsed, p.err
}

func TestBuilder_PluginPath(t *testing.T) {
	reg := plugin.NewRegistry()
	require.NoError(t, reg.Register("rst", &stubParser{
		parsed: plugin.ParsedDocument{
			Title: "Derived Title",
			HTML:  "<h1>One</h1><p>Body</p>",
		},
	}))

	b := NewBuilder(reg)
	require.True(t, b.Supports("guide.rst"))

	d, err := b.Build("guide.rst", []byte("First line.\n\nSecond paragraph."))
	require.NoError(t, err)
	require.Equal(t, "Derived Title", d.Title)
	require.Equal(t, "First line.", d.Excerpt)
	require.Contains(t, d.Body, "<p>Body</p>")
}

func TestBuilder_PluginMetadataTitleWins(t *testing.T) {
	reg := plugin.NewRegistry()
	require.NoError(t, reg.Register("rst", &stubParser{
		parsed: plugin.ParsedDocument{
			Title:    "Derived",
			Metadata: frontmatter.Metadata{Title: "Explicit"},
			HTML:     "<p>x</p>",
		},
	}))

	b := NewBuilder(reg)
	d, err := b.Build("a.rst", []byte("x"))
	require.NoError(t, err)
	require.Equal(t, "Explicit", d.Title)
}

func TestBuilder_PluginUnsafeHTMLRejected(t *testing.T) {
	reg := plugin.NewRegistry()
	require.NoError(t, reg.Register("rst", &stubParser{
		parsed: plugin.ParsedDocument{HTML: "<p>ok</p><iframe src='x'></iframe>"},
	}))

	b := NewBuilder(reg)
	_, err := b.Build("a.rst", []byte("x"))
	require.Error(t, err)
	require.True(t, pmerrors.IsCategory(err, pmerrors.CategoryRender))
}

func TestBuilder_PluginParseError(t *testing.T) {
	reg := plugin.NewRegistry()
	require.NoError(t, reg.Register("rst", &stubParser{err: errors.New("boom")}))

	b := NewBuilder(reg)
	_, err := b.Build("a.rst", []byte("x"))
	require.Error(t, err)
	require.True(t, pmerrors.IsCategory(err, pmerrors.CategoryContent))
}

func TestBuilder_UnsupportedExtension(t *testing.T) {
	b := NewBuilder(nil)
	require.False(t, b.Supports("data.csv"))
	_, err := b.Build("data.csv", []byte("a,b"))
	require.Error(t, err)
}
