package templates

import (
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pagemill/pagemill/internal/breadcrumb"
	"github.com/pagemill/pagemill/internal/listing"
)

func pageData() PageData {
	return PageData{
		Site:    SiteData{Title: "Test Site"},
		Title:   "Hello",
		Content: template.HTML("<h1>Hello</h1>\n<p>World</p>"),
		Excerpt: "World",
	}
}

func TestRender_DefaultPage(t *testing.T) {
	eng, err := New("")
	require.NoError(t, err)

	var sb strings.Builder
	require.NoError(t, eng.Render(&sb, "", pageData()))

	out := sb.String()
	require.Contains(t, out, "<title>Hello | Test Site</title>")
	require.Contains(t, out, "<h1>Hello</h1>")
	require.Contains(t, out, `content="World"`)
}

func TestRender_ContentNotEscaped(t *testing.T) {
	eng, err := New("")
	require.NoError(t, err)

	var sb strings.Builder
	require.NoError(t, eng.Render(&sb, "", pageData()))
	require.NotContains(t, sb.String(), "&lt;h1&gt;")
}

func TestRender_Breadcrumbs(t *testing.T) {
	eng, err := New("")
	require.NoError(t, err)

	data := pageData()
	data.Breadcrumbs = breadcrumb.Trail{
		{Title: "Home", URL: "/"},
		{Title: "Blog", URL: "/blog/"},
		{Title: "Hello", IsCurrent: true},
	}

	var sb strings.Builder
	require.NoError(t, eng.Render(&sb, "", data))

	out := sb.String()
	require.Contains(t, out, `<a href="/">Home</a>`)
	require.Contains(t, out, `<a href="/blog/">Blog</a>`)
	require.Contains(t, out, `<li aria-current="page">Hello</li>`)
}

func TestRender_NoBreadcrumbsNoNav(t *testing.T) {
	eng, err := New("")
	require.NoError(t, err)

	var sb strings.Builder
	require.NoError(t, eng.Render(&sb, "", pageData()))
	require.NotContains(t, sb.String(), "breadcrumbs")
}

func TestRender_Listing(t *testing.T) {
	eng, err := New("")
	require.NoError(t, err)

	data := pageData()
	data.Listing = &listing.View{
		Items: []listing.Item{
			{Title: "A Post", URL: "/blog/a-post/", Date: "2024-01-01", Excerpt: "About A"},
		},
		TotalCount: 1,
	}

	var sb strings.Builder
	require.NoError(t, eng.Render(&sb, "", data))

	out := sb.String()
	require.Contains(t, out, `<a href="/blog/a-post/">A Post</a>`)
	require.Contains(t, out, "<time>2024-01-01</time>")
	require.Contains(t, out, "1 pages")
}

func TestRender_UnknownNameFallsBack(t *testing.T) {
	eng, err := New("")
	require.NoError(t, err)

	var sb strings.Builder
	require.NoError(t, eng.Render(&sb, "does-not-exist", pageData()))
	require.Contains(t, sb.String(), "<h1>Hello</h1>")
}

func TestNew_UserOverride(t *testing.T) {
	dir := t.TempDir()
	override := `{{define "page"}}CUSTOM:{{.Title}}{{end}}` + "\n" +
		`{{define "minimal"}}MIN:{{.Title}}{{end}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "site.tmpl"), []byte(override), 0o644))

	eng, err := New(dir)
	require.NoError(t, err)

	var sb strings.Builder
	require.NoError(t, eng.Render(&sb, "", pageData()))
	require.Equal(t, "CUSTOM:Hello", sb.String())

	sb.Reset()
	require.NoError(t, eng.Render(&sb, "minimal", pageData()))
	require.Equal(t, "MIN:Hello", sb.String())
}

func TestNew_MissingOverrideDir(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}
