package site

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/pagemill/pagemill/internal/breadcrumb"
	"github.com/pagemill/pagemill/internal/document"
	"github.com/pagemill/pagemill/internal/pipeline"
	"github.com/pagemill/pagemill/internal/templates"
)

func buildResult(t *testing.T) *pipeline.Result {
	t.Helper()
	fsys := fstest.MapFS{
		"index.md":      &fstest.MapFile{Data: []byte("# Welcome\n\nHello.\n")},
		"about.md":      &fstest.MapFile{Data: []byte("# About\n\nAbout page.\n")},
		"blog/index.md": &fstest.MapFile{Data: []byte("---\nlist: true\n---\n\n# Blog\n")},
		"blog/post.md":  &fstest.MapFile{Data: []byte("# Post\n\nA post.\n")},
	}
	result, err := pipeline.Run(context.Background(), fsys, pipeline.Options{
		Builder:     document.NewBuilder(nil),
		Breadcrumbs: breadcrumb.DefaultConfig(),
	})
	require.NoError(t, err)
	return result
}

func newWriter(t *testing.T) (*Writer, string) {
	t.Helper()
	dir := t.TempDir()
	eng, err := templates.New("")
	require.NoError(t, err)
	return NewWriter(dir, eng, templates.SiteData{Title: "Test Site"}), dir
}

func TestWriteAll_PrettyURLLayout(t *testing.T) {
	w, dir := newWriter(t)
	require.NoError(t, w.WriteAll(context.Background(), buildResult(t)))

	for _, rel := range []string{
		"index.html",
		"about/index.html",
		"blog/index.html",
		"blog/post/index.html",
	} {
		_, err := os.Stat(filepath.Join(dir, rel))
		require.NoError(t, err, rel)
	}
}

func TestWriteAll_RenderedContent(t *testing.T) {
	w, dir := newWriter(t)
	require.NoError(t, w.WriteAll(context.Background(), buildResult(t)))

	data, err := os.ReadFile(filepath.Join(dir, "about", "index.html"))
	require.NoError(t, err)
	require.Contains(t, string(data), "<h1>About</h1>")
	require.Contains(t, string(data), "<title>About | Test Site</title>")

	// The listing page includes its child.
	data, err = os.ReadFile(filepath.Join(dir, "blog", "index.html"))
	require.NoError(t, err)
	require.Contains(t, string(data), `href="/blog/post/"`)
}

func TestWriter_Clean(t *testing.T) {
	w, dir := newWriter(t)
	stale := filepath.Join(dir, "stale", "index.html")
	require.NoError(t, os.MkdirAll(filepath.Dir(stale), 0o755))
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0o644))

	require.NoError(t, w.Clean())
	_, err := os.Stat(stale)
	require.True(t, os.IsNotExist(err))

	require.NoError(t, w.WriteAll(context.Background(), buildResult(t)))
	_, err = os.Stat(filepath.Join(dir, "index.html"))
	require.NoError(t, err)
}

func TestOutputPath(t *testing.T) {
	got, err := OutputPath("out", "/blog/post/")
	require.NoError(t, err)
	require.Equal(t, filepath.Join("out", "blog", "post", "index.html"), got)

	got, err = OutputPath("out", "/")
	require.NoError(t, err)
	require.Equal(t, filepath.Join("out", "index.html"), got)
}

func TestOutputPath_TraversalRejected(t *testing.T) {
	_, err := OutputPath("out", "/../escape/")
	require.Error(t, err)
}
