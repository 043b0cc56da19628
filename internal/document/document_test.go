package document

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pagemill/pagemill/internal/frontmatter"
)

func doc(path string) *Document {
	return &Document{SourcePath: path, Title: path}
}

func TestDocument_URL(t *testing.T) {
	cases := map[string]string{
		"index.md":            "/",
		"about.md":            "/about/",
		"blog/index.md":       "/blog/",
		"blog/first-post.md":  "/blog/first-post/",
		"a/b/c.md":            "/a/b/c/",
		"a/b/index.md":        "/a/b/",
		"guides/setup.rst":    "/guides/setup/",
	}
	for path, want := range cases {
		require.Equal(t, want, doc(path).URL(), "path %q", path)
	}
}

func TestDocument_DirAndStem(t *testing.T) {
	d := doc("blog/posts/my-post.md")
	require.Equal(t, "blog/posts", d.Dir())
	require.Equal(t, "my-post", d.Stem())
	require.False(t, d.IsIndex())

	root := doc("index.md")
	require.Equal(t, ".", root.Dir())
	require.True(t, root.IsIndex())
}

func TestDocument_IsListing(t *testing.T) {
	d := doc("blog/index.md")
	require.False(t, d.IsListing())
	d.Metadata = frontmatter.Metadata{List: true}
	require.True(t, d.IsListing())
}

func TestCollection_InDirDirectChildrenOnly(t *testing.T) {
	c := Collection{}
	c.Add(doc("index.md"))
	c.Add(doc("blog/index.md"))
	c.Add(doc("blog/a.md"))
	c.Add(doc("blog/b.md"))
	c.Add(doc("blog/2024/deep.md"))

	children := c.InDir("blog")
	require.Len(t, children, 3)
	require.Equal(t, "blog/a.md", children[0].SourcePath)
	require.Equal(t, "blog/b.md", children[1].SourcePath)
	require.Equal(t, "blog/index.md", children[2].SourcePath)

	rootChildren := c.InDir(".")
	require.Len(t, rootChildren, 1)
	require.Equal(t, "index.md", rootChildren[0].SourcePath)
}

func TestCollection_IndexOf(t *testing.T) {
	c := Collection{}
	c.Add(doc("blog/index.md"))
	c.Add(doc("blog/a.md"))

	require.NotNil(t, c.IndexOf("blog"))
	require.Equal(t, "blog/index.md", c.IndexOf("blog").SourcePath)
	require.Nil(t, c.IndexOf("docs"))
}

func TestCollection_AddReplaces(t *testing.T) {
	c := Collection{}
	c.Add(&Document{SourcePath: "a.md", Title: "old"})
	c.Add(&Document{SourcePath: "a.md", Title: "new"})
	require.Len(t, c, 1)
	require.Equal(t, "new", c["a.md"].Title)
}
