package markdown

import (
	"testing"

	gmast "github.com/yuin/goldmark/ast"
	"github.com/stretchr/testify/require"
)

func firstBlock(t *testing.T, body string) (gmast.Node, []byte) {
	t.Helper()
	source := []byte(body)
	root, err := ParseBody(source)
	require.NoError(t, err)
	require.NotNil(t, root.FirstChild())
	return root.FirstChild(), source
}

func TestFlattenText_PlainText(t *testing.T) {
	node, source := firstBlock(t, "Hello world")
	require.Equal(t, "Hello world", FlattenText(node, source))
}

func TestFlattenText_StripsEmphasisAndStrong(t *testing.T) {
	node, source := firstBlock(t, "Hello *emphasized* and **bold** world")
	require.Equal(t, "Hello emphasized and bold world", FlattenText(node, source))
}

func TestFlattenText_KeepsInlineCodeVerbatim(t *testing.T) {
	node, source := firstBlock(t, "Use `printf()` function")
	require.Equal(t, "Use printf() function", FlattenText(node, source))
}

func TestFlattenText_LinkReducedToVisibleText(t *testing.T) {
	node, source := firstBlock(t, "Visit [this link](https://example.com) for more")
	require.Equal(t, "Visit this link for more", FlattenText(node, source))
}

func TestFlattenText_ImageReducedToAltText(t *testing.T) {
	node, source := firstBlock(t, "See ![Alt text](/image.jpg) here")
	require.Equal(t, "See Alt text here", FlattenText(node, source))
}

func TestFlattenText_NestedFormattingFlattened(t *testing.T) {
	node, source := firstBlock(t, "Start **bold with *italic* inside** end")
	require.Equal(t, "Start bold with italic inside end", FlattenText(node, source))
}

func TestFlattenText_StrikethroughKeepsInnerText(t *testing.T) {
	node, source := firstBlock(t, "This has ~~strikethrough~~ and regular text.")
	require.Equal(t, "This has strikethrough and regular text.", FlattenText(node, source))
}

func TestFlattenText_ComplexMix(t *testing.T) {
	node, source := firstBlock(t, "This has **bold**, *italic*, `code`, and [links](https://example.com)")
	require.Equal(t, "This has bold, italic, code, and links", FlattenText(node, source))
}

func TestFlattenText_RawHTMLContributesNothing(t *testing.T) {
	node, source := firstBlock(t, "Before <span>kept?</span> after")
	// The span tags are raw HTML nodes and vanish; their inner text is a
	// regular text node and stays.
	require.Equal(t, "Before kept? after", FlattenText(node, source))
}

func TestFlattenText_SoftLineBreakPreservesNewline(t *testing.T) {
	node, source := firstBlock(t, "First line\nsecond line")
	require.Equal(t, "First line\nsecond line", FlattenText(node, source))
}
