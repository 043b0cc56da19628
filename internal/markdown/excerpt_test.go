package markdown

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func extractExcerpt(t *testing.T, body string) string {
	t.Helper()
	source := []byte(body)
	root, err := ParseBody(source)
	require.NoError(t, err)
	return FirstParagraphText(root, source)
}

func TestFirstParagraphText_FirstParagraphWins(t *testing.T) {
	got := extractExcerpt(t, "# Title\n\nThis is the first paragraph with **bold** and *italic* text.\n\nSecond paragraph.")
	require.Equal(t, "This is the first paragraph with bold and italic text.", got)
}

func TestFirstParagraphText_NoParagraphs(t *testing.T) {
	require.Empty(t, extractExcerpt(t, "# Just a heading"))
	require.Empty(t, extractExcerpt(t, ""))
}

func TestFirstParagraphText_SkipsBlockquote(t *testing.T) {
	got := extractExcerpt(t, "# Title\n\n> A quote\n> spanning lines.\n\nThe first real paragraph.\n")
	require.Equal(t, "The first real paragraph.", got)
}

func TestFirstParagraphText_SkipsCodeBlockAndList(t *testing.T) {
	body := "# Title\n\n```go\nfunc main() {}\n```\n\n- one\n- two\n\nParagraph after blocks.\n"
	require.Equal(t, "Paragraph after blocks.", extractExcerpt(t, body))
}

func TestFirstParagraphText_LinkTextKept(t *testing.T) {
	got := extractExcerpt(t, "Paragraph with a [link](https://example.com) and more text.")
	require.Equal(t, "Paragraph with a link and more text.", got)
}

func TestPlainTextExcerpt_FirstNonEmptySegment(t *testing.T) {
	require.Equal(t, "First paragraph.", PlainTextExcerpt("First paragraph.\n\nSecond paragraph."))
	require.Equal(t, "Only one paragraph.", PlainTextExcerpt("Only one paragraph."))
	require.Equal(t, "First paragraph.\nSecond line.", PlainTextExcerpt("First paragraph.\nSecond line.\n\nThird."))
	require.Equal(t, "After whitespace.", PlainTextExcerpt("   \n\nAfter whitespace."))
	require.Empty(t, PlainTextExcerpt(""))
	require.Empty(t, PlainTextExcerpt("   \n\n   "))
}

func TestResolveExcerpt_MetadataAlwaysWins(t *testing.T) {
	source := []byte("A perfectly good paragraph.\n")
	root, err := ParseBody(source)
	require.NoError(t, err)

	require.Equal(t, "From metadata", ResolveExcerpt("From metadata", root, source))
	require.Equal(t, "A perfectly good paragraph.", ResolveExcerpt("", root, source))
}
