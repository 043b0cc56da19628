package plugin

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeParser struct {
	name string
}

func (p *fakeParser) Parse(raw []byte, path string) (ParsedDocument, error) {
	return ParsedDocument{Title: p.name, HTML: "<p>" + string(raw) + "</p>"}, nil
}

func TestRegistry_RegisterAndLookup(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register("rst", &fakeParser{name: "rst"}))

	p, ok := reg.Lookup("docs/guide.rst")
	require.True(t, ok)

	parsed, err := p.Parse([]byte("hello"), "docs/guide.rst")
	require.NoError(t, err)
	require.Equal(t, "rst", parsed.Title)
}

func TestRegistry_ExtensionNormalized(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(".AsciiDoc", &fakeParser{}))

	_, ok := reg.Lookup("page.asciidoc")
	require.True(t, ok)
	_, ok = reg.Lookup("page.ASCIIDOC")
	require.True(t, ok)
}

func TestRegistry_DuplicateExtensionRejected(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register("rst", &fakeParser{name: "first"}))
	require.Error(t, reg.Register(".rst", &fakeParser{name: "second"}))
}

func TestRegistry_UnknownExtension(t *testing.T) {
	reg := NewRegistry()
	_, ok := reg.Lookup("notes.txt")
	require.False(t, ok)
	_, ok = reg.Lookup("no-extension")
	require.False(t, ok)
}

func TestRegistry_RejectsEmptyExtensionAndNilParser(t *testing.T) {
	reg := NewRegistry()
	require.Error(t, reg.Register("", &fakeParser{}))
	require.Error(t, reg.Register("rst", nil))
}

func TestRegistry_ExtensionsSorted(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register("rst", &fakeParser{}))
	require.NoError(t, reg.Register("adoc", &fakeParser{}))
	require.Equal(t, []string{"adoc", "rst"}, reg.Extensions())
}
