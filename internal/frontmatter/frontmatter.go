// Package frontmatter extracts the optional metadata header from the head of
// a source document.
//
// Two dialects are supported, distinguished by their fence: `+++` (TOML) and
// `---` (YAML). The body is sliced out of the original source at the byte
// offset the syntax tree reports for the end of the header node, so body
// bytes are identical to the source with only the header removed.
package frontmatter

import (
	"bytes"

	"github.com/BurntSushi/toml"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
)

// Metadata is the structured header record. All fields are optional in the
// source; absent fields keep their zero value.
type Metadata struct {
	Title        string   `yaml:"title" toml:"title"`
	Date         string   `yaml:"date" toml:"date"`
	List         bool     `yaml:"list" toml:"list"`
	PageTemplate string   `yaml:"page_template" toml:"page_template"`
	SortBy       string   `yaml:"sort_by" toml:"sort_by"`
	SortOrder    string   `yaml:"sort_order" toml:"sort_order"`
	Tags         []string `yaml:"tags" toml:"tags"`
	Excerpt      string   `yaml:"excerpt" toml:"excerpt"`
}

// IsZero reports whether no metadata field was set.
func (m Metadata) IsZero() bool {
	return m.Title == "" && m.Date == "" && !m.List && m.PageTemplate == "" &&
		m.SortBy == "" && m.SortOrder == "" && len(m.Tags) == 0 && m.Excerpt == ""
}

// Parse splits source into its metadata header and body.
//
// No header: empty Metadata, body is source unchanged. Valid header: decoded
// Metadata, body is source with exactly the header bytes removed and leading
// whitespace trimmed. A header that fails to decode under its dialect is
// fail-soft: Parse returns empty Metadata, the entire original source as
// body, and the decode error so callers can log it and continue.
func Parse(source []byte) (Metadata, []byte, error) {
	header, raw := locateHeader(source)
	if header == nil || !header.closed {
		return Metadata{}, source, nil
	}

	var meta Metadata
	var err error
	switch header.dialect {
	case DialectTOML:
		err = toml.Unmarshal(raw, &meta)
	case DialectYAML:
		err = yaml.Unmarshal(raw, &meta)
	}
	if err != nil {
		return Metadata{}, source, err
	}

	body := trimBody(source, header.endOffset)
	return meta, body, nil
}

// locateHeader parses source and returns the header node, if the first block
// is a metadata header, along with the raw header bytes.
func locateHeader(source []byte) (*headerBlock, []byte) {
	md := goldmark.New(goldmark.WithExtensions(&Extension{}))
	root := md.Parser().Parse(text.NewReader(source))

	first := root.FirstChild()
	header, ok := first.(*headerBlock)
	if !ok {
		return nil, nil
	}

	var buf bytes.Buffer
	lines := header.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}
	return header, buf.Bytes()
}

// trimBody slices source at the header end offset and trims leading
// whitespace and newlines, matching the single leading trim the contract
// allows.
func trimBody(source []byte, endOffset int) []byte {
	if endOffset >= len(source) {
		return []byte{}
	}
	return bytes.TrimLeft(source[endOffset:], " \t\r\n")
}

var _ ast.Node = (*headerBlock)(nil)
