package frontmatter

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Dialect identifies the header serialization format by its fence.
type Dialect int

const (
	DialectNone Dialect = iota
	DialectTOML         // +++ fenced
	DialectYAML         // --- fenced
)

func (d Dialect) String() string {
	switch d {
	case DialectTOML:
		return "toml"
	case DialectYAML:
		return "yaml"
	default:
		return "none"
	}
}

// headerBlock is the AST node for a metadata header. It records the byte
// offset just past the closing fence so the body can be sliced out of the
// original source without string search.
type headerBlock struct {
	ast.BaseBlock
	dialect   Dialect
	closed    bool
	endOffset int
}

var kindHeaderBlock = ast.NewNodeKind("MetadataHeader")

func (n *headerBlock) Kind() ast.NodeKind { return kindHeaderBlock }

func (n *headerBlock) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, nil, nil)
}

// IsRaw reports true so the header lines are never inline-parsed as Markdown.
func (n *headerBlock) IsRaw() bool { return true }

// headerParser is a goldmark block parser that claims a `+++` or `---` fenced
// block at the very start of the document. It runs before every default block
// parser so thematic breaks never swallow the fences.
type headerParser struct{}

var defaultHeaderParser = &headerParser{}

func (p *headerParser) Trigger() []byte { return []byte{'-', '+'} }

func (p *headerParser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	lineNum, _ := reader.Position()
	if lineNum != 0 {
		return nil, parser.NoChildren
	}
	line, _ := reader.PeekLine()
	switch {
	case isFence(line, '+'):
		return &headerBlock{dialect: DialectTOML}, parser.NoChildren
	case isFence(line, '-'):
		return &headerBlock{dialect: DialectYAML}, parser.NoChildren
	}
	return nil, parser.NoChildren
}

func (p *headerParser) Continue(node ast.Node, reader text.Reader, pc parser.Context) parser.State {
	hb := node.(*headerBlock)
	line, segment := reader.PeekLine()

	fence := byte('-')
	if hb.dialect == DialectTOML {
		fence = '+'
	}
	if isFence(line, fence) {
		reader.Advance(segment.Len() - 1)
		hb.closed = true
		hb.endOffset = segment.Stop
		return parser.Close
	}

	node.Lines().Append(segment)
	return parser.Continue
}

func (p *headerParser) Close(node ast.Node, reader text.Reader, pc parser.Context) {
	// Raw header lines stay on the node; decoding happens in Parse.
}

func (p *headerParser) CanInterruptParagraph() bool { return false }

func (p *headerParser) CanAcceptIndentedLine() bool { return false }

// isFence reports whether line is exactly three fence characters, allowing
// trailing whitespace only.
func isFence(line []byte, fence byte) bool {
	line = util.TrimRightSpace(line)
	if len(line) != 3 {
		return false
	}
	for _, b := range line {
		if b != fence {
			return false
		}
	}
	return true
}

// Extension registers the header block parser with a goldmark instance.
type Extension struct{}

// Extend implements goldmark.Extender.
func (e *Extension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithBlockParsers(util.Prioritized(defaultHeaderParser, 0)))
}
