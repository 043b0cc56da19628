// Package document holds the canonical in-memory representation of one
// processed source file and the collection the pipeline builds from a content
// tree. Conversion to HTML happens exactly once, at assembly; everything
// downstream (listings, breadcrumbs, templates) reads from here.
package document

import (
	"path"
	"sort"
	"strings"

	"github.com/pagemill/pagemill/internal/frontmatter"
)

// Document is one fully assembled page. SourcePath is the identity: the
// slash-separated path relative to the content root.
type Document struct {
	SourcePath string
	Body       string // rendered, post-processed HTML
	Metadata   frontmatter.Metadata
	Title      string // resolved, never empty
	Excerpt    string // resolved, empty when the document yields none
}

// Dir returns the document's directory relative to the content root, "." for
// the root itself.
func (d *Document) Dir() string {
	return path.Dir(d.SourcePath)
}

// Stem returns the file name without its extension.
func (d *Document) Stem() string {
	base := path.Base(d.SourcePath)
	ext := path.Ext(base)
	if ext == base {
		return base
	}
	return strings.TrimSuffix(base, ext)
}

// IsIndex reports whether this document is its directory's index page.
func (d *Document) IsIndex() bool {
	return d.Stem() == "index"
}

// IsListing reports whether the document declared itself a listing page.
func (d *Document) IsListing() bool {
	return d.Metadata.List
}

// URL returns the document's pretty URL: directories map to themselves, a
// page maps to a directory of its own, and index pages map to their parent.
// Always absolute, always slash-terminated.
func (d *Document) URL() string {
	dir := d.Dir()
	if dir == "." {
		dir = ""
	}
	if d.IsIndex() {
		return "/" + joinURL(dir)
	}
	return "/" + joinURL(dir, d.Stem())
}

func joinURL(parts ...string) string {
	joined := path.Join(parts...)
	if joined == "" || joined == "." {
		return ""
	}
	return joined + "/"
}

// Collection is the flat set of assembled documents for one run, keyed by
// SourcePath.
type Collection map[string]*Document

// Add inserts a document, replacing any previous entry for the same path.
func (c Collection) Add(d *Document) {
	c[d.SourcePath] = d
}

// InDir returns the direct children of dir (no recursion), in SourcePath
// order. Use "." for the content root.
func (c Collection) InDir(dir string) []*Document {
	var docs []*Document
	for _, d := range c {
		if d.Dir() == dir {
			docs = append(docs, d)
		}
	}
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].SourcePath < docs[j].SourcePath
	})
	return docs
}

// IndexOf returns dir's index document, or nil when the directory has none.
func (c Collection) IndexOf(dir string) *Document {
	for _, d := range c {
		if d.Dir() == dir && d.IsIndex() {
			return d
		}
	}
	return nil
}

// Paths returns every document path in sorted order.
func (c Collection) Paths() []string {
	paths := make([]string, 0, len(c))
	for p := range c {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
