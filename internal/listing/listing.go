// Package listing builds the per-directory listing view: the sorted set of a
// directory's pages that its index page presents. Listings are computed from
// the fully assembled collection, after the ingest barrier, so every sibling
// is visible.
package listing

import (
	"github.com/pagemill/pagemill/internal/document"
	"github.com/pagemill/pagemill/internal/sorting"
)

// Item is one row of a listing.
type Item struct {
	Title   string
	URL     string
	Date    string
	Excerpt string
}

// View is what a listing page renders. An empty directory yields a View with
// no items, never a nil View: templates always have something to iterate.
type View struct {
	Items      []Item
	TotalCount int
}

// Build assembles the listing for dir from the collection. Only direct
// children appear; the directory's own index page and any page that is itself
// a listing are excluded. Sort order comes from the directory's index
// document when it declares one, otherwise the default applies.
func Build(c document.Collection, dir string) *View {
	cfg := sorting.Default()
	if idx := c.IndexOf(dir); idx != nil {
		cfg = sorting.FromMetadata(idx.Metadata)
	}
	return BuildSorted(c, dir, cfg)
}

// BuildSorted is Build with an explicit sort directive.
func BuildSorted(c document.Collection, dir string, cfg sorting.Config) *View {
	var docs []*document.Document
	for _, d := range c.InDir(dir) {
		if d.IsIndex() || d.IsListing() {
			continue
		}
		docs = append(docs, d)
	}

	sorting.Sort(docs, cfg)

	view := &View{Items: make([]Item, 0, len(docs)), TotalCount: len(docs)}
	for _, d := range docs {
		view.Items = append(view.Items, Item{
			Title:   d.Title,
			URL:     d.URL(),
			Date:    d.Metadata.Date,
			Excerpt: d.Excerpt,
		})
	}
	return view
}
