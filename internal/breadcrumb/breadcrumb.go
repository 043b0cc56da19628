// Package breadcrumb derives the ancestry trail a page displays, from the
// site root down to the page itself. Trails are computed from the assembled
// collection so ancestor directories can borrow their index page's title.
package breadcrumb

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pagemill/pagemill/internal/document"
)

// Crumb is one step of a trail. The final crumb is the current page and
// carries no link target for templates that render it as plain text.
type Crumb struct {
	Title     string
	URL       string
	IsCurrent bool
}

// Trail is the ordered ancestry, root first. A nil Trail means the page shows
// no breadcrumbs at all.
type Trail []Crumb

// Config controls trail generation.
type Config struct {
	Enabled   bool
	HomeTitle string // title of the root crumb, "Home" when empty
	MaxItems  int    // truncate trails longer than this; values below 3 disable truncation
}

// DefaultConfig returns the enabled defaults.
func DefaultConfig() Config {
	return Config{Enabled: true, HomeTitle: "Home", MaxItems: 0}
}

var titleCaser = cases.Title(language.English)

// Build returns the trail for doc, or nil when breadcrumbs are disabled or
// the page is the site root itself.
func Build(c document.Collection, doc *document.Document, cfg Config) Trail {
	if !cfg.Enabled {
		return nil
	}
	if doc.Dir() == "." && doc.IsIndex() {
		return nil
	}

	home := cfg.HomeTitle
	if home == "" {
		home = "Home"
	}
	trail := Trail{{Title: home, URL: "/"}}

	dir := doc.Dir()
	if doc.IsIndex() {
		// An index page is the directory; its own crumb stands in for the
		// last path component.
		dir = parentDir(dir)
	}
	if dir != "." {
		prefix := ""
		for _, part := range strings.Split(dir, "/") {
			prefix += part + "/"
			trail = append(trail, Crumb{
				Title: ancestorTitle(c, strings.TrimSuffix(prefix, "/"), part),
				URL:   "/" + prefix,
			})
		}
	}

	trail = append(trail, Crumb{Title: doc.Title, IsCurrent: true})
	return truncate(trail, cfg.MaxItems)
}

// ancestorTitle prefers the directory's index page title and falls back to a
// humanized form of the directory name.
func ancestorTitle(c document.Collection, dir, name string) string {
	if idx := c.IndexOf(dir); idx != nil {
		return idx.Title
	}
	return HumanizeSegment(name)
}

// HumanizeSegment turns a path segment into display text: separators become
// spaces and each word is title-cased ("getting-started" reads as "Getting
// Started").
func HumanizeSegment(segment string) string {
	words := strings.NewReplacer("-", " ", "_", " ").Replace(segment)
	return titleCaser.String(words)
}

// truncate collapses the middle of an over-long trail into an ellipsis crumb,
// keeping the root and the last maxItems-2 entries. Limits below 3 cannot
// hold root, ellipsis and page at once, so they leave the trail whole.
func truncate(trail Trail, maxItems int) Trail {
	if maxItems < 3 || len(trail) <= maxItems {
		return trail
	}
	kept := trail[len(trail)-(maxItems-2):]
	out := make(Trail, 0, maxItems)
	out = append(out, trail[0], Crumb{Title: "..."})
	return append(out, kept...)
}

func parentDir(dir string) string {
	i := strings.LastIndex(dir, "/")
	if i < 0 {
		return "."
	}
	return dir[:i]
}
