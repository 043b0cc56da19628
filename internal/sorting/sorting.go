// Package sorting orders sibling documents for listings. Ordering is
// metadata-driven: a directory's index document may declare the sort field
// and direction, and anything unrecognized degrades to the default with a
// logged warning rather than an error.
package sorting

import (
	"log/slog"
	"path"
	"sort"
	"strings"

	"github.com/pagemill/pagemill/internal/document"
	"github.com/pagemill/pagemill/internal/frontmatter"
	"github.com/pagemill/pagemill/internal/logfields"
)

const (
	FieldDate     = "date"
	FieldTitle    = "title"
	FieldFilename = "filename"

	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Config is a validated sort directive. Construct through Normalize or
// FromMetadata so Field and Order are always one of the known values.
type Config struct {
	Field string
	Order string
}

// Default is what every listing uses absent an explicit directive: newest
// first.
func Default() Config {
	return Config{Field: FieldDate, Order: OrderDesc}
}

// Normalize validates a raw field/order pair. Empty values take the default
// silently; unrecognized values also take the default but are logged, since
// they indicate a typo in somebody's metadata.
func Normalize(field, order string) Config {
	cfg := Default()

	switch strings.ToLower(strings.TrimSpace(field)) {
	case "":
	case FieldDate:
		cfg.Field = FieldDate
	case FieldTitle:
		cfg.Field = FieldTitle
	case FieldFilename:
		cfg.Field = FieldFilename
	default:
		slog.Warn("unrecognized sort field, using default", logfields.Field(field))
	}

	switch strings.ToLower(strings.TrimSpace(order)) {
	case "":
	case OrderAsc:
		cfg.Order = OrderAsc
	case OrderDesc:
		cfg.Order = OrderDesc
	default:
		slog.Warn("unrecognized sort order, using default", logfields.Order(order))
	}

	return cfg
}

// FromMetadata derives the sort directive a listing page declared.
func FromMetadata(meta frontmatter.Metadata) Config {
	return Normalize(meta.SortBy, meta.SortOrder)
}

// Sort orders docs in place, stably, under cfg.
//
// Date sorting puts documents with a parseable date ahead of those without,
// in both directions; within the dated group the dates compare under the
// requested direction, within the undated group file names compare ascending.
// Title sorting compares resolved titles case-insensitively; filename sorting
// compares source base names. File name is always the tie-break.
func Sort(docs []*document.Document, cfg Config) {
	desc := cfg.Order == OrderDesc

	sort.SliceStable(docs, func(i, j int) bool {
		a, b := docs[i], docs[j]

		switch cfg.Field {
		case FieldTitle:
			return directed(strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title)), a, b, desc)
		case FieldFilename:
			return directed(strings.Compare(fileName(a), fileName(b)), a, b, desc)
		}

		da, okA := ParseDate(a.Metadata.Date)
		db, okB := ParseDate(b.Metadata.Date)
		if okA != okB {
			return okA
		}
		if !okA || da.Equal(db) {
			return fileName(a) < fileName(b)
		}
		if desc {
			return da.After(db)
		}
		return da.Before(db)
	})
}

func directed(cmp int, a, b *document.Document, desc bool) bool {
	if cmp == 0 {
		return fileName(a) < fileName(b)
	}
	if desc {
		return cmp > 0
	}
	return cmp < 0
}

func fileName(d *document.Document) string {
	return path.Base(d.SourcePath)
}
