// Package templates renders assembled pages to HTML documents. A small set
// of templates is embedded in the binary so a site builds with no template
// directory at all; a user template directory overrides by name.
package templates

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/pagemill/pagemill/internal/breadcrumb"
	"github.com/pagemill/pagemill/internal/listing"
	"github.com/pagemill/pagemill/internal/logfields"
)

//go:embed defaults/*.tmpl
var defaultTemplates embed.FS

// DefaultPage is the template every page renders with unless its metadata
// names another.
const DefaultPage = "page"

// SiteData is the site-wide template context.
type SiteData struct {
	Title       string
	Description string
	BaseURL     string
}

// PageData is the per-page template context.
type PageData struct {
	Site        SiteData
	Title       string
	Content     template.HTML // already converted and safety-checked
	Excerpt     string
	Date        string
	Tags        []string
	URL         string
	Breadcrumbs breadcrumb.Trail
	Listing     *listing.View
}

// Engine holds the parsed template set.
type Engine struct {
	set *template.Template
}

// The embedded defaults are parsed once per process and cloned per engine,
// so user overrides never mutate the shared set.
var (
	defaultsOnce sync.Once
	defaultsSet  *template.Template
	defaultsErr  error
)

func defaults() (*template.Template, error) {
	defaultsOnce.Do(func() {
		defaultsSet, defaultsErr = template.New("pagemill").ParseFS(defaultTemplates, "defaults/*.tmpl")
	})
	return defaultsSet, defaultsErr
}

// New clones the embedded templates and then, when overrideDir is non-empty,
// parses every *.tmpl under it. A user template with a name the defaults also
// define replaces the default.
func New(overrideDir string) (*Engine, error) {
	base, err := defaults()
	if err != nil {
		return nil, fmt.Errorf("parse embedded templates: %w", err)
	}
	set, err := base.Clone()
	if err != nil {
		return nil, fmt.Errorf("clone template set: %w", err)
	}

	if overrideDir != "" {
		if _, err := os.Stat(overrideDir); err != nil {
			return nil, fmt.Errorf("template directory: %w", err)
		}
		pattern := filepath.Join(overrideDir, "*.tmpl")
		if matches, _ := filepath.Glob(pattern); len(matches) > 0 {
			if set, err = set.ParseGlob(pattern); err != nil {
				return nil, fmt.Errorf("parse user templates: %w", err)
			}
		}
	}

	return &Engine{set: set}, nil
}

// Render writes one page using the named template. An empty or unknown name
// falls back to the default page template; unknown is worth a warning since
// it means a page_template value points nowhere.
func (e *Engine) Render(w io.Writer, name string, data PageData) error {
	if name == "" {
		name = DefaultPage
	}
	if e.set.Lookup(name) == nil {
		slog.Warn("unknown page template, using default", logfields.Title(name))
		name = DefaultPage
	}
	if err := e.set.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("render template %q: %w", name, err)
	}
	return nil
}

// Names returns the defined template names, for diagnostics.
func (e *Engine) Names() []string {
	var names []string
	for _, t := range e.set.Templates() {
		if t.Name() != "" {
			names = append(names, t.Name())
		}
	}
	return names
}
