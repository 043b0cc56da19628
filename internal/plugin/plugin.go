// Package plugin lets non-Markdown source formats participate in the
// pipeline. A ContentParser turns a raw source file directly into HTML plus
// whatever metadata the format carries; the pipeline then runs the same
// post-processing and safety checks it applies to native Markdown.
package plugin

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/pagemill/pagemill/internal/frontmatter"
)

// ParsedDocument is what a ContentParser produces from one source file.
// Title and Metadata fields may be zero; the document assembler falls back to
// its usual resolution rules for anything a parser leaves blank.
type ParsedDocument struct {
	Title    string
	Metadata frontmatter.Metadata
	HTML     string
}

// ContentParser converts one source file of a registered format. The path is
// relative to the content root and is provided for diagnostics and
// path-derived fallbacks only.
type ContentParser interface {
	Parse(raw []byte, path string) (ParsedDocument, error)
}

// Registry maps file extensions to content parsers. The zero value is not
// usable; construct with NewRegistry. Safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	parsers map[string]ContentParser
}

func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]ContentParser)}
}

// Register binds a parser to a file extension ("rst", ".rst" and "RST" all
// name the same format). Registering an extension twice is an error so that
// two plugins cannot silently fight over a format.
func (r *Registry) Register(ext string, p ContentParser) error {
	key := normalizeExt(ext)
	if key == "" {
		return fmt.Errorf("register parser: empty extension")
	}
	if p == nil {
		return fmt.Errorf("register parser for %q: nil parser", key)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.parsers[key]; exists {
		return fmt.Errorf("register parser for %q: extension already registered", key)
	}
	r.parsers[key] = p
	return nil
}

// Lookup returns the parser registered for the path's extension.
func (r *Registry) Lookup(path string) (ContentParser, bool) {
	key := normalizeExt(filepath.Ext(path))
	if key == "" {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.parsers[key]
	return p, ok
}

// Extensions returns the registered extensions in sorted order, without the
// leading dot.
func (r *Registry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	exts := make([]string, 0, len(r.parsers))
	for ext := range r.parsers {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}
