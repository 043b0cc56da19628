// Package site writes rendered pages to the output tree using pretty URLs:
// every page becomes a directory with an index.html, so links need no file
// extension and a plain file server serves the site as-is.
package site

import (
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/pagemill/pagemill/internal/errors"
	"github.com/pagemill/pagemill/internal/logfields"
	"github.com/pagemill/pagemill/internal/observability"
	"github.com/pagemill/pagemill/internal/pipeline"
	"github.com/pagemill/pagemill/internal/templates"
)

// Writer renders pages through the template engine and writes them under the
// output directory.
type Writer struct {
	outputDir string
	engine    *templates.Engine
	site      templates.SiteData
}

func NewWriter(outputDir string, engine *templates.Engine, site templates.SiteData) *Writer {
	return &Writer{outputDir: outputDir, engine: engine, site: site}
}

// Clean empties the output directory. Missing directories are fine.
func (w *Writer) Clean() error {
	if err := os.RemoveAll(w.outputDir); err != nil {
		return fmt.Errorf("clean output directory: %w", err)
	}
	return nil
}

// WriteAll renders and writes every page of a run.
func (w *Writer) WriteAll(ctx context.Context, result *pipeline.Result) error {
	for _, page := range result.Pages {
		path, err := w.WritePage(page)
		if err != nil {
			return err
		}
		observability.DebugContext(ctx, "page written", logfields.Path(path))
	}
	return nil
}

// WritePage renders one page and writes it to its pretty-URL location,
// returning the file path written.
func (w *Writer) WritePage(page *pipeline.Page) (string, error) {
	outPath, err := OutputPath(w.outputDir, page.URL())
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityFatal, "invalid output path").
			WithContext("path", page.SourcePath)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	file, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("create output file: %w", err)
	}
	defer file.Close()

	data := templates.PageData{
		Site:        w.site,
		Title:       page.Title,
		Content:     template.HTML(page.Body),
		Excerpt:     page.Excerpt,
		Date:        page.Metadata.Date,
		Tags:        page.Metadata.Tags,
		URL:         page.URL(),
		Breadcrumbs: page.Breadcrumbs,
		Listing:     page.Listing,
	}
	if err := w.engine.Render(file, page.Metadata.PageTemplate, data); err != nil {
		return "", err
	}
	return outPath, nil
}

// OutputPath maps a page URL to its file under outputDir. URLs are produced
// by the document model and always slash-terminated; the traversal check
// guards against anything else sneaking in.
func OutputPath(outputDir, url string) (string, error) {
	rel := strings.TrimPrefix(url, "/")
	full := filepath.Join(outputDir, filepath.FromSlash(rel), "index.html")

	check, err := filepath.Rel(outputDir, full)
	if err != nil || check == ".." || strings.HasPrefix(check, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("output path escapes output directory: %s", url)
	}
	return full, nil
}
