// Package pipeline drives one generation run: scan the content tree, ingest
// every document in parallel, and only after the whole collection is
// assembled derive the cross-document views (listings, breadcrumbs).
//
// The barrier between ingestion and assembly is the point of the design:
// listings and trails read sibling and ancestor documents, so no page is
// assembled until every document has been ingested.
package pipeline

import (
	"context"
	"io/fs"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/pagemill/pagemill/internal/breadcrumb"
	"github.com/pagemill/pagemill/internal/document"
	"github.com/pagemill/pagemill/internal/errors"
	"github.com/pagemill/pagemill/internal/listing"
	"github.com/pagemill/pagemill/internal/logfields"
	"github.com/pagemill/pagemill/internal/metrics"
	"github.com/pagemill/pagemill/internal/observability"
)

const (
	stageScan     = "scan"
	stageIngest   = "ingest"
	stageAssemble = "assemble"
)

// Options configures a run. Builder is required; everything else has a
// usable zero value.
type Options struct {
	Builder     *document.Builder
	Breadcrumbs breadcrumb.Config
	Workers     int // parallel ingest workers, values below 1 mean 1
	Metrics     metrics.Recorder
}

// Page is one output page: the document plus the views derived from the full
// collection.
type Page struct {
	*document.Document
	Listing     *listing.View // non-nil only on listing pages
	Breadcrumbs breadcrumb.Trail
}

// Result is everything one run produced.
type Result struct {
	RunID      string
	Collection document.Collection
	Pages      []*Page // sorted by SourcePath
	Problems   []*errors.PagemillError
}

// Warnings returns the recoverable problems that still produced a document.
func (r *Result) Warnings() []*errors.PagemillError {
	return r.bySeverity(errors.SeverityWarning)
}

// Failures returns the problems that cost a document.
func (r *Result) Failures() []*errors.PagemillError {
	return r.bySeverity(errors.SeverityError)
}

func (r *Result) bySeverity(sev errors.ErrorSeverity) []*errors.PagemillError {
	var out []*errors.PagemillError
	for _, p := range r.Problems {
		if p.Severity == sev {
			out = append(out, p)
		}
	}
	return out
}

// Run executes one generation over the content tree rooted at fsys. Document
// failures are recoverable: the failing document is dropped, recorded in
// Result.Problems and the run continues. Run itself fails only when the tree
// cannot be scanned, the context is cancelled, or not a single document
// survives.
func Run(ctx context.Context, fsys fs.FS, opts Options) (*Result, error) {
	recorder := opts.Metrics
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}

	runID := uuid.NewString()
	ctx = observability.WithRunID(ctx, runID)
	runStart := time.Now()

	paths, err := scan(ctx, fsys, opts.Builder, recorder)
	if err != nil {
		return nil, err
	}

	result := &Result{RunID: runID, Collection: document.Collection{}}
	if err := ingest(ctx, fsys, paths, opts, result, recorder); err != nil {
		return nil, err
	}
	if len(result.Collection) == 0 {
		return nil, errors.NoDocumentsProduced(".")
	}

	assemble(ctx, opts, result, recorder)

	recorder.ObserveRunDuration(time.Since(runStart))
	observability.InfoContext(ctx, "generation run complete",
		logfields.Count(len(result.Pages)),
		logfields.DurationMS(time.Since(runStart)))
	return result, nil
}

// scan walks the tree and collects every source path the builder supports.
// Dotfiles and underscore-prefixed names are skipped at any depth.
func scan(ctx context.Context, fsys fs.FS, builder *document.Builder, recorder metrics.Recorder) ([]string, error) {
	ctx = observability.WithStage(ctx, stageScan)
	start := time.Now()

	var paths []string
	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if hidden(d.Name()) && path != "." {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.IsDir() && builder.Supports(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.SourceUnreadable(".", err)
	}

	recorder.ObserveStageDuration(stageScan, time.Since(start))
	observability.DebugContext(ctx, "content tree scanned", logfields.Count(len(paths)))
	return paths, nil
}

func hidden(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}

// ingest reads and assembles every scanned document in parallel, then waits
// for all of them. Per-document problems are collected, not returned.
func ingest(ctx context.Context, fsys fs.FS, paths []string, opts Options, result *Result, recorder metrics.Recorder) error {
	ctx = observability.WithStage(ctx, stageIngest)
	start := time.Now()

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, path := range paths {
		path := path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			docCtx := observability.WithDocument(gctx, path)

			doc, buildErr := buildOne(fsys, path, opts.Builder)

			mu.Lock()
			defer mu.Unlock()
			if buildErr != nil {
				result.Problems = append(result.Problems, buildErr)
			}
			switch {
			case doc == nil:
				recorder.IncDocumentResult(metrics.ResultFailed)
				observability.ErrorContext(docCtx, "document dropped", logfields.Error(buildErr))
			case buildErr != nil:
				recorder.IncDocumentResult(metrics.ResultWarning)
				observability.WarnContext(docCtx, buildErr.Message, logfields.Error(buildErr.Cause))
				result.Collection.Add(doc)
			default:
				recorder.IncDocumentResult(metrics.ResultSuccess)
				result.Collection.Add(doc)
			}
			return nil
		})
	}

	// The barrier: nothing downstream runs until every document is in.
	if err := g.Wait(); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, errors.SeverityFatal, "ingest interrupted")
	}

	recorder.ObserveStageDuration(stageIngest, time.Since(start))
	return nil
}

func buildOne(fsys fs.FS, path string, builder *document.Builder) (*document.Document, *errors.PagemillError) {
	raw, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, errors.SourceUnreadable(path, err)
	}

	doc, err := builder.Build(path, raw)
	if err != nil {
		if pmErr, ok := err.(*errors.PagemillError); ok {
			return doc, pmErr
		}
		return doc, errors.ContentParseFailed(path, err)
	}
	return doc, nil
}

// assemble derives the per-page views from the completed collection.
func assemble(ctx context.Context, opts Options, result *Result, recorder metrics.Recorder) {
	ctx = observability.WithStage(ctx, stageAssemble)
	start := time.Now()

	listings, breadcrumbs := 0, 0
	for _, path := range result.Collection.Paths() {
		doc := result.Collection[path]
		page := &Page{Document: doc}

		if doc.IsListing() {
			page.Listing = listing.Build(result.Collection, doc.Dir())
			listings++
		}
		if trail := breadcrumb.Build(result.Collection, doc, opts.Breadcrumbs); trail != nil {
			page.Breadcrumbs = trail
			breadcrumbs++
		}
		result.Pages = append(result.Pages, page)
	}

	sort.Slice(result.Pages, func(i, j int) bool {
		return result.Pages[i].SourcePath < result.Pages[j].SourcePath
	})

	recorder.IncListingsBuilt(listings)
	recorder.IncBreadcrumbsResolved(breadcrumbs)
	recorder.ObserveStageDuration(stageAssemble, time.Since(start))
	observability.DebugContext(ctx, "views assembled", logfields.Count(listings))
}
