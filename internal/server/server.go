// Package server runs the development server: a file server over the output
// directory plus a content watcher that rebuilds the site when sources
// change. Optionally the site is also rebuilt on a fixed schedule, which
// covers content sources the watcher cannot see (templates pulled from
// elsewhere, clock-dependent content).
package server

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"
	"golang.org/x/sync/errgroup"

	"github.com/pagemill/pagemill/internal/logfields"
	"github.com/pagemill/pagemill/internal/observability"
)

// RebuildFunc regenerates the site. It must be safe to call repeatedly; the
// server serializes calls itself.
type RebuildFunc func(ctx context.Context) error

// Options configures the dev server.
type Options struct {
	Addr       string
	OutputDir  string // served tree
	ContentDir string // watched tree, empty disables watching
	Rebuild    RebuildFunc
	Debounce   time.Duration // quiet period after a change, default 300ms
	Interval   time.Duration // periodic rebuild, zero disables
	Metrics    http.Handler  // mounted at /metrics when non-nil
}

// Server is the running dev server. Construct with New.
type Server struct {
	opts    Options
	rebuild chan struct{}
}

func New(opts Options) *Server {
	if opts.Debounce <= 0 {
		opts.Debounce = 300 * time.Millisecond
	}
	return &Server{opts: opts, rebuild: make(chan struct{}, 1)}
}

// Run serves until the context is cancelled. The HTTP listener, the watcher
// and the rebuild loop run concurrently; the first hard failure stops all of
// them.
func (s *Server) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	httpServer := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g.Go(func() error {
		observability.InfoContext(ctx, "dev server listening", logfields.Addr(s.opts.Addr))
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	g.Go(func() error { return s.rebuildLoop(ctx) })

	if s.opts.ContentDir != "" {
		g.Go(func() error { return s.watch(ctx) })
	}
	if s.opts.Interval > 0 {
		g.Go(func() error { return s.schedule(ctx) })
	}

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Handler returns the HTTP handler the server mounts: the output file server
// and, when configured, the metrics endpoint.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(s.opts.OutputDir)))
	if s.opts.Metrics != nil {
		mux.Handle("/metrics", s.opts.Metrics)
	}
	return mux
}

// requestRebuild coalesces triggers: one pending rebuild at a time is enough.
func (s *Server) requestRebuild() {
	select {
	case s.rebuild <- struct{}{}:
	default:
	}
}

// rebuildLoop serializes rebuilds. A failed rebuild keeps the previous output
// on disk and the server running; the next change tries again.
func (s *Server) rebuildLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.rebuild:
			start := time.Now()
			if err := s.opts.Rebuild(ctx); err != nil {
				observability.ErrorContext(ctx, "rebuild failed", logfields.Error(err))
				continue
			}
			observability.InfoContext(ctx, "site rebuilt", logfields.DurationMS(time.Since(start)))
		}
	}
}

// watch monitors the content tree and requests a rebuild after a quiet
// period. Directories created while watching are added to the watch set.
func (s *Server) watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := addRecursive(watcher, s.opts.ContentDir); err != nil {
		return err
	}

	debounce := time.NewTimer(s.opts.Debounce)
	if !debounce.Stop() {
		<-debounce.C
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = addRecursive(watcher, event.Name)
				}
			}
			observability.DebugContext(ctx, "content change detected", logfields.Path(event.Name))
			debounce.Reset(s.opts.Debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			observability.WarnContext(ctx, "watcher error", logfields.Error(err))
		case <-debounce.C:
			s.requestRebuild()
		}
	}
}

// schedule triggers a rebuild on a fixed interval.
func (s *Server) schedule(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return err
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(s.opts.Interval),
		gocron.NewTask(s.requestRebuild),
	)
	if err != nil {
		return err
	}

	scheduler.Start()
	<-ctx.Done()
	if err := scheduler.Shutdown(); err != nil {
		observability.WarnContext(ctx, "scheduler shutdown", logfields.Error(err))
	}
	return ctx.Err()
}

func addRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}
