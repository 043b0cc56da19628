package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/pagemill/pagemill/internal/breadcrumb"
	"github.com/pagemill/pagemill/internal/config"
	"github.com/pagemill/pagemill/internal/document"
	"github.com/pagemill/pagemill/internal/logfields"
	"github.com/pagemill/pagemill/internal/metrics"
	"github.com/pagemill/pagemill/internal/observability"
	"github.com/pagemill/pagemill/internal/pipeline"
	"github.com/pagemill/pagemill/internal/plugin"
	"github.com/pagemill/pagemill/internal/server"
	"github.com/pagemill/pagemill/internal/site"
	"github.com/pagemill/pagemill/internal/source"
	"github.com/pagemill/pagemill/internal/templates"
)

// generator holds everything one build needs, so serve mode can rebuild
// without re-reading configuration.
type generator struct {
	cfg      *config.Config
	builder  *document.Builder
	engine   *templates.Engine
	recorder metrics.Recorder
	breadcfg breadcrumb.Config
}

func newGenerator(cfg *config.Config, recorder metrics.Recorder) (*generator, error) {
	engine, err := templates.New(cfg.Content.TemplateDir)
	if err != nil {
		return nil, err
	}
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &generator{
		cfg:      cfg,
		builder:  document.NewBuilder(plugin.NewRegistry()),
		engine:   engine,
		recorder: recorder,
		breadcfg: cfg.BreadcrumbConfig(),
	}, nil
}

// contentRoot resolves where content comes from: a fresh Git clone when a
// source repository is configured, the local input directory otherwise.
func (g *generator) contentRoot(ctx context.Context) (string, error) {
	if g.cfg.Source.GitURL == "" {
		return g.cfg.Content.InputDir, nil
	}
	dest, err := os.MkdirTemp("", "pagemill-content-*")
	if err != nil {
		return "", err
	}
	return source.FetchGit(ctx, source.GitSource{
		URL:    g.cfg.Source.GitURL,
		Branch: g.cfg.Source.Branch,
	}, dest)
}

// generate runs one full build: ingest, assemble, render, write.
func (g *generator) generate(ctx context.Context) error {
	root, err := g.contentRoot(ctx)
	if err != nil {
		return err
	}

	result, err := pipeline.Run(ctx, os.DirFS(root), pipeline.Options{
		Builder:     g.builder,
		Breadcrumbs: g.breadcfg,
		Workers:     g.cfg.Content.Workers,
		Metrics:     g.recorder,
	})
	if err != nil {
		return err
	}

	for _, problem := range result.Problems {
		observability.WarnContext(ctx, problem.Message, logfields.Error(problem.Cause))
	}

	writer := site.NewWriter(g.cfg.Content.OutputDir, g.engine, templates.SiteData{
		Title:       g.cfg.Site.Title,
		Description: g.cfg.Site.Description,
		BaseURL:     g.cfg.Site.BaseURL,
	})
	if g.cfg.Content.Clean {
		if err := writer.Clean(); err != nil {
			return err
		}
	}
	return writer.WriteAll(ctx, result)
}

func runBuild(cfg *config.Config) error {
	gen, err := newGenerator(cfg, nil)
	if err != nil {
		return err
	}
	return gen.generate(signalContext())
}

func runServe(cfg *config.Config) error {
	ctx := signalContext()

	var recorder metrics.Recorder
	opts := server.Options{
		Addr:      cfg.Serve.Addr,
		OutputDir: cfg.Content.OutputDir,
		Interval:  cfg.RebuildInterval(),
	}
	if cfg.Serve.Metrics {
		registry := prom.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(registry)
		opts.Metrics = metrics.HTTPHandler(registry)
	}

	gen, err := newGenerator(cfg, recorder)
	if err != nil {
		return err
	}
	if err := gen.generate(ctx); err != nil {
		return err
	}

	if cfg.WatchEnabled() && cfg.Source.GitURL == "" {
		opts.ContentDir = cfg.Content.InputDir
	}
	opts.Rebuild = gen.generate

	return server.New(opts).Run(ctx)
}

func signalContext() context.Context {
	ctx, _ := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	return ctx
}
