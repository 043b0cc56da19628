package metrics

import (
	"net/http"
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once          sync.Once
	runDuration   prom.Histogram
	stageDuration *prom.HistogramVec
	docResults    *prom.CounterVec
	listings      prom.Counter
	breadcrumbs   prom.Counter
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.runDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "pagemill",
			Name:      "run_duration_seconds",
			Help:      "Total generation run duration",
			Buckets:   prom.DefBuckets,
		})
		pr.stageDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "pagemill",
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual generation stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"})
		pr.docResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "pagemill",
			Name:      "document_results_total",
			Help:      "Per-document ingestion results by outcome",
		}, []string{"result"})
		pr.listings = prom.NewCounter(prom.CounterOpts{
			Namespace: "pagemill",
			Name:      "listings_built_total",
			Help:      "Listing views built across runs",
		})
		pr.breadcrumbs = prom.NewCounter(prom.CounterOpts{
			Namespace: "pagemill",
			Name:      "breadcrumbs_resolved_total",
			Help:      "Breadcrumb trails resolved across runs",
		})
		reg.MustRegister(pr.runDuration, pr.stageDuration, pr.docResults, pr.listings, pr.breadcrumbs)
	})
	return pr
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	if p == nil || p.runDuration == nil {
		return
	}
	p.runDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil || p.stageDuration == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncDocumentResult(result ResultLabel) {
	if p == nil || p.docResults == nil {
		return
	}
	p.docResults.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) IncListingsBuilt(n int) {
	if p == nil || p.listings == nil {
		return
	}
	p.listings.Add(float64(n))
}

func (p *PrometheusRecorder) IncBreadcrumbsResolved(n int) {
	if p == nil || p.breadcrumbs == nil {
		return
	}
	p.breadcrumbs.Add(float64(n))
}

// HTTPHandler returns an http.Handler that serves Prometheus metrics for the provided registry.
func HTTPHandler(reg *prom.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
