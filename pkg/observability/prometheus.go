package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PromHooks records pipeline and cache events as Prometheus metrics.
type PromHooks struct {
	registry *prometheus.Registry

	layouts        *prometheus.CounterVec
	layoutDuration prometheus.Histogram
	stageDuration  *prometheus.HistogramVec
	stageErrors    *prometheus.CounterVec
	lastNodes      prometheus.Gauge
	cacheEvents    *prometheus.CounterVec
	cacheBytes     prometheus.Counter
}

// NewPromHooks registers the flowlayout metrics on reg.
func NewPromHooks(reg *prometheus.Registry) *PromHooks {
	f := promauto.With(reg)
	return &PromHooks{
		registry: reg,
		layouts: f.NewCounterVec(prometheus.CounterOpts{
			Name: "flowlayout_layouts_total",
			Help: "Layout runs by result",
		}, []string{"result"}),
		layoutDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "flowlayout_layout_duration_seconds",
			Help:    "Wall time of a full layout run",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1, 10},
		}),
		stageDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "flowlayout_stage_duration_seconds",
			Help:    "Wall time per pipeline stage",
			Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1},
		}, []string{"stage"}),
		stageErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name: "flowlayout_stage_errors_total",
			Help: "Failed pipeline stages",
		}, []string{"stage"}),
		lastNodes: f.NewGauge(prometheus.GaugeOpts{
			Name: "flowlayout_last_layout_nodes",
			Help: "Node count of the most recent layout",
		}),
		cacheEvents: f.NewCounterVec(prometheus.CounterOpts{
			Name: "flowlayout_cache_events_total",
			Help: "Layout cache lookups and writes",
		}, []string{"key_type", "event"}),
		cacheBytes: f.NewCounter(prometheus.CounterOpts{
			Name: "flowlayout_cache_written_bytes_total",
			Help: "Bytes written to the layout cache",
		}),
	}
}

// Registry returns the registry the metrics live in.
func (h *PromHooks) Registry() *prometheus.Registry { return h.registry }

// WriteToTextfile writes all metrics in the text exposition format, for
// pick-up by the node exporter textfile collector.
func (h *PromHooks) WriteToTextfile(path string) error {
	return prometheus.WriteToTextfile(path, h.registry)
}

func (h *PromHooks) OnLayoutStart(_ context.Context, _ string, nodeCount int) {
	h.lastNodes.Set(float64(nodeCount))
}

func (h *PromHooks) OnStageComplete(_ context.Context, stage string, d time.Duration, err error) {
	h.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
	if err != nil {
		h.stageErrors.WithLabelValues(stage).Inc()
	}
}

func (h *PromHooks) OnLayoutComplete(_ context.Context, _ string, d time.Duration, err error) {
	h.layoutDuration.Observe(d.Seconds())
	if err != nil {
		h.layouts.WithLabelValues("error").Inc()
		return
	}
	h.layouts.WithLabelValues("ok").Inc()
}

func (h *PromHooks) OnCacheHit(_ context.Context, keyType string) {
	h.cacheEvents.WithLabelValues(keyType, "hit").Inc()
}

func (h *PromHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.cacheEvents.WithLabelValues(keyType, "miss").Inc()
}

func (h *PromHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.cacheEvents.WithLabelValues(keyType, "set").Inc()
	h.cacheBytes.Add(float64(size))
}

var (
	_ PipelineHooks = (*PromHooks)(nil)
	_ CacheHooks    = (*PromHooks)(nil)
)
