// Package prometheus records fonnte telemetry on a prometheus registry.
package prometheus

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"github.com/goliatone/go-fonnte/core"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// LabelNames is the fixed label set of every vector; tags outside it are
// dropped and missing ones are recorded empty.
var LabelNames = []string{"operation", "status", "error_kind", "route"}

// DefaultDurationBuckets covers gateway round trips in milliseconds.
var DefaultDurationBuckets = []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000, 30000}

type Option func(*Recorder)

func WithBuckets(buckets []float64) Option {
	return func(r *Recorder) {
		if len(buckets) > 0 {
			r.buckets = append([]float64(nil), buckets...)
		}
	}
}

func WithConstLabels(labels map[string]string) Option {
	return func(r *Recorder) {
		r.constLabels = prom.Labels{}
		for key, value := range labels {
			r.constLabels[key] = value
		}
	}
}

// Recorder implements core.MetricsRecorder. Vectors are created lazily per
// metric name and registered once; use one Recorder per registry.
type Recorder struct {
	factory     promauto.Factory
	buckets     []float64
	constLabels prom.Labels

	mu         sync.Mutex
	counters   map[string]*prom.CounterVec
	histograms map[string]*prom.HistogramVec
}

func NewRecorder(reg prom.Registerer, opts ...Option) *Recorder {
	if reg == nil {
		reg = prom.DefaultRegisterer
	}
	r := &Recorder{
		factory:    promauto.With(reg),
		buckets:    DefaultDurationBuckets,
		counters:   map[string]*prom.CounterVec{},
		histograms: map[string]*prom.HistogramVec{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Recorder) IncCounter(_ context.Context, name string, value int64, tags map[string]string) {
	if r == nil || value < 0 {
		return
	}
	metric := MetricName(name)
	if metric == "" {
		return
	}
	r.counter(metric).With(labels(tags)).Add(float64(value))
}

func (r *Recorder) ObserveHistogram(_ context.Context, name string, value float64, tags map[string]string) {
	if r == nil {
		return
	}
	metric := MetricName(name)
	if metric == "" {
		return
	}
	r.histogram(metric).With(labels(tags)).Observe(value)
}

func (r *Recorder) counter(name string) *prom.CounterVec {
	r.mu.Lock()
	defer r.mu.Unlock()
	if vec, ok := r.counters[name]; ok {
		return vec
	}
	vec := r.factory.NewCounterVec(prom.CounterOpts{
		Name:        name,
		Help:        "Count of " + strings.ReplaceAll(name, "_", " ") + ".",
		ConstLabels: r.constLabels,
	}, LabelNames)
	r.counters[name] = vec
	return vec
}

func (r *Recorder) histogram(name string) *prom.HistogramVec {
	r.mu.Lock()
	defer r.mu.Unlock()
	if vec, ok := r.histograms[name]; ok {
		return vec
	}
	vec := r.factory.NewHistogramVec(prom.HistogramOpts{
		Name:        name,
		Help:        "Distribution of " + strings.ReplaceAll(name, "_", " ") + ".",
		Buckets:     r.buckets,
		ConstLabels: r.constLabels,
	}, LabelNames)
	r.histograms[name] = vec
	return vec
}

// HandlerFor serves the gatherer in the prometheus exposition format.
func HandlerFor(gatherer prom.Gatherer) http.Handler {
	if gatherer == nil {
		gatherer = prom.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// MetricName maps dotted telemetry names onto the prometheus charset:
// "fonnte.send_message.total" becomes "fonnte_send_message_total".
func MetricName(name string) string {
	name = strings.TrimSpace(name)
	var b strings.Builder
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_', r == ':':
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			if i == 0 {
				b.WriteRune('_')
			}
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

func labels(tags map[string]string) prom.Labels {
	out := make(prom.Labels, len(LabelNames))
	for _, name := range LabelNames {
		out[name] = tags[name]
	}
	return out
}

var _ core.MetricsRecorder = (*Recorder)(nil)
