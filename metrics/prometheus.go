// Package metrics provides a Prometheus backed recorder satisfying the
// metrics interface the solr client expects from UseMetrics.
package metrics

import (
	"context"
	"errors"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder registers and observes histograms on a Prometheus registerer.
// The zero value is not usable, construct it with New.
type Recorder struct {
	registerer prometheus.Registerer

	mu         sync.Mutex
	histograms map[string]*histogram
}

// histogram holds the declared options until the first observation, when the
// label names become known and the vec can be registered.
type histogram struct {
	desc    string
	buckets []float64
	vec     *prometheus.HistogramVec
}

// New returns a Recorder registering on reg, or on the default registerer
// when reg is nil.
func New(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	return &Recorder{
		registerer: reg,
		histograms: make(map[string]*histogram),
	}
}

// NewHistogram declares a histogram. Declaring the same name twice keeps the
// first declaration.
func (r *Recorder) NewHistogram(name, desc string, buckets ...float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.histograms[name]; ok {
		return
	}

	r.histograms[name] = &histogram{desc: desc, buckets: buckets}
}

// RecordHistogram observes value on the named histogram. labels are
// alternating name/value pairs, e.g. "type", "Search". Undeclared names are
// registered on the fly with default buckets.
func (r *Recorder) RecordHistogram(_ context.Context, name string, value float64, labels ...string) {
	names, values := splitLabels(labels)

	r.mu.Lock()

	h, ok := r.histograms[name]
	if !ok {
		h = &histogram{buckets: prometheus.DefBuckets}
		r.histograms[name] = h
	}

	if h.vec == nil {
		h.vec = r.register(name, h, names)
	}

	r.mu.Unlock()

	h.vec.WithLabelValues(values...).Observe(value)
}

func (r *Recorder) register(name string, h *histogram, labelNames []string) *prometheus.HistogramVec {
	vec := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    name,
		Help:    h.desc,
		Buckets: h.buckets,
	}, labelNames)

	if err := r.registerer.Register(vec); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing
			}
		}
	}

	return vec
}

func splitLabels(labels []string) (names, values []string) {
	names = make([]string, 0, len(labels)/2)
	values = make([]string, 0, len(labels)/2)

	for i := 0; i+1 < len(labels); i += 2 {
		names = append(names, labels[i])
		values = append(values, labels[i+1])
	}

	return names, values
}
