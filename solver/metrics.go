package solver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/crillab/gophermdd/mdd"
)

const metricsNamespace = "gophermdd"

// Metrics exposes the progress of searches to Prometheus.
// A single Metrics can be shared by several solvers.
type Metrics struct {
	compilations *prometheus.CounterVec
	pruned       prometheus.Counter
	cutsetStates prometheus.Counter
	improvements prometheus.Counter
	incumbent    prometheus.Gauge
	frontier     prometheus.Gauge
	width        prometheus.Histogram
}

// NewMetrics creates the search metrics and registers them on reg.
// It panics if they are already registered there.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		compilations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "mdd",
			Name:      "compilations_total",
			Help:      "Number of decision diagrams compiled, by kind.",
		}, []string{"kind"}),
		pruned: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "search",
			Name:      "pruned_states_total",
			Help:      "Number of frontier states discarded because they could not improve the incumbent.",
		}),
		cutsetStates: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "search",
			Name:      "cutset_states_total",
			Help:      "Number of exact cutset states pushed to the frontier.",
		}),
		improvements: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "search",
			Name:      "improvements_total",
			Help:      "Number of times the incumbent was improved.",
		}),
		incumbent: f.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: "search",
			Name:      "incumbent_value",
			Help:      "Value of the best solution found so far.",
		}),
		frontier: f.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: "search",
			Name:      "frontier_size",
			Help:      "Number of states awaiting exploration.",
		}),
		width: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "mdd",
			Name:      "layer_width",
			Help:      "Width of the widest layer of each compilation, before truncation.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}),
	}
}

func (m *Metrics) observeCompilation(d *mdd.Diagram) {
	if m == nil {
		return
	}
	m.compilations.WithLabelValues(d.Kind.String()).Inc()
	m.width.Observe(float64(d.Stats.MaxLayerWidth))
}

func (m *Metrics) observePruned() {
	if m == nil {
		return
	}
	m.pruned.Inc()
}

func (m *Metrics) observeCutset(n int) {
	if m == nil {
		return
	}
	m.cutsetStates.Add(float64(n))
}

func (m *Metrics) observeIncumbent(value float64) {
	if m == nil {
		return
	}
	m.improvements.Inc()
	m.incumbent.Set(value)
}

func (m *Metrics) observeFrontier(size int) {
	if m == nil {
		return
	}
	m.frontier.Set(float64(size))
}
