package generator

import "github.com/prometheus/client_golang/prometheus"

// Metrics tracks generation runs.
type Metrics struct {
	runs      *prometheus.CounterVec
	duration  prometheus.Histogram
	classes   prometheus.Gauge
	links     prometheus.Gauge
	published prometheus.Counter
}

// NewMetrics creates the generator metrics and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hydradoc",
			Name:      "generations_total",
			Help:      "Documentation generation runs by format and result.",
		}, []string{"format", "result"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "hydradoc",
			Name:      "generation_duration_seconds",
			Help:      "Time spent building and rendering the documentation.",
			Buckets:   prometheus.DefBuckets,
		}),
		classes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "hydradoc",
			Name:      "supported_classes",
			Help:      "Supported classes in the last generated documentation.",
		}),
		links: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "hydradoc",
			Name:      "entrypoint_links",
			Help:      "Entry point links in the last generated documentation.",
		}),
		published: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hydradoc",
			Name:      "published_total",
			Help:      "Documents published to NATS KV.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.runs, m.duration, m.classes, m.links, m.published)
	}
	return m
}
