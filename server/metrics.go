package server

import (
	"time"

	"github.com/poiesic/courserec/recommend"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records recommendation activity. It implements recommend.Monitor
// and is safe for concurrent use.
type Metrics struct {
	queries         *prometheus.CounterVec
	exactMatches    prometheus.Counter
	containmentHits prometheus.Histogram
	errors          *prometheus.CounterVec
	latency         prometheus.Histogram
}

var _ recommend.Monitor = (*Metrics)(nil)

// NewMetrics registers the recommendation metrics with reg.
// The server feeds the per-request metrics itself. The exact match and
// containment metrics are fed only while m is attached to the catalog as
// its recommend.Monitor.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m, err := newRequestMetrics(reg)
	if err != nil {
		return nil, err
	}
	factory := promauto.With(reg)
	m.exactMatches = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "courserec_exact_matches_total",
			Help: "Queries whose normalized form matched a course title exactly",
		},
	)
	m.containmentHits = factory.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "courserec_containment_hits",
			Help:    "Courses matched by the containment pass per query",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100},
		},
	)
	return m, nil
}

// newRequestMetrics registers only the metrics the server can observe
// without a monitor.
func newRequestMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		return nil, ErrRegistryRequired
	}
	factory := promauto.With(reg)
	return &Metrics{
		queries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "courserec_queries_total",
				Help: "Recommendations answered, by result kind",
			},
			[]string{"kind"},
		),
		errors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "courserec_query_errors_total",
				Help: "Recommendations that failed, by error code",
			},
			[]string{"code"},
		),
		latency: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "courserec_query_duration_seconds",
				Help:    "Time to answer a recommendation request",
				Buckets: prometheus.DefBuckets,
			},
		),
	}, nil
}

func (m *Metrics) Start(_ string) {}

func (m *Metrics) AfterContainment(indices []int) {
	if m.containmentHits != nil {
		m.containmentHits.Observe(float64(len(indices)))
	}
}

func (m *Metrics) AfterNormalize(_ string) {}

func (m *Metrics) ExactMatch(_ int) {
	if m.exactMatches != nil {
		m.exactMatches.Inc()
	}
}

// Finish is a no-op; answered queries are counted by ObserveResult.
func (m *Metrics) Finish(_ recommend.Result) {}

// ObserveResult counts an answered request by result kind.
func (m *Metrics) ObserveResult(result recommend.Result) {
	m.queries.WithLabelValues(result.Kind.String()).Inc()
}

// ObserveError counts a failed request.
func (m *Metrics) ObserveError(code string) {
	m.errors.WithLabelValues(code).Inc()
}

// ObserveDuration records how long a request took.
func (m *Metrics) ObserveDuration(d time.Duration) {
	m.latency.Observe(d.Seconds())
}
