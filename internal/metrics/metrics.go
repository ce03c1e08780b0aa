package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds gameplay counters on a private registry so they never clash
// with prometheus.DefaultRegistry. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry        *prometheus.Registry
	sessionsStarted *prometheus.CounterVec
	sessionsEnded   *prometheus.CounterVec
	roundsFinished  *prometheus.CounterVec
	guesses         *prometheus.CounterVec
	cluesLoaded     prometheus.Gauge
}

// New registers the counters on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		sessionsStarted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "plot_twisted_sessions_started_total",
			Help: "Sessions started, partitioned by game mode.",
		}, []string{"mode"}),
		sessionsEnded: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "plot_twisted_sessions_ended_total",
			Help: "Sessions ended, partitioned by how they ended.",
		}, []string{"reason"}),
		roundsFinished: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "plot_twisted_rounds_finished_total",
			Help: "Rounds settled, partitioned by outcome.",
		}, []string{"outcome"}),
		guesses: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "plot_twisted_guesses_total",
			Help: "Accepted letter guesses, partitioned by hit or miss.",
		}, []string{"result"}),
		cluesLoaded: factory.NewGauge(prometheus.GaugeOpts{
			Name: "plot_twisted_categories_loaded",
			Help: "Categories available after the last clue load.",
		}),
	}
}

// Handler serves the private registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests and extra collectors.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) SessionStarted(mode string) {
	if m == nil {
		return
	}
	m.sessionsStarted.WithLabelValues(mode).Inc()
}

func (m *Metrics) SessionEnded(reason string) {
	if m == nil {
		return
	}
	m.sessionsEnded.WithLabelValues(reason).Inc()
}

func (m *Metrics) RoundFinished(outcome string) {
	if m == nil {
		return
	}
	m.roundsFinished.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Guess(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.guesses.WithLabelValues(result).Inc()
}

func (m *Metrics) CategoriesLoaded(n int) {
	if m == nil {
		return
	}
	m.cluesLoaded.Set(float64(n))
}
