package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestCounters(t *testing.T) {
	m := New()

	m.SessionStarted("standard")
	m.SessionStarted("standard")
	m.Guess(true)
	m.Guess(false)
	m.Guess(false)
	m.RoundFinished("correct")
	m.CategoriesLoaded(6)

	body := scrape(t, m)
	assert.Contains(t, body, `plot_twisted_sessions_started_total{mode="standard"} 2`)
	assert.Contains(t, body, `plot_twisted_guesses_total{result="hit"} 1`)
	assert.Contains(t, body, `plot_twisted_guesses_total{result="miss"} 2`)
	assert.Contains(t, body, `plot_twisted_rounds_finished_total{outcome="correct"} 1`)
	assert.Contains(t, body, "plot_twisted_categories_loaded 6")
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.SessionStarted("standard")
		m.SessionEnded("completed")
		m.RoundFinished("missed")
		m.Guess(true)
		m.CategoriesLoaded(1)
	})
}

func TestHandlerServesOnlyPrivateRegistry(t *testing.T) {
	m := New()
	m.SessionStarted("pass_play")

	body := scrape(t, m)
	assert.Contains(t, body, `plot_twisted_sessions_started_total{mode="pass_play"} 1`)
	assert.NotContains(t, body, "go_goroutines")
}
