package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func serve(mux *http.ServeMux, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealthz(t *testing.T) {
	rec := serve(NewMux(zerolog.Nop(), Routes{}), "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestPingReportsFailingDependency(t *testing.T) {
	mux := NewMux(zerolog.Nop(), Routes{Pingers: map[string]Pinger{
		"redis":    func(context.Context) error { return errors.New("refused") },
		"postgres": nil,
	}})

	rec := serve(mux, "/v1/ping")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "redis unavailable")
}

func TestPingOK(t *testing.T) {
	mux := NewMux(zerolog.Nop(), Routes{Pingers: map[string]Pinger{
		"redis": func(context.Context) error { return nil },
	}})
	rec := serve(mux, "/v1/ping")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"pong":true}`, rec.Body.String())
}

func TestGameRoutesMounted(t *testing.T) {
	hit := ""
	mux := NewMux(zerolog.Nop(), Routes{
		Categories: func(w http.ResponseWriter, r *http.Request) { hit = "categories" },
		Settings:   func(w http.ResponseWriter, r *http.Request) { hit = "settings" },
	})

	serve(mux, "/v1/categories")
	assert.Equal(t, "categories", hit)
	serve(mux, "/v1/settings")
	assert.Equal(t, "settings", hit)

	assert.Equal(t, http.StatusNotImplemented, serve(mux, "/ws/play").Code)
	assert.Equal(t, http.StatusNotFound, serve(mux, "/metrics").Code)
}
