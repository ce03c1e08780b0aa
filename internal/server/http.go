package server

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/plot-twisted/internal/config"
	"github.com/gokatarajesh/plot-twisted/internal/logging"
	httperrors "github.com/gokatarajesh/plot-twisted/pkg/http/errors"
)

// WSUpgrader handles WebSocket upgrades. The game is served to a single local
// player, so any origin is accepted.
var WSUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Pinger checks an optional dependency. Nil pingers are skipped.
type Pinger func(ctx context.Context) error

// Routes are the handlers the game contributes. Nil handlers are not mounted.
type Routes struct {
	Metrics    http.Handler
	Categories http.HandlerFunc
	Settings   http.HandlerFunc
	PlayWS     http.HandlerFunc
	Pingers    map[string]Pinger
}

// NewHTTPServer wires base routes (health, metrics, ping) and the game routes.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, routes Routes) *http.Server {
	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: NewMux(logger, routes),
	}
}

// NewMux builds the route table.
func NewMux(logger zerolog.Logger, routes Routes) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if routes.Metrics != nil {
		mux.Handle("/metrics", routes.Metrics)
	}

	mux.HandleFunc("/v1/ping", func(w http.ResponseWriter, r *http.Request) {
		ctx := logging.IntoContext(r.Context(), logger)
		if name, err := pingDependencies(ctx, routes.Pingers); err != nil {
			logging.FromContext(ctx).Error().Err(err).Str("dependency", name).Msg("dependency ping failed")
			httperrors.RespondError(w, http.StatusBadGateway, httperrors.ErrCodeServiceUnavailable, name+" unavailable")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pong":true}`))
	})

	if routes.Categories != nil {
		mux.HandleFunc("/v1/categories", routes.Categories)
	}
	if routes.Settings != nil {
		mux.HandleFunc("/v1/settings", routes.Settings)
	}

	if routes.PlayWS != nil {
		mux.HandleFunc("/ws/play", routes.PlayWS)
	} else {
		mux.HandleFunc("/ws/play", func(w http.ResponseWriter, r *http.Request) {
			httperrors.RespondError(w, http.StatusNotImplemented, httperrors.ErrCodeServiceUnavailable, "WebSocket handler not configured")
		})
	}

	return mux
}

func pingDependencies(ctx context.Context, pingers map[string]Pinger) (string, error) {
	for name, ping := range pingers {
		if ping == nil {
			continue
		}
		if err := ping(ctx); err != nil {
			return name, err
		}
	}
	return "", nil
}
