package play

import (
	"net/http"

	"github.com/gokatarajesh/plot-twisted/internal/server"
)

// HandleWebSocket upgrades the request and serves a game on it.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := server.WSUpgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	h.HandleConnection(conn)
}
