package play

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/plot-twisted/internal/clue"
	"github.com/gokatarajesh/plot-twisted/internal/settings"
	httperrors "github.com/gokatarajesh/plot-twisted/pkg/http/errors"
)

// HTTPHandlers serves the REST side of the game: category pickers and settings.
type HTTPHandlers struct {
	categories *clue.Repository
	settings   *settings.Manager
	logger     zerolog.Logger
}

func NewHTTPHandlers(categories *clue.Repository, settingsMgr *settings.Manager, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		categories: categories,
		settings:   settingsMgr,
		logger:     logger.With().Str("component", "play_http").Logger(),
	}
}

type categoryResponse struct {
	Name      string `json:"name"`
	Emoji     string `json:"emoji"`
	ClueCount int    `json:"clue_count"`
}

// ListCategories handles GET /v1/categories.
func (h *HTTPHandlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondMethodNotAllowed(w, http.MethodGet)
		return
	}

	cats := h.categories.Categories()
	resp := make([]categoryResponse, 0, len(cats))
	for _, cat := range cats {
		resp = append(resp, categoryResponse{Name: cat.Name, Emoji: cat.Emoji, ClueCount: cat.Size()})
	}
	httperrors.RespondJSON(w, http.StatusOK, map[string]any{"categories": resp})
}

type settingsResponse struct {
	Settings     settings.Settings `json:"settings"`
	RoundChoices []int             `json:"round_choices"`
	Persisted    bool              `json:"persisted"`
}

// Settings handles GET and PUT /v1/settings. PUT accepts a partial document
// merged over the current settings.
func (h *HTTPHandlers) Settings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.respondSettings(w, h.settings.Current(), true)
	case http.MethodPut:
		next := h.settings.Current()
		if err := json.NewDecoder(r.Body).Decode(&next); err != nil {
			httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON")
			return
		}

		saved, err := h.settings.Replace(r.Context(), next)
		if errors.Is(err, settings.ErrInvalidRoundChoice) {
			httperrors.RespondValidationError(w, httperrors.ErrCodeInvalidRoundChoice, "numRounds must be 5, 10 or 15", "numRounds")
			return
		}
		if err != nil {
			h.logger.Warn().Err(err).Msg("settings not persisted")
		}
		h.respondSettings(w, saved, err == nil)
	default:
		httperrors.RespondMethodNotAllowed(w, "GET, PUT")
	}
}

func (h *HTTPHandlers) respondSettings(w http.ResponseWriter, s settings.Settings, persisted bool) {
	httperrors.RespondJSON(w, http.StatusOK, settingsResponse{
		Settings:     s,
		RoundChoices: settings.RoundChoices,
		Persisted:    persisted,
	})
}
