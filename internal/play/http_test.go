package play

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/plot-twisted/internal/clue"
	"github.com/gokatarajesh/plot-twisted/internal/settings"
	httperrors "github.com/gokatarajesh/plot-twisted/pkg/http/errors"
)

type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, error) { return nil, errors.New("down") }
func (failingStore) Put(context.Context, string, []byte) error   { return errors.New("down") }

func newHTTPHandlers(store settings.Store) *HTTPHandlers {
	repo := clue.NewRepository([]clue.Record{
		{Title: "Jaws", Clue: "Beach stays open", Category: "Thriller", Emoji: "🔪"},
		{Title: "Up", Clue: "House floats away", Category: "Animated"},
	})
	mgr := settings.NewManager(store, settings.ManagerOptions{}, zerolog.Nop())
	return NewHTTPHandlers(repo, mgr, zerolog.Nop())
}

func TestListCategories(t *testing.T) {
	h := newHTTPHandlers(settings.NewMemoryStore())
	rec := httptest.NewRecorder()
	h.ListCategories(rec, httptest.NewRequest(http.MethodGet, "/v1/categories", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Categories []categoryResponse `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []categoryResponse{
		{Name: "Thriller", Emoji: "🔪", ClueCount: 1},
		{Name: "Animated", Emoji: clue.DefaultEmoji, ClueCount: 1},
	}, body.Categories)

	rec = httptest.NewRecorder()
	h.ListCategories(rec, httptest.NewRequest(http.MethodPost, "/v1/categories", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestSettingsGetAndPut(t *testing.T) {
	h := newHTTPHandlers(settings.NewMemoryStore())

	rec := httptest.NewRecorder()
	h.Settings(rec, httptest.NewRequest(http.MethodGet, "/v1/settings", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var got settingsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, settings.Defaults(), got.Settings)
	assert.Equal(t, []int{5, 10, 15}, got.RoundChoices)

	rec = httptest.NewRecorder()
	h.Settings(rec, httptest.NewRequest(http.MethodPut, "/v1/settings", strings.NewReader(`{"neonTheme":true,"numRounds":5}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.True(t, got.Persisted)
	assert.Equal(t, settings.Settings{NeonTheme: true, Sound: true, NumRounds: 5}, got.Settings)
}

func TestSettingsPutValidation(t *testing.T) {
	h := newHTTPHandlers(settings.NewMemoryStore())

	rec := httptest.NewRecorder()
	h.Settings(rec, httptest.NewRequest(http.MethodPut, "/v1/settings", strings.NewReader(`{"numRounds":8}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var errBody httperrors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errBody))
	assert.Equal(t, httperrors.ErrCodeInvalidRoundChoice, errBody.Error)
	assert.Equal(t, "numRounds", errBody.Field)

	rec = httptest.NewRecorder()
	h.Settings(rec, httptest.NewRequest(http.MethodPut, "/v1/settings", strings.NewReader(`{`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.Settings(rec, httptest.NewRequest(http.MethodDelete, "/v1/settings", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "GET, PUT", rec.Header().Get("Allow"))
}

func TestSettingsPutKeepsInMemoryWhenStoreFails(t *testing.T) {
	h := newHTTPHandlers(failingStore{})

	rec := httptest.NewRecorder()
	h.Settings(rec, httptest.NewRequest(http.MethodPut, "/v1/settings", strings.NewReader(`{"sound":false}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	var got settingsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.False(t, got.Persisted)
	assert.False(t, got.Settings.Sound)
	assert.False(t, h.settings.SoundEnabled())
}
