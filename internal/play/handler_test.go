package play

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/plot-twisted/internal/clue"
	"github.com/gokatarajesh/plot-twisted/internal/question"
	"github.com/gokatarajesh/plot-twisted/internal/session"
	"github.com/gokatarajesh/plot-twisted/internal/settings"
	httperrors "github.com/gokatarajesh/plot-twisted/pkg/http/errors"
	"github.com/gokatarajesh/plot-twisted/pkg/http/ws"
)

type fakeSender struct {
	mu   sync.Mutex
	msgs []ws.Message
}

func (f *fakeSender) Send(msg ws.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.msgs = append(f.msgs, msg)
	return nil
}

func (f *fakeSender) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.msgs))
	for i, m := range f.msgs {
		out[i] = m.Type
	}
	return out
}

func (f *fakeSender) last(msgType string) (ws.Message, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.msgs) - 1; i >= 0; i-- {
		if f.msgs[i].Type == msgType {
			return f.msgs[i], true
		}
	}
	return ws.Message{}, false
}

func (f *fakeSender) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.msgs = nil
}

func testHandler(t *testing.T, delay time.Duration) (*Handler, *settings.Manager) {
	t.Helper()
	repo := clue.NewRepository([]clue.Record{
		{Title: "Jaws", Clue: "Beach stays open", Category: "Thriller", Emoji: "🔪"},
		{Title: "Heat", Clue: "Coffee with a rival", Category: "Thriller"},
	})
	mgr := settings.NewManager(settings.NewMemoryStore(), settings.ManagerOptions{}, zerolog.Nop())
	h := NewHandler(repo, question.NewSeededSelector(3), mgr, ws.NewHub(zerolog.Nop()), nil, Options{RevealDelay: delay}, zerolog.Nop())
	return h, mgr
}

func message(t *testing.T, msgType string, payload any) ws.Message {
	t.Helper()
	msg, err := ws.NewMessage(msgType, payload)
	require.NoError(t, err)
	return msg
}

func decode[T any](t *testing.T, msg ws.Message) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(msg.Payload, &out))
	return out
}

func TestStartStandardRendersFirstRound(t *testing.T) {
	h, _ := testHandler(t, time.Second)
	out := &fakeSender{}
	cs := h.newConnSession(out)

	require.NoError(t, cs.handleMessage(context.Background(), message(t, ws.TypeStartStandard, ws.StartStandardPayload{Category: "Thriller"})))

	assert.Equal(t, []string{ws.TypePlaySound, ws.TypeRoundStarted, ws.TypeRoundState}, out.types())
	started, _ := out.last(ws.TypeRoundStarted)
	view := decode[session.RoundView](t, started)
	assert.Equal(t, 2, view.Total, "falls back to the saved round count, capped by the pool")
	assert.Equal(t, "Score: 0", view.Score)
	assert.Equal(t, "1/2", view.Progress)
}

func TestGuessAck(t *testing.T) {
	h, _ := testHandler(t, time.Second)
	out := &fakeSender{}
	cs := h.newConnSession(out)
	ctx := context.Background()
	require.NoError(t, cs.handleMessage(ctx, message(t, ws.TypeStartStandard, ws.StartStandardPayload{Category: "Thriller", Rounds: 5})))

	require.NoError(t, cs.handleMessage(ctx, message(t, ws.TypeGuess, ws.GuessPayload{Letter: "a"})))
	ackMsg, ok := out.last(ws.TypeGuessAck)
	require.True(t, ok)
	ack := decode[ws.GuessAckPayload](t, ackMsg)
	assert.True(t, ack.Accepted)
	assert.True(t, ack.Hit, "both titles contain an A")
	assert.Equal(t, "A", ack.Letter)

	require.NoError(t, cs.handleMessage(ctx, message(t, ws.TypeGuess, ws.GuessPayload{Letter: "?!"})))
	ackMsg, _ = out.last(ws.TypeGuessAck)
	assert.False(t, decode[ws.GuessAckPayload](t, ackMsg).Accepted)
}

func TestErrorsAreReported(t *testing.T) {
	h, _ := testHandler(t, time.Second)
	out := &fakeSender{}
	cs := h.newConnSession(out)
	ctx := context.Background()

	cases := []struct {
		msg  ws.Message
		code string
	}{
		{message(t, ws.TypeStartStandard, ws.StartStandardPayload{}), httperrors.ErrCodeCategoryRequired},
		{message(t, ws.TypeStartStandard, ws.StartStandardPayload{Category: "Westerns"}), httperrors.ErrCodeUnknownCategory},
		{message(t, ws.TypeStartStandard, ws.StartStandardPayload{Category: "Thriller", Rounds: 7}), httperrors.ErrCodeInvalidRoundChoice},
		{message(t, ws.TypeGuess, ws.GuessPayload{Letter: "a"}), httperrors.ErrCodeNoActiveSession},
		{message(t, ws.TypeRequestState, nil), httperrors.ErrCodeNoActiveSession},
		{ws.Message{Type: ws.TypeStartPassPlay, Payload: json.RawMessage(`{"rounds":"ten"}`)}, httperrors.ErrCodeInvalidPayload},
		{ws.Message{Type: "dance"}, httperrors.ErrCodeUnknownMessageType},
	}
	for _, tc := range cases {
		out.reset()
		require.NoError(t, cs.handleMessage(ctx, tc.msg))
		errMsg, ok := out.last(ws.TypeError)
		require.True(t, ok, tc.msg.Type)
		assert.Equal(t, tc.code, decode[ws.ErrorPayload](t, errMsg).Code, tc.msg.Type)
	}
}

func TestLostRoundAutoAdvances(t *testing.T) {
	h, _ := testHandler(t, 10*time.Millisecond)
	out := &fakeSender{}
	cs := h.newConnSession(out)
	ctx := context.Background()
	require.NoError(t, cs.handleMessage(ctx, message(t, ws.TypeStartStandard, ws.StartStandardPayload{Category: "Thriller", Rounds: 5})))

	for _, letter := range []string{"z", "q", "x"} {
		require.NoError(t, cs.handleMessage(ctx, message(t, ws.TypeGuess, ws.GuessPayload{Letter: letter})))
	}
	_, lost := out.last(ws.TypeRoundLost)
	require.True(t, lost)

	assert.Eventually(t, func() bool {
		_, ended := out.last(ws.TypeSessionEnded)
		return ended
	}, time.Second, 5*time.Millisecond)

	endMsg, _ := out.last(ws.TypeSessionEnded)
	summary := decode[session.Summary](t, endMsg)
	assert.True(t, summary.OutOfStrikes)
	assert.Equal(t, "Game Over", summary.Title)
}

func TestManualNextCancelsReveal(t *testing.T) {
	h, _ := testHandler(t, time.Hour)
	out := &fakeSender{}
	cs := h.newConnSession(out)
	ctx := context.Background()
	require.NoError(t, cs.handleMessage(ctx, message(t, ws.TypeStartStandard, ws.StartStandardPayload{Category: "Thriller", Rounds: 5})))
	for _, letter := range []string{"z", "q", "x"} {
		require.NoError(t, cs.handleMessage(ctx, message(t, ws.TypeGuess, ws.GuessPayload{Letter: letter})))
	}

	require.NoError(t, cs.handleMessage(ctx, message(t, ws.TypeNext, nil)))
	_, ended := out.last(ws.TypeSessionEnded)
	assert.True(t, ended)

	cs.mu.Lock()
	defer cs.mu.Unlock()
	assert.Nil(t, cs.timer)
}

func TestSoundFollowsSetting(t *testing.T) {
	h, mgr := testHandler(t, time.Second)
	_, err := mgr.ToggleSound(context.Background())
	require.NoError(t, err)

	out := &fakeSender{}
	cs := h.newConnSession(out)
	require.NoError(t, cs.handleMessage(context.Background(), message(t, ws.TypeStartStandard, ws.StartStandardPayload{Category: "Thriller"})))

	_, played := out.last(ws.TypePlaySound)
	assert.False(t, played)
}

func TestSpeakAndState(t *testing.T) {
	h, _ := testHandler(t, time.Second)
	out := &fakeSender{}
	cs := h.newConnSession(out)
	ctx := context.Background()
	require.NoError(t, cs.handleMessage(ctx, message(t, ws.TypeStartStandard, ws.StartStandardPayload{Category: "Thriller"})))

	require.NoError(t, cs.handleMessage(ctx, message(t, ws.TypeSpeakClue, nil)))
	speakMsg, ok := out.last(ws.TypeSpeak)
	require.True(t, ok)
	assert.NotEmpty(t, decode[ws.FeedbackPayload](t, speakMsg).Text)

	require.NoError(t, cs.handleMessage(ctx, message(t, ws.TypeRequestState, nil)))
	stateMsg, ok := out.last(ws.TypeSessionState)
	require.True(t, ok)
	snap := decode[session.Snapshot](t, stateMsg)
	assert.Equal(t, session.ModeStandard, snap.Mode)
	assert.Equal(t, 3, snap.StrikesLeft)
}

func TestWebSocketRoundTrip(t *testing.T) {
	h, _ := testHandler(t, time.Second)
	srv := httptest.NewServer(http.HandlerFunc(h.HandleWebSocket))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(ws.Message{Type: ws.TypePing}))
	var reply ws.Message
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, ws.TypePong, reply.Type)
	assert.Equal(t, 1, h.hub.Count())
}
