package play

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/plot-twisted/internal/clue"
	"github.com/gokatarajesh/plot-twisted/internal/feedback"
	"github.com/gokatarajesh/plot-twisted/internal/metrics"
	"github.com/gokatarajesh/plot-twisted/internal/question"
	"github.com/gokatarajesh/plot-twisted/internal/session"
	"github.com/gokatarajesh/plot-twisted/internal/session/scoring"
	"github.com/gokatarajesh/plot-twisted/internal/settings"
	httperrors "github.com/gokatarajesh/plot-twisted/pkg/http/errors"
	"github.com/gokatarajesh/plot-twisted/pkg/http/ws"
)

// DefaultRevealDelay is how long a lost round's answer stays up before the game moves on.
const DefaultRevealDelay = 1500 * time.Millisecond

// Options configures gameplay for every connection.
type Options struct {
	StartingStrikes int
	ScoringConfig   scoring.ScoringConfig
	RevealDelay     time.Duration
}

// Handler runs one game session per WebSocket connection.
type Handler struct {
	categories *clue.Repository
	selector   *question.Selector
	settings   *settings.Manager
	hub        *ws.Hub
	metrics    *metrics.Metrics
	opts       Options
	logger     zerolog.Logger
}

// NewHandler creates a play WebSocket handler.
func NewHandler(
	categories *clue.Repository,
	selector *question.Selector,
	settingsMgr *settings.Manager,
	hub *ws.Hub,
	m *metrics.Metrics,
	opts Options,
	logger zerolog.Logger,
) *Handler {
	if opts.RevealDelay <= 0 {
		opts.RevealDelay = DefaultRevealDelay
	}
	return &Handler{
		categories: categories,
		selector:   selector,
		settings:   settingsMgr,
		hub:        hub,
		metrics:    m,
		opts:       opts,
		logger:     logger.With().Str("component", "play").Logger(),
	}
}

// HandleConnection serves a WebSocket until the client disconnects.
func (h *Handler) HandleConnection(conn *websocket.Conn) {
	wsConn := ws.NewConnection(conn, h.logger)
	h.hub.Register(wsConn)

	go wsConn.WritePump()

	cs := h.newConnSession(wsConn)
	wsConn.ReadPump(context.Background(), cs.handleMessage)

	cs.cancelReveal()
	h.hub.Unregister(wsConn.ID())
}

// connSession is the per-connection game: a controller plus the pending
// reveal timer.
type connSession struct {
	out        sender
	controller *session.Controller
	settings   *settings.Manager
	delay      time.Duration
	logger     zerolog.Logger

	mu    sync.Mutex
	timer *time.Timer
}

func (h *Handler) newConnSession(out sender) *connSession {
	logger := h.logger
	if c, ok := out.(*ws.Connection); ok {
		logger = logger.With().Str("connection_id", c.ID().String()).Logger()
	}

	cs := &connSession{
		out:      out,
		settings: h.settings,
		delay:    h.opts.RevealDelay,
		logger:   logger,
	}
	renderer := &wsRenderer{out: out, onLost: cs.scheduleReveal, logger: logger}

	cs.controller = session.NewController(h.categories, h.selector, renderer, session.ControllerOptions{
		StartingStrikes: h.opts.StartingStrikes,
		ScoringConfig:   h.opts.ScoringConfig,
		Sounder:         feedback.GatedSounder{Next: renderer, Enabled: h.settings.SoundEnabled},
		Speaker:         renderer,
		Metrics:         h.metrics,
	}, logger)
	return cs
}

// scheduleReveal advances once the lost round's answer has been shown. It is
// called from inside the controller, so the advance runs on the timer goroutine.
func (cs *connSession) scheduleReveal() {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if cs.timer != nil {
		cs.timer.Stop()
	}
	cs.timer = time.AfterFunc(cs.delay, func() {
		if err := cs.controller.Advance(); err != nil && !errors.Is(err, session.ErrNoActiveSession) && !errors.Is(err, session.ErrRoundInProgress) {
			cs.logger.Warn().Err(err).Msg("auto advance failed")
		}
	})
}

func (cs *connSession) cancelReveal() {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if cs.timer != nil {
		cs.timer.Stop()
		cs.timer = nil
	}
}

// handleMessage routes incoming WebSocket messages.
func (cs *connSession) handleMessage(ctx context.Context, msg ws.Message) error {
	switch msg.Type {
	case ws.TypeStartStandard:
		return cs.handleStartStandard(ctx, msg.Payload)
	case ws.TypeStartPassPlay:
		return cs.handleStartPassPlay(ctx, msg.Payload)
	case ws.TypeGuess:
		return cs.handleGuess(msg.Payload)
	case ws.TypeSkip:
		_, err := cs.controller.Skip()
		return cs.reportErr(err)
	case ws.TypeNext:
		cs.cancelReveal()
		return cs.reportErr(cs.controller.Advance())
	case ws.TypeQuit:
		cs.cancelReveal()
		return cs.reportErr(cs.controller.Quit())
	case ws.TypePlayAgain:
		cs.cancelReveal()
		return cs.reportErr(cs.controller.PlayAgain(ctx))
	case ws.TypeSpeakClue:
		return cs.reportErr(cs.controller.SpeakClue())
	case ws.TypeRequestState:
		snap, ok := cs.controller.Snapshot()
		if !ok {
			return cs.reportErr(session.ErrNoActiveSession)
		}
		return cs.reply(ws.TypeSessionState, snap)
	case ws.TypePing:
		return cs.reply(ws.TypePong, nil)
	default:
		return cs.sendError(httperrors.ErrCodeUnknownMessageType, fmt.Sprintf("Unknown message type: %s", msg.Type))
	}
}

func (cs *connSession) rounds(requested int) (int, error) {
	if requested == 0 {
		return cs.settings.NumRounds(), nil
	}
	if !settings.ValidRounds(requested) {
		return 0, fmt.Errorf("%w: %d", settings.ErrInvalidRoundChoice, requested)
	}
	return requested, nil
}

func (cs *connSession) handleStartStandard(ctx context.Context, payload json.RawMessage) error {
	var req ws.StartStandardPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return cs.sendError(httperrors.ErrCodeInvalidPayload, "Invalid start_standard payload")
	}
	rounds, err := cs.rounds(req.Rounds)
	if err != nil {
		return cs.reportErr(err)
	}

	cs.cancelReveal()
	return cs.reportErr(cs.controller.StartStandard(ctx, req.Category, rounds))
}

func (cs *connSession) handleStartPassPlay(ctx context.Context, payload json.RawMessage) error {
	var req ws.StartPassPlayPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return cs.sendError(httperrors.ErrCodeInvalidPayload, "Invalid start_pass_play payload")
	}
	rounds, err := cs.rounds(req.Rounds)
	if err != nil {
		return cs.reportErr(err)
	}

	cs.cancelReveal()
	return cs.reportErr(cs.controller.StartPassPlay(ctx, session.PassPlayInput{
		Player1Name: req.Player1Name,
		Player2Name: req.Player2Name,
		Player1Pick: req.Player1Pick,
		Player2Pick: req.Player2Pick,
		Rounds:      rounds,
	}))
}

func (cs *connSession) handleGuess(payload json.RawMessage) error {
	var req ws.GuessPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return cs.sendError(httperrors.ErrCodeInvalidPayload, "Invalid guess payload")
	}

	res, err := cs.controller.Guess(req.Letter)
	if err != nil {
		return cs.reportErr(err)
	}

	ack := ws.GuessAckPayload{
		Accepted:    res.Accepted,
		Hit:         res.Hit,
		Occurrences: res.Occurrences,
		Status:      string(res.Status),
	}
	if res.Accepted {
		ack.Letter = string(res.Letter)
	}
	return cs.reply(ws.TypeGuessAck, ack)
}

func (cs *connSession) reply(msgType string, payload any) error {
	msg, err := ws.NewMessage(msgType, payload)
	if err != nil {
		return err
	}
	return cs.out.Send(msg)
}

// reportErr sends a game error to the client. Only transport failures are returned.
func (cs *connSession) reportErr(err error) error {
	if err == nil {
		return nil
	}
	return cs.sendError(errorCode(err), err.Error())
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, session.ErrCategoryRequired):
		return httperrors.ErrCodeCategoryRequired
	case errors.Is(err, session.ErrUnknownCategory):
		return httperrors.ErrCodeUnknownCategory
	case errors.Is(err, session.ErrInvalidRoundCount):
		return httperrors.ErrCodeInvalidRoundCount
	case errors.Is(err, settings.ErrInvalidRoundChoice):
		return httperrors.ErrCodeInvalidRoundChoice
	case errors.Is(err, session.ErrNoActiveSession):
		return httperrors.ErrCodeNoActiveSession
	case errors.Is(err, session.ErrRoundInProgress):
		return httperrors.ErrCodeRoundInProgress
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return httperrors.ErrCodeStartFailed
	default:
		return httperrors.ErrCodeInternalError
	}
}

func (cs *connSession) sendError(code, message string) error {
	return cs.reply(ws.TypeError, ws.ErrorPayload{Code: code, Message: message})
}
