package play

import (
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/plot-twisted/internal/feedback"
	"github.com/gokatarajesh/plot-twisted/internal/session"
	"github.com/gokatarajesh/plot-twisted/pkg/http/ws"
)

// sender is the slice of ws.Connection the renderer needs.
type sender interface {
	Send(msg ws.Message) error
}

// wsRenderer turns controller notifications into outgoing messages.
type wsRenderer struct {
	out    sender
	onLost func()
	logger zerolog.Logger
}

var _ session.Renderer = (*wsRenderer)(nil)

func (r *wsRenderer) send(msgType string, payload any) {
	msg, err := ws.NewMessage(msgType, payload)
	if err == nil {
		err = r.out.Send(msg)
	}
	if err != nil {
		r.logger.Warn().Err(err).Str("type", msgType).Msg("send failed")
	}
}

func (r *wsRenderer) OnRoundStarted(view session.RoundView) {
	r.send(ws.TypeRoundStarted, view)
}

func (r *wsRenderer) OnRoundStateChanged(masked string, strikesLeft int, progress string) {
	r.send(ws.TypeRoundState, ws.RoundStatePayload{Masked: masked, StrikesLeft: strikesLeft, Progress: progress})
}

func (r *wsRenderer) OnRoundWon(text string) {
	r.send(ws.TypeRoundWon, ws.FeedbackPayload{Text: text})
}

func (r *wsRenderer) OnRoundSkipped(text string) {
	r.send(ws.TypeRoundSkipped, ws.FeedbackPayload{Text: text})
}

func (r *wsRenderer) OnRoundLost(text string) {
	r.send(ws.TypeRoundLost, ws.FeedbackPayload{Text: text})
	if r.onLost != nil {
		r.onLost()
	}
}

func (r *wsRenderer) OnScoreChanged(label string) {
	r.send(ws.TypeScoreChanged, ws.ScorePayload{Label: label})
}

func (r *wsRenderer) OnSessionEnded(summary session.Summary) {
	r.send(ws.TypeSessionEnded, summary)
}

// Play and Speak forward audio cues to the client, which owns the speakers.
func (r *wsRenderer) Play(kind feedback.Sound) {
	r.send(ws.TypePlaySound, ws.SoundPayload{Kind: string(kind)})
}

func (r *wsRenderer) Speak(text string) {
	r.send(ws.TypeSpeak, ws.FeedbackPayload{Text: text})
}
