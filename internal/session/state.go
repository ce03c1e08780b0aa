package session

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/gokatarajesh/plot-twisted/internal/question"
	"github.com/gokatarajesh/plot-twisted/internal/session/round"
	"github.com/gokatarajesh/plot-twisted/internal/session/scoring"
)

// State is everything one session owns. It is replaced wholesale when a new
// game starts.
type State struct {
	ID        uuid.UUID
	Mode      Mode
	Questions []question.Question
	Index     int // position of the current question
	Streak    int // consecutive correct answers
	Strikes   int // shared pool, carried between rounds and players
	History   []scoring.Record
	Tally     scoring.Tally
	Round     *round.Round
	Ended     bool
}

// CurrentPlayer is the slot whose turn it is, or question.NoPlayer.
func (s *State) CurrentPlayer() int {
	if s.Round == nil {
		return question.NoPlayer
	}
	return s.Round.Question().ForPlayer
}

// ProgressLabel renders "current/total" counting the active question.
func (s *State) ProgressLabel() string {
	cur := min(s.Index+1, len(s.Questions))
	return fmt.Sprintf("%d/%d", cur, len(s.Questions))
}

// ScoreLabel renders the mode's running score.
func (s *State) ScoreLabel() string {
	return s.Mode.ScoreLabel(s.Tally.Totals())
}

// Snapshot is a read-only copy of the session for clients reconnecting their view.
type Snapshot struct {
	SessionID     uuid.UUID        `json:"session_id"`
	Mode          ModeKind         `json:"mode"`
	Index         int              `json:"index"`
	Total         int              `json:"total"`
	Progress      string           `json:"progress"`
	Score         string           `json:"score"`
	Totals        scoring.Totals   `json:"totals"`
	Streak        int              `json:"streak"`
	StrikesLeft   int              `json:"strikes_left"`
	CurrentPlayer int              `json:"current_player,omitempty"`
	PlayerName    string           `json:"player_name,omitempty"`
	Clue          string           `json:"clue,omitempty"`
	Display       string           `json:"display,omitempty"`
	RoundStatus   round.Status     `json:"round_status,omitempty"`
	Guessed       string           `json:"guessed,omitempty"`
	History       []scoring.Record `json:"history"`
	Ended         bool             `json:"ended"`
}

func (s *State) snapshot() Snapshot {
	snap := Snapshot{
		SessionID:     s.ID,
		Mode:          s.Mode.Kind(),
		Index:         s.Index,
		Total:         len(s.Questions),
		Progress:      s.ProgressLabel(),
		Score:         s.ScoreLabel(),
		Totals:        s.Tally.Totals(),
		Streak:        s.Streak,
		StrikesLeft:   s.Strikes,
		CurrentPlayer: s.CurrentPlayer(),
		PlayerName:    s.Mode.PlayerName(s.CurrentPlayer()),
		History:       append([]scoring.Record(nil), s.History...),
		Ended:         s.Ended,
	}
	if s.Round != nil {
		snap.Clue = s.Round.Question().Text
		snap.Display = s.Round.Display()
		snap.RoundStatus = s.Round.Status()
		snap.Guessed = string(s.Round.GuessedLetters())
	}
	return snap
}
