package session

import (
	"github.com/google/uuid"

	"github.com/gokatarajesh/plot-twisted/internal/session/scoring"
)

// RoundView is what a collaborator needs to present a fresh round.
type RoundView struct {
	SessionID   uuid.UUID `json:"session_id"`
	Index       int       `json:"index"`
	Total       int       `json:"total"`
	Category    string    `json:"category"`
	Emoji       string    `json:"emoji"`
	Clue        string    `json:"clue"`
	ForPlayer   int       `json:"for_player,omitempty"`
	PlayerName  string    `json:"player_name,omitempty"`
	Masked      string    `json:"masked"`
	StrikesLeft int       `json:"strikes_left"`
	Progress    string    `json:"progress"`
	Score       string    `json:"score"`
}

// PlayerResult is one pass & play player's final total.
type PlayerResult struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Summary is the finalized outcome handed to the renderer when a session ends.
type Summary struct {
	SessionID      uuid.UUID        `json:"session_id"`
	Mode           ModeKind         `json:"mode"`
	Title          string           `json:"title"`
	ForcedQuit     bool             `json:"forced_quit"`
	OutOfStrikes   bool             `json:"out_of_strikes"`
	TotalScore     int              `json:"total_score"`
	Accuracy       float64          `json:"accuracy"`
	BestStreak     int              `json:"best_streak"`
	Records        []scoring.Record `json:"records"`
	Players        []PlayerResult   `json:"players,omitempty"`
	Winner         int              `json:"winner,omitempty"`
	Tie            bool             `json:"tie,omitempty"`
	WinnerText     string           `json:"winner_text,omitempty"`
	PlayAgainLabel string           `json:"play_again_label"`
}

// Renderer receives the controller's notifications. Calls are made while the
// controller holds its lock, so implementations must not call back into it.
type Renderer interface {
	OnRoundStarted(view RoundView)
	OnRoundStateChanged(masked string, strikesLeft int, progress string)
	OnRoundWon(feedback string)
	OnRoundSkipped(feedback string)
	OnRoundLost(feedback string)
	OnScoreChanged(label string)
	OnSessionEnded(summary Summary)
}

// NopRenderer ignores every notification.
type NopRenderer struct{}

func (NopRenderer) OnRoundStarted(RoundView)                {}
func (NopRenderer) OnRoundStateChanged(string, int, string) {}
func (NopRenderer) OnRoundWon(string)                       {}
func (NopRenderer) OnRoundSkipped(string)                   {}
func (NopRenderer) OnRoundLost(string)                      {}
func (NopRenderer) OnScoreChanged(string)                   {}
func (NopRenderer) OnSessionEnded(Summary)                  {}
