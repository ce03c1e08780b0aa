package session

import (
	"fmt"

	"github.com/gokatarajesh/plot-twisted/internal/question"
	"github.com/gokatarajesh/plot-twisted/internal/session/scoring"
)

// ModeKind names a game mode on the wire and in metrics.
type ModeKind string

const (
	ModeStandard ModeKind = "standard"
	ModePassPlay ModeKind = "pass_play"
)

// Default player names used when a pass & play name is left blank.
const (
	DefaultPlayer1Name = "Player 1"
	DefaultPlayer2Name = "Player 2"
)

// Mode is the tagged game-mode variant: Standard or PassPlay. Each variant owns
// its score aggregation and labels.
type Mode interface {
	Kind() ModeKind
	NewTally() scoring.Tally
	ScoreLabel(totals scoring.Totals) string
	PlayerName(slot int) string
	summarize(sum *Summary, totals scoring.Totals)
}

// Standard is single-player play through one category.
type Standard struct {
	Category string
}

func (Standard) Kind() ModeKind { return ModeStandard }

func (Standard) NewTally() scoring.Tally { return &scoring.StandardTally{} }

func (Standard) ScoreLabel(totals scoring.Totals) string {
	return fmt.Sprintf("Score: %d", totals.Total)
}

func (Standard) PlayerName(int) string { return "" }

func (m Standard) summarize(sum *Summary, totals scoring.Totals) {
	sum.TotalScore = totals.Total
	sum.PlayAgainLabel = fmt.Sprintf("Play %s Again", m.Category)
}

// Player is one pass & play participant. Category is the category the player
// answers from, which the opponent picked.
type Player struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

// PassPlay is local two-player play with swapped categories.
type PassPlay struct {
	Player1 Player
	Player2 Player
}

func (PassPlay) Kind() ModeKind { return ModePassPlay }

func (PassPlay) NewTally() scoring.Tally { return &scoring.PassPlayTally{} }

func (m PassPlay) ScoreLabel(totals scoring.Totals) string {
	return fmt.Sprintf("%s: %d | %s: %d", m.Player1.Name, totals.Player1, m.Player2.Name, totals.Player2)
}

func (m PassPlay) PlayerName(slot int) string {
	switch slot {
	case question.Player1:
		return m.Player1.Name
	case question.Player2:
		return m.Player2.Name
	default:
		return ""
	}
}

func (m PassPlay) summarize(sum *Summary, totals scoring.Totals) {
	sum.Players = []PlayerResult{
		{Name: m.Player1.Name, Score: totals.Player1},
		{Name: m.Player2.Name, Score: totals.Player2},
	}
	sum.PlayAgainLabel = "Play Again"

	switch {
	case totals.Player1 > totals.Player2:
		sum.Winner = question.Player1
		sum.WinnerText = m.Player1.Name + " Wins!"
	case totals.Player2 > totals.Player1:
		sum.Winner = question.Player2
		sum.WinnerText = m.Player2.Name + " Wins!"
	default:
		sum.Tie = true
		sum.WinnerText = "It's a Tie!"
	}
}
