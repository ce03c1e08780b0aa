package scoring

import "github.com/gokatarajesh/plot-twisted/internal/question"

// Totals is a read-only view of a tally.
type Totals struct {
	Total   int `json:"total"`
	Player1 int `json:"player1"`
	Player2 int `json:"player2"`
}

// Tally aggregates awarded points the way a game mode requires.
type Tally interface {
	Apply(rec Record)
	Totals() Totals
}

// StandardTally keeps one running total.
type StandardTally struct {
	total int
}

func (t *StandardTally) Apply(rec Record) {
	t.total += rec.Points
}

func (t *StandardTally) Totals() Totals {
	return Totals{Total: t.total}
}

// PassPlayTally credits points only to the player the question was for.
type PassPlayTally struct {
	player1 int
	player2 int
}

func (t *PassPlayTally) Apply(rec Record) {
	switch rec.ForPlayer {
	case question.Player1:
		t.player1 += rec.Points
	case question.Player2:
		t.player2 += rec.Points
	}
}

func (t *PassPlayTally) Totals() Totals {
	return Totals{Player1: t.player1, Player2: t.player2}
}
