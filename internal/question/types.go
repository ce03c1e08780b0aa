package question

import "github.com/gokatarajesh/plot-twisted/internal/clue"

// Player slots for pass & play. Standard sessions leave ForPlayer at NoPlayer.
const (
	NoPlayer = 0
	Player1  = 1
	Player2  = 2
)

// Question is a clue selected for play.
type Question struct {
	clue.Clue
	ForPlayer int `json:"for_player,omitempty"`
}

// ForPlayerSlot returns a copy tagged for the given player.
func (q Question) ForPlayerSlot(player int) Question {
	q.ForPlayer = player
	return q
}
