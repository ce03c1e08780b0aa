package scoring

import (
	"github.com/gokatarajesh/plot-twisted/internal/question"
)

// Outcome of a finished round.
type Outcome string

const (
	OutcomeCorrect Outcome = "correct"
	OutcomeSkipped Outcome = "skipped"
	OutcomeMissed  Outcome = "missed"
)

// ScoringConfig holds configurable scoring constants (defaults match the game rules).
type ScoringConfig struct {
	BaseScore       int // default: 100
	StreakBonus     int // default: 50, flat
	StreakThreshold int // default: 2 consecutive wins, including the current one
}

// DefaultScoringConfig returns production defaults.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		BaseScore:       100,
		StreakBonus:     50,
		StreakThreshold: 2,
	}
}

// Award is the result of scoring a single win.
type Award struct {
	Points   int  `json:"points"`
	HadBonus bool `json:"had_bonus"`
}

// Record is an immutable entry in a session's score history.
type Record struct {
	Title     string  `json:"title"`
	Category  string  `json:"category"`
	ForPlayer int     `json:"for_player,omitempty"`
	Outcome   Outcome `json:"outcome"`
	Points    int     `json:"points"`
	HadBonus  bool    `json:"had_bonus"`
}

// Engine computes round scores with configurable constants.
type Engine struct {
	config ScoringConfig
}

// NewEngine creates a scoring engine. A zero BaseScore selects the defaults.
func NewEngine(config ScoringConfig) *Engine {
	if config.BaseScore == 0 {
		config = DefaultScoringConfig()
	}
	if config.StreakThreshold <= 0 {
		config.StreakThreshold = DefaultScoringConfig().StreakThreshold
	}
	return &Engine{config: config}
}

// Config returns the active constants.
func (e *Engine) Config() ScoringConfig { return e.config }

// ScoreWin scores a win given the consecutive-correct count including this win.
// Formula: base, plus a flat bonus once the streak reaches the threshold.
func (e *Engine) ScoreWin(streak int) Award {
	award := Award{Points: e.config.BaseScore}
	if streak >= e.config.StreakThreshold {
		award.Points += e.config.StreakBonus
		award.HadBonus = true
	}
	return award
}

// RecordOutcome builds a history record. Skips and misses always score zero.
func RecordOutcome(q question.Question, outcome Outcome, award Award) Record {
	rec := Record{
		Title:     q.Title,
		Category:  q.Category,
		ForPlayer: q.ForPlayer,
		Outcome:   outcome,
	}
	if outcome == OutcomeCorrect {
		rec.Points = award.Points
		rec.HadBonus = award.HadBonus
	}
	return rec
}

// ComputeFinalScore aggregates a history into total points, accuracy and the
// longest run of consecutive correct answers.
func ComputeFinalScore(records []Record) (totalScore int, accuracy float64, bestStreak int) {
	if len(records) == 0 {
		return 0, 0.0, 0
	}

	correct := 0
	streak := 0
	for _, rec := range records {
		totalScore += rec.Points
		if rec.Outcome == OutcomeCorrect {
			correct++
			streak++
			bestStreak = max(bestStreak, streak)
		} else {
			streak = 0
		}
	}

	accuracy = float64(correct) / float64(len(records))
	return totalScore, accuracy, bestStreak
}
