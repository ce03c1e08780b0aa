package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gokatarajesh/plot-twisted/internal/clue"
	"github.com/gokatarajesh/plot-twisted/internal/question"
)

func TestScoreWinAppliesStreakBonus(t *testing.T) {
	engine := NewEngine(DefaultScoringConfig())

	first := engine.ScoreWin(1)
	assert.Equal(t, 100, first.Points)
	assert.False(t, first.HadBonus)

	second := engine.ScoreWin(2)
	assert.Equal(t, 150, second.Points)
	assert.True(t, second.HadBonus)

	longRun := engine.ScoreWin(7)
	assert.Equal(t, 150, longRun.Points, "bonus is flat, not cumulative")
}

func TestNewEngineZeroConfigUsesDefaults(t *testing.T) {
	engine := NewEngine(ScoringConfig{})
	assert.Equal(t, DefaultScoringConfig(), engine.Config())
}

func TestRecordOutcomeZeroesNonWins(t *testing.T) {
	q := question.Question{Clue: clue.Clue{Title: "Jaws", Category: "Thriller"}, ForPlayer: question.Player2}
	award := Award{Points: 150, HadBonus: true}

	won := RecordOutcome(q, OutcomeCorrect, award)
	assert.Equal(t, 150, won.Points)
	assert.True(t, won.HadBonus)
	assert.Equal(t, question.Player2, won.ForPlayer)

	skipped := RecordOutcome(q, OutcomeSkipped, award)
	assert.Zero(t, skipped.Points)
	assert.False(t, skipped.HadBonus)

	missed := RecordOutcome(q, OutcomeMissed, award)
	assert.Zero(t, missed.Points)
	assert.Equal(t, "Jaws", missed.Title)
}

func TestComputeFinalScore(t *testing.T) {
	records := []Record{
		{Outcome: OutcomeCorrect, Points: 100},
		{Outcome: OutcomeCorrect, Points: 150, HadBonus: true},
		{Outcome: OutcomeSkipped},
		{Outcome: OutcomeCorrect, Points: 100},
	}

	total, accuracy, best := ComputeFinalScore(records)
	assert.Equal(t, 350, total)
	assert.InDelta(t, 0.75, accuracy, 1e-9)
	assert.Equal(t, 2, best)

	total, accuracy, best = ComputeFinalScore(nil)
	assert.Zero(t, total)
	assert.Zero(t, accuracy)
	assert.Zero(t, best)
}

func TestTallies(t *testing.T) {
	standard := &StandardTally{}
	standard.Apply(Record{Points: 100})
	standard.Apply(Record{Points: 150})
	assert.Equal(t, Totals{Total: 250}, standard.Totals())

	pass := &PassPlayTally{}
	pass.Apply(Record{ForPlayer: question.Player1, Points: 100})
	pass.Apply(Record{ForPlayer: question.Player2, Points: 100})
	pass.Apply(Record{ForPlayer: question.Player1, Points: 150})
	pass.Apply(Record{ForPlayer: question.NoPlayer, Points: 999})
	assert.Equal(t, Totals{Player1: 250, Player2: 100}, pass.Totals())
}
