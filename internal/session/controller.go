package session

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/plot-twisted/internal/clue"
	"github.com/gokatarajesh/plot-twisted/internal/feedback"
	"github.com/gokatarajesh/plot-twisted/internal/metrics"
	"github.com/gokatarajesh/plot-twisted/internal/question"
	"github.com/gokatarajesh/plot-twisted/internal/session/round"
	"github.com/gokatarajesh/plot-twisted/internal/session/scoring"
)

// DefaultStartingStrikes is the shared strike pool a session starts with.
const DefaultStartingStrikes = 3

// CategorySource resolves a category by name.
type CategorySource interface {
	Category(name string) (clue.Category, bool)
}

// ControllerOptions configures a session controller. Zero values select defaults.
type ControllerOptions struct {
	StartingStrikes int
	ScoringConfig   scoring.ScoringConfig
	Sounder         feedback.Sounder
	Speaker         feedback.Speaker
	Metrics         *metrics.Metrics
}

// PassPlayInput starts a pass & play game. Each player picks the category the
// other player answers from.
type PassPlayInput struct {
	Player1Name string `json:"player1_name"`
	Player2Name string `json:"player2_name"`
	Player1Pick string `json:"player1_pick"` // played by player 2
	Player2Pick string `json:"player2_pick"` // played by player 1
	Rounds      int    `json:"rounds"`
}

// Controller owns one session at a time and drives it through rounds. All
// methods are safe for concurrent use.
type Controller struct {
	mu              sync.Mutex
	categories      CategorySource
	selector        *question.Selector
	scoringEngine   *scoring.Engine
	renderer        Renderer
	sounder         feedback.Sounder
	speaker         feedback.Speaker
	metrics         *metrics.Metrics
	startingStrikes int
	logger          zerolog.Logger

	state  *State
	replay func() error
}

// NewController creates a controller with no active session.
func NewController(
	categories CategorySource,
	selector *question.Selector,
	renderer Renderer,
	opts ControllerOptions,
	logger zerolog.Logger,
) *Controller {
	if selector == nil {
		selector = question.NewSelector(nil)
	}
	if renderer == nil {
		renderer = NopRenderer{}
	}
	if opts.Sounder == nil {
		opts.Sounder = feedback.Nop{}
	}
	if opts.Speaker == nil {
		opts.Speaker = feedback.Nop{}
	}
	if opts.StartingStrikes <= 0 {
		opts.StartingStrikes = DefaultStartingStrikes
	}

	return &Controller{
		categories:      categories,
		selector:        selector,
		scoringEngine:   scoring.NewEngine(opts.ScoringConfig),
		renderer:        renderer,
		sounder:         opts.Sounder,
		speaker:         opts.Speaker,
		metrics:         opts.Metrics,
		startingStrikes: opts.StartingStrikes,
		logger:          logger.With().Str("component", "session").Logger(),
	}
}

// StartStandard discards any current session and starts a standard game over
// one category. The session may run shorter than rounds, or end at once, when
// the category has fewer distinct titles.
func (c *Controller) StartStandard(ctx context.Context, category string, rounds int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	replay := func() error { return c.startStandard(category, rounds) }
	if err := replay(); err != nil {
		return err
	}
	c.replay = replay
	return nil
}

func (c *Controller) startStandard(category string, rounds int) error {
	category = strings.TrimSpace(category)
	cat, err := c.resolve(category, rounds)
	if err != nil {
		c.logger.Warn().Err(err).Str("category", category).Int("rounds", rounds).Msg("standard start refused")
		return err
	}

	questions := c.selector.Select(cat.Clues, rounds)
	c.begin(Standard{Category: cat.Name}, questions)
	return nil
}

// StartPassPlay discards any current session and starts a pass & play game.
// Each player gets up to ceil(rounds/2) questions from the opponent's pick,
// interleaved turn by turn.
func (c *Controller) StartPassPlay(ctx context.Context, in PassPlayInput) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	replay := func() error { return c.startPassPlay(in) }
	if err := replay(); err != nil {
		return err
	}
	c.replay = replay
	return nil
}

func (c *Controller) startPassPlay(in PassPlayInput) error {
	pick1, pick2 := strings.TrimSpace(in.Player1Pick), strings.TrimSpace(in.Player2Pick)
	refuse := func(err error) error {
		c.logger.Warn().Err(err).
			Str("player1_pick", pick1).
			Str("player2_pick", pick2).
			Int("rounds", in.Rounds).
			Msg("pass & play start refused")
		return err
	}

	// Player 1 answers player 2's pick and vice versa.
	forPlayer1, err := c.resolve(pick2, in.Rounds)
	if err != nil {
		return refuse(err)
	}
	forPlayer2, err := c.resolve(pick1, in.Rounds)
	if err != nil {
		return refuse(err)
	}

	mode := PassPlay{
		Player1: Player{Name: nameOr(in.Player1Name, DefaultPlayer1Name), Category: forPlayer1.Name},
		Player2: Player{Name: nameOr(in.Player2Name, DefaultPlayer2Name), Category: forPlayer2.Name},
	}
	perPlayer := (in.Rounds + 1) / 2
	first := c.selector.Select(forPlayer1.Clues, perPlayer)
	// Titles stay unique across the session even when both picks overlap.
	second := c.selector.SelectExcluding(forPlayer2.Clues, perPlayer, question.TitleKeys(first))
	questions := question.Interleave(first, second)
	c.begin(mode, questions)
	return nil
}

func (c *Controller) resolve(name string, rounds int) (clue.Category, error) {
	if name == "" {
		return clue.Category{}, ErrCategoryRequired
	}
	if rounds <= 0 {
		return clue.Category{}, fmt.Errorf("%w: got %d", ErrInvalidRoundCount, rounds)
	}
	cat, ok := c.categories.Category(name)
	if !ok {
		return clue.Category{}, fmt.Errorf("%w: %q", ErrUnknownCategory, name)
	}
	return cat, nil
}

func nameOr(name, fallback string) string {
	if name = strings.TrimSpace(name); name != "" {
		return name
	}
	return fallback
}

func (c *Controller) begin(mode Mode, questions []question.Question) {
	c.state = &State{
		ID:        uuid.New(),
		Mode:      mode,
		Questions: questions,
		Strikes:   c.startingStrikes,
		Tally:     mode.NewTally(),
	}
	c.metrics.SessionStarted(string(mode.Kind()))
	c.logger.Info().
		Str("session_id", c.state.ID.String()).
		Str("mode", string(mode.Kind())).
		Int("questions", len(questions)).
		Msg("session started")

	c.sounder.Play(feedback.SoundWin)
	if len(questions) == 0 {
		c.end(false, false)
		return
	}
	c.startRound(0)
}

func (c *Controller) startRound(index int) {
	s := c.state
	s.Index = index
	q := s.Questions[index]
	s.Round = round.Start(q, s.Strikes)

	emoji := q.Emoji
	if emoji == "" {
		emoji = clue.DefaultEmoji
	}
	c.renderer.OnRoundStarted(RoundView{
		SessionID:   s.ID,
		Index:       index,
		Total:       len(s.Questions),
		Category:    q.Category,
		Emoji:       emoji,
		Clue:        q.Text,
		ForPlayer:   q.ForPlayer,
		PlayerName:  s.Mode.PlayerName(q.ForPlayer),
		Masked:      s.Round.Masked(),
		StrikesLeft: s.Strikes,
		Progress:    s.ProgressLabel(),
		Score:       s.ScoreLabel(),
	})
	c.renderer.OnRoundStateChanged(s.Round.Display(), s.Strikes, s.ProgressLabel())
}

func (c *Controller) active() (*State, error) {
	if c.state == nil || c.state.Ended || c.state.Round == nil {
		return nil, ErrNoActiveSession
	}
	return c.state, nil
}

// Guess applies a letter or digit to the current round. Ignored input returns
// a result with Accepted=false and no error.
func (c *Controller) Guess(input string) (round.GuessResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, err := c.active()
	if err != nil {
		return round.GuessResult{}, err
	}

	res := s.Round.Guess(input)
	if !res.Accepted {
		return res, nil
	}
	s.Strikes = res.StrikesLeft
	c.metrics.Guess(res.Hit)

	if res.Hit {
		c.sounder.Play(feedback.SoundCorrect)
	} else {
		c.sounder.Play(feedback.SoundWrong)
	}
	c.renderer.OnRoundStateChanged(res.Display, res.StrikesLeft, s.ProgressLabel())

	switch res.Status {
	case round.StatusWon:
		c.settleWin(s)
	case round.StatusLost:
		c.settle(s, scoring.OutcomeMissed)
		c.renderer.OnRoundLost("✗ Out of strikes! Answer: " + s.Round.Answer())
	}
	return res, nil
}

// Skip gives up on the current round. It reports whether the skip took effect.
func (c *Controller) Skip() (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, err := c.active()
	if err != nil {
		return false, err
	}
	if !s.Round.Skip() {
		return false, nil
	}

	c.settle(s, scoring.OutcomeSkipped)
	c.renderer.OnRoundStateChanged(s.Round.Display(), s.Strikes, s.ProgressLabel())
	c.renderer.OnRoundSkipped("Skipped! The answer was: " + s.Round.Answer())
	return true, nil
}

func (c *Controller) settleWin(s *State) {
	s.Streak++
	award := c.scoringEngine.ScoreWin(s.Streak)
	c.record(s, scoring.RecordOutcome(s.Round.Question(), scoring.OutcomeCorrect, award))

	c.sounder.Play(feedback.SoundWin)
	c.renderer.OnRoundWon(c.winFeedback(award, s.Streak))
	c.renderer.OnScoreChanged(s.ScoreLabel())
}

// settle records a zero-point outcome and breaks the streak.
func (c *Controller) settle(s *State, outcome scoring.Outcome) {
	s.Streak = 0
	c.record(s, scoring.RecordOutcome(s.Round.Question(), outcome, scoring.Award{}))
}

func (c *Controller) record(s *State, rec scoring.Record) {
	s.History = append(s.History, rec)
	s.Tally.Apply(rec)
	c.metrics.RoundFinished(string(rec.Outcome))
}

func (c *Controller) winFeedback(award scoring.Award, streak int) string {
	var b strings.Builder
	b.WriteString("✓ Correct!")
	if award.HadBonus {
		fmt.Fprintf(&b, " +%d STREAK BONUS! 🔥", c.scoringEngine.Config().StreakBonus)
	}
	if streak >= 2 {
		fmt.Fprintf(&b, " (%d in a row!)", streak)
	}
	return b.String()
}

// Advance moves past a finished round: it starts the next question, or ends
// the session once the list is exhausted or no strikes remain.
func (c *Controller) Advance() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, err := c.active()
	if err != nil {
		return err
	}
	if !s.Round.IsOver() {
		return ErrRoundInProgress
	}

	switch next := s.Index + 1; {
	case s.Strikes <= 0:
		c.end(false, true)
	case next >= len(s.Questions):
		c.end(false, false)
	default:
		c.startRound(next)
	}
	return nil
}

// Quit ends the current session early. Settled rounds stay in the summary.
func (c *Controller) Quit() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.active(); err != nil {
		return err
	}
	c.end(true, false)
	return nil
}

// PlayAgain replays the last successful start with fresh questions.
func (c *Controller) PlayAgain(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.replay == nil {
		return ErrNoActiveSession
	}
	return c.replay()
}

// SpeakClue reads the current clue aloud, announcing whose turn it is in pass & play.
func (c *Controller) SpeakClue() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, err := c.active()
	if err != nil {
		return err
	}
	text := s.Round.Question().Text
	if name := s.Mode.PlayerName(s.CurrentPlayer()); name != "" {
		text = name + "'s turn. " + text
	}
	c.speaker.Speak(text)
	return nil
}

// Snapshot copies the current session, if there is one.
func (c *Controller) Snapshot() (Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == nil {
		return Snapshot{}, false
	}
	return c.state.snapshot(), true
}

func (c *Controller) end(forced, outOfStrikes bool) {
	s := c.state
	s.Ended = true

	total, accuracy, best := scoring.ComputeFinalScore(s.History)
	summary := Summary{
		SessionID:    s.ID,
		Mode:         s.Mode.Kind(),
		Title:        "Your Final Cut",
		ForcedQuit:   forced,
		OutOfStrikes: outOfStrikes,
		Accuracy:     accuracy,
		BestStreak:   best,
		Records:      append([]scoring.Record(nil), s.History...),
	}
	if forced || outOfStrikes {
		summary.Title = "Game Over"
	}
	s.Mode.summarize(&summary, s.Tally.Totals())

	reason := "completed"
	switch {
	case forced:
		reason = "quit"
	case outOfStrikes:
		reason = "out_of_strikes"
	}
	c.metrics.SessionEnded(reason)
	c.logger.Info().
		Str("session_id", s.ID.String()).
		Str("reason", reason).
		Int("points", total).
		Int("rounds_played", len(s.History)).
		Msg("session ended")

	c.renderer.OnSessionEnded(summary)
}
