package round

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gokatarajesh/plot-twisted/internal/question"
)

// Status is the round lifecycle state. Every status except Active is terminal.
type Status string

const (
	StatusActive  Status = "active"
	StatusWon     Status = "won"
	StatusSkipped Status = "skipped"
	StatusLost    Status = "lost"
)

// MaskRune stands in for an unrevealed letter.
const MaskRune = '_'

// GuessResult describes what a single guess did.
type GuessResult struct {
	Accepted    bool   // false when the guess was ignored
	Letter      rune   // normalized uppercase character, zero when ignored
	Hit         bool   // letter occurs in the answer
	Occurrences int    // positions revealed by this guess
	Status      Status // round status after the guess
	Display     string // masked answer, or the full answer once the round is over
	StrikesLeft int
}

// Round tracks one question from clue to win, skip or loss.
type Round struct {
	question    question.Question
	answer      []rune
	guessed     map[rune]bool
	strikesLeft int
	status      Status
}

// Start begins a round. strikesLeft is carried in from the session.
func Start(q question.Question, strikesLeft int) *Round {
	if strikesLeft < 0 {
		strikesLeft = 0
	}
	return &Round{
		question:    q,
		answer:      []rune(Normalize(q.Title)),
		guessed:     make(map[rune]bool),
		strikesLeft: strikesLeft,
		status:      StatusActive,
	}
}

// Normalize upper-cases an answer.
func Normalize(title string) string {
	return strings.ToUpper(strings.TrimSpace(title))
}

// NeedsGuess reports whether a character must be guessed to be revealed.
// Letters and digits do; spaces and punctuation show from the start.
func NeedsGuess(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Guess applies a single-character guess. Letters are matched case-insensitively;
// digits are accepted so titles like "1917" stay winnable. Anything else,
// multi-character input, repeats and guesses after the round ended are ignored
// without changing state.
func (r *Round) Guess(input string) GuessResult {
	letter, ok := parseLetter(input)
	if !ok || r.status != StatusActive || r.guessed[letter] {
		return r.result(GuessResult{})
	}
	r.guessed[letter] = true

	occurrences := 0
	for _, ch := range r.answer {
		if ch == letter {
			occurrences++
		}
	}

	res := GuessResult{Accepted: true, Letter: letter, Hit: occurrences > 0, Occurrences: occurrences}
	if res.Hit {
		if r.solved() {
			r.status = StatusWon
		}
		return r.result(res)
	}

	r.strikesLeft--
	if r.strikesLeft <= 0 {
		r.strikesLeft = 0
		r.status = StatusLost
	}
	return r.result(res)
}

// Skip gives up on an active round. It reports whether the skip took effect.
func (r *Round) Skip() bool {
	if r.status != StatusActive {
		return false
	}
	r.status = StatusSkipped
	return true
}

func (r *Round) result(res GuessResult) GuessResult {
	res.Status = r.status
	res.Display = r.Display()
	res.StrikesLeft = r.strikesLeft
	return res
}

func (r *Round) solved() bool {
	for _, ch := range r.answer {
		if NeedsGuess(ch) && !r.guessed[ch] {
			return false
		}
	}
	return true
}

// Masked renders the answer with unguessed letters replaced by MaskRune.
func (r *Round) Masked() string {
	var b strings.Builder
	b.Grow(len(r.answer))
	for _, ch := range r.answer {
		if NeedsGuess(ch) && !r.guessed[ch] {
			b.WriteRune(MaskRune)
			continue
		}
		b.WriteRune(ch)
	}
	return b.String()
}

// Display is the masked answer while active and the true answer afterwards.
func (r *Round) Display() string {
	if r.status == StatusActive {
		return r.Masked()
	}
	return r.Answer()
}

// Answer is the normalized answer.
func (r *Round) Answer() string { return string(r.answer) }

// Question returns the question being played.
func (r *Round) Question() question.Question { return r.question }

// Status returns the current status.
func (r *Round) Status() Status { return r.status }

// IsOver reports whether the round reached a terminal status.
func (r *Round) IsOver() bool { return r.status != StatusActive }

// StrikesLeft returns the strikes remaining in the shared pool.
func (r *Round) StrikesLeft() int { return r.strikesLeft }

// Guessed reports whether a letter was already tried.
func (r *Round) Guessed(letter rune) bool { return r.guessed[unicode.ToUpper(letter)] }

// GuessedLetters lists tried letters in answer order first, then misses in code point order.
func (r *Round) GuessedLetters() []rune {
	out := make([]rune, 0, len(r.guessed))
	seen := make(map[rune]bool, len(r.guessed))
	for _, ch := range r.answer {
		if r.guessed[ch] && !seen[ch] {
			seen[ch] = true
			out = append(out, ch)
		}
	}
	var misses []rune
	for ch := range r.guessed {
		if !seen[ch] {
			misses = append(misses, ch)
		}
	}
	slices.Sort(misses)
	return append(out, misses...)
}

func parseLetter(input string) (rune, bool) {
	input = strings.TrimSpace(input)
	if utf8.RuneCountInString(input) != 1 {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(input)
	if !NeedsGuess(r) {
		return 0, false
	}
	return unicode.ToUpper(r), true
}
