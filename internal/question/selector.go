package question

import (
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/gokatarajesh/plot-twisted/internal/clue"
)

// Selector draws de-duplicated, shuffled question lists from a clue pool.
type Selector struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSelector uses rng for every random choice. A nil rng gets a randomly seeded PCG.
func NewSelector(rng *rand.Rand) *Selector {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Selector{rng: rng}
}

// NewSeededSelector returns a selector with a deterministic sequence.
func NewSeededSelector(seed uint64) *Selector {
	return NewSelector(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// Select picks one clue per distinct title, shuffles the result and caps it at
// count. A smaller pool yields every title it has. The input is never modified.
func (s *Selector) Select(clues []clue.Clue, count int) []Question {
	return s.SelectExcluding(clues, count, nil)
}

// SelectExcluding is Select restricted to titles whose TitleKey is not in
// taken, so lists drawn for one session can be kept free of repeats.
func (s *Selector) SelectExcluding(clues []clue.Clue, count int, taken map[string]bool) []Question {
	if count <= 0 || len(clues) == 0 {
		return []Question{}
	}

	groups := make(map[string][]clue.Clue)
	var order []string
	for _, c := range clues {
		key := TitleKey(c.Title)
		if taken[key] {
			continue
		}
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], c)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pool := make([]Question, 0, len(order))
	for _, key := range order {
		group := groups[key]
		pool = append(pool, Question{Clue: group[s.rng.IntN(len(group))]})
	}

	s.rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	if len(pool) > count {
		pool = pool[:count]
	}
	return pool
}

// Interleave alternates player 1 and player 2 questions, tagging each with its
// player. Leftovers from the longer list are appended in order.
func Interleave(first, second []Question) []Question {
	out := make([]Question, 0, len(first)+len(second))
	for i := 0; i < max(len(first), len(second)); i++ {
		if i < len(first) {
			out = append(out, first[i].ForPlayerSlot(Player1))
		}
		if i < len(second) {
			out = append(out, second[i].ForPlayerSlot(Player2))
		}
	}
	return out
}

// TitleKeys returns the TitleKey of every question.
func TitleKeys(qs []Question) map[string]bool {
	keys := make(map[string]bool, len(qs))
	for _, q := range qs {
		keys[TitleKey(q.Title)] = true
	}
	return keys
}

// TitleKey is the comparison key for de-duplication: titles that normalize to
// the same answer count as one title.
func TitleKey(title string) string {
	return strings.ToUpper(strings.TrimSpace(title))
}
