package clue

import (
	"strings"
	"sync"
	"unicode"
)

// LoadClues groups raw records into categories. Records missing a clue text or
// a title with at least one letter or digit are dropped, but their category is
// still registered so it shows up empty.
func LoadClues(records []Record) CategoryMap {
	m := CategoryMap{byName: make(map[string]*Category)}
	for _, rec := range records {
		name := strings.TrimSpace(rec.Category)
		if name == "" {
			name = UncategorizedName
		}
		emoji := strings.TrimSpace(rec.Emoji)

		cat, ok := m.byName[name]
		if !ok {
			cat = &Category{Name: name, Emoji: DefaultEmoji}
			m.byName[name] = cat
			m.order = append(m.order, name)
		}
		if emoji != "" && cat.Emoji == DefaultEmoji {
			cat.Emoji = emoji
		}

		title := strings.TrimSpace(rec.Title)
		text := strings.TrimSpace(rec.Clue)
		if !guessable(title) || text == "" {
			continue
		}
		cat.Clues = append(cat.Clues, Clue{
			Title:    title,
			Text:     text,
			Category: name,
		})
	}
	for _, cat := range m.byName {
		for i := range cat.Clues {
			cat.Clues[i].Emoji = cat.Emoji
		}
	}
	return m
}

// guessable reports whether a title has a letter or digit to uncover.
func guessable(title string) bool {
	return strings.IndexFunc(title, func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	}) >= 0
}

// Repository holds the current category map and lets loaders swap it atomically.
type Repository struct {
	mu   sync.RWMutex
	cats CategoryMap
}

// NewRepository builds a repository from an initial record set.
func NewRepository(records []Record) *Repository {
	return &Repository{cats: LoadClues(records)}
}

// Replace rebuilds categories from a fresh record set.
func (r *Repository) Replace(records []Record) {
	cats := LoadClues(records)
	r.mu.Lock()
	r.cats = cats
	r.mu.Unlock()
}

// Category returns a category by name.
func (r *Repository) Category(name string) (Category, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cats.Get(name)
}

// Categories returns all categories in first-seen order.
func (r *Repository) Categories() []Category {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cats.All()
}

// Names returns the category names in first-seen order.
func (r *Repository) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cats.Names()
}
