package clue

// DefaultEmoji is shown for categories whose records carry no emoji.
const DefaultEmoji = "🎬"

// UncategorizedName collects records that arrive without a category name.
const UncategorizedName = "Uncategorized"

// Record is a raw clue row as supplied by a loader. Any field may be empty.
type Record struct {
	Title    string `json:"title"`
	Clue     string `json:"clue"`
	Category string `json:"category"`
	Emoji    string `json:"emoji,omitempty"`
}

// Clue is an immutable, validated clue for a movie title. Emoji is the
// emoji of the category it was loaded into.
type Clue struct {
	Title    string `json:"title"`
	Text     string `json:"clue"`
	Category string `json:"category"`
	Emoji    string `json:"emoji,omitempty"`
}

// Category groups clues sharing a category name.
type Category struct {
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
	Clues []Clue `json:"-"`
}

// Size reports the number of clues in the category.
func (c Category) Size() int { return len(c.Clues) }

// CategoryMap is keyed by category name and remembers first-seen order.
type CategoryMap struct {
	byName map[string]*Category
	order  []string
}

// Len reports the number of categories.
func (m CategoryMap) Len() int { return len(m.order) }

// Get returns the category by name.
func (m CategoryMap) Get(name string) (Category, bool) {
	cat, ok := m.byName[name]
	if !ok {
		return Category{}, false
	}
	return *cat, true
}

// Names lists category names in first-seen order.
func (m CategoryMap) Names() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// All lists categories in first-seen order.
func (m CategoryMap) All() []Category {
	out := make([]Category, 0, len(m.order))
	for _, name := range m.order {
		out = append(out, *m.byName[name])
	}
	return out
}
