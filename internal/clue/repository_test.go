package clue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCluesGroupsByCategory(t *testing.T) {
	cats := LoadClues([]Record{
		{Title: "Die Hard", Clue: "Office party goes wrong", Category: "Action", Emoji: "💥"},
		{Title: "Jaws", Clue: "Beach stays open", Category: "Thriller"},
		{Title: "Speed", Clue: "Bus keeps moving", Category: "Action"},
	})

	assert.Equal(t, 2, cats.Len())
	assert.Equal(t, []string{"Action", "Thriller"}, cats.Names())

	action, ok := cats.Get("Action")
	require.True(t, ok)
	assert.Equal(t, "💥", action.Emoji)
	assert.Equal(t, 2, action.Size())
	assert.Equal(t, "Die Hard", action.Clues[0].Title)
	assert.Equal(t, "Speed", action.Clues[1].Title)
	assert.Equal(t, "💥", action.Clues[1].Emoji, "clues carry their category's emoji")

	thriller, ok := cats.Get("Thriller")
	require.True(t, ok)
	assert.Equal(t, DefaultEmoji, thriller.Emoji)
	assert.Equal(t, DefaultEmoji, thriller.Clues[0].Emoji)
}

func TestLoadCluesLateEmojiAppliesToEarlierClues(t *testing.T) {
	cats := LoadClues([]Record{
		{Title: "Up", Clue: "House floats away", Category: "Animated"},
		{Title: "Cars", Clue: "Race car takes a detour", Category: "Animated", Emoji: "🧸"},
	})

	animated, ok := cats.Get("Animated")
	require.True(t, ok)
	assert.Equal(t, "🧸", animated.Emoji)
	for _, c := range animated.Clues {
		assert.Equal(t, "🧸", c.Emoji, c.Title)
	}
}

func TestLoadCluesDropsTitlesWithNothingToGuess(t *testing.T) {
	cats := LoadClues([]Record{
		{Title: "?!", Clue: "Only punctuation", Category: "Odd"},
		{Title: " - ", Clue: "Only a dash", Category: "Odd"},
		{Title: "1917", Clue: "Single take through the trenches", Category: "War"},
	})

	odd, ok := cats.Get("Odd")
	require.True(t, ok, "category is still listed")
	assert.Zero(t, odd.Size())

	war, ok := cats.Get("War")
	require.True(t, ok)
	assert.Equal(t, 1, war.Size())
}

func TestLoadCluesDegradesMissingFields(t *testing.T) {
	cats := LoadClues([]Record{
		{Category: "Broken"},
		{Title: "Up", Clue: "House floats away"},
		{Title: "", Clue: "no title", Category: "Broken"},
	})

	broken, ok := cats.Get("Broken")
	require.True(t, ok)
	assert.Empty(t, broken.Clues)

	unc, ok := cats.Get(UncategorizedName)
	require.True(t, ok)
	require.Len(t, unc.Clues, 1)
	assert.Equal(t, "Up", unc.Clues[0].Title)
}

func TestLoadCluesEmptyInput(t *testing.T) {
	cats := LoadClues(nil)
	assert.Equal(t, 0, cats.Len())
	_, ok := cats.Get("Action")
	assert.False(t, ok)
}

func TestRepositoryReplace(t *testing.T) {
	repo := NewRepository([]Record{{Title: "Jaws", Clue: "Beach", Category: "Thriller"}})
	assert.Equal(t, []string{"Thriller"}, repo.Names())

	repo.Replace([]Record{
		{Title: "Up", Clue: "Balloons", Category: "Animated"},
		{Title: "Shrek", Clue: "Swamp", Category: "Animated"},
	})

	assert.Equal(t, []string{"Animated"}, repo.Names())
	_, ok := repo.Category("Thriller")
	assert.False(t, ok)

	cats := repo.Categories()
	require.Len(t, cats, 1)
	assert.Equal(t, 2, cats[0].Size())
}
