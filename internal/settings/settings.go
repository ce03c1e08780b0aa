package settings

import (
	"errors"
	"slices"
)

// DefaultRounds is used when nothing valid was saved or configured.
const DefaultRounds = 10

// ErrInvalidRoundChoice is returned for a round count outside RoundChoices.
var ErrInvalidRoundChoice = errors.New("round count is not one of the offered choices")

// RoundChoices are the round counts a player may pick.
var RoundChoices = []int{5, 10, 15}

// Settings are the persisted player preferences. Only Sound and NumRounds
// affect gameplay; the themes are for the presentation layer.
type Settings struct {
	DarkMode  bool `json:"darkMode"`
	NeonTheme bool `json:"neonTheme"`
	Sound     bool `json:"sound"`
	NumRounds int  `json:"numRounds"`
}

// Defaults returns the settings used before anything is saved.
func Defaults() Settings {
	return Settings{Sound: true, NumRounds: DefaultRounds}
}

// ValidRounds reports whether n is an offered round count.
func ValidRounds(n int) bool {
	return slices.Contains(RoundChoices, n)
}

// normalize enforces the theme exclusion and a valid round count.
func (s Settings) normalize(fallbackRounds int) Settings {
	if s.DarkMode && s.NeonTheme {
		s.NeonTheme = false
	}
	if !ValidRounds(s.NumRounds) {
		s.NumRounds = fallbackRounds
	}
	return s
}
