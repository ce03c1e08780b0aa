package session

import "errors"

var (
	// ErrCategoryRequired is returned when a start request leaves a category unselected.
	ErrCategoryRequired = errors.New("category selection required")
	// ErrUnknownCategory is returned when the selected category is not loaded.
	ErrUnknownCategory   = errors.New("unknown category")
	ErrInvalidRoundCount = errors.New("round count must be positive")
	ErrNoActiveSession   = errors.New("no active session")
	// ErrRoundInProgress is returned by Advance while the current round is still active.
	ErrRoundInProgress = errors.New("round still in progress")
)
