package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
)

// ErrDuplicateClue is returned when the same title and clue text already exist.
var ErrDuplicateClue = errors.New("clue already stored")

// ClueRow mirrors a row of the clues table.
type ClueRow struct {
	ClueID   int64       `db:"clue_id"`
	Title    string      `db:"title"`
	Clue     string      `db:"clue"`
	Category string      `db:"category"`
	Emoji    pgtype.Text `db:"emoji"`
}

// InsertClueParams holds the columns written by InsertClue.
type InsertClueParams struct {
	Title    string
	Clue     string
	Category string
	Emoji    pgtype.Text
}

type clueStore interface {
	ListClues(ctx context.Context) ([]ClueRow, error)
	InsertClue(ctx context.Context, arg InsertClueParams) (ClueRow, error)
}

// ClueRepository wraps curated clue access.
type ClueRepository struct {
	store clueStore
}

func NewClueRepository(store clueStore) *ClueRepository {
	return &ClueRepository{store: store}
}

// ListAll returns every clue ordered by insertion.
func (r *ClueRepository) ListAll(ctx context.Context) ([]ClueRow, error) {
	return r.store.ListClues(ctx)
}

// Insert stores a new clue.
func (r *ClueRepository) Insert(ctx context.Context, params InsertClueParams) (ClueRow, error) {
	return r.store.InsertClue(ctx, params)
}

// Seed inserts clues, skipping ones already stored, and reports how many were new.
func (r *ClueRepository) Seed(ctx context.Context, clues []InsertClueParams) (int, error) {
	inserted := 0
	for _, params := range clues {
		_, err := r.store.InsertClue(ctx, params)
		if errors.Is(err, ErrDuplicateClue) {
			continue
		}
		if err != nil {
			return inserted, fmt.Errorf("seed clue %q: %w", params.Title, err)
		}
		inserted++
	}
	return inserted, nil
}
