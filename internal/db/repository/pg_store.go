package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	listCluesSQL = `SELECT clue_id, title, clue, category, emoji FROM clues ORDER BY clue_id`

	insertClueSQL = `INSERT INTO clues (title, clue, category, emoji)
VALUES ($1, $2, $3, $4)
ON CONFLICT DO NOTHING
RETURNING clue_id, title, clue, category, emoji`
)

// PGStore runs clue queries against a pgx pool.
type PGStore struct {
	pool *pgxpool.Pool
}

var _ clueStore = (*PGStore)(nil)

func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

func (s *PGStore) ListClues(ctx context.Context) ([]ClueRow, error) {
	rows, err := s.pool.Query(ctx, listCluesSQL)
	if err != nil {
		return nil, fmt.Errorf("query clues: %w", err)
	}
	out, err := pgx.CollectRows(rows, pgx.RowToStructByName[ClueRow])
	if err != nil {
		return nil, fmt.Errorf("scan clues: %w", err)
	}
	return out, nil
}

func (s *PGStore) InsertClue(ctx context.Context, arg InsertClueParams) (ClueRow, error) {
	rows, err := s.pool.Query(ctx, insertClueSQL, arg.Title, arg.Clue, arg.Category, arg.Emoji)
	if err != nil {
		return ClueRow{}, fmt.Errorf("insert clue: %w", err)
	}
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[ClueRow])
	if errors.Is(err, pgx.ErrNoRows) {
		return ClueRow{}, ErrDuplicateClue
	}
	if err != nil {
		return ClueRow{}, fmt.Errorf("scan inserted clue: %w", err)
	}
	return row, nil
}
