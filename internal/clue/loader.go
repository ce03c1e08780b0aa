package clue

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gokatarajesh/plot-twisted/internal/db/repository"
)

// ErrEmptySource is returned when a loader yields no records at all.
var ErrEmptySource = errors.New("clue source returned no records")

//go:embed data/clues.json
var defaultDeck []byte

// Loader supplies raw clue records at startup and on reload.
type Loader interface {
	Load(ctx context.Context) ([]Record, error)
}

// DecodeRecords parses a JSON array of records.
func DecodeRecords(data []byte) ([]Record, error) {
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode clue records: %w", err)
	}
	return records, nil
}

// FileLoader reads a JSON array of records from disk. With an empty path it
// serves the deck compiled into the binary.
type FileLoader struct {
	path string
}

func NewFileLoader(path string) *FileLoader {
	return &FileLoader{path: path}
}

func (l *FileLoader) Load(_ context.Context) ([]Record, error) {
	data := defaultDeck
	if l.path != "" {
		raw, err := os.ReadFile(l.path)
		if err != nil {
			return nil, fmt.Errorf("read clue file: %w", err)
		}
		data = raw
	}
	records, err := DecodeRecords(data)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrEmptySource
	}
	return records, nil
}

// RemoteLoader fetches a JSON array of records over HTTP.
type RemoteLoader struct {
	url        string
	httpClient *http.Client
}

func NewRemoteLoader(url string, httpClient *http.Client) *RemoteLoader {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &RemoteLoader{url: url, httpClient: httpClient}
}

func (l *RemoteLoader) Load(ctx context.Context) ([]Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch clues: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("clue feed non-200: %d", resp.StatusCode)
	}

	var records []Record
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode clue feed: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrEmptySource
	}
	return records, nil
}

// PostgresLoader reads the curated clues table.
type PostgresLoader struct {
	repo *repository.ClueRepository
}

func NewPostgresLoader(repo *repository.ClueRepository) *PostgresLoader {
	return &PostgresLoader{repo: repo}
}

func (l *PostgresLoader) Load(ctx context.Context) ([]Record, error) {
	rows, err := l.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clues: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptySource
	}
	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, Record{
			Title:    row.Title,
			Clue:     row.Clue,
			Category: row.Category,
			Emoji:    row.Emoji.String,
		})
	}
	return records, nil
}
