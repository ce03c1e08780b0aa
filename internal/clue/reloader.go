package clue

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Reloader periodically rebuilds the repository from its loader.
type Reloader struct {
	repo     *Repository
	loader   Loader
	logger   zerolog.Logger
	interval time.Duration
	timeout  time.Duration
	onReload func(categories int)
}

func NewReloader(repo *Repository, loader Loader, interval, timeout time.Duration, logger zerolog.Logger) *Reloader {
	if timeout <= 0 {
		timeout = 4 * time.Second
	}
	return &Reloader{
		repo:     repo,
		loader:   loader,
		logger:   logger.With().Str("component", "clue_reloader").Logger(),
		interval: interval,
		timeout:  timeout,
	}
}

// OnReload registers a hook called with the category count after each successful reload.
func (r *Reloader) OnReload(fn func(categories int)) {
	r.onReload = fn
}

// Reload fetches once and swaps the categories. On failure the previous
// categories stay in place.
func (r *Reloader) Reload(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	records, err := r.loader.Load(ctx)
	if err != nil {
		return err
	}
	r.repo.Replace(records)
	categories := len(r.repo.Names())
	r.logger.Info().Int("records", len(records)).Int("categories", categories).Msg("clues reloaded")
	if r.onReload != nil {
		r.onReload(categories)
	}
	return nil
}

// Run blocks until context cancellation. A non-positive interval disables reloading.
func (r *Reloader) Run(ctx context.Context) error {
	if r.interval <= 0 {
		return nil
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := r.Reload(ctx); err != nil {
				r.logger.Warn().Err(err).Msg("clue reload failed")
			}
		}
	}
}
