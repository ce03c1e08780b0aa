package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/plot-twisted/internal/clue"
	"github.com/gokatarajesh/plot-twisted/internal/config"
	"github.com/gokatarajesh/plot-twisted/internal/db/repository"
	"github.com/gokatarajesh/plot-twisted/internal/logging"
	"github.com/gokatarajesh/plot-twisted/internal/metrics"
	"github.com/gokatarajesh/plot-twisted/internal/play"
	"github.com/gokatarajesh/plot-twisted/internal/question"
	"github.com/gokatarajesh/plot-twisted/internal/server"
	"github.com/gokatarajesh/plot-twisted/internal/session/scoring"
	"github.com/gokatarajesh/plot-twisted/internal/settings"
	ws "github.com/gokatarajesh/plot-twisted/pkg/http/ws"
)

// Application aggregates shared infrastructure (clue source, settings store, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	pool  *pgxpool.Pool  // nil unless clues come from Postgres
	redis *redis.Client  // nil when settings live in memory
	http  *http.Server
	hub   *ws.Hub

	reloader  *clue.Reloader
	bgCancels []context.CancelFunc
}

// New bootstraps logger, clue repository, settings and HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env, cfg.LogLevel)
	logger.Info().Str("clue_source", cfg.Clues.Source).Msg("starting application bootstrap")

	a := &Application{
		cfg:       cfg,
		logger:    logger,
		bgCancels: make([]context.CancelFunc, 0, 1),
	}

	loader, err := a.clueLoader(ctx)
	if err != nil {
		return nil, err
	}

	m := metrics.New()
	categories := clue.NewRepository(nil)
	a.reloader = clue.NewReloader(categories, loader, cfg.Clues.ReloadInterval, cfg.Clues.FetchTimeout, logger)
	a.reloader.OnReload(m.CategoriesLoaded)
	if err := a.reloader.Reload(ctx); err != nil {
		if cfg.Clues.Source == config.SourceFile && cfg.Clues.Path == "" {
			return nil, fmt.Errorf("load built-in clues: %w", err)
		}
		logger.Warn().Err(err).Msg("clue source unavailable, serving built-in deck until next reload")
		deck, deckErr := clue.NewFileLoader("").Load(ctx)
		if deckErr != nil {
			return nil, fmt.Errorf("load built-in clues: %w", deckErr)
		}
		categories.Replace(deck)
		m.CategoriesLoaded(len(categories.Names()))
	}

	settingsMgr := settings.NewManager(a.settingsStore(ctx), settings.ManagerOptions{
		Profile:       cfg.Settings.Profile,
		DefaultRounds: cfg.Game.DefaultRounds,
	}, logger)
	if _, err := settingsMgr.Load(ctx); err != nil {
		logger.Warn().Err(err).Msg("settings unavailable, using defaults")
	}

	a.hub = ws.NewHub(logger)
	playHandler := play.NewHandler(categories, question.NewSelector(nil), settingsMgr, a.hub, m, play.Options{
		StartingStrikes: cfg.Game.StartingStrikes,
		ScoringConfig: scoring.ScoringConfig{
			BaseScore:       cfg.Game.BaseScore,
			StreakBonus:     cfg.Game.StreakBonus,
			StreakThreshold: cfg.Game.StreakThreshold,
		},
		RevealDelay: cfg.Game.RevealDelay,
	}, logger)
	httpHandlers := play.NewHTTPHandlers(categories, settingsMgr, logger)

	pingers := map[string]server.Pinger{}
	if a.pool != nil {
		pingers["postgres"] = a.pool.Ping
	}
	if a.redis != nil {
		pingers["redis"] = func(ctx context.Context) error { return a.redis.Ping(ctx).Err() }
	}

	a.http = server.NewHTTPServer(cfg, logger, server.Routes{
		Metrics:    m.Handler(),
		Categories: httpHandlers.ListCategories,
		Settings:   httpHandlers.Settings,
		PlayWS:     playHandler.HandleWebSocket,
		Pingers:    pingers,
	})
	return a, nil
}

func (a *Application) clueLoader(ctx context.Context) (clue.Loader, error) {
	switch a.cfg.Clues.Source {
	case config.SourceHTTP:
		return clue.NewRemoteLoader(a.cfg.Clues.URL, &http.Client{Timeout: a.cfg.Clues.FetchTimeout}), nil
	case config.SourcePostgres:
		pool, err := pgxpool.New(ctx, a.cfg.Postgres.ConnString())
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		a.pool = pool
		return clue.NewPostgresLoader(repository.NewClueRepository(repository.NewPGStore(pool))), nil
	default:
		return clue.NewFileLoader(a.cfg.Clues.Path), nil
	}
}

// settingsStore prefers Redis and falls back to memory when it is not
// configured or does not answer.
func (a *Application) settingsStore(ctx context.Context) settings.Store {
	if a.cfg.Redis.Addr == "" {
		a.logger.Info().Msg("REDIS_ADDR not set, settings kept in memory")
		return settings.NewMemoryStore()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     a.cfg.Redis.Addr,
		DB:       a.cfg.Redis.DB,
		PoolSize: a.cfg.Redis.PoolSize,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		a.logger.Warn().Err(err).Str("addr", a.cfg.Redis.Addr).Msg("redis unreachable, settings kept in memory")
		_ = client.Close()
		return settings.NewMemoryStore()
	}

	a.redis = client
	return settings.NewRedisStore(client)
}

// Handler exposes the HTTP routes, mainly for tests.
func (a *Application) Handler() http.Handler { return a.http.Handler }

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	a.startBackgroundWorkers(ctx)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	return a.Close()
}

// Close shuts everything down within the graceful timeout.
func (a *Application) Close() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}
	a.hub.CloseAll()

	for _, cancel := range a.bgCancels {
		cancel()
	}

	if a.pool != nil {
		a.pool.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error().Err(err).Msg("redis shutdown error")
		}
	}

	a.logger.Info().Msg("shutdown complete")
	return nil
}

func (a *Application) startBackgroundWorkers(ctx context.Context) {
	bgCtx, cancel := context.WithCancel(ctx)
	a.bgCancels = append(a.bgCancels, cancel)
	go func() {
		if err := a.reloader.Run(bgCtx); err != nil && !errors.Is(err, context.Canceled) {
			a.logger.Warn().Err(err).Msg("clue reloader stopped")
		}
	}()
}
