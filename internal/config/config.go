package config

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/caarlos0/env/v10"
)

// Clue source kinds.
const (
	SourceFile     = "file"
	SourceHTTP     = "http"
	SourcePostgres = "postgres"
)

// App holds core runtime configuration shared across services.
type App struct {
	Name                    string        `env:"APP_NAME" envDefault:"plot-twisted"`
	Env                     string        `env:"APP_ENV" envDefault:"development"`
	LogLevel                string        `env:"LOG_LEVEL" envDefault:"info"`
	HTTPAddr                string        `env:"HTTP_ADDR" envDefault:"0.0.0.0:8080"`
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_SECONDS" envDefault:"20s"`

	Postgres Postgres
	Redis    Redis
	Clues    Clues
	Game     Game
	Settings Settings
}

// Postgres captures connection info for the clue database. Only used when
// CLUES_SOURCE=postgres and by the migrator.
type Postgres struct {
	Host     string `env:"PG_HOST" envDefault:"localhost"`
	Port     int    `env:"PG_PORT" envDefault:"5432"`
	User     string `env:"PG_USER" envDefault:"postgres"`
	Password string `env:"PG_PASSWORD" envDefault:""`
	Database string `env:"PG_DATABASE" envDefault:"plot_twisted"`
	SSLMode  string `env:"PG_SSL_MODE" envDefault:"disable"`
}

// ConnString renders a pgx keyword/value connection string.
func (p Postgres) ConnString() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s pool_max_conns=10",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode)
}

// Redis holds the settings store configuration. An empty address keeps
// settings in memory.
type Redis struct {
	Addr     string `env:"REDIS_ADDR" envDefault:""`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	PoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"10"`
}

// Clues selects where clue data comes from and how often it is reloaded.
type Clues struct {
	Source         string        `env:"CLUES_SOURCE" envDefault:"file"`
	Path           string        `env:"CLUES_PATH" envDefault:""` // empty serves the built-in deck
	URL            string        `env:"CLUES_URL" envDefault:""`
	ReloadInterval time.Duration `env:"CLUES_RELOAD_INTERVAL" envDefault:"0s"`
	FetchTimeout   time.Duration `env:"CLUES_FETCH_TIMEOUT" envDefault:"5s"`
}

// Game groups gameplay constants.
type Game struct {
	StartingStrikes int           `env:"GAME_STARTING_STRIKES" envDefault:"3"`
	BaseScore       int           `env:"GAME_BASE_SCORE" envDefault:"100"`
	StreakBonus     int           `env:"GAME_STREAK_BONUS" envDefault:"50"`
	StreakThreshold int           `env:"GAME_STREAK_THRESHOLD" envDefault:"2"`
	RevealDelay     time.Duration `env:"GAME_REVEAL_DELAY" envDefault:"1500ms"`
	DefaultRounds   int           `env:"GAME_DEFAULT_ROUNDS" envDefault:"10"`
}

// Settings names the persisted settings profile.
type Settings struct {
	Profile string `env:"SETTINGS_PROFILE" envDefault:"default"`
}

// Load parses environment variables into App config.
func Load(ctx context.Context) (*App, error) {
	cfg := &App{}
	if err := env.ParseWithOptions(cfg, env.Options{RequiredIfNoDef: true}); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// Validate checks cross-field constraints env tags cannot express.
func (c *App) Validate() error {
	if !slices.Contains([]string{SourceFile, SourceHTTP, SourcePostgres}, c.Clues.Source) {
		return fmt.Errorf("CLUES_SOURCE must be file, http or postgres, got %q", c.Clues.Source)
	}
	if c.Clues.Source == SourceHTTP && c.Clues.URL == "" {
		return errors.New("CLUES_URL is required when CLUES_SOURCE=http")
	}
	if c.Game.StartingStrikes <= 0 {
		return errors.New("GAME_STARTING_STRIKES must be positive")
	}
	return nil
}
