package main

import (
	"context"
	"database/sql"
	"flag"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gokatarajesh/plot-twisted/db/migrations"
	"github.com/gokatarajesh/plot-twisted/internal/clue"
	"github.com/gokatarajesh/plot-twisted/internal/config"
	"github.com/gokatarajesh/plot-twisted/internal/db/repository"
)

func main() {
	var (
		command = flag.String("command", "up", "Migration command: up, down, status, or seed")
		dir     = flag.String("dir", "", "Directory containing migration files (default: embedded migrations)")
		deck    = flag.String("deck", "", "Clue JSON file to seed (default: built-in deck)")
	)
	flag.Parse()

	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Str("app", "migrator").Logger()

	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load("configs/.env")
	}

	cfg, err := config.Load(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	pg := cfg.Postgres

	if *command == "seed" {
		if err := seed(pg, *deck); err != nil {
			log.Fatal().Err(err).Msg("failed to seed clues")
		}
		return
	}

	// Connect to database using pgx via stdlib (database/sql compatible)
	db, err := sql.Open("pgx", pg.ConnString())
	if err != nil {
		log.Fatal().Err(err).Str("host", pg.Host).Int("port", pg.Port).Msg("failed to open database connection")
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("failed to ping database")
	}

	migrationDir, migrationFS := ".", fs.FS(migrations.FS)
	if *dir != "" {
		abs, err := filepath.Abs(*dir)
		if err != nil {
			log.Fatal().Err(err).Str("dir", *dir).Msg("failed to resolve migration directory")
		}
		if _, err := os.Stat(abs); os.IsNotExist(err) {
			log.Fatal().Str("dir", abs).Msg("migration directory does not exist")
		}
		migrationDir, migrationFS = abs, nil
	}

	log.Info().
		Str("host", pg.Host).
		Int("port", pg.Port).
		Str("database", pg.Database).
		Str("migration_dir", migrationDir).
		Msg("connected to database")

	goose.SetBaseFS(migrationFS)
	goose.SetTableName("goose_db_version")
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatal().Err(err).Msg("failed to set goose dialect")
	}

	switch *command {
	case "up":
		if err := goose.Up(db, migrationDir); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations up")
		}
		log.Info().Msg("migrations applied successfully")

	case "down":
		if err := goose.Down(db, migrationDir); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations down")
		}
		log.Info().Msg("migrations rolled back successfully")

	case "status":
		if err := goose.Status(db, migrationDir); err != nil {
			log.Fatal().Err(err).Msg("failed to get migration status")
		}

	default:
		log.Fatal().Str("command", *command).Msg("unknown command. Use: up, down, status, or seed")
	}
}

// seed loads a deck and inserts every clue not already stored.
func seed(pg config.Postgres, deckPath string) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	records, err := clue.NewFileLoader(deckPath).Load(ctx)
	if err != nil {
		return err
	}

	pool, err := pgxpool.New(ctx, pg.ConnString())
	if err != nil {
		return err
	}
	defer pool.Close()

	params := make([]repository.InsertClueParams, 0, len(records))
	for _, rec := range records {
		params = append(params, repository.InsertClueParams{
			Title:    rec.Title,
			Clue:     rec.Clue,
			Category: rec.Category,
			Emoji:    pgtype.Text{String: rec.Emoji, Valid: rec.Emoji != ""},
		})
	}

	repo := repository.NewClueRepository(repository.NewPGStore(pool))
	inserted, err := repo.Seed(ctx, params)
	if err != nil {
		return err
	}
	log.Info().Int("records", len(records)).Int("inserted", inserted).Msg("clues seeded")
	return nil
}
