package main

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmunix/takeoutsort/internal/config"
	"github.com/vmunix/takeoutsort/internal/migrations"
	"github.com/vmunix/takeoutsort/internal/organizer"
	_ "modernc.org/sqlite"
)

// loadConfig loads the config at path, or the discovered one when path is
// empty. With no config file anywhere the built-in defaults are used.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		found, err := config.Discover()
		if err != nil {
			var notFound *config.ErrNotFound
			if errors.As(err, &notFound) {
				return config.Default(), nil
			}
			return nil, err
		}
		path = found
	}
	return config.Load(path)
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// newLogger builds the logger from config. The --log-level flag wins.
func newLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	level := cfg.Level
	if logLevel != "" {
		level = logLevel
	}
	opts := &slog.HandlerOptions{Level: parseLogLevel(level)}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// openDB opens the history database, creating it and its schema if needed.
func openDB(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(migrations.InitialSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// classifierFromConfig builds the classifier for the configured rules.
func classifierFromConfig(f config.FilterConfig) *organizer.Classifier {
	opts := organizer.RuleOptions{
		DSLRMakes:       f.DSLRMakes,
		SoftwareMarkers: f.SoftwareMarkers,
		EditedSuffixes:  f.EditedSuffixes,
	}
	return organizer.NewClassifier(organizer.SelectRules(f.Rules, opts), opts)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
