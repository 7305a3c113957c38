package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/spf13/viper"

	"kharcha/internal/classifier"
	"kharcha/internal/common"
	"kharcha/internal/config"
	"kharcha/internal/extract"
	"kharcha/internal/parser"
	"kharcha/internal/storage"
)

// initStorage opens the configured SQLite database and runs migrations.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDBPath
	}
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return store, nil
}

// closeStore closes the database, logging instead of failing.
func closeStore(store *storage.SQLiteStorage) {
	if err := store.Close(); err != nil {
		slog.Error("Failed to close database", "error", err)
	}
}

// modelStore returns the classifier artifact store at the configured path.
func modelStore() *classifier.FileStore {
	path := viper.GetString("model.path")
	if path == "" {
		path = config.DefaultModelPath
	}
	return classifier.NewFileStore(config.ExpandPath(path))
}

// initParser assembles the expense parser: configured thresholds and
// dictionaries, a trained model when an artifact exists, the keyword
// fallback otherwise. The classifier is returned alongside so callers can
// hot-swap the model later.
func initParser() (*parser.Parser, *classifier.Classifier, error) {
	settings, err := config.LoadParserSettings()
	if err != nil {
		return nil, nil, err
	}

	cls := classifier.New(settings.Classifier)
	store := modelStore()
	switch m, err := store.Load(); {
	case err == nil:
		cls.Replace(m)
		slog.Debug("Loaded model artifact", "path", store.Path())
	case errors.Is(err, common.ErrModelNotFound):
		slog.Debug("No model artifact, running on keyword fallback", "path", store.Path())
	default:
		slog.Warn("Could not load model artifact, running on keyword fallback", "error", err)
	}

	matcher, err := extract.NewMerchantMatcher(settings.Merchants)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid merchant dictionary: %w", err)
	}

	return parser.New(settings.Parser, cls, matcher, slog.Default()), cls, nil
}

// parseDateFlag parses an optional YYYY-MM-DD flag value into a bound.
func parseDateFlag(value, name string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s %q (want YYYY-MM-DD)", name, value)
	}
	return &t, nil
}

// parseNumberArg converts a positional numeric argument, naming it in the
// error so the user knows which one was malformed.
func parseNumberArg(value, name string) (float64, error) {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q (want a number)", name, value)
	}
	return v, nil
}
