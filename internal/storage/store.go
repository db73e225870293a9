// Package storage provides the string key-value persistence used for learner
// state, with in-memory, YAML file, SQLite and MySQL backends.
package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/at-ishikawa/parlami/internal/config"
	"github.com/at-ishikawa/parlami/internal/database"
)

// Keys of the values persisted by parlami.
const (
	ProgressKey          = "italian-learning-progress"
	UserStatsKey         = "user-stats"
	UserProfileKey       = "user-profile"
	SavedTranslationsKey = "saved-translations"
)

// Store is a string key-value store. Get reports whether the key exists.
// Implementations are safe for use by a single process.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Close() error
}

// Kind names a storage backend.
type Kind string

const (
	KindMemory Kind = "memory"
	KindYAML   Kind = "yaml"
	KindSQLite Kind = "sqlite"
	KindMySQL  Kind = "mysql"
)

// Kinds lists every supported backend.
var Kinds = []Kind{KindMemory, KindYAML, KindSQLite, KindMySQL}

// Open returns the backend selected by cfg, only once its persistence is
// known to be usable.
func Open(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	logger := slog.Default().With(slog.String("kind", cfg.Kind))

	switch Kind(cfg.Kind) {
	case KindMemory:
		return NewMemoryStore(), nil
	case KindYAML:
		store, err := NewYAMLStore(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("NewYAMLStore(%s) > %w", cfg.Path, err)
		}
		logger.Debug("opened yaml store", slog.String("path", cfg.Path))
		return store, nil
	case KindSQLite:
		db, err := database.OpenSQLite(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("database.OpenSQLite(%s) > %w", cfg.Path, err)
		}
		store, err := NewSQLStore(ctx, db, DialectSQLite)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		logger.Debug("opened sqlite store", slog.String("path", cfg.Path))
		return store, nil
	case KindMySQL:
		db, err := database.OpenMySQL(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("database.OpenMySQL > %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("ping mysql %s:%d: %w", cfg.Database.Host, cfg.Database.Port, err)
		}
		store, err := NewSQLStore(ctx, db, DialectMySQL)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		logger.Debug("opened mysql store", slog.String("host", cfg.Database.Host))
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage kind %q", cfg.Kind)
	}
}

// RemoveAll removes every key, stopping at the first failure.
func RemoveAll(ctx context.Context, store Store, keys ...string) error {
	for _, key := range keys {
		if err := store.Remove(ctx, key); err != nil {
			return fmt.Errorf("remove %s: %w", key, err)
		}
	}
	return nil
}
