package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/parlami/internal/database"
	"github.com/at-ishikawa/parlami/schemas"
)

// Dialect holds the statements that differ between SQL backends.
type Dialect struct {
	Name        string
	CreateTable string
	Upsert      string
}

var (
	DialectSQLite = Dialect{
		Name:        "sqlite",
		CreateTable: schemas.KVEntries("sqlite"),
		Upsert:      `INSERT INTO kv_entries (entry_key, entry_value, updated_at) VALUES (?, ?, ?)
ON CONFLICT(entry_key) DO UPDATE SET entry_value = excluded.entry_value, updated_at = excluded.updated_at`,
	}

	DialectMySQL = Dialect{
		Name:        "mysql",
		CreateTable: schemas.KVEntries("mysql"),
		Upsert:      `INSERT INTO kv_entries (entry_key, entry_value, updated_at) VALUES (?, ?, ?)
ON DUPLICATE KEY UPDATE entry_value = VALUES(entry_value), updated_at = VALUES(updated_at)`,
	}
)

// SQLStore keeps values in the kv_entries table.
type SQLStore struct {
	db      *sqlx.DB
	dialect Dialect
	now     func() time.Time
}

// NewSQLStore migrates the kv_entries table and returns a store over db.
// The store owns db and closes it on Close.
func NewSQLStore(ctx context.Context, db *sqlx.DB, dialect Dialect) (*SQLStore, error) {
	err := database.RunInTx(ctx, db, func(ctx context.Context, tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, dialect.CreateTable); err != nil {
			return fmt.Errorf("create kv_entries table: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("migrate %s store: %w", dialect.Name, err)
	}
	return &SQLStore{db: db, dialect: dialect, now: time.Now}, nil
}

func (s *SQLStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.GetContext(ctx, &value, "SELECT entry_value FROM kv_entries WHERE entry_key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("db.GetContext(kv_entries %s) > %w", key, err)
	}
	return value, true, nil
}

func (s *SQLStore) Set(ctx context.Context, key, value string) error {
	if _, err := s.db.ExecContext(ctx, s.dialect.Upsert, key, value, s.now().UTC()); err != nil {
		return fmt.Errorf("db.ExecContext(upsert kv_entries %s) > %w", key, err)
	}
	return nil
}

func (s *SQLStore) Remove(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM kv_entries WHERE entry_key = ?", key); err != nil {
		return fmt.Errorf("db.ExecContext(delete kv_entries %s) > %w", key, err)
	}
	return nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
