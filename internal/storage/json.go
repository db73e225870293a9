package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

// GetJSON decodes the value under key into dst. It reports false when the
// key is absent or its value is malformed; malformed values are logged and
// otherwise treated as absent.
func GetJSON(ctx context.Context, store Store, key string, dst any) (bool, error) {
	raw, ok, err := store.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("store.Get(%s) > %w", key, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		slog.Default().WarnContext(ctx, "ignoring malformed stored value",
			slog.String("key", key),
			slog.Any("error", err),
		)
		return false, nil
	}
	return true, nil
}

// SetJSON encodes value and stores it under key.
func SetJSON(ctx context.Context, store Store, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("json.Marshal(%s) > %w", key, err)
	}
	if err := store.Set(ctx, key, string(raw)); err != nil {
		return fmt.Errorf("store.Set(%s) > %w", key, err)
	}
	return nil
}
