package gamification

import (
	"context"

	"github.com/at-ishikawa/parlami/internal/storage"
)

// Repository persists the ledger under storage.UserStatsKey.
type Repository struct {
	store storage.Store
}

func NewRepository(store storage.Store) *Repository {
	return &Repository{store: store}
}

// Load returns the stored ledger, or NewLedger when nothing usable is stored.
func (r *Repository) Load(ctx context.Context) (Ledger, error) {
	var ledger Ledger
	ok, err := storage.GetJSON(ctx, r.store, storage.UserStatsKey, &ledger)
	if err != nil {
		return Ledger{}, err
	}
	if !ok {
		return NewLedger(), nil
	}
	ledger.normalize()
	return ledger, nil
}

func (r *Repository) Save(ctx context.Context, ledger Ledger) error {
	return storage.SetJSON(ctx, r.store, storage.UserStatsKey, ledger)
}
