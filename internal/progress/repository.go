package progress

import (
	"context"

	"github.com/at-ishikawa/parlami/internal/storage"
)

// Repository persists the progress record under storage.ProgressKey.
type Repository struct {
	store storage.Store
}

func NewRepository(store storage.Store) *Repository {
	return &Repository{store: store}
}

// Load returns the stored record, or an empty one when nothing usable is
// stored.
func (r *Repository) Load(ctx context.Context) (Record, error) {
	var record Record
	ok, err := storage.GetJSON(ctx, r.store, storage.ProgressKey, &record)
	if err != nil {
		return nil, err
	}
	if !ok || record == nil {
		return Record{}, nil
	}
	return record, nil
}

func (r *Repository) Save(ctx context.Context, record Record) error {
	return storage.SetJSON(ctx, r.store, storage.ProgressKey, record)
}
