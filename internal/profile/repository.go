package profile

import (
	"context"

	"github.com/at-ishikawa/parlami/internal/storage"
)

// Repository persists the profile under storage.UserProfileKey.
type Repository struct {
	store storage.Store
}

func NewRepository(store storage.Store) *Repository {
	return &Repository{store: store}
}

// Load returns the stored profile, or nil when onboarding has not been
// completed or the stored value is unusable.
func (r *Repository) Load(ctx context.Context) (*Profile, error) {
	var p Profile
	ok, err := storage.GetJSON(ctx, r.store, storage.UserProfileKey, &p)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *Repository) Save(ctx context.Context, p Profile) error {
	return storage.SetJSON(ctx, r.store, storage.UserProfileKey, p)
}

// HasCompletedOnboarding reports whether a profile is stored.
func (r *Repository) HasCompletedOnboarding(ctx context.Context) (bool, error) {
	p, err := r.Load(ctx)
	if err != nil {
		return false, err
	}
	return p != nil, nil
}
