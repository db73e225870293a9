package translation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"

	"github.com/at-ishikawa/parlami/internal/storage"
)

// SavedRepository keeps saved translations under
// storage.SavedTranslationsKey, newest first.
type SavedRepository struct {
	store storage.Store
	now   func() time.Time
}

func NewSavedRepository(store storage.Store, now func() time.Time) *SavedRepository {
	return &SavedRepository{store: store, now: now}
}

// List returns every saved translation, newest first.
func (r *SavedRepository) List(ctx context.Context) ([]Translation, error) {
	var saved []Translation
	ok, err := storage.GetJSON(ctx, r.store, storage.SavedTranslationsKey, &saved)
	if err != nil {
		return nil, err
	}
	if !ok || saved == nil {
		return []Translation{}, nil
	}
	return saved, nil
}

// Save prepends t to the saved list. A missing ID or timestamp is filled in.
func (r *SavedRepository) Save(ctx context.Context, t Translation) (Translation, error) {
	if t.Original == "" || t.Translated == "" {
		return Translation{}, fmt.Errorf("save translation: original and translated text are required")
	}
	saved, err := r.List(ctx)
	if err != nil {
		return Translation{}, err
	}

	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Timestamp == 0 {
		t.Timestamp = r.now().UnixMilli()
	}
	saved = append([]Translation{t}, saved...)
	if err := storage.SetJSON(ctx, r.store, storage.SavedTranslationsKey, saved); err != nil {
		return Translation{}, err
	}
	return t, nil
}

// Delete removes the saved translation with id. It reports whether one was
// removed.
func (r *SavedRepository) Delete(ctx context.Context, id string) (bool, error) {
	saved, err := r.List(ctx)
	if err != nil {
		return false, err
	}
	kept := make([]Translation, 0, len(saved))
	for _, t := range saved {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(saved) {
		return false, nil
	}
	if err := storage.SetJSON(ctx, r.store, storage.SavedTranslationsKey, kept); err != nil {
		return false, err
	}
	return true, nil
}

// Search returns the saved translations whose original or translated text
// contains query, ignoring case. An empty query matches everything.
func (r *SavedRepository) Search(ctx context.Context, query string) ([]Translation, error) {
	saved, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	folder := cases.Fold()
	needle := folder.String(query)

	var matched []Translation
	for _, t := range saved {
		if strings.Contains(folder.String(t.Original), needle) ||
			strings.Contains(folder.String(t.Translated), needle) {
			matched = append(matched, t)
		}
	}
	if matched == nil {
		matched = []Translation{}
	}
	return matched, nil
}
