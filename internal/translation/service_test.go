package translation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_translation "github.com/at-ishikawa/parlami/internal/mocks/translation"
	"github.com/at-ishikawa/parlami/internal/storage"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func TestCache(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	store := storage.NewMemoryStore()
	cache := NewCache(store, 0, clock.Now)

	_, ok, err := cache.Get(ctx, "Ciao", "it", "en")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, "Ciao", "it", "en", "Hello"))
	raw, ok, err := store.Get(ctx, "translation_it_en_Ciao")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, fmt.Sprintf(`{"translation":"Hello","timestamp":%d}`, clock.now.UnixMilli()), raw)

	clock.now = clock.now.Add(DefaultCacheTTL - time.Second)
	got, ok, err := cache.Get(ctx, "Ciao", "it", "en")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Hello", got)

	_, ok, err = cache.Get(ctx, "Ciao", "en", "it")
	require.NoError(t, err)
	assert.False(t, ok, "language pair is part of the key")

	clock.now = clock.now.Add(time.Second)
	_, ok, err = cache.Get(ctx, "Ciao", "it", "en")
	require.NoError(t, err)
	assert.False(t, ok, "expired after the TTL")

	require.NoError(t, store.Set(ctx, CacheKey("Grazie", "it", "en"), "garbage"))
	_, ok, err = cache.Get(ctx, "Grazie", "it", "en")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestService_Translate(t *testing.T) {
	ctx := context.Background()

	t.Run("blank text does nothing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mock_translation.NewMockClient(ctrl)
		clock := &fakeClock{now: time.Now()}
		service := NewService(client, NewCache(storage.NewMemoryStore(), 0, clock.Now), clock.Now)

		_, err := service.Translate(ctx, "   \n", "en", "it")
		assert.ErrorIs(t, err, ErrEmptyText)
		assert.Empty(t, service.Recent())
	})

	t.Run("text too long", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mock_translation.NewMockClient(ctrl)
		clock := &fakeClock{now: time.Now()}
		service := NewService(client, NewCache(storage.NewMemoryStore(), 0, clock.Now), clock.Now)

		_, err := service.Translate(ctx, strings.Repeat("è", MaxTextLength+1), "it", "en")
		assert.ErrorIs(t, err, ErrTextTooLong)
	})

	t.Run("miss calls the client then hits the cache", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mock_translation.NewMockClient(ctrl)
		client.EXPECT().Translate(gomock.Any(), "Good night", "en", "it").Return("Buonanotte", nil).Times(1)

		clock := &fakeClock{now: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
		service := NewService(client, NewCache(storage.NewMemoryStore(), 0, clock.Now), clock.Now)

		first, err := service.Translate(ctx, "Good night", "en", "it")
		require.NoError(t, err)
		assert.Equal(t, "Buonanotte", first.Translated)
		assert.False(t, first.Cached)
		assert.NotEmpty(t, first.ID)
		assert.Equal(t, clock.now.UnixMilli(), first.Timestamp)

		second, err := service.Translate(ctx, "Good night", "en", "it")
		require.NoError(t, err)
		assert.Equal(t, "Buonanotte", second.Translated)
		assert.True(t, second.Cached)

		require.Len(t, service.Recent(), 1)
	})

	t.Run("client failure is returned and not cached", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mock_translation.NewMockClient(ctrl)
		apiErr := errors.New("network down")
		client.EXPECT().Translate(gomock.Any(), "Hello", "en", "es").Return("", apiErr).Times(2)

		clock := &fakeClock{now: time.Now()}
		service := NewService(client, NewCache(storage.NewMemoryStore(), 0, clock.Now), clock.Now)

		_, err := service.Translate(ctx, "Hello", "en", "es")
		assert.ErrorIs(t, err, apiErr)
		_, err = service.Translate(ctx, "Hello", "en", "es")
		assert.ErrorIs(t, err, apiErr)
		assert.Empty(t, service.Recent())
	})
}

func TestService_RecentKeepsFiveNewestFirst(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	client := mock_translation.NewMockClient(ctrl)
	client.EXPECT().Translate(gomock.Any(), gomock.Any(), "en", "it").
		DoAndReturn(func(_ context.Context, text, _, _ string) (string, error) {
			return "it:" + text, nil
		}).Times(7)

	clock := &fakeClock{now: time.Now()}
	service := NewService(client, NewCache(storage.NewMemoryStore(), 0, clock.Now), clock.Now)
	service.SeedRecent([]Translation{{ID: "saved-1", Original: "Saved"}})

	for i := 1; i <= 7; i++ {
		_, err := service.Translate(ctx, fmt.Sprintf("text %d", i), "en", "it")
		require.NoError(t, err)
	}

	recent := service.Recent()
	require.Len(t, recent, MaxRecent)
	var originals []string
	for _, r := range recent {
		originals = append(originals, r.Original)
	}
	assert.Equal(t, []string{"text 7", "text 6", "text 5", "text 4", "text 3"}, originals)
}
