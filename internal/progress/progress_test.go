package progress

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/parlami/internal/catalog"
	"github.com/at-ishikawa/parlami/internal/storage"
)

// newCatalog builds a catalog with the given number of lessons per level,
// named "l<level>-<n>".
func newCatalog(lessonsPerLevel ...int) *catalog.Catalog {
	var lessons []catalog.Lesson
	for i, count := range lessonsPerLevel {
		for n := 1; n <= count; n++ {
			lessons = append(lessons, catalog.Lesson{
				ID:       fmt.Sprintf("l%d-%d", i+1, n),
				Level:    i + 1,
				Category: "Category",
			})
		}
	}
	return catalog.New(lessons, nil)
}

func completed(level int, n ...int) Record {
	record := Record{}
	for _, i := range n {
		record[fmt.Sprintf("l%d-%d", level, i)] = true
	}
	return record
}

func TestIsLevelUnlocked(t *testing.T) {
	tests := []struct {
		name    string
		catalog *catalog.Catalog
		level   int
		record  Record
		want    bool
	}{
		{name: "level 1 with no progress", catalog: newCatalog(6, 4), level: 1, record: Record{}, want: true},
		{name: "level 1 with nil record", catalog: newCatalog(6, 4), level: 1, want: true},
		{name: "level 2 with nothing completed", catalog: newCatalog(6, 4), level: 2, record: Record{}, want: false},
		{name: "level 2 at 4 of 6 (66.7%)", catalog: newCatalog(6, 4), level: 2, record: completed(1, 1, 2, 3, 4), want: false},
		{name: "level 2 at 5 of 6 (83.3%)", catalog: newCatalog(6, 4), level: 2, record: completed(1, 1, 2, 3, 4, 5), want: true},
		{name: "level 2 at exactly 7 of 10", catalog: newCatalog(10, 1), level: 2, record: completed(1, 1, 2, 3, 4, 5, 6, 7), want: true},
		{name: "level 2 at 6 of 10", catalog: newCatalog(10, 1), level: 2, record: completed(1, 1, 2, 3, 4, 5, 6), want: false},
		// 69.5% would round up to 70 if rounded before comparing.
		{name: "level 2 at 139 of 200 is not rounded up", catalog: newCatalog(200, 1), level: 2, record: completed(1, seq(139)...), want: false},
		{name: "level 3 depends only on level 2", catalog: newCatalog(6, 4, 4), level: 3, record: completed(2, 1, 2, 3), want: true},
		{name: "previous level without lessons", catalog: newCatalog(6, 0, 4), level: 3, record: Record{}, want: true},
		{name: "completions of unknown lessons are ignored", catalog: newCatalog(2, 1), level: 2, record: Record{"other": true, "l1-1": true}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsLevelUnlocked(tt.catalog, tt.level, tt.record))
		})
	}
}

func TestCalculateLevelProgress(t *testing.T) {
	c := newCatalog(6, 3, 0)

	assert.Equal(t, 0, CalculateLevelProgress(c, 1, Record{}))
	assert.Equal(t, 17, CalculateLevelProgress(c, 1, completed(1, 1)))
	assert.Equal(t, 50, CalculateLevelProgress(c, 1, completed(1, 1, 2, 3)))
	assert.Equal(t, 67, CalculateLevelProgress(c, 2, completed(2, 1, 2)))
	assert.Equal(t, 100, CalculateLevelProgress(c, 2, completed(2, 1, 2, 3)))
	assert.Equal(t, 0, CalculateLevelProgress(c, 3, Record{}))
	assert.Equal(t, 0, CalculateLevelProgress(c, 9, Record{}))
}

func TestCalculateOverallProgress(t *testing.T) {
	c := newCatalog(6, 4, 4)

	assert.Equal(t, 0, CalculateOverallProgress(c, Record{}))
	record := completed(1, 1, 2, 3, 4, 5, 6)
	record["l2-1"] = true
	record["retired-lesson"] = true
	assert.Equal(t, 50, CalculateOverallProgress(c, record))
	assert.Equal(t, 7, CompletedCount(c, record))
	assert.Equal(t, 0, CalculateOverallProgress(catalog.New(nil, nil), record))
}

func TestRecord(t *testing.T) {
	record := Record{}
	assert.False(t, record.IsCompleted("numbers"))

	record.MarkCompleted("numbers")
	clone := record.Clone()
	clone.MarkCompleted("colors")

	assert.True(t, record.IsCompleted("numbers"))
	assert.False(t, record.IsCompleted("colors"))
	assert.True(t, clone.IsCompleted("colors"))
}

func TestRepository(t *testing.T) {
	tests := []struct {
		name   string
		stored string
		want   Record
	}{
		{name: "absent", want: Record{}},
		{name: "valid", stored: `{"numbers":true,"colors":true}`, want: Record{"numbers": true, "colors": true}},
		{name: "malformed", stored: `{"numbers":tru`, want: Record{}},
		{name: "null", stored: `null`, want: Record{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := storage.NewMemoryStore()
			if tt.stored != "" {
				require.NoError(t, store.Set(ctx, storage.ProgressKey, tt.stored))
			}

			got, err := NewRepository(store).Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("save then load", func(t *testing.T) {
		ctx := context.Background()
		repo := NewRepository(storage.NewMemoryStore())
		require.NoError(t, repo.Save(ctx, Record{"greetings": true}))

		got, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, Record{"greetings": true}, got)
	})
}

func seq(n int) []int {
	result := make([]int, n)
	for i := range result {
		result[i] = i + 1
	}
	return result
}
