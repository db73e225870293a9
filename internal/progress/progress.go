// Package progress tracks which lessons are completed and derives level
// access and completion percentages from it.
package progress

import (
	"math"

	"github.com/at-ishikawa/parlami/internal/catalog"
)

// UnlockThreshold is the percentage of the previous level's lessons that must
// be completed to open a level.
const UnlockThreshold = 70

// Record maps lesson IDs to completion. A missing key means not completed.
type Record map[string]bool

// Clone returns an independent copy of r.
func (r Record) Clone() Record {
	clone := make(Record, len(r))
	for id, done := range r {
		clone[id] = done
	}
	return clone
}

// MarkCompleted sets the lesson as completed. Entries are never cleared.
func (r Record) MarkCompleted(lessonID string) {
	r[lessonID] = true
}

// IsCompleted reports whether the lesson is completed.
func (r Record) IsCompleted(lessonID string) bool {
	return r[lessonID]
}

// IsLevelUnlocked reports whether level can be entered. Level 1 is always
// open; level N opens when level N-1 has no lessons or at least 70% of them
// are completed. The ratio is compared exactly, without rounding.
func IsLevelUnlocked(c *catalog.Catalog, level int, record Record) bool {
	if level <= 1 {
		return true
	}
	completed, total := countCompleted(c.LevelLessons(level-1), record)
	if total == 0 {
		return true
	}
	return completed*100 >= UnlockThreshold*total
}

// CalculateLevelProgress returns the rounded completion percentage of a
// level, or 0 for a level without lessons.
func CalculateLevelProgress(c *catalog.Catalog, level int, record Record) int {
	return percentage(countCompleted(c.LevelLessons(level), record))
}

// CalculateOverallProgress returns the rounded completion percentage over
// every lesson of the catalog.
func CalculateOverallProgress(c *catalog.Catalog, record Record) int {
	return percentage(countCompleted(c.Lessons(), record))
}

// CompletedCount returns how many catalog lessons are completed. Entries for
// lessons that are not in the catalog are ignored.
func CompletedCount(c *catalog.Catalog, record Record) int {
	completed, _ := countCompleted(c.Lessons(), record)
	return completed
}

func countCompleted(lessons []catalog.Lesson, record Record) (completed, total int) {
	for _, lesson := range lessons {
		if record[lesson.ID] {
			completed++
		}
	}
	return completed, len(lessons)
}

func percentage(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}
