// Package gamification holds the learner's ledger of XP, streaks, counters
// and achievements, and the pure rules that advance it.
package gamification

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"time"
)

const (
	LessonXP      = 10
	PerfectQuizXP = 25
	DailyLoginXP  = 5
)

// Unlock records when an achievement was unlocked.
type Unlock struct {
	UnlockedAt time.Time `json:"unlockedAt"`
}

// Unlocks maps unlocked achievements to their unlock state. Locked
// achievements have no entry.
type Unlocks map[AchievementID]Unlock

// UnmarshalJSON accepts both the map form and the legacy array of
// {id, unlocked, unlockedAt} objects with millisecond timestamps.
func (u *Unlocks) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*u = Unlocks{}
		return nil
	}
	if trimmed[0] != '[' {
		m := map[AchievementID]Unlock{}
		if err := json.Unmarshal(trimmed, &m); err != nil {
			return fmt.Errorf("json.Unmarshal(achievements) > %w", err)
		}
		*u = m
		return nil
	}

	var legacy []struct {
		ID         AchievementID `json:"id"`
		Unlocked   bool          `json:"unlocked"`
		UnlockedAt *int64        `json:"unlockedAt"`
	}
	if err := json.Unmarshal(trimmed, &legacy); err != nil {
		return fmt.Errorf("json.Unmarshal(legacy achievements) > %w", err)
	}
	result := Unlocks{}
	for _, a := range legacy {
		if !a.Unlocked {
			continue
		}
		var unlock Unlock
		if a.UnlockedAt != nil {
			unlock.UnlockedAt = time.UnixMilli(*a.UnlockedAt).UTC()
		}
		result[a.ID] = unlock
	}
	*u = result
	return nil
}

// Ledger is the aggregate gamification record of a learner.
type Ledger struct {
	XP             int      `json:"xp"`
	CurrentStreak  int      `json:"currentStreak"`
	LongestStreak  int      `json:"longestStreak"`
	TotalLessons   int      `json:"totalLessons"`
	PerfectQuizzes int      `json:"perfectQuizzes"`
	LanguagesTried []string `json:"languagesTried"`
	Achievements   Unlocks  `json:"achievements"`
	LastLoginDate  Date     `json:"lastLoginDate"`
}

// NewLedger returns the ledger of a learner who has never logged in.
func NewLedger() Ledger {
	return Ledger{
		LanguagesTried: []string{},
		Achievements:   Unlocks{},
	}
}

// Clone returns a deep copy of l.
func (l Ledger) Clone() Ledger {
	clone := l
	clone.LanguagesTried = slices.Clone(l.LanguagesTried)
	if clone.LanguagesTried == nil {
		clone.LanguagesTried = []string{}
	}
	clone.Achievements = make(Unlocks, len(l.Achievements))
	for id, unlock := range l.Achievements {
		clone.Achievements[id] = unlock
	}
	return clone
}

// IsUnlocked reports whether the achievement has been unlocked.
func (l Ledger) IsUnlocked(id AchievementID) bool {
	_, ok := l.Achievements[id]
	return ok
}

// CompleteLesson counts a passed quiz and awards its XP.
func CompleteLesson(l Ledger) Ledger {
	updated := l.Clone()
	updated.TotalLessons++
	updated.XP += LessonXP
	return updated
}

// CompletePerfectQuiz counts a quiz answered without mistakes and awards its
// bonus XP.
func CompletePerfectQuiz(l Ledger) Ledger {
	updated := l.Clone()
	updated.PerfectQuizzes++
	updated.XP += PerfectQuizXP
	return updated
}

// RecordLanguage adds code to the languages tried. Codes already present are
// ignored.
func RecordLanguage(l Ledger, code string) Ledger {
	updated := l.Clone()
	if code == "" || slices.Contains(updated.LanguagesTried, code) {
		return updated
	}
	updated.LanguagesTried = append(updated.LanguagesTried, code)
	return updated
}

// UnlockedCount returns the number of unlocked achievements.
func (l Ledger) UnlockedCount() int {
	return len(l.Achievements)
}

// normalize repairs a decoded ledger: nil collections become empty, duplicate
// languages are dropped and the longest streak covers the current one.
func (l *Ledger) normalize() {
	if l.Achievements == nil {
		l.Achievements = Unlocks{}
	}
	languages := make([]string, 0, len(l.LanguagesTried))
	for _, code := range l.LanguagesTried {
		if code != "" && !slices.Contains(languages, code) {
			languages = append(languages, code)
		}
	}
	l.LanguagesTried = languages
	if l.LongestStreak < l.CurrentStreak {
		l.LongestStreak = l.CurrentStreak
	}
}
