package gamification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(achievements []Achievement) []AchievementID {
	var result []AchievementID
	for _, a := range achievements {
		result = append(result, a.ID)
	}
	return result
}

func TestEvaluate(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		ledger    Ledger
		wantIDs   []AchievementID
		wantBonus int
	}{
		{name: "nothing reached", ledger: NewLedger()},
		{
			name:      "first lesson",
			ledger:    Ledger{TotalLessons: 1},
			wantIDs:   []AchievementID{FirstSteps},
			wantBonus: 50,
		},
		{
			name:      "seven day streak",
			ledger:    Ledger{CurrentStreak: 7, LongestStreak: 7},
			wantIDs:   []AchievementID{WeekWarrior},
			wantBonus: 100,
		},
		{
			name:      "fifty lessons unlock first steps too",
			ledger:    Ledger{TotalLessons: 50},
			wantIDs:   []AchievementID{FirstSteps, QuizMaster},
			wantBonus: 250,
		},
		{
			name:      "ten perfect quizzes",
			ledger:    Ledger{PerfectQuizzes: 10},
			wantIDs:   []AchievementID{Perfectionist},
			wantBonus: 150,
		},
		{
			name:      "three languages",
			ledger:    Ledger{LanguagesTried: []string{"it", "es", "fr"}},
			wantIDs:   []AchievementID{Polyglot},
			wantBonus: 300,
		},
		{
			name:    "two languages",
			ledger:  Ledger{LanguagesTried: []string{"it", "es"}},
			wantIDs: nil,
		},
		{
			name: "everything at once in definition order",
			ledger: Ledger{
				TotalLessons: 60, CurrentStreak: 8, LongestStreak: 8,
				PerfectQuizzes: 12, LanguagesTried: []string{"it", "es", "fr"},
			},
			wantIDs:   []AchievementID{FirstSteps, WeekWarrior, QuizMaster, Perfectionist, Polyglot},
			wantBonus: 800,
		},
		{
			name: "already unlocked is skipped",
			ledger: Ledger{
				TotalLessons: 1,
				Achievements: Unlocks{FirstSteps: {UnlockedAt: now.Add(-time.Hour)}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, unlocked, bonus := Evaluate(tt.ledger, now)

			assert.Equal(t, tt.wantIDs, ids(unlocked))
			assert.Equal(t, tt.wantBonus, bonus)
			assert.Equal(t, tt.ledger.XP+tt.wantBonus, got.XP)
			for _, id := range tt.wantIDs {
				assert.Equal(t, now, got.Achievements[id].UnlockedAt)
			}
			assert.False(t, got.IsUnlocked(SpeedLearner))
		})
	}
}

func TestEvaluate_IsIdempotent(t *testing.T) {
	first := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	ledger := Ledger{TotalLessons: 1, XP: 10}

	once, unlocked, bonus := Evaluate(ledger, first)
	require.Equal(t, []AchievementID{FirstSteps}, ids(unlocked))
	assert.Equal(t, 50, bonus)
	assert.Equal(t, 60, once.XP)

	twice, unlocked, bonus := Evaluate(once, first.Add(24*time.Hour))
	assert.Empty(t, unlocked)
	assert.Zero(t, bonus)
	assert.Equal(t, once, twice)
	assert.Equal(t, first, twice.Achievements[FirstSteps].UnlockedAt)
}

func TestEvaluate_DoesNotMutateInput(t *testing.T) {
	ledger := Ledger{TotalLessons: 1, Achievements: Unlocks{}}

	_, _, _ = Evaluate(ledger, time.Now())

	assert.Empty(t, ledger.Achievements)
	assert.Zero(t, ledger.XP)
}

func TestAchievements(t *testing.T) {
	all := Achievements()
	require.Len(t, all, 6)
	assert.Equal(t, []AchievementID{FirstSteps, WeekWarrior, QuizMaster, Perfectionist, Polyglot, SpeedLearner}, ids(all))

	all[0].Name = "mutated"
	first, ok := AchievementByID(FirstSteps)
	require.True(t, ok)
	assert.Equal(t, "First Steps", first.Name)

	_, ok = AchievementByID("unknown")
	assert.False(t, ok)
}

func TestStatuses(t *testing.T) {
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	ledger := Ledger{Achievements: Unlocks{Polyglot: {UnlockedAt: at}}}

	statuses := Statuses(ledger)
	require.Len(t, statuses, 6)
	for _, s := range statuses {
		if s.ID == Polyglot {
			assert.True(t, s.Unlocked)
			assert.Equal(t, at, s.UnlockedAt)
			continue
		}
		assert.False(t, s.Unlocked)
		assert.True(t, s.UnlockedAt.IsZero())
	}
	assert.Equal(t, 1, ledger.UnlockedCount())
}
