package gamification

import (
	"time"
)

type AchievementID string

const (
	FirstSteps    AchievementID = "first-steps"
	WeekWarrior   AchievementID = "week-warrior"
	QuizMaster    AchievementID = "quiz-master"
	Perfectionist AchievementID = "perfectionist"
	Polyglot      AchievementID = "polyglot"
	SpeedLearner  AchievementID = "speed-learner"
)

// Achievement is the immutable definition of a milestone.
type Achievement struct {
	ID          AchievementID `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Icon        string        `json:"icon"`
	BonusXP     int           `json:"bonusXp"`

	// condition is nil for achievements that are never evaluated.
	condition func(Ledger) bool
}

var achievements = []Achievement{
	{
		ID: FirstSteps, Name: "First Steps", Description: "Complete your first lesson", Icon: "🌟", BonusXP: 50,
		condition: func(l Ledger) bool { return l.TotalLessons >= 1 },
	},
	{
		ID: WeekWarrior, Name: "Week Warrior", Description: "Maintain a 7-day streak", Icon: "🔥", BonusXP: 100,
		condition: func(l Ledger) bool { return l.CurrentStreak >= 7 },
	},
	{
		ID: QuizMaster, Name: "Quiz Master", Description: "Complete 50 quizzes", Icon: "🏆", BonusXP: 200,
		condition: func(l Ledger) bool { return l.TotalLessons >= 50 },
	},
	{
		ID: Perfectionist, Name: "Perfectionist", Description: "Get 10 perfect quiz scores", Icon: "💯", BonusXP: 150,
		condition: func(l Ledger) bool { return l.PerfectQuizzes >= 10 },
	},
	{
		ID: Polyglot, Name: "Polyglot", Description: "Try learning 3+ languages", Icon: "🌍", BonusXP: 300,
		condition: func(l Ledger) bool { return len(l.LanguagesTried) >= 3 },
	},
	// No event tracks lessons per day, so this one stays locked.
	{
		ID: SpeedLearner, Name: "Speed Learner", Description: "Complete 10 lessons in one day", Icon: "⚡",
	},
}

// Achievements returns every achievement definition in evaluation order.
func Achievements() []Achievement {
	result := make([]Achievement, len(achievements))
	copy(result, achievements)
	return result
}

// AchievementByID returns the definition of id.
func AchievementByID(id AchievementID) (Achievement, bool) {
	for _, a := range achievements {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}

// Evaluate unlocks every achievement whose condition holds and is still
// locked, stamping it with now. It returns the updated ledger with the bonus
// XP already added, the newly unlocked achievements and the bonus. Running
// it again on the result unlocks nothing.
func Evaluate(ledger Ledger, now time.Time) (Ledger, []Achievement, int) {
	updated := ledger.Clone()

	var unlocked []Achievement
	bonus := 0
	for _, a := range achievements {
		if a.condition == nil || updated.IsUnlocked(a.ID) {
			continue
		}
		if !a.condition(ledger) {
			continue
		}
		updated.Achievements[a.ID] = Unlock{UnlockedAt: now}
		unlocked = append(unlocked, a)
		bonus += a.BonusXP
	}
	updated.XP += bonus
	return updated, unlocked, bonus
}

// AchievementStatus joins a definition with the ledger's unlock state.
type AchievementStatus struct {
	Achievement
	Unlocked   bool      `json:"unlocked"`
	UnlockedAt time.Time `json:"unlockedAt,omitzero"`
}

// Statuses returns the unlock state of every achievement in definition order.
func Statuses(ledger Ledger) []AchievementStatus {
	result := make([]AchievementStatus, 0, len(achievements))
	for _, a := range achievements {
		unlock, ok := ledger.Achievements[a.ID]
		result = append(result, AchievementStatus{
			Achievement: a,
			Unlocked:    ok,
			UnlockedAt:  unlock.UnlockedAt,
		})
	}
	return result
}
