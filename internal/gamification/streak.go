package gamification

// UpdateStreak records a login on today. A second login on the same day
// changes nothing. A login the day after the last one extends the streak;
// any other gap restarts it at 1. Each first login of a day earns
// DailyLoginXP. Achievements are not evaluated here.
func UpdateStreak(l Ledger, today Date) Ledger {
	if l.LastLoginDate.Equal(today) {
		return l
	}

	updated := l.Clone()
	if !l.LastLoginDate.IsZero() && l.LastLoginDate.Equal(today.AddDays(-1)) {
		updated.CurrentStreak++
	} else {
		updated.CurrentStreak = 1
	}
	if updated.CurrentStreak > updated.LongestStreak {
		updated.LongestStreak = updated.CurrentStreak
	}
	updated.LastLoginDate = today
	updated.XP += DailyLoginXP
	return updated
}
