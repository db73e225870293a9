package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/parlami/internal/gamification"
	"github.com/at-ishikawa/parlami/internal/languages"
)

func newStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show XP, streaks and achievements",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				_ = ws.Close()
			}()

			showStats(cmd.OutOrStdout(), ws.session.LoadUserStats())
			return nil
		},
	}
}

func showStats(out io.Writer, stats gamification.Ledger) {
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)

	_, _ = bold.Fprintln(out, "Stats")
	_, _ = fmt.Fprintf(out, "  XP: %d\n", stats.XP)
	_, _ = fmt.Fprintf(out, "  Streak: %s (longest %s)\n", days(stats.CurrentStreak), days(stats.LongestStreak))
	_, _ = fmt.Fprintf(out, "  Lessons completed: %d\n", stats.TotalLessons)
	_, _ = fmt.Fprintf(out, "  Perfect quizzes: %d\n", stats.PerfectQuizzes)

	tried := make([]string, 0, len(stats.LanguagesTried))
	for _, code := range stats.LanguagesTried {
		tried = append(tried, languages.Label(code))
	}
	if len(tried) == 0 {
		tried = append(tried, "none yet")
	}
	_, _ = fmt.Fprintf(out, "  Languages tried: %s\n", strings.Join(tried, ", "))

	_, _ = bold.Fprintf(out, "\nAchievements (%d/%d)\n", stats.UnlockedCount(), len(gamification.Achievements()))
	for _, status := range gamification.Statuses(stats) {
		if !status.Unlocked {
			_, _ = fmt.Fprintf(out, "  🔒 %s: %s (+%d XP)\n", status.Name, status.Description, status.BonusXP)
			continue
		}
		_, _ = green.Fprintf(out, "  %s %s: %s (+%d XP)", status.Icon, status.Name, status.Description, status.BonusXP)
		_, _ = fmt.Fprintf(out, " unlocked %s\n", status.UnlockedAt.Format("2006-01-02"))
	}
}

func days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
