package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/parlami/internal/cli"
	"github.com/at-ishikawa/parlami/internal/progress"
)

func newOnboardCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "onboard",
		Short: "Set up your name, languages and goals",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				_ = ws.Close()
			}()

			onboarding := cli.NewOnboardingCLI(ws.session, cmd.InOrStdin(), cmd.OutOrStdout())
			if _, err := onboarding.Run(cmd.Context()); err != nil {
				if errors.Is(err, cli.ErrOnboardingCancelled) {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "\nOnboarding cancelled. Nothing was saved.")
					return nil
				}
				return fmt.Errorf("onboarding.Run > %w", err)
			}
			return nil
		},
	}
}

func newLevelsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "levels",
		Short: "Show levels, lessons and your progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				_ = ws.Close()
			}()

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Overall progress: %d%%\n", ws.session.CalculateOverallProgress())
			for _, level := range ws.session.LevelSummaries() {
				if !level.Unlocked {
					_, _ = fmt.Fprintf(out, "\n🔒 Level %d: %s (locked)\n", level.Number, level.Name)
					continue
				}
				_, _ = fmt.Fprintf(out, "\n🔓 Level %d: %s %d%%\n", level.Number, level.Name, level.Progress)
				for _, lesson := range level.Lessons {
					mark := " "
					if lesson.Completed {
						mark = "x"
					}
					_, _ = fmt.Fprintf(out, "  [%s] %s (%s)\n", mark, lesson.Category, lesson.ID)
				}
			}
			return nil
		},
	}
}

func newLessonsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "lessons <level>",
		Short: "Show the lessons of a level",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid level %q: %w", args[0], err)
			}

			ws, err := openWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				_ = ws.Close()
			}()

			for _, level := range ws.session.LevelSummaries() {
				if level.Number != number {
					continue
				}
				out := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(out, "Level %d: %s\n", level.Number, level.Name)
				if !level.Unlocked {
					_, _ = fmt.Fprintf(out, "Complete %d%% of level %d to unlock it.\n", progress.UnlockThreshold, level.Number-1)
				}
				for _, lesson := range level.Lessons {
					status := "not started"
					if lesson.Completed {
						status = "completed"
					}
					_, _ = fmt.Fprintf(out, "  %s: %s, %d words, %d questions, %s\n",
						lesson.ID, lesson.Category, lesson.Items, lesson.Questions, status)
				}
				return nil
			}
			return fmt.Errorf("no level %d in the catalog", number)
		},
	}
}

func newLearnCommand() *cobra.Command {
	var quizOnly bool
	command := &cobra.Command{
		Use:   "learn <lesson-id>",
		Short: "Study a lesson's vocabulary and take its quiz",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				_ = ws.Close()
			}()

			out := cmd.OutOrStdout()
			if ws.session.Profile() == nil {
				_, _ = fmt.Fprintln(out, "Run `parlami onboard` to set up your profile.")
			}

			quizCLI, err := cli.NewLessonQuizCLI(ws.session, args[0], cmd.InOrStdin(), out)
			if err != nil {
				return fmt.Errorf("cli.NewLessonQuizCLI > %w", err)
			}
			if !quizOnly {
				quizCLI.ShowVocabulary()
			}
			return quizCLI.Run(cmd.Context(), quizCLI)
		},
	}
	command.Flags().BoolVar(&quizOnly, "quiz-only", false, "skip the vocabulary list")
	return command
}
