package quiz

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/at-ishikawa/parlami/internal/gamification"
	"github.com/at-ishikawa/parlami/internal/progress"
)

var (
	ErrNotCompleted     = errors.New("quiz is not completed")
	ErrAlreadyCompleted = errors.New("quiz attempt was already completed")
)

// Snapshot is the learner state a finished quiz acts on.
type Snapshot struct {
	Progress progress.Record
	Ledger   gamification.Ledger
}

// Outcome describes a finished attempt and what it earned.
type Outcome struct {
	LessonID   string                     `json:"lessonId"`
	Score      Score                      `json:"score"`
	Percentage int                        `json:"percentage"`
	Passed     bool                       `json:"passed"`
	Perfect    bool                       `json:"perfect"`
	XPEarned   int                        `json:"xpEarned"`
	Unlocked   []gamification.Achievement `json:"unlocked"`
}

// Apply returns the snapshot after a quiz on lessonID finished with score.
// A failing score changes nothing. A pass marks the lesson completed and
// counts it on the ledger, a perfect score also counts a perfect quiz, and
// achievements are evaluated at now.
func Apply(snapshot Snapshot, lessonID string, score Score, now time.Time) (Snapshot, Outcome) {
	outcome := Outcome{
		LessonID:   lessonID,
		Score:      score,
		Percentage: score.Percentage(),
		Passed:     score.Passed(),
		Perfect:    score.Perfect(),
	}
	if !outcome.Passed {
		return snapshot, outcome
	}

	record := snapshot.Progress.Clone()
	record.MarkCompleted(lessonID)

	ledger := gamification.CompleteLesson(snapshot.Ledger)
	if outcome.Perfect {
		ledger = gamification.CompletePerfectQuiz(ledger)
	}
	ledger, outcome.Unlocked, _ = gamification.Evaluate(ledger, now)
	outcome.XPEarned = ledger.XP - snapshot.Ledger.XP

	return Snapshot{Progress: record, Ledger: ledger}, outcome
}

//go:generate mockgen -source=engine.go -destination=../mocks/quiz/mock_engine.go -package=mock_quiz

type ProgressRepository interface {
	Save(ctx context.Context, record progress.Record) error
}

type LedgerRepository interface {
	Save(ctx context.Context, ledger gamification.Ledger) error
}

// Engine applies finished attempts and persists the result.
type Engine struct {
	progress ProgressRepository
	ledger   LedgerRepository
	now      func() time.Time
}

func NewEngine(progressRepository ProgressRepository, ledgerRepository LedgerRepository, now func() time.Time) *Engine {
	return &Engine{
		progress: progressRepository,
		ledger:   ledgerRepository,
		now:      now,
	}
}

// Complete applies a completed attempt to snapshot. Each run of an attempt
// is applied once; Retake allows another. When nothing passes, nothing is
// persisted. On a persistence error the original snapshot is returned and
// the attempt can be completed again.
func (e *Engine) Complete(ctx context.Context, attempt *Attempt, snapshot Snapshot) (Snapshot, Outcome, error) {
	if attempt.State() != Completed {
		return snapshot, Outcome{}, ErrNotCompleted
	}
	if attempt.applied {
		return snapshot, Outcome{}, ErrAlreadyCompleted
	}

	lesson := attempt.Lesson()
	updated, outcome := Apply(snapshot, lesson.ID, attempt.Score(), e.now())

	logger := slog.Default().With(
		slog.String("lesson", lesson.ID),
		slog.Int("percentage", outcome.Percentage),
	)
	if !outcome.Passed {
		attempt.applied = true
		logger.DebugContext(ctx, "quiz failed")
		return snapshot, outcome, nil
	}

	// The ledger goes first: a lesson must not be stored as completed
	// without its XP. Saving the same ledger twice is harmless.
	if err := e.ledger.Save(ctx, updated.Ledger); err != nil {
		return snapshot, outcome, fmt.Errorf("save user stats: %w", err)
	}
	if err := e.progress.Save(ctx, updated.Progress); err != nil {
		return snapshot, outcome, fmt.Errorf("save progress: %w", err)
	}
	attempt.applied = true
	logger.DebugContext(ctx, "quiz passed",
		slog.Int("xp_earned", outcome.XPEarned),
		slog.Int("unlocked", len(outcome.Unlocked)),
	)
	return updated, outcome, nil
}
