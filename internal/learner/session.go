// Package learner is the session the presentation layers drive. It owns the
// learner's progress, ledger and profile for the lifetime of a session and
// persists every change through the storage layer.
//
// A Session is not safe for concurrent use.
package learner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/at-ishikawa/parlami/internal/catalog"
	"github.com/at-ishikawa/parlami/internal/gamification"
	"github.com/at-ishikawa/parlami/internal/languages"
	"github.com/at-ishikawa/parlami/internal/profile"
	"github.com/at-ishikawa/parlami/internal/progress"
	"github.com/at-ishikawa/parlami/internal/quiz"
	"github.com/at-ishikawa/parlami/internal/storage"
)

var (
	ErrLevelLocked     = errors.New("level is locked")
	ErrUnknownLesson   = errors.New("unknown lesson")
	ErrUnknownLanguage = errors.New("unknown language")
	ErrNoActiveQuiz    = errors.New("no quiz has been started")
)

type Session struct {
	store   storage.Store
	catalog *catalog.Catalog
	now     func() time.Time

	progressRepository *progress.Repository
	ledgerRepository   *gamification.Repository
	profileRepository  *profile.Repository
	engine             *quiz.Engine

	snapshot quiz.Snapshot
	profile  *profile.Profile
	attempt  *quiz.Attempt
}

// Open loads the learner's state from store and records today's login.
func Open(ctx context.Context, store storage.Store, c *catalog.Catalog, now func() time.Time) (*Session, error) {
	if now == nil {
		now = time.Now
	}
	s := &Session{
		store:              store,
		catalog:            c,
		now:                now,
		progressRepository: progress.NewRepository(store),
		ledgerRepository:   gamification.NewRepository(store),
		profileRepository:  profile.NewRepository(store),
	}
	s.engine = quiz.NewEngine(s.progressRepository, s.ledgerRepository, now)

	if err := s.load(ctx); err != nil {
		return nil, err
	}
	if _, err := s.UpdateStreak(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) load(ctx context.Context) error {
	record, err := s.progressRepository.Load(ctx)
	if err != nil {
		return fmt.Errorf("progressRepository.Load > %w", err)
	}
	ledger, err := s.ledgerRepository.Load(ctx)
	if err != nil {
		return fmt.Errorf("ledgerRepository.Load > %w", err)
	}
	p, err := s.profileRepository.Load(ctx)
	if err != nil {
		return fmt.Errorf("profileRepository.Load > %w", err)
	}
	s.snapshot = quiz.Snapshot{Progress: record, Ledger: ledger}
	s.profile = p
	return nil
}

func (s *Session) Catalog() *catalog.Catalog {
	return s.catalog
}

func (s *Session) IsLevelUnlocked(level int) bool {
	return progress.IsLevelUnlocked(s.catalog, level, s.snapshot.Progress)
}

func (s *Session) CalculateLevelProgress(level int) int {
	return progress.CalculateLevelProgress(s.catalog, level, s.snapshot.Progress)
}

func (s *Session) CalculateOverallProgress() int {
	return progress.CalculateOverallProgress(s.catalog, s.snapshot.Progress)
}

// LoadUserStats returns a copy of the ledger.
func (s *Session) LoadUserStats() gamification.Ledger {
	return s.snapshot.Ledger.Clone()
}

// LoadProgress returns a copy of the progress record.
func (s *Session) LoadProgress() progress.Record {
	return s.snapshot.Progress.Clone()
}

// Profile returns the learner's profile, or nil before onboarding.
func (s *Session) Profile() *profile.Profile {
	if s.profile == nil {
		return nil
	}
	p := *s.profile
	return &p
}

type LessonSummary struct {
	ID        string `json:"id"`
	Category  string `json:"category"`
	Items     int    `json:"items"`
	Questions int    `json:"questions"`
	Completed bool   `json:"completed"`
}

type LevelSummary struct {
	Number    int             `json:"number"`
	Name      string          `json:"name"`
	Unlocked  bool            `json:"unlocked"`
	Progress  int             `json:"progress"`
	Completed int             `json:"completed"`
	Lessons   []LessonSummary `json:"lessons"`
}

// LevelSummaries returns every level of the catalog in order with its lock
// state and progress.
func (s *Session) LevelSummaries() []LevelSummary {
	levels := s.catalog.Levels()
	result := make([]LevelSummary, 0, len(levels))
	for _, level := range levels {
		summary := LevelSummary{
			Number:   level.Number,
			Name:     level.Name,
			Unlocked: s.IsLevelUnlocked(level.Number),
			Progress: s.CalculateLevelProgress(level.Number),
			Lessons:  []LessonSummary{},
		}
		for _, lesson := range s.catalog.LevelLessons(level.Number) {
			completed := s.snapshot.Progress.IsCompleted(lesson.ID)
			if completed {
				summary.Completed++
			}
			summary.Lessons = append(summary.Lessons, LessonSummary{
				ID:        lesson.ID,
				Category:  lesson.Category,
				Items:     len(lesson.Items),
				Questions: len(lesson.Quiz),
				Completed: completed,
			})
		}
		result = append(result, summary)
	}
	return result
}

// StartQuiz starts a new attempt on a lesson of an unlocked level. Any
// attempt already running is abandoned.
func (s *Session) StartQuiz(lessonID string) (*quiz.Attempt, error) {
	lesson, ok := s.catalog.Lesson(lessonID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLesson, lessonID)
	}
	if !s.IsLevelUnlocked(lesson.Level) {
		return nil, fmt.Errorf("%w: level %d", ErrLevelLocked, lesson.Level)
	}
	attempt := quiz.NewAttempt(lesson)
	attempt.Start()
	s.attempt = attempt
	return attempt, nil
}

// Attempt returns the current attempt, or nil when none was started.
func (s *Session) Attempt() *quiz.Attempt {
	return s.attempt
}

// AnswerQuestion answers a question of the current attempt.
func (s *Session) AnswerQuestion(index int, option string) (quiz.Answer, error) {
	if s.attempt == nil {
		return quiz.Answer{}, ErrNoActiveQuiz
	}
	return s.attempt.Answer(index, option)
}

// RetakeQuiz restarts the current attempt with a fresh score.
func (s *Session) RetakeQuiz() (*quiz.Attempt, error) {
	if s.attempt == nil {
		return nil, ErrNoActiveQuiz
	}
	s.attempt.Retake()
	return s.attempt, nil
}

// CompleteQuizAttempt applies the completed current attempt. A pass marks
// the lesson completed, awards XP and unlocks achievements.
func (s *Session) CompleteQuizAttempt(ctx context.Context) (quiz.Outcome, error) {
	if s.attempt == nil {
		return quiz.Outcome{}, ErrNoActiveQuiz
	}
	updated, outcome, err := s.engine.Complete(ctx, s.attempt, s.snapshot)
	if err != nil {
		return outcome, err
	}
	s.snapshot = updated
	return outcome, nil
}

// UpdateStreak records a login today and returns the ledger. Nothing is
// written when today was already recorded.
func (s *Session) UpdateStreak(ctx context.Context) (gamification.Ledger, error) {
	today := gamification.DateOf(s.now())
	if s.snapshot.Ledger.LastLoginDate.Equal(today) {
		return s.snapshot.Ledger.Clone(), nil
	}
	ledger := gamification.UpdateStreak(s.snapshot.Ledger, today)
	if err := s.ledgerRepository.Save(ctx, ledger); err != nil {
		return s.snapshot.Ledger.Clone(), fmt.Errorf("ledgerRepository.Save > %w", err)
	}
	slog.Default().DebugContext(ctx, "login recorded",
		slog.String("date", today.String()),
		slog.Int("streak", ledger.CurrentStreak),
	)
	s.snapshot.Ledger = ledger
	return ledger.Clone(), nil
}

// RecordLanguageTried adds a language to the ledger.
func (s *Session) RecordLanguageTried(ctx context.Context, code string) error {
	if _, ok := languages.ByCode(code); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownLanguage, code)
	}
	ledger := gamification.RecordLanguage(s.snapshot.Ledger, code)
	if len(ledger.LanguagesTried) == len(s.snapshot.Ledger.LanguagesTried) {
		return nil
	}
	if err := s.ledgerRepository.Save(ctx, ledger); err != nil {
		return fmt.Errorf("ledgerRepository.Save > %w", err)
	}
	s.snapshot.Ledger = ledger
	return nil
}

// SaveProfile validates and stores the profile, which completes onboarding.
// The login is recorded and the target language counts as tried.
func (s *Session) SaveProfile(ctx context.Context, p profile.Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = profile.Timestamp{Time: s.now()}
	}
	if err := s.profileRepository.Save(ctx, p); err != nil {
		return fmt.Errorf("profileRepository.Save > %w", err)
	}
	s.profile = &p

	if _, err := s.UpdateStreak(ctx); err != nil {
		return err
	}
	return s.RecordLanguageTried(ctx, p.TargetLanguage)
}

// Reset removes the learner's progress, ledger and profile. Saved
// translations and cached translations are kept.
func (s *Session) Reset(ctx context.Context) error {
	if err := storage.RemoveAll(ctx, s.store,
		storage.ProgressKey,
		storage.UserStatsKey,
		storage.UserProfileKey,
	); err != nil {
		return fmt.Errorf("storage.RemoveAll > %w", err)
	}
	s.snapshot = quiz.Snapshot{Progress: progress.Record{}, Ledger: gamification.NewLedger()}
	s.profile = nil
	s.attempt = nil
	return nil
}
