// Package report writes a learner's progress report as markdown and,
// optionally, PDF.
package report

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/at-ishikawa/parlami/internal/assets"
	"github.com/at-ishikawa/parlami/internal/gamification"
	"github.com/at-ishikawa/parlami/internal/languages"
	"github.com/at-ishikawa/parlami/internal/learner"
	"github.com/at-ishikawa/parlami/internal/pdf"
	"github.com/at-ishikawa/parlami/internal/progress"
	"github.com/at-ishikawa/parlami/internal/translation"
)

// maxSavedTranslations is how many saved translations a report lists.
const maxSavedTranslations = 20

type Options struct {
	Directory    string
	TemplatePath string
	PDF          bool
}

// Result holds the paths of the written files. PDFPath is empty unless a
// PDF was requested.
type Result struct {
	MarkdownPath string
	PDFPath      string
}

// Build collects the report data from the session.
func Build(session *learner.Session, saved []translation.Translation, now time.Time) assets.ProgressReportTemplate {
	stats := session.LoadUserStats()
	record := session.LoadProgress()
	c := session.Catalog()

	data := assets.ProgressReportTemplate{
		Date:            now,
		OverallProgress: session.CalculateOverallProgress(),
		CompletedCount:  progress.CompletedCount(c, record),
		LessonCount:     c.Len(),
		Stats: assets.ReportStats{
			XP:             stats.XP,
			CurrentStreak:  stats.CurrentStreak,
			LongestStreak:  stats.LongestStreak,
			TotalLessons:   stats.TotalLessons,
			PerfectQuizzes: stats.PerfectQuizzes,
			LanguagesTried: stats.LanguagesTried,
		},
	}
	if p := session.Profile(); p != nil {
		data.Name = p.Name
		data.TargetLanguage = languageName(p.TargetLanguage)
		data.NativeLanguage = languageName(p.NativeLanguage)
	}

	for _, level := range session.LevelSummaries() {
		reportLevel := assets.ReportLevel{
			Number:   level.Number,
			Name:     level.Name,
			Unlocked: level.Unlocked,
			Progress: level.Progress,
		}
		for _, lesson := range level.Lessons {
			reportLevel.Lessons = append(reportLevel.Lessons, assets.ReportLesson{
				ID:        lesson.ID,
				Category:  lesson.Category,
				Completed: lesson.Completed,
			})
		}
		data.Levels = append(data.Levels, reportLevel)
	}

	for _, status := range gamification.Statuses(stats) {
		data.Achievements = append(data.Achievements, assets.ReportAchievement{
			Icon:        status.Icon,
			Name:        status.Name,
			Description: status.Description,
			BonusXP:     status.BonusXP,
			Unlocked:    status.Unlocked,
			UnlockedAt:  status.UnlockedAt,
		})
	}

	for _, t := range saved[:min(len(saved), maxSavedTranslations)] {
		data.Saved = append(data.Saved, assets.ReportTranslation{
			Original:   t.Original,
			Translated: t.Translated,
			FromLang:   t.FromLang,
			ToLang:     t.ToLang,
		})
	}
	return data
}

func languageName(code string) string {
	if code == languages.English.Code {
		return languages.English.Name
	}
	if l, ok := languages.ByCode(code); ok {
		return l.Name
	}
	return code
}

// Write renders data into opts.Directory as progress-report-<date>.md and
// converts it to PDF when opts.PDF is set.
func Write(data assets.ProgressReportTemplate, opts Options) (Result, error) {
	var buf bytes.Buffer
	if err := assets.WriteProgressReport(&buf, opts.TemplatePath, data); err != nil {
		return Result{}, fmt.Errorf("assets.WriteProgressReport > %w", err)
	}

	if err := os.MkdirAll(opts.Directory, 0o755); err != nil {
		return Result{}, fmt.Errorf("os.MkdirAll(%s) > %w", opts.Directory, err)
	}
	filename := fmt.Sprintf("progress-report-%s.md", data.Date.Format("2006-01-02"))
	result := Result{MarkdownPath: filepath.Join(opts.Directory, filename)}
	if err := os.WriteFile(result.MarkdownPath, buf.Bytes(), 0o644); err != nil {
		return Result{}, fmt.Errorf("os.WriteFile(%s) > %w", result.MarkdownPath, err)
	}
	slog.Default().Debug("wrote a progress report", slog.String("path", result.MarkdownPath))

	if !opts.PDF {
		return result, nil
	}
	pdfPath, err := pdf.ConvertMarkdownFile(result.MarkdownPath)
	if err != nil {
		return result, fmt.Errorf("pdf.ConvertMarkdownFile > %w", err)
	}
	result.PDFPath = pdfPath
	return result, nil
}
