package assets

import (
	"fmt"
	"io"
	"time"
)

// ProgressReportTemplate is the data a progress report template renders.
type ProgressReportTemplate struct {
	Name            string
	TargetLanguage  string
	NativeLanguage  string
	Date            time.Time
	OverallProgress int
	CompletedCount  int
	LessonCount     int
	Stats           ReportStats
	Levels          []ReportLevel
	Achievements    []ReportAchievement
	Saved           []ReportTranslation
}

type ReportStats struct {
	XP             int
	CurrentStreak  int
	LongestStreak  int
	TotalLessons   int
	PerfectQuizzes int
	LanguagesTried []string
}

type ReportLevel struct {
	Number   int
	Name     string
	Unlocked bool
	Progress int
	Lessons  []ReportLesson
}

type ReportLesson struct {
	ID        string
	Category  string
	Completed bool
}

type ReportAchievement struct {
	Icon        string
	Name        string
	Description string
	BonusXP     int
	Unlocked    bool
	UnlockedAt  time.Time
}

type ReportTranslation struct {
	Original   string
	Translated string
	FromLang   string
	ToLang     string
}

// WriteProgressReport renders data as markdown. A readable templatePath
// overrides the embedded template.
func WriteProgressReport(output io.Writer, templatePath string, data ProgressReportTemplate) error {
	tmpl, err := parseTemplateWithFallback(templatePath, progressReportTemplateName)
	if err != nil {
		return fmt.Errorf("parseTemplateWithFallback() > %w", err)
	}
	if err := tmpl.Execute(output, data); err != nil {
		return fmt.Errorf("tmpl.Execute() > %w", err)
	}
	return nil
}
