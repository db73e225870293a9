package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/at-ishikawa/parlami/internal/learner"
	"github.com/at-ishikawa/parlami/internal/quiz"
)

// LessonQuizCLI runs the quiz of one lesson and offers a retake when it
// ends.
type LessonQuizCLI struct {
	*InteractiveCLI
	session *learner.Session
}

// NewLessonQuizCLI starts the quiz of lessonID. It fails for unknown lessons
// and lessons in locked levels.
func NewLessonQuizCLI(session *learner.Session, lessonID string, stdin io.Reader, stdout io.Writer) (*LessonQuizCLI, error) {
	if _, err := session.StartQuiz(lessonID); err != nil {
		return nil, fmt.Errorf("session.StartQuiz(%s) > %w", lessonID, err)
	}
	return &LessonQuizCLI{
		InteractiveCLI: newInteractiveCLI(stdin, stdout),
		session:        session,
	}, nil
}

// ShowVocabulary prints the lesson's vocabulary before the quiz.
func (q *LessonQuizCLI) ShowVocabulary() {
	lesson := q.session.Attempt().Lesson()
	out := q.stdoutWriter
	_, _ = q.bold.Fprintf(out, "%s\n", lesson.Category)
	_, _ = fmt.Fprintf(out, "Level %d: %s\n\n", lesson.Level, q.session.Catalog().LevelName(lesson.Level))
	for _, item := range lesson.Items {
		_, _ = q.bold.Fprintf(out, "  %s", item.Term)
		_, _ = fmt.Fprintf(out, " = %s", item.Translation)
		if item.Pronunciation != "" {
			_, _ = q.italic.Fprintf(out, " [%s]", item.Pronunciation)
		}
		_, _ = fmt.Fprintln(out)
	}
	_, _ = fmt.Fprintln(out)
}

func (q *LessonQuizCLI) Session(ctx context.Context) error {
	attempt := q.session.Attempt()
	index, question, ok := attempt.Current()
	if !ok {
		return q.finish(ctx)
	}

	out := q.stdoutWriter
	_, _ = fmt.Fprintf(out, "Question %d of %d\n", index+1, len(attempt.Lesson().Quiz))
	_, _ = q.bold.Fprintf(out, "%s\n", question.Prompt)
	_, _ = fmt.Fprintln(out, "What does this mean?")
	for i, option := range question.Options {
		_, _ = fmt.Fprintf(out, "  %d) %s\n", i+1, option)
	}
	_, _ = fmt.Fprint(out, "> ")

	line, err := q.readLine()
	if err != nil {
		return err
	}
	selected, ok := selectOption(question.Options, line)
	if !ok {
		_, _ = q.yellow.Fprintf(out, "Choose a number between 1 and %d.\n\n", len(question.Options))
		return nil
	}

	answer, err := q.session.AnswerQuestion(index, question.Options[selected])
	if err != nil {
		return fmt.Errorf("session.AnswerQuestion(%d) > %w", index, err)
	}
	if answer.Correct {
		_, _ = q.green.Fprintln(out, "✅ Correct!")
	} else {
		_, _ = q.red.Fprintf(out, "❌ Wrong. The answer is %q\n", answer.CorrectAnswer)
	}
	_, _ = fmt.Fprintln(out)
	return nil
}

func (q *LessonQuizCLI) finish(ctx context.Context) error {
	outcome, err := q.session.CompleteQuizAttempt(ctx)
	if err != nil {
		return fmt.Errorf("session.CompleteQuizAttempt() > %w", err)
	}

	out := q.stdoutWriter
	_, _ = q.bold.Fprintf(out, "Score: %d/%d (%d%%)\n", outcome.Score.Correct, outcome.Score.Total, outcome.Percentage)
	if outcome.Passed {
		_, _ = q.green.Fprintf(out, "\U0001F389 Lesson completed! +%d XP\n", outcome.XPEarned)
		if outcome.Perfect {
			_, _ = q.green.Fprintln(out, "\U0001F4AF Perfect score!")
		}
		for _, a := range outcome.Unlocked {
			_, _ = q.yellow.Fprintf(out, "%s Achievement unlocked: %s (+%d XP)\n", a.Icon, a.Name, a.BonusXP)
		}
	} else {
		_, _ = q.yellow.Fprintf(out, "You need %d%% to pass. Keep practicing!\n", quiz.PassThreshold)
	}

	retake, err := q.confirm("Retake the quiz?")
	if err != nil {
		return err
	}
	if !retake {
		return errEnd
	}
	if _, err := q.session.RetakeQuiz(); err != nil {
		return fmt.Errorf("session.RetakeQuiz() > %w", err)
	}
	_, _ = fmt.Fprintln(out)
	return nil
}
