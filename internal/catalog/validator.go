package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError collects every problem found in a catalog.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid catalog: %s", strings.Join(e.Problems, "; "))
}

var validate = validator.New()

// Validate checks the structural invariants of a catalog: unique lesson IDs,
// contiguous levels starting at 1, and every correct answer present exactly
// once among its options. An empty quiz is allowed.
func Validate(lessons []Lesson, levels []Level) error {
	var problems []string

	for i, lesson := range lessons {
		if err := validate.Struct(lesson); err != nil {
			var fieldErrors validator.ValidationErrors
			if errors.As(err, &fieldErrors) {
				for _, fe := range fieldErrors {
					problems = append(problems, fmt.Sprintf("lessons[%d] (%s): %s failed on %s", i, lesson.ID, fe.Namespace(), fe.Tag()))
				}
			} else {
				return fmt.Errorf("validate.Struct > %w", err)
			}
		}
	}
	for i, level := range levels {
		if err := validate.Struct(level); err != nil {
			problems = append(problems, fmt.Sprintf("levels[%d]: %v", i, err))
		}
	}

	seen := make(map[string]bool, len(lessons))
	levelSet := make(map[int]bool)
	for _, lesson := range lessons {
		if seen[lesson.ID] {
			problems = append(problems, fmt.Sprintf("duplicate lesson id %q", lesson.ID))
		}
		seen[lesson.ID] = true
		if lesson.Level >= 1 {
			levelSet[lesson.Level] = true
		}

		for qi, question := range lesson.Quiz {
			count := 0
			for _, option := range question.Options {
				if option == question.CorrectAnswer {
					count++
				}
			}
			if count != 1 {
				problems = append(problems, fmt.Sprintf(
					"lesson %q question %d: answer %q appears %d times among options",
					lesson.ID, qi+1, question.CorrectAnswer, count,
				))
			}
		}
	}

	levelNumbers := make([]int, 0, len(levelSet))
	for n := range levelSet {
		levelNumbers = append(levelNumbers, n)
	}
	sort.Ints(levelNumbers)
	for i, n := range levelNumbers {
		if n != i+1 {
			problems = append(problems, fmt.Sprintf("levels are not contiguous from 1: found %v", levelNumbers))
			break
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
