// Package catalog provides the immutable lesson catalog: lessons grouped into
// levels, each with vocabulary items and an ordered quiz.
package catalog

import (
	"fmt"
	"slices"
	"sort"
)

// VocabularyItem is a single term taught by a lesson.
type VocabularyItem struct {
	Term          string `yaml:"term" json:"term" validate:"required"`
	Translation   string `yaml:"translation" json:"translation" validate:"required"`
	Pronunciation string `yaml:"pronunciation,omitempty" json:"pronunciation,omitempty"`
}

// Question is a multiple choice quiz question.
// Options contain CorrectAnswer exactly once.
type Question struct {
	Prompt        string   `yaml:"prompt" json:"prompt" validate:"required"`
	CorrectAnswer string   `yaml:"answer" json:"-" validate:"required"`
	Options       []string `yaml:"options" json:"options" validate:"min=2,dive,required"`
}

// Lesson is a catalog unit of vocabulary and quiz. It belongs to exactly one level.
type Lesson struct {
	ID       string           `yaml:"id" json:"id" validate:"required"`
	Level    int              `yaml:"level" json:"level" validate:"gte=1"`
	Category string           `yaml:"category" json:"category" validate:"required"`
	Items    []VocabularyItem `yaml:"items" json:"items" validate:"dive"`
	Quiz     []Question       `yaml:"quiz" json:"quiz" validate:"dive"`
}

// clone returns a copy of the lesson that shares no slices with it.
func (l Lesson) clone() Lesson {
	l.Items = slices.Clone(l.Items)
	quiz := slices.Clone(l.Quiz)
	for i := range quiz {
		quiz[i].Options = slices.Clone(quiz[i].Options)
	}
	l.Quiz = quiz
	return l
}

func cloneLessons(lessons []Lesson) []Lesson {
	result := make([]Lesson, len(lessons))
	for i, lesson := range lessons {
		result[i] = lesson.clone()
	}
	return result
}

// Level names an ordinal group of lessons.
type Level struct {
	Number int    `yaml:"number" json:"number" validate:"gte=1"`
	Name   string `yaml:"name" json:"name" validate:"required"`
}

// Catalog is the read-only source of truth for which lessons exist.
// Lessons handed in and out are copied, so callers cannot mutate it.
type Catalog struct {
	lessons []Lesson
	levels  []Level
	byID    map[string]int
	byLevel map[int][]int
}

// New builds a Catalog from lessons in their given order.
// Level names missing from levels are rendered as "Level N".
func New(lessons []Lesson, levels []Level) *Catalog {
	c := &Catalog{
		lessons: cloneLessons(lessons),
		byID:    make(map[string]int, len(lessons)),
		byLevel: make(map[int][]int),
	}
	for i, lesson := range c.lessons {
		c.byID[lesson.ID] = i
		c.byLevel[lesson.Level] = append(c.byLevel[lesson.Level], i)
	}

	named := make(map[int]string, len(levels))
	for _, l := range levels {
		named[l.Number] = l.Name
	}
	numbers := make([]int, 0, len(c.byLevel)+len(named))
	seen := make(map[int]bool)
	for n := range c.byLevel {
		numbers = append(numbers, n)
		seen[n] = true
	}
	for n := range named {
		if !seen[n] {
			numbers = append(numbers, n)
		}
	}
	sort.Ints(numbers)
	for _, n := range numbers {
		name, ok := named[n]
		if !ok {
			name = fmt.Sprintf("Level %d", n)
		}
		c.levels = append(c.levels, Level{Number: n, Name: name})
	}
	return c
}

// Lessons returns every lesson in catalog order.
func (c *Catalog) Lessons() []Lesson {
	return cloneLessons(c.lessons)
}

// Len returns the number of lessons.
func (c *Catalog) Len() int {
	return len(c.lessons)
}

// Lesson returns the lesson with the given ID.
func (c *Catalog) Lesson(id string) (Lesson, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Lesson{}, false
	}
	return c.lessons[i].clone(), true
}

// LevelLessons returns the lessons of a level in catalog order.
func (c *Catalog) LevelLessons(level int) []Lesson {
	indexes := c.byLevel[level]
	result := make([]Lesson, 0, len(indexes))
	for _, i := range indexes {
		result = append(result, c.lessons[i].clone())
	}
	return result
}

// Levels returns the catalog's levels in ascending order.
func (c *Catalog) Levels() []Level {
	result := make([]Level, len(c.levels))
	copy(result, c.levels)
	return result
}

// LevelName returns the display name of a level.
func (c *Catalog) LevelName(level int) string {
	for _, l := range c.levels {
		if l.Number == level {
			return l.Name
		}
	}
	return fmt.Sprintf("Level %d", level)
}
