// Package quiz runs a single attempt over a lesson's questions and applies
// the effects of finishing it.
package quiz

import (
	"errors"
	"math"

	"github.com/at-ishikawa/parlami/internal/catalog"
)

// PassThreshold is the percentage of correct answers needed to pass a quiz.
const PassThreshold = 70

var (
	ErrAlreadyAnswered = errors.New("question already answered")
	ErrOutOfOrder      = errors.New("question answered out of order")
	ErrNotInProgress   = errors.New("quiz is not in progress")
)

type State int

const (
	Idle State = iota
	InProgress
	Completed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case InProgress:
		return "in_progress"
	case Completed:
		return "completed"
	}
	return "unknown"
}

// Score counts correct answers out of the number of questions.
type Score struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// Percentage returns the rounded percentage of correct answers, or 0 for an
// empty quiz.
func (s Score) Percentage() int {
	if s.Total == 0 {
		return 0
	}
	return int(math.Round(float64(s.Correct) / float64(s.Total) * 100))
}

// Passed reports whether at least 70% of the answers are correct. The ratio
// is compared before rounding. An empty quiz never passes.
func (s Score) Passed() bool {
	if s.Total == 0 {
		return false
	}
	return s.Correct*100 >= PassThreshold*s.Total
}

// Perfect reports whether every answer is correct. An empty quiz is never
// perfect.
func (s Score) Perfect() bool {
	return s.Total > 0 && s.Correct == s.Total
}

// Answer is the result of answering one question.
type Answer struct {
	Question      int    `json:"question"`
	Selected      string `json:"selected"`
	CorrectAnswer string `json:"correctAnswer"`
	Correct       bool   `json:"correct"`
}

// Attempt is one run through a lesson's quiz. Questions are answered in
// order and at most once each.
type Attempt struct {
	lesson  catalog.Lesson
	state   State
	next    int
	score   Score
	answers []Answer
	applied bool
}

// NewAttempt returns an idle attempt for lesson.
func NewAttempt(lesson catalog.Lesson) *Attempt {
	return &Attempt{lesson: lesson}
}

// Start begins the attempt at the first question. A lesson without
// questions completes immediately with a failing score.
func (a *Attempt) Start() {
	a.next = 0
	a.score = Score{Total: len(a.lesson.Quiz)}
	a.answers = make([]Answer, 0, len(a.lesson.Quiz))
	a.state = InProgress
	a.applied = false
	if a.score.Total == 0 {
		a.state = Completed
	}
}

// Retake starts over with a fresh score. Nothing from earlier runs is kept.
func (a *Attempt) Retake() {
	a.Start()
}

// Answer answers question index with option, comparing it with the correct
// answer by exact match. Answering the final question completes the
// attempt.
func (a *Attempt) Answer(index int, option string) (Answer, error) {
	if a.state == Idle {
		return Answer{}, ErrNotInProgress
	}
	if index >= 0 && index < a.next {
		return a.answers[index], ErrAlreadyAnswered
	}
	if a.state != InProgress {
		return Answer{}, ErrNotInProgress
	}
	if index != a.next {
		return Answer{}, ErrOutOfOrder
	}

	question := a.lesson.Quiz[index]
	answer := Answer{
		Question:      index,
		Selected:      option,
		CorrectAnswer: question.CorrectAnswer,
		Correct:       option == question.CorrectAnswer,
	}
	if answer.Correct {
		a.score.Correct++
	}
	a.answers = append(a.answers, answer)
	a.next++
	if a.next == len(a.lesson.Quiz) {
		a.state = Completed
	}
	return answer, nil
}

func (a *Attempt) Lesson() catalog.Lesson {
	return a.lesson
}

func (a *Attempt) State() State {
	return a.state
}

func (a *Attempt) Score() Score {
	return a.score
}

// Current returns the index and question to answer next. ok is false unless
// the attempt is in progress.
func (a *Attempt) Current() (index int, question catalog.Question, ok bool) {
	if a.state != InProgress {
		return 0, catalog.Question{}, false
	}
	return a.next, a.lesson.Quiz[a.next], true
}

// Answers returns the answers given so far in question order.
func (a *Attempt) Answers() []Answer {
	result := make([]Answer, len(a.answers))
	copy(result, a.answers)
	return result
}
