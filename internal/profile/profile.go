// Package profile stores who the learner is and what they are learning.
package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/at-ishikawa/parlami/internal/languages"
)

var (
	LearningGoals = []string{"Travel", "Work", "Hobby", "Exam Preparation", "Making Friends"}
	Proficiencies = []string{"Beginner", "Intermediate", "Advanced"}
	DailyGoals    = []string{"5 min", "10 min", "15 min", "30 min"}
)

// Profile is collected once during onboarding.
type Profile struct {
	Name           string    `json:"name,omitempty"`
	NativeLanguage string    `json:"nativeLanguage" validate:"required,native_language"`
	TargetLanguage string    `json:"targetLanguage" validate:"required,target_language,nefield=NativeLanguage"`
	LearningGoal   string    `json:"learningGoal" validate:"required,learning_goal"`
	CurrentLevel   string    `json:"currentLevel" validate:"required,proficiency"`
	DailyGoal      string    `json:"dailyGoal" validate:"required,daily_goal"`
	CreatedAt      Timestamp `json:"createdAt"`
}

// Default returns the answers preselected by onboarding.
func Default() Profile {
	return Profile{
		NativeLanguage: "en",
		TargetLanguage: "it",
		LearningGoal:   "Hobby",
		CurrentLevel:   "Beginner",
		DailyGoal:      "10 min",
	}
}

// Timestamp is serialized as Unix milliseconds.
type Timestamp struct {
	time.Time
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("0"), nil
	}
	return json.Marshal(t.UnixMilli())
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var millis int64
	if err := json.Unmarshal(data, &millis); err != nil {
		return fmt.Errorf("timestamp must be unix milliseconds: %w", err)
	}
	if millis == 0 {
		*t = Timestamp{}
		return nil
	}
	t.Time = time.UnixMilli(millis).UTC()
	return nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	oneOf := func(values []string) validator.Func {
		return func(fl validator.FieldLevel) bool {
			return slices.Contains(values, fl.Field().String())
		}
	}
	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("native_language", func(fl validator.FieldLevel) bool {
		return languages.IsNative(fl.Field().String())
	})
	_ = v.RegisterValidation("target_language", func(fl validator.FieldLevel) bool {
		_, ok := languages.ByCode(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("learning_goal", oneOf(LearningGoals))
	_ = v.RegisterValidation("proficiency", oneOf(Proficiencies))
	_ = v.RegisterValidation("daily_goal", oneOf(DailyGoals))
	return v
}

// Validate checks that every answer is one of the offered choices.
func (p Profile) Validate() error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return fmt.Errorf("validate.Struct > %w", err)
	}
	problems := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		problems = append(problems, fmt.Sprintf("%s %q is not valid (%s)", fe.Field(), fe.Value(), fe.Tag()))
	}
	return fmt.Errorf("invalid profile: %s", strings.Join(problems, ", "))
}
