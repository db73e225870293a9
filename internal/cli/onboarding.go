package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/at-ishikawa/parlami/internal/languages"
	"github.com/at-ishikawa/parlami/internal/learner"
	"github.com/at-ishikawa/parlami/internal/profile"
)

var ErrOnboardingCancelled = errors.New("onboarding cancelled")

// OnboardingCLI asks the onboarding questions in three steps and saves the
// answers as the learner's profile.
type OnboardingCLI struct {
	*InteractiveCLI
	session *learner.Session
}

func NewOnboardingCLI(session *learner.Session, stdin io.Reader, stdout io.Writer) *OnboardingCLI {
	return &OnboardingCLI{
		InteractiveCLI: newInteractiveCLI(stdin, stdout),
		session:        session,
	}
}

// Run asks every question, starting from the current profile or the
// defaults, and saves the result.
func (o *OnboardingCLI) Run(ctx context.Context) (profile.Profile, error) {
	p := profile.Default()
	if current := o.session.Profile(); current != nil {
		p = *current
	}

	steps := []func(*profile.Profile) error{
		o.aboutYou,
		o.targetLanguage,
		o.goals,
	}
	for i, step := range steps {
		_, _ = o.bold.Fprintf(o.stdoutWriter, "\nStep %d of %d\n", i+1, len(steps))
		if err := step(&p); err != nil {
			if errors.Is(err, errEnd) {
				return profile.Profile{}, ErrOnboardingCancelled
			}
			return profile.Profile{}, err
		}
	}

	if err := o.session.SaveProfile(ctx, p); err != nil {
		return profile.Profile{}, fmt.Errorf("session.SaveProfile() > %w", err)
	}
	_, _ = o.green.Fprintf(o.stdoutWriter, "\nWelcome%s! You are learning %s.\n", greetingName(p.Name), languages.Label(p.TargetLanguage))
	return p, nil
}

func greetingName(name string) string {
	if name == "" {
		return ""
	}
	return ", " + name
}

func (o *OnboardingCLI) aboutYou(p *profile.Profile) error {
	_, _ = fmt.Fprintf(o.stdoutWriter, "What's your name? (optional) ")
	name, err := o.readLine()
	if err != nil {
		return err
	}
	if name != "" {
		p.Name = name
	}

	natives := languages.Native()
	code, err := o.chooseLanguage("What's your native language?", natives, p.NativeLanguage, "")
	if err != nil {
		return err
	}
	p.NativeLanguage = code
	return nil
}

func (o *OnboardingCLI) targetLanguage(p *profile.Profile) error {
	current := p.TargetLanguage
	if current == p.NativeLanguage {
		current = ""
	}
	code, err := o.chooseLanguage("Which language do you want to learn?", languages.All(), current, p.NativeLanguage)
	if err != nil {
		return err
	}
	p.TargetLanguage = code
	return nil
}

func (o *OnboardingCLI) goals(p *profile.Profile) error {
	var err error
	if p.LearningGoal, err = o.choose("Why are you learning?", profile.LearningGoals, p.LearningGoal); err != nil {
		return err
	}
	if p.CurrentLevel, err = o.choose("What's your current level?", profile.Proficiencies, p.CurrentLevel); err != nil {
		return err
	}
	if p.DailyGoal, err = o.choose("How much time per day?", profile.DailyGoals, p.DailyGoal); err != nil {
		return err
	}
	return nil
}

// chooseLanguage offers choices except the excluded code.
func (o *OnboardingCLI) chooseLanguage(question string, choices []languages.Language, current, excluded string) (string, error) {
	var codes, labels []string
	for _, l := range choices {
		if l.Code == excluded {
			continue
		}
		codes = append(codes, l.Code)
		labels = append(labels, fmt.Sprintf("%s %s (%s)", l.Flag, l.Name, l.NativeName))
	}
	defaultLabel := ""
	for i, code := range codes {
		if code == current {
			defaultLabel = labels[i]
		}
	}
	if defaultLabel == "" {
		defaultLabel = labels[0]
	}

	label, err := o.choose(question, labels, defaultLabel)
	if err != nil {
		return "", err
	}
	for i := range labels {
		if labels[i] == label {
			return codes[i], nil
		}
	}
	return codes[0], nil
}

// choose asks until one of options is picked. An empty answer keeps
// current.
func (o *OnboardingCLI) choose(question string, options []string, current string) (string, error) {
	out := o.stdoutWriter
	for {
		_, _ = fmt.Fprintln(out, question)
		for i, option := range options {
			marker := " "
			if option == current {
				marker = "*"
			}
			_, _ = fmt.Fprintf(out, " %s%d) %s\n", marker, i+1, option)
		}
		_, _ = fmt.Fprint(out, "> ")

		line, err := o.readLine()
		if err != nil {
			return "", err
		}
		if line == "" && current != "" {
			return current, nil
		}
		if i, ok := selectOption(options, line); ok {
			return options[i], nil
		}
		_, _ = o.yellow.Fprintf(out, "Choose a number between 1 and %d.\n", len(options))
	}
}
