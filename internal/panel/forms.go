package panel

import (
	"fmt"
	"sort"
	"strings"

	"github.com/iksnae/studymind/internal"
	"github.com/iksnae/studymind/internal/api"
)

const (
	MinQuizQuestions = 1
	MaxQuizQuestions = 20
)

// GenerateForm is the input of a single-shot transform
type GenerateForm struct {
	Text string
	Task internal.Task
}

func (f GenerateForm) Validate() error {
	if strings.TrimSpace(f.Text) == "" {
		return missingInput("text")
	}
	_, err := internal.ParseTask(string(f.Task))
	return err
}

// ContentForm is the input of the content generation panel
type ContentForm struct {
	Input      string
	Difficulty internal.Difficulty
}

func (f ContentForm) Validate() error {
	if strings.TrimSpace(f.Input) == "" {
		return missingInput("topic or source text")
	}
	return validDifficulty(f.Difficulty)
}

// QuizForm is the input of the quiz generator
type QuizForm struct {
	Topic      string
	Difficulty internal.Difficulty
	Type       api.QuizType
	Count      int
}

// NewQuizForm returns a form with the default settings: beginner, multiple choice, five questions
func NewQuizForm(topic string) QuizForm {
	return QuizForm{Topic: topic, Difficulty: internal.DifficultyBeginner, Type: api.QuizMCQ, Count: 5}
}

func (f QuizForm) Validate() error {
	if strings.TrimSpace(f.Topic) == "" {
		return missingInput("topic")
	}
	if err := validDifficulty(f.Difficulty); err != nil {
		return err
	}
	if f.Type != api.QuizMCQ && f.Type != api.QuizShort {
		return fmt.Errorf("unknown quiz type %q (supported: mcq, short)", f.Type)
	}
	if f.Count < MinQuizQuestions || f.Count > MaxQuizQuestions {
		return fmt.Errorf("question count must be between %d and %d, got %d", MinQuizQuestions, MaxQuizQuestions, f.Count)
	}
	return nil
}

// GradingForm is the input of the grading panel
type GradingForm struct {
	Question string
	Answer   string
	IsCode   bool
}

func (f GradingForm) Validate() error {
	if strings.TrimSpace(f.Question) == "" {
		return missingInput("question")
	}
	if strings.TrimSpace(f.Answer) == "" {
		return missingInput("answer")
	}
	return nil
}

// AdminTemplates lists the admin templates with their default variables
var AdminTemplates = map[string]map[string]string{
	"reminder_email": {
		"subject": "Assignment 2",
		"due":     "Friday 5pm",
		"details": "Submit via LMS, late penalties apply.",
	},
	"course_summary": {
		"week":   "5",
		"topics": "Dynamic Programming, Memoization",
	},
	"grading_rubric": {
		"assignment": "Project 1",
		"criteria":   "Correctness, Style, Documentation, Efficiency",
	},
}

// AdminTemplateNames returns the template names sorted
func AdminTemplateNames() []string {
	names := make([]string, 0, len(AdminTemplates))
	for name := range AdminTemplates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AdminForm is the input of the admin tools panel
type AdminForm struct {
	Template  string
	Variables map[string]string
}

// NewAdminForm returns a form for template prefilled with its defaults
func NewAdminForm(template string) AdminForm {
	vars := make(map[string]string)
	for k, v := range AdminTemplates[template] {
		vars[k] = v
	}
	return AdminForm{Template: template, Variables: vars}
}

// Set overrides one variable. Only variables known to the template are sent.
func (f *AdminForm) Set(key, value string) error {
	defaults, ok := AdminTemplates[f.Template]
	if !ok {
		return fmt.Errorf("unknown template %q", f.Template)
	}
	if _, ok := defaults[key]; !ok {
		keys := make([]string, 0, len(defaults))
		for k := range defaults {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return fmt.Errorf("template %s has no variable %q (variables: %s)", f.Template, key, strings.Join(keys, ", "))
	}
	if f.Variables == nil {
		f.Variables = make(map[string]string)
	}
	f.Variables[key] = value
	return nil
}

func (f AdminForm) Validate() error {
	if _, ok := AdminTemplates[f.Template]; !ok {
		return fmt.Errorf("unknown template %q (supported: %s)", f.Template, strings.Join(AdminTemplateNames(), ", "))
	}
	return nil
}

// IdeasForm is the input of the project ideas panel
type IdeasForm struct {
	Topic      string
	Level      internal.Difficulty
	Variations bool
}

// NewIdeasForm returns the default form
func NewIdeasForm() IdeasForm {
	return IdeasForm{Topic: "Data Structures", Level: internal.DifficultyBeginner, Variations: true}
}

func (f IdeasForm) Validate() error {
	if strings.TrimSpace(f.Topic) == "" {
		return missingInput("topic")
	}
	return validDifficulty(f.Level)
}

// DefaultHelpQuestion prefills the help panel
const DefaultHelpQuestion = "How do I generate quizzes?"

// HelpForm is the input of the help panel
type HelpForm struct {
	Question string
}

func (f HelpForm) Validate() error {
	if strings.TrimSpace(f.Question) == "" {
		return missingInput("question")
	}
	return nil
}

// UploadForm is the input of the upload panel
type UploadForm struct {
	Path string
}

func (f UploadForm) Validate() error {
	if strings.TrimSpace(f.Path) == "" {
		return missingInput("file")
	}
	return nil
}

func validDifficulty(d internal.Difficulty) error {
	_, err := internal.ParseDifficulty(string(d))
	return err
}
