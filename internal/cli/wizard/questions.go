package wizard

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/eddo81/wpkit/internal/config"
	"github.com/eddo81/wpkit/internal/naming"
	"github.com/eddo81/wpkit/pkg/models"
)

// Validation messages shown inline under the prompts.
const (
	msgProjectNameTooShort = "The project name is required and must contain at least 2 characters."
	msgProjectNameInvalid  = "The project name must contain letters or digits and must not be a reserved file name."
	msgInvalidEmail        = "You have entered an invalid email address!"
)

// Defaults pre-fills the questions, typically from the config file or flags.
type Defaults struct {
	ProjectName string
	AuthorName  string
	AuthorEmail string
	Description string
	Tailwind    bool
}

// DefaultQuestions returns the project questions in prompt order. With
// skipOptional the author, email and description questions are left out.
func DefaultQuestions(d Defaults, skipOptional bool) []Question {
	all := []Question{
		{
			ID:       QuestionProjectName,
			Type:     QuestionTypeInput,
			Title:    "Please enter the project name:",
			Default:  d.ProjectName,
			Validate: ValidateProjectName,
		},
		{
			ID:       QuestionAuthorName,
			Type:     QuestionTypeInput,
			Title:    "Please enter the name of the project author:",
			Default:  d.AuthorName,
			Optional: true,
		},
		{
			ID:       QuestionAuthorEmail,
			Type:     QuestionTypeInput,
			Title:    "Please enter the author email:",
			Default:  d.AuthorEmail,
			Optional: true,
			Validate: ValidateEmail,
		},
		{
			ID:       QuestionDescription,
			Type:     QuestionTypeInput,
			Title:    "Please enter a project description:",
			Default:  d.Description,
			Optional: true,
		},
		{
			ID:    QuestionTailwind,
			Type:  QuestionTypeSelect,
			Title: "Do you wish to include the Tailwind.css library in this project:",
			// The current answer comes first; see tailwindOptions.
			Options: tailwindOptions(d.Tailwind),
			Default: strconv.FormatBool(d.Tailwind),
		},
	}

	if !skipOptional {
		return all
	}
	questions := make([]Question, 0, len(all))
	for _, q := range all {
		if !q.Optional {
			questions = append(questions, q)
		}
	}
	return questions
}

// tailwindOptions lists the default answer first so huh's select opens
// with every option visible.
func tailwindOptions(defaultYes bool) []Option {
	no := Option{Label: "No", Value: "false"}
	yes := Option{Label: "Yes", Value: "true"}
	if defaultYes {
		return []Option{yes, no}
	}
	return []Option{no, yes}
}

// ValidateProjectName requires at least two characters and a name that
// yields a usable folder.
func ValidateProjectName(s string) error {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) < models.MinProjectNameLength {
		return errors.New(msgProjectNameTooShort)
	}
	if !naming.IsFilesystemSafe(naming.ToDashCase(s)) {
		return errors.New(msgProjectNameInvalid)
	}
	return nil
}

// ValidateEmail accepts an empty answer or a valid address.
func ValidateEmail(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if err := config.ValidateEmail(s); err != nil {
		return errors.New(msgInvalidEmail)
	}
	return nil
}

// saveAnswer stores an answer in the result.
func saveAnswer(id, value string, result *Result) {
	value = strings.TrimSpace(value)
	switch id {
	case QuestionProjectName:
		result.ProjectName = value
	case QuestionAuthorName:
		result.AuthorName = value
	case QuestionAuthorEmail:
		result.AuthorEmail = value
	case QuestionDescription:
		result.Description = value
	case QuestionTailwind:
		result.Tailwind = value == "true"
	}
}
