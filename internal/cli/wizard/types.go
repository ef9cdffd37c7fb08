// Package wizard provides the interactive prompts that collect the
// project details before scaffolding.
package wizard

import (
	"errors"
)

// Result holds the answers collected by the wizard.
type Result struct {
	ProjectName string // required, at least two characters
	AuthorName  string
	AuthorEmail string // empty or a valid address
	Description string
	Tailwind    bool
}

// QuestionType represents the type of wizard question.
type QuestionType int

const (
	// QuestionTypeInput is a text input question.
	QuestionTypeInput QuestionType = iota
	// QuestionTypeSelect is a single-choice selection question.
	QuestionTypeSelect
)

// Question IDs.
const (
	QuestionProjectName = "project_name"
	QuestionAuthorName  = "author_name"
	QuestionAuthorEmail = "author_email"
	QuestionDescription = "description"
	QuestionTailwind    = "tailwind"
)

// Question defines a single wizard question.
type Question struct {
	ID       string             // Unique identifier
	Type     QuestionType       // Input or Select
	Title    string             // Prompt shown to the user
	Options  []Option           // Options for select questions
	Default  string             // Initial value
	Optional bool               // Skipped with --skip
	Validate func(string) error // Nil accepts anything
}

// Option represents a selectable option.
type Option struct {
	Label string // Display label
	Value string // Actual value stored
}

// Error definitions for the wizard package.
var (
	// ErrCancelled is returned when the user cancels the wizard.
	ErrCancelled = errors.New("wizard cancelled by user")
	// ErrNoQuestions is returned when no questions are provided.
	ErrNoQuestions = errors.New("no questions provided")
)
