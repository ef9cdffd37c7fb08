package wizard

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/eddo81/wpkit/internal/ui"
)

// Prompter asks a single question or a yes/no confirmation.
type Prompter interface {
	// Ask shows q with *value as the initial answer and stores the
	// accepted answer in *value.
	Ask(q *Question, value *string) error
	// Confirm returns the user's choice.
	Confirm(title string) (bool, error)
}

// Options configures Run.
type Options struct {
	// Prompter defaults to the huh-based terminal prompter.
	Prompter Prompter
	// Summary is called with the answers before the confirmation prompt.
	Summary func(*Result)
	// Restart is called when the user declines the summary, before the
	// questions are asked again.
	Restart func()
}

const confirmTitle = "Confirm settings to continue..."

// Run asks every question in order, shows the summary and repeats until
// the user confirms. Cancelling any prompt returns ErrCancelled.
func Run(ctx context.Context, questions []Question, opts Options) (*Result, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	p := opts.Prompter
	if p == nil {
		p = NewHuhPrompter(false)
	}

	// Answers carry over into the next round as defaults.
	answers := make(map[string]string, len(questions))
	for _, q := range questions {
		answers[q.ID] = q.Default
	}

	for {
		result := &Result{}
		for i := range questions {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			q := &questions[i]
			value := answers[q.ID]
			if err := p.Ask(q, &value); err != nil {
				return nil, mapPromptError(err)
			}
			answers[q.ID] = value
			saveAnswer(q.ID, value, result)
		}

		if opts.Summary != nil {
			opts.Summary(result)
		}
		ok, err := p.Confirm(confirmTitle)
		if err != nil {
			return nil, mapPromptError(err)
		}
		if ok {
			return result, nil
		}
		if opts.Restart != nil {
			opts.Restart()
		}
	}
}

func mapPromptError(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrCancelled
	}
	return fmt.Errorf("wizard error: %w", err)
}

// HuhPrompter runs each question as its own huh.Form.
type HuhPrompter struct {
	theme *huh.Theme
}

// NewHuhPrompter creates a HuhPrompter. noColor selects the plain huh theme.
func NewHuhPrompter(noColor bool) *HuhPrompter {
	theme := newWizardTheme()
	if noColor {
		theme = huh.ThemeBase()
	}
	return &HuhPrompter{theme: theme}
}

// Ask implements Prompter.
func (h *HuhPrompter) Ask(q *Question, value *string) error {
	var field huh.Field
	switch q.Type {
	case QuestionTypeSelect:
		field = buildSelectField(q, value)
	default:
		field = buildInputField(q, value)
	}
	return huh.NewForm(huh.NewGroup(field)).
		WithTheme(h.theme).
		WithAccessible(false).
		Run()
}

// Confirm implements Prompter.
func (h *HuhPrompter) Confirm(title string) (bool, error) {
	confirmed := true
	err := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Affirmative("confirm").
			Negative("cancel").
			Value(&confirmed),
	)).WithTheme(h.theme).Run()
	return confirmed, err
}

// buildSelectField creates a huh.Select field for a select-type question.
func buildSelectField(q *Question, value *string) *huh.Select[string] {
	opts := make([]huh.Option[string], len(q.Options))
	for i, opt := range q.Options {
		opts[i] = huh.NewOption(opt.Label, opt.Value)
	}
	return huh.NewSelect[string]().
		Title(q.Title).
		Options(opts...).
		Value(value)
}

// buildInputField creates a huh.Input field for an input-type question.
func buildInputField(q *Question, value *string) *huh.Input {
	inp := huh.NewInput().
		Title(q.Title).
		Value(value)
	if q.Validate != nil {
		inp = inp.Validate(q.Validate)
	}
	return inp
}

// newWizardTheme creates a huh.Theme with the wpkit palette.
func newWizardTheme() *huh.Theme {
	t := huh.ThemeBase()

	primary := lipgloss.AdaptiveColor{Light: "#1C78C0", Dark: ui.ColorPrimary}
	secondary := lipgloss.AdaptiveColor{Light: "#2B3A42", Dark: ui.ColorSecondary}
	green := lipgloss.AdaptiveColor{Light: "#059669", Dark: ui.ColorSuccess}
	red := lipgloss.AdaptiveColor{Light: "#DC2626", Dark: ui.ColorError}
	text := lipgloss.AdaptiveColor{Light: "#111827", Dark: ui.ColorText}
	muted := lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: ui.ColorMuted}

	t.Focused.Title = t.Focused.Title.Foreground(primary).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(muted)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(red)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(red)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(primary).SetString("▸ ")
	t.Focused.Option = t.Focused.Option.Foreground(text)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(green)
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(primary)
	t.Focused.TextInput.Placeholder = t.Focused.TextInput.Placeholder.Foreground(muted)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(secondary)
	t.Focused.FocusedButton = t.Focused.FocusedButton.
		Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}).
		Background(primary)
	t.Focused.BlurredButton = t.Focused.BlurredButton.
		Foreground(text).
		Background(lipgloss.AdaptiveColor{Light: "#E5E7EB", Dark: "#374151"})

	t.Blurred = t.Focused
	t.Blurred.Base = t.Focused.Base.BorderStyle(lipgloss.HiddenBorder())

	return t
}
