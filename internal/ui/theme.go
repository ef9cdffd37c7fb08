// Package ui renders wpkit's terminal output: styled cards, the per-step
// spinner and the markdown outro. Every component degrades to plain text
// when color is disabled or no terminal is attached.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Brand palette (dark variants). Light variants are set in NewTheme.
const (
	ColorPrimary   = "#8ED6FB"
	ColorSecondary = "#1C78C0"
	ColorSuccess   = "#10B981"
	ColorError     = "#EF4444"
	ColorWarning   = "#F59E0B"
	ColorText      = "#E5E7EB"
	ColorMuted     = "#9CA3AF"
	ColorBorder    = "#4B5563"
)

// Colors holds the adaptive colors of a Theme.
type Colors struct {
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Success   lipgloss.AdaptiveColor
	Error     lipgloss.AdaptiveColor
	Warning   lipgloss.AdaptiveColor
	Text      lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor
	Border    lipgloss.AdaptiveColor
}

// Theme is the set of styles shared by all output.
type Theme struct {
	NoColor bool
	Colors  Colors

	Title   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Muted   lipgloss.Style
	Key     lipgloss.Style
	Card    lipgloss.Style
}

// NewTheme builds the wpkit theme. With noColor every style renders its
// input unchanged apart from the card border.
func NewTheme(noColor bool) *Theme {
	t := &Theme{
		NoColor: noColor,
		Colors: Colors{
			Primary:   lipgloss.AdaptiveColor{Light: "#1C78C0", Dark: ColorPrimary},
			Secondary: lipgloss.AdaptiveColor{Light: "#2B3A42", Dark: ColorSecondary},
			Success:   lipgloss.AdaptiveColor{Light: "#059669", Dark: ColorSuccess},
			Error:     lipgloss.AdaptiveColor{Light: "#DC2626", Dark: ColorError},
			Warning:   lipgloss.AdaptiveColor{Light: "#D97706", Dark: ColorWarning},
			Text:      lipgloss.AdaptiveColor{Light: "#111827", Dark: ColorText},
			Muted:     lipgloss.AdaptiveColor{Light: "#6B7280", Dark: ColorMuted},
			Border:    lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: ColorBorder},
		},
	}

	card := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 2)
	if noColor {
		t.Title = lipgloss.NewStyle()
		t.Success = lipgloss.NewStyle()
		t.Error = lipgloss.NewStyle()
		t.Warning = lipgloss.NewStyle()
		t.Muted = lipgloss.NewStyle()
		t.Key = lipgloss.NewStyle()
		t.Card = card
		return t
	}

	t.Title = lipgloss.NewStyle().Foreground(t.Colors.Primary).Bold(true)
	t.Success = lipgloss.NewStyle().Foreground(t.Colors.Success)
	t.Error = lipgloss.NewStyle().Foreground(t.Colors.Error).Bold(true)
	t.Warning = lipgloss.NewStyle().Foreground(t.Colors.Warning)
	t.Muted = lipgloss.NewStyle().Foreground(t.Colors.Muted)
	t.Key = lipgloss.NewStyle().Foreground(t.Colors.Secondary).Bold(true)
	t.Card = card.BorderForeground(t.Colors.Border)
	return t
}

// Field is one key/value line of a card.
type Field struct {
	Key   string
	Value string
}

// RenderCard renders a titled card. Lines are joined as given.
func (t *Theme) RenderCard(title string, lines ...string) string {
	body := t.Title.Render(title)
	if len(lines) > 0 {
		body += "\n\n" + strings.Join(lines, "\n")
	}
	return t.Card.Render(body)
}

// RenderFields renders key/value pairs as aligned "key: value" lines.
func (t *Theme) RenderFields(fields []Field) []string {
	width := 0
	for _, f := range fields {
		width = max(width, len(f.Key))
	}
	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		key := f.Key + ":" + strings.Repeat(" ", width-len(f.Key))
		lines = append(lines, t.Key.Render(key)+" "+f.Value)
	}
	return lines
}

// RenderError renders the "Error - <detail>" card.
func (t *Theme) RenderError(detail string) string {
	return t.Card.Render(t.Error.Render("Error") + " - " + detail)
}

// Mark returns the success or failure glyph.
func (t *Theme) Mark(ok bool) string {
	if ok {
		return t.Success.Render("✓")
	}
	return t.Error.Render("✗")
}
