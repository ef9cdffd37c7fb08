package ui

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/eddo81/wpkit/pkg/models"
)

// StepReporter shows pipeline progress as one "N. step" line per step.
// Interactively each line carries a spinner while the step runs and a
// mark once it finishes; headless output prints the line when the step
// starts and a failure line if it fails.
type StepReporter struct {
	theme    *Theme
	headless *HeadlessManager
	writer   io.Writer

	mu     sync.Mutex
	active *interactiveSpinner
}

// NewStepReporter creates a StepReporter writing to w.
func NewStepReporter(theme *Theme, hm *HeadlessManager, w io.Writer) *StepReporter {
	return &StepReporter{theme: theme, headless: hm, writer: w}
}

// StepStarted begins the line for step n.
func (r *StepReporter) StepStarted(n int, name string) {
	label := stepLabel(n, name)

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.headless.IsHeadless() || r.theme.NoColor {
		_, _ = fmt.Fprintln(r.writer, label)
		return
	}
	r.active = newInteractiveSpinner(r.theme, label, r.writer)
}

// StepFinished completes the line for step n.
func (r *StepReporter) StepFinished(n int, result models.StepResult) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.active != nil {
		r.active.Stop(result.Succeeded)
		r.active = nil
		return
	}
	if !result.Succeeded {
		_, _ = fmt.Fprintf(r.writer, "%s %s failed\n", r.theme.Mark(false), stepLabel(n, result.Name))
	}
}

func stepLabel(n int, name string) string {
	return models.StepResult{Name: name}.Label(n - 1)
}

// spinnerStopMsg is sent to stop the spinner with the step outcome.
type spinnerStopMsg struct {
	ok bool
}

// spinnerModel is the bubbletea Model for one step line.
type spinnerModel struct {
	spinner spinner.Model
	theme   *Theme
	title   string
	done    bool
	ok      bool
}

func newSpinnerModel(theme *Theme, title string) spinnerModel {
	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	if !theme.NoColor {
		s.Style = lipgloss.NewStyle().Foreground(theme.Colors.Primary)
	}
	return spinnerModel{spinner: s, theme: theme, title: title}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerStopMsg:
		m.done = true
		m.ok = msg.ok
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View keeps the final line on screen once the step is done.
func (m spinnerModel) View() string {
	if m.done {
		return m.theme.Mark(m.ok) + " " + m.title + "\n"
	}
	return m.spinner.View() + " " + m.title + "\n"
}

// interactiveSpinner runs a spinnerModel in its own tea.Program. It only
// displays; it never reads input.
type interactiveSpinner struct {
	program *tea.Program
	done    chan struct{}
	once    sync.Once
}

func newInteractiveSpinner(theme *Theme, title string, w io.Writer) *interactiveSpinner {
	p := tea.NewProgram(newSpinnerModel(theme, title), tea.WithOutput(w), tea.WithInput(nil))
	return startSpinner(p)
}

func startSpinner(p *tea.Program) *interactiveSpinner {
	s := &interactiveSpinner{program: p, done: make(chan struct{})}
	go func() {
		defer close(s.done)
		_, _ = p.Run()
	}()
	return s
}

// Stop ends the spinner with the step outcome and waits for the final
// frame to be written. Extra calls are ignored.
func (s *interactiveSpinner) Stop(ok bool) {
	s.once.Do(func() {
		s.program.Send(spinnerStopMsg{ok: ok})
		<-s.done
	})
}
