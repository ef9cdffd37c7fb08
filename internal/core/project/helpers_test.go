package project

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eddo81/wpkit/internal/shell"
	"github.com/eddo81/wpkit/pkg/models"
)

// fakeRunner records every command and answers from a per-program table.
type fakeRunner struct {
	mu     sync.Mutex
	calls  []shell.Command
	errs   map[string]error
	onCall func(cmd shell.Command) error
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{errs: make(map[string]error)}
}

// failOn makes every command whose "name args..." line starts with prefix fail.
func (f *fakeRunner) failOn(prefix string, err error) {
	f.errs[prefix] = err
}

func (f *fakeRunner) Run(_ context.Context, cmd shell.Command) (*shell.CommandResult, error) {
	f.mu.Lock()
	f.calls = append(f.calls, cmd)
	f.mu.Unlock()

	if f.onCall != nil {
		if err := f.onCall(cmd); err != nil {
			return &shell.CommandResult{ExitCode: 1}, err
		}
	}
	line := cmd.String()
	for prefix, err := range f.errs {
		if strings.HasPrefix(line, prefix) {
			return &shell.CommandResult{ExitCode: 1}, err
		}
	}
	return &shell.CommandResult{Stdout: fmt.Sprintf("%s version 1.0.0\n", cmd.Name)}, nil
}

func (f *fakeRunner) lines() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		out = append(out, c.String())
	}
	return out
}

func newTestConfig(t *testing.T, features ...models.FeatureFlag) models.ProjectConfig {
	t.Helper()
	cfg, err := models.NewProjectConfig(models.ProjectInput{
		ProjectName: "Demo Site",
		Description: "A demo",
		Author:      models.Author{Name: "Jane Doe", Email: "jane@example.com"},
		Features:    features,
	})
	require.NoError(t, err)
	return cfg
}
