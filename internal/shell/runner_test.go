package shell

import (
	"context"
	"errors"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func requireProgram(t *testing.T, name string) {
	t.Helper()
	if _, err := exec.LookPath(name); err != nil {
		t.Skipf("%s not available: %v", name, err)
	}
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line     string
		wantName string
		wantArgs []string
		wantErr  error
	}{
		{"npm install", "npm", []string{"install"}, nil},
		{"  yarn   install --frozen-lockfile ", "yarn", []string{"install", "--frozen-lockfile"}, nil},
		{"pnpm", "pnpm", []string{}, nil},
		{"   ", "", nil, ErrEmptyCommand},
	}

	for _, tt := range tests {
		cmd, err := ParseCommand(tt.line)
		if !errors.Is(err, tt.wantErr) {
			t.Fatalf("ParseCommand(%q) error = %v, want %v", tt.line, err, tt.wantErr)
		}
		if err != nil {
			continue
		}
		require.Equal(t, tt.wantName, cmd.Name)
		require.Equal(t, tt.wantArgs, cmd.Args)
	}
}

func TestCommandString(t *testing.T) {
	require.Equal(t, "git init", Command{Name: "git", Args: []string{"init"}}.String())
	require.Equal(t, "git", Command{Name: "git"}.String())
}

func TestExecRunner_Success(t *testing.T) {
	requireProgram(t, "sh")
	dir := t.TempDir()

	res, err := NewExecRunner().Run(context.Background(), Command{
		Name: "sh",
		Args: []string{"-c", "pwd; echo warn >&2; echo $GIT_TERMINAL_PROMPT"},
		Dir:  dir,
	})
	require.NoError(t, err)
	require.Equal(t, 0, res.ExitCode)
	require.Contains(t, res.Stdout, "0\n")
	require.Equal(t, "warn\n", res.Stderr)
}

func TestExecRunner_NonZeroExit(t *testing.T) {
	requireProgram(t, "sh")

	res, err := NewExecRunner().Run(context.Background(), Command{
		Name: "sh",
		Args: []string{"-c", "echo out; echo bad >&2; exit 3"},
	})
	require.ErrorIs(t, err, ErrCommandFailed)

	var failed *CommandFailedError
	require.ErrorAs(t, err, &failed)
	require.Equal(t, 3, failed.ExitCode)
	require.Equal(t, "bad\n", failed.Stderr)
	require.Contains(t, failed.Error(), "exited with code 3")

	require.NotNil(t, res, "result is returned alongside the failure")
	require.Equal(t, 3, res.ExitCode)
	require.Equal(t, "out\n", res.Stdout)
}

func TestExecRunner_MissingExecutable(t *testing.T) {
	res, err := NewExecRunner().Run(context.Background(), Command{Name: "wpkit-definitely-not-installed"})
	require.Nil(t, res)
	require.ErrorIs(t, err, ErrCommandSpawn)

	var spawn *CommandSpawnError
	require.ErrorAs(t, err, &spawn)
	require.Equal(t, "wpkit-definitely-not-installed", spawn.Command)
}

func TestExecRunner_MissingWorkingDirectory(t *testing.T) {
	requireProgram(t, "sh")

	_, err := NewExecRunner().Run(context.Background(), Command{
		Name: "sh",
		Args: []string{"-c", "true"},
		Dir:  "/nonexistent/wpkit/dir",
	})
	require.ErrorIs(t, err, ErrCommandSpawn)
}

func TestExecRunner_Timeout(t *testing.T) {
	requireProgram(t, "sleep")

	start := time.Now()
	_, err := NewExecRunner().Run(context.Background(), Command{
		Name:    "sleep",
		Args:    []string{"5"},
		Timeout: 50 * time.Millisecond,
	})
	require.ErrorIs(t, err, ErrCommandFailed)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Less(t, time.Since(start), 4*time.Second)
}

func TestExecRunner_LookPathOverride(t *testing.T) {
	var looked string
	r := NewExecRunner(WithLookPath(func(name string) (string, error) {
		looked = name
		return "", exec.ErrNotFound
	}))

	_, err := r.Run(context.Background(), Command{Name: "git", Args: []string{"--version"}})
	require.ErrorIs(t, err, exec.ErrNotFound)
	require.Equal(t, "git", looked)
}

func TestRunFunc(t *testing.T) {
	var got Command
	var r Runner = RunFunc(func(_ context.Context, cmd Command) (*CommandResult, error) {
		got = cmd
		return &CommandResult{Stdout: "ok"}, nil
	})

	res, err := r.Run(context.Background(), Command{Name: "npm", Args: []string{"install"}, Dir: "/p"})
	require.NoError(t, err)
	require.Equal(t, "ok", res.Stdout)
	require.Equal(t, "/p", got.Dir)
}
