package project

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/eddo81/wpkit/internal/filesystem"
	"github.com/eddo81/wpkit/internal/shell"
	"github.com/eddo81/wpkit/internal/template"
	"github.com/eddo81/wpkit/pkg/models"
)

const testRoot = "/workspace/demo-site"

func testTemplates() (fstest.MapFS, template.Manifest) {
	fsys := fstest.MapFS{
		"package.json.tmpl": &fstest.MapFile{Data: []byte(`{"name": "{{ .FolderName }}"}` + "\n")},
		"gitignore":         &fstest.MapFile{Data: []byte("node_modules\n")},
	}
	m := template.Manifest{Entries: []template.Entry{
		{Source: "package.json.tmpl", Dest: "package.json", Kind: template.KindRender},
		{Source: "gitignore", Dest: ".gitignore", Kind: template.KindCopy},
	}}
	return fsys, m
}

// recordingReporter keeps every callback as a line.
type recordingReporter struct {
	events []string
}

func (r *recordingReporter) StepStarted(n int, name string) {
	r.events = append(r.events, fmt.Sprintf("start %d %s", n, name))
}

func (r *recordingReporter) StepFinished(n int, res models.StepResult) {
	r.events = append(r.events, fmt.Sprintf("finish %d %s %t", n, res.Name, res.Succeeded))
}

func newTestOrchestrator(mfs filesystem.FileSystem, runner shell.Runner, opts ...Option) *Orchestrator {
	fsys, m := testTemplates()
	return NewOrchestrator(mfs, runner, append([]Option{WithTemplates(fsys, m)}, opts...)...)
}

func stepNames(results []models.StepResult) []string {
	names := make([]string, 0, len(results))
	for _, r := range results {
		names = append(names, r.Name)
	}
	return names
}

func TestRun_Minimal(t *testing.T) {
	mfs := filesystem.NewMockFileSystem()
	runner := newFakeRunner()
	rep := &recordingReporter{}

	report, err := newTestOrchestrator(mfs, runner, WithReporter(rep)).
		Run(context.Background(), newTestConfig(t), testRoot, RunOptions{})
	require.NoError(t, err)

	require.Equal(t, StateDone, report.State)
	require.Equal(t, 0, report.ExitCode())
	require.Equal(t, []State{StateIdle, StatePreflight, StateMaterializing, StateDone}, report.Trace)
	require.Equal(t, []string{StepPreflight, StepGenerate}, stepNames(report.Steps))
	require.Equal(t, []string{"package.json", ".gitignore"}, stepNames(report.Files))
	require.Empty(t, runner.lines(), "no tools are needed without install or git")

	pkg, err := mfs.ReadFile(testRoot + "/package.json")
	require.NoError(t, err)
	require.Equal(t, `{"name": "demo-site"}`+"\n", string(pkg))

	require.Equal(t, []string{
		"start 1 " + StepPreflight,
		"finish 1 " + StepPreflight + " true",
		"start 2 " + StepGenerate,
		"finish 2 " + StepGenerate + " true",
	}, rep.events)
}

func TestRun_InstallAndGit(t *testing.T) {
	mfs := filesystem.NewMockFileSystem()
	runner := newFakeRunner()

	report, err := newTestOrchestrator(mfs, runner).
		Run(context.Background(), newTestConfig(t), testRoot, RunOptions{Install: true, InitGit: true})
	require.NoError(t, err)

	require.Equal(t, []State{
		StateIdle, StatePreflight, StateMaterializing, StateInstalling, StateVersionControlInit, StateDone,
	}, report.Trace)
	require.Equal(t, []string{StepPreflight, StepGenerate, StepInstall, StepGitInit}, stepNames(report.Steps))
	require.Equal(t, []string{"git --version", "npm --version", "npm install", "git init"}, runner.lines())

	for _, c := range runner.calls[2:] {
		require.Equal(t, testRoot, c.Dir, c.String())
	}
}

func TestRun_CustomInstallCommand(t *testing.T) {
	runner := newFakeRunner()

	_, err := newTestOrchestrator(filesystem.NewMockFileSystem(), runner).
		Run(context.Background(), newTestConfig(t), testRoot, RunOptions{
			Install:        true,
			InstallCommand: shell.Command{Name: "pnpm", Args: []string{"install", "--frozen-lockfile"}},
		})
	require.NoError(t, err)
	require.Equal(t, []string{"pnpm --version", "pnpm install --frozen-lockfile"}, runner.lines())
}

func TestRun_DestinationExistsNeverMaterializes(t *testing.T) {
	mfs := filesystem.NewMockFileSystem()
	mfs.AddDir(testRoot)
	runner := newFakeRunner()

	report, err := newTestOrchestrator(mfs, runner).
		Run(context.Background(), newTestConfig(t), testRoot, RunOptions{Install: true, InitGit: true})
	require.ErrorIs(t, err, ErrDestinationExists)
	require.ErrorIs(t, err, ErrStepFailed)

	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	require.Equal(t, StepPreflight, stepErr.Step)

	require.Equal(t, StateFailed, report.State)
	require.Equal(t, 1, report.ExitCode())
	require.False(t, report.Reached(StateMaterializing))
	require.Empty(t, report.Files)
	require.Empty(t, mfs.Mutations(), "nothing may be written when the destination exists")
	require.Empty(t, runner.lines())
}

func TestRun_InstallFailureStopsBeforeGitInit(t *testing.T) {
	mfs := filesystem.NewMockFileSystem()
	runner := newFakeRunner()
	runner.failOn("npm install", &shell.CommandFailedError{Command: "npm install", ExitCode: 1, Stderr: "ERESOLVE"})
	rep := &recordingReporter{}

	report, err := newTestOrchestrator(mfs, runner, WithReporter(rep)).
		Run(context.Background(), newTestConfig(t), testRoot, RunOptions{Install: true, InitGit: true})
	require.ErrorIs(t, err, shell.ErrCommandFailed)
	require.Contains(t, err.Error(), "ERESOLVE")

	require.Equal(t, StateFailed, report.State)
	require.NotEqual(t, 0, report.ExitCode())
	require.False(t, report.Reached(StateVersionControlInit))
	require.NotContains(t, runner.lines(), "git init")

	last := report.Steps[len(report.Steps)-1]
	require.Equal(t, StepInstall, last.Name)
	require.False(t, last.Succeeded)
	require.Equal(t, "finish 3 "+StepInstall+" false", rep.events[len(rep.events)-1])

	// Files already written stay in place.
	require.True(t, mfs.Exists(testRoot+"/package.json"))
}

func TestRun_MaterializeFailureLeavesPartialOutput(t *testing.T) {
	mfs := filesystem.NewMockFileSystem()
	mfs.FailOn("write", testRoot+"/.gitignore", errors.New("disk full"))
	runner := newFakeRunner()

	report, err := newTestOrchestrator(mfs, runner).
		Run(context.Background(), newTestConfig(t), testRoot, RunOptions{InitGit: true})
	require.ErrorIs(t, err, template.ErrTemplateWrite)

	require.Equal(t, StateFailed, report.State)
	require.Len(t, report.Files, 2)
	require.True(t, report.Files[0].Succeeded)
	require.False(t, report.Files[1].Succeeded)
	require.True(t, mfs.Exists(testRoot+"/package.json"))
	require.NotContains(t, runner.lines(), "git init")
}

func TestRun_SkipPreflight(t *testing.T) {
	runner := newFakeRunner()

	report, err := newTestOrchestrator(filesystem.NewMockFileSystem(), runner).
		Run(context.Background(), newTestConfig(t), testRoot, RunOptions{SkipPreflight: true, InitGit: true})
	require.NoError(t, err)
	require.Equal(t, []string{StepSkipPreflight, StepGenerate, StepGitInit}, stepNames(report.Steps))
	require.Equal(t, []string{"git init"}, runner.lines())
}

func TestRun_SkipPreflightStillRefusesExistingDestination(t *testing.T) {
	mfs := filesystem.NewMockFileSystem()
	mfs.AddFile(testRoot+"/notes.txt", []byte("keep me"))
	runner := newFakeRunner()

	report, err := newTestOrchestrator(mfs, runner).
		Run(context.Background(), newTestConfig(t), testRoot, RunOptions{SkipPreflight: true, InitGit: true})
	require.ErrorIs(t, err, ErrDestinationExists)

	var existsErr *DestinationExistsError
	require.ErrorAs(t, err, &existsErr)
	require.Equal(t, testRoot, existsErr.Path)

	require.Equal(t, StateFailed, report.State)
	require.False(t, report.Reached(StateMaterializing))
	require.Equal(t, []string{StepSkipPreflight}, stepNames(report.Steps))
	require.Empty(t, mfs.Mutations())
	require.Empty(t, runner.lines(), "skipping the checklist drops the tool probes")
}

func TestRun_EmbeddedTemplates(t *testing.T) {
	mfs := filesystem.NewMockFileSystem()

	report, err := NewOrchestrator(mfs, newFakeRunner()).
		Run(context.Background(), newTestConfig(t, models.FeatureTailwind), testRoot, RunOptions{})
	require.NoError(t, err)
	require.Equal(t, StateDone, report.State)
	require.True(t, mfs.Exists(testRoot+"/package.json"))
	require.True(t, mfs.Exists(testRoot+"/src/scripts/main.js"))
	require.True(t, mfs.Exists(testRoot+"/src/styles/tailwind.css"))
}

func TestRun_CloneVariant(t *testing.T) {
	root := filepath.Join(t.TempDir(), "demo-site")
	runner := newFakeRunner()
	runner.onCall = cloneInto(t, map[string]string{
		"src/templates/manifest.yaml": "entries:\n  - source: index.js.tmpl\n    dest: src/index.js\n    kind: render\n",
		"src/templates/index.js.tmpl": "// {{ .ProjectName }}\n",
	})
	clone := NewCloneSource(filesystem.NewOSFileSystem(), runner, fixedID("ok000000"))

	report, err := NewOrchestrator(filesystem.NewOSFileSystem(), runner, WithCloneSource(clone)).
		Run(context.Background(), newTestConfig(t), root, RunOptions{CloneURL: "https://example.com/boilerplate.git"})
	require.NoError(t, err)

	require.Equal(t, []string{StepPreflight, StepClone, StepCopyClone, StepCleanup}, stepNames(report.Steps))
	require.Equal(t, []State{StateIdle, StatePreflight, StateCloning, StateMaterializing, StateCleanup, StateDone}, report.Trace)
	require.Equal(t, "git --version", runner.lines()[0])

	data, err := os.ReadFile(filepath.Join(root, "src", "index.js"))
	require.NoError(t, err)
	require.Equal(t, "// Demo Site\n", string(data))

	_, err = os.Stat(filepath.Join(root, "temp-ok000000"))
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestRun_CloneCopyFailureStillRemovesTemp(t *testing.T) {
	root := filepath.Join(t.TempDir(), "demo-site")
	runner := newFakeRunner()
	runner.onCall = cloneInto(t, map[string]string{
		"manifest.yaml": "entries:\n  - source: missing.tmpl\n    dest: missing.js\n    kind: render\n",
	})
	clone := NewCloneSource(filesystem.NewOSFileSystem(), runner, fixedID("bad00000"))

	report, err := NewOrchestrator(filesystem.NewOSFileSystem(), runner, WithCloneSource(clone)).
		Run(context.Background(), newTestConfig(t), root, RunOptions{CloneURL: "https://example.com/boilerplate.git"})
	require.ErrorIs(t, err, template.ErrTemplateRead)

	require.Equal(t, StateFailed, report.State)
	require.False(t, report.Reached(StateCleanup))
	_, statErr := os.Stat(filepath.Join(root, "temp-bad00000"))
	require.ErrorIs(t, statErr, fs.ErrNotExist, "temp clone must be removed after a failed copy")
}

func TestRun_CloneFailureRemovesTemp(t *testing.T) {
	mfs := filesystem.NewMockFileSystem()
	runner := newFakeRunner()
	runner.failOn("git clone", errors.New("network unreachable"))
	clone := NewCloneSource(mfs, runner, fixedID("net00000"))

	report, err := NewOrchestrator(mfs, runner, WithCloneSource(clone)).
		Run(context.Background(), newTestConfig(t), testRoot, RunOptions{CloneURL: "https://example.com/boilerplate.git"})
	require.ErrorIs(t, err, ErrCloneFailed)
	require.Equal(t, StateFailed, report.State)
	require.Contains(t, mfs.Mutations(), "remove "+testRoot+"/temp-net00000")
}

func TestRun_CleanupRunsWhenStepPanics(t *testing.T) {
	mfs := filesystem.NewMockFileSystem()
	runner := newFakeRunner()
	clone := NewCloneSource(mfs, runner, fixedID("pan00000"))
	o := NewOrchestrator(mfs, runner,
		WithCloneSource(clone),
		WithMaterializerFactory(func(fs.FS) template.Materializer { panic("materializer exploded") }),
	)

	require.PanicsWithValue(t, "materializer exploded", func() {
		_, _ = o.Run(context.Background(), newTestConfig(t), testRoot, RunOptions{CloneURL: "https://example.com/boilerplate.git"})
	})
	require.Equal(t, []string{"remove " + testRoot + "/temp-pan00000"}, mfs.Mutations())
}

func TestRun_CleanupErrorIsJoined(t *testing.T) {
	mfs := filesystem.NewMockFileSystem()
	mfs.FailOn("remove", testRoot+"/temp-rm000000", errors.New("device busy"))
	runner := newFakeRunner()
	runner.failOn("git clone", errors.New("network unreachable"))
	clone := NewCloneSource(mfs, runner, fixedID("rm000000"))

	_, err := NewOrchestrator(mfs, runner, WithCloneSource(clone)).
		Run(context.Background(), newTestConfig(t), testRoot, RunOptions{CloneURL: "https://example.com/boilerplate.git"})
	require.ErrorIs(t, err, ErrCloneFailed)
	require.ErrorContains(t, err, "remove temp clone")
	require.ErrorContains(t, err, "device busy")
}

func TestPlan(t *testing.T) {
	o := NewOrchestrator(filesystem.NewMockFileSystem(), newFakeRunner())

	names := func(steps []Step) []string {
		out := make([]string, 0, len(steps))
		for _, s := range steps {
			out = append(out, s.Name)
		}
		return out
	}

	require.Equal(t, []string{StepPreflight, StepGenerate}, names(o.Plan(RunOptions{})))
	require.Equal(t,
		[]string{StepSkipPreflight, StepGenerate, StepInstall, StepGitInit},
		names(o.Plan(RunOptions{SkipPreflight: true, Install: true, InitGit: true})))
	require.Equal(t,
		[]string{StepPreflight, StepClone, StepCopyClone, StepCleanup, StepInstall},
		names(o.Plan(RunOptions{CloneURL: "https://example.com/x.git", Install: true})))
}

func TestRequiredTools(t *testing.T) {
	require.Nil(t, requiredTools(RunOptions{}))
	require.Equal(t, []string{"git"}, requiredTools(RunOptions{InitGit: true}))
	require.Equal(t, []string{"git"}, requiredTools(RunOptions{CloneURL: "x", InitGit: true}))
	require.Equal(t, []string{"git", "npm"}, requiredTools(RunOptions{InitGit: true, Install: true}))
	require.Equal(t, []string{"git"}, requiredTools(RunOptions{Install: true, InstallCommand: shell.Command{Name: "git"}, InitGit: true}))
}
