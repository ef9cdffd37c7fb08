package project

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"slices"
	"time"

	"github.com/eddo81/wpkit/internal/filesystem"
	"github.com/eddo81/wpkit/internal/shell"
	"github.com/eddo81/wpkit/internal/template"
	"github.com/eddo81/wpkit/pkg/models"
)

// State is a phase of a scaffolding run.
type State string

const (
	StateIdle               State = "idle"
	StatePreflight          State = "preflight"
	StateCloning            State = "cloning"
	StateMaterializing      State = "materializing"
	StateCleanup            State = "cleanup"
	StateInstalling         State = "installing"
	StateVersionControlInit State = "version_control_init"
	StateDone               State = "done"
	StateFailed             State = "failed"
)

// Step names as shown to the user.
const (
	StepSkipPreflight = "Skipping Pre-flight checklist"
	StepPreflight     = "Pre-flight checklist"
	StepClone         = "Cloning the github repo"
	StepGenerate      = "Generating files"
	StepCopyClone     = "Copying files from temp folder"
	StepCleanup       = "Cleaning project folder"
	StepInstall       = "Installing NPM dependencies"
	StepGitInit       = "Initializing git repo"
)

// DefaultInstallCommand installs the generated project's dependencies.
var DefaultInstallCommand = shell.Command{Name: "npm", Args: []string{"install"}}

// RunOptions selects the optional steps of a run.
type RunOptions struct {
	Install        bool
	InitGit        bool
	SkipPreflight  bool
	CloneURL       string        // clone variant when non-empty
	InstallCommand shell.Command // defaults to DefaultInstallCommand
	Timeout        time.Duration // per external command; zero means none
}

// Step is one named unit of work in a run.
type Step struct {
	Name  string
	State State
	Run   func(ctx context.Context) error
}

// Report summarizes a finished run.
type Report struct {
	Root  string
	State State
	Steps []models.StepResult // one per executed step, in order
	Files []models.StepResult // one per file the materializer attempted
	Trace []State             // every state entered, in order
}

// Reached reports whether the run entered s.
func (r *Report) Reached(s State) bool {
	return slices.Contains(r.Trace, s)
}

// ExitCode maps the final state to a process exit status.
func (r *Report) ExitCode() int {
	if r.State == StateDone {
		return 0
	}
	return 1
}

func (r *Report) enter(s State) {
	r.State = s
	r.Trace = append(r.Trace, s)
}

// Reporter receives progress for display. n is the step's position
// starting at 1.
type Reporter interface {
	StepStarted(n int, name string)
	StepFinished(n int, result models.StepResult)
}

// NopReporter discards progress.
type NopReporter struct{}

func (NopReporter) StepStarted(int, string)             {}
func (NopReporter) StepFinished(int, models.StepResult) {}

// Orchestrator sequences the steps of a scaffolding run. Steps run one at
// a time and the first failure ends the run. Nothing already written to
// the project folder is removed; the temporary clone always is.
type Orchestrator struct {
	fs              filesystem.FileSystem
	runner          shell.Runner
	preflight       *PreflightChecker
	clone           *CloneSource
	templates       fs.FS
	manifest        *template.Manifest
	newMaterializer func(fs.FS) template.Materializer
	reporter        Reporter
	logger          *slog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithReporter sets the progress reporter.
func WithReporter(r Reporter) Option {
	return func(o *Orchestrator) {
		if r != nil {
			o.reporter = r
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Orchestrator) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithTemplates replaces the embedded template tree and default manifest.
func WithTemplates(fsys fs.FS, m template.Manifest) Option {
	return func(o *Orchestrator) {
		o.templates = fsys
		o.manifest = &m
	}
}

// WithMaterializerFactory overrides how a Materializer is built for a
// template tree (used for testing).
func WithMaterializerFactory(fn func(fs.FS) template.Materializer) Option {
	return func(o *Orchestrator) { o.newMaterializer = fn }
}

// WithCloneSource overrides the clone variant's fetcher.
func WithCloneSource(c *CloneSource) Option {
	return func(o *Orchestrator) { o.clone = c }
}

// NewOrchestrator creates an Orchestrator writing through fsys and running
// external commands through runner.
func NewOrchestrator(fsys filesystem.FileSystem, runner shell.Runner, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		fs:       fsys,
		runner:   runner,
		reporter: NopReporter{},
		logger:   slog.Default().With("module", "project.orchestrator"),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.preflight == nil {
		o.preflight = NewPreflightChecker(fsys, runner, o.logger)
	}
	if o.clone == nil {
		o.clone = NewCloneSource(fsys, runner, WithCloneLogger(o.logger))
	}
	if o.newMaterializer == nil {
		o.newMaterializer = func(src fs.FS) template.Materializer {
			return template.NewMaterializer(src, fsys, template.WithLogger(o.logger))
		}
	}
	return o
}

// run carries the mutable state of one Run call.
type run struct {
	cfg     models.ProjectConfig
	root    string
	opts    RunOptions
	src     fs.FS
	cleanup func() error
	report  *Report
}

// Run scaffolds cfg into root. The returned report is always non-nil;
// on failure the error is a *StepError naming the failed step. A temp
// clone is removed before Run returns, even if a step panics.
func (o *Orchestrator) Run(ctx context.Context, cfg models.ProjectConfig, root string, opts RunOptions) (report *Report, err error) {
	root = filepath.Clean(root)
	if opts.InstallCommand.Name == "" {
		opts.InstallCommand = DefaultInstallCommand
	}

	r := &run{
		cfg:    cfg,
		root:   root,
		opts:   opts,
		report: &Report{Root: root, State: StateIdle, Trace: []State{StateIdle}},
	}

	o.logger.Info("scaffolding project", "root", root, "clone", opts.CloneURL != "", "install", opts.Install, "git", opts.InitGit)

	defer func() {
		if cleanupErr := r.runCleanup(); cleanupErr != nil {
			err = errors.Join(err, fmt.Errorf("remove temp clone: %w", cleanupErr))
		}
	}()

	for i, step := range o.steps(r) {
		n := i + 1
		r.report.enter(step.State)
		o.reporter.StepStarted(n, step.Name)

		stepErr := step.Run(ctx)
		result := models.StepResult{Name: step.Name, Succeeded: stepErr == nil, Err: stepErr}
		r.report.Steps = append(r.report.Steps, result)
		o.reporter.StepFinished(n, result)

		if stepErr != nil {
			r.report.enter(StateFailed)
			o.logger.Warn("step failed", "step", step.Name, "error", stepErr)
			return r.report, &StepError{Step: step.Name, Err: stepErr}
		}
	}

	r.report.enter(StateDone)
	return r.report, nil
}

// Plan returns the steps Run would execute for opts, without running them.
func (o *Orchestrator) Plan(opts RunOptions) []Step {
	return o.steps(&run{opts: opts, report: &Report{}})
}

func (o *Orchestrator) steps(r *run) []Step {
	var steps []Step

	if r.opts.SkipPreflight {
		// Skipping drops the tool probes only; an existing destination
		// still stops the run.
		steps = append(steps, Step{Name: StepSkipPreflight, State: StatePreflight, Run: func(ctx context.Context) error {
			return o.preflight.Check(ctx, r.root, nil)
		}})
	} else {
		steps = append(steps, Step{Name: StepPreflight, State: StatePreflight, Run: func(ctx context.Context) error {
			return o.preflight.Check(ctx, r.root, requiredTools(r.opts))
		}})
	}

	if r.opts.CloneURL != "" {
		steps = append(steps,
			Step{Name: StepClone, State: StateCloning, Run: func(ctx context.Context) error {
				src, cleanup, err := o.clone.Fetch(ctx, r.opts.CloneURL, r.root)
				r.cleanup = cleanup
				r.src = src
				return err
			}},
			Step{Name: StepCopyClone, State: StateMaterializing, Run: func(ctx context.Context) error {
				m, err := template.LoadManifest(r.src)
				if err != nil {
					return err
				}
				return o.materialize(ctx, r, r.src, m)
			}},
			Step{Name: StepCleanup, State: StateCleanup, Run: func(context.Context) error {
				return r.runCleanup()
			}},
		)
	} else {
		steps = append(steps, Step{Name: StepGenerate, State: StateMaterializing, Run: func(ctx context.Context) error {
			src, m, err := o.embedded()
			if err != nil {
				return err
			}
			return o.materialize(ctx, r, src, m)
		}})
	}

	if r.opts.Install {
		steps = append(steps, Step{Name: StepInstall, State: StateInstalling, Run: func(ctx context.Context) error {
			cmd := r.opts.InstallCommand
			cmd.Dir = r.root
			cmd.Timeout = r.opts.Timeout
			_, err := o.runner.Run(ctx, cmd)
			return err
		}})
	}

	if r.opts.InitGit {
		steps = append(steps, Step{Name: StepGitInit, State: StateVersionControlInit, Run: func(ctx context.Context) error {
			_, err := o.runner.Run(ctx, shell.Command{Name: "git", Args: []string{"init"}, Dir: r.root, Timeout: r.opts.Timeout})
			return err
		}})
	}

	return steps
}

func (o *Orchestrator) embedded() (fs.FS, template.Manifest, error) {
	if o.templates != nil && o.manifest != nil {
		return o.templates, *o.manifest, nil
	}
	src, err := template.EmbeddedTemplates()
	if err != nil {
		return nil, template.Manifest{}, err
	}
	return src, template.DefaultManifest(), nil
}

func (o *Orchestrator) materialize(ctx context.Context, r *run, src fs.FS, m template.Manifest) error {
	files, err := o.newMaterializer(src).Materialize(ctx, m, r.cfg, r.root)
	r.report.Files = append(r.report.Files, files...)
	return err
}

// runCleanup removes the temp clone at most once.
func (r *run) runCleanup() error {
	if r.cleanup == nil {
		return nil
	}
	cleanup := r.cleanup
	r.cleanup = nil
	return cleanup()
}

// requiredTools lists the programs the preflight must find for opts.
func requiredTools(opts RunOptions) []string {
	var tools []string
	if opts.InitGit || opts.CloneURL != "" {
		tools = append(tools, "git")
	}
	if opts.Install {
		name := opts.InstallCommand.Name
		if name == "" {
			name = DefaultInstallCommand.Name
		}
		if !slices.Contains(tools, name) {
			tools = append(tools, name)
		}
	}
	return tools
}
