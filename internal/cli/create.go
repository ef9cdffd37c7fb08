package cli

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eddo81/wpkit/internal/cli/wizard"
	"github.com/eddo81/wpkit/internal/config"
	"github.com/eddo81/wpkit/internal/core/project"
	"github.com/eddo81/wpkit/internal/shell"
	"github.com/eddo81/wpkit/internal/ui"
	"github.com/eddo81/wpkit/pkg/models"
)

// ErrProjectNameRequired is returned when no name can be prompted for.
var ErrProjectNameRequired = errors.New("a project name is required when running non-interactively")

func newCreateCmd() *cobra.Command {
	createCmd := &cobra.Command{
		Use:   "create [project-name]",
		Short: "Create a new webpack 5 project",
		Long: `Create a new webpack 5 project in a folder named after the project.

The folder name is the dash-case form of the project name, so
"My Site" is created in ./my-site. The folder must not exist yet.

Examples:
  wpkit create                      Ask for every project detail
  wpkit create "My Site" -s         Ask only for the name and Tailwind
  wpkit create my-site -i -g        Also install dependencies and run git init
  wpkit create my-site --non-interactive --tailwind --entry main --entry admin`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCreate,
	}

	addProjectFlags(createCmd)
	createCmd.Flags().BoolP("skip", "s", false, "Skip the optional questions and the tool checks")
	createCmd.Flags().BoolP("install", "i", false, "Install npm dependencies after generating the files")
	createCmd.Flags().BoolP("git", "g", false, "Initialize a git repository in the new project")
	createCmd.Flags().String("clone", "", "Clone the boilerplate from this git URL instead of using the built-in templates")
	createCmd.Flags().String("install-command", "", "Command used to install dependencies (default: npm install)")
	createCmd.Flags().Bool("non-interactive", false, "Do not prompt; use flags and config values")
	createCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation of the project details")
	return createCmd
}

// addProjectFlags registers the flags that describe the project.
func addProjectFlags(cmd *cobra.Command) {
	cmd.Flags().String("description", "", "Project description")
	cmd.Flags().String("author", "", "Name of the project author")
	cmd.Flags().String("email", "", "Email of the project author")
	cmd.Flags().Bool("tailwind", false, "Include the Tailwind CSS library")
	cmd.Flags().Bool("no-readme", false, "Do not generate README.md")
	cmd.Flags().Bool("no-license", false, "Do not generate LICENSE")
	cmd.Flags().Bool("no-editorconfig", false, "Do not generate .editorconfig")
	cmd.Flags().StringSliceP("entry", "e", nil, "Webpack entrypoint name, repeatable (default: main)")
}

// runCreate collects the project details and runs the scaffolding pipeline.
func runCreate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	theme := deps.Theme
	if getBoolFlag(cmd, "non-interactive") {
		deps.Headless.ForceHeadless(true)
	}

	cwd, err := deps.FS.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	printIntro(out, theme, cwd)

	in, err := collectInput(cmd, args, out, cwd)
	if errors.Is(err, wizard.ErrCancelled) {
		_, _ = fmt.Fprintln(out, "Exiting script...")
		return nil
	}
	if err != nil {
		return err
	}

	cfg, err := models.NewProjectConfig(in)
	if err != nil {
		return err
	}
	opts, err := runOptions(cmd, deps.Config)
	if err != nil {
		return err
	}

	printLetsGo(out, theme)

	orch := project.NewOrchestrator(deps.FS, deps.Runner,
		project.WithReporter(ui.NewStepReporter(theme, deps.Headless, out)),
		project.WithLogger(deps.Logger),
	)
	report, err := orch.Run(cmd.Context(), cfg, filepath.Join(cwd, cfg.FolderName()), opts)
	if err != nil {
		printError(out, theme, errorDetail(err))
		return fmt.Errorf("%w: %w", errReported, err)
	}

	printOutro(out, theme, deps.Headless, outroMarkdown(cfg.FolderName(), opts.Install, len(report.Files)))
	return nil
}

// collectInput gathers the project details from the wizard or, when no
// terminal is available, from the arguments, flags and config.
func collectInput(cmd *cobra.Command, args []string, out io.Writer, cwd string) (models.ProjectInput, error) {
	cfg := deps.Config

	in := models.ProjectInput{
		Description: stringFlagOr(cmd, "description", ""),
		Author: models.Author{
			Name:  stringFlagOr(cmd, "author", cfg.Author.Name),
			Email: stringFlagOr(cmd, "email", cfg.Author.Email),
		},
		Entrypoints: entrypoints(cmd, cfg),
	}
	if len(args) > 0 {
		in.ProjectName = args[0]
	}
	tailwind := cfg.Features.Tailwind
	if cmd.Flags().Changed("tailwind") {
		tailwind = getBoolFlag(cmd, "tailwind")
	}

	if deps.Headless.IsHeadless() {
		if strings.TrimSpace(in.ProjectName) == "" {
			return models.ProjectInput{}, ErrProjectNameRequired
		}
		if in.Author.Email != "" {
			if err := config.ValidateEmail(in.Author.Email); err != nil {
				return models.ProjectInput{}, fmt.Errorf("invalid --email %q: %w", in.Author.Email, err)
			}
		}
		in.Features = featureFlags(cmd, cfg, tailwind)
		printSummary(out, deps.Theme, summaryFields(in.ProjectName, in.Author.Name, in.Author.Email, in.Description, in.Features, in.Entrypoints))
		return in, nil
	}

	skip := getBoolFlag(cmd, "skip")
	var prompter wizard.Prompter = wizard.NewHuhPrompter(deps.Theme.NoColor)
	if getBoolFlag(cmd, "yes") {
		prompter = autoConfirm{prompter}
	}

	questions := wizard.DefaultQuestions(wizard.Defaults{
		ProjectName: in.ProjectName,
		AuthorName:  in.Author.Name,
		AuthorEmail: in.Author.Email,
		Description: in.Description,
		Tailwind:    tailwind,
	}, skip)

	result, err := wizard.Run(cmd.Context(), questions, wizard.Options{
		Prompter: prompter,
		Summary: func(r *wizard.Result) {
			author, email, description := r.AuthorName, r.AuthorEmail, r.Description
			if skip {
				author, email, description = in.Author.Name, in.Author.Email, in.Description
			}
			printSummary(out, deps.Theme, summaryFields(r.ProjectName, author, email, description,
				featureFlags(cmd, cfg, r.Tailwind), in.Entrypoints))
		},
		Restart: func() { printIntro(out, deps.Theme, cwd) },
	})
	if err != nil {
		return models.ProjectInput{}, err
	}

	in.ProjectName = result.ProjectName
	if !skip {
		in.Author = models.Author{Name: result.AuthorName, Email: result.AuthorEmail}
		in.Description = result.Description
	}
	in.Features = featureFlags(cmd, cfg, result.Tailwind)
	return in, nil
}

// autoConfirm accepts the summary without asking.
type autoConfirm struct {
	wizard.Prompter
}

func (autoConfirm) Confirm(string) (bool, error) { return true, nil }

// runOptions derives the optional pipeline steps from flags and config.
func runOptions(cmd *cobra.Command, cfg *config.Config) (project.RunOptions, error) {
	opts := project.RunOptions{
		Install:       getBoolFlag(cmd, "install") || cfg.Install.Enabled,
		InitGit:       getBoolFlag(cmd, "git") || cfg.Git.Init,
		SkipPreflight: getBoolFlag(cmd, "skip"),
		CloneURL:      stringFlagOr(cmd, "clone", cfg.Clone.URL),
		Timeout:       cfg.System.CommandTimeout,
	}
	line := stringFlagOr(cmd, "install-command", cfg.Install.Command)
	if line != "" {
		installCmd, err := shell.ParseCommand(line)
		if err != nil {
			return project.RunOptions{}, fmt.Errorf("invalid install command %q: %w", line, err)
		}
		opts.InstallCommand = installCmd
	}
	return opts, nil
}

// featureFlags applies the --no-* flags and the Tailwind answer to the
// configured features.
func featureFlags(cmd *cobra.Command, cfg *config.Config, tailwind bool) []models.FeatureFlag {
	f := cfg.Features
	f.Tailwind = tailwind
	if getBoolFlag(cmd, "no-readme") {
		f.Readme = false
	}
	if getBoolFlag(cmd, "no-license") {
		f.License = false
	}
	if getBoolFlag(cmd, "no-editorconfig") {
		f.EditorConfig = false
	}
	return f.Flags()
}

// entrypoints returns --entry values when given, else the configured ones.
func entrypoints(cmd *cobra.Command, cfg *config.Config) []string {
	if cmd.Flags().Changed("entry") {
		return getStringSliceFlag(cmd, "entry")
	}
	return cfg.Entrypoints
}

// stringFlagOr returns the flag value when set on the command line, else fallback.
func stringFlagOr(cmd *cobra.Command, name, fallback string) string {
	if cmd.Flags().Changed(name) {
		return getStringFlag(cmd, name)
	}
	return fallback
}

// errorDetail strips the step name from a pipeline error; the failed
// step is already marked in the progress output.
func errorDetail(err error) string {
	var stepErr *project.StepError
	if errors.As(err, &stepErr) {
		return stepErr.Err.Error()
	}
	return err.Error()
}
