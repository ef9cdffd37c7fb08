package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eddo81/wpkit/internal/core/project"
	"github.com/eddo81/wpkit/internal/template"
	"github.com/eddo81/wpkit/pkg/models"
)

func newPlanCmd() *cobra.Command {
	planCmd := &cobra.Command{
		Use:   "plan <project-name>",
		Short: "Show the steps and files create would produce",
		Long: `Show the pipeline steps and the files "wpkit create" would write for
the given project, without touching the disk.

Examples:
  wpkit plan my-site
  wpkit plan my-site --tailwind --entry main --entry admin -i -g`,
		Args: cobra.ExactArgs(1),
		RunE: runPlan,
	}

	addProjectFlags(planCmd)
	planCmd.Flags().BoolP("skip", "s", false, "Plan without the tool checks")
	planCmd.Flags().BoolP("install", "i", false, "Plan the npm install step")
	planCmd.Flags().BoolP("git", "g", false, "Plan the git init step")
	planCmd.Flags().String("clone", "", "Plan the clone variant for this git URL")
	planCmd.Flags().String("install-command", "", "Command used to install dependencies (default: npm install)")
	return planCmd
}

// runPlan prints the ordered steps and, for the built-in templates, the
// ordered file list.
func runPlan(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	cfg := deps.Config
	theme := deps.Theme

	tailwind := cfg.Features.Tailwind
	if cmd.Flags().Changed("tailwind") {
		tailwind = getBoolFlag(cmd, "tailwind")
	}
	pc, err := models.NewProjectConfig(models.ProjectInput{
		ProjectName: args[0],
		Features:    featureFlags(cmd, cfg, tailwind),
		Entrypoints: entrypoints(cmd, cfg),
	})
	if err != nil {
		return err
	}
	opts, err := runOptions(cmd, cfg)
	if err != nil {
		return err
	}

	steps := project.NewOrchestrator(deps.FS, deps.Runner).Plan(opts)
	stepLines := make([]string, len(steps))
	for i, s := range steps {
		stepLines[i] = models.StepResult{Name: s.Name}.Label(i)
	}
	_, _ = fmt.Fprintln(out, theme.RenderCard("Steps for ./"+pc.FolderName(), stepLines...))

	if opts.CloneURL != "" {
		_, _ = fmt.Fprintln(out, theme.Muted.Render("Files are taken from "+opts.CloneURL+" and are known only after cloning."))
		return nil
	}

	items, err := template.Plan(template.DefaultManifest(), pc)
	if err != nil {
		return err
	}
	fileLines := make([]string, len(items))
	for i, it := range items {
		fileLines[i] = fmt.Sprintf("%-44s %s", it.Dest, theme.Muted.Render(string(it.Kind)))
	}
	_, _ = fmt.Fprintln(out, theme.RenderCard(fmt.Sprintf("%d files", len(items)), fileLines...))
	return nil
}
