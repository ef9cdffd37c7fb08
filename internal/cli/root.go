package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/eddo81/wpkit/pkg/version"
)

// errReported marks an error whose details were already printed.
var errReported = errors.New("error already reported")

// newRootCmd builds the wpkit command tree.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "wpkit",
		Short: "Scaffold a new webpack 5 project",
		Long: `wpkit creates a new webpack 5 project from a built-in boilerplate.

It asks for the project details, writes the project files into a new
folder named after the project, and can install the npm dependencies and
initialize a git repository.`,
		Version:           version.GetVersion(),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: InitDependencies,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf("wpkit %s\n", version.GetVersion()))

	rootCmd.PersistentFlags().String("config", "", "Path to the config file (default: $WPKIT_CONFIG or ~/.config/wpkit/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error (default: warn)")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	rootCmd.AddCommand(newCreateCmd(), newPlanCmd(), newVersionCmd())
	return rootCmd
}

// Execute runs the root command until it finishes or the process is
// interrupted. Errors not yet shown to the user are printed to stderr.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := newRootCmd().ExecuteContext(ctx)
	if err != nil && !errors.Is(err, errReported) {
		_, _ = fmt.Fprintf(os.Stderr, "Error - %v\n", err)
	}
	return err
}
