package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eddo81/wpkit/pkg/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the wpkit version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "wpkit %s\n", version.GetFullVersion())
			return err
		},
	}
}
