package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prefkit/prefkit/pkg/prefs"
)

const modulePath = "github.com/prefkit/prefkit"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the prefctl version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "prefctl v%s\nmodule: %s\n", prefs.Version, modulePath)
			return nil
		},
	}
}
