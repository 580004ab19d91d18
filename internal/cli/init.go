package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newInitCmd creates the "init" command. Init materializes the prefctl
// config directory with a default config.yaml and creates the target store
// file so later commands find it in place.
func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the configuration directory and store file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer closeStore(store)

			if err := store.Sync(); err != nil {
				return fmt.Errorf("create store: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "initialized store %q\n", store.Name())
			return nil
		},
	}
}
