package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prefkit/prefkit/pkg/types"
)

// newUnsetCmd creates the "unset" command. Unset reverts an entry to its
// default; with no stored default the entry disappears from the store.
func newUnsetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unset <group> <key>",
		Short: "Revert one entry to its default",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			group, key := args[0], args[1]

			store, err := openStore()
			if err != nil {
				return err
			}
			defer closeStore(store)

			if err := store.RevertToDefault(group, key, types.WriteNormal); err != nil {
				return fmt.Errorf("revert entry: %w", err)
			}
			if err := store.Sync(); err != nil {
				return &exitError{
					code: exitSysError,
					err:  fmt.Errorf("commit store: %w", err),
				}
			}
			return nil
		},
	}
}
