package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prefkit/prefkit/pkg/types"
)

// newSetCmd creates the "set" command.
func newSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <group> <key> <value>",
		Short: "Write one entry and commit the store",
		Long: `Set writes a value under a group and key and commits the store.

Example:
  prefctl set General ShowTips true
  prefctl --file kioskrc set Session Timeout 300`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			group, key, value := args[0], args[1], args[2]

			store, err := openStore()
			if err != nil {
				return err
			}
			defer closeStore(store)

			if err := store.Write(group, key, value, types.WriteNormal); err != nil {
				if errors.Is(err, types.ErrEntryImmutable) {
					return &exitError{
						code: exitUserError,
						err:  fmt.Errorf("entry %s/%s is immutable", group, key),
					}
				}
				return fmt.Errorf("write entry: %w", err)
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
