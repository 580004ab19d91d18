package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// newGetCmd creates the "get" command.
func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <group> <key>",
		Short: "Print one entry's value",
		Long: `Get prints the value stored under a group and key.

Example:
  prefctl get General ShowTips
  prefctl --file kioskrc get Session Timeout`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			group, key := args[0], args[1]

			store, err := openStore()
			if err != nil {
				return err
			}
			defer closeStore(store)

			value, ok := store.Read(group, key)
			if !ok {
				return fmt.Errorf("no entry %s/%s in store %q", group, key, store.Name())
			}

			if flags.jsonMode {
				out, err := json.Marshal(map[string]string{
					"group": group, "key": key, "value": value,
				})
				if err != nil {
					return fmt.Errorf("marshal entry: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}
}
