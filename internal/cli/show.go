package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// newShowCmd creates the "show" command.
func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Dump every entry in the store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer closeStore(store)

			if flags.jsonMode {
				dump := make(map[string]map[string]string)
				for _, group := range store.Groups() {
					entries := make(map[string]string)
					for _, key := range store.Keys(group) {
						if value, ok := store.Read(group, key); ok {
							entries[key] = value
						}
					}
					dump[group] = entries
				}
				out, err := json.MarshalIndent(dump, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal store: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
				return nil
			}

			for _, group := range store.Groups() {
				fmt.Fprintf(cmd.OutOrStdout(), "[%s]\n", group)
				for _, key := range store.Keys(group) {
					if value, ok := store.Read(group, key); ok {
						marker := ""
						if store.IsEntryImmutable(group, key) {
							marker = " (immutable)"
						}
						fmt.Fprintf(cmd.OutOrStdout(), "%s=%s%s\n", key, value, marker)
					}
				}
			}
			return nil
		},
	}
}
