// Package cli implements the prefctl command-line interface.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/prefkit/prefkit/pkg/shared"
	"github.com/prefkit/prefkit/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	backend   string
	dir       string
	file      string
	location  string
	jsonMode  bool
}

var flags rootFlags

// NewRootCmd creates the top-level "prefctl" command with global flags and
// all subcommands registered.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "prefctl",
		Short: "Inspect and edit application preference stores",
		Long: "Prefctl reads and writes entries in application preference stores,\n" +
			"resolving files the same way the library does.",
		// Do not print usage on errors returned by subcommands.
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "prefctl configuration directory")
	root.PersistentFlags().StringVar(&flags.backend, "backend", "", "store backend (yaml or sqlite)")
	root.PersistentFlags().StringVar(&flags.dir, "dir", "", "store directory override")
	root.PersistentFlags().StringVar(&flags.file, "file", "", "store file name (default: the application's main store)")
	root.PersistentFlags().StringVar(&flags.location, "location", "config", "store location (config, appdata, state)")
	root.PersistentFlags().BoolVar(&flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(newInitCmd())
	root.AddCommand(newGetCmd())
	root.AddCommand(newSetCmd())
	root.AddCommand(newUnsetCmd())
	root.AddCommand(newShowCmd())
	root.AddCommand(newVersionCmd())

	return root
}

// exitError carries a specific process exit code out of a subcommand
// through the normal error return, so deferred cleanup still runs before
// the process exits.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

// Execute runs the root command and returns the process exit code.
func Execute() int {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		var exit *exitError
		if errors.As(err, &exit) {
			return exit.code
		}
		return exitUserError
	}
	return exitSuccess
}

// parseLocation maps the --location flag to a store location.
func parseLocation(name string) (types.Location, error) {
	switch name {
	case "config":
		return types.GenericConfigLocation, nil
	case "appdata":
		return types.AppDataLocation, nil
	case "state":
		return types.StateLocation, nil
	default:
		return 0, fmt.Errorf("unknown location %q (valid: config, appdata, state)", name)
	}
}

// openStore configures the shared cache from config.yaml plus flags and
// opens the requested store. An empty --file opens the main store.
func openStore() (*shared.Handle, error) {
	cfg, err := resolveConfig()
	if err != nil {
		return nil, err
	}
	if err := shared.Configure(cfg); err != nil {
		return nil, fmt.Errorf("configure store cache: %w", err)
	}

	loc, err := parseLocation(flags.location)
	if err != nil {
		return nil, err
	}
	openFlags := types.FullConfig
	if flags.file != "" {
		// Named files are opened plain; cascading is a main-store notion.
		openFlags = types.SimpleConfig
	}
	return shared.OpenStore(types.NoAssociation, flags.file, openFlags, loc)
}

// closeStore releases the handle and tears the cache down, flushing the
// main store. Errors are reported but do not change the exit path.
func closeStore(h *shared.Handle) {
	if err := h.Release(); err != nil {
		fmt.Fprintln(os.Stderr, "release store:", err)
	}
	if err := shared.Teardown(); err != nil {
		fmt.Fprintln(os.Stderr, "teardown:", err)
	}
}
