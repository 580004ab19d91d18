// Package paths resolves configuration, data, and state directory locations
// for prefkit stores, and owns the process's application identity.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"sync"

	"github.com/prefkit/prefkit/pkg/types"
)

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "PREFKIT_CONFIG_DIR"
	EnvDataDir   = "PREFKIT_DATA_DIR"
	EnvStateDir  = "PREFKIT_STATE_DIR"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

var (
	mu       sync.Mutex
	appName  string
	testMode bool
)

// AppName returns the application name used for main config naming and
// per-application subdirectories. Defaults to the executable base name.
func AppName() string {
	mu.Lock()
	defer mu.Unlock()
	if appName == "" {
		appName = filepath.Base(os.Args[0])
	}
	return appName
}

// SetAppName overrides the detected application name. Call before any store
// is opened; already-open stores keep their resolved paths.
func SetAppName(name string) {
	mu.Lock()
	defer mu.Unlock()
	appName = name
}

// MainConfigName returns the canonical file name of the application's primary
// configuration store.
func MainConfigName() string {
	return AppName() + "rc"
}

// SetTestMode redirects all resolved directories to an isolated per-process
// path set under the system temp directory. Turning it on after stores were
// opened does not move them; the shared cache discards stale handles when it
// observes the transition.
func SetTestMode(on bool) {
	mu.Lock()
	defer mu.Unlock()
	testMode = on
}

// TestModeEnabled reports whether the isolated path set is active.
func TestModeEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return testMode
}

// testRoot returns the isolated directory root for this process.
func testRoot() string {
	return filepath.Join(os.TempDir(), "prefkit-test", strconv.Itoa(os.Getpid()))
}

// DefaultConfigDir returns the platform-specific shared configuration
// directory.
//
// Linux:   $XDG_CONFIG_HOME (fallback ~/.config)
// macOS:   ~/Library/Application Support
// Windows: %APPDATA%
func DefaultConfigDir() (string, error) {
	if TestModeEnabled() {
		return filepath.Join(testRoot(), "config"), nil
	}
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return xdg, nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config"), nil
	default:
		return platformDir.userConfigDir()
	}
}

// DefaultDataDir returns the platform-specific per-application data directory.
//
// Linux:   $XDG_DATA_HOME/<app> (fallback ~/.local/share/<app>)
// macOS:   ~/Library/Application Support/<app>
// Windows: %APPDATA%/<app>
func DefaultDataDir() (string, error) {
	if TestModeEnabled() {
		return filepath.Join(testRoot(), "data", AppName()), nil
	}
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			return filepath.Join(xdg, AppName()), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".local", "share", AppName()), nil
	default:
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, AppName()), nil
	}
}

// DefaultStateDir returns the platform-specific per-application state
// directory.
//
// Linux:   $XDG_STATE_HOME/<app> (fallback ~/.local/state/<app>)
// Other:   same as DefaultDataDir.
func DefaultStateDir() (string, error) {
	if TestModeEnabled() {
		return filepath.Join(testRoot(), "state", AppName()), nil
	}
	if runtime.GOOS == "linux" {
		if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
			return filepath.Join(xdg, AppName()), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".local", "state", AppName()), nil
	}
	return DefaultDataDir()
}

// Resolve returns the directory a store file belongs in for the given
// location and association, following the precedence chain:
// override > PREFKIT_* env > platform default. The isolated test-mode path
// set takes precedence over environment overrides.
func Resolve(override string, loc types.Location, assoc types.Association) (string, error) {
	if override != "" {
		return filepath.Abs(override)
	}

	var (
		dir string
		err error
	)
	switch loc {
	case types.AppDataLocation:
		if env := os.Getenv(EnvDataDir); env != "" && !TestModeEnabled() {
			return filepath.Abs(env)
		}
		dir, err = DefaultDataDir()
	case types.StateLocation:
		if env := os.Getenv(EnvStateDir); env != "" && !TestModeEnabled() {
			return filepath.Abs(env)
		}
		dir, err = DefaultStateDir()
	default:
		if env := os.Getenv(EnvConfigDir); env != "" && !TestModeEnabled() {
			return filepath.Abs(env)
		}
		dir, err = DefaultConfigDir()
	}
	if err != nil {
		return "", err
	}

	// AppData and State locations are already application-scoped.
	if assoc == types.AppAssociation && loc == types.GenericConfigLocation {
		dir = filepath.Join(dir, AppName())
	}
	return dir, nil
}
