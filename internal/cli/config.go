// Config loading for the prefctl CLI.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/prefkit/prefkit/internal/paths"
	"github.com/prefkit/prefkit/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyBackend = "backend"
	cfgKeyDir     = "dir"
)

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# Prefctl configuration

# Store backend (yaml or sqlite)
backend: yaml

# Store directory override (optional; overridable by the --dir flag)
# dir:
`

// resolveConfig builds the backend configuration from config.yaml and the
// global flags, flags winning.
func resolveConfig() (types.Config, error) {
	configDir, err := resolveConfigDir()
	if err != nil {
		return types.Config{}, err
	}
	v, err := loadConfig(configDir)
	if err != nil {
		return types.Config{}, err
	}

	cfg := types.Config{
		Backend: v.GetString(cfgKeyBackend),
		Dir:     v.GetString(cfgKeyDir),
	}
	if flags.backend != "" {
		cfg.Backend = flags.backend
	}
	if flags.dir != "" {
		cfg.Dir = flags.dir
	}
	if err := cfg.Validate(); err != nil {
		return types.Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// resolveConfigDir returns the prefctl config directory from the flag or
// the platform config location.
func resolveConfigDir() (string, error) {
	if flags.configDir != "" {
		return flags.configDir, nil
	}
	return paths.Resolve("", types.GenericConfigLocation, types.AppAssociation)
}

// loadConfig reads config.yaml from the config directory using Viper. It
// creates the directory and a default config.yaml on first run; a missing
// file is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.BackendYAML)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// ensureDefaultConfigFile writes a default config.yaml when none exists.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
