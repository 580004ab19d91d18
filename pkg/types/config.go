package types

import "errors"

// Config holds backend selection and parameters for opening stores.
type Config struct {
	// Backend names the store implementation.
	Backend string `json:"backend" yaml:"backend"`
	// Dir overrides the directory stores are placed in. When empty, the
	// directory is resolved from the requested location.
	Dir string `json:"dir,omitempty" yaml:"dir,omitempty"`
}

// Supported backend names.
const (
	BackendYAML   = "yaml"
	BackendSQLite = "sqlite"
)

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendYAML:   true,
	BackendSQLite: true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	return nil
}
