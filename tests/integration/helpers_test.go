// Package integration exercises the prefctl CLI end to end, driving the
// command tree in process against isolated temp directories.
package integration

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/prefkit/prefkit/internal/cli"
)

// cliEnv is an isolated CLI environment. Every invocation points the tool's
// own config and the store directory at per-test temp dirs.
type cliEnv struct {
	t         *testing.T
	configDir string
	storeDir  string
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	return &cliEnv{
		t:         t,
		configDir: t.TempDir(),
		storeDir:  t.TempDir(),
	}
}

// run executes prefctl with the environment's directory flags prepended and
// returns captured stdout.
func (e *cliEnv) run(args ...string) (string, error) {
	e.t.Helper()
	full := append([]string{
		"--config-dir", e.configDir,
		"--dir", e.storeDir,
	}, args...)

	root := cli.NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(full)
	err := root.Execute()
	return out.String(), err
}

func (e *cliEnv) mustRun(args ...string) string {
	e.t.Helper()
	out, err := e.run(args...)
	if err != nil {
		e.t.Fatalf("prefctl %v: %v", args, err)
	}
	return out
}

// storePath returns the path of a named store file in the store directory.
func (e *cliEnv) storePath(name string) string {
	return filepath.Join(e.storeDir, name)
}
