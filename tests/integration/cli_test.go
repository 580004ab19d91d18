package integration

import (
	"encoding/json"
	"os"
	"strings"
	"testing"
)

func TestInitCreatesConfigAndStore(t *testing.T) {
	env := newCLIEnv(t)

	out := env.mustRun("--file", "appsettings", "init")
	if !strings.Contains(out, "initialized store") {
		t.Errorf("unexpected init output: %q", out)
	}
	if _, err := os.Stat(env.storePath("appsettings.yaml")); err != nil {
		t.Errorf("store file not created: %v", err)
	}
	if _, err := os.Stat(env.configDir + "/config.yaml"); err != nil {
		t.Errorf("default config.yaml not created: %v", err)
	}
}

func TestSetGetRoundtrip(t *testing.T) {
	env := newCLIEnv(t)

	env.mustRun("--file", "appsettings", "set", "General", "ShowTips", "true")
	out := env.mustRun("--file", "appsettings", "get", "General", "ShowTips")
	if strings.TrimSpace(out) != "true" {
		t.Errorf("get = %q, want %q", strings.TrimSpace(out), "true")
	}
}

func TestGetMissingEntryFails(t *testing.T) {
	env := newCLIEnv(t)

	env.mustRun("--file", "appsettings", "init")
	if _, err := env.run("--file", "appsettings", "get", "General", "Missing"); err == nil {
		t.Error("expected error for missing entry")
	}
}

func TestUnsetRemovesEntry(t *testing.T) {
	env := newCLIEnv(t)

	env.mustRun("--file", "appsettings", "set", "General", "Theme", "dark")
	env.mustRun("--file", "appsettings", "unset", "General", "Theme")
	if _, err := env.run("--file", "appsettings", "get", "General", "Theme"); err == nil {
		t.Error("entry still present after unset")
	}
}

func TestShowListsEntries(t *testing.T) {
	env := newCLIEnv(t)

	env.mustRun("--file", "appsettings", "set", "General", "ShowTips", "true")
	env.mustRun("--file", "appsettings", "set", "Session", "Timeout", "300")

	out := env.mustRun("--file", "appsettings", "show")
	for _, want := range []string{"[General]", "ShowTips=true", "[Session]", "Timeout=300"} {
		if !strings.Contains(out, want) {
			t.Errorf("show output missing %q:\n%s", want, out)
		}
	}
}

func TestShowJSON(t *testing.T) {
	env := newCLIEnv(t)

	env.mustRun("--file", "appsettings", "set", "General", "ShowTips", "true")

	out := env.mustRun("--file", "appsettings", "--json", "show")
	var dump map[string]map[string]string
	if err := json.Unmarshal([]byte(out), &dump); err != nil {
		t.Fatalf("show --json produced invalid JSON: %v\n%s", err, out)
	}
	if dump["General"]["ShowTips"] != "true" {
		t.Errorf("dump = %v, want General/ShowTips=true", dump)
	}
}

func TestSQLiteBackendRoundtrip(t *testing.T) {
	env := newCLIEnv(t)

	env.mustRun("--backend", "sqlite", "--file", "appsettings", "set", "General", "Theme", "dark")
	out := env.mustRun("--backend", "sqlite", "--file", "appsettings", "get", "General", "Theme")
	if strings.TrimSpace(out) != "dark" {
		t.Errorf("get = %q, want %q", strings.TrimSpace(out), "dark")
	}
	if _, err := os.Stat(env.storePath("appsettings.sqlite")); err != nil {
		t.Errorf("sqlite store file not created: %v", err)
	}
}

func TestVersionOutput(t *testing.T) {
	env := newCLIEnv(t)

	out := env.mustRun("version")
	if !strings.Contains(out, "prefctl v") {
		t.Errorf("unexpected version output: %q", out)
	}
}

func TestBadBackendRejected(t *testing.T) {
	env := newCLIEnv(t)

	if _, err := env.run("--backend", "bolt", "--file", "appsettings", "init"); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestBadLocationRejected(t *testing.T) {
	env := newCLIEnv(t)

	if _, err := env.run("--location", "nowhere", "--file", "appsettings", "init"); err == nil {
		t.Error("expected error for unknown location")
	}
}
