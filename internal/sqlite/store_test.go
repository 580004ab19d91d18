package sqlite

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/prefkit/prefkit/pkg/types"
)

func openTestStore(t *testing.T, flags types.OpenFlags) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := Open(dir, "apprc", flags)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, dir
}

func TestOpenCreatesDatabase(t *testing.T) {
	s, dir := openTestStore(t, types.SimpleConfig)

	if s.Name() != "apprc" {
		t.Errorf("Name = %q, want apprc", s.Name())
	}
	if _, err := os.Stat(filepath.Join(dir, "apprc.sqlite")); err != nil {
		t.Errorf("database file not created: %v", err)
	}
}

func TestWriteSyncReopenRoundtrip(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir, "apprc", types.SimpleConfig)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if err := s.Write("General", "Theme", "dark", types.WriteNormal); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := s.Sync(); err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s2, err := Open(dir, "apprc", types.SimpleConfig)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()

	v, ok := s2.Read("General", "Theme")
	if !ok || v != "dark" {
		t.Errorf("Read = %q,%v; want dark,true", v, ok)
	}
}

func TestSeedDefaultCascades(t *testing.T) {
	s, _ := openTestStore(t, types.CascadeConfig)

	if err := s.SeedDefault("General", "Theme", "corporate", false); err != nil {
		t.Fatalf("SeedDefault: %v", err)
	}

	if v, ok := s.Read("General", "Theme"); !ok || v != "corporate" {
		t.Errorf("fallback Read = %q,%v; want corporate,true", v, ok)
	}
	if !s.HasDefault("General", "Theme") {
		t.Error("HasDefault should see the seeded entry")
	}

	if err := s.Write("General", "Theme", "dark", types.WriteNormal); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if v, _ := s.Read("General", "Theme"); v != "dark" {
		t.Errorf("user write should shadow the default, got %q", v)
	}

	s.SetReadDefaults(true)
	if v, _ := s.Read("General", "Theme"); v != "corporate" {
		t.Errorf("read-defaults Read = %q, want corporate", v)
	}
	s.SetReadDefaults(false)

	if err := s.RevertToDefault("General", "Theme", types.WriteNormal); err != nil {
		t.Fatalf("RevertToDefault: %v", err)
	}
	if v, _ := s.Read("General", "Theme"); v != "corporate" {
		t.Errorf("Read after revert = %q, want corporate", v)
	}
}

func TestSeedImmutableRejectsWrites(t *testing.T) {
	s, _ := openTestStore(t, types.CascadeConfig)

	if err := s.SeedDefault("General", "Theme", "corporate", true); err != nil {
		t.Fatalf("SeedDefault: %v", err)
	}
	if !s.IsEntryImmutable("General", "Theme") {
		t.Fatal("seeded lock not reported immutable")
	}
	err := s.Write("General", "Theme", "dark", types.WriteNormal)
	if !errors.Is(err, types.ErrEntryImmutable) {
		t.Errorf("Write err = %v, want ErrEntryImmutable", err)
	}
}

func TestSimpleConfigSkipsDefaultsLayer(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir, "apprc", types.CascadeConfig)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.SeedDefault("General", "Theme", "corporate", false); err != nil {
		t.Fatalf("SeedDefault: %v", err)
	}
	s.Close()

	s2, err := Open(dir, "apprc", types.SimpleConfig)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()

	if _, ok := s2.Read("General", "Theme"); ok {
		t.Error("simple store must not surface the defaults layer")
	}
}

func TestLoadDiscardsUnsyncedWrites(t *testing.T) {
	s, _ := openTestStore(t, types.SimpleConfig)

	if err := s.Write("General", "Theme", "dark", types.WriteNormal); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := s.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, ok := s.Read("General", "Theme"); ok {
		t.Error("Load must discard unsynced writes")
	}
}

func TestSyncPersistsDeletions(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir, "apprc", types.SimpleConfig)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if err := s.Write("General", "Theme", "dark", types.WriteNormal); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := s.Sync(); err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if err := s.RevertToDefault("General", "Theme", types.WriteNormal); err != nil {
		t.Fatalf("RevertToDefault: %v", err)
	}
	if err := s.Sync(); err != nil {
		t.Fatalf("second Sync: %v", err)
	}
	s.Close()

	s2, err := Open(dir, "apprc", types.SimpleConfig)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()

	if _, ok := s2.Read("General", "Theme"); ok {
		t.Error("reverted entry survived the sync")
	}
}

func TestClosedStoreRejectsOperations(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir, "apprc", types.SimpleConfig)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("Close after Close: %v", err)
	}
	if err := s.Sync(); !errors.Is(err, types.ErrStoreClosed) {
		t.Errorf("Sync on closed store = %v, want ErrStoreClosed", err)
	}
	if err := s.Write("General", "Theme", "x", types.WriteNormal); !errors.Is(err, types.ErrStoreClosed) {
		t.Errorf("Write on closed store = %v, want ErrStoreClosed", err)
	}
}

func TestGroupsAndKeysSorted(t *testing.T) {
	s, _ := openTestStore(t, types.SimpleConfig)

	for _, e := range [][3]string{
		{"Zeta", "b", "1"},
		{"Alpha", "z", "2"},
		{"Alpha", "a", "3"},
	} {
		if err := s.Write(e[0], e[1], e[2], types.WriteNormal); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}

	groups := s.Groups()
	if len(groups) != 2 || groups[0] != "Alpha" || groups[1] != "Zeta" {
		t.Errorf("Groups = %v", groups)
	}
	keys := s.Keys("Alpha")
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "z" {
		t.Errorf("Keys(Alpha) = %v", keys)
	}
}
