package sqlite

import (
	"testing"

	"github.com/prefkit/prefkit/pkg/types"
)

func TestOpenRoundtrip(t *testing.T) {
	dir := t.TempDir()

	store, err := Open(dir, "apprc", types.SimpleConfig)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	if err := store.Write("General", "Theme", "dark", types.WriteNormal); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := store.Sync(); err != nil {
		t.Fatalf("Sync: %v", err)
	}
	v, ok := store.Read("General", "Theme")
	if !ok || v != "dark" {
		t.Errorf("Read = %q,%v; want dark,true", v, ok)
	}
}
