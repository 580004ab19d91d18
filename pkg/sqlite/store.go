// Package sqlite provides the public API for the SQLite prefkit store.
// It exposes the factory function while keeping implementation details
// internal.
package sqlite

import (
	"github.com/prefkit/prefkit/internal/sqlite"
	"github.com/prefkit/prefkit/pkg/types"
)

// Open opens (or creates) the SQLite store named name in dir.
//
// Example:
//
//	store, err := sqlite.Open(".myapp", "myapprc", types.FullConfig)
//	if err != nil { ... }
//	defer store.Close()
func Open(dir, name string, flags types.OpenFlags) (types.Store, error) {
	return sqlite.Open(dir, name, flags)
}
