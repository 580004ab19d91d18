package sqlite

import (
	"fmt"
	"time"

	"github.com/prefkit/prefkit/pkg/types"
)

// SeedDefault writes an entry directly into the defaults layer, optionally
// locking it. This is the provisioning path for system-supplied defaults;
// regular item writes never touch that layer. The in-memory snapshot is
// reloaded so the seeded entry is visible immediately; seed before making
// user-layer writes, since the reload discards unsynced changes.
func (s *Store) SeedDefault(group, key, value string, immutable bool) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return types.ErrStoreClosed
	}

	locked := 0
	if immutable {
		locked = 1
	}
	_, err := s.db.Exec(
		"INSERT INTO entries (grp, key, layer, value, immutable, updated_at) VALUES (?, ?, ?, ?, ?, ?) "+
			"ON CONFLICT(grp, key, layer) DO UPDATE SET value = excluded.value, immutable = excluded.immutable, updated_at = excluded.updated_at",
		group, key, layerDefault, value, locked, time.Now().UTC().Format(time.RFC3339),
	)
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("seed default %s/%s: %w", group, key, err)
	}

	return s.Load()
}
