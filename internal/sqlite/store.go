package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/prefkit/prefkit/internal/logging"
	"github.com/prefkit/prefkit/pkg/types"
)

// Store implements types.Store over a SQLite database.
type Store struct {
	mu    sync.Mutex
	name  string
	path  string
	flags types.OpenFlags
	db    *sql.DB

	user      map[string]map[string]string
	defaults  map[string]map[string]string
	immutable map[string]bool

	readDefaults bool
	dirty        bool
	closed       bool
}

var _ types.Store = (*Store)(nil)

// newUUID generates a UUID v7 string.
func newUUID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Open opens (or creates) the store named name in dir, initializes the
// schema, and loads the entry snapshot.
func Open(dir, name string, flags types.OpenFlags) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}

	base := name
	if !strings.HasSuffix(base, ".sqlite") && !strings.HasSuffix(base, ".db") {
		base += ".sqlite"
	}
	path := filepath.Join(dir, base)

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Store{
		name:  name,
		path:  path,
		flags: flags,
		db:    db,
	}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	if err := s.Load(); err != nil {
		db.Close()
		return nil, err
	}

	logging.L().Debug("sqlite store opened", zap.String("store", name), zap.String("path", path))
	return s, nil
}

// initSchema executes the DDL and seeds store_info on first creation.
func (s *Store) initSchema() error {
	for _, ddl := range schemaDDL {
		if _, err := s.db.Exec(ddl); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM store_info").Scan(&count); err != nil {
		return fmt.Errorf("read store_info: %w", err)
	}
	if count == 0 {
		_, err := s.db.Exec(
			"INSERT INTO store_info (store_id, schema_version, created_at) VALUES (?, ?, ?)",
			newUUID(), schemaVersion, time.Now().UTC().Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("seed store_info: %w", err)
		}
	}
	return nil
}

// Name returns the logical file name the store was opened with.
func (s *Store) Name() string {
	return s.name
}

// Load re-reads the entry snapshot from the database, replacing the in-memory
// state. Unsynced writes are discarded.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return types.ErrStoreClosed
	}

	rows, err := s.db.Query("SELECT grp, key, layer, value, immutable FROM entries")
	if err != nil {
		return fmt.Errorf("load entries: %w", err)
	}
	defer rows.Close()

	user := make(map[string]map[string]string)
	defaults := make(map[string]map[string]string)
	immutable := make(map[string]bool)
	cascade := s.flags&(types.CascadeConfig|types.IncludeGlobals) != 0

	for rows.Next() {
		var (
			grp, key, value string
			layer           int
			locked          int
		)
		if err := rows.Scan(&grp, &key, &layer, &value, &locked); err != nil {
			return fmt.Errorf("scan entry: %w", err)
		}

		target := user
		if layer == layerDefault {
			if !cascade {
				continue
			}
			target = defaults
		}
		g, ok := target[grp]
		if !ok {
			g = make(map[string]string)
			target[grp] = g
		}
		g[key] = value
		if locked != 0 {
			immutable[grp+"/"+key] = true
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate entries: %w", err)
	}

	s.user = user
	s.defaults = defaults
	s.immutable = immutable
	s.dirty = false
	return nil
}

// Read returns the raw entry under (group, key). In read-defaults mode only
// the defaults layer is consulted.
func (s *Store) Read(group, key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return "", false
	}
	if s.readDefaults {
		return lookup(s.defaults, group, key)
	}
	if v, ok := lookup(s.user, group, key); ok {
		return v, true
	}
	return lookup(s.defaults, group, key)
}

// Write buffers value under (group, key) in the user layer.
func (s *Store) Write(group, key, value string, flags types.WriteFlags) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return types.ErrStoreClosed
	}
	if s.immutable[group+"/"+key] {
		return types.ErrEntryImmutable
	}

	g, ok := s.user[group]
	if !ok {
		g = make(map[string]string)
		s.user[group] = g
	}
	if prev, had := g[key]; had && prev == value && flags&types.WriteForce == 0 {
		return nil
	}
	g[key] = value
	s.dirty = true

	if flags&types.WriteNoNotify == 0 {
		logging.L().Debug("entry written",
			zap.String("store", s.name), zap.String("group", group), zap.String("key", key))
	}
	return nil
}

// RevertToDefault removes the buffered user-layer entry for (group, key).
func (s *Store) RevertToDefault(group, key string, flags types.WriteFlags) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return types.ErrStoreClosed
	}
	if s.immutable[group+"/"+key] {
		return types.ErrEntryImmutable
	}

	g, ok := s.user[group]
	if !ok {
		return nil
	}
	if _, had := g[key]; !had {
		return nil
	}
	delete(g, key)
	if len(g) == 0 {
		delete(s.user, group)
	}
	s.dirty = true
	return nil
}

// HasDefault reports whether the defaults layer holds (group, key).
func (s *Store) HasDefault(group, key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := lookup(s.defaults, group, key)
	return ok
}

// SetReadDefaults toggles read-defaults mode.
func (s *Store) SetReadDefaults(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readDefaults = on
}

// ReadDefaults reports the read-defaults toggle state.
func (s *Store) ReadDefaults() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readDefaults
}

// IsEntryImmutable reports whether (group, key) is locked down.
func (s *Store) IsEntryImmutable(group, key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.immutable[group+"/"+key]
}

// Groups returns the group names present in either layer, sorted.
func (s *Store) Groups() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool)
	for g := range s.user {
		seen[g] = true
	}
	for g := range s.defaults {
		seen[g] = true
	}
	groups := make([]string, 0, len(seen))
	for g := range seen {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	return groups
}

// Keys returns the keys present in group in either layer, sorted.
func (s *Store) Keys(group string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool)
	for k := range s.user[group] {
		seen[k] = true
	}
	for k := range s.defaults[group] {
		seen[k] = true
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Sync commits the buffered user layer in one transaction. The user layer is
// rewritten wholesale; the defaults layer is never touched by Sync.
func (s *Store) Sync() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return types.ErrStoreClosed
	}
	if !s.dirty {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin sync: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM entries WHERE layer = ?", layerUser); err != nil {
		tx.Rollback()
		return fmt.Errorf("clear user layer: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for grp, entries := range s.user {
		for key, value := range entries {
			locked := 0
			if s.immutable[grp+"/"+key] {
				locked = 1
			}
			_, err := tx.Exec(
				"INSERT INTO entries (grp, key, layer, value, immutable, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
				grp, key, layerUser, value, locked, now,
			)
			if err != nil {
				tx.Rollback()
				return fmt.Errorf("write entry %s/%s: %w", grp, key, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit sync: %w", err)
	}
	s.dirty = false
	logging.L().Debug("store synced", zap.String("store", s.name), zap.String("path", s.path))
	return nil
}

// Close releases the database. Unsynced changes are discarded with a warning.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	if s.dirty {
		logging.L().Warn("store closed with unsynced changes", zap.String("store", s.name))
	}
	s.closed = true
	return s.db.Close()
}

func lookup(layer map[string]map[string]string, group, key string) (string, bool) {
	g, ok := layer[group]
	if !ok {
		return "", false
	}
	v, ok := g[key]
	return v, ok
}
