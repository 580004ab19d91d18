// Package yamlfile implements a YAML-backed prefkit store.
//
// Each store is one document of grouped string entries. A sibling
// <name>.defaults.yaml overlay supplies stored defaults when the store is
// opened with cascading, and a shared globals.yaml in the same directory is
// merged beneath the overlay when globals are included. Keys listed under
// "immutable" (as "Group/Key") are locked against modification.
package yamlfile

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/prefkit/prefkit/internal/logging"
	"github.com/prefkit/prefkit/pkg/types"
)

// globalsFile is the shared entry file merged in by IncludeGlobals.
const globalsFile = "globals.yaml"

// document is the on-disk shape of a store file.
type document struct {
	Version   int                          `yaml:"version"`
	Groups    map[string]map[string]string `yaml:"groups,omitempty"`
	Immutable []string                     `yaml:"immutable,omitempty"`
}

// Store implements types.Store over a YAML file pair.
type Store struct {
	mu   sync.Mutex
	name string
	dir  string

	path         string
	defaultsPath string
	flags        types.OpenFlags

	user      map[string]map[string]string
	defaults  map[string]map[string]string
	immutable map[string]bool
	userLocks []string

	readDefaults bool
	dirty        bool
	closed       bool
}

var _ types.Store = (*Store)(nil)

// Open loads (or initializes) the store named name in dir. A missing file is
// not an error; the store starts empty and is created on the first Sync.
func Open(dir, name string, flags types.OpenFlags) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}

	base := name
	if !strings.HasSuffix(base, ".yaml") && !strings.HasSuffix(base, ".yml") {
		base += ".yaml"
	}

	s := &Store{
		name:         name,
		dir:          dir,
		path:         filepath.Join(dir, base),
		defaultsPath: filepath.Join(dir, strings.TrimSuffix(base, filepath.Ext(base))+".defaults.yaml"),
		flags:        flags,
	}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Name returns the logical file name the store was opened with.
func (s *Store) Name() string {
	return s.name
}

// Load re-reads the store content from disk, replacing the in-memory state.
// Unsynced writes are discarded.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return types.ErrStoreClosed
	}

	user, userLocks, err := readDocument(s.path)
	if err != nil {
		return fmt.Errorf("load %s: %w", s.path, err)
	}

	defaults := make(map[string]map[string]string)
	immutable := make(map[string]bool)

	if s.flags&types.IncludeGlobals != 0 {
		groups, locks, err := readDocument(filepath.Join(s.dir, globalsFile))
		if err != nil {
			return fmt.Errorf("load globals: %w", err)
		}
		mergeGroups(defaults, groups)
		for _, l := range locks {
			immutable[l] = true
		}
	}
	if s.flags&types.CascadeConfig != 0 {
		groups, locks, err := readDocument(s.defaultsPath)
		if err != nil {
			return fmt.Errorf("load defaults overlay: %w", err)
		}
		mergeGroups(defaults, groups)
		for _, l := range locks {
			immutable[l] = true
		}
	}
	for _, l := range userLocks {
		immutable[l] = true
	}

	s.user = user
	s.userLocks = userLocks
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

// Write stores value under (group, key) in the user layer.
func (s *Store) Write(group, key, value string, flags types.WriteFlags) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return types.ErrStoreClosed
	}
	if s.immutable[lockKey(group, key)] {
		return types.ErrEntryImmutable
	}

	g, ok := s.user[group]
	if !ok {
		g = make(map[string]string)
		if s.user == nil {
			s.user = make(map[string]map[string]string)
		}
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

// RevertToDefault removes the user-layer entry for (group, key).
func (s *Store) RevertToDefault(group, key string, flags types.WriteFlags) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return types.ErrStoreClosed
	}
	if s.immutable[lockKey(group, key)] {
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

	if flags&types.WriteNoNotify == 0 {
		logging.L().Debug("entry reverted",
			zap.String("store", s.name), zap.String("group", group), zap.String("key", key))
	}
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
	return s.immutable[lockKey(group, key)]
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

// Sync writes the user layer to disk atomically (temp file + rename).
// A clean store is a no-op unless the file does not exist yet, in which
// case an empty document is materialized.
func (s *Store) Sync() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return types.ErrStoreClosed
	}
	if !s.dirty {
		if _, err := os.Stat(s.path); err == nil {
			return nil
		}
	}

	doc := document{
		Version:   1,
		Groups:    s.user,
		Immutable: s.userLocks,
	}
	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", s.name, err)
	}

	tmp, err := os.CreateTemp(s.dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", s.path, err)
	}

	s.dirty = false
	logging.L().Debug("store synced", zap.String("store", s.name), zap.String("path", s.path))
	return nil
}

// Close releases the store. Unsynced changes are discarded with a warning.
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
	return nil
}

// readDocument reads a store document from path. A missing file yields empty
// content, not an error.
func readDocument(path string) (map[string]map[string]string, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]map[string]string), nil, nil
		}
		return nil, nil, err
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, err
	}
	if doc.Groups == nil {
		doc.Groups = make(map[string]map[string]string)
	}
	return doc.Groups, doc.Immutable, nil
}

// mergeGroups copies src entries over dst, overriding on collision.
func mergeGroups(dst, src map[string]map[string]string) {
	for g, entries := range src {
		d, ok := dst[g]
		if !ok {
			d = make(map[string]string)
			dst[g] = d
		}
		for k, v := range entries {
			d[k] = v
		}
	}
}

func lookup(layer map[string]map[string]string, group, key string) (string, bool) {
	g, ok := layer[group]
	if !ok {
		return "", false
	}
	v, ok := g[key]
	return v, ok
}

func lockKey(group, key string) string {
	return group + "/" + key
}
