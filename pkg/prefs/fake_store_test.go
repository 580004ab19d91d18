package prefs

import (
	"fmt"
	"sort"
	"strings"

	"github.com/prefkit/prefkit/pkg/types"
)

// fakeStore is an in-memory types.Store for unit tests. Entries are keyed
// "Group/Key"; the counters record how often each mutating path ran.
type fakeStore struct {
	user      map[string]string
	defaults  map[string]string
	immutable map[string]bool

	readDefaults bool
	closed       bool

	writes  int
	reverts int
	syncs   int
	loads   int
	syncErr error
}

var _ types.Store = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{
		user:      make(map[string]string),
		defaults:  make(map[string]string),
		immutable: make(map[string]bool),
	}
}

func entryKey(group, key string) string { return group + "/" + key }

func (f *fakeStore) Name() string { return "fake" }

func (f *fakeStore) Read(group, key string) (string, bool) {
	k := entryKey(group, key)
	if f.readDefaults {
		v, ok := f.defaults[k]
		return v, ok
	}
	if v, ok := f.user[k]; ok {
		return v, true
	}
	v, ok := f.defaults[k]
	return v, ok
}

func (f *fakeStore) Write(group, key, value string, flags types.WriteFlags) error {
	k := entryKey(group, key)
	if f.immutable[k] {
		return fmt.Errorf("%s: %w", k, types.ErrEntryImmutable)
	}
	f.user[k] = value
	f.writes++
	return nil
}

func (f *fakeStore) RevertToDefault(group, key string, flags types.WriteFlags) error {
	delete(f.user, entryKey(group, key))
	f.reverts++
	return nil
}

func (f *fakeStore) HasDefault(group, key string) bool {
	_, ok := f.defaults[entryKey(group, key)]
	return ok
}

func (f *fakeStore) SetReadDefaults(on bool) { f.readDefaults = on }
func (f *fakeStore) ReadDefaults() bool { return f.readDefaults }

func (f *fakeStore) IsEntryImmutable(group, key string) bool {
	return f.immutable[entryKey(group, key)]
}

func (f *fakeStore) Groups() []string {
	seen := make(map[string]bool)
	for k := range f.user {
		seen[strings.SplitN(k, "/", 2)[0]] = true
	}
	for k := range f.defaults {
		seen[strings.SplitN(k, "/", 2)[0]] = true
	}
	groups := make([]string, 0, len(seen))
	for g := range seen {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	return groups
}

func (f *fakeStore) Keys(group string) []string {
	seen := make(map[string]bool)
	for _, layer := range []map[string]string{f.user, f.defaults} {
		for k := range layer {
			parts := strings.SplitN(k, "/", 2)
			if parts[0] == group {
				seen[parts[1]] = true
			}
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (f *fakeStore) Load() error {
	f.loads++
	return nil
}

func (f *fakeStore) Sync() error {
	f.syncs++
	return f.syncErr
}

func (f *fakeStore) Close() error {
	f.closed = true
	return nil
}
