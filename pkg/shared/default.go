package shared

import (
	"sync"

	"github.com/prefkit/prefkit/pkg/types"
)

// The process-wide cache. Nothing runs at process exit on its behalf;
// programs that save through it must call Teardown (or Save on their
// skeletons) before exiting.
var (
	defaultMu    sync.Mutex
	defaultCache *Cache
)

// Default returns the process-wide cache, creating it with the yaml backend
// on first use.
func Default() *Cache {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultCache == nil {
		defaultCache, _ = NewCache(types.Config{Backend: types.BackendYAML})
	}
	return defaultCache
}

// Configure replaces the process-wide cache with one using cfg. An existing
// cache is closed first, flushing its main store.
func Configure(cfg types.Config) error {
	c, err := NewCache(cfg)
	if err != nil {
		return err
	}
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultCache != nil {
		if cerr := defaultCache.Close(); cerr != nil {
			defaultCache = c
			return cerr
		}
	}
	defaultCache = c
	return nil
}

// OpenStore opens a store through the process-wide cache.
func OpenStore(assoc types.Association, fileName string, flags types.OpenFlags, loc types.Location) (*Handle, error) {
	return Default().OpenStore(assoc, fileName, flags, loc)
}

// OpenMainStore opens the application's main configuration store through
// the process-wide cache.
func OpenMainStore() (*Handle, error) {
	return Default().OpenStore(types.NoAssociation, "", types.FullConfig, types.GenericConfigLocation)
}

// OpenStateStore opens a state store through the process-wide cache.
func OpenStateStore(fileName string) (*Handle, error) {
	return Default().OpenStateStore(fileName)
}

// Teardown closes the process-wide cache, flushing its main store. It is
// safe to call when the cache was never used.
func Teardown() error {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultCache == nil {
		return nil
	}
	err := defaultCache.Close()
	defaultCache = nil
	return err
}
