// Package shared deduplicates configuration stores across a process. Opening
// the same store tuple twice yields one underlying store behind
// reference-counted handles, so every component sees every write.
package shared

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/prefkit/prefkit/internal/logging"
	"github.com/prefkit/prefkit/internal/paths"
	sqlitestore "github.com/prefkit/prefkit/internal/sqlite"
	"github.com/prefkit/prefkit/internal/yamlfile"
	"github.com/prefkit/prefkit/pkg/types"
)

// cacheKey identifies one deduplicated store. Association is deliberately
// absent: it only steers directory resolution, and two requests that resolve
// to the same file share the same store.
type cacheKey struct {
	fileName string
	flags    types.OpenFlags
	location types.Location
}

// Handle is a reference-counted view of a cached store. Callers must
// Release every handle they open; the last release closes the store and
// evicts it, except for the main store, which the cache itself keeps alive
// until Close.
type Handle struct {
	types.Store

	cache *Cache
	key   cacheKey
	refs  int
}

// Release drops this reference. Closing the underlying store happens on the
// last release; the returned error is the store's Close error, nil
// otherwise. Releasing more times than the handle was opened is a no-op.
func (h *Handle) Release() error { return h.cache.release(h) }

// Cache deduplicates stores by (file name, open flags, location). All
// methods are safe for concurrent use.
type Cache struct {
	mu        sync.Mutex
	cfg       types.Config
	entries   map[cacheKey]*Handle
	main      *Handle
	testMode  bool
	flushOnce sync.Once
	log       *zap.Logger
}

// NewCache creates a cache opening stores with the given backend
// configuration. An empty backend selects yaml.
func NewCache(cfg types.Config) (*Cache, error) {
	if cfg.Backend == "" {
		cfg.Backend = types.BackendYAML
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Cache{
		cfg:      cfg,
		entries:  make(map[cacheKey]*Handle),
		testMode: paths.TestModeEnabled(),
		log:      logging.L().Named("shared"),
	}, nil
}

// OpenStore returns a handle on the store for the given tuple, opening it on
// first request. An empty file name with cascading flags resolves to the
// application's main configuration name; the exact combination of empty
// name, FullConfig and GenericConfigLocation designates the main store,
// which stays cached until Close.
func (c *Cache) OpenStore(assoc types.Association, fileName string, flags types.OpenFlags, loc types.Location) (*Handle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.checkTestMode()

	isMain := fileName == "" && flags == types.FullConfig && loc == types.GenericConfigLocation
	if fileName == "" && flags&(types.IncludeGlobals|types.CascadeConfig) != 0 {
		fileName = paths.MainConfigName()
	}

	key := cacheKey{fileName: fileName, flags: flags, location: loc}
	if h, ok := c.entries[key]; ok {
		h.refs++
		return h, nil
	}

	dir, err := paths.Resolve(c.cfg.Dir, loc, assoc)
	if err != nil {
		return nil, fmt.Errorf("resolve %s directory: %w", loc, err)
	}
	store, err := c.open(dir, fileName, flags)
	if err != nil {
		return nil, err
	}

	h := &Handle{Store: store, cache: c, key: key, refs: 1}
	c.entries[key] = h
	if isMain && c.main == nil {
		// The cache's own reference keeps the main store alive across
		// caller releases.
		c.main = h
		h.refs++
	}
	c.log.Debug("store opened",
		zap.String("file", fileName),
		zap.Stringer("flags", flags),
		zap.Stringer("location", loc),
		zap.Bool("main", isMain))
	return h, nil
}

// OpenStateStore returns a handle on a state store, created on first use.
// An empty name resolves to "<app>.state". State stores are plain user
// files with no defaults cascade.
func (c *Cache) OpenStateStore(fileName string) (*Handle, error) {
	if fileName == "" {
		fileName = paths.AppName() + ".state"
	}
	return c.OpenStore(types.NoAssociation, fileName, types.SimpleConfig, types.StateLocation)
}

func (c *Cache) open(dir, fileName string, flags types.OpenFlags) (types.Store, error) {
	switch c.cfg.Backend {
	case types.BackendYAML:
		return yamlfile.Open(dir, fileName, flags)
	case types.BackendSQLite:
		return sqlitestore.Open(dir, fileName, flags)
	default:
		return nil, fmt.Errorf("backend %q: %w", c.cfg.Backend, types.ErrBackendUnknown)
	}
}

// checkTestMode discards every cached handle when the process has switched
// into or out of test mode since the last open, so no store keeps pointing
// at the old directory tree. Caller holds c.mu.
func (c *Cache) checkTestMode() {
	now := paths.TestModeEnabled()
	if now == c.testMode {
		return
	}
	c.testMode = now
	for key, h := range c.entries {
		if err := h.Store.Close(); err != nil {
			c.log.Warn("closing store on test mode change",
				zap.String("file", key.fileName), zap.Error(err))
		}
		delete(c.entries, key)
	}
	c.main = nil
}

func (c *Cache) release(h *Handle) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if h.refs == 0 {
		return nil
	}
	h.refs--
	if h.refs > 0 {
		return nil
	}
	delete(c.entries, h.key)
	if c.main == h {
		c.main = nil
	}
	return h.Store.Close()
}

// Close flushes the main store, closes every cached store and empties the
// cache. The main-store flush happens at most once per cache even if Close
// is called again. Outstanding handles become inert; their Release calls
// are no-ops.
func (c *Cache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var firstErr error
	c.flushOnce.Do(func() {
		if c.main != nil {
			if err := c.main.Store.Sync(); err != nil {
				firstErr = err
			}
		}
	})
	for key, h := range c.entries {
		if err := h.Store.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		h.refs = 0
		delete(c.entries, key)
	}
	c.main = nil
	return firstErr
}
