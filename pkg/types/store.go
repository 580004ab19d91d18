package types

import "errors"

// Store is the persistence collaborator consumed by items and skeletons.
// A Store is a named container of grouped key/value entries with an optional
// defaults layer. Entry values are raw strings; typed encoding is the item
// layer's concern.
//
// A Store returned by the shared cache is aliased by every holder that
// requested the same identity: mutations (including Load) are immediately
// visible to all of them. Implementations must therefore be safe for
// concurrent use.
type Store interface {
	// Name returns the logical file name the store was opened with.
	Name() string

	// Read returns the raw value stored under (group, key) and whether the
	// entry exists. While the read-defaults toggle is on, only the defaults
	// layer is consulted; otherwise the user layer is preferred and the
	// defaults layer serves as fallback.
	Read(group, key string) (string, bool)

	// Write stores value under (group, key) in the user layer.
	// Returns ErrEntryImmutable if the key is locked down.
	Write(group, key, value string, flags WriteFlags) error

	// RevertToDefault removes the user-layer entry for (group, key) so the
	// entry falls back to its stored default, or to absence.
	RevertToDefault(group, key string, flags WriteFlags) error

	// HasDefault reports whether the defaults layer holds an explicit entry
	// for (group, key).
	HasDefault(group, key string) bool

	// SetReadDefaults toggles read-defaults mode. Callers flipping the toggle
	// must restore the prior state afterwards.
	SetReadDefaults(on bool)

	// ReadDefaults reports the current state of the read-defaults toggle.
	ReadDefaults() bool

	// IsEntryImmutable reports whether (group, key) may not be modified.
	IsEntryImmutable(group, key string) bool

	// Groups returns the group names present in the store, sorted.
	Groups() []string

	// Keys returns the keys present in group, sorted.
	Keys(group string) []string

	// Load (re)reads the store's content from persistent storage, replacing
	// the in-memory state. Unsynced writes are discarded.
	Load() error

	// Sync commits in-memory changes to persistent storage.
	Sync() error

	// Close releases the store's resources. A Close after Close is a no-op.
	Close() error
}

// Store access errors.
var (
	ErrStoreClosed    = errors.New("store is closed")
	ErrEntryImmutable = errors.New("entry is immutable")
)

// Item and registry errors.
var (
	ErrTypeMismatch  = errors.New("value type mismatch")
	ErrDuplicateName = errors.New("duplicate item name")
	ErrItemNotFound  = errors.New("item not found")
)
