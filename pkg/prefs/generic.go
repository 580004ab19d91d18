package prefs

import (
	"cmp"
	"fmt"

	"github.com/prefkit/prefkit/pkg/types"
)

// GenericItem is the core implementation behind every concrete item kind.
// It binds a caller-owned variable (ref) to one store entry and tracks the
// default and last-loaded values alongside it.
type GenericItem[T any] struct {
	baseItem

	ref    *T
	def    T
	loaded T

	codec codec[T]
	eq    func(a, b T) bool
	conv  func(any) (T, error)
}

func newGenericItem[T any](group, key, name string, ref *T, def T,
	c codec[T], eq func(a, b T) bool, conv func(any) (T, error)) *GenericItem[T] {
	it := &GenericItem[T]{
		baseItem: baseItem{group: group, key: key, name: name},
		ref:      ref,
		def:      def,
		loaded:   def,
		codec:    c,
		eq:       eq,
		conv:     conv,
	}
	*ref = def
	return it
}

// Value returns the current value.
func (it *GenericItem[T]) Value() T { return *it.ref }

// SetValue assigns the current value directly, bypassing immutability. Use
// SetProperty for the checked path.
func (it *GenericItem[T]) SetValue(v T) { *it.ref = v }

// DefaultValue returns the default value without boxing.
func (it *GenericItem[T]) DefaultValue() T { return it.def }

// ReadConfig loads the entry from the store. A missing entry leaves the
// current value alone; a present entry that fails to decode falls back to
// the default. Immutability is refreshed in every case.
func (it *GenericItem[T]) ReadConfig(store types.Store) {
	raw, ok := store.Read(it.group, it.key)
	if ok {
		v, err := it.codec.decode(raw)
		if err != nil {
			v = it.def
		}
		*it.ref = v
		it.loaded = v
	}
	it.readImmutability(store)
}

// WriteConfig persists the current value when it differs from the loaded
// one. A current value equal to the default reverts the entry when the
// store itself has no default for it, so the entry disappears rather than
// shadowing the built-in default.
func (it *GenericItem[T]) WriteConfig(store types.Store) error {
	if it.eq(*it.ref, it.loaded) && it.writeFlags&types.WriteForce == 0 {
		return nil
	}
	var err error
	if it.eq(*it.ref, it.def) && !store.HasDefault(it.group, it.key) {
		err = store.RevertToDefault(it.group, it.key, it.writeFlags)
	} else {
		err = store.Write(it.group, it.key, it.codec.encode(*it.ref), it.writeFlags)
	}
	if err != nil {
		return err
	}
	it.loaded = *it.ref
	return nil
}

// ReadDefault reads the entry with the store's read-defaults mode enabled
// and captures the result as this item's default. The store's mode is put
// back the way it was found.
func (it *GenericItem[T]) ReadDefault(store types.Store) {
	prior := store.ReadDefaults()
	store.SetReadDefaults(true)
	it.ReadConfig(store)
	store.SetReadDefaults(prior)
	it.def = *it.ref
}

// SetProperty converts a boxed value to the item's kind and assigns it.
func (it *GenericItem[T]) SetProperty(v any) error {
	if it.immutable {
		return fmt.Errorf("%s/%s: %w", it.group, it.key, types.ErrEntryImmutable)
	}
	converted, err := it.conv(v)
	if err != nil {
		return fmt.Errorf("%s/%s: %w: %v", it.group, it.key, types.ErrTypeMismatch, err)
	}
	*it.ref = converted
	return nil
}

// Property returns the current value, boxed.
func (it *GenericItem[T]) Property() any { return *it.ref }

// IsEqual reports whether the boxed value converts to the item's kind and
// equals the current value.
func (it *GenericItem[T]) IsEqual(v any) bool {
	converted, err := it.conv(v)
	if err != nil {
		return false
	}
	return it.eq(*it.ref, converted)
}

// MinValue returns nil; the base kind has no bounds.
func (it *GenericItem[T]) MinValue() any { return nil }

// MaxValue returns nil; the base kind has no bounds.
func (it *GenericItem[T]) MaxValue() any { return nil }

// SetDefault resets the current value to the default.
func (it *GenericItem[T]) SetDefault() { *it.ref = it.def }

// SwapDefault exchanges the current and default values. Applying it twice
// restores the original state.
func (it *GenericItem[T]) SwapDefault() {
	it.def, *it.ref = *it.ref, it.def
}

// IsDefault reports whether the current value equals the default.
func (it *GenericItem[T]) IsDefault() bool { return it.eq(*it.ref, it.def) }

// IsSaveNeeded reports whether the current value differs from the value
// last loaded from or written to the store.
func (it *GenericItem[T]) IsSaveNeeded() bool { return !it.eq(*it.ref, it.loaded) }

// Default returns the default value, boxed.
func (it *GenericItem[T]) Default() any { return it.def }

// RangedItem is a GenericItem for ordered kinds with optional bounds.
// Values read from the store are clamped into the bounds; direct mutation
// and SetProperty are not, the bounds are advisory metadata for validating
// callers.
type RangedItem[T cmp.Ordered] struct {
	GenericItem[T]

	hasMin, hasMax bool
	min, max       T
}

func newRangedItem[T cmp.Ordered](group, key, name string, ref *T, def T,
	c codec[T], conv func(any) (T, error)) *RangedItem[T] {
	it := &RangedItem[T]{}
	it.GenericItem = *newGenericItem(group, key, name, ref, def,
		c, func(a, b T) bool { return a == b }, conv)
	return it
}

// SetMinValue sets the lower bound.
func (it *RangedItem[T]) SetMinValue(min T) {
	it.hasMin, it.min = true, min
}

// SetMaxValue sets the upper bound.
func (it *RangedItem[T]) SetMaxValue(max T) {
	it.hasMax, it.max = true, max
}

// MinValue returns the lower bound, or nil when unset.
func (it *RangedItem[T]) MinValue() any {
	if !it.hasMin {
		return nil
	}
	return it.min
}

// MaxValue returns the upper bound, or nil when unset.
func (it *RangedItem[T]) MaxValue() any {
	if !it.hasMax {
		return nil
	}
	return it.max
}

func (it *RangedItem[T]) clamp(v T) T {
	if it.hasMin && v < it.min {
		return it.min
	}
	if it.hasMax && v > it.max {
		return it.max
	}
	return v
}

// ReadConfig loads the entry and clamps the result into the bounds. The
// loaded value records the clamped result, so a plain read of an
// out-of-bounds entry does not leave the item reporting unsaved changes.
func (it *RangedItem[T]) ReadConfig(store types.Store) {
	raw, ok := store.Read(it.group, it.key)
	if ok {
		v, err := it.codec.decode(raw)
		if err != nil {
			v = it.def
		}
		v = it.clamp(v)
		*it.ref = v
		it.loaded = v
	}
	it.readImmutability(store)
}

// ReadDefault captures the store default, clamped into the bounds.
func (it *RangedItem[T]) ReadDefault(store types.Store) {
	prior := store.ReadDefaults()
	store.SetReadDefaults(true)
	it.ReadConfig(store)
	store.SetReadDefaults(prior)
	it.def = *it.ref
}

