package prefs

import (
	"reflect"

	"github.com/prefkit/prefkit/pkg/types"
)

// PropertyItem adapts a value that lives behind getter and setter closures
// instead of a bound variable. Store reads and writes are no-ops; the value
// is owned by whatever the closures reach into. Because there is no loaded
// value to compare against, IsSaveNeeded always reports false.
type PropertyItem struct {
	baseItem

	get    func() any
	set    func(any)
	def    any
	notify func()
}

// NewPropertyItem creates a property-backed item. The name doubles as the
// item's key for registry purposes.
func NewPropertyItem(name string, get func() any, set func(any), def any) *PropertyItem {
	return &PropertyItem{
		baseItem: baseItem{key: name, name: name},
		get:      get,
		set:      set,
		def:      def,
	}
}

// SetNotifyFunc installs a hook fired whenever SetProperty or SetDefault
// actually changes the value.
func (it *PropertyItem) SetNotifyFunc(fn func()) { it.notify = fn }

// ReadConfig is a no-op; the value does not live in a store.
func (it *PropertyItem) ReadConfig(types.Store) {}

// WriteConfig is a no-op; the value does not live in a store.
func (it *PropertyItem) WriteConfig(types.Store) error { return nil }

// ReadDefault captures the live property value as the default.
func (it *PropertyItem) ReadDefault(types.Store) { it.def = it.get() }

// SetProperty assigns the value through the setter. The notify hook fires
// only when the value actually changes.
func (it *PropertyItem) SetProperty(v any) error {
	if reflect.DeepEqual(it.get(), v) {
		return nil
	}
	it.set(v)
	if it.notify != nil {
		it.notify()
	}
	return nil
}

func (it *PropertyItem) Property() any { return it.get() }

func (it *PropertyItem) IsEqual(v any) bool { return reflect.DeepEqual(it.get(), v) }

func (it *PropertyItem) MinValue() any { return nil }
func (it *PropertyItem) MaxValue() any { return nil }

// SetDefault resets the value to the default through the setter.
func (it *PropertyItem) SetDefault() {
	_ = it.SetProperty(it.def)
}

// SwapDefault exchanges the live value and the default.
func (it *PropertyItem) SwapDefault() {
	current := it.get()
	_ = it.SetProperty(it.def)
	it.def = current
}

func (it *PropertyItem) IsDefault() bool { return reflect.DeepEqual(it.get(), it.def) }

// IsSaveNeeded reports false; there is no persisted state to diverge from.
func (it *PropertyItem) IsSaveNeeded() bool { return false }

func (it *PropertyItem) Default() any { return it.def }

// SignallingItem wraps another item and invokes a fixed callback with an
// opaque token after every mutating operation. The callback fires whether or
// not the operation changed anything; consumers that care must compare.
type SignallingItem struct {
	Item

	token  uint64
	notify func(uint64)
}

// NewSignallingItem wraps item so that notify(token) runs after each
// mutating call.
func NewSignallingItem(item Item, token uint64, notify func(uint64)) *SignallingItem {
	return &SignallingItem{Item: item, token: token, notify: notify}
}

func (it *SignallingItem) emit() {
	if it.notify != nil {
		it.notify(it.token)
	}
}

func (it *SignallingItem) ReadConfig(store types.Store) {
	it.Item.ReadConfig(store)
	it.emit()
}

func (it *SignallingItem) WriteConfig(store types.Store) error {
	err := it.Item.WriteConfig(store)
	it.emit()
	return err
}

func (it *SignallingItem) ReadDefault(store types.Store) {
	it.Item.ReadDefault(store)
	it.emit()
}

func (it *SignallingItem) SetProperty(v any) error {
	err := it.Item.SetProperty(v)
	it.emit()
	return err
}

func (it *SignallingItem) SetDefault() {
	it.Item.SetDefault()
	it.emit()
}

func (it *SignallingItem) SwapDefault() {
	it.Item.SwapDefault()
	it.emit()
}
