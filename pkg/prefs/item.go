package prefs

import (
	"github.com/prefkit/prefkit/pkg/types"
)

// Item is one preferences setting. Implementations store a value of a
// concrete kind and know how to move it between the live variable, its
// default, and a types.Store entry.
//
// The kind set is closed: every supported kind is built from the generic
// item core in this package, there is no open subclassing.
type Item interface {
	// Group returns the store group the item's entry lives in.
	Group() string
	// SetGroup changes the store group.
	SetGroup(group string)

	// Key returns the store entry key.
	Key() string
	// SetKey changes the store entry key.
	SetKey(key string)

	// Name returns the registry-unique identifier, which may differ from Key.
	Name() string
	// SetName changes the registry identifier.
	SetName(name string)

	// Label returns the one-line display description.
	Label() string
	// SetLabel sets the one-line display description.
	SetLabel(label string)

	// ToolTip returns the tooltip description.
	ToolTip() string
	// SetToolTip sets the tooltip description.
	SetToolTip(tip string)

	// WhatsThis returns the long-form description.
	WhatsThis() string
	// SetWhatsThis sets the long-form description.
	SetWhatsThis(text string)

	// WriteFlags returns the persistence hints passed to store writes.
	WriteFlags() types.WriteFlags
	// SetWriteFlags sets the persistence hints.
	SetWriteFlags(flags types.WriteFlags)

	// ReadConfig loads the current value from the store. A missing entry
	// leaves the current value untouched; absence is not an error. The
	// item's immutability is refreshed from the store either way.
	ReadConfig(store types.Store)

	// WriteConfig persists the current value. An unchanged value is a no-op
	// unless WriteForce is set; a value equal to the default with no stored
	// default reverts the entry instead of writing it. The loaded value is
	// updated only on success.
	WriteConfig(store types.Store) error

	// ReadDefault re-reads the entry in the store's read-defaults mode and
	// captures the result as the item's default. The store's toggle is
	// restored to its prior state.
	ReadDefault(store types.Store)

	// SetProperty assigns a boxed value, converting it to the item's kind.
	// Returns types.ErrTypeMismatch when the conversion fails and
	// types.ErrEntryImmutable when the item is immutable; the item is
	// unchanged in both cases.
	SetProperty(v any) error

	// Property returns the current value, boxed.
	Property() any

	// IsEqual reports whether the boxed value converts to the item's kind
	// and equals the current value. Equality is kind-aware.
	IsEqual(v any) bool

	// MinValue returns the lower bound, or nil when the kind is unbounded.
	MinValue() any

	// MaxValue returns the upper bound, or nil when the kind is unbounded.
	MaxValue() any

	// SetDefault sets the current value to the default value.
	SetDefault()

	// SwapDefault exchanges the current and default values.
	SwapDefault()

	// IsImmutable reports whether the store forbids changing this entry,
	// as of the last read.
	IsImmutable() bool

	// IsDefault reports whether the current value equals the default.
	IsDefault() bool

	// IsSaveNeeded reports whether the current value differs from the last
	// successfully loaded or written value.
	IsSaveNeeded() bool

	// Default returns the default value, boxed.
	Default() any
}

// baseItem carries the identity and display metadata shared by every item.
type baseItem struct {
	group     string
	key       string
	name      string
	label     string
	toolTip   string
	whatsThis string

	writeFlags types.WriteFlags
	immutable  bool
}

func (b *baseItem) Group() string { return b.group }

func (b *baseItem) SetGroup(group string) { b.group = group }

func (b *baseItem) Key() string { return b.key }

func (b *baseItem) SetKey(key string) { b.key = key }

func (b *baseItem) Name() string { return b.name }

func (b *baseItem) SetName(name string) { b.name = name }

func (b *baseItem) Label() string { return b.label }

func (b *baseItem) SetLabel(label string) { b.label = label }

func (b *baseItem) ToolTip() string { return b.toolTip }

func (b *baseItem) SetToolTip(tip string) { b.toolTip = tip }

func (b *baseItem) WhatsThis() string { return b.whatsThis }

func (b *baseItem) SetWhatsThis(t string) { b.whatsThis = t }

func (b *baseItem) IsImmutable() bool { return b.immutable }

func (b *baseItem) WriteFlags() types.WriteFlags { return b.writeFlags }
func (b *baseItem) SetWriteFlags(flags types.WriteFlags) { b.writeFlags = flags }

// readImmutability refreshes the cached immutability from the store.
func (b *baseItem) readImmutability(store types.Store) {
	b.immutable = store.IsEntryImmutable(b.group, b.key)
}
