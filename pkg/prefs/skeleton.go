package prefs

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/prefkit/prefkit/internal/logging"
	"github.com/prefkit/prefkit/pkg/types"
)

// Hooks are optional extension points run by the bulk operations, for
// application state that lives next to the registered items.
type Hooks struct {
	// Read runs after every item has re-read its entry.
	Read func()
	// Save runs after every item has written its entry and before the
	// store commit. A returned error aborts the commit.
	Save func() error
	// SetDefaults runs after every item has been reset to its default.
	SetDefaults func()
	// UseDefaults runs on each effective defaults-mode transition, before
	// the items swap. Returning true claims the transition and skips the
	// built-in swap.
	UseDefaults func(enable bool) bool
}

// Skeleton is an ordered registry of items sharing one store. Items are
// addressed by a registry-unique name; bulk operations visit them in
// registration order.
//
// A Skeleton is not safe for concurrent use; confine each instance to one
// goroutine or guard it externally.
type Skeleton struct {
	store types.Store

	currentGroup  string
	items         []Item
	byName        map[string]Item
	usingDefaults bool

	// Hooks may be set any time before the bulk operations run.
	Hooks Hooks

	configChanged func()
	log           *zap.Logger
}

// NewSkeleton creates an empty registry over store.
func NewSkeleton(store types.Store) *Skeleton {
	return &Skeleton{
		store:  store,
		byName: make(map[string]Item),
		log:    logging.L().Named("prefs"),
	}
}

// Store returns the backing store.
func (s *Skeleton) Store() types.Store { return s.store }

// CurrentGroup returns the group assigned to items added next.
func (s *Skeleton) CurrentGroup() string { return s.currentGroup }

// SetCurrentGroup moves the group cursor used by the Add* constructors.
func (s *Skeleton) SetCurrentGroup(group string) { s.currentGroup = group }

// SetConfigChangedFunc installs the hook run by NotifyConfigChanged.
func (s *Skeleton) SetConfigChangedFunc(fn func()) { s.configChanged = fn }

// NotifyConfigChanged invokes the configuration-changed hook, if any. It is
// meant to be called by whoever observes that this skeleton's store was
// updated elsewhere, typically after a save in another component.
func (s *Skeleton) NotifyConfigChanged() {
	if s.configChanged != nil {
		s.configChanged()
	}
}

// AddItem registers an item under the given name, or under the item's own
// name (falling back to its key) when name is empty. The item's entry is
// read immediately. Names must be unique per skeleton; keys need not be.
func (s *Skeleton) AddItem(item Item, name string) error {
	if name != "" {
		item.SetName(name)
	}
	if item.Name() == "" {
		item.SetName(item.Key())
	}
	if _, exists := s.byName[item.Name()]; exists {
		return fmt.Errorf("item %q: %w", item.Name(), types.ErrDuplicateName)
	}
	s.items = append(s.items, item)
	s.byName[item.Name()] = item
	item.ReadConfig(s.store)
	return nil
}

// FindItem returns the item registered under name, or nil.
func (s *Skeleton) FindItem(name string) Item { return s.byName[name] }

// Property returns the named item's current value, boxed.
func (s *Skeleton) Property(name string) (any, error) {
	item, ok := s.byName[name]
	if !ok {
		return nil, fmt.Errorf("item %q: %w", name, types.ErrItemNotFound)
	}
	return item.Property(), nil
}

// SetProperty assigns a boxed value to the named item.
func (s *Skeleton) SetProperty(name string, v any) error {
	item, ok := s.byName[name]
	if !ok {
		return fmt.Errorf("item %q: %w", name, types.ErrItemNotFound)
	}
	return item.SetProperty(v)
}

// Items returns the registered items in registration order.
func (s *Skeleton) Items() []Item { return s.items }

// RemoveItem unregisters the named item. Unknown names are ignored.
func (s *Skeleton) RemoveItem(name string) {
	item, ok := s.byName[name]
	if !ok {
		return
	}
	delete(s.byName, name)
	for i, it := range s.items {
		if it == item {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
}

// ClearItems unregisters every item.
func (s *Skeleton) ClearItems() {
	s.items = nil
	s.byName = make(map[string]Item)
}

// Load reloads the store from its persistent form, then re-reads every item.
func (s *Skeleton) Load() error {
	if err := s.store.Load(); err != nil {
		return err
	}
	s.Read()
	return nil
}

// Read re-reads every item from the store's in-memory state, then runs the
// Read hook.
func (s *Skeleton) Read() {
	for _, item := range s.items {
		item.ReadConfig(s.store)
	}
	if s.Hooks.Read != nil {
		s.Hooks.Read()
	}
}

// Save writes every changed item and commits the store. Individual item
// write failures are logged and skipped so one bad entry cannot hold the
// rest hostage; only the Save hook and the commit itself can fail the call.
func (s *Skeleton) Save() error {
	for _, item := range s.items {
		if err := item.WriteConfig(s.store); err != nil {
			s.log.Warn("item write failed",
				zap.String("name", item.Name()),
				zap.String("group", item.Group()),
				zap.String("key", item.Key()),
				zap.Error(err))
		}
	}
	if s.Hooks.Save != nil {
		if err := s.Hooks.Save(); err != nil {
			return err
		}
	}
	return s.store.Sync()
}

// SetDefaults resets every item to its default value, then runs the
// SetDefaults hook. Nothing is persisted until Save.
func (s *Skeleton) SetDefaults() {
	for _, item := range s.items {
		item.SetDefault()
	}
	if s.Hooks.SetDefaults != nil {
		s.Hooks.SetDefaults()
	}
}

// UseDefaults switches defaults mode. Enabling swaps every item's current
// and default values so the defaults become live; disabling swaps them back.
// Calling it twice with the same argument is a no-op the second time. The
// prior mode is returned so callers can restore it.
func (s *Skeleton) UseDefaults(enable bool) bool {
	if enable == s.usingDefaults {
		return enable
	}
	prior := s.usingDefaults
	s.usingDefaults = enable
	if s.Hooks.UseDefaults != nil && s.Hooks.UseDefaults(enable) {
		return prior
	}
	for _, item := range s.items {
		item.SwapDefault()
	}
	return prior
}

// IsDefaults reports whether every item currently holds its default value.
func (s *Skeleton) IsDefaults() bool {
	for _, item := range s.items {
		if !item.IsDefault() {
			return false
		}
	}
	return true
}

// IsSaveNeeded reports whether any item has unsaved changes.
func (s *Skeleton) IsSaveNeeded() bool {
	for _, item := range s.items {
		if item.IsSaveNeeded() {
			return true
		}
	}
	return false
}

// IsImmutable reports whether the named item is immutable. Unknown names
// report false.
func (s *Skeleton) IsImmutable(name string) bool {
	item, ok := s.byName[name]
	return ok && item.IsImmutable()
}

// Convenience constructors. Each creates an item in the current group,
// registers it under name (empty name means the key), and returns the typed
// item for further configuration such as bounds or labels.

func (s *Skeleton) AddBool(key string, ref *bool, def bool, name string) (*ItemBool, error) {
	item := NewBool(s.currentGroup, key, ref, def)
	return item, s.AddItem(item, name)
}

func (s *Skeleton) AddInt(key string, ref *int32, def int32, name string) (*ItemInt, error) {
	item := NewInt(s.currentGroup, key, ref, def)
	return item, s.AddItem(item, name)
}

func (s *Skeleton) AddInt64(key string, ref *int64, def int64, name string) (*ItemInt64, error) {
	item := NewInt64(s.currentGroup, key, ref, def)
	return item, s.AddItem(item, name)
}

func (s *Skeleton) AddUInt(key string, ref *uint32, def uint32, name string) (*ItemUInt, error) {
	item := NewUInt(s.currentGroup, key, ref, def)
	return item, s.AddItem(item, name)
}

func (s *Skeleton) AddUInt64(key string, ref *uint64, def uint64, name string) (*ItemUInt64, error) {
	item := NewUInt64(s.currentGroup, key, ref, def)
	return item, s.AddItem(item, name)
}

func (s *Skeleton) AddFloat(key string, ref *float64, def float64, name string) (*ItemFloat, error) {
	item := NewFloat(s.currentGroup, key, ref, def)
	return item, s.AddItem(item, name)
}

func (s *Skeleton) AddString(key string, ref *string, def string, name string) (*ItemString, error) {
	item := NewString(s.currentGroup, key, ref, def)
	return item, s.AddItem(item, name)
}

func (s *Skeleton) AddPassword(key string, ref *string, def string, name string) (*ItemString, error) {
	item := NewPassword(s.currentGroup, key, ref, def)
	return item, s.AddItem(item, name)
}

func (s *Skeleton) AddPath(key string, ref *string, def string, name string) (*ItemString, error) {
	item := NewPath(s.currentGroup, key, ref, def)
	return item, s.AddItem(item, name)
}

func (s *Skeleton) AddStringList(key string, ref *[]string, def []string, name string) (*ItemStringList, error) {
	item := NewStringList(s.currentGroup, key, ref, def)
	return item, s.AddItem(item, name)
}

func (s *Skeleton) AddIntList(key string, ref *[]int, def []int, name string) (*ItemIntList, error) {
	item := NewIntList(s.currentGroup, key, ref, def)
	return item, s.AddItem(item, name)
}

func (s *Skeleton) AddPathList(key string, ref *[]string, def []string, name string) (*ItemStringList, error) {
	item := NewPathList(s.currentGroup, key, ref, def)
	return item, s.AddItem(item, name)
}

func (s *Skeleton) AddDateTime(key string, ref *time.Time, def time.Time, name string) (*ItemDateTime, error) {
	item := NewDateTime(s.currentGroup, key, ref, def)
	return item, s.AddItem(item, name)
}

func (s *Skeleton) AddPoint(key string, ref *Point, def Point, name string) (*ItemPoint, error) {
	item := NewPoint(s.currentGroup, key, ref, def)
	return item, s.AddItem(item, name)
}

func (s *Skeleton) AddSize(key string, ref *Size, def Size, name string) (*ItemSize, error) {
	item := NewSize(s.currentGroup, key, ref, def)
	return item, s.AddItem(item, name)
}

func (s *Skeleton) AddRect(key string, ref *Rect, def Rect, name string) (*ItemRect, error) {
	item := NewRect(s.currentGroup, key, ref, def)
	return item, s.AddItem(item, name)
}

func (s *Skeleton) AddDynamic(key string, ref *any, def any, name string) (*ItemDynamic, error) {
	item := NewDynamic(s.currentGroup, key, ref, def)
	return item, s.AddItem(item, name)
}

func (s *Skeleton) AddEnum(key string, ref *int32, def int32, choices []Choice, name string) (*ItemEnum, error) {
	item := NewEnum(s.currentGroup, key, ref, def, choices)
	return item, s.AddItem(item, name)
}
