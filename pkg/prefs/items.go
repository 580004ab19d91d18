package prefs

import (
	"reflect"
	"slices"
	"time"
)

// Concrete item kinds. The set is closed; every kind is a specialization of
// GenericItem or RangedItem with its own codec and conversion.
type (
	ItemBool       = GenericItem[bool]
	ItemInt        = RangedItem[int32]
	ItemInt64      = RangedItem[int64]
	ItemUInt       = RangedItem[uint32]
	ItemUInt64     = RangedItem[uint64]
	ItemFloat      = RangedItem[float64]
	ItemString     = GenericItem[string]
	ItemStringList = GenericItem[[]string]
	ItemIntList    = GenericItem[[]int]
	ItemDateTime   = GenericItem[time.Time]
	ItemPoint      = GenericItem[Point]
	ItemSize       = GenericItem[Size]
	ItemRect       = GenericItem[Rect]
	ItemDynamic    = GenericItem[any]
)

// NewBool creates a bool item bound to ref. The item's name defaults to key.
func NewBool(group, key string, ref *bool, def bool) *ItemBool {
	return newGenericItem(group, key, key, ref, def,
		boolCodec(), func(a, b bool) bool { return a == b }, convBool)
}

// NewInt creates a signed 32-bit integer item with optional bounds.
func NewInt(group, key string, ref *int32, def int32) *ItemInt {
	return newRangedItem(group, key, key, ref, def, int32Codec(), convInt32)
}

// NewInt64 creates a signed 64-bit integer item with optional bounds.
func NewInt64(group, key string, ref *int64, def int64) *ItemInt64 {
	return newRangedItem(group, key, key, ref, def, int64Codec(), convInt64)
}

// NewUInt creates an unsigned 32-bit integer item with optional bounds.
func NewUInt(group, key string, ref *uint32, def uint32) *ItemUInt {
	return newRangedItem(group, key, key, ref, def, uint32Codec(), convUint32)
}

// NewUInt64 creates an unsigned 64-bit integer item with optional bounds.
func NewUInt64(group, key string, ref *uint64, def uint64) *ItemUInt64 {
	return newRangedItem(group, key, key, ref, def, uint64Codec(), convUint64)
}

// NewFloat creates a float64 item with optional bounds.
func NewFloat(group, key string, ref *float64, def float64) *ItemFloat {
	return newRangedItem(group, key, key, ref, def, float64Codec(), convFloat64)
}

// NewString creates a plain string item.
func NewString(group, key string, ref *string, def string) *ItemString {
	return newGenericItem(group, key, key, ref, def,
		stringCodec(), func(a, b string) bool { return a == b }, convString)
}

// NewPassword creates a string item whose stored form is obscured. The
// obscuring is reversible and only keeps the value out of casual view; it is
// not encryption.
func NewPassword(group, key string, ref *string, def string) *ItemString {
	return newGenericItem(group, key, key, ref, def,
		passwordCodec(), func(a, b string) bool { return a == b }, convString)
}

// NewPath creates a string item holding a filesystem path. Environment
// variables and a leading "~" are expanded when the value is read from the
// store; the written form is kept as assigned.
func NewPath(group, key string, ref *string, def string) *ItemString {
	return newGenericItem(group, key, key, ref, def,
		pathCodec(), func(a, b string) bool { return a == b }, convString)
}

// NewStringList creates a []string item.
func NewStringList(group, key string, ref *[]string, def []string) *ItemStringList {
	return newGenericItem(group, key, key, ref, def,
		stringListCodec(), slices.Equal, convStringList)
}

// NewIntList creates a []int item.
func NewIntList(group, key string, ref *[]int, def []int) *ItemIntList {
	return newGenericItem(group, key, key, ref, def,
		intListCodec(), slices.Equal, convIntList)
}

// NewPathList creates a []string item of filesystem paths, each expanded the
// same way NewPath expands a single path.
func NewPathList(group, key string, ref *[]string, def []string) *ItemStringList {
	return newGenericItem(group, key, key, ref, def,
		pathListCodec(), slices.Equal, convStringList)
}

// NewDateTime creates a time.Time item stored in RFC 3339 form.
func NewDateTime(group, key string, ref *time.Time, def time.Time) *ItemDateTime {
	return newGenericItem(group, key, key, ref, def,
		timeCodec(), func(a, b time.Time) bool { return a.Equal(b) }, convTime)
}

// NewPoint creates a Point item.
func NewPoint(group, key string, ref *Point, def Point) *ItemPoint {
	return newGenericItem(group, key, key, ref, def,
		pointCodec(), func(a, b Point) bool { return a == b }, convPoint)
}

// NewSize creates a Size item.
func NewSize(group, key string, ref *Size, def Size) *ItemSize {
	return newGenericItem(group, key, key, ref, def,
		sizeCodec(), func(a, b Size) bool { return a == b }, convSize)
}

// NewRect creates a Rect item.
func NewRect(group, key string, ref *Rect, def Rect) *ItemRect {
	return newGenericItem(group, key, key, ref, def,
		rectCodec(), func(a, b Rect) bool { return a == b }, convRect)
}

// NewDynamic creates an item holding an arbitrary value, stored as JSON.
// Equality is deep.
func NewDynamic(group, key string, ref *any, def any) *ItemDynamic {
	return newGenericItem(group, key, key, ref, def,
		dynamicCodec(), reflect.DeepEqual, convDynamic)
}
