package prefs

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// codec serializes one value kind to and from a raw store entry. Stores only
// ever see strings; every typed encoding lives here.
type codec[T any] struct {
	encode func(T) string
	decode func(string) (T, error)
}

func boolCodec() codec[bool] {
	return codec[bool]{
		encode: strconv.FormatBool,
		decode: strconv.ParseBool,
	}
}

func int32Codec() codec[int32] {
	return codec[int32]{
		encode: func(v int32) string { return strconv.FormatInt(int64(v), 10) },
		decode: func(raw string) (int32, error) {
			v, err := strconv.ParseInt(raw, 10, 32)
			return int32(v), err
		},
	}
}

func int64Codec() codec[int64] {
	return codec[int64]{
		encode: func(v int64) string { return strconv.FormatInt(v, 10) },
		decode: func(raw string) (int64, error) { return strconv.ParseInt(raw, 10, 64) },
	}
}

func uint32Codec() codec[uint32] {
	return codec[uint32]{
		encode: func(v uint32) string { return strconv.FormatUint(uint64(v), 10) },
		decode: func(raw string) (uint32, error) {
			v, err := strconv.ParseUint(raw, 10, 32)
			return uint32(v), err
		},
	}
}

func uint64Codec() codec[uint64] {
	return codec[uint64]{
		encode: func(v uint64) string { return strconv.FormatUint(v, 10) },
		decode: func(raw string) (uint64, error) { return strconv.ParseUint(raw, 10, 64) },
	}
}

func float64Codec() codec[float64] {
	return codec[float64]{
		encode: func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) },
		decode: func(raw string) (float64, error) { return strconv.ParseFloat(raw, 64) },
	}
}

func stringCodec() codec[string] {
	return codec[string]{
		encode: func(v string) string { return v },
		decode: func(raw string) (string, error) { return raw, nil },
	}
}

func timeCodec() codec[time.Time] {
	return codec[time.Time]{
		encode: func(v time.Time) string { return v.Format(time.RFC3339Nano) },
		decode: func(raw string) (time.Time, error) { return time.Parse(time.RFC3339Nano, raw) },
	}
}

// Geometry values use compact comma-separated forms.

func pointCodec() codec[Point] {
	return codec[Point]{
		encode: func(v Point) string { return fmt.Sprintf("%d,%d", v.X, v.Y) },
		decode: func(raw string) (Point, error) {
			parts, err := splitInts(raw, 2)
			if err != nil {
				return Point{}, err
			}
			return Point{X: parts[0], Y: parts[1]}, nil
		},
	}
}

func sizeCodec() codec[Size] {
	return codec[Size]{
		encode: func(v Size) string { return fmt.Sprintf("%d,%d", v.Width, v.Height) },
		decode: func(raw string) (Size, error) {
			parts, err := splitInts(raw, 2)
			if err != nil {
				return Size{}, err
			}
			return Size{Width: parts[0], Height: parts[1]}, nil
		},
	}
}

func rectCodec() codec[Rect] {
	return codec[Rect]{
		encode: func(v Rect) string {
			return fmt.Sprintf("%d,%d,%d,%d", v.X, v.Y, v.Width, v.Height)
		},
		decode: func(raw string) (Rect, error) {
			parts, err := splitInts(raw, 4)
			if err != nil {
				return Rect{}, err
			}
			return Rect{X: parts[0], Y: parts[1], Width: parts[2], Height: parts[3]}, nil
		},
	}
}

// Lists and dynamic values are stored as JSON; it survives separators in
// elements without an escaping scheme of its own.

func stringListCodec() codec[[]string] {
	return codec[[]string]{
		encode: func(v []string) string {
			data, _ := json.Marshal(v)
			return string(data)
		},
		decode: func(raw string) ([]string, error) {
			var v []string
			err := json.Unmarshal([]byte(raw), &v)
			return v, err
		},
	}
}

func intListCodec() codec[[]int] {
	return codec[[]int]{
		encode: func(v []int) string {
			data, _ := json.Marshal(v)
			return string(data)
		},
		decode: func(raw string) ([]int, error) {
			var v []int
			err := json.Unmarshal([]byte(raw), &v)
			return v, err
		},
	}
}

func dynamicCodec() codec[any] {
	return codec[any]{
		encode: func(v any) string {
			data, _ := json.Marshal(v)
			return string(data)
		},
		decode: func(raw string) (any, error) {
			var v any
			err := json.Unmarshal([]byte(raw), &v)
			return v, err
		},
	}
}

// splitInts parses exactly n comma-separated integers.
func splitInts(raw string, n int) ([]int, error) {
	fields := strings.Split(raw, ",")
	if len(fields) != n {
		return nil, fmt.Errorf("expected %d fields, got %d", n, len(fields))
	}
	out := make([]int, n)
	for i, f := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// Boxed-value conversions used by SetProperty and IsEqual. These accept any
// dynamic kind cast can bridge to the item's static kind.

func convBool(v any) (bool, error) { return cast.ToBoolE(v) }
func convInt32(v any) (int32, error) { return cast.ToInt32E(v) }
func convInt64(v any) (int64, error) { return cast.ToInt64E(v) }
func convUint32(v any) (uint32, error) { return cast.ToUint32E(v) }
func convUint64(v any) (uint64, error) { return cast.ToUint64E(v) }
func convFloat64(v any) (float64, error) { return cast.ToFloat64E(v) }
func convString(v any) (string, error) { return cast.ToStringE(v) }
func convTime(v any) (time.Time, error) { return cast.ToTimeE(v) }

func convStringList(v any) ([]string, error) { return cast.ToStringSliceE(v) }
func convIntList(v any) ([]int, error) { return cast.ToIntSliceE(v) }

func convDynamic(v any) (any, error) { return v, nil }

func convPoint(v any) (Point, error) {
	switch p := v.(type) {
	case Point:
		return p, nil
	case string:
		return pointCodec().decode(p)
	default:
		return Point{}, fmt.Errorf("cannot convert %T to Point", v)
	}
}

func convSize(v any) (Size, error) {
	switch s := v.(type) {
	case Size:
		return s, nil
	case string:
		return sizeCodec().decode(s)
	default:
		return Size{}, fmt.Errorf("cannot convert %T to Size", v)
	}
}

func convRect(v any) (Rect, error) {
	switch r := v.(type) {
	case Rect:
		return r, nil
	case string:
		return rectCodec().decode(r)
	default:
		return Rect{}, fmt.Errorf("cannot convert %T to Rect", v)
	}
}
