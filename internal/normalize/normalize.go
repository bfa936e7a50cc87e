// Package normalize implements the value normalizer: it maps an
// arbitrary Go value to the value.Value domain model, or fails for
// unrepresentable input (e.g. a map with non-string keys). Functions,
// channels and unsafe pointers normalize to null. A reflect-driven
// dispatch (numeric kinds, pointers, slices, maps, structs, big.Int,
// time.Time) merged with familiar struct-tag conventions for struct
// fields.
package normalize

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"slices"
	"strconv"
	"time"

	"github.com/RolfLobo/toon/internal/value"
)

const maxSafeInteger = 1<<53 - 1

// TimeFormatter renders a time.Time during normalization. The default
// produces millisecond-precision UTC ISO-8601 with a "Z" suffix.
type TimeFormatter func(time.Time) string

// DefaultTimeFormatter is the default temporal-instant rule.
func DefaultTimeFormatter(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}

// Value normalizes v into the TOON value domain using formatTime for any
// time.Time encountered.
func Value(v any, formatTime TimeFormatter) (value.Value, error) {
	if formatTime == nil {
		formatTime = DefaultTimeFormatter
	}
	return normalize(reflect.ValueOf(v), formatTime)
}

func normalize(rv reflect.Value, formatTime TimeFormatter) (value.Value, error) {
	if !rv.IsValid() {
		return nil, nil
	}

	switch v := rv.Interface().(type) {
	case value.Object, value.Array, value.Number:
		// Already in the domain model: pass through untouched.
		return v, nil
	case json.Number:
		return normalizeNumberString(v.String())
	case *big.Int:
		if v == nil {
			return nil, nil
		}
		if v.IsInt64() {
			return normalize(reflect.ValueOf(v.Int64()), formatTime)
		}
		return v.String(), nil
	case time.Time:
		return formatTime(v), nil
	case fmt.Stringer:
		return v.String(), nil
	}

	switch rv.Kind() {
	case reflect.Invalid:
		return nil, nil
	case reflect.Bool:
		return rv.Bool(), nil
	case reflect.String:
		return rv.String(), nil
	case reflect.Float32, reflect.Float64:
		return normalizeFloat(rv.Float())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i := rv.Int()
		if i > maxSafeInteger || i < -maxSafeInteger {
			return strconv.FormatInt(i, 10), nil
		}
		return value.Int(strconv.FormatInt(i, 10)), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > maxSafeInteger {
			return strconv.FormatUint(u, 10), nil
		}
		return value.Int(strconv.FormatUint(u, 10)), nil
	case reflect.Pointer:
		if rv.IsNil() {
			return nil, nil
		}
		return normalize(rv.Elem(), formatTime)
	case reflect.Interface:
		if rv.IsNil() {
			return nil, nil
		}
		return normalize(rv.Elem(), formatTime)
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return value.Array{}, nil
		}
		n := rv.Len()
		out := make(value.Array, 0, n)
		for i := 0; i < n; i++ {
			item, err := normalize(rv.Index(i), formatTime)
			if err != nil {
				return nil, err
			}
			out = append(out, item)
		}
		return out, nil
	case reflect.Map:
		return normalizeMap(rv, formatTime)
	case reflect.Struct:
		return normalizeStruct(rv, formatTime)
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return nil, nil
	}
	return nil, fmt.Errorf("toon: unsupported value of type %s", rv.Type())
}

func normalizeMap(rv reflect.Value, formatTime TimeFormatter) (value.Value, error) {
	if rv.Type().Key().Kind() != reflect.String {
		return nil, fmt.Errorf("toon: unsupported map key type %s", rv.Type().Key())
	}
	if rv.IsNil() {
		return value.Object{}, nil
	}
	type kv struct {
		key string
		val reflect.Value
	}
	entries := make([]kv, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		entries = append(entries, kv{key: iter.Key().String(), val: iter.Value()})
	}
	slices.SortFunc(entries, func(a, b kv) int {
		switch {
		case a.key < b.key:
			return -1
		case a.key > b.key:
			return 1
		default:
			return 0
		}
	})
	fields := make([]value.Field, 0, len(entries))
	for _, e := range entries {
		v, err := normalize(e.val, formatTime)
		if err != nil {
			return nil, err
		}
		fields = append(fields, value.Field{Key: e.key, Value: v})
	}
	return value.Object{Fields: fields}, nil
}

func normalizeStruct(rv reflect.Value, formatTime TimeFormatter) (value.Value, error) {
	meta, err := cachedStructMeta(rv.Type())
	if err != nil {
		return nil, err
	}
	fields := make([]value.Field, 0, len(meta.fields))
	for _, sf := range meta.fields {
		fv := fieldByIndex(rv, sf.index)
		if !fv.IsValid() {
			continue
		}
		if sf.isOmitEmpty && isEmptyValue(fv) {
			continue
		}
		child, err := normalize(fv, formatTime)
		if err != nil {
			return nil, fmt.Errorf("toon: field %s: %w", sf.name, err)
		}
		fields = append(fields, value.Field{Key: sf.name, Value: child})
	}
	return value.Object{Fields: fields}, nil
}

func normalizeFloat(f float64) (value.Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, nil
	}
	if f == 0 {
		f = 0 // collapse -0 to 0
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return value.Int(strconv.FormatFloat(f, 'f', -1, 64)), nil
	}
	return value.Float(formatFloatPositional(f)), nil
}

func normalizeNumberString(s string) (value.Value, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return s, nil
	}
	return normalizeFloat(f)
}

// formatFloatPositional renders f without scientific notation. The
// shortest round-trip decimal is used, expanded to full positional
// notation when it would otherwise require an exponent (|value| >= 1e21
// or very small magnitudes).
func formatFloatPositional(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !hasExponent(s) {
		return s
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func hasExponent(s string) bool {
	for _, r := range s {
		if r == 'e' || r == 'E' {
			return true
		}
	}
	return false
}
