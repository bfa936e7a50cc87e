package normalize

import (
	"reflect"
	"strings"
	"sync"

	"golang.org/x/xerrors"
)

// structTagName is the struct tag key recognized by the normalizer.
const structTagName = "toon"

// IsZeroer is implemented by types (e.g. time.Time) that know their own
// zero value better than a plain reflect.Value comparison can.
type IsZeroer interface {
	IsZero() bool
}

type structField struct {
	index       []int
	name        string
	isOmitEmpty bool
}

type structMeta struct {
	fields []structField
}

var structMetaCache sync.Map // reflect.Type -> *structMeta

func cachedStructMeta(t reflect.Type) (*structMeta, error) {
	if cached, ok := structMetaCache.Load(t); ok {
		return cached.(*structMeta), nil
	}
	meta, err := buildStructMeta(t)
	if err != nil {
		return nil, err
	}
	structMetaCache.Store(t, meta)
	return meta, nil
}

func buildStructMeta(t reflect.Type) (*structMeta, error) {
	seenNames := map[string]struct{}{}
	meta := &structMeta{}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if isIgnoredField(f) {
			continue
		}
		sf := parseStructField(f)
		if _, dup := seenNames[sf.name]; dup {
			return nil, xerrors.Errorf("toon: duplicated struct field name %q", sf.name)
		}
		seenNames[sf.name] = struct{}{}
		sf.index = f.Index
		meta.fields = append(meta.fields, sf)
	}
	return meta, nil
}

func isIgnoredField(f reflect.StructField) bool {
	if f.PkgPath != "" && !f.Anonymous {
		return true
	}
	return f.Tag.Get(structTagName) == "-"
}

func parseStructField(f reflect.StructField) structField {
	tag := f.Tag.Get(structTagName)
	name := strings.ToLower(f.Name)
	opts := strings.Split(tag, ",")
	if opts[0] != "" {
		name = opts[0]
	}
	sf := structField{name: name}
	for _, opt := range opts[1:] {
		if opt == "omitempty" {
			sf.isOmitEmpty = true
		}
	}
	return sf
}

func fieldByIndex(v reflect.Value, index []int) reflect.Value {
	for _, i := range index {
		if v.Kind() == reflect.Pointer {
			if v.IsNil() {
				return reflect.Value{}
			}
			v = v.Elem()
		}
		v = v.Field(i)
	}
	return v
}

func isEmptyValue(v reflect.Value) bool {
	if v.CanInterface() {
		if z, ok := v.Interface().(IsZeroer); ok {
			if (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) && v.IsNil() {
				return true
			}
			return z.IsZero()
		}
	}
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Pointer:
		return v.IsNil()
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			if v.Type().Field(i).PkgPath != "" {
				continue
			}
			if !isEmptyValue(v.Field(i)) {
				return false
			}
		}
		return true
	}
	return false
}
