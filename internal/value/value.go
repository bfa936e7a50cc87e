// Package value defines the JSON-compatible data model shared by every
// stage of the TOON codec: the normalizer produces it, the encoder walks
// it, and the structural decoder's value builder reconstructs it.
package value

import "strconv"

// Value is one of: nil, bool, string, Number, Object, Array.
type Value any

// Number is a finite decimal literal. IsInt distinguishes integer
// literals (no fractional part, no exponent) from floats so a Go int64
// normalized once does not turn into "1.0" on re-encode.
type Number struct {
	Lit   string
	IsInt bool
}

// Int returns a Number for an integer literal.
func Int(lit string) Number { return Number{Lit: lit, IsInt: true} }

// Float returns a Number for a non-integer literal.
func Float(lit string) Number { return Number{Lit: lit, IsInt: false} }

// Float64 parses the literal back into a float64.
func (n Number) Float64() (float64, error) {
	return strconv.ParseFloat(n.Lit, 64)
}

func (n Number) String() string { return n.Lit }

// Field is a single key/value pair inside an Object.
type Field struct {
	Key   string
	Value Value
}

// Object is an ordered mapping from string keys to values. Encounter
// order is preserved; Go's map type cannot satisfy that invariant, which
// is why the codec carries its own ordered representation end to end.
type Object struct {
	Fields []Field
}

// NewObject builds an Object from the given fields, in order.
func NewObject(fields ...Field) Object {
	return Object{Fields: fields}
}

// IsEmpty reports whether the object has no fields.
func (o Object) IsEmpty() bool { return len(o.Fields) == 0 }

// Get returns the value for key and whether it was present.
func (o Object) Get(key string) (Value, bool) {
	for _, f := range o.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Set inserts or replaces the value for key, preserving the position of
// an existing key and appending new keys at the end.
func (o *Object) Set(key string, v Value) {
	for i, f := range o.Fields {
		if f.Key == key {
			o.Fields[i].Value = v
			return
		}
	}
	o.Fields = append(o.Fields, Field{Key: key, Value: v})
}

// Array is an ordered sequence of values.
type Array []Value

// IsPrimitive reports whether v is a JSON scalar (nil, bool, string or
// Number), as opposed to Object or Array.
func IsPrimitive(v Value) bool {
	switch v.(type) {
	case nil, bool, string, Number:
		return true
	default:
		return false
	}
}

// Delimiter identifies the character used to separate values inside an
// array scope.
type Delimiter rune

const (
	DelimiterComma Delimiter = ','
	DelimiterTab   Delimiter = '\t'
	DelimiterPipe  Delimiter = '|'
)

// Rune returns the delimiter's character.
func (d Delimiter) Rune() rune { return rune(d) }

func (d Delimiter) String() string {
	switch d {
	case DelimiterTab:
		return `\t`
	case DelimiterPipe:
		return "|"
	default:
		return ","
	}
}

// Valid reports whether d is one of the three recognized delimiters.
func (d Delimiter) Valid() bool {
	switch d {
	case DelimiterComma, DelimiterTab, DelimiterPipe:
		return true
	default:
		return false
	}
}

// DetectTabularFields reports whether every element of arr is a
// non-empty Object, all objects share exactly the same key set in the
// same order, and every leaf value in every row is a primitive — the
// precondition for the tabular array form. It
// returns the shared field order when true.
func DetectTabularFields(arr Array) ([]string, bool) {
	if len(arr) == 0 {
		return nil, false
	}
	first, ok := arr[0].(Object)
	if !ok || first.IsEmpty() {
		return nil, false
	}
	fields := make([]string, 0, len(first.Fields))
	for _, f := range first.Fields {
		if !IsPrimitive(f.Value) {
			return nil, false
		}
		fields = append(fields, f.Key)
	}
	for _, row := range arr[1:] {
		obj, ok := row.(Object)
		if !ok || len(obj.Fields) != len(fields) {
			return nil, false
		}
		for i, f := range obj.Fields {
			if f.Key != fields[i] || !IsPrimitive(f.Value) {
				return nil, false
			}
		}
	}
	return fields, true
}

// IsPrimitiveArray reports whether every element of arr is a JSON
// scalar.
func IsPrimitiveArray(arr Array) bool {
	for _, v := range arr {
		if !IsPrimitive(v) {
			return false
		}
	}
	return true
}
