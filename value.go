package toon

import "github.com/RolfLobo/toon/internal/value"

// Value is the TOON value domain: nil, bool, string, Number, Object, or
// Array. It is an alias (not a defined type) so that values built by a
// caller and values produced by this package interoperate without
// conversion, following the common pattern of
// re-exporting its internal codec types at the package boundary.
type Value = value.Value

// Number is a numeric literal that remembers whether it was written
// without a fractional part or exponent, so that re-encoding a decoded
// document does not turn 1 into 1.0.
type Number = value.Number

// Field is one key/value pair of an Object, in the order it appeared.
type Field = value.Field

// Object is an ordered mapping from unique string keys to values.
type Object = value.Object

// Array is an ordered sequence of values.
type Array = value.Array

// Delimiter is one of the three field/value separators TOON supports.
type Delimiter = value.Delimiter

// The three delimiters recognized by the codec.
const (
	DelimiterComma = value.DelimiterComma
	DelimiterTab   = value.DelimiterTab
	DelimiterPipe  = value.DelimiterPipe
)

// NewObject builds an Object from a sequence of fields, preserving
// their order.
func NewObject(fields ...Field) Object { return value.NewObject(fields...) }

// Int builds a Number from an integer literal's decimal digits.
func Int(lit string) Number { return value.Int(lit) }

// Float builds a Number from a non-integer literal's decimal digits.
func Float(lit string) Number { return value.Float(lit) }
