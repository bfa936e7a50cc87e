package toon

import (
	"strconv"
	"strings"

	"github.com/RolfLobo/toon/internal/normalize"
	"github.com/RolfLobo/toon/internal/token"
	"github.com/RolfLobo/toon/internal/value"
)

// LineIter is a pull-based sequence of encoded lines: call Next until ok
// is false. It is not lazy: EncodeLines renders every line before it
// returns, and the iterator holds that line buffer and a cursor.
type LineIter struct {
	lines []string
	idx   int
}

// Next returns the next line, without its terminator. ok is false once
// the sequence is exhausted.
func (it *LineIter) Next() (string, bool) {
	if it.idx >= len(it.lines) {
		return "", false
	}
	l := it.lines[it.idx]
	it.idx++
	return l, true
}

// EncodeLines normalizes v and returns its canonical line sequence,
// without joining terminators.
func EncodeLines(v any, opts ...EncodeOption) (*LineIter, error) {
	cfg, err := newEncodeConfig(opts)
	if err != nil {
		return nil, err
	}
	normalized, err := normalize.Value(v, cfg.TimeFormat)
	if err != nil {
		return nil, err
	}
	if cfg.KeyFolding == KeyFoldingSafe {
		normalized = foldKeys(normalized, cfg.FlattenDepth)
	}
	return &LineIter{lines: emitRoot(normalized, cfg)}, nil
}

// Encode returns the LF-joined canonical TOON encoding of v. No trailing
// newline, no surrounding whitespace.
func Encode(v any, opts ...EncodeOption) (string, error) {
	it, err := EncodeLines(v, opts...)
	if err != nil {
		return "", err
	}
	return strings.Join(it.lines, "\n"), nil
}

// EncodeString is an alias for Encode.
func EncodeString(v any, opts ...EncodeOption) (string, error) {
	return Encode(v, opts...)
}

// Marshal is the encoding/json-flavored spelling of Encode, returning
// the output as bytes.
func Marshal(v any, opts ...EncodeOption) ([]byte, error) {
	s, err := Encode(v, opts...)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// MarshalString is an alias for Encode.
func MarshalString(v any, opts ...EncodeOption) (string, error) {
	return Encode(v, opts...)
}

func emitRoot(v value.Value, cfg *encodeConfig) []string {
	switch vv := v.(type) {
	case value.Object:
		if vv.IsEmpty() {
			return nil
		}
		var lines []string
		for _, f := range vv.Fields {
			lines = append(lines, emitValue(0, f.Key, true, f.Value, cfg)...)
		}
		return lines
	case value.Array:
		return emitArray(indentStr(0, cfg.Indent), 0, "", false, vv, cfg)
	default:
		return []string{encodeLiteral(vv, cfg.Delimiter.Rune())}
	}
}

// emitValue renders v (the value of key, or the root value when
// !hasKey) at the given level, using the level's own indent as the
// first line's prefix.
func emitValue(level int, key string, hasKey bool, v value.Value, cfg *encodeConfig) []string {
	return emitValueWithPrefix(indentStr(level, cfg.Indent), level, key, hasKey, v, cfg)
}

// emitValueWithPrefix is emitValue generalized over the first line's
// prefix, so a list entry's dash marker ("- ") can stand in for the
// usual indent string while nested content still indents relative to
// level.
func emitValueWithPrefix(prefix string, level int, key string, hasKey bool, v value.Value, cfg *encodeConfig) []string {
	switch vv := v.(type) {
	case value.Array:
		return emitArray(prefix, level, key, hasKey, vv, cfg)
	case value.Object:
		return emitObject(prefix, level, key, hasKey, vv, cfg)
	default:
		lit := encodeLiteral(vv, cfg.Delimiter.Rune())
		if hasKey {
			return []string{prefix + quoteKey(key, cfg) + ": " + lit}
		}
		return []string{prefix + lit}
	}
}

func emitObject(prefix string, level int, key string, hasKey bool, obj value.Object, cfg *encodeConfig) []string {
	if obj.IsEmpty() {
		if hasKey {
			return []string{prefix + quoteKey(key, cfg) + ":"}
		}
		return nil
	}
	var lines []string
	childLevel := level
	if hasKey {
		lines = append(lines, prefix+quoteKey(key, cfg)+":")
		childLevel = level + 1
	}
	for _, f := range obj.Fields {
		lines = append(lines, emitValue(childLevel, f.Key, true, f.Value, cfg)...)
	}
	return lines
}

// emitArray implements the array form selector: empty,
// inline primitive, tabular, or list, in that priority order.
func emitArray(prefix string, level int, key string, hasKey bool, arr value.Array, cfg *encodeConfig) []string {
	n := len(arr)
	keyTok := ""
	if hasKey {
		keyTok = quoteKey(key, cfg)
	}
	header := prefix + keyTok + "[" + strconv.Itoa(n) + delimiterMarker(cfg.Delimiter) + "]"

	if n == 0 {
		return []string{header + ":"}
	}
	if value.IsPrimitiveArray(arr) {
		parts := make([]string, n)
		for i, e := range arr {
			parts[i] = encodeLiteral(e, cfg.Delimiter.Rune())
		}
		return []string{header + ": " + strings.Join(parts, inlineJoinSeparator(cfg.Delimiter))}
	}
	if fields, ok := value.DetectTabularFields(arr); ok {
		delimChar := string(cfg.Delimiter.Rune())
		quotedFields := make([]string, len(fields))
		for i, f := range fields {
			quotedFields[i] = quoteKey(f, cfg)
		}
		lines := []string{header + "{" + strings.Join(quotedFields, delimChar) + "}:"}
		rowLevel := level + 1
		for _, row := range arr {
			obj := row.(value.Object)
			cells := make([]string, len(fields))
			for i, f := range fields {
				fv, _ := obj.Get(f)
				cells[i] = encodeLiteral(fv, cfg.Delimiter.Rune())
			}
			lines = append(lines, indentStr(rowLevel, cfg.Indent)+strings.Join(cells, delimChar))
		}
		return lines
	}

	lines := []string{header + ":"}
	entryLevel := level + 1
	for _, e := range arr {
		lines = append(lines, emitListEntry(entryLevel, e, cfg)...)
	}
	return lines
}

// emitListEntry renders one element of a list-form array: a primitive
// sits on the dash line; an object's first field sits on the dash line
// with remaining fields aligned one level deeper; an array opens its
// own header on the dash line with its body one level deeper still.
func emitListEntry(level int, e value.Value, cfg *encodeConfig) []string {
	dash := indentStr(level, cfg.Indent) + "- "
	switch vv := e.(type) {
	case value.Object:
		if vv.IsEmpty() {
			// The grammar has no one-line spelling for "{}": a bare dash
			// stands for it, and the decoder reads it back as an empty
			// object.
			return []string{strings.TrimRight(dash, " ")}
		}
		first := vv.Fields[0]
		lines := emitValueWithPrefix(dash, level+1, first.Key, true, first.Value, cfg)
		for _, f := range vv.Fields[1:] {
			lines = append(lines, emitValue(level+1, f.Key, true, f.Value, cfg)...)
		}
		return lines
	case value.Array:
		return emitArray(dash, level, "", false, vv, cfg)
	default:
		return []string{dash + encodeLiteral(vv, cfg.Delimiter.Rune())}
	}
}

func encodeLiteral(v value.Value, delim rune) string {
	switch vv := v.(type) {
	case nil:
		return "null"
	case bool:
		if vv {
			return "true"
		}
		return "false"
	case value.Number:
		return vv.Lit
	case string:
		if token.NeedsQuoting(vv, delim) {
			return token.Quote(vv)
		}
		return vv
	default:
		return ""
	}
}

func quoteKey(key string, cfg *encodeConfig) string {
	if folded, ok := strings.CutPrefix(key, foldedKeyMarker); ok {
		if token.NeedsKeyQuoting(folded, cfg.Delimiter.Rune(), false) {
			return token.Quote(folded)
		}
		return folded
	}
	if token.NeedsKeyQuoting(key, cfg.Delimiter.Rune(), true) {
		return token.Quote(key)
	}
	return key
}

// inlineJoinSeparator is the text placed between values of an inline
// primitive array: "<delim> " for comma and pipe, bare TAB otherwise.
func inlineJoinSeparator(d value.Delimiter) string {
	switch d {
	case value.DelimiterTab:
		return "\t"
	default:
		return string(d.Rune()) + " "
	}
}

// delimiterMarker is the character embedded in an array header's length
// bracket to record a non-default delimiter, e.g. "[2|]" or "[2\t]".
// Comma needs no marker since it's the decoder's default.
func delimiterMarker(d value.Delimiter) string {
	switch d {
	case value.DelimiterTab:
		return "\t"
	case value.DelimiterPipe:
		return "|"
	default:
		return ""
	}
}

func indentStr(level int, indentSize int) string {
	if level <= 0 {
		return ""
	}
	return strings.Repeat(" ", level*indentSize)
}
