package toon_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RolfLobo/toon"
)

func TestEncodeScalarObject(t *testing.T) {
	out, err := toon.Encode(map[string]any{"name": "Alice", "age": 30})
	require.NoError(t, err)
	assert.Equal(t, "age: 30\nname: Alice", out)
}

func TestEncodeInlinePrimitiveArray(t *testing.T) {
	out, err := toon.Encode(map[string]any{"tags": []any{"a", "b", "c"}})
	require.NoError(t, err)
	assert.Equal(t, "tags[3]: a, b, c", out)
}

func TestEncodeTabularArray(t *testing.T) {
	rows := []any{
		map[string]any{"id": 1, "name": "a"},
		map[string]any{"id": 2, "name": "b"},
	}
	out, err := toon.Encode(map[string]any{"rows": rows})
	require.NoError(t, err)
	assert.Equal(t, "rows[2]{id,name}:\n  1,a\n  2,b", out)
}

func TestEncodeListOfNonUniformObjects(t *testing.T) {
	rows := []any{
		map[string]any{"id": 1},
		map[string]any{"other": "x"},
	}
	out, err := toon.Encode(map[string]any{"items": rows})
	require.NoError(t, err)
	assert.Equal(t, "items[2]:\n  - id: 1\n  - other: x", out)
}

func TestEncodeNestedListEntryObject(t *testing.T) {
	rows := []any{
		map[string]any{"id": 1, "meta": map[string]any{"tag": "x"}},
	}
	out, err := toon.Encode(map[string]any{"items": rows})
	require.NoError(t, err)
	assert.Equal(t, "items[1]:\n  - id: 1\n    meta:\n      tag: x", out)
}

func TestEncodeEmptyArray(t *testing.T) {
	out, err := toon.Encode(map[string]any{"items": []any{}})
	require.NoError(t, err)
	assert.Equal(t, "items[0]:", out)
}

func TestEncodeEmptyObject(t *testing.T) {
	out, err := toon.Encode(map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestEncodeRootArray(t *testing.T) {
	out, err := toon.Encode([]any{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, "[3]: 1, 2, 3", out)
}

func TestEncodeQuotesAmbiguousStrings(t *testing.T) {
	out, err := toon.Encode(map[string]any{"a": "true", "b": "42", "c": "-weird"})
	require.NoError(t, err)
	assert.Contains(t, out, `a: "true"`)
	assert.Contains(t, out, `b: "42"`)
	assert.Contains(t, out, `c: "-weird"`)
}

func TestWithIndent(t *testing.T) {
	rows := []any{map[string]any{"id": 1, "meta": map[string]any{"tag": "x"}}}
	out, err := toon.Encode(map[string]any{"items": rows}, toon.WithIndent(4))
	require.NoError(t, err)
	assert.Equal(t, "items[1]:\n    - id: 1\n        meta:\n            tag: x", out)
}

func TestWithDelimiterPipe(t *testing.T) {
	out, err := toon.Encode(map[string]any{"tags": []any{"a", "b"}}, toon.WithDelimiter(toon.DelimiterPipe))
	require.NoError(t, err)
	assert.Equal(t, "tags[2|]: a| b", out)
}

func TestWithDelimiterPipeTabularHeader(t *testing.T) {
	rows := []any{map[string]any{"id": 1, "name": "a"}}
	out, err := toon.Encode(map[string]any{"rows": rows}, toon.WithDelimiter(toon.DelimiterPipe))
	require.NoError(t, err)
	assert.Equal(t, "rows[1|]{id|name}:\n  1|a", out)
}

func TestWithKeyFoldingSafe(t *testing.T) {
	in := map[string]any{"a": map[string]any{"b": map[string]any{"c": 1}}}
	out, err := toon.Encode(in, toon.WithKeyFolding(toon.KeyFoldingSafe))
	require.NoError(t, err)
	assert.Equal(t, "a.b.c: 1", out)
}

func TestWithFlattenDepthLimitsFolding(t *testing.T) {
	in := map[string]any{"a": map[string]any{"b": map[string]any{"c": 1}}}
	out, err := toon.Encode(in, toon.WithKeyFolding(toon.KeyFoldingSafe), toon.WithFlattenDepth(1))
	require.NoError(t, err)
	assert.Equal(t, "a.b:\n  c: 1", out)
}

func TestMarshalReturnsBytes(t *testing.T) {
	b, err := toon.Marshal(map[string]any{"a": 1})
	require.NoError(t, err)
	assert.Equal(t, "a: 1", string(b))
}

func TestEncodeLinesYieldsLinesInOrder(t *testing.T) {
	it, err := toon.EncodeLines(map[string]any{"a": 1, "b": 2})
	require.NoError(t, err)
	var lines []string
	for {
		l, ok := it.Next()
		if !ok {
			break
		}
		lines = append(lines, l)
	}
	assert.Equal(t, []string{"a: 1", "b: 2"}, lines)
}
