package scanner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RolfLobo/toon/internal/scanner"
	"github.com/RolfLobo/toon/internal/value"
)

func TestScanLinesIndentLevels(t *testing.T) {
	lines, err := scanner.ScanLines("a:\n  b: 1\n  c: 2\n", 2, true)
	require.NoError(t, err)
	require.Len(t, lines, 3)
	assert.Equal(t, 0, lines[0].Indent)
	assert.Equal(t, 1, lines[1].Indent)
	assert.Equal(t, "b: 1", lines[1].Content)
}

func TestScanLinesRejectsUnalignedIndentInStrictMode(t *testing.T) {
	_, err := scanner.ScanLines("a:\n   b: 1\n", 2, true)
	assert.Error(t, err)
}

func TestScanLinesToleratesUnalignedIndentWhenLenient(t *testing.T) {
	lines, err := scanner.ScanLines("a:\n   b: 1\n", 2, false)
	require.NoError(t, err)
	require.Len(t, lines, 2)
}

func TestScanLinesMarksBlank(t *testing.T) {
	lines, err := scanner.ScanLines("a: 1\n\nb: 2\n", 2, true)
	require.NoError(t, err)
	require.Len(t, lines, 3)
	assert.True(t, lines[1].Blank)
}

func TestParseHeaderInlinePrimitiveArray(t *testing.T) {
	h, ok, err := scanner.ParseHeader(`tags[2]: a,b`)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, h.HasKey)
	assert.Equal(t, "tags", h.Key)
	assert.Equal(t, 2, h.Length)
	assert.Equal(t, "a,b", h.InlineValues)
	assert.False(t, h.HasFields)
}

func TestParseHeaderListForm(t *testing.T) {
	h, ok, err := scanner.ParseHeader(`items[2]:`)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "", h.InlineValues)
}

func TestParseHeaderTabular(t *testing.T) {
	h, ok, err := scanner.ParseHeader(`rows[2]{id,name}:`)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, h.HasFields)
	assert.Equal(t, []string{"id", "name"}, h.Fields)
	assert.Equal(t, value.DelimiterComma, h.Delimiter)
}

func TestParseHeaderRootArrayNoKey(t *testing.T) {
	h, ok, err := scanner.ParseHeader(`[3]: 1,2,3`)
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, h.HasKey)
	assert.Equal(t, 3, h.Length)
}

func TestParseHeaderRejectsPlainKeyValue(t *testing.T) {
	_, ok, err := scanner.ParseHeader(`name: value`)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestParseHeaderTabDelimiter(t *testing.T) {
	h, ok, err := scanner.ParseHeader("rows[2\t]{id\tname}:")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, value.DelimiterTab, h.Delimiter)
	assert.Equal(t, []string{"id", "name"}, h.Fields)
}

func TestSplitKeyValue(t *testing.T) {
	key, rest, ok, err := scanner.SplitKeyValue(`name: value`)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "name", key)
	assert.Equal(t, "value", rest)
}

func TestSplitKeyValueQuotedKey(t *testing.T) {
	key, rest, ok, err := scanner.SplitKeyValue(`"a:b": value`)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "a:b", key)
	assert.Equal(t, "value", rest)
}

func TestSplitDelimitedRespectsQuotes(t *testing.T) {
	fields, err := scanner.SplitDelimited(`a,"b,c",d`, ',')
	require.NoError(t, err)
	assert.Equal(t, []string{"a", `"b,c"`, "d"}, fields)
}

func TestSplitDelimitedTabNoTrim(t *testing.T) {
	fields, err := scanner.SplitDelimited("a\t b \tc", '\t')
	require.NoError(t, err)
	assert.Equal(t, []string{"a", " b ", "c"}, fields)
}

func TestSplitDelimitedRejectsUnterminatedQuote(t *testing.T) {
	_, err := scanner.SplitDelimited(`a,"b`, ',')
	assert.Error(t, err)
}

func TestIndexOutsideQuotes(t *testing.T) {
	assert.Equal(t, 5, scanner.IndexOutsideQuotes(`"a:b":c`, ':'))
}
