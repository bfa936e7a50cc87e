package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RolfLobo/toon/internal/token"
)

func TestLooksNumeric(t *testing.T) {
	cases := map[string]bool{
		"0":       true,
		"-0":      true,
		"42":      true,
		"-42":     true,
		"3.14":    true,
		"1e10":    true,
		"-1.5E-3": true,
		"01":      false,
		"":        false,
		"1.":      false,
		".5":      false,
		"abc":     false,
		"1a":      false,
	}
	for in, want := range cases {
		assert.Equal(t, want, token.LooksNumeric(in), "input %q", in)
	}
}

func TestNeedsQuoting(t *testing.T) {
	assert.True(t, token.NeedsQuoting("", ','))
	assert.True(t, token.NeedsQuoting(" leading", ','))
	assert.True(t, token.NeedsQuoting("trailing ", ','))
	assert.True(t, token.NeedsQuoting("-negativelooking", ','))
	assert.True(t, token.NeedsQuoting("has,comma", ','))
	assert.True(t, token.NeedsQuoting("has:colon", ','))
	assert.True(t, token.NeedsQuoting("true", ','))
	assert.True(t, token.NeedsQuoting("42", ','))
	assert.False(t, token.NeedsQuoting("plain", ','))
	assert.True(t, token.NeedsQuoting("tab\tvalue", '\t'))
	assert.True(t, token.NeedsQuoting("tab\tvalue", ','))
}

func TestNeedsKeyQuoting(t *testing.T) {
	assert.True(t, token.NeedsKeyQuoting("a.b", ',', true))
	assert.False(t, token.NeedsKeyQuoting("a.b", ',', false))
	assert.False(t, token.NeedsKeyQuoting("plain", ',', true))
}

func TestQuoteUnquoteRoundTrip(t *testing.T) {
	cases := []string{
		"plain",
		"has \"quotes\"",
		"line\nbreak",
		"tab\ttab",
		"back\\slash",
		"\x01control",
	}
	for _, s := range cases {
		quoted := token.Quote(s)
		got, err := token.Unquote(quoted)
		require.NoError(t, err, "quoted: %s", quoted)
		assert.Equal(t, s, got)
	}
}

func TestUnquoteRejectsUnterminated(t *testing.T) {
	_, err := token.Unquote(`"abc`)
	require.Error(t, err)
	assert.True(t, token.IsUnterminated(err))
}

func TestUnquoteRejectsBadEscape(t *testing.T) {
	_, err := token.Unquote(`"a\qb"`)
	require.Error(t, err)
	assert.True(t, token.IsBadEscape(err))
}

func TestUnquoteRejectsEmbeddedRawNewline(t *testing.T) {
	_, err := token.Unquote("\"a\nb\"")
	require.Error(t, err)
	assert.True(t, token.IsUnterminated(err))
}

func TestUnquoteUnicodeEscape(t *testing.T) {
	got, err := token.Unquote(`"\u00e9"`)
	require.NoError(t, err)
	assert.Equal(t, "é", got)
}

func TestIsValidUnquotedKey(t *testing.T) {
	assert.True(t, token.IsValidUnquotedKey("name"))
	assert.False(t, token.IsValidUnquotedKey("42"))
	assert.False(t, token.IsValidUnquotedKey("true"))
	assert.False(t, token.IsValidUnquotedKey(""))
	assert.False(t, token.IsValidUnquotedKey("-dash"))
}

func TestReservedLiteral(t *testing.T) {
	assert.True(t, token.ReservedLiteral("true"))
	assert.True(t, token.ReservedLiteral("false"))
	assert.True(t, token.ReservedLiteral("null"))
	assert.False(t, token.ReservedLiteral("True"))
}
