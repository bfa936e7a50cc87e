package toon_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RolfLobo/toon"
)

func TestDecodeErrorIsSyntaxError(t *testing.T) {
	_, err := toon.Decode("tags[3]: a,b", toon.WithStrict(true))
	require.Error(t, err)
	var synErr *toon.SyntaxError
	require.True(t, errors.As(err, &synErr))
	assert.Equal(t, toon.ErrLengthMismatch, synErr.Kind)
	assert.Equal(t, 1, synErr.Line)
}

func TestFormatErrorRendersSourceExcerpt(t *testing.T) {
	text := "a: 1\ntags[3]: a,b\nc: 3"
	lines := []string{"a: 1", "tags[3]: a,b", "c: 3"}
	_, err := toon.Decode(text, toon.WithStrict(true))
	require.Error(t, err)
	out := toon.FormatError(err, lines, false)
	assert.Contains(t, out, "tags[3]: a,b")
	assert.Contains(t, out, "LengthMismatch")
}

func TestFormatErrorPlainMessageForNonSyntaxError(t *testing.T) {
	err := errors.New("boom")
	out := toon.FormatError(err, nil, false)
	assert.Equal(t, "boom", out)
}
