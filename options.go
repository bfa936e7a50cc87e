package toon

import (
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"

	"github.com/RolfLobo/toon/internal/normalize"
	"github.com/RolfLobo/toon/internal/value"
)

var validate = validator.New()

// KeyFoldingMode selects whether the encoder collapses single-key
// object chains into dotted keys.
type KeyFoldingMode string

const (
	KeyFoldingOff  KeyFoldingMode = "off"
	KeyFoldingSafe KeyFoldingMode = "safe"
)

// ExpandPathsMode selects whether the decoder reverses key-folding.
type ExpandPathsMode string

const (
	ExpandPathsOff  ExpandPathsMode = "off"
	ExpandPathsSafe ExpandPathsMode = "safe"
)

type encodeConfig struct {
	Indent       int            `validate:"gte=0"`
	KeyFolding   KeyFoldingMode `validate:"oneof=off safe"`
	FlattenDepth int            `validate:"gte=0"`
	Delimiter    value.Delimiter
	TimeFormat   normalize.TimeFormatter
}

// EncodeOption configures Encode, EncodeLines, Marshal, MarshalString
// and their relatives.
type EncodeOption func(*encodeConfig) error

// WithIndent sets the number of spaces per indent level (default 2).
func WithIndent(n int) EncodeOption {
	return func(c *encodeConfig) error { c.Indent = n; return nil }
}

// WithDelimiter sets the active field/value delimiter (default
// DelimiterComma).
func WithDelimiter(d Delimiter) EncodeOption {
	return func(c *encodeConfig) error {
		if !d.Valid() {
			return fmt.Errorf("toon: invalid delimiter %q", d)
		}
		c.Delimiter = d
		return nil
	}
}

// WithKeyFolding enables or disables collapsing single-key object
// chains into dotted keys (default KeyFoldingOff).
func WithKeyFolding(mode KeyFoldingMode) EncodeOption {
	return func(c *encodeConfig) error { c.KeyFolding = mode; return nil }
}

// WithFlattenDepth caps the number of links a key-folding chain may
// collapse (default unbounded).
func WithFlattenDepth(n int) EncodeOption {
	return func(c *encodeConfig) error { c.FlattenDepth = n; return nil }
}

// WithTimeFormatter overrides how time.Time values are rendered; the
// default produces millisecond-precision UTC ISO-8601 with a "Z" suffix.
func WithTimeFormatter(fn normalize.TimeFormatter) EncodeOption {
	return func(c *encodeConfig) error { c.TimeFormat = fn; return nil }
}

func newEncodeConfig(opts []EncodeOption) (*encodeConfig, error) {
	cfg := &encodeConfig{
		Indent:       2,
		Delimiter:    value.DelimiterComma,
		KeyFolding:   KeyFoldingOff,
		FlattenDepth: math.MaxInt,
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("toon: invalid encode options: %w", err)
	}
	return cfg, nil
}

type decodeConfig struct {
	Indent      int `validate:"gte=0"`
	Strict      bool
	ExpandPaths ExpandPathsMode `validate:"oneof=off safe"`
}

// DecodeOption configures Unmarshal, Decode and their relatives.
type DecodeOption func(*decodeConfig) error

// WithDecodeIndent sets the number of spaces per indent level the
// decoder expects (default 2).
func WithDecodeIndent(n int) DecodeOption {
	return func(c *decodeConfig) error { c.Indent = n; return nil }
}

// WithStrict toggles strict validation of declared lengths, delimiter
// uniformity, and indentation (default true).
func WithStrict(strict bool) DecodeOption {
	return func(c *decodeConfig) error { c.Strict = strict; return nil }
}

// WithExpandPaths reverses key-folding while materializing the decoded
// value (default ExpandPathsOff). Rejected by the streaming decoders.
func WithExpandPaths(mode ExpandPathsMode) DecodeOption {
	return func(c *decodeConfig) error { c.ExpandPaths = mode; return nil }
}

func newDecodeConfig(opts []DecodeOption) (*decodeConfig, error) {
	cfg := &decodeConfig{Indent: 2, Strict: true, ExpandPaths: ExpandPathsOff}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("toon: invalid decode options: %w", err)
	}
	return cfg, nil
}
