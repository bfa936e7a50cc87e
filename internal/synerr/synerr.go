// Package synerr implements the error-kind taxonomy from the TOON
// decoder's error handling design: every decode failure is one of a
// fixed set of kinds, carries the offending line number, and wraps
// through golang.org/x/xerrors so %+v prints a stack frame. Styled on
// a typical syntaxError/wrapError pair, adapted
// from a token-scoped model to a line-scoped one since TOON's grammar
// has no token linked list to point into.
package synerr

import (
	"fmt"

	"golang.org/x/xerrors"
)

// Kind identifies which invariant a decode failure violated.
type Kind int

const (
	_ Kind = iota
	MalformedHeader
	IndentationError
	LengthMismatch
	DelimiterMismatch
	BadEscape
	UnterminatedString
	IncompleteStream
	ExpansionConflict
	UnsupportedOption
)

func (k Kind) String() string {
	switch k {
	case MalformedHeader:
		return "MalformedHeader"
	case IndentationError:
		return "IndentationError"
	case LengthMismatch:
		return "LengthMismatch"
	case DelimiterMismatch:
		return "DelimiterMismatch"
	case BadEscape:
		return "BadEscape"
	case UnterminatedString:
		return "UnterminatedString"
	case IncompleteStream:
		return "IncompleteStream"
	case ExpansionConflict:
		return "ExpansionConflict"
	case UnsupportedOption:
		return "UnsupportedOption"
	default:
		return "Unknown"
	}
}

// Lenient reports whether lenient (non-strict) decoding may downgrade
// this kind to best-effort behavior instead of failing.
func (k Kind) Lenient() bool {
	switch k {
	case LengthMismatch, DelimiterMismatch, ExpansionConflict:
		return true
	default:
		return false
	}
}

// SyntaxError reports a decode failure at a specific source line.
type SyntaxError struct {
	Kind     Kind
	Line     int // 1-based
	Expected string
	Observed string
	Message  string
	frame    xerrors.Frame
}

// New builds a SyntaxError for kind at line, with a free-form message.
func New(kind Kind, line int, message string) *SyntaxError {
	return &SyntaxError{Kind: kind, Line: line, Message: message, frame: xerrors.Caller(1)}
}

// Newf is New with fmt.Sprintf-style formatting.
func Newf(kind Kind, line int, format string, args ...any) *SyntaxError {
	return &SyntaxError{Kind: kind, Line: line, Message: fmt.Sprintf(format, args...), frame: xerrors.Caller(1)}
}

// Expect annotates the error with the construct that was expected and
// the token that was actually observed.
func (e *SyntaxError) Expect(expected, observed string) *SyntaxError {
	e.Expected = expected
	e.Observed = observed
	return e
}

func (e *SyntaxError) Error() string {
	msg := fmt.Sprintf("toon: %s at line %d: %s", e.Kind, e.Line, e.Message)
	if e.Expected != "" {
		msg += fmt.Sprintf(" (expected %s, got %q)", e.Expected, e.Observed)
	}
	return msg
}

// FormatError implements xerrors.Formatter so %+v prints a stack frame
// alongside the message.
func (e *SyntaxError) FormatError(p xerrors.Printer) error {
	p.Print(e.Error())
	if p.Detail() {
		e.frame.Format(p)
	}
	return nil
}

// Format routes fmt verbs through xerrors.FormatError, so %+v includes
// the stack frame.
func (e *SyntaxError) Format(s fmt.State, v rune) { xerrors.FormatError(e, s, v) }

// Wrap wraps err with msg, preserving a caller stack frame the way
// errors.Wrapf does.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return xerrors.Errorf("%s: %w", msg, err)
}
