package toon

import (
	"io"
	"os"

	colorable "github.com/mattn/go-colorable"

	"github.com/RolfLobo/toon/internal/printer"
	"github.com/RolfLobo/toon/internal/synerr"
)

// ErrorKind classifies a decode failure, per the error taxonomy of the
// format (malformed headers, indentation, count/delimiter mismatches,
// escape and quoting errors, and path-expansion conflicts).
type ErrorKind = synerr.Kind

// The error kinds the decoder can surface.
const (
	ErrMalformedHeader    = synerr.MalformedHeader
	ErrIndentationError   = synerr.IndentationError
	ErrLengthMismatch     = synerr.LengthMismatch
	ErrDelimiterMismatch  = synerr.DelimiterMismatch
	ErrBadEscape          = synerr.BadEscape
	ErrUnterminatedString = synerr.UnterminatedString
	ErrIncompleteStream   = synerr.IncompleteStream
	ErrExpansionConflict  = synerr.ExpansionConflict
	ErrUnsupportedOption  = synerr.UnsupportedOption
)

// SyntaxError is returned by Decode, DecodeString and the streaming
// decoders for any malformed input. It carries the offending line
// number and, where applicable, the expected and observed tokens.
type SyntaxError = synerr.SyntaxError

// FormatError renders err with source context: the offending line, up
// to two lines of surrounding context, and a caret under the start of
// the offending line. Non-SyntaxError values are rendered with their plain Error()
// text and no source excerpt. lines is the original input split on LF,
// as passed to Decode.
func FormatError(err error, lines []string, colored bool) string {
	var synErr *SyntaxError
	if !asSyntaxError(err, &synErr) {
		return err.Error()
	}
	return printer.Print(lines, synErr.Line, synErr.Error(), colored)
}

func asSyntaxError(err error, target **SyntaxError) bool {
	se, ok := err.(*SyntaxError)
	if !ok {
		return false
	}
	*target = se
	return true
}

// NewColorableWriter wraps w so that ANSI color codes render correctly
// on Windows consoles, falling back to w unchanged elsewhere. It exists
// for callers of FormatError(..., colored: true) that print straight to
// os.Stdout/os.Stderr.
func NewColorableWriter(w io.Writer) io.Writer {
	switch w {
	case os.Stdout:
		return colorable.NewColorableStdout()
	case os.Stderr:
		return colorable.NewColorableStderr()
	}
	return w
}
