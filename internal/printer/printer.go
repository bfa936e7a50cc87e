// Package printer renders the offending source line, with a little
// surrounding context and a caret under the start of that line,
// optionally colorized. It is the TOON analogue of
// a typical source-excerpt printer, trimmed down: errors always pin
// exactly one line (there is no multi-token AST span to walk), so there
// is no token linked list to traverse — just the raw lines plus the
// failing line number.
package printer

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Print renders lines[errLine-1] (1-based) with up to context lines of
// surrounding source, a bold caret line, and an optional colorized
// error message header.
func Print(lines []string, errLine int, message string, colored bool) string {
	const context = 2
	lo := errLine - context
	if lo < 1 {
		lo = 1
	}
	hi := errLine + context
	if hi > len(lines) {
		hi = len(lines)
	}

	var b strings.Builder
	b.WriteString(renderMessage(message, colored))
	b.WriteByte('\n')
	for ln := lo; ln <= hi; ln++ {
		if ln < 1 || ln > len(lines) {
			continue
		}
		marker := "  "
		if ln == errLine {
			marker = "> "
		}
		prefix := fmt.Sprintf("%s%2d | ", marker, ln)
		if colored && ln == errLine {
			prefix = paint(prefix, color.Bold, color.FgHiWhite)
		}
		b.WriteString(prefix)
		b.WriteString(lines[ln-1])
		b.WriteByte('\n')
		if ln == errLine {
			b.WriteString(strings.Repeat(" ", len(fmt.Sprintf("%s%2d | ", marker, ln))))
			caret := "^"
			if colored {
				caret = paint(caret, color.FgHiRed, color.Bold)
			}
			b.WriteString(caret)
			b.WriteByte('\n')
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderMessage(message string, colored bool) string {
	if !colored {
		return message
	}
	return paint(message, color.FgHiRed)
}

// paint colors s regardless of color.NoColor, since the caller has
// asked for colored output explicitly.
func paint(s string, attrs ...color.Attribute) string {
	c := color.New(attrs...)
	c.EnableColor()
	return c.Sprint(s)
}
