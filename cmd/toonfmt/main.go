// Command toonfmt reads JSON (from a file argument or stdin) and prints
// its TOON encoding to stdout, colorizing keys, strings, and numbers the
// way a terminal pretty-printer would.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	colorable "github.com/mattn/go-colorable"

	"github.com/RolfLobo/toon"
	"github.com/RolfLobo/toon/internal/scanner"
)

func format(attr color.Attribute) string {
	return fmt.Sprintf("\x1b[%dm", attr)
}

var (
	keyColor    = format(color.FgHiCyan)
	stringColor = format(color.FgHiGreen)
	numberColor = format(color.FgHiMagenta)
	reset       = format(color.Reset)
)

func _main(args []string) error {
	var r io.Reader = os.Stdin
	if len(args) > 1 {
		f, err := os.Open(args[1])
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return errors.New("toonfmt: empty input")
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("toonfmt: parsing JSON: %w", err)
	}
	lines, err := toon.EncodeLines(v)
	if err != nil {
		return fmt.Errorf("toonfmt: encoding: %w", err)
	}
	writer := colorable.NewColorableStdout()
	for {
		line, ok := lines.Next()
		if !ok {
			break
		}
		fmt.Fprintln(writer, colorizeLine(line))
	}
	return nil
}

// colorizeLine applies a cheap, line-local coloring: the key segment
// (if any) before the first unquoted colon, then the remainder with
// quoted runs in string color and bare numeric tokens in number color.
func colorizeLine(line string) string {
	trimmed := strings.TrimLeft(line, " ")
	indent := line[:len(line)-len(trimmed)]
	body := trimmed
	if strings.HasPrefix(body, "- ") {
		indent += "- "
		body = body[2:]
	}
	key, rest, hasKey := splitHeader(body)
	var b strings.Builder
	b.WriteString(indent)
	if hasKey {
		b.WriteString(keyColor)
		b.WriteString(key)
		b.WriteString(reset)
		b.WriteString(":")
	}
	b.WriteString(colorizeLiteral(rest))
	return b.String()
}

func splitHeader(body string) (key, rest string, hasKey bool) {
	idx := scanner.IndexOutsideQuotes(body, ':')
	if idx < 0 {
		return "", body, false
	}
	return body[:idx], body[idx+1:], true
}

func colorizeLiteral(s string) string {
	trimmed := strings.TrimSpace(s)
	switch {
	case trimmed == "":
		return s
	case strings.HasPrefix(trimmed, "\""):
		return stringColor + s + reset
	case trimmed == "true" || trimmed == "false" || trimmed == "null":
		return numberColor + s + reset
	case looksNumeric(trimmed):
		return numberColor + s + reset
	default:
		return s
	}
}

func looksNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && r != '-' && r != '+' && r != '.' && r != 'e' && r != 'E' {
			return false
		}
	}
	return true
}

func main() {
	if err := _main(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
