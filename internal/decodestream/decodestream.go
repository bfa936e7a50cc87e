// Package decodestream implements the structural decoder: a
// recursive-descent driver over indented lines, implemented
// without recursion on the input by tracking an explicit frame stack,
// emitting a pull-based sequence of structural events. Restructured
// from the usual ExpectValue / InObject / InList / InTabular state
// machine into a step-at-a-time Decoder so callers can suspend between
// events, splitting "produce one token" from "drive the grammar".
package decodestream

import (
	"strings"

	"github.com/RolfLobo/toon/internal/event"
	"github.com/RolfLobo/toon/internal/scanner"
	"github.com/RolfLobo/toon/internal/synerr"
	"github.com/RolfLobo/toon/internal/token"
	"github.com/RolfLobo/toon/internal/value"
)

type frameKind int

const (
	frameObject frameKind = iota
	frameList
	frameTabular
)

type frame struct {
	kind      frameKind
	level     int
	remaining int
	declared  int
	fields    []string
	delim     rune
}

// Decoder drives the structural decode of a fixed slice of scanner
// lines, one event at a time.
type Decoder struct {
	lines    []scanner.Line
	idx      int
	strict   bool
	stack    []frame
	queue    []event.Event
	lastLine int

	rootConsumed bool
	done         bool
}

// New creates a Decoder over lines (as produced by scanner.ScanLines).
func New(lines []scanner.Line, strict bool) *Decoder {
	return &Decoder{lines: lines, strict: strict}
}

// Next returns the next structural event. ok is false once the stream
// is exhausted with no error.
func (d *Decoder) Next() (event.Event, bool, error) {
	for len(d.queue) == 0 && !d.done {
		if err := d.advance(); err != nil {
			return event.Event{}, false, err
		}
	}
	if len(d.queue) == 0 {
		return event.Event{}, false, nil
	}
	ev := d.queue[0]
	d.queue = d.queue[1:]
	return ev, true, nil
}

// Run fully drains a Decoder into a slice, for callers that do not need
// laziness (e.g. decodeFromLines).
func Run(lines []scanner.Line, strict bool) ([]event.Event, error) {
	d := New(lines, strict)
	var out []event.Event
	for {
		ev, ok, err := d.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, ev)
	}
}

func (d *Decoder) emit(evs ...event.Event) {
	d.queue = append(d.queue, evs...)
}

func (d *Decoder) peekContent() *scanner.Line {
	for i := d.idx; i < len(d.lines); i++ {
		if !d.lines[i].Blank {
			return &d.lines[i]
		}
	}
	return nil
}

func (d *Decoder) consumeContent() *scanner.Line {
	for d.idx < len(d.lines) {
		l := &d.lines[d.idx]
		d.idx++
		if !l.Blank {
			d.lastLine = l.Number
			return l
		}
	}
	return nil
}

func (d *Decoder) eofLine() int {
	if len(d.lines) == 0 {
		return 1
	}
	return d.lines[len(d.lines)-1].Number
}

func (d *Decoder) top() *frame {
	if len(d.stack) == 0 {
		return nil
	}
	return &d.stack[len(d.stack)-1]
}

func (d *Decoder) pop() frame {
	f := d.stack[len(d.stack)-1]
	d.stack = d.stack[:len(d.stack)-1]
	return f
}

// advance performs one unit of work: it may close frames whose body is
// exhausted, or consume one content line and emit the events it implies.
func (d *Decoder) advance() error {
	// Close out any frames whose body is already complete before looking
	// at more input: a tabular/list frame whose declared count has been
	// satisfied, or an object frame with no further sibling key at its
	// level.
	for {
		f := d.top()
		if f == nil {
			break
		}
		switch f.kind {
		case frameList, frameTabular:
			if f.remaining == 0 {
				if next := d.peekContent(); next != nil && next.Indent == f.level {
					// A row/entry follows at the array's own body level even
					// though the declared count is already satisfied: the
					// document has more entries than its header declared.
					if d.strict {
						return synerr.New(synerr.LengthMismatch, next.Number, "array has more entries than declared").
							Expect(itoa(f.declared), itoa(f.declared+1))
					}
					f.remaining++
					break
				}
				d.pop()
				d.emit(event.NewEndArray(d.lastLine))
				continue
			}
		case frameObject:
			next := d.peekContent()
			if next == nil || next.Indent < f.level {
				d.pop()
				d.emit(event.NewEndObject(d.lastLine))
				continue
			}
		}
		break
	}

	if !d.rootConsumed {
		return d.consumeRoot()
	}
	if len(d.stack) == 0 {
		d.done = true
		return nil
	}

	f := d.top()
	switch f.kind {
	case frameObject:
		return d.advanceObject(f)
	case frameList:
		return d.advanceList(f)
	case frameTabular:
		return d.advanceTabular(f)
	}
	return nil
}

// consumeRoot inspects the very first content line to decide whether
// the document's root value is an implicit object (a bare "key: value"
// line with no enclosing header), a root array, or a single primitive.
func (d *Decoder) consumeRoot() error {
	d.rootConsumed = true
	line := d.peekContent()
	if line == nil {
		// Empty input decodes to an empty object (a boundary case, not a grammar production).
		d.emit(event.NewStartObject(d.eofLine()), event.NewEndObject(d.eofLine()))
		d.done = true
		return nil
	}
	if line.Indent != 0 {
		return synerr.New(synerr.IndentationError, line.Number, "root value must start at indent 0")
	}

	header, ok, err := scanner.ParseHeader(line.Content)
	if err != nil {
		return synerr.Newf(synerr.MalformedHeader, line.Number, "%s", err)
	}
	if ok && !header.HasKey {
		d.consumeContent()
		return d.openArrayHeader(header, line.Number, 0)
	}
	if ok && header.HasKey {
		// A root value is never itself a keyed header; a key at the root
		// implies the root is an object and this line is its first field.
		d.emit(event.NewStartObject(line.Number))
		d.stack = append(d.stack, frame{kind: frameObject, level: 0})
		return nil
	}

	key, rest, ok, err := scanner.SplitKeyValue(line.Content)
	if err != nil {
		return synerr.Newf(synerr.MalformedHeader, line.Number, "%s", err)
	}
	if ok {
		_ = key
		_ = rest
		d.emit(event.NewStartObject(line.Number))
		d.stack = append(d.stack, frame{kind: frameObject, level: 0})
		return nil
	}

	// No colon at all: a bare primitive is the entire document.
	d.consumeContent()
	v, err := parseScalarToken(line.Content)
	if err != nil {
		return synerr.Newf(synerr.MalformedHeader, line.Number, "%s", err)
	}
	d.emit(event.NewPrimitive(line.Number, v))
	d.done = true
	return nil
}

// openArrayHeader emits the events implied by a (possibly keyed) array
// header already matched by scanner.ParseHeader, and pushes whatever
// frame its body requires. fl is the field level used to compute the
// indent level of the array's body (fl+1).
func (d *Decoder) openArrayHeader(h scanner.Header, line int, fl int) error {
	if h.HasKey {
		d.emit(event.NewKey(line, h.Key, false))
	}
	if h.HasFields {
		if h.InlineValues != "" {
			return synerr.New(synerr.MalformedHeader, line, "tabular array header cannot carry inline values")
		}
		d.emit(event.NewStartArray(line, h.Length))
		if h.Length == 0 {
			d.emit(event.NewEndArray(line))
			return nil
		}
		d.stack = append(d.stack, frame{kind: frameTabular, level: fl + 1, fields: h.Fields, delim: h.Delimiter.Rune(), remaining: h.Length, declared: h.Length})
		return nil
	}

	if h.InlineValues != "" {
		cells, err := scanner.SplitDelimited(h.InlineValues, h.Delimiter.Rune())
		if err != nil {
			return synerr.Newf(synerr.UnterminatedString, line, "%s", err)
		}
		if d.strict && len(cells) != h.Length {
			return synerr.New(synerr.LengthMismatch, line, "declared array length does not match inline value count").
				Expect(itoa(h.Length), itoa(len(cells)))
		}
		d.emit(event.NewStartArray(line, h.Length))
		for _, c := range cells {
			v, err := parseScalarToken(c)
			if err != nil {
				return synerr.Newf(synerr.MalformedHeader, line, "%s", err)
			}
			d.emit(event.NewPrimitive(line, v))
		}
		d.emit(event.NewEndArray(line))
		return nil
	}

	d.emit(event.NewStartArray(line, h.Length))
	if h.Length == 0 {
		d.emit(event.NewEndArray(line))
		return nil
	}
	d.stack = append(d.stack, frame{kind: frameList, level: fl + 1, remaining: h.Length, declared: h.Length})
	return nil
}

func (d *Decoder) advanceObject(f *frame) error {
	next := d.peekContent()
	if next.Indent > f.level {
		return synerr.New(synerr.IndentationError, next.Number, "unexpected indentation inside object")
	}
	line := d.consumeContent()
	return d.emitKeyedValue(line.Content, f.level, line.Number)
}

// emitKeyedValue parses a "KEY[...]...:..." production and emits the
// events it implies, pushing a child frame at fl+1 when the value is an
// object or a multi-line array.
func (d *Decoder) emitKeyedValue(content string, fl int, line int) error {
	header, ok, err := scanner.ParseHeader(content)
	if err != nil {
		return synerr.Newf(synerr.MalformedHeader, line, "%s", err)
	}
	if ok {
		return d.openArrayHeader(header, line, fl)
	}

	key, rest, ok, err := scanner.SplitKeyValue(content)
	if err != nil {
		return synerr.Newf(synerr.MalformedHeader, line, "%s", err)
	}
	if !ok {
		return synerr.New(synerr.MalformedHeader, line, "expected a key").Expect("KEY:", content)
	}
	d.emit(event.NewKey(line, key, strings.HasPrefix(content, `"`)))

	if rest == "" {
		next := d.peekContent()
		if next != nil && next.Indent == fl+1 {
			d.emit(event.NewStartObject(line))
			d.stack = append(d.stack, frame{kind: frameObject, level: fl + 1})
			return nil
		}
		d.emit(event.NewStartObject(line), event.NewEndObject(line))
		return nil
	}

	v, err := parseScalarToken(rest)
	if err != nil {
		return synerr.Newf(synerr.MalformedHeader, line, "%s", err)
	}
	d.emit(event.NewPrimitive(line, v))
	return nil
}

func (d *Decoder) advanceList(f *frame) error {
	next := d.peekContent()
	if next == nil || next.Indent < f.level {
		if d.strict {
			return synerr.New(synerr.LengthMismatch, d.lastLine, "array has fewer entries than declared").
				Expect(itoa(f.remaining), "0")
		}
		f.remaining = 0
		return nil
	}
	if next.Indent > f.level {
		return synerr.New(synerr.IndentationError, next.Number, "unexpected indentation inside list")
	}

	line := d.consumeContent()
	content := line.Content
	if !strings.HasPrefix(content, "-") {
		return synerr.New(synerr.MalformedHeader, line.Number, "expected a list entry beginning with '-'").
			Expect("- ...", content)
	}
	remainder := strings.TrimPrefix(content, "-")
	remainder = strings.TrimPrefix(remainder, " ")

	f.remaining--

	if remainder == "" {
		// A bare "-" with nothing else is how the encoder writes an empty
		// object entry.
		d.emit(event.NewStartObject(line.Number), event.NewEndObject(line.Number))
		return nil
	}

	header, ok, err := scanner.ParseHeader(remainder)
	if err != nil {
		return synerr.Newf(synerr.MalformedHeader, line.Number, "%s", err)
	}
	if ok && !header.HasKey {
		// The entry is itself an array: the dash line doubles as that
		// array's own header line, so its body sits at f.level+1.
		return d.openArrayHeader(header, line.Number, f.level)
	}

	// Either a "- key: value" / "- key:" entry, or "- key[N]...:" where
	// the first field's value is itself an array: in both cases the
	// entry is an object whose first field lives on the dash line and
	// whose remaining fields (if any) are siblings at f.level+1.
	if ok || looksLikeKeyValue(remainder) {
		d.emit(event.NewStartObject(line.Number))
		d.stack = append(d.stack, frame{kind: frameObject, level: f.level + 1})
		return d.emitKeyedValue(remainder, f.level+1, line.Number)
	}

	v, err := parseScalarToken(remainder)
	if err != nil {
		return synerr.Newf(synerr.MalformedHeader, line.Number, "%s", err)
	}
	d.emit(event.NewPrimitive(line.Number, v))
	return nil
}

func looksLikeKeyValue(s string) bool {
	_, _, ok, err := scanner.SplitKeyValue(s)
	return err == nil && ok
}

func (d *Decoder) advanceTabular(f *frame) error {
	next := d.peekContent()
	if next == nil || next.Indent < f.level {
		if d.strict {
			return synerr.New(synerr.LengthMismatch, d.lastLine, "tabular array has fewer rows than declared").
				Expect(itoa(f.remaining), "0")
		}
		f.remaining = 0
		return nil
	}
	if next.Indent > f.level {
		return synerr.New(synerr.IndentationError, next.Number, "unexpected indentation inside tabular array")
	}

	line := d.consumeContent()
	cells, err := scanner.SplitDelimited(line.Content, f.delim)
	if err != nil {
		return synerr.Newf(synerr.UnterminatedString, line.Number, "%s", err)
	}
	if len(cells) != len(f.fields) {
		if d.strict {
			return synerr.New(synerr.DelimiterMismatch, line.Number, "row cell count does not match field count").
				Expect(itoa(len(f.fields)), itoa(len(cells)))
		}
		cells = adjustCellCount(cells, len(f.fields))
	}

	d.emit(event.NewStartObject(line.Number))
	for i, name := range f.fields {
		d.emit(event.NewKey(line.Number, name, false))
		v, err := parseScalarToken(cells[i])
		if err != nil {
			return synerr.Newf(synerr.MalformedHeader, line.Number, "%s", err)
		}
		d.emit(event.NewPrimitive(line.Number, v))
	}
	d.emit(event.NewEndObject(line.Number))
	f.remaining--
	return nil
}

func adjustCellCount(cells []string, n int) []string {
	if len(cells) > n {
		return cells[:n]
	}
	for len(cells) < n {
		cells = append(cells, "")
	}
	return cells
}

// parseScalarToken implements the scalar grammar: quoted strings,
// the numeric grammar, the three reserved literals, and otherwise a raw
// string.
func parseScalarToken(tok string) (value.Value, error) {
	if tok == "" {
		return "", nil
	}
	if tok[0] == '"' {
		return token.Unquote(tok)
	}
	switch tok {
	case "true":
		return true, nil
	case "false":
		return false, nil
	case "null":
		return nil, nil
	}
	if token.LooksNumeric(tok) {
		if strings.ContainsAny(tok, ".eE") {
			return value.Float(tok), nil
		}
		return value.Int(tok), nil
	}
	return tok, nil
}

func itoa(n int) string {
	var b [20]byte
	i := len(b)
	neg := n < 0
	if neg {
		n = -n
	}
	if n == 0 {
		return "0"
	}
	for n > 0 {
		i--
		b[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		b[i] = '-'
	}
	return string(b[i:])
}
