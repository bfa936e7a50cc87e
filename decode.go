package toon

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/RolfLobo/toon/internal/decodestream"
	"github.com/RolfLobo/toon/internal/event"
	"github.com/RolfLobo/toon/internal/scanner"
	"github.com/RolfLobo/toon/internal/synerr"
	"github.com/RolfLobo/toon/internal/value"
)

// Event is one structural token yielded by the streaming decoders:
// startObject, endObject, startArray{length}, endArray, key, or
// primitive.
type Event = event.Event

// EventKind identifies an Event's structural role.
type EventKind = event.Kind

// The event kinds a streaming decode can yield.
const (
	StartObject = event.StartObject
	EndObject   = event.EndObject
	StartArray  = event.StartArray
	EndArray    = event.EndArray
	Key         = event.Key
	Primitive   = event.Primitive
)

// Decode parses a TOON document into a Value. text is split on LF; a
// single trailing empty line is ignored.
func Decode(text string, opts ...DecodeOption) (Value, error) {
	return DecodeFromLines(splitInputLines(text), opts...)
}

// DecodeString is an alias for Decode, named to mirror MarshalString on
// the encode side.
func DecodeString(text string, opts ...DecodeOption) (Value, error) {
	return Decode(text, opts...)
}

// DecodeFromLines parses pre-split lines into a Value, applying path
// expansion when requested.
func DecodeFromLines(lines []string, opts ...DecodeOption) (Value, error) {
	cfg, err := newDecodeConfig(opts)
	if err != nil {
		return nil, err
	}
	scanned, err := scanner.ScanLines(strings.Join(lines, "\n"), cfg.Indent, cfg.Strict)
	if err != nil {
		return nil, synerr.New(synerr.IndentationError, 0, err.Error())
	}
	events, err := decodestream.Run(scanned, cfg.Strict)
	if err != nil {
		return nil, err
	}
	return build(events, cfg)
}

// Valid reports whether data is well-formed TOON, without materializing
// a Value tree: it drives DecodeStreamSync to completion and discards
// the events, the TOON analog of encoding/json's json.Valid.
func Valid(data []byte, opts ...DecodeOption) bool {
	it, err := DecodeStreamSync(splitInputLines(string(data)), opts...)
	if err != nil {
		return false
	}
	for {
		_, ok, err := it.Next()
		if err != nil {
			return false
		}
		if !ok {
			return true
		}
	}
}

// DecodeStreamSync returns a lazy, pull-based sequence of structural
// events for lines. expandPaths is rejected: path expansion requires a
// materialized value tree.
func DecodeStreamSync(lines []string, opts ...DecodeOption) (*EventIter, error) {
	cfg, err := newDecodeConfig(opts)
	if err != nil {
		return nil, err
	}
	if cfg.ExpandPaths != ExpandPathsOff {
		return nil, synerr.New(synerr.UnsupportedOption, 0, "expandPaths is not supported by the streaming decoder")
	}
	scanned, err := scanner.ScanLines(strings.Join(lines, "\n"), cfg.Indent, cfg.Strict)
	if err != nil {
		return nil, synerr.New(synerr.IndentationError, 0, err.Error())
	}
	return &EventIter{d: decodestream.New(scanned, cfg.Strict)}, nil
}

// EventIter is a pull-based sequence of Events: call Next until ok is
// false. It holds only the decoder's driver stack, so a caller may
// suspend indefinitely between calls.
type EventIter struct {
	d *decodestream.Decoder
}

// Next returns the next event. ok is false once the stream is
// exhausted; err is non-nil only on malformed input, in which case the
// stream halts at the failure point.
func (it *EventIter) Next() (Event, bool, error) {
	return it.d.Next()
}

// LineSource is an asynchronous source of lines, e.g. a network read
// loop or a file being streamed in. Next returns io.EOF-like ok==false
// (with a nil error) when the source is exhausted.
type LineSource interface {
	Next(ctx context.Context) (line string, ok bool, err error)
}

// sliceLineSource adapts a plain []string to LineSource, for callers
// that already hold all lines but want the DecodeStream code path.
type sliceLineSource struct {
	lines []string
	idx   int
}

func (s *sliceLineSource) Next(ctx context.Context) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	if s.idx >= len(s.lines) {
		return "", false, nil
	}
	line := s.lines[s.idx]
	s.idx++
	return line, true, nil
}

// NewLineSource adapts lines to a LineSource for DecodeStream.
func NewLineSource(lines []string) LineSource {
	return &sliceLineSource{lines: lines}
}

// DecodeStream is the asynchronous counterpart to DecodeStreamSync: it
// drains src under ctx and yields the identical event sequence a
// synchronous decode of the same lines would produce. Because the
// structural decoder needs one line of lookahead to distinguish an
// empty object ("k:" with no body) from an object that opens on the
// next line, the source is drained to completion before decoding
// begins; suspension happens at each upstream Next call, not between
// emitted events.
func DecodeStream(ctx context.Context, src LineSource, opts ...DecodeOption) (*EventIter, error) {
	var lines []string
	for {
		line, ok, err := src.Next(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		lines = append(lines, line)
	}
	return DecodeStreamSync(lines, opts...)
}

// build materializes a Value from an event sequence, expanding folded
// paths when requested.
func build(events []event.Event, cfg *decodeConfig) (Value, error) {
	v, _, err := buildValue(events, 0, cfg)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// buildValue consumes events starting at index i, returning the built
// value and the index just past what it consumed.
func buildValue(events []event.Event, i int, cfg *decodeConfig) (Value, int, error) {
	if i >= len(events) {
		return nil, i, synerr.New(synerr.IncompleteStream, 0, "unexpected end of event stream")
	}
	ev := events[i]
	switch ev.Kind {
	case event.Primitive:
		return ev.Value, i + 1, nil
	case event.StartArray:
		return buildArray(events, i, cfg)
	case event.StartObject:
		return buildObject(events, i, cfg)
	default:
		return nil, i, synerr.New(synerr.IncompleteStream, ev.Line, "expected a value")
	}
}

func buildArray(events []event.Event, i int, cfg *decodeConfig) (Value, int, error) {
	start := events[i]
	i++
	out := make(value.Array, 0, start.Length)
	for i < len(events) && events[i].Kind != event.EndArray {
		v, next, err := buildValue(events, i, cfg)
		if err != nil {
			return nil, i, err
		}
		out = append(out, v)
		i = next
	}
	if i >= len(events) {
		return nil, i, synerr.New(synerr.IncompleteStream, start.Line, "array missing endArray")
	}
	return out, i + 1, nil
}

func buildObject(events []event.Event, i int, cfg *decodeConfig) (Value, int, error) {
	start := events[i]
	i++
	obj := value.Object{}
	for i < len(events) && events[i].Kind != event.EndObject {
		if events[i].Kind != event.Key {
			return nil, i, synerr.New(synerr.IncompleteStream, events[i].Line, "expected a key")
		}
		keyEv := events[i]
		i++
		v, next, err := buildValue(events, i, cfg)
		if err != nil {
			return nil, i, err
		}
		i = next

		if cfg.ExpandPaths == ExpandPathsSafe && !keyEv.KeyWasQuoted {
			// Route every plain key through expandInto, dotted or not, so a
			// later plain key can still conflict against an object already
			// built by expanding an earlier dotted key at the same path.
			segments := []string{keyEv.Key}
			if strings.Contains(keyEv.Key, ".") {
				segments = strings.Split(keyEv.Key, ".")
			}
			if err := expandInto(&obj, segments, v, cfg.Strict, keyEv.Line); err != nil {
				return nil, i, err
			}
		} else {
			obj.Set(keyEv.Key, v)
		}
	}
	if i >= len(events) {
		return nil, i, synerr.New(synerr.IncompleteStream, start.Line, "object missing endObject")
	}
	return obj, i + 1, nil
}

func splitInputLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Unmarshal decodes data into v, by materializing a Value and
// round-tripping it through encoding/json into v's concrete type. This
// is a convenience for callers that want a typed Go value rather than
// the dynamic Value domain.
func Unmarshal(data []byte, v any, opts ...DecodeOption) error {
	decoded, err := Decode(string(data), opts...)
	if err != nil {
		return err
	}
	intermediate, err := json.Marshal(toJSONCompatible(decoded))
	if err != nil {
		return fmt.Errorf("toon: converting decoded value for unmarshal: %w", err)
	}
	return json.Unmarshal(intermediate, v)
}

func toJSONCompatible(v Value) any {
	switch vv := v.(type) {
	case value.Object:
		m := make(map[string]any, len(vv.Fields))
		for _, f := range vv.Fields {
			m[f.Key] = toJSONCompatible(f.Value)
		}
		return m
	case value.Array:
		out := make([]any, len(vv))
		for i, e := range vv {
			out[i] = toJSONCompatible(e)
		}
		return out
	case value.Number:
		return json.Number(vv.Lit)
	default:
		return vv
	}
}
