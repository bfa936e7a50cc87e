package toon

import (
	"strings"

	"github.com/RolfLobo/toon/internal/synerr"
	"github.com/RolfLobo/toon/internal/token"
	"github.com/RolfLobo/toon/internal/value"
)

// foldKeys rewrites every chain of single-key objects in v into a single
// dotted key, per the keyFolding:"safe" rule: walking down through
// unguarded single-key objects accumulates path segments before
// recursing into whatever value remains at the end of the chain, so
// dots introduced by folding are never mistaken for a raw key that
// itself contains a literal dot.
func foldKeys(v value.Value, maxDepth int) value.Value {
	switch vv := v.(type) {
	case value.Object:
		return foldObjectFields(vv, maxDepth)
	case value.Array:
		out := make(value.Array, len(vv))
		for i, e := range vv {
			out[i] = foldKeys(e, maxDepth)
		}
		return out
	default:
		return v
	}
}

func foldObjectFields(o value.Object, maxDepth int) value.Object {
	fields := make([]value.Field, 0, len(o.Fields))
	for _, f := range o.Fields {
		path := []string{f.Key}
		cur := f.Value
		if canFoldKeySegment(f.Key) {
			for len(path)-1 < maxDepth {
				obj, ok := cur.(value.Object)
				if !ok || len(obj.Fields) != 1 {
					break
				}
				childKey := obj.Fields[0].Key
				if !canFoldKeySegment(childKey) {
					break
				}
				path = append(path, childKey)
				cur = obj.Fields[0].Value
			}
		}
		key := strings.Join(path, ".")
		if len(path) > 1 {
			// Mark the key as a genuine fold product, distinct from a
			// literal key that happens to contain a dot: quoteKey must
			// leave the former unquoted (it's meant to expand back) and
			// quote the latter (it isn't).
			key = foldedKeyMarker + key
		}
		fields = append(fields, value.Field{
			Key:   key,
			Value: foldKeys(cur, maxDepth),
		})
	}
	return value.Object{Fields: fields}
}

// foldedKeyMarker prefixes a key produced by folding, stripped again by
// quoteKey at emission time. Never written to output.
const foldedKeyMarker = "\x00"

// canFoldKeySegment reports whether an intermediate key encountered
// while walking a fold chain may be merged into the dotted path: it
// must not itself contain a literal dot or whitespace, and must not
// otherwise require quoting.
func canFoldKeySegment(k string) bool {
	if strings.Contains(k, ".") {
		return false
	}
	return !token.NeedsQuoting(k, ',')
}

// expandInto inserts v at the dotted path `segments` within root,
// creating intermediate objects as needed and resolving conflicts per
// object-vs-object merges recursively; a clash between an
// object and a non-object fails under strict mode (ExpansionConflict)
// and is last-write-wins under lenient mode.
func expandInto(root *value.Object, segments []string, v value.Value, strict bool, line int) error {
	if len(segments) == 0 {
		return nil
	}
	key := segments[0]
	existing, found := root.Get(key)
	if len(segments) == 1 {
		if found {
			merged, err := mergeLeaf(existing, v, strict, key, line)
			if err != nil {
				return err
			}
			root.Set(key, merged)
			return nil
		}
		root.Set(key, v)
		return nil
	}

	var child value.Object
	if found {
		obj, ok := existing.(value.Object)
		if !ok {
			if strict {
				return synerr.New(synerr.ExpansionConflict, line, "path merge conflict at "+key+" (object vs non-object)")
			}
			child = value.Object{}
		} else {
			child = obj
		}
	}
	if err := expandInto(&child, segments[1:], v, strict, line); err != nil {
		return err
	}
	root.Set(key, child)
	return nil
}

func mergeLeaf(existing, incoming value.Value, strict bool, key string, line int) (value.Value, error) {
	existingObj, existingIsObj := existing.(value.Object)
	incomingObj, incomingIsObj := incoming.(value.Object)
	switch {
	case existingIsObj && incomingIsObj:
		merged := existingObj
		for _, f := range incomingObj.Fields {
			if err := expandInto(&merged, []string{f.Key}, f.Value, strict, line); err != nil {
				return nil, err
			}
		}
		return merged, nil
	case existingIsObj != incomingIsObj:
		if strict {
			return nil, synerr.New(synerr.ExpansionConflict, line, "path merge conflict at "+key+" (object vs non-object)")
		}
		return incoming, nil
	default:
		return incoming, nil
	}
}
