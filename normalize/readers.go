// Package normalize converts raw Yahoo! fantasy JSON documents into the flat
// record shapes in the model package.
//
// The Yahoo! API represents "a list of things" as a JSON object whose members
// are indexed by stringified integers plus a sibling "count" key, and each
// numbered bucket is itself an array whose first element is a list of
// single-key attribute fragments and whose later elements carry auxiliary
// data. The readers in this file implement those two patterns once; the
// per-endpoint extractors build on them.
package normalize

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Node walks doc through the given steps, treating each step as a map key or,
// when the current value is an array, as an integer index. It fails with a
// descriptive error naming the first step that doesn't resolve.
func Node(doc any, steps ...string) (any, error) {
	cur := doc
	for i, step := range steps {
		switch v := cur.(type) {
		case map[string]any:
			next, ok := v[step]
			if !ok {
				return nil, fmt.Errorf("response is missing %q at %v", step, steps[:i+1])
			}
			cur = next
		case []any:
			idx, err := strconv.Atoi(step)
			if err != nil || idx < 0 || idx >= len(v) {
				return nil, fmt.Errorf("response has no element %q at %v", step, steps[:i+1])
			}
			cur = v[idx]
		default:
			return nil, fmt.Errorf("response has unexpected shape at %v", steps[:i+1])
		}
	}
	return cur, nil
}

// NodeMap is Node for steps that must land on a JSON object.
func NodeMap(doc any, steps ...string) (map[string]any, error) {
	v, err := Node(doc, steps...)
	if err != nil {
		return nil, err
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected an object at %v, got %T", steps, v)
	}
	return m, nil
}

// IndexedCollection reads a count-plus-stringified-index object and returns
// the numbered buckets in order. Keys other than the numbered ones (count,
// and whatever else the server tacks on) are ignored; only 0..count-1 are
// read.
func IndexedCollection(node map[string]any) ([]any, error) {
	count, err := IntValue(node["count"])
	if err != nil {
		return nil, fmt.Errorf("indexed collection has no usable count: %w", err)
	}
	out := make([]any, 0, count)
	for i := 0; i < count; i++ {
		bucket, ok := node[strconv.Itoa(i)]
		if !ok {
			return nil, fmt.Errorf("indexed collection is missing entry %d of %d", i, count)
		}
		out = append(out, bucket)
	}
	return out, nil
}

// MergeFragments flattens a list of single-key attribute fragments into one
// map. Non-object fragments (the API emits stray empty arrays) are skipped.
// A boolean-valued "status" is the keeper flag, not the injury designation,
// and is discarded; only string occurrences of status survive.
func MergeFragments(frags []any) map[string]any {
	merged := make(map[string]any)
	for _, f := range frags {
		m, ok := f.(map[string]any)
		if !ok {
			continue
		}
		for k, v := range m {
			if k == "status" {
				if _, isBool := v.(bool); isBool {
					continue
				}
			}
			merged[k] = v
		}
	}
	return merged
}

// entryArray interprets one collection bucket as the positional-tuple
// pattern: unwrap the named field, then return the attribute fragment list
// (element 0) and any auxiliary elements that follow.
func entryArray(bucket any, field string) (frags []any, aux []any, err error) {
	m, ok := bucket.(map[string]any)
	if !ok {
		return nil, nil, fmt.Errorf("%s entry is not an object", field)
	}
	arr, ok := m[field].([]any)
	if !ok {
		return nil, nil, fmt.Errorf("%s entry does not hold a positional array", field)
	}
	if len(arr) == 0 {
		return nil, nil, fmt.Errorf("%s entry is empty", field)
	}
	frags, ok = arr[0].([]any)
	if !ok {
		// Some endpoints skip the fragment-list level and emit a plain
		// object in position 0.
		if m0, isMap := arr[0].(map[string]any); isMap {
			frags = []any{m0}
		} else {
			return nil, nil, fmt.Errorf("%s entry has no attribute fragments", field)
		}
	}
	return frags, arr[1:], nil
}

// auxObject finds the first auxiliary element carrying the given key.
func auxObject(aux []any, key string) (any, bool) {
	for _, a := range aux {
		if m, ok := a.(map[string]any); ok {
			if v, found := m[key]; found {
				return v, true
			}
		}
	}
	return nil, false
}

// IntValue converts a JSON scalar (json.Number or numeric string) to an int.
func IntValue(v any) (int, error) {
	switch n := v.(type) {
	case json.Number:
		i, err := strconv.Atoi(n.String())
		if err != nil {
			return 0, fmt.Errorf("value %q is not an integer", n.String())
		}
		return i, nil
	case string:
		i, err := strconv.Atoi(n)
		if err != nil {
			return 0, fmt.Errorf("value %q is not an integer", n)
		}
		return i, nil
	case float64:
		return int(n), nil
	default:
		return 0, fmt.Errorf("value %v (%T) is not an integer", v, v)
	}
}

// StringValue renders a JSON scalar as its string form.
func StringValue(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case json.Number:
		return s.String()
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", s)
	}
}

// numberOrString parses a stat value as a float64 when possible and keeps
// the original string otherwise (qualitative values like "-").
func numberOrString(v any) any {
	switch n := v.(type) {
	case json.Number:
		if f, err := n.Float64(); err == nil {
			return f
		}
		return n.String()
	case string:
		if f, err := strconv.ParseFloat(n, 64); err == nil {
			return f
		}
		return n
	case float64:
		return n
	default:
		return StringValue(v)
	}
}
