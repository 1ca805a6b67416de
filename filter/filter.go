// Package filter implements the inclusion-filter and field-projection
// engine used by exporters (spec §4.8). Records are routed through a
// generic map[string]any (the "dynamic reflection" strategy spec §9
// allows) via encoding/json, using the same field names as the
// persisted columns, so filter and projection share one representation
// regardless of which concrete struct fields the artifact record gains
// over time.
package filter

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jmeta/jmeta/artifact"
)

// Fields is a field -> allowed-values filter map. A value prefixed with
// "!" is a negation.
type Fields map[string][]string

// ToMap marshals r into a string-keyed map using its json tags, the
// shared representation filter and projection operate on.
func ToMap(r artifact.Record) (map[string]any, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("filter: marshal record: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("filter: unmarshal record: %w", err)
	}
	return m, nil
}

// Match reports whether m satisfies every field filter in f, per spec
// §4.8: for every field, (any positive match OR no positives) AND (no
// negative match). A field absent from m is trivially matching.
func Match(m map[string]any, f Fields) bool {
	for field, values := range f {
		v, present := m[field]
		if !present {
			continue
		}
		var positives, negatives []string
		for _, val := range values {
			if strings.HasPrefix(val, "!") {
				negatives = append(negatives, val[1:])
			} else {
				positives = append(positives, val)
			}
		}
		if matchesAny(v, negatives) {
			return false
		}
		if len(positives) > 0 && !matchesAny(v, positives) {
			return false
		}
	}
	return true
}

// matchesAny reports whether v equals, or (when v is a slice) contains,
// any of candidates. Scalars are compared as strings (numbers
// stringified); sets compare by membership, per spec §4.8.
func matchesAny(v any, candidates []string) bool {
	if len(candidates) == 0 {
		return false
	}
	switch t := v.(type) {
	case []any:
		for _, elem := range t {
			es := stringify(elem)
			for _, c := range candidates {
				if es == c {
					return true
				}
			}
		}
		return false
	default:
		s := stringify(v)
		for _, c := range candidates {
			if s == c {
				return true
			}
		}
		return false
	}
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		if t {
			return "true"
		}
		return "false"
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", t)
	}
}

// Project applies include/exclude field projection to m, per spec §4.8:
// a field is kept iff (include is empty OR include contains it) AND
// exclude does not contain it.
func Project(m map[string]any, include, exclude []string) map[string]any {
	inc := toSet(include)
	exc := toSet(exclude)
	out := make(map[string]any, len(m))
	for k, v := range m {
		if exc[k] {
			continue
		}
		if len(inc) > 0 && !inc[k] {
			continue
		}
		out[k] = v
	}
	return out
}

func toSet(ss []string) map[string]bool {
	m := make(map[string]bool, len(ss))
	for _, s := range ss {
		m[s] = true
	}
	return m
}

// SortedKeys returns m's keys in sorted order.
func SortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
