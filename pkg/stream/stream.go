// Package stream implements the stateful worker variants: sensor readings,
// financial transactions, and categorical events. Each worker satisfies the
// nexus.Processor and nexus.Filterer contracts and owns its accumulated state
// exclusively; no state is shared across workers.
package stream

import "strings"

// asBatch coerces data into a slice of items, accepting the concrete slice
// shapes the harness produces. Returns false when data is not a sequence.
func asBatch(data any) ([]any, bool) {
	switch v := data.(type) {
	case []any:
		return v, true
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out, true
	case []float64:
		out := make([]any, len(v))
		for i, f := range v {
			out[i] = f
		}
		return out, true
	case []int:
		out := make([]any, len(v))
		for i, n := range v {
			out[i] = n
		}
		return out, true
	default:
		return nil, false
	}
}

// filterItems keeps the string items of data matching the predicate. Empty
// criteria is the identity; non-sequence input passes through untouched
// (filtering never fails, per the orchestrator's FilterAll contract).
func filterItems(data any, criteria string, match func(string) bool) any {
	if criteria == "" {
		return data
	}
	switch v := data.(type) {
	case []string:
		out := make([]string, 0, len(v))
		for _, s := range v {
			if match(s) {
				out = append(out, s)
			}
		}
		return out
	case []any:
		out := make([]any, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && match(s) {
				out = append(out, item)
			}
		}
		return out
	default:
		return data
	}
}

// cutPair splits a "key:value" item. ok is false when the item is not a
// string or has no separator, i.e. it does not match the pair shape at all.
func cutPair(item any) (key, value string, ok bool) {
	s, isStr := item.(string)
	if !isStr {
		return "", "", false
	}
	key, value, found := strings.Cut(s, ":")
	return key, value, found
}
