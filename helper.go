// File: confumo/helper.go
package confumo

import (
	"fmt"
	"strings"
)

// normalizeKey converts a flag name to its settings-map key form.
// CLI flags use dashes, persisted keys use underscores ("log-level" and
// "log_level" address the same setting).
func normalizeKey(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}

// deepCopyMap returns a recursive copy of a settings map. Nested maps and
// slices are duplicated so the result shares no mutable state with the
// input.
func deepCopyMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = deepCopyValue(v)
	}
	return out
}

// deepCopyValue duplicates maps and slices recursively; scalars are
// returned as-is.
func deepCopyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return deepCopyMap(val)
	case map[any]any:
		out := make(map[any]any, len(val))
		for k, item := range val {
			out[k] = deepCopyValue(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = deepCopyValue(item)
		}
		return out
	case []string:
		out := make([]string, len(val))
		copy(out, val)
		return out
	default:
		return v
	}
}

// normalizeLoaded rewrites map[any]any trees (as produced by some YAML
// inputs) into map[string]any trees so settings remain uniformly keyed.
func normalizeLoaded(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = normalizeLoaded(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[keyString(k)] = normalizeLoaded(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalizeLoaded(item)
		}
		return out
	default:
		return v
	}
}

// keyString renders a YAML map key as a string. Non-string keys are rare
// but legal YAML.
func keyString(k any) string {
	if s, ok := k.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", k)
}
