package netnodel

import "strings"

// AttrMap is the opaque per-entity attribute dictionary carried by Node,
// Link, RiskGroup, and Network. Values may be strings, numbers, booleans,
// or nested AttrMap/map[string]interface{} values (JSON-shaped).
type AttrMap map[string]interface{}

// Clone returns a shallow copy of m; nested maps are not deep-copied (they
// are treated as immutable once attached to a Node/Link, matching the
// teacher's Vertex.Metadata convention: "not deep-copied by Clone").
func (m AttrMap) Clone() AttrMap {
	if m == nil {
		return nil
	}
	out := make(AttrMap, len(m))
	for k, v := range m {
		out[k] = v
	}

	return out
}

// Resolve walks a dot-separated attribute path (e.g. "hardware.vendor")
// through m and any nested map[string]interface{}/AttrMap values.
// Returns (value, true) if the full path resolved, (nil, false) otherwise.
func (m AttrMap) Resolve(path string) (interface{}, bool) {
	if m == nil || path == "" {
		return nil, false
	}
	parts := strings.Split(path, ".")
	var cur interface{} = map[string]interface{}(m)
	for _, p := range parts {
		asMap, ok := toStringMap(cur)
		if !ok {
			return nil, false
		}
		v, exists := asMap[p]
		if !exists {
			return nil, false
		}
		cur = v
	}

	return cur, true
}

// toStringMap normalizes AttrMap and map[string]interface{} to a plain
// map[string]interface{} for uniform traversal.
func toStringMap(v interface{}) (map[string]interface{}, bool) {
	switch t := v.(type) {
	case AttrMap:
		return map[string]interface{}(t), true
	case map[string]interface{}:
		return t, true
	default:
		return nil, false
	}
}

// Flatten merges a set of "top-level" fields with m (the nested attrs map)
// into a single flat dictionary used by failure-policy condition
// evaluation. Top-level fields win on key conflict, per spec §4.7.2.b.
func Flatten(topLevel map[string]interface{}, m AttrMap) AttrMap {
	out := make(AttrMap, len(topLevel)+len(m))
	for k, v := range m {
		out[k] = v
	}
	for k, v := range topLevel {
		out[k] = v
	}

	return out
}
