package results

import (
	"fmt"
	"math"
)

// toDicter is implemented by values carrying their own canonical export
// shape (spec §6.3: "objects with a to_dict() method are expanded").
type toDicter interface {
	ToDict() map[string]interface{}
}

// sanitize recursively walks v, producing a tree of only JSON-safe values:
// maps, slices, strings, bools, and finite numbers. NaN and Inf floats are
// emitted as the strings "NaN", "Infinity", and "-Infinity" (spec §6.3),
// and any toDicter is expanded before recursing further.
func sanitize(v interface{}) interface{} {
	switch val := v.(type) {
	case toDicter:
		return sanitize(val.ToDict())
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, e := range val {
			out[k] = sanitize(e)
		}

		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, e := range val {
			out[i] = sanitize(e)
		}

		return out
	case float64:
		return sanitizeFloat(val)
	case float32:
		return sanitizeFloat(float64(val))
	default:
		return sanitizeReflective(v)
	}
}

func sanitizeFloat(f float64) interface{} {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	default:
		return f
	}
}

// sanitizeReflective handles map and slice types whose element type isn't
// the interface{} used above (e.g. map[string]float64, []string), which
// arise naturally from typed analysis results embedded in step data.
func sanitizeReflective(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]float64:
		out := make(map[string]interface{}, len(val))
		for k, e := range val {
			out[k] = sanitizeFloat(e)
		}

		return out
	case map[string]string:
		out := make(map[string]interface{}, len(val))
		for k, e := range val {
			out[k] = e
		}

		return out
	case []float64:
		out := make([]interface{}, len(val))
		for i, e := range val {
			out[i] = sanitizeFloat(e)
		}

		return out
	case []string:
		out := make([]interface{}, len(val))
		for i, e := range val {
			out[i] = e
		}

		return out
	case fmt.Stringer:
		return val.String()
	default:
		return v
	}
}
