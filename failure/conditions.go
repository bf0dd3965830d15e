package failure

import (
	"reflect"
	"strings"

	"github.com/netgraph/netgraph/netnodel"
)

// evaluateConditions combines conditions per combine (spec §4.7.2.b /
// §6.5): and requires all true, or requires at least one; an empty list
// matches every entity.
func evaluateConditions(conditions []Condition, combine CombineMode, attrs netnodel.AttrMap) (bool, error) {
	if len(conditions) == 0 {
		return true, nil
	}
	if combine == Or {
		for _, c := range conditions {
			ok, err := evaluateCondition(c, attrs)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}

		return false, nil
	}
	for _, c := range conditions {
		ok, err := evaluateCondition(c, attrs)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}

	return true, nil
}

func evaluateCondition(c Condition, attrs netnodel.AttrMap) (bool, error) {
	if c.Op == OpExists || c.Op == OpNotExists {
		_, ok := attrs.Resolve(c.AttrPath)
		if c.Op == OpExists {
			return ok, nil
		}

		return !ok, nil
	}

	v, ok := attrs.Resolve(c.AttrPath)
	if !ok {
		// A value-based condition on a missing attribute never matches.
		return false, nil
	}

	switch c.Op {
	case OpEq:
		return valuesEqual(v, c.Value), nil
	case OpNe:
		return !valuesEqual(v, c.Value), nil
	case OpLt, OpLe, OpGt, OpGe:
		return compareNumeric(c.Op, v, c.Value)
	case OpContains, OpNotContains:
		contains, err := containsValue(v, c.Value)
		if err != nil {
			return false, err
		}
		if c.Op == OpContains {
			return contains, nil
		}

		return !contains, nil
	case OpIn, OpNotIn:
		member, err := memberOf(c.Value, v)
		if err != nil {
			return false, err
		}
		if c.Op == OpIn {
			return member, nil
		}

		return !member, nil
	default:
		return false, ErrInvalidOperator
	}
}

func compareNumeric(op Operator, left, right interface{}) (bool, error) {
	lf, lok := toFloat(left)
	rf, rok := toFloat(right)
	if !lok || !rok {
		return false, ErrInvalidConditionOperand
	}
	switch op {
	case OpLt:
		return lf < rf, nil
	case OpLe:
		return lf <= rf, nil
	case OpGt:
		return lf > rf, nil
	default:
		return lf >= rf, nil
	}
}

// containsValue implements contains/not_contains: a string left operand
// is tested by substring, an array left operand by element equality
// (spec §6.5).
func containsValue(left, right interface{}) (bool, error) {
	if ls, ok := left.(string); ok {
		rs, ok := right.(string)
		if !ok {
			return false, ErrInvalidConditionOperand
		}

		return strings.Contains(ls, rs), nil
	}
	items, ok := toSlice(left)
	if !ok {
		return false, ErrInvalidConditionOperand
	}
	for _, item := range items {
		if valuesEqual(item, right) {
			return true, nil
		}
	}

	return false, nil
}

// memberOf implements in/not_in: rightArray must be an array, tested by
// element equality against left.
func memberOf(rightArray, left interface{}) (bool, error) {
	items, ok := toSlice(rightArray)
	if !ok {
		return false, ErrInvalidConditionOperand
	}
	for _, item := range items {
		if valuesEqual(item, left) {
			return true, nil
		}
	}

	return false, nil
}

func toSlice(v interface{}) ([]interface{}, bool) {
	switch t := v.(type) {
	case []interface{}:
		return t, true
	case []string:
		out := make([]interface{}, len(t))
		for i, s := range t {
			out[i] = s
		}

		return out, true
	case []float64:
		out := make([]interface{}, len(t))
		for i, f := range t {
			out[i] = f
		}

		return out, true
	default:
		return nil, false
	}
}

// valuesEqual compares a and b: numerically if both resolve to a number
// (so int 5 and float64 5.0 match, matching the document-parser's loose
// JSON numeric typing), otherwise by deep equality.
func valuesEqual(a, b interface{}) bool {
	if af, aok := toFloat(a); aok {
		if bf, bok := toFloat(b); bok {
			return af == bf
		}
	}

	return reflect.DeepEqual(a, b)
}

func toFloat(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int8:
		return float64(t), true
	case int16:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint8:
		return float64(t), true
	case uint16:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	default:
		return 0, false
	}
}
