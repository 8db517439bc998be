// Package engine evaluates triage rule sets against fact maps: a total,
// recursive condition evaluator plus the priority-ordered rules engine that
// selects an outcome and enforces tier safeguards.
package engine

import (
	"reflect"
	"strings"

	"github.com/rkimidis/acucare-pathways/internal/domain"
)

// EvaluateCondition recursively evaluates a condition tree against a fact
// map. It is total: over any well-typed fact map it returns a boolean and
// never fails, because malformed conditions are rejected at rule-set load
// time.
//
// Semantics:
//   - All short-circuits false on the first false child; empty All is
//     vacuously true.
//   - Any short-circuits true on the first true child; empty Any is false.
//   - A leaf whose fact path is absent is false, except "== null" which
//     treats absence as a match.
//   - Type mismatches under ordering operators yield false, never an error.
func EvaluateCondition(cond domain.Condition, facts domain.FactMap) bool {
	switch cond.Kind {
	case domain.CondAll:
		for _, child := range cond.Children {
			if !EvaluateCondition(child, facts) {
				return false
			}
		}
		return true
	case domain.CondAny:
		for _, child := range cond.Children {
			if EvaluateCondition(child, facts) {
				return true
			}
		}
		return false
	case domain.CondLeaf:
		return evaluateLeaf(cond, facts)
	default:
		return false
	}
}

func evaluateLeaf(cond domain.Condition, facts domain.FactMap) bool {
	actual, present := facts.Resolve(cond.Fact)
	if !present {
		// Explicit missing-fact equivalence to null.
		return cond.Op == domain.OpEqual && cond.Value == nil
	}
	return compare(actual, cond.Op, cond.Value)
}

func compare(actual any, op domain.Operator, expected any) bool {
	switch op {
	case domain.OpEqual:
		return valuesEqual(actual, expected)
	case domain.OpNotEqual:
		return !valuesEqual(actual, expected)
	case domain.OpGreater:
		a, b, ok := bothNumeric(actual, expected)
		return ok && a > b
	case domain.OpGreaterOrEqual:
		a, b, ok := bothNumeric(actual, expected)
		return ok && a >= b
	case domain.OpLess:
		a, b, ok := bothNumeric(actual, expected)
		return ok && a < b
	case domain.OpLessOrEqual:
		a, b, ok := bothNumeric(actual, expected)
		return ok && a <= b
	case domain.OpIn:
		return sequenceContains(expected, actual)
	case domain.OpContains:
		if haystack, ok := actual.(string); ok {
			needle, ok := expected.(string)
			return ok && strings.Contains(haystack, needle)
		}
		return sequenceContains(actual, expected)
	default:
		return false
	}
}

// valuesEqual compares two fact values with type-appropriate semantics:
// numerics compare by value across int/float representations, everything
// else by deep equality.
func valuesEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if fa, fb, ok := bothNumeric(a, b); ok {
		return fa == fb
	}
	return reflect.DeepEqual(a, b)
}

// sequenceContains reports whether seq is a sequence holding an element
// equal to value. Non-sequence inputs yield false.
func sequenceContains(seq any, value any) bool {
	rv := reflect.ValueOf(seq)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return false
	}
	for i := 0; i < rv.Len(); i++ {
		if valuesEqual(rv.Index(i).Interface(), value) {
			return true
		}
	}
	return false
}

// bothNumeric coerces both values to float64 if both are numeric.
func bothNumeric(a, b any) (float64, float64, bool) {
	fa, ok := toFloat(a)
	if !ok {
		return 0, 0, false
	}
	fb, ok := toFloat(b)
	if !ok {
		return 0, 0, false
	}
	return fa, fb, true
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
