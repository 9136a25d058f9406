package condition

import (
	"testing"

	"quote-pricing/core/types"
)

func testSet() *AnswerSet {
	return NewAnswerSet(
		map[string]interface{}{
			"window_count": "1,000",
			"urgent":       "Yes",
			"floor":        3,
			"surfaces":     []interface{}{"Tile", "grout"},
			"notes":        "",
			"has_pets":     true,
		},
		map[string]interface{}{
			"detected_rooms": 4,
			"urgent":         false, // shadowed by the answer above
		},
	)
}

// TestEquals covers coercion by the comparison value's apparent type.
func TestEquals(t *testing.T) {
	set := testSet()

	tests := []struct {
		name string
		cond types.Condition
		want bool
	}{
		{"bool target coerces Yes", types.Condition{Field: "urgent", Op: types.OpEquals, Value: true}, true},
		{"bool target native", types.Condition{Field: "has_pets", Op: types.OpEquals, Value: true}, true},
		{"bool target mismatch", types.Condition{Field: "has_pets", Op: types.OpEquals, Value: false}, false},
		{"number target coerces separators", types.Condition{Field: "window_count", Op: types.OpEquals, Value: 1000}, true},
		{"number target mismatch", types.Condition{Field: "floor", Op: types.OpEquals, Value: 4}, false},
		{"string target", types.Condition{Field: "urgent", Op: types.OpEquals, Value: "Yes"}, true},
		{"missing field", types.Condition{Field: "ghost", Op: types.OpEquals, Value: "x"}, false},
	}

	for _, tt := range tests {
		if got := Evaluate(tt.cond, set); got != tt.want {
			t.Errorf("%s: Evaluate = %v, want %v", tt.name, got, tt.want)
		}
	}
}

// TestNumericComparisons covers gt/gte/lt/lte and uncoercible subjects.
func TestNumericComparisons(t *testing.T) {
	set := testSet()

	tests := []struct {
		name string
		cond types.Condition
		want bool
	}{
		{"gt true", types.Condition{Field: "floor", Op: types.OpGreaterThan, Value: 2}, true},
		{"gt false", types.Condition{Field: "floor", Op: types.OpGreaterThan, Value: 3}, false},
		{"gte boundary", types.Condition{Field: "floor", Op: types.OpGreaterOrEqual, Value: 3}, true},
		{"lt true", types.Condition{Field: "floor", Op: types.OpLessThan, Value: 4}, true},
		{"lte boundary", types.Condition{Field: "floor", Op: types.OpLessOrEqual, Value: 3}, true},
		{"string subject coerces", types.Condition{Field: "window_count", Op: types.OpGreaterOrEqual, Value: 1000}, true},
		{"uncoercible subject is false", types.Condition{Field: "urgent", Op: types.OpGreaterThan, Value: 0}, false},
		{"missing field is false", types.Condition{Field: "ghost", Op: types.OpLessThan, Value: 10}, false},
	}

	for _, tt := range tests {
		if got := Evaluate(tt.cond, set); got != tt.want {
			t.Errorf("%s: Evaluate = %v, want %v", tt.name, got, tt.want)
		}
	}
}

// TestExistence verifies exists/not_exists with the emptiness rule.
func TestExistence(t *testing.T) {
	set := testSet()

	tests := []struct {
		name string
		cond types.Condition
		want bool
	}{
		{"present field exists", types.Condition{Field: "floor", Op: types.OpExists}, true},
		{"empty string counts as absent", types.Condition{Field: "notes", Op: types.OpExists}, false},
		{"missing field does not exist", types.Condition{Field: "ghost", Op: types.OpExists}, false},
		{"not_exists on missing", types.Condition{Field: "ghost", Op: types.OpNotExists}, true},
		{"not_exists on empty string", types.Condition{Field: "notes", Op: types.OpNotExists}, true},
		{"not_exists on present", types.Condition{Field: "floor", Op: types.OpNotExists}, false},
	}

	for _, tt := range tests {
		if got := Evaluate(tt.cond, set); got != tt.want {
			t.Errorf("%s: Evaluate = %v, want %v", tt.name, got, tt.want)
		}
	}
}

// TestContains verifies case-insensitive element matching and scalar wrapping.
func TestContains(t *testing.T) {
	set := testSet()

	tests := []struct {
		name string
		cond types.Condition
		want bool
	}{
		{"case-insensitive element", types.Condition{Field: "surfaces", Op: types.OpContains, Value: "tile"}, true},
		{"second element", types.Condition{Field: "surfaces", Op: types.OpContains, Value: "GROUT"}, true},
		{"no such element", types.Condition{Field: "surfaces", Op: types.OpContains, Value: "carpet"}, false},
		{"scalar subject wraps", types.Condition{Field: "urgent", Op: types.OpContains, Value: "yes"}, true},
		{"missing field", types.Condition{Field: "ghost", Op: types.OpContains, Value: "x"}, false},
	}

	for _, tt := range tests {
		if got := Evaluate(tt.cond, set); got != tt.want {
			t.Errorf("%s: Evaluate = %v, want %v", tt.name, got, tt.want)
		}
	}
}

// TestSignalNamespace verifies signals are queryable but never shadow answers.
func TestSignalNamespace(t *testing.T) {
	set := testSet()

	// detected_rooms lives only in the signal namespace
	if !Evaluate(types.Condition{Field: "detected_rooms", Op: types.OpGreaterOrEqual, Value: 4}, set) {
		t.Error("signal-only key should be reachable through Lookup")
	}

	// urgent exists in both; the answer ("Yes") must win over the signal (false)
	if !Evaluate(types.Condition{Field: "urgent", Op: types.OpEquals, Value: true}, set) {
		t.Error("answer should shadow same-keyed signal")
	}

	if v := set.Signal("urgent"); v.AsBool() {
		t.Error("Signal lookup should see the signal value, not the answer")
	}
}

// TestUnknownOperatorNeverFires verifies the evaluator is total.
func TestUnknownOperatorNeverFires(t *testing.T) {
	set := testSet()
	if Evaluate(types.Condition{Field: "floor", Op: types.Operator("matches"), Value: 3}, set) {
		t.Error("unknown operator must evaluate to false")
	}
}
