package scalar

import "testing"

// TestAsNumberStripsThousandsSeparators verifies numeric strings with
// separators parse to their plain value.
func TestAsNumberStripsThousandsSeparators(t *testing.T) {
	tests := []struct {
		in   Value
		want float64
		ok   bool
	}{
		{String("1,000"), 1000, true},
		{String("1,250,000.50"), 1250000.50, true},
		{String("  42 "), 42, true},
		{String("12.5"), 12.5, true},
		{Number(7), 7, true},
		{String("soon"), 0, false},
		{String(""), 0, false},
		{Bool(true), 0, false},
		{Absent(), 0, false},
		{List(Number(1)), 0, false},
	}

	for _, tt := range tests {
		got, ok := tt.in.AsNumber()
		if ok != tt.ok {
			t.Errorf("AsNumber(%v): ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("AsNumber(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

// TestAsBoolRecognizesAffirmativeStrings verifies boolean-like strings
// coerce the way form answers arrive.
func TestAsBoolRecognizesAffirmativeStrings(t *testing.T) {
	truthy := []Value{Bool(true), String("true"), String("TRUE"), String("Yes"), String("yes "), String("YES")}
	for _, v := range truthy {
		if !v.AsBool() {
			t.Errorf("AsBool(%v) = false, want true", v)
		}
	}

	falsy := []Value{Bool(false), String("false"), String("no"), String("1"), String("y"), Number(1), Absent(), List(Bool(true))}
	for _, v := range falsy {
		if v.AsBool() {
			t.Errorf("AsBool(%v) = true, want false", v)
		}
	}
}

// TestPresent verifies empty strings and lists count as absent.
func TestPresent(t *testing.T) {
	present := []Value{Bool(false), Number(0), String("x"), List(String("a"))}
	for _, v := range present {
		if !v.Present() {
			t.Errorf("Present(%v) = false, want true", v)
		}
	}

	absent := []Value{Absent(), String(""), String("   "), List()}
	for _, v := range absent {
		if v.Present() {
			t.Errorf("Present(%v) = true, want false", v)
		}
	}
}

// TestAsListWrapsScalars verifies scalars become one-element lists for
// contains comparisons and lists pass through.
func TestAsListWrapsScalars(t *testing.T) {
	if got := String("tile").AsList(); len(got) != 1 || got[0].AsString() != "tile" {
		t.Errorf("AsList(scalar) = %v, want one-element wrap", got)
	}
	if got := List(String("a"), String("b")).AsList(); len(got) != 2 {
		t.Errorf("AsList(list) = %v, want passthrough of 2 elements", got)
	}
	if got := Absent().AsList(); got != nil {
		t.Errorf("AsList(absent) = %v, want nil", got)
	}
	if got := String("").AsList(); got != nil {
		t.Errorf("AsList(empty string) = %v, want nil", got)
	}
}

// TestFromGo verifies decoded JSON shapes convert to the expected kinds.
func TestFromGo(t *testing.T) {
	tests := []struct {
		in   interface{}
		want Kind
	}{
		{nil, KindAbsent},
		{true, KindBool},
		{3, KindNumber},
		{int64(3), KindNumber},
		{3.5, KindNumber},
		{"three", KindString},
		{[]interface{}{"a", 1}, KindList},
		{[]string{"a", "b"}, KindList},
	}

	for _, tt := range tests {
		if got := FromGo(tt.in).Kind(); got != tt.want {
			t.Errorf("FromGo(%v).Kind() = %v, want %v", tt.in, got, tt.want)
		}
	}
}

// TestAsStringRendersScalars verifies comparison rendering.
func TestAsStringRendersScalars(t *testing.T) {
	if got := Number(4).AsString(); got != "4" {
		t.Errorf("AsString(4) = %q, want \"4\"", got)
	}
	if got := Number(4.5).AsString(); got != "4.5" {
		t.Errorf("AsString(4.5) = %q, want \"4.5\"", got)
	}
	if got := Bool(true).AsString(); got != "true" {
		t.Errorf("AsString(true) = %q, want \"true\"", got)
	}
}
