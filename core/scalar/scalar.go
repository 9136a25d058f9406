// Package scalar normalizes loosely-typed rule and answer values into a
// closed sum type with total coercion accessors.
//
// Values reaching the engine come from form submissions, rule files, and
// extracted signals, so a number may arrive as "1,000", a boolean as "Yes",
// and a single choice as a one-element array. Coercion never fails: it
// degrades to an absent, false, or empty result so downstream pricing
// logic stays total.
package scalar

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind represents the type of a value
type Kind int

const (
	KindAbsent Kind = iota
	KindBool
	KindNumber
	KindString
	KindList
)

// Value is a closed scalar-or-list sum type
type Value struct {
	kind    Kind
	boolVal bool
	numVal  float64
	strVal  string
	listVal []Value
}

// Absent creates an absent value
func Absent() Value {
	return Value{kind: KindAbsent}
}

// Bool creates a boolean value
func Bool(v bool) Value {
	return Value{kind: KindBool, boolVal: v}
}

// Number creates a numeric value
func Number(v float64) Value {
	return Value{kind: KindNumber, numVal: v}
}

// String creates a string value
func String(v string) Value {
	return Value{kind: KindString, strVal: v}
}

// List creates a list value
func List(elements ...Value) Value {
	return Value{kind: KindList, listVal: elements}
}

// FromGo converts an arbitrary decoded value (JSON, HCL, form input) to a
// Value. Unrecognized types fall back to their string representation.
func FromGo(v interface{}) Value {
	switch val := v.(type) {
	case nil:
		return Absent()
	case Value:
		return val
	case bool:
		return Bool(val)
	case int:
		return Number(float64(val))
	case int64:
		return Number(float64(val))
	case float32:
		return Number(float64(val))
	case float64:
		return Number(val)
	case string:
		return String(val)
	case []interface{}:
		elements := make([]Value, len(val))
		for i, e := range val {
			elements[i] = FromGo(e)
		}
		return List(elements...)
	case []string:
		elements := make([]Value, len(val))
		for i, e := range val {
			elements[i] = String(e)
		}
		return List(elements...)
	default:
		return String(fmt.Sprintf("%v", v))
	}
}

// Kind returns the value kind
func (v Value) Kind() Kind {
	return v.kind
}

// Present reports whether the value exists and is non-empty. An empty
// string or empty list counts as absent.
func (v Value) Present() bool {
	switch v.kind {
	case KindAbsent:
		return false
	case KindString:
		return strings.TrimSpace(v.strVal) != ""
	case KindList:
		return len(v.listVal) > 0
	default:
		return true
	}
}

// AsNumber coerces the value to a float64. Strings are parsed after
// stripping thousands separators; non-numeric input reports no value.
func (v Value) AsNumber() (float64, bool) {
	switch v.kind {
	case KindNumber:
		return v.numVal, true
	case KindString:
		s := strings.ReplaceAll(strings.TrimSpace(v.strVal), ",", "")
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// AsBool coerces the value to a boolean. Case-insensitive "true" and
// "yes" strings are true; everything not already boolean is false.
func (v Value) AsBool() bool {
	switch v.kind {
	case KindBool:
		return v.boolVal
	case KindString:
		switch strings.ToLower(strings.TrimSpace(v.strVal)) {
		case "true", "yes":
			return true
		}
		return false
	default:
		return false
	}
}

// AsString renders scalar values for string comparison
func (v Value) AsString() string {
	switch v.kind {
	case KindString:
		return v.strVal
	case KindNumber:
		return strconv.FormatFloat(v.numVal, 'f', -1, 64)
	case KindBool:
		if v.boolVal {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}

// AsList passes lists through and wraps present scalars as one-element
// lists. Absent values yield nil.
func (v Value) AsList() []Value {
	switch v.kind {
	case KindList:
		return v.listVal
	case KindAbsent:
		return nil
	default:
		if !v.Present() {
			return nil
		}
		return []Value{v}
	}
}
