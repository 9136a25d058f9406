// Package rules - Safe cty value conversion
// Values from rule files are never blindly passed through: conversion is
// total and unevaluable expressions degrade to absent values.
package rules

import (
	"github.com/shopspring/decimal"
	"github.com/zclconf/go-cty/cty"
)

// ctyToGo converts a cty value to the plain Go shapes the engine's scalar
// coercion accepts: bool, float64, string, []interface{}, or nil.
func ctyToGo(val cty.Value) interface{} {
	if !val.IsKnown() || val.IsNull() {
		return nil
	}

	switch {
	case val.Type() == cty.String:
		return val.AsString()

	case val.Type() == cty.Number:
		f, _ := val.AsBigFloat().Float64()
		return f

	case val.Type() == cty.Bool:
		return val.True()

	case val.Type().IsListType() || val.Type().IsSetType() || val.Type().IsTupleType():
		if !val.CanIterateElements() {
			return nil
		}
		result := make([]interface{}, 0, val.LengthInt())
		iter := val.ElementIterator()
		for iter.Next() {
			_, v := iter.Element()
			result = append(result, ctyToGo(v))
		}
		return result

	default:
		return nil
	}
}

// ctyToDecimal converts a cty number (or numeric string) to a decimal
// without a float round trip. Anything else reports no value.
func ctyToDecimal(val cty.Value) (decimal.Decimal, bool) {
	if !val.IsKnown() || val.IsNull() {
		return decimal.Zero, false
	}

	switch {
	case val.Type() == cty.Number:
		d, err := decimal.NewFromString(val.AsBigFloat().Text('f', -1))
		if err != nil {
			return decimal.Zero, false
		}
		return d, true

	case val.Type() == cty.String:
		d, err := decimal.NewFromString(val.AsString())
		if err != nil {
			return decimal.Zero, false
		}
		return d, true

	default:
		return decimal.Zero, false
	}
}

// ctyToStrings converts a cty list of strings, skipping non-string elements
func ctyToStrings(val cty.Value) []string {
	list, ok := ctyToGo(val).([]interface{})
	if !ok {
		return nil
	}
	result := make([]string, 0, len(list))
	for _, e := range list {
		if s, ok := e.(string); ok {
			result = append(result, s)
		}
	}
	return result
}
