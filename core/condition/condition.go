// Package condition evaluates trigger conditions against the merged
// answer set. Evaluation is total: malformed targets, uncoercible
// subjects, and missing fields all evaluate to false (true only for
// not_exists), never to an error.
package condition

import (
	"strings"

	"quote-pricing/core/scalar"
	"quote-pricing/core/types"
)

// AnswerSet merges customer form answers with AI-extracted structured
// signals. The two inputs keep distinct namespaces; lookups consult
// answers first, so a signal never shadows an explicit customer answer.
type AnswerSet struct {
	answers map[string]scalar.Value
	signals map[string]scalar.Value
}

// NewAnswerSet builds an answer set from raw decoded maps
func NewAnswerSet(answers, signals map[string]interface{}) *AnswerSet {
	set := &AnswerSet{
		answers: make(map[string]scalar.Value, len(answers)),
		signals: make(map[string]scalar.Value, len(signals)),
	}
	for k, v := range answers {
		set.answers[k] = scalar.FromGo(v)
	}
	for k, v := range signals {
		set.signals[k] = scalar.FromGo(v)
	}
	return set
}

// Answer returns the form answer for key, or an absent value
func (s *AnswerSet) Answer(key string) scalar.Value {
	if v, ok := s.answers[key]; ok {
		return v
	}
	return scalar.Absent()
}

// Signal returns the extracted signal for key, or an absent value
func (s *AnswerSet) Signal(key string) scalar.Value {
	if v, ok := s.signals[key]; ok {
		return v
	}
	return scalar.Absent()
}

// Lookup resolves key against answers first, then signals
func (s *AnswerSet) Lookup(key string) scalar.Value {
	if v, ok := s.answers[key]; ok {
		return v
	}
	return s.Signal(key)
}

// Evaluate applies a single condition to the answer set
func Evaluate(cond types.Condition, set *AnswerSet) bool {
	subject := set.Lookup(cond.Field)

	switch cond.Op {
	case types.OpExists:
		return subject.Present()

	case types.OpNotExists:
		return !subject.Present()

	case types.OpEquals:
		return evaluateEquals(subject, cond.Value)

	case types.OpGreaterThan, types.OpGreaterOrEqual, types.OpLessThan, types.OpLessOrEqual:
		return evaluateNumeric(cond.Op, subject, cond.Value)

	case types.OpContains:
		return evaluateContains(subject, cond.Value)

	default:
		// Unknown operators are rejected when rules load; an unexpected
		// one at evaluation time never fires.
		return false
	}
}

// evaluateEquals coerces both sides by the comparison value's apparent
// type before comparing.
func evaluateEquals(subject scalar.Value, target interface{}) bool {
	tv := scalar.FromGo(target)
	switch tv.Kind() {
	case scalar.KindBool:
		return subject.Kind() != scalar.KindAbsent && subject.AsBool() == tv.AsBool()
	case scalar.KindNumber:
		sn, ok := subject.AsNumber()
		if !ok {
			return false
		}
		tn, _ := tv.AsNumber()
		return sn == tn
	case scalar.KindString:
		return subject.Present() && subject.AsString() == tv.AsString()
	default:
		return false
	}
}

// evaluateNumeric coerces both sides to numbers; an uncoercible subject
// makes the condition false.
func evaluateNumeric(op types.Operator, subject scalar.Value, target interface{}) bool {
	sn, ok := subject.AsNumber()
	if !ok {
		return false
	}
	tn, ok := scalar.FromGo(target).AsNumber()
	if !ok {
		return false
	}

	switch op {
	case types.OpGreaterThan:
		return sn > tn
	case types.OpGreaterOrEqual:
		return sn >= tn
	case types.OpLessThan:
		return sn < tn
	case types.OpLessOrEqual:
		return sn <= tn
	default:
		return false
	}
}

// evaluateContains is true when any element of the subject, compared as a
// case-insensitive string, equals the comparison value.
func evaluateContains(subject scalar.Value, target interface{}) bool {
	targetStr := scalar.FromGo(target).AsString()
	if targetStr == "" {
		return false
	}
	for _, elem := range subject.AsList() {
		if strings.EqualFold(elem.AsString(), targetStr) {
			return true
		}
	}
	return false
}
