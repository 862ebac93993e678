// Package condition implements spec.md §4.4: deciding whether a route's
// extracted/variable context satisfies its configured predicates before the
// route is allowed to run.
package condition

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/blackcoderx/falcon/pkg/config"
)

// Warning reports a condition that could not be evaluated numerically
// (greater_than/less_than against a non-numeric value). Evaluation treats
// the condition as not satisfied but the run continues.
type Warning struct {
	Field string
	Value string
	Cause string
}

func (w *Warning) Error() string {
	return fmt.Sprintf("condition on %q: %s (value %q)", w.Field, w.Cause, w.Value)
}

// Evaluate reports whether every condition in conds is satisfied against
// ctx, combining them with AND semantics (spec.md §9's resolved Open
// Question). warnings collects any numeric-parse problems encountered along
// the way; they do not stop evaluation of the remaining conditions.
func Evaluate(conds []config.Condition, ctx map[string]string) (bool, []*Warning) {
	var warnings []*Warning
	satisfied := true

	for _, c := range conds {
		ok, warn := evalOne(c, ctx)
		if warn != nil {
			warnings = append(warnings, warn)
		}
		if !ok {
			satisfied = false
		}
	}

	return satisfied, warnings
}

func evalOne(c config.Condition, ctx map[string]string) (bool, *Warning) {
	value, present := ctx[c.Field]

	switch c.Operator {
	case config.OpExists:
		return present, nil
	case config.OpNotExists:
		return !present, nil
	case config.OpEquals:
		return present && value == c.Value, nil
	case config.OpNotEquals:
		return !present || value != c.Value, nil
	case config.OpContains:
		return present && strings.Contains(value, c.Value), nil
	case config.OpNotContains:
		return !present || !strings.Contains(value, c.Value), nil
	case config.OpGreaterThan:
		return compareNumeric(c, value, present, func(a, b float64) bool { return a > b })
	case config.OpLessThan:
		return compareNumeric(c, value, present, func(a, b float64) bool { return a < b })
	default:
		return false, &Warning{Field: c.Field, Value: value, Cause: fmt.Sprintf("unknown operator %q", c.Operator)}
	}
}

func compareNumeric(c config.Condition, value string, present bool, cmp func(a, b float64) bool) (bool, *Warning) {
	if !present {
		return false, nil
	}
	a, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return false, &Warning{Field: c.Field, Value: value, Cause: "left-hand value is not numeric"}
	}
	b, err := strconv.ParseFloat(c.Value, 64)
	if err != nil {
		return false, &Warning{Field: c.Field, Value: c.Value, Cause: "right-hand value is not numeric"}
	}
	return cmp(a, b), nil
}
