package condition

import (
	"testing"

	"github.com/blackcoderx/falcon/pkg/config"
)

func TestEvaluateEqualsAndContains(t *testing.T) {
	ctx := map[string]string{"status": "active", "message": "all good"}
	conds := []config.Condition{
		{Field: "status", Operator: config.OpEquals, Value: "active"},
		{Field: "message", Operator: config.OpContains, Value: "good"},
	}
	ok, warns := Evaluate(conds, ctx)
	if !ok || len(warns) != 0 {
		t.Fatalf("expected satisfied with no warnings, got ok=%v warns=%v", ok, warns)
	}
}

func TestEvaluateANDSemanticsOneFailureRejects(t *testing.T) {
	ctx := map[string]string{"status": "active"}
	conds := []config.Condition{
		{Field: "status", Operator: config.OpEquals, Value: "active"},
		{Field: "status", Operator: config.OpEquals, Value: "inactive"},
	}
	ok, _ := Evaluate(conds, ctx)
	if ok {
		t.Fatal("expected AND semantics to reject when one condition fails")
	}
}

func TestEvaluateExistsNotExists(t *testing.T) {
	ctx := map[string]string{"present": "1"}
	conds := []config.Condition{
		{Field: "present", Operator: config.OpExists},
		{Field: "absent", Operator: config.OpNotExists},
	}
	ok, _ := Evaluate(conds, ctx)
	if !ok {
		t.Fatal("expected exists/not_exists to both hold")
	}
}

func TestEvaluateNumericComparison(t *testing.T) {
	ctx := map[string]string{"count": "10"}
	conds := []config.Condition{
		{Field: "count", Operator: config.OpGreaterThan, Value: "5"},
		{Field: "count", Operator: config.OpLessThan, Value: "20"},
	}
	ok, warns := Evaluate(conds, ctx)
	if !ok || len(warns) != 0 {
		t.Fatalf("expected numeric comparisons to hold, got ok=%v warns=%v", ok, warns)
	}
}

func TestEvaluateNumericComparisonWarnsOnNonNumeric(t *testing.T) {
	ctx := map[string]string{"count": "not-a-number"}
	conds := []config.Condition{
		{Field: "count", Operator: config.OpGreaterThan, Value: "5"},
	}
	ok, warns := Evaluate(conds, ctx)
	if ok {
		t.Fatal("expected non-numeric comparison to be unsatisfied")
	}
	if len(warns) != 1 {
		t.Fatalf("expected one warning, got %v", warns)
	}
}
