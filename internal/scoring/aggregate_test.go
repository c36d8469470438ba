package scoring

import (
	"testing"

	"github.com/google/uuid"
)

func TestAggregateAxisPoints(t *testing.T) {
	q1 := AxisQuestion{ID: uuid.New(), Question: Question{Type: TypePercentage}, Rules: []Rule{betweenRule(0, 100, 10)}}
	q2 := AxisQuestion{ID: uuid.New(), Question: Question{Type: TypePercentage}, Rules: []Rule{betweenRule(0, 50, 5)}}
	q3 := AxisQuestion{ID: uuid.New(), Question: Question{Type: TypePercentage}, Rules: []Rule{betweenRule(0, 10, 99)}}

	answers := map[uuid.UUID]AxisAnswer{
		q1.ID: {Value: NumberValue(80)},
		q2.ID: {Value: NumberValue(30)},
		q3.ID: {Value: NumberValue(90)}, // no band matches: unscored
	}

	res := AggregateAxis([]AxisQuestion{q1, q2, q3}, answers)

	if res.Subtotal != 15 {
		t.Errorf("subtotal = %v, want 15 (unscored excluded, not zeroed)", res.Subtotal)
	}
	if res.Answered != 3 || res.Scored != 2 {
		t.Errorf("answered/scored = %d/%d, want 3/2", res.Answered, res.Scored)
	}
	if len(res.Unscored) != 1 || res.Unscored[0] != q3.ID {
		t.Errorf("unscored = %v, want [%s]", res.Unscored, q3.ID)
	}
	if !res.IsComplete {
		t.Error("axis with all questions answered should be complete")
	}
}

func TestAggregateAxisResiduals(t *testing.T) {
	sc := 2.0
	q := AxisQuestion{
		ID:       uuid.New(),
		Question: Question{Type: TypeBoolean},
		Rules: []Rule{
			{Condition: Condition{Operator: OpEqual, Kind: OperandText, Text: "oui"}, Model: ModelRiskControl, NoteRI: 3, NoteSC: &sc},
			{Condition: Condition{Operator: OpEqual, Kind: OperandText, Text: "non"}, Model: ModelRiskControl, NoteRI: 1},
		},
	}

	res := AggregateAxis([]AxisQuestion{q}, map[uuid.UUID]AxisAnswer{
		q.ID: {Value: BoolValue(true)},
	})

	if rr, ok := res.Residuals[q.ID]; !ok || rr != 6 {
		t.Fatalf("residual = %v (present %v), want 6", rr, ok)
	}
	if res.Subtotal != 0 {
		t.Fatalf("risk_control outcomes must not feed the points subtotal, got %v", res.Subtotal)
	}
}

func TestAggregateAxisCompleteness(t *testing.T) {
	q1 := AxisQuestion{ID: uuid.New(), Question: Question{Type: TypeBoolean}}
	q2 := AxisQuestion{ID: uuid.New(), Question: Question{Type: TypeBoolean, JustificationRequired: true}}
	q3 := AxisQuestion{ID: uuid.New(), Question: Question{Type: TypeBoolean}}
	axis := []AxisQuestion{q1, q2, q3}

	// Missing answer blocks completion.
	res := AggregateAxis(axis, map[uuid.UUID]AxisAnswer{
		q1.ID: {Value: BoolValue(true)},
		q2.ID: {Value: BoolValue(false), Justification: "documented controls"},
	})
	if res.IsComplete {
		t.Error("axis with an unanswered question must not be complete")
	}

	// Answered but unjustified blocks completion.
	res = AggregateAxis(axis, map[uuid.UUID]AxisAnswer{
		q1.ID: {Value: BoolValue(true)},
		q2.ID: {Value: BoolValue(false)},
		q3.ID: {Value: BoolValue(true)},
	})
	if res.IsComplete {
		t.Error("missing required justification must block completion")
	}

	// Justification supplied: complete.
	res = AggregateAxis(axis, map[uuid.UUID]AxisAnswer{
		q1.ID: {Value: BoolValue(true)},
		q2.ID: {Value: BoolValue(false), Justification: "documented controls"},
		q3.ID: {Value: BoolValue(true)},
	})
	if !res.IsComplete {
		t.Error("fully answered and justified axis should be complete")
	}
}
