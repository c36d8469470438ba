package scoring

import "github.com/google/uuid"

// AxisQuestion bundles a question with its ordered rule set for one
// aggregation pass. The rules slice is an immutable snapshot: nothing in
// this package mutates it, so a single snapshot may be scored concurrently.
type AxisQuestion struct {
	ID uuid.UUID
	Question
	Rules []Rule
}

// AxisAnswer is the recorded answer to one question within an axis.
type AxisAnswer struct {
	Value         Value
	Justification string
}

// AxisResult is the aggregate of one axis (sub-section) of the assessment.
type AxisResult struct {
	// Subtotal is the points-model sum over answered, scored questions.
	Subtotal float64
	// Answered counts questions with a recorded answer.
	Answered int
	// Scored counts answered questions that matched a rule.
	Scored int
	// Residuals holds the per-question residual risk (RI×SC) for every
	// question resolved under the risk_control model.
	Residuals map[uuid.UUID]float64
	// Unscored lists answered questions no rule matched. They are excluded
	// from the subtotal, never silently counted as zero.
	Unscored []uuid.UUID
	// IsComplete reports whether the axis may be submitted: every question
	// answered, and every justification-required question justified.
	IsComplete bool
}

// AggregateAxis folds rule outcomes across all questions of one axis.
// It is a pure sequential fold: per-question outcomes feed the points
// subtotal and the residual-risk map, and the completion predicate gates
// submission. Cross-axis weighting is the caller's concern.
func AggregateAxis(questions []AxisQuestion, answers map[uuid.UUID]AxisAnswer) AxisResult {
	res := AxisResult{
		Residuals:  make(map[uuid.UUID]float64),
		IsComplete: true,
	}

	for _, q := range questions {
		ans, ok := answers[q.ID]
		if !ok || ans.Value.Absent() {
			res.IsComplete = false
			continue
		}
		if q.JustificationRequired && ans.Justification == "" {
			res.IsComplete = false
		}
		res.Answered++

		out := ScoreQuestion(q.Question, ans.Value, q.Rules)
		if !out.Scored {
			res.Unscored = append(res.Unscored, q.ID)
			continue
		}
		res.Scored++

		switch out.Model {
		case ModelPoints:
			res.Subtotal += out.Points
		case ModelRiskControl:
			res.Residuals[q.ID] = out.ResidualRisk()
		}
	}

	return res
}
