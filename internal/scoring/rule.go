package scoring

// ScoreModel distinguishes the two coexisting scoring models: flat points
// and the inherent-risk × control (RI×SC) pair.
type ScoreModel string

const (
	ModelPoints      ScoreModel = "points"
	ModelRiskControl ScoreModel = "risk_control"
)

// Rule is one scoring rule, already decoded from its stored textual
// condition. A question owns an ordered slice of rules; slice order is
// declaration order and decides precedence.
type Rule struct {
	Condition Condition
	Model     ScoreModel
	Points    float64  // points model
	NoteRI    float64  // risk_control model, in [1,4]
	NoteSC    *float64 // nil means perfect control (counts as 1)
}

// Outcome is the result of resolving a question's rules against an answer.
// Scored=false is the explicit "no rule matched" marker: aggregation must
// exclude it rather than count it as zero risk.
type Outcome struct {
	Scored bool
	Model  ScoreModel
	Points float64
	NoteRI float64
	NoteSC *float64
}

// Unscored is the zero outcome returned when no rule matches.
var Unscored = Outcome{}

// ResidualRisk returns noteRi × noteSc for a risk_control outcome, with a
// missing control score counting as 1. Unscored outcomes have no residual
// risk and return 0.
func (o Outcome) ResidualRisk() float64 {
	if !o.Scored || o.Model != ModelRiskControl {
		return 0
	}
	sc := 1.0
	if o.NoteSC != nil {
		sc = *o.NoteSC
	}
	return o.NoteRI * sc
}

func (o Outcome) fromRule(r Rule) Outcome {
	return Outcome{
		Scored: true,
		Model:  r.Model,
		Points: r.Points,
		NoteRI: r.NoteRI,
		NoteSC: r.NoteSC,
	}
}

// ScoreQuestion resolves the ordered rule set against an answer and returns
// the outcome of the first matching rule. Order is authoritative: when
// several rules could match (overlapping bands authored by an admin), the
// earliest declared one wins, deliberately and exactly.
//
// Boolean questions short-circuit to truth equality: the rule keyed
// 'oui' matches a true answer and 'non' a false one, whatever operator the
// condition declares.
//
// A rule whose operator is not legal for the question's type never matches;
// it is skipped, not fatal. Unmatched answers yield the Unscored outcome.
func ScoreQuestion(q Question, v Value, rules []Rule) Outcome {
	if v.Absent() {
		return Unscored
	}

	if q.Type == TypeBoolean && v.Kind == KindBool {
		for _, r := range rules {
			// Only 'oui'/'non' rules apply. Anything else (a numeric
			// condition mistakenly attached to a boolean question) is
			// skipped, never treated as the false branch.
			if r.Condition.Text != "oui" && r.Condition.Text != "non" {
				continue
			}
			if v.Bool == (r.Condition.Text == "oui") {
				return Outcome{}.fromRule(r)
			}
		}
		return Unscored
	}

	for _, r := range rules {
		if !validOperatorFor(q.Type, r.Condition.Operator) {
			continue
		}
		if Matches(r.Condition, v) {
			return Outcome{}.fromRule(r)
		}
	}
	return Unscored
}

// CheckRule verifies at save time that a rule's condition can legally apply
// to the question type it is attached to. Evaluation would silently skip
// such a rule; configuration must refuse it instead.
func CheckRule(t QuestionType, c Condition) error {
	if t == TypeBoolean {
		if c.Operator != OpEqual || c.Kind != OperandText || (c.Text != "oui" && c.Text != "non") {
			return configErrorf("boolean questions only accept reponse = 'oui' or reponse = 'non'")
		}
		return nil
	}
	if !validOperatorFor(t, c.Operator) {
		return configErrorf("operator %q is not valid for question type %q", c.Operator, t)
	}
	return nil
}
