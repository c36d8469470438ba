package scoring

import "testing"

func pointsRule(c Condition, pts float64) Rule {
	return Rule{Condition: c, Model: ModelPoints, Points: pts}
}

func betweenRule(min, max, pts float64) Rule {
	return pointsRule(Condition{Operator: OpBetween, Kind: OperandNumeric, Min: min, Max: max}, pts)
}

func TestScoreQuestionFirstMatchWins(t *testing.T) {
	q := Question{Type: TypePercentage}
	r1 := betweenRule(0, 100, 10)
	r2 := betweenRule(0, 100, 99)

	out := ScoreQuestion(q, NumberValue(50), []Rule{r1, r2})
	if !out.Scored || out.Points != 10 {
		t.Fatalf("expected first rule's 10 points, got %+v", out)
	}

	// Reordering flips the outcome: declaration order is authoritative.
	out = ScoreQuestion(q, NumberValue(50), []Rule{r2, r1})
	if !out.Scored || out.Points != 99 {
		t.Fatalf("expected first rule's 99 points after reorder, got %+v", out)
	}
}

func TestScoreQuestionPercentageBands(t *testing.T) {
	q := Question{Type: TypePercentage}
	rules := []Rule{
		betweenRule(90, 100, 20),
		betweenRule(70, 89, 10),
		betweenRule(0, 69, 5),
	}

	cases := []struct {
		answer float64
		want   float64
	}{
		{92, 20},
		{70, 10},
		{89, 10},
		{69, 5},
		{0, 5},
	}
	for _, c := range cases {
		out := ScoreQuestion(q, NumberValue(c.answer), rules)
		if !out.Scored || out.Points != c.want {
			t.Errorf("answer %v: got %+v, want %v points", c.answer, out, c.want)
		}
	}
}

func TestScoreQuestionBooleanShortCircuit(t *testing.T) {
	q := Question{Type: TypeBoolean}
	sc := 2.0
	rules := []Rule{
		// Declared operators are deliberately nonsense: boolean evaluation
		// keys on the oui/non operand only.
		{Condition: Condition{Operator: OpGreater, Kind: OperandText, Text: "oui"}, Model: ModelRiskControl, NoteRI: 3, NoteSC: &sc},
		{Condition: Condition{Operator: OpBetween, Kind: OperandText, Text: "non"}, Model: ModelRiskControl, NoteRI: 1},
	}

	out := ScoreQuestion(q, BoolValue(true), rules)
	if !out.Scored || out.NoteRI != 3 {
		t.Fatalf("true answer: got %+v, want noteRi 3", out)
	}
	if rr := out.ResidualRisk(); rr != 6 {
		t.Fatalf("residual risk = %v, want 6 (3 × 2)", rr)
	}

	out = ScoreQuestion(q, BoolValue(false), rules)
	if !out.Scored || out.NoteRI != 1 {
		t.Fatalf("false answer: got %+v, want noteRi 1", out)
	}
	// Missing control score counts as perfect control.
	if rr := out.ResidualRisk(); rr != 1 {
		t.Fatalf("residual risk = %v, want 1 (1 × 1)", rr)
	}
}

func TestScoreQuestionUnscored(t *testing.T) {
	q := Question{Type: TypeInteger}
	rules := []Rule{betweenRule(0, 10, 5)}

	out := ScoreQuestion(q, NumberValue(42), rules)
	if out.Scored {
		t.Fatalf("expected unscored outcome, got %+v", out)
	}
	if rr := out.ResidualRisk(); rr != 0 {
		t.Fatalf("unscored residual risk = %v, want 0", rr)
	}

	// Absent answers are never scored.
	if out := ScoreQuestion(q, Value{}, rules); out.Scored {
		t.Fatalf("absent answer must be unscored, got %+v", out)
	}
}

func TestScoreQuestionBooleanSkipsStrayRules(t *testing.T) {
	q := Question{Type: TypeBoolean}
	rules := []Rule{
		// A numeric condition on a boolean question must not become the
		// implicit false branch.
		pointsRule(Condition{Operator: OpGreater, Kind: OperandNumeric, Number: 5}, 50),
		pointsRule(Condition{Operator: OpEqual, Kind: OperandText, Text: "non"}, 3),
	}

	out := ScoreQuestion(q, BoolValue(false), rules)
	if !out.Scored || out.Points != 3 {
		t.Fatalf("false answer: got %+v, want the 'non' rule's 3 points", out)
	}

	// With only the stray rule present, nothing may match.
	if out := ScoreQuestion(q, BoolValue(false), rules[:1]); out.Scored {
		t.Fatalf("stray numeric rule matched a boolean answer: %+v", out)
	}
}

func TestScoreQuestionSkipsInvalidOperator(t *testing.T) {
	q := Question{Type: TypeSingleChoice, Options: []string{"yes", "no"}}
	rules := []Rule{
		// between makes no sense for a single choice; the rule can never match.
		pointsRule(Condition{Operator: OpBetween, Kind: OperandNumeric, Min: 0, Max: 10}, 50),
		pointsRule(Condition{Operator: OpEqual, Kind: OperandText, Text: "yes"}, 7),
	}

	out := ScoreQuestion(q, TextValue("yes"), rules)
	if !out.Scored || out.Points != 7 {
		t.Fatalf("expected the malformed rule to be skipped, got %+v", out)
	}
}

func TestCheckRule(t *testing.T) {
	cases := []struct {
		qt     QuestionType
		op     Operator
		wantOK bool
	}{
		{TypePercentage, OpBetween, true},
		{TypeSingleChoice, OpEqual, true},
		{TypeSingleChoice, OpBetween, false},
		{TypeTextShort, OpContains, true},
		{TypeTextShort, OpGreater, false},
		{TypeDate, OpLessEqual, true},
		{TypeMultipleChoice, OpContains, true},
		{TypeMultipleChoice, OpLess, false},
	}
	for _, c := range cases {
		err := CheckRule(c.qt, Condition{Operator: c.op})
		if c.wantOK && err != nil {
			t.Errorf("CheckRule(%s, %s) = %v, want nil", c.qt, c.op, err)
		}
		if !c.wantOK && err == nil {
			t.Errorf("CheckRule(%s, %s) = nil, want configuration error", c.qt, c.op)
		}
	}
}

func TestCheckRuleBoolean(t *testing.T) {
	cases := []struct {
		name   string
		c      Condition
		wantOK bool
	}{
		{"oui", Condition{Operator: OpEqual, Kind: OperandText, Text: "oui"}, true},
		{"non", Condition{Operator: OpEqual, Kind: OperandText, Text: "non"}, true},
		{"other text", Condition{Operator: OpEqual, Kind: OperandText, Text: "peut-être"}, false},
		{"numeric", Condition{Operator: OpGreater, Kind: OperandNumeric, Number: 5}, false},
		{"contains", Condition{Operator: OpContains, Kind: OperandText, Text: "oui"}, false},
	}
	for _, c := range cases {
		err := CheckRule(TypeBoolean, c.c)
		if c.wantOK && err != nil {
			t.Errorf("%s: unexpected error %v", c.name, err)
		}
		if !c.wantOK && err == nil {
			t.Errorf("%s: expected configuration error", c.name)
		}
	}
}
