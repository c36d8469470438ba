package scoring

import (
	"testing"
	"time"
)

func date(s string) time.Time {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestMatchesBetweenInclusive(t *testing.T) {
	cond := Condition{Operator: OpBetween, Kind: OperandNumeric, Min: 5, Max: 10}

	cases := []struct {
		value float64
		want  bool
	}{
		{5, true},
		{10, true},
		{7.5, true},
		{4.999, false},
		{10.001, false},
	}
	for _, c := range cases {
		if got := Matches(cond, NumberValue(c.value)); got != c.want {
			t.Errorf("Matches(between 5..10, %v) = %v, want %v", c.value, got, c.want)
		}
	}
}

func TestMatchesNumericOrdering(t *testing.T) {
	cases := []struct {
		op      Operator
		operand float64
		value   Value
		want    bool
	}{
		{OpGreater, 5, NumberValue(6), true},
		{OpGreater, 5, NumberValue(5), false},
		{OpGreaterEqual, 5, NumberValue(5), true},
		{OpLess, 5, NumberValue(4), true},
		{OpLessEqual, 5, NumberValue(5), true},
		{OpEqual, 5, NumberValue(5), true},
		{OpEqual, 5, NumberValue(5.5), false},
		// Text answers get a best-effort numeric parse.
		{OpGreaterEqual, 5, TextValue("12"), true},
		{OpGreaterEqual, 5, TextValue("not a number"), false},
		// Non-coercible answers never match, never panic.
		{OpGreater, 5, BoolValue(true), false},
		{OpGreater, 5, Value{}, false},
	}
	for _, c := range cases {
		cond := Condition{Operator: c.op, Kind: OperandNumeric, Number: c.operand}
		if got := Matches(cond, c.value); got != c.want {
			t.Errorf("Matches(%s %v, %+v) = %v, want %v", c.op, c.operand, c.value, got, c.want)
		}
	}
}

func TestMatchesDates(t *testing.T) {
	cutoff := date("2020-06-01")

	cases := []struct {
		name string
		cond Condition
		val  Value
		want bool
	}{
		{"before cutoff", Condition{Operator: OpLess, Kind: OperandDate, Date: cutoff}, DateValue(date("2020-01-01")), true},
		{"on cutoff less", Condition{Operator: OpLess, Kind: OperandDate, Date: cutoff}, DateValue(cutoff), false},
		{"on cutoff less_equal", Condition{Operator: OpLessEqual, Kind: OperandDate, Date: cutoff}, DateValue(cutoff), true},
		{"equal", Condition{Operator: OpEqual, Kind: OperandDate, Date: cutoff}, DateValue(cutoff), true},
		{"between dates", Condition{Operator: OpBetween, Kind: OperandDate, DateMin: date("2020-01-01"), DateMax: date("2020-12-31")}, DateValue(cutoff), true},
		// A date_range answer compares against its start.
		{"range start in band", Condition{Operator: OpBetween, Kind: OperandDate, DateMin: date("2020-01-01"), DateMax: date("2020-12-31")}, DateRangeValue(date("2020-03-01"), date("2021-06-01")), true},
		{"range start out of band", Condition{Operator: OpBetween, Kind: OperandDate, DateMin: date("2020-01-01"), DateMax: date("2020-12-31")}, DateRangeValue(date("2021-01-01"), date("2021-06-01")), false},
		{"text coerced to date", Condition{Operator: OpGreaterEqual, Kind: OperandDate, Date: cutoff}, TextValue("2021-01-01"), true},
		{"non-date text", Condition{Operator: OpGreaterEqual, Kind: OperandDate, Date: cutoff}, TextValue("hello"), false},
	}
	for _, c := range cases {
		if got := Matches(c.cond, c.val); got != c.want {
			t.Errorf("%s: Matches = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestMatchesContains(t *testing.T) {
	cases := []struct {
		name string
		cond Condition
		val  Value
		want bool
	}{
		{"set all present", Condition{Operator: OpContains, Kind: OperandSet, Set: []string{"a", "b"}}, ChoicesValue([]string{"a", "b", "c"}), true},
		{"set one missing", Condition{Operator: OpContains, Kind: OperandSet, Set: []string{"a", "d"}}, ChoicesValue([]string{"a", "b", "c"}), false},
		{"set vs text answer", Condition{Operator: OpContains, Kind: OperandSet, Set: []string{"a"}}, TextValue("a"), false},
		{"scalar in choices", Condition{Operator: OpContains, Kind: OperandText, Text: "b"}, ChoicesValue([]string{"a", "b"}), true},
		{"substring", Condition{Operator: OpContains, Kind: OperandText, Text: "offshore"}, TextValue("mainly offshore clients"), true},
		{"no substring", Condition{Operator: OpContains, Kind: OperandText, Text: "offshore"}, TextValue("domestic only"), false},
	}
	for _, c := range cases {
		if got := Matches(c.cond, c.val); got != c.want {
			t.Errorf("%s: Matches = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestMatchesTextEqual(t *testing.T) {
	cond := Condition{Operator: OpEqual, Kind: OperandText, Text: "oui"}

	if !Matches(cond, TextValue("oui")) {
		t.Error("expected text equality to match")
	}
	if Matches(cond, TextValue("non")) {
		t.Error("expected mismatched text not to match")
	}
	// Boolean answers stored against oui/non operands.
	if !Matches(cond, BoolValue(true)) {
		t.Error("expected true to match 'oui'")
	}
	if Matches(cond, BoolValue(false)) {
		t.Error("expected false not to match 'oui'")
	}
}
