package scoring

import "testing"

func TestConditionRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		cond Condition
		text string
	}{
		{
			"text equality",
			Condition{Operator: OpEqual, Kind: OperandText, Text: "oui"},
			"reponse = 'oui'",
		},
		{
			"text equality with embedded quote",
			Condition{Operator: OpEqual, Kind: OperandText, Text: "l'an dernier"},
			"reponse = 'l''an dernier'",
		},
		{
			"numeric equality",
			Condition{Operator: OpEqual, Kind: OperandNumeric, Number: 50},
			"reponse::NUMERIC = 50",
		},
		{
			"numeric greater or equal",
			Condition{Operator: OpGreaterEqual, Kind: OperandNumeric, Number: 12.5},
			"reponse::NUMERIC >= 12.5",
		},
		{
			"numeric less",
			Condition{Operator: OpLess, Kind: OperandNumeric, Number: 3},
			"reponse::NUMERIC < 3",
		},
		{
			"numeric between",
			Condition{Operator: OpBetween, Kind: OperandNumeric, Min: 5, Max: 15},
			"reponse::NUMERIC BETWEEN 5 AND 15",
		},
		{
			"date comparison",
			Condition{Operator: OpLessEqual, Kind: OperandDate, Date: date("2020-01-01")},
			"reponse::DATE <= '2020-01-01'",
		},
		{
			"date between",
			Condition{Operator: OpBetween, Kind: OperandDate, DateMin: date("2020-01-01"), DateMax: date("2020-12-31")},
			"reponse::DATE BETWEEN '2020-01-01' AND '2020-12-31'",
		},
		{
			"set containment",
			Condition{Operator: OpContains, Kind: OperandSet, Set: []string{"a", "b"}},
			"reponse @> ARRAY['a', 'b']",
		},
		{
			"substring containment",
			Condition{Operator: OpContains, Kind: OperandText, Text: "offshore"},
			"reponse LIKE '%offshore%'",
		},
	}

	for _, c := range cases {
		encoded, err := EncodeCondition(c.cond)
		if err != nil {
			t.Errorf("%s: encode error: %v", c.name, err)
			continue
		}
		if encoded != c.text {
			t.Errorf("%s: encoded %q, want %q", c.name, encoded, c.text)
		}
		decoded, err := DecodeCondition(encoded)
		if err != nil {
			t.Errorf("%s: decode error: %v", c.name, err)
			continue
		}
		if !decoded.Equal(c.cond) {
			t.Errorf("%s: round trip mismatch:\n got %+v\nwant %+v", c.name, decoded, c.cond)
		}
	}
}

func TestDecodeConditionWhitespaceTolerance(t *testing.T) {
	cond, err := DecodeCondition("  reponse::NUMERIC   BETWEEN 5 AND 15  ")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := Condition{Operator: OpBetween, Kind: OperandNumeric, Min: 5, Max: 15}
	if !cond.Equal(want) {
		t.Fatalf("got %+v, want %+v", cond, want)
	}
}

func TestDecodeConditionErrors(t *testing.T) {
	cases := []string{
		"",
		"question = 'oui'",
		"reponse",
		"reponse ~ 'x'",
		"reponse::NUMERIC BETWEEN 5",
		"reponse::NUMERIC BETWEEN a AND b",
		"reponse::NUMERIC >",
		"reponse::DATE = 2020-01-01",
		"reponse::DATE = 'not a date'",
		"reponse @> ARRAY[]",
		"reponse @> ARRAY['a' 'b']",
		"reponse = 'unterminated",
		"reponse LIKE 'no-wildcards'",
	}
	for _, input := range cases {
		_, err := DecodeCondition(input)
		if err == nil {
			t.Errorf("DecodeCondition(%q): expected an error", input)
			continue
		}
		if _, ok := err.(*ParseError); !ok {
			t.Errorf("DecodeCondition(%q): error is %T, want *ParseError", input, err)
		}
	}
}

func TestEncodeConditionUnsupported(t *testing.T) {
	// between over a raw text operand has no textual form.
	_, err := EncodeCondition(Condition{Operator: OpBetween, Kind: OperandText})
	if err == nil {
		t.Fatal("expected an error for an unencodable condition")
	}
}
