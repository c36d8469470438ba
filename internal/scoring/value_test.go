package scoring

import (
	"encoding/json"
	"strings"
	"testing"
)

func fptr(f float64) *float64 { return &f }

func TestParseValue(t *testing.T) {
	cases := []struct {
		name    string
		q       Question
		raw     string
		want    Value
		wantErr bool
	}{
		{"boolean true", Question{Type: TypeBoolean}, `true`, BoolValue(true), false},
		{"boolean malformed", Question{Type: TypeBoolean}, `"yes"`, Value{}, true},
		{"single choice", Question{Type: TypeSingleChoice}, `"option a"`, TextValue("option a"), false},
		{"multiple choice", Question{Type: TypeMultipleChoice}, `["a","b"]`, ChoicesValue([]string{"a", "b"}), false},
		{"multiple choice malformed", Question{Type: TypeMultipleChoice}, `"a"`, Value{}, true},
		{"percentage number", Question{Type: TypePercentage}, `42.5`, NumberValue(42.5), false},
		{"integer as string", Question{Type: TypeInteger}, `"17"`, NumberValue(17), false},
		{"decimal malformed", Question{Type: TypeDecimal}, `"abc"`, Value{}, true},
		{"date", Question{Type: TypeDate}, `"2021-07-01"`, DateValue(date("2021-07-01")), false},
		{"date malformed", Question{Type: TypeDate}, `"01/07/2021"`, Value{}, true},
		{"date range", Question{Type: TypeDateRange}, `{"start":"2020-01-01","end":"2020-12-31"}`, DateRangeValue(date("2020-01-01"), date("2020-12-31")), false},
		{"null is absent", Question{Type: TypeBoolean}, `null`, Value{}, false},
		{"empty is absent", Question{Type: TypeTextShort}, ``, Value{}, false},
	}
	for _, c := range cases {
		got, verr := ParseValue(c.q, json.RawMessage(c.raw))
		if c.wantErr {
			if verr == nil {
				t.Errorf("%s: expected a validation error", c.name)
			}
			continue
		}
		if verr != nil {
			t.Errorf("%s: unexpected error %v", c.name, verr)
			continue
		}
		if got.Kind != c.want.Kind {
			t.Errorf("%s: kind %s, want %s", c.name, got.Kind, c.want.Kind)
		}
	}
}

func TestZeroValueIsAbsent(t *testing.T) {
	// The zero Value must be the absent answer: ParseValue returns Value{}
	// for JSON null, and ValidateAnswer accepts it for optional questions.
	if !(Value{}).Absent() {
		t.Fatal("zero Value must report Absent")
	}
	v, verr := ParseValue(Question{Type: TypeBoolean}, json.RawMessage(`null`))
	if verr != nil {
		t.Fatalf("unexpected error %v", verr)
	}
	if !v.Absent() {
		t.Fatalf("null answer must be absent, got kind %q", v.Kind)
	}
	if err := ValidateAnswer(Question{Type: TypeBoolean}, v); err != nil {
		t.Fatalf("optional null answer rejected: %v", err)
	}
	if BoolValue(false).Absent() {
		t.Fatal("an answered false must not be absent")
	}
}

func TestValidateAnswer(t *testing.T) {
	cases := []struct {
		name   string
		q      Question
		v      Value
		wantOK bool
	}{
		{"required absent", Question{Type: TypeBoolean, Required: true}, Value{}, false},
		{"optional absent", Question{Type: TypeBoolean}, Value{}, true},
		{"bool ok", Question{Type: TypeBoolean}, BoolValue(true), true},
		{"bool wrong shape", Question{Type: TypeBoolean}, TextValue("oui"), false},

		{"choice in options", Question{Type: TypeSingleChoice, Options: []string{"a", "b"}}, TextValue("a"), true},
		{"choice not in options", Question{Type: TypeSingleChoice, Options: []string{"a", "b"}}, TextValue("z"), false},
		{"selection subset", Question{Type: TypeMultipleChoice, Options: []string{"a", "b", "c"}}, ChoicesValue([]string{"a", "c"}), true},
		{"selection not subset", Question{Type: TypeMultipleChoice, Options: []string{"a", "b"}}, ChoicesValue([]string{"a", "z"}), false},

		{"integer within bounds", Question{Type: TypeInteger, Min: fptr(0), Max: fptr(10)}, NumberValue(5), true},
		{"integer below min", Question{Type: TypeInteger, Min: fptr(0)}, NumberValue(-1), false},
		{"integer above max", Question{Type: TypeInteger, Max: fptr(10)}, NumberValue(11), false},
		{"integer not whole", Question{Type: TypeInteger}, NumberValue(2.5), false},
		{"decimal fractional ok", Question{Type: TypeDecimal}, NumberValue(2.5), true},

		{"percentage in domain", Question{Type: TypePercentage}, NumberValue(100), true},
		{"percentage above 100", Question{Type: TypePercentage}, NumberValue(100.1), false},
		{"percentage negative", Question{Type: TypePercentage}, NumberValue(-0.1), false},

		{"short text at cap", Question{Type: TypeTextShort}, TextValue(strings.Repeat("x", 255)), true},
		{"short text over cap", Question{Type: TypeTextShort}, TextValue(strings.Repeat("x", 256)), false},
		{"long text over cap", Question{Type: TypeTextLong}, TextValue(strings.Repeat("x", 2001)), false},
		// Caps count characters, not bytes: 255 accented runes are legal
		// even though they encode to more than 255 bytes.
		{"short accented text at cap", Question{Type: TypeTextShort}, TextValue(strings.Repeat("é", 255)), true},
		{"short accented text over cap", Question{Type: TypeTextShort}, TextValue(strings.Repeat("é", 256)), false},

		{"date range ordered", Question{Type: TypeDateRange}, DateRangeValue(date("2020-01-01"), date("2020-06-01")), true},
		{"date range inverted", Question{Type: TypeDateRange}, DateRangeValue(date("2020-06-01"), date("2020-01-01")), false},
		{"date range same day", Question{Type: TypeDateRange}, DateRangeValue(date("2020-01-01"), date("2020-01-01")), true},
	}
	for _, c := range cases {
		err := ValidateAnswer(c.q, c.v)
		if c.wantOK && err != nil {
			t.Errorf("%s: unexpected error %v", c.name, err)
		}
		if !c.wantOK && err == nil {
			t.Errorf("%s: expected a validation error", c.name)
		}
	}
}
