package scoring

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// DateLayout is the wire format for calendar dates in answers and conditions.
const DateLayout = "2006-01-02"

// ValueKind tags the concrete shape held by a Value.
type ValueKind string

const (
	// KindAbsent is the zero kind so the zero Value is the absent answer.
	KindAbsent    ValueKind = ""
	KindBool      ValueKind = "bool"
	KindNumber    ValueKind = "number"
	KindText      ValueKind = "text"
	KindChoices   ValueKind = "choices"
	KindDate      ValueKind = "date"
	KindDateRange ValueKind = "date_range"
)

// Value is a typed answer value. Exactly one of the payload fields is
// meaningful, selected by Kind. The zero Value is the absent answer.
type Value struct {
	Kind    ValueKind
	Bool    bool
	Number  float64
	Text    string
	Choices []string
	Date    time.Time
	Start   time.Time
	End     time.Time
}

func BoolValue(b bool) Value           { return Value{Kind: KindBool, Bool: b} }
func NumberValue(n float64) Value      { return Value{Kind: KindNumber, Number: n} }
func TextValue(s string) Value         { return Value{Kind: KindText, Text: s} }
func ChoicesValue(opts []string) Value { return Value{Kind: KindChoices, Choices: opts} }
func DateValue(d time.Time) Value      { return Value{Kind: KindDate, Date: d} }

func DateRangeValue(start, end time.Time) Value {
	return Value{Kind: KindDateRange, Start: start, End: end}
}

// Absent reports whether the value represents a missing answer.
func (v Value) Absent() bool { return v.Kind == KindAbsent }

// asNumber coerces the value to a float64 for ordering comparisons.
// Text values get a best-effort parse; everything else fails.
func (v Value) asNumber() (float64, bool) {
	switch v.Kind {
	case KindNumber:
		return v.Number, true
	case KindText:
		n, err := strconv.ParseFloat(strings.TrimSpace(v.Text), 64)
		return n, err == nil
	}
	return 0, false
}

// asDate coerces the value to a date. Date ranges compare by their start.
func (v Value) asDate() (time.Time, bool) {
	switch v.Kind {
	case KindDate:
		return v.Date, true
	case KindDateRange:
		return v.Start, true
	case KindText:
		d, err := time.Parse(DateLayout, strings.TrimSpace(v.Text))
		return d, err == nil
	}
	return time.Time{}, false
}

type dateRangePayload struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ParseValue decodes a raw JSON answer into the typed Value demanded by the
// question's type. Malformed payloads are rejected here so the evaluator
// only ever sees well-formed values. A JSON null (or empty input) decodes
// to the absent value; ValidateAnswer decides whether absence is allowed.
func ParseValue(q Question, raw json.RawMessage) (Value, *ValidationError) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return Value{}, nil
	}

	switch q.Type {
	case TypeBoolean:
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return Value{}, validationErrorf(q.Type, "expected true or false")
		}
		return BoolValue(b), nil

	case TypeSingleChoice, TypeTextShort, TypeTextLong:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return Value{}, validationErrorf(q.Type, "expected a string")
		}
		return TextValue(s), nil

	case TypeMultipleChoice:
		var opts []string
		if err := json.Unmarshal(raw, &opts); err != nil {
			return Value{}, validationErrorf(q.Type, "expected an array of strings")
		}
		return ChoicesValue(opts), nil

	case TypeRange, TypePercentage, TypeInteger, TypeDecimal:
		var n float64
		if err := json.Unmarshal(raw, &n); err != nil {
			// Numeric answers also arrive as strings from older clients.
			var s string
			if err := json.Unmarshal(raw, &s); err != nil {
				return Value{}, validationErrorf(q.Type, "expected a number")
			}
			parsed, perr := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if perr != nil {
				return Value{}, validationErrorf(q.Type, "expected a number, got %q", s)
			}
			n = parsed
		}
		return NumberValue(n), nil

	case TypeDate:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return Value{}, validationErrorf(q.Type, "expected a date string")
		}
		d, err := time.Parse(DateLayout, s)
		if err != nil {
			return Value{}, validationErrorf(q.Type, "invalid date %q, expected YYYY-MM-DD", s)
		}
		return DateValue(d), nil

	case TypeDateRange:
		var p dateRangePayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return Value{}, validationErrorf(q.Type, "expected {start, end}")
		}
		start, err := time.Parse(DateLayout, p.Start)
		if err != nil {
			return Value{}, validationErrorf(q.Type, "invalid start date %q", p.Start)
		}
		end, err := time.Parse(DateLayout, p.End)
		if err != nil {
			return Value{}, validationErrorf(q.Type, "invalid end date %q", p.End)
		}
		return DateRangeValue(start, end), nil
	}

	return Value{}, validationErrorf(q.Type, "unsupported question type")
}

// ValidateAnswer checks a parsed value against the question's constraints:
// required presence, shape, numeric bounds, percentage domain, text length
// caps, option membership and start ≤ end for date ranges. A nil return
// means the answer is legal for this question.
func ValidateAnswer(q Question, v Value) *ValidationError {
	if v.Absent() {
		if q.Required {
			return validationErrorf(q.Type, "an answer is required")
		}
		return nil
	}

	switch q.Type {
	case TypeBoolean:
		if v.Kind != KindBool {
			return validationErrorf(q.Type, "expected a boolean answer")
		}

	case TypeSingleChoice:
		if v.Kind != KindText {
			return validationErrorf(q.Type, "expected a single option")
		}
		if !containsString(q.Options, v.Text) {
			return validationErrorf(q.Type, "%q is not one of the allowed options", v.Text)
		}

	case TypeMultipleChoice:
		if v.Kind != KindChoices {
			return validationErrorf(q.Type, "expected a list of options")
		}
		for _, opt := range v.Choices {
			if !containsString(q.Options, opt) {
				return validationErrorf(q.Type, "%q is not one of the allowed options", opt)
			}
		}

	case TypeRange, TypeInteger, TypeDecimal:
		if v.Kind != KindNumber {
			return validationErrorf(q.Type, "expected a numeric answer")
		}
		if q.Min != nil && v.Number < *q.Min {
			return validationErrorf(q.Type, "value %v is below the minimum %v", v.Number, *q.Min)
		}
		if q.Max != nil && v.Number > *q.Max {
			return validationErrorf(q.Type, "value %v is above the maximum %v", v.Number, *q.Max)
		}
		if q.Type == TypeInteger && v.Number != float64(int64(v.Number)) {
			return validationErrorf(q.Type, "value %v is not a whole number", v.Number)
		}

	case TypePercentage:
		if v.Kind != KindNumber {
			return validationErrorf(q.Type, "expected a numeric answer")
		}
		if v.Number < 0 || v.Number > 100 {
			return validationErrorf(q.Type, "percentage must be between 0 and 100")
		}

	case TypeTextShort:
		if v.Kind != KindText {
			return validationErrorf(q.Type, "expected a text answer")
		}
		if utf8.RuneCountInString(v.Text) > MaxTextShort {
			return validationErrorf(q.Type, "text exceeds %d characters", MaxTextShort)
		}

	case TypeTextLong:
		if v.Kind != KindText {
			return validationErrorf(q.Type, "expected a text answer")
		}
		if utf8.RuneCountInString(v.Text) > MaxTextLong {
			return validationErrorf(q.Type, "text exceeds %d characters", MaxTextLong)
		}

	case TypeDate:
		if v.Kind != KindDate {
			return validationErrorf(q.Type, "expected a date answer")
		}

	case TypeDateRange:
		if v.Kind != KindDateRange {
			return validationErrorf(q.Type, "expected a date range answer")
		}
		if v.End.Before(v.Start) {
			return validationErrorf(q.Type, "range start must not be after its end")
		}

	default:
		return validationErrorf(q.Type, "unsupported question type")
	}

	return nil
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
