package scoring

import "strings"

// Matches evaluates a condition predicate against an answer value.
// Operands and answers are coerced to a common domain first; anything
// non-coercible simply fails to match. This function never panics and
// never reports an error: a rule that cannot apply is a rule that does
// not match.
func Matches(c Condition, v Value) bool {
	if v.Absent() {
		return false
	}

	switch c.Operator {
	case OpEqual:
		return matchEqual(c, v)
	case OpGreater, OpGreaterEqual, OpLess, OpLessEqual:
		return matchOrdering(c, v)
	case OpBetween:
		return matchBetween(c, v)
	case OpContains:
		return matchContains(c, v)
	}
	return false
}

func matchEqual(c Condition, v Value) bool {
	switch c.Kind {
	case OperandText:
		if v.Kind == KindBool {
			// Boolean answers stored against textual oui/non operands.
			return v.Bool == (c.Text == "oui")
		}
		return v.Kind == KindText && v.Text == c.Text
	case OperandNumeric:
		n, ok := v.asNumber()
		return ok && n == c.Number
	case OperandDate:
		d, ok := v.asDate()
		return ok && d.Equal(c.Date)
	}
	return false
}

func matchOrdering(c Condition, v Value) bool {
	switch c.Kind {
	case OperandNumeric:
		n, ok := v.asNumber()
		if !ok {
			return false
		}
		switch c.Operator {
		case OpGreater:
			return n > c.Number
		case OpGreaterEqual:
			return n >= c.Number
		case OpLess:
			return n < c.Number
		case OpLessEqual:
			return n <= c.Number
		}
	case OperandDate:
		d, ok := v.asDate()
		if !ok {
			return false
		}
		switch c.Operator {
		case OpGreater:
			return d.After(c.Date)
		case OpGreaterEqual:
			return !d.Before(c.Date)
		case OpLess:
			return d.Before(c.Date)
		case OpLessEqual:
			return !d.After(c.Date)
		}
	}
	return false
}

// matchBetween is inclusive at both ends. Date-range answers compare by
// their start date.
func matchBetween(c Condition, v Value) bool {
	switch c.Kind {
	case OperandNumeric:
		n, ok := v.asNumber()
		return ok && n >= c.Min && n <= c.Max
	case OperandDate:
		d, ok := v.asDate()
		return ok && !d.Before(c.DateMin) && !d.After(c.DateMax)
	}
	return false
}

func matchContains(c Condition, v Value) bool {
	switch c.Kind {
	case OperandSet:
		// Every operand element must be present in the selection.
		if v.Kind != KindChoices {
			return false
		}
		for _, want := range c.Set {
			if !containsString(v.Choices, want) {
				return false
			}
		}
		return len(c.Set) > 0
	case OperandText:
		switch v.Kind {
		case KindChoices:
			return containsString(v.Choices, c.Text)
		case KindText:
			return strings.Contains(v.Text, c.Text)
		}
	}
	return false
}
