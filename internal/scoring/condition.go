package scoring

import "time"

// Operator enumerates the supported condition predicates.
type Operator string

const (
	OpEqual        Operator = "equal"
	OpGreater      Operator = "greater"
	OpGreaterEqual Operator = "greater_equal"
	OpLess         Operator = "less"
	OpLessEqual    Operator = "less_equal"
	OpBetween      Operator = "between"
	OpContains     Operator = "contains"
)

// OperandKind selects the comparison domain of a condition's operand.
type OperandKind string

const (
	OperandText    OperandKind = "text"
	OperandNumeric OperandKind = "numeric"
	OperandDate    OperandKind = "date"
	OperandSet     OperandKind = "set"
)

// Condition is the canonical in-memory predicate over an answer value.
// The textual form stored by the rule store is a pure serialization of
// this type, handled by the codec — evaluation never parses text.
//
// Operand fields by (Operator, Kind):
//   - equal/orderings + numeric → Number
//   - between + numeric         → Min, Max
//   - equal + text              → Text
//   - contains + text           → Text (substring)
//   - contains + set            → Set (all elements required)
//   - equal/orderings + date    → Date
//   - between + date            → DateMin, DateMax
type Condition struct {
	Operator Operator
	Kind     OperandKind

	Text    string
	Number  float64
	Min     float64
	Max     float64
	Date    time.Time
	DateMin time.Time
	DateMax time.Time
	Set     []string
}

// Equal reports deep equality between two conditions. Dates compare by
// instant so decoded conditions match their encoded originals.
func (c Condition) Equal(o Condition) bool {
	if c.Operator != o.Operator || c.Kind != o.Kind {
		return false
	}
	if c.Text != o.Text || c.Number != o.Number || c.Min != o.Min || c.Max != o.Max {
		return false
	}
	if !c.Date.Equal(o.Date) || !c.DateMin.Equal(o.DateMin) || !c.DateMax.Equal(o.DateMax) {
		return false
	}
	if len(c.Set) != len(o.Set) {
		return false
	}
	for i := range c.Set {
		if c.Set[i] != o.Set[i] {
			return false
		}
	}
	return true
}

// validOperators maps each question type onto the operators a rule
// condition may legally use against it. A rule whose operator is absent
// here can never match (§ rule resolution) and is flagged at save time.
func validOperatorFor(t QuestionType, op Operator) bool {
	switch t {
	case TypeBoolean:
		return op == OpEqual
	case TypeSingleChoice:
		return op == OpEqual
	case TypeMultipleChoice:
		return op == OpEqual || op == OpContains
	case TypeRange, TypePercentage, TypeInteger, TypeDecimal:
		switch op {
		case OpEqual, OpGreater, OpGreaterEqual, OpLess, OpLessEqual, OpBetween:
			return true
		}
		return false
	case TypeTextShort, TypeTextLong:
		return op == OpEqual || op == OpContains
	case TypeDate, TypeDateRange:
		switch op {
		case OpEqual, OpGreater, OpGreaterEqual, OpLess, OpLessEqual, OpBetween:
			return true
		}
		return false
	}
	return false
}
