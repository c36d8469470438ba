package scoring

// QuestionType enumerates the supported answer shapes. The set is closed:
// every switch over it in this package handles all variants explicitly.
type QuestionType string

const (
	TypeBoolean        QuestionType = "boolean"
	TypeSingleChoice   QuestionType = "single_choice"
	TypeMultipleChoice QuestionType = "multiple_choice"
	TypeRange          QuestionType = "range"
	TypePercentage     QuestionType = "percentage"
	TypeInteger        QuestionType = "integer"
	TypeDecimal        QuestionType = "decimal"
	TypeTextShort      QuestionType = "text_short"
	TypeTextLong       QuestionType = "text_long"
	TypeDate           QuestionType = "date"
	TypeDateRange      QuestionType = "date_range"
)

// Valid reports whether t is one of the supported question types.
func (t QuestionType) Valid() bool {
	switch t {
	case TypeBoolean, TypeSingleChoice, TypeMultipleChoice, TypeRange,
		TypePercentage, TypeInteger, TypeDecimal, TypeTextShort,
		TypeTextLong, TypeDate, TypeDateRange:
		return true
	}
	return false
}

// IsNumeric reports whether answers of this type carry a numeric value.
func (t QuestionType) IsNumeric() bool {
	switch t {
	case TypeRange, TypePercentage, TypeInteger, TypeDecimal:
		return true
	}
	return false
}

// IsText reports whether answers of this type carry free text.
func (t QuestionType) IsText() bool {
	return t == TypeTextShort || t == TypeTextLong
}

// Question is the evaluation-time view of a question: just the fields the
// engine needs to validate an answer and resolve rules. The persistence
// shape lives in internal/model and converts down to this.
type Question struct {
	Type                  QuestionType
	Required              bool
	JustificationRequired bool
	CommentRequired       bool
	Min                   *float64
	Max                   *float64
	Options               []string
}

// Length caps for free-text answers.
const (
	MaxTextShort = 255
	MaxTextLong  = 2000
)
