package scoring

import "fmt"

// ValidationError reports a malformed or missing answer value. It is
// recoverable: the caller re-prompts the user, nothing is persisted.
type ValidationError struct {
	Type    QuestionType `json:"type"`
	Message string       `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func validationErrorf(t QuestionType, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Type: t, Message: fmt.Sprintf(format, args...)}
}

// ConfigurationError reports an admin-authored configuration that violates
// an invariant (overlapping thresholds, operator invalid for a question
// type). It is raised at save time and must never be silently accepted.
type ConfigurationError struct {
	Message string `json:"message"`
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

func configErrorf(format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{Message: fmt.Sprintf(format, args...)}
}

// ParseError reports a textual condition that could not be decoded. It is
// surfaced to the rule editor and never interrupts evaluation of other rules.
type ParseError struct {
	Input   string `json:"input"`
	Message string `json:"message"`
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %q: %s", e.Input, e.Message)
}

func parseErrorf(input, format string, args ...interface{}) *ParseError {
	return &ParseError{Input: input, Message: fmt.Sprintf(format, args...)}
}
