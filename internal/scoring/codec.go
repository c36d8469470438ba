package scoring

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// conditionColumn is the column name the persisted textual form predicates
// over. It is fixed: every stored condition reads `reponse ...`.
const conditionColumn = "reponse"

var orderingSymbols = map[Operator]string{
	OpEqual:        "=",
	OpGreater:      ">",
	OpGreaterEqual: ">=",
	OpLess:         "<",
	OpLessEqual:    "<=",
}

var symbolOperators = map[string]Operator{
	"=":  OpEqual,
	">":  OpGreater,
	">=": OpGreaterEqual,
	"<":  OpLess,
	"<=": OpLessEqual,
}

// EncodeCondition serializes a condition into its persisted textual form:
//
//	reponse = 'oui'
//	reponse LIKE '%pep%'
//	reponse::NUMERIC >= 5
//	reponse::NUMERIC BETWEEN 5 AND 15
//	reponse::DATE < '2020-01-01'
//	reponse::DATE BETWEEN '2020-01-01' AND '2020-12-31'
//	reponse @> ARRAY['a', 'b']
//
// Every string this function produces decodes back to an equal condition.
func EncodeCondition(c Condition) (string, error) {
	switch c.Kind {
	case OperandText:
		switch c.Operator {
		case OpEqual:
			return fmt.Sprintf("%s = %s", conditionColumn, quote(c.Text)), nil
		case OpContains:
			return fmt.Sprintf("%s LIKE %s", conditionColumn, quote("%"+c.Text+"%")), nil
		}

	case OperandNumeric:
		if c.Operator == OpBetween {
			return fmt.Sprintf("%s::NUMERIC BETWEEN %s AND %s",
				conditionColumn, formatNumber(c.Min), formatNumber(c.Max)), nil
		}
		if sym, ok := orderingSymbols[c.Operator]; ok {
			return fmt.Sprintf("%s::NUMERIC %s %s", conditionColumn, sym, formatNumber(c.Number)), nil
		}

	case OperandDate:
		if c.Operator == OpBetween {
			return fmt.Sprintf("%s::DATE BETWEEN '%s' AND '%s'",
				conditionColumn, c.DateMin.Format(DateLayout), c.DateMax.Format(DateLayout)), nil
		}
		if sym, ok := orderingSymbols[c.Operator]; ok {
			return fmt.Sprintf("%s::DATE %s '%s'", conditionColumn, sym, c.Date.Format(DateLayout)), nil
		}

	case OperandSet:
		if c.Operator == OpContains {
			quoted := make([]string, len(c.Set))
			for i, s := range c.Set {
				quoted[i] = quote(s)
			}
			return fmt.Sprintf("%s @> ARRAY[%s]", conditionColumn, strings.Join(quoted, ", ")), nil
		}
	}

	return "", configErrorf("condition %s/%s has no textual form", c.Operator, c.Kind)
}

// DecodeCondition parses the persisted textual form back into a condition.
// Decoding is total for encoder output; externally-authored free text is
// parsed best-effort and failures come back as a recoverable *ParseError.
func DecodeCondition(input string) (Condition, error) {
	s := strings.TrimSpace(input)
	if !strings.HasPrefix(s, conditionColumn) {
		return Condition{}, parseErrorf(input, "condition must reference %q", conditionColumn)
	}
	s = s[len(conditionColumn):]

	switch {
	case strings.HasPrefix(s, "::NUMERIC"):
		return decodeNumeric(input, strings.TrimSpace(s[len("::NUMERIC"):]))
	case strings.HasPrefix(s, "::DATE"):
		return decodeDate(input, strings.TrimSpace(s[len("::DATE"):]))
	}

	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "@>"):
		return decodeSet(input, strings.TrimSpace(s[len("@>"):]))
	case strings.HasPrefix(s, "LIKE"):
		return decodeLike(input, strings.TrimSpace(s[len("LIKE"):]))
	case strings.HasPrefix(s, "="):
		text, rest, err := unquote(strings.TrimSpace(s[1:]))
		if err != nil || strings.TrimSpace(rest) != "" {
			return Condition{}, parseErrorf(input, "malformed quoted value")
		}
		return Condition{Operator: OpEqual, Kind: OperandText, Text: text}, nil
	}

	return Condition{}, parseErrorf(input, "unrecognized condition form")
}

func decodeNumeric(input, s string) (Condition, error) {
	if rest, ok := cutPrefixFold(s, "BETWEEN"); ok {
		lo, hi, err := splitAnd(rest)
		if err != nil {
			return Condition{}, parseErrorf(input, "malformed BETWEEN: %v", err)
		}
		min, err1 := strconv.ParseFloat(lo, 64)
		max, err2 := strconv.ParseFloat(hi, 64)
		if err1 != nil || err2 != nil {
			return Condition{}, parseErrorf(input, "BETWEEN bounds must be numeric")
		}
		return Condition{Operator: OpBetween, Kind: OperandNumeric, Min: min, Max: max}, nil
	}

	sym, rest, err := splitSymbol(s)
	if err != nil {
		return Condition{}, parseErrorf(input, "%v", err)
	}
	n, err := strconv.ParseFloat(rest, 64)
	if err != nil {
		return Condition{}, parseErrorf(input, "expected a number, got %q", rest)
	}
	return Condition{Operator: symbolOperators[sym], Kind: OperandNumeric, Number: n}, nil
}

func decodeDate(input, s string) (Condition, error) {
	if rest, ok := cutPrefixFold(s, "BETWEEN"); ok {
		lo, hi, err := splitAnd(rest)
		if err != nil {
			return Condition{}, parseErrorf(input, "malformed BETWEEN: %v", err)
		}
		min, err1 := parseQuotedDate(lo)
		max, err2 := parseQuotedDate(hi)
		if err1 != nil || err2 != nil {
			return Condition{}, parseErrorf(input, "BETWEEN bounds must be quoted dates")
		}
		return Condition{Operator: OpBetween, Kind: OperandDate, DateMin: min, DateMax: max}, nil
	}

	sym, rest, err := splitSymbol(s)
	if err != nil {
		return Condition{}, parseErrorf(input, "%v", err)
	}
	d, err := parseQuotedDate(rest)
	if err != nil {
		return Condition{}, parseErrorf(input, "expected a quoted date, got %q", rest)
	}
	return Condition{Operator: symbolOperators[sym], Kind: OperandDate, Date: d}, nil
}

func decodeSet(input, s string) (Condition, error) {
	if !strings.HasPrefix(s, "ARRAY[") || !strings.HasSuffix(s, "]") {
		return Condition{}, parseErrorf(input, "expected ARRAY[...]")
	}
	body := s[len("ARRAY[") : len(s)-1]

	var set []string
	rest := strings.TrimSpace(body)
	for rest != "" {
		elem, tail, err := unquote(rest)
		if err != nil {
			return Condition{}, parseErrorf(input, "malformed array element")
		}
		set = append(set, elem)
		rest = strings.TrimSpace(tail)
		if rest == "" {
			break
		}
		if !strings.HasPrefix(rest, ",") {
			return Condition{}, parseErrorf(input, "expected ',' between array elements")
		}
		rest = strings.TrimSpace(rest[1:])
	}
	if len(set) == 0 {
		return Condition{}, parseErrorf(input, "empty array")
	}
	return Condition{Operator: OpContains, Kind: OperandSet, Set: set}, nil
}

func decodeLike(input, s string) (Condition, error) {
	pattern, rest, err := unquote(s)
	if err != nil || strings.TrimSpace(rest) != "" {
		return Condition{}, parseErrorf(input, "malformed LIKE pattern")
	}
	if !strings.HasPrefix(pattern, "%") || !strings.HasSuffix(pattern, "%") || len(pattern) < 2 {
		return Condition{}, parseErrorf(input, "only substring LIKE patterns are supported")
	}
	return Condition{Operator: OpContains, Kind: OperandText, Text: pattern[1 : len(pattern)-1]}, nil
}

// ─── lexing helpers ─────────────────────────────────────────────────

// quote wraps s in single quotes, doubling embedded quotes SQL-style.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// unquote reads one leading single-quoted string and returns its value and
// the remaining input.
func unquote(s string) (value, rest string, err error) {
	if !strings.HasPrefix(s, "'") {
		return "", "", fmt.Errorf("expected opening quote")
	}
	var b strings.Builder
	i := 1
	for i < len(s) {
		if s[i] == '\'' {
			if i+1 < len(s) && s[i+1] == '\'' {
				b.WriteByte('\'')
				i += 2
				continue
			}
			return b.String(), s[i+1:], nil
		}
		b.WriteByte(s[i])
		i++
	}
	return "", "", fmt.Errorf("unterminated quoted string")
}

func parseQuotedDate(s string) (time.Time, error) {
	value, rest, err := unquote(strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, err
	}
	if strings.TrimSpace(rest) != "" {
		return time.Time{}, fmt.Errorf("trailing input after date")
	}
	return time.Parse(DateLayout, value)
}

// splitSymbol reads a leading comparison symbol (longest match first).
func splitSymbol(s string) (sym, rest string, err error) {
	for _, candidate := range []string{">=", "<=", "=", ">", "<"} {
		if strings.HasPrefix(s, candidate) {
			return candidate, strings.TrimSpace(s[len(candidate):]), nil
		}
	}
	return "", "", fmt.Errorf("expected a comparison operator")
}

// splitAnd splits "a AND b" into its two trimmed halves.
func splitAnd(s string) (string, string, error) {
	idx := indexFold(s, " AND ")
	if idx < 0 {
		return "", "", fmt.Errorf("expected AND")
	}
	return strings.TrimSpace(s[:idx]), strings.TrimSpace(s[idx+len(" AND "):]), nil
}

func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) {
		return strings.TrimSpace(s[len(prefix):]), true
	}
	return s, false
}

func indexFold(s, sub string) int {
	return strings.Index(strings.ToUpper(s), strings.ToUpper(sub))
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
