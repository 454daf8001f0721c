// Package condition parses and evaluates the comparison rules used by
// conditional number-format sections (e.g. "[>=100]") and by conditional
// highlighting rules.
//
// A [Rule] is built once from an operator token and an operand string and
// can then be evaluated against any number of values with [Rule.Pass].
// Comparison is exact IEEE-754; no tolerance is applied.
package condition

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Sentinel errors returned (wrapped) by the parsers in this package.
var (
	// ErrInvalidOperator is returned when the operator token is not one of
	// <, <=, >, >=, =, ==, <>, !=.
	ErrInvalidOperator = errors.New("condition: invalid operator")
	// ErrInvalidOperand is returned when the operand is not a finite number.
	ErrInvalidOperand = errors.New("condition: invalid operand")
)

// Operator is a comparison operator.
type Operator int

// Supported operators.  "==" parses to OpEqual and "!=" to OpNotEqual.
const (
	OpLess Operator = iota
	OpLessEqual
	OpGreater
	OpGreaterEqual
	OpEqual
	OpNotEqual
)

// String returns the canonical token for op.
func (op Operator) String() string {
	switch op {
	case OpLess:
		return "<"
	case OpLessEqual:
		return "<="
	case OpGreater:
		return ">"
	case OpGreaterEqual:
		return ">="
	case OpEqual:
		return "="
	case OpNotEqual:
		return "<>"
	}
	return fmt.Sprintf("Operator(%d)", int(op))
}

// Rule is a parsed "value OP operand" comparison.  The zero value is not a
// useful rule; construct one with [Parse] or [ParseRule].
type Rule struct {
	Op      Operator
	Operand float64
}

// ParseOperator maps an operator token to an [Operator].
func ParseOperator(tok string) (Operator, error) {
	switch tok {
	case "<":
		return OpLess, nil
	case "<=":
		return OpLessEqual, nil
	case ">":
		return OpGreater, nil
	case ">=":
		return OpGreaterEqual, nil
	case "=", "==":
		return OpEqual, nil
	case "<>", "!=":
		return OpNotEqual, nil
	}
	return 0, fmt.Errorf("%w %q", ErrInvalidOperator, tok)
}

// Parse builds a Rule from an operator token and the operand text.  The
// operand is parsed independently of any locale ("1.5", not "1,5").
func Parse(op, operand string) (Rule, error) {
	o, err := ParseOperator(op)
	if err != nil {
		return Rule{}, err
	}
	v, err := parseOperand(operand)
	if err != nil {
		return Rule{}, err
	}
	return Rule{Op: o, Operand: v}, nil
}

// ParseRule parses the combined form used inside format-string brackets,
// such as "<=100" or ">-2.5".  Surrounding brackets are not accepted.
func ParseRule(s string) (Rule, error) {
	s = strings.TrimSpace(s)
	n := 0
	for n < len(s) && n < 2 && strings.IndexByte("<>=!", s[n]) >= 0 {
		n++
	}
	if n == 0 {
		return Rule{}, fmt.Errorf("%w in %q", ErrInvalidOperator, s)
	}
	return Parse(s[:n], s[n:])
}

func parseOperand(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w %q", ErrInvalidOperand, s)
	}
	return v, nil
}

// Pass reports whether v satisfies the rule.
func (r Rule) Pass(v float64) bool {
	switch r.Op {
	case OpLess:
		return v < r.Operand
	case OpLessEqual:
		return v <= r.Operand
	case OpGreater:
		return v > r.Operand
	case OpGreaterEqual:
		return v >= r.Operand
	case OpEqual:
		return v == r.Operand
	case OpNotEqual:
		return v != r.Operand
	}
	return false
}

// String renders the rule in format-string form, e.g. "<=100".
func (r Rule) String() string {
	return r.Op.String() + strconv.FormatFloat(r.Operand, 'f', -1, 64)
}
