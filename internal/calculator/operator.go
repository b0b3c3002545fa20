package calculator

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidResult is the only failure an evaluation can produce: division by
// zero or any result that is not a finite number.
var ErrInvalidResult = errors.New("invalid result")

// Operator is a pending binary operator.
type Operator uint8

const (
	OpNone Operator = iota
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
)

// String returns the keypad symbol for the operator.
func (o Operator) String() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "-"
	case OpMultiply:
		return "*"
	case OpDivide:
		return "/"
	default:
		return ""
	}
}

// Name returns the operation name used in routes, metrics and spans.
func (o Operator) Name() string {
	switch o {
	case OpAdd:
		return "add"
	case OpSubtract:
		return "subtract"
	case OpMultiply:
		return "multiply"
	case OpDivide:
		return "divide"
	default:
		return "none"
	}
}

// Valid reports whether o is one of the four binary operators.
func (o Operator) Valid() bool {
	return o >= OpAdd && o <= OpDivide
}

// ParseOperator accepts a keypad symbol (including the typographic glyphs) or
// an operation name.
func ParseOperator(s string) (Operator, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "+", "add", "plus":
		return OpAdd, nil
	case "-", "−", "subtract", "minus":
		return OpSubtract, nil
	case "*", "x", "×", "multiply", "times":
		return OpMultiply, nil
	case "/", "÷", "divide":
		return OpDivide, nil
	}
	return OpNone, fmt.Errorf("unknown operator %q", s)
}

// Apply evaluates a <op> b. Division by zero is rejected before dividing and
// any non-finite outcome is reported as ErrInvalidResult.
func (o Operator) Apply(a, b float64) (float64, error) {
	var r float64
	switch o {
	case OpAdd:
		r = a + b
	case OpSubtract:
		r = a - b
	case OpMultiply:
		r = a * b
	case OpDivide:
		if b == 0 {
			return 0, fmt.Errorf("%w: division by zero: %g / %g", ErrInvalidResult, a, b)
		}
		r = a / b
	default:
		return 0, fmt.Errorf("apply operator %d: not a binary operator", o)
	}

	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, fmt.Errorf("%w: %g %s %g is not finite", ErrInvalidResult, a, o, b)
	}
	return r, nil
}
