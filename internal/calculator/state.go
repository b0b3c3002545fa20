package calculator

import (
	"fmt"
	"math"
	"strings"
)

// ErrorDisplay is shown after an evaluation produced an invalid result.
const ErrorDisplay = "Error"

// Digit is a single keypad digit, 0 through 9.
type Digit uint8

// ParseDigit converts '0'..'9' to a Digit.
func ParseDigit(r rune) (Digit, error) {
	if r < '0' || r > '9' {
		return 0, fmt.Errorf("%w: %q is not a digit", ErrUnknownKey, r)
	}
	return Digit(r - '0'), nil
}

func (d Digit) String() string {
	return string(rune('0' + d))
}

// State is the calculator's accumulator. It is a value: every event returns
// the next State and leaves the receiver untouched. The zero value is the
// freshly cleared calculator showing "0".
//
// When op is OpNone, hasPrev is false.
type State struct {
	text     string // numeral being shown; "" means "0"
	failed   bool   // last evaluation was invalid; text is meaningless
	op       Operator
	prev     float64
	hasPrev  bool
	awaiting bool // next digit or decimal starts a new numeral
}

// Display is the string a host renders.
func (s State) Display() string {
	if s.failed {
		return ErrorDisplay
	}
	return s.entry()
}

// Failed reports whether the calculator is in the error state.
func (s State) Failed() bool { return s.failed }

func (s State) entry() string {
	if s.text == "" {
		return "0"
	}
	return s.text
}

// current is the numeric value of the display; the error state counts as 0.
func (s State) current() float64 {
	if s.failed {
		return 0
	}
	return mustParse(s.entry())
}

// InputDigit appends d to the numeral being entered, or starts a new numeral
// after an operator, equals or an error.
func (s State) InputDigit(d Digit) State {
	if d > 9 {
		panic(fmt.Sprintf("calculator: digit out of range: %d", d))
	}

	switch {
	case s.failed, s.awaiting:
		s.text = d.String()
		s.failed = false
		s.awaiting = false
	case s.entry() == "0":
		s.text = d.String()
	default:
		s.text = s.entry() + d.String()
	}
	return s
}

// InputDecimal adds a decimal point. A second point in the same numeral is
// ignored.
func (s State) InputDecimal() State {
	switch {
	case s.failed, s.awaiting:
		s.text = "0."
		s.failed = false
		s.awaiting = false
	case !strings.Contains(s.entry(), "."):
		s.text = s.entry() + "."
	}
	return s
}

// Clear resets everything.
func (s State) Clear() State {
	return State{}
}

// ToggleSign negates the displayed numeral.
func (s State) ToggleSign() State {
	return s.rescale(func(v float64) float64 { return -v })
}

// Percent divides the displayed numeral by 100.
func (s State) Percent() State {
	return s.rescale(func(v float64) float64 { return v / 100 })
}

func (s State) rescale(f func(float64) float64) State {
	if s.failed || s.entry() == "0" {
		return s
	}

	v := f(mustParse(s.entry()))
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return s.fail()
	}
	s.text = FormatNumber(v)
	s.awaiting = false
	return s
}

// ApplyOperator records op as the pending operator. If an operator is already
// pending and a right-hand operand has been entered, the pending operation is
// evaluated first, so operators chain left to right without precedence.
// Pressing operators back to back only replaces the pending one, so "5 + + ="
// shows 10. Earlier keypad hosts evaluated on the second press and showed 20.
func (s State) ApplyOperator(op Operator) State {
	if !op.Valid() {
		panic(fmt.Sprintf("calculator: apply operator %d: not a binary operator", op))
	}

	cur := s.current()
	switch {
	case !s.hasPrev:
		s.prev = cur
		s.hasPrev = true
	case s.awaiting:
		// no operand entered since the last operator
	case s.op != OpNone:
		r, err := s.op.Apply(s.prev, cur)
		if err != nil {
			s = s.fail()
			s.prev, s.hasPrev = 0, false
		} else {
			s.text = FormatNumber(r)
			s.failed = false
			s.prev = r
		}
	}

	s.op = op
	s.awaiting = true
	return s
}

// Equals evaluates the pending operation. It is a no-op when nothing is
// pending or the calculator shows an error.
func (s State) Equals() State {
	if s.op == OpNone || !s.hasPrev || s.failed {
		return s
	}

	r, err := s.op.Apply(s.prev, s.current())
	if err != nil {
		s = s.fail()
	} else {
		s.text = FormatNumber(r)
	}

	s.op = OpNone
	s.prev, s.hasPrev = 0, false
	s.awaiting = true
	return s
}

func (s State) fail() State {
	s.failed = true
	s.text = ""
	return s
}

// Snapshot is a read-only view of a State for hosts and transports.
type Snapshot struct {
	Display         string
	Operator        Operator
	Previous        float64
	HasPrevious     bool
	AwaitingOperand bool
}

// Snapshot returns the externally visible fields of s.
func (s State) Snapshot() Snapshot {
	return Snapshot{
		Display:         s.Display(),
		Operator:        s.op,
		Previous:        s.prev,
		HasPrevious:     s.hasPrev,
		AwaitingOperand: s.awaiting,
	}
}
