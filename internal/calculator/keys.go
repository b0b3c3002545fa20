package calculator

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrUnknownKey is returned for tokens that are not on the keypad.
var ErrUnknownKey = errors.New("unknown key")

// KeyKind identifies which engine event a key triggers.
type KeyKind uint8

const (
	KeyDigit KeyKind = iota
	KeyDecimal
	KeyClear
	KeyToggleSign
	KeyPercent
	KeyOperator
	KeyEquals
)

// String names the kind for metric labels.
func (k KeyKind) String() string {
	switch k {
	case KeyDigit:
		return "digit"
	case KeyDecimal:
		return "decimal"
	case KeyClear:
		return "clear"
	case KeyToggleSign:
		return "toggle_sign"
	case KeyPercent:
		return "percent"
	case KeyOperator:
		return "operator"
	case KeyEquals:
		return "equals"
	}
	return fmt.Sprintf("KeyKind(%d)", uint8(k))
}

// Key is one keypad press.
type Key struct {
	Kind  KeyKind
	Digit Digit    // KeyDigit only
	Op    Operator // KeyOperator only
}

// String returns the keypad label.
func (k Key) String() string {
	switch k.Kind {
	case KeyDigit:
		return k.Digit.String()
	case KeyDecimal:
		return "."
	case KeyClear:
		return "AC"
	case KeyToggleSign:
		return "+/-"
	case KeyPercent:
		return "%"
	case KeyOperator:
		return k.Op.String()
	case KeyEquals:
		return "="
	}
	return "?"
}

// ParseKey maps a keypad label (or one of its aliases) to a Key.
func ParseKey(token string) (Key, error) {
	t := strings.ToLower(strings.TrimSpace(token))

	if r := []rune(t); len(r) == 1 && r[0] >= '0' && r[0] <= '9' {
		d, _ := ParseDigit(r[0])
		return Key{Kind: KeyDigit, Digit: d}, nil
	}

	switch t {
	case ".", ",":
		return Key{Kind: KeyDecimal}, nil
	case "ac", "c", "clear":
		return Key{Kind: KeyClear}, nil
	case "+/-", "±", "neg", "negate":
		return Key{Kind: KeyToggleSign}, nil
	case "%", "percent":
		return Key{Kind: KeyPercent}, nil
	case "=", "enter", "equals":
		return Key{Kind: KeyEquals}, nil
	}

	if op, err := ParseOperator(t); err == nil {
		return Key{Kind: KeyOperator, Op: op}, nil
	}
	return Key{}, fmt.Errorf("%w: %q", ErrUnknownKey, token)
}

// ParseKeys parses every token, failing on the first unknown one.
func ParseKeys(tokens []string) ([]Key, error) {
	keys := make([]Key, 0, len(tokens))
	for i, tok := range tokens {
		k, err := ParseKey(tok)
		if err != nil {
			return nil, fmt.Errorf("key %d: %w", i, err)
		}
		keys = append(keys, k)
	}
	return keys, nil
}

// Tokenize splits free-form keypad input such as "12.5*3=" or "5 + 3 =" into
// one token per key. Runs of letters stay together so named keys ("AC",
// "clear") survive; "+/-" is recognised before "+".
func Tokenize(line string) []string {
	var tokens []string
	rs := []rune(line)

	for i := 0; i < len(rs); {
		r := rs[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '+' && i+2 < len(rs) && rs[i+1] == '/' && rs[i+2] == '-':
			tokens = append(tokens, "+/-")
			i += 3
		case unicode.IsLetter(r):
			j := i
			for j < len(rs) && unicode.IsLetter(rs[j]) {
				j++
			}
			tokens = append(tokens, string(rs[i:j]))
			i = j
		default:
			tokens = append(tokens, string(r))
			i++
		}
	}
	return tokens
}

// Press dispatches k to the matching event.
func (s State) Press(k Key) State {
	switch k.Kind {
	case KeyDigit:
		return s.InputDigit(k.Digit)
	case KeyDecimal:
		return s.InputDecimal()
	case KeyClear:
		return s.Clear()
	case KeyToggleSign:
		return s.ToggleSign()
	case KeyPercent:
		return s.Percent()
	case KeyOperator:
		return s.ApplyOperator(k.Op)
	case KeyEquals:
		return s.Equals()
	}
	panic(fmt.Sprintf("calculator: unknown key kind %d", k.Kind))
}

// evaluates reports whether pressing k evaluates the pending operation, and
// which operator that is.
func (s State) evaluates(k Key) (Operator, bool) {
	switch k.Kind {
	case KeyOperator:
		return s.op, s.hasPrev && !s.awaiting && s.op.Valid()
	case KeyEquals:
		return s.op, s.hasPrev && !s.failed && s.op.Valid()
	}
	return OpNone, false
}

// Step is the display observed after one key press.
type Step struct {
	Key     string `json:"key"`
	Display string `json:"display"`
}

// Replay presses keys on a cleared calculator and returns the final state
// together with the display after every key.
func Replay(keys []Key) (State, []Step) {
	var s State
	steps := make([]Step, 0, len(keys))
	for _, k := range keys {
		s = s.Press(k)
		steps = append(steps, Step{Key: k.String(), Display: s.Display()})
	}
	return s, steps
}
