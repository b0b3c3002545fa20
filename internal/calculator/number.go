package calculator

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Outside [expLow, expHigh) numbers are rendered in exponent form.
const (
	expLow  = 1e-6
	expHigh = 1e21
)

// FormatNumber renders x as the shortest decimal string that parses back to
// x. Integral values carry no decimal point and negative zero renders as "0".
func FormatNumber(x float64) string {
	if x == 0 {
		return "0"
	}

	abs := math.Abs(x)
	if abs >= expHigh || abs < expLow {
		s := strconv.FormatFloat(x, 'e', -1, 64)
		s = strings.Replace(s, "e-0", "e-", 1)
		return strings.Replace(s, "e+0", "e+", 1)
	}
	return strconv.FormatFloat(x, 'f', -1, 64)
}

// ParseNumber reads a display numeral. A trailing decimal point is ignored
// and exponents beyond float64 range saturate to ±Inf.
func ParseNumber(s string) (float64, error) {
	s = strings.TrimSuffix(s, ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return v, nil
		}
		return 0, fmt.Errorf("parse numeral %q: %w", s, err)
	}
	return v, nil
}

// mustParse is used on text the engine produced itself.
func mustParse(s string) float64 {
	v, err := ParseNumber(s)
	if err != nil {
		panic(fmt.Sprintf("calculator: corrupt display: %v", err))
	}
	return v
}
