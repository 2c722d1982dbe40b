package balance

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Unit is the display unit of the demo currency.
const Unit = "ЗПЛ"

// ZPL is an amount of the demo currency in hundredths. Integer storage keeps
// repeated credits and debits exact.
type ZPL int64

// FromFloat converts a decimal amount, like 1234.56, into ZPL rounding to
// the nearest hundredth.
func FromFloat(f float64) ZPL {
	return ZPL(math.Round(f * 100))
}

// Parse converts a decimal string, like "250" or "0.01", into ZPL.
func Parse(s string) (ZPL, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("parsing amount %q: %w", s, err)
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("parsing amount %q: not a number", s)
	}

	return FromFloat(f), nil
}

// Float returns the amount as a decimal number.
func (z ZPL) Float() float64 {
	return float64(z) / 100
}

// Decimal renders the amount with two fractional digits.
func (z ZPL) Decimal() string {
	return strconv.FormatFloat(z.Float(), 'f', 2, 64)
}

// String renders the amount with its unit.
func (z ZPL) String() string {
	return z.Decimal() + " " + Unit
}

// MarshalJSON encodes the amount as a JSON number with two decimals.
func (z ZPL) MarshalJSON() ([]byte, error) {
	return []byte(z.Decimal()), nil
}

// UnmarshalJSON accepts a JSON number or a quoted decimal string.
func (z *ZPL) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)

	v, err := Parse(s)
	if err != nil {
		return err
	}

	*z = v
	return nil
}
