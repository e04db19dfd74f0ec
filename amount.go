package ledgersdk

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// TinyunitsPerUnit is the number of tinyunits in one whole native
// currency unit (spec §3: "1 unit = 10^8 tinyunits").
const TinyunitsPerUnit int64 = 100_000_000

// Amount is a signed quantity of native currency, stored exactly in
// tinyunits. All arithmetic is checked: an operation that would exceed
// the signed 64-bit range returns an Overflow error rather than
// wrapping or saturating silently.
type Amount struct {
	tinyunits int64
}

// ZeroAmount is the additive identity.
var ZeroAmount = Amount{}

// NewAmount constructs an Amount from a whole-unit quantity. Fractional
// units that do not divide evenly into tinyunits are rounded to the
// nearest tinyunit.
func NewAmount(units float64) Amount {
	return Amount{tinyunits: int64(math.Round(units * float64(TinyunitsPerUnit)))}
}

// NewAmountFromTinyunits constructs an Amount from an exact tinyunit count.
func NewAmountFromTinyunits(tinyunits int64) Amount {
	return Amount{tinyunits: tinyunits}
}

// AsTinyunits returns the exact signed tinyunit count.
func (a Amount) AsTinyunits() int64 { return a.tinyunits }

// AsUnits returns the quantity in whole native currency units, computed
// as the float64 quotient of AsTinyunits and TinyunitsPerUnit, so a
// fractional amount is generally rounded (one tinyunit, 1e-8, has no
// exact float64 form).
func (a Amount) AsUnits() float64 {
	return float64(a.tinyunits) / float64(TinyunitsPerUnit)
}

// Add returns a+b, or an Overflow error if the signed 64-bit range
// would be exceeded.
func (a Amount) Add(b Amount) (Amount, error) {
	sum := a.tinyunits + b.tinyunits
	if (b.tinyunits > 0 && sum < a.tinyunits) || (b.tinyunits < 0 && sum > a.tinyunits) {
		return Amount{}, newErr(ErrOverflow, "amount addition overflowed", nil)
	}
	return Amount{tinyunits: sum}, nil
}

// Subtract returns a-b, or an Overflow error if the signed 64-bit range
// would be exceeded.
func (a Amount) Subtract(b Amount) (Amount, error) {
	if b.tinyunits == math.MinInt64 {
		return Amount{}, newErr(ErrOverflow, "amount subtraction overflowed", nil)
	}
	return a.Add(Amount{tinyunits: -b.tinyunits})
}

// MultiplyScalar returns a*n, or an Overflow error if the signed 64-bit
// range would be exceeded.
func (a Amount) MultiplyScalar(n int64) (Amount, error) {
	if a.tinyunits == 0 || n == 0 {
		return ZeroAmount, nil
	}
	if n == -1 && a.tinyunits == math.MinInt64 {
		return Amount{}, newErr(ErrOverflow, "amount multiplication overflowed", nil)
	}
	product := a.tinyunits * n
	if product/n != a.tinyunits {
		return Amount{}, newErr(ErrOverflow, "amount multiplication overflowed", nil)
	}
	return Amount{tinyunits: product}, nil
}

// Negate returns -a, or an Overflow error for math.MinInt64 (which has
// no positive counterpart in two's complement).
func (a Amount) Negate() (Amount, error) {
	if a.tinyunits == math.MinInt64 {
		return Amount{}, newErr(ErrOverflow, "amount negation overflowed", nil)
	}
	return Amount{tinyunits: -a.tinyunits}, nil
}

// Compare returns -1, 0, or 1 as a is less than, equal to, or greater
// than b.
func (a Amount) Compare(b Amount) int {
	switch {
	case a.tinyunits < b.tinyunits:
		return -1
	case a.tinyunits > b.tinyunits:
		return 1
	default:
		return 0
	}
}

// IsZero reports whether the amount is exactly zero.
func (a Amount) IsZero() bool { return a.tinyunits == 0 }

// String renders the amount with the minimum precision necessary,
// suffixed with the whole-unit symbol, in a locale-neutral (period
// decimal separator) form.
func (a Amount) String() string {
	return a.Format("")
}

// Format renders the amount in the given unit ("t" tinyunit, "u"
// microunit, "m" milliunit, "" whole unit).
func (a Amount) Format(unit string) string {
	switch unit {
	case "t":
		return fmt.Sprintf("%d tℏ", a.tinyunits)
	case "u":
		return formatScaled(a.tinyunits, 100) + " μℏ"
	case "m":
		return formatScaled(a.tinyunits, 100_000) + " mℏ"
	default:
		return formatScaled(a.tinyunits, TinyunitsPerUnit) + " ℏ"
	}
}

func formatScaled(tinyunits int64, scale int64) string {
	whole := tinyunits / scale
	frac := tinyunits % scale
	if frac == 0 {
		return strconv.FormatInt(whole, 10)
	}
	if frac < 0 {
		frac = -frac
	}
	sign := ""
	if tinyunits < 0 && whole == 0 {
		sign = "-"
	}
	s := fmt.Sprintf("%s%d.%0*d", sign, whole, digitsFor(scale), frac)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

func digitsFor(scale int64) int {
	n := 0
	for scale > 1 {
		scale /= 10
		n++
	}
	return n
}

// ParseAmount parses a decimal number with an optional unit suffix:
// "tℏ" (tinyunit), "μℏ" (microunit), "mℏ"
// (milliunit), or "ℏ"/no suffix (whole unit).
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	scale := TinyunitsPerUnit
	switch {
	case strings.HasSuffix(s, "tℏ"):
		scale = 1
		s = strings.TrimSuffix(s, "tℏ")
	case strings.HasSuffix(s, "μℏ"):
		scale = 100
		s = strings.TrimSuffix(s, "μℏ")
	case strings.HasSuffix(s, "mℏ"):
		scale = 100_000
		s = strings.TrimSuffix(s, "mℏ")
	case strings.HasSuffix(s, "ℏ"):
		s = strings.TrimSuffix(s, "ℏ")
	}
	s = strings.TrimSpace(s)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Amount{}, newErr(ErrParse, "amount is not a valid decimal number: "+s, err)
	}
	return Amount{tinyunits: int64(math.Round(f * float64(scale)))}, nil
}
