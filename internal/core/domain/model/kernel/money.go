package kernel

import (
	"fmt"
	"strings"

	"orderdesk/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Cents is a monetary amount in integer cents. Amounts are converted to
// decimal dollars only for display.
type Cents int64

// Validate rejects negative amounts. paramName is reported in the error.
func (c Cents) Validate(paramName string) error {
	if c < 0 {
		return errs.NewValueIsInvalidErrorWithCause(paramName, fmt.Errorf("%d cents is negative", int64(c)))
	}
	return nil
}

// MulRate returns c*rate rounded to the nearest cent, halves away from zero.
// On non-negative amounts this matches Math.round.
func (c Cents) MulRate(rate decimal.Decimal) Cents {
	return Cents(decimal.NewFromInt(int64(c)).Mul(rate).Round(0).IntPart())
}

// Decimal returns the amount in dollars.
func (c Cents) Decimal() decimal.Decimal {
	return decimal.New(int64(c), -2)
}

// String formats the amount as dollars with two decimals, e.g. "273.99".
func (c Cents) String() string {
	return c.Decimal().StringFixed(2)
}

// Grouped formats the amount with a thousands separator, e.g. "1,234.56".
func (c Cents) Grouped() string {
	s := c.String()
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String() + "." + frac
}
