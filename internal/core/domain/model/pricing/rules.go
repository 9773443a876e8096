package pricing

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrRulesAreNotConstructed is returned when Rules was not created via NewRules.
var ErrRulesAreNotConstructed = errors.New("Rules must be created via NewRules constructor")

// LineItem is the part of an order line the calculator needs.
type LineItem interface {
	Quantity() int
	UnitPrice() kernel.Cents
}

// DiscountTier grants Rate when the subtotal strictly exceeds Threshold.
type DiscountTier struct {
	Threshold kernel.Cents
	Rate      decimal.Decimal
}

// Rules is an immutable set of pricing constants.
type Rules struct {
	tiers            []DiscountTier
	taxRate          decimal.Decimal
	flatShipping     kernel.Cents
	freeShippingOver kernel.Cents

	isConstructed bool
}

// NewRules validates and creates a rule set. Tiers may be given in any order;
// they are stored highest threshold first. Rates must lie in [0, 1).
func NewRules(
	tiers []DiscountTier,
	taxRate decimal.Decimal,
	flatShipping kernel.Cents,
	freeShippingOver kernel.Cents,
) (Rules, error) {
	var validationErrs []error
	thresholds := make(map[kernel.Cents]struct{}, len(tiers))
	for i, t := range tiers {
		name := fmt.Sprintf("discount tier %d", i)
		validationErrs = append(validationErrs,
			t.Threshold.Validate(name+" threshold"),
			validateRate(name+" rate", t.Rate),
		)
		if _, dup := thresholds[t.Threshold]; dup {
			validationErrs = append(validationErrs, errs.NewValueIsInvalidErrorWithCause(name,
				fmt.Errorf("threshold %d cents is used twice", int64(t.Threshold))))
		}
		thresholds[t.Threshold] = struct{}{}
	}
	validationErrs = append(validationErrs,
		validateRate("tax rate", taxRate),
		flatShipping.Validate("flat shipping"),
		freeShippingOver.Validate("free shipping threshold"),
	)
	if err := errors.Join(validationErrs...); err != nil {
		return Rules{}, err
	}

	sorted := slices.Clone(tiers)
	slices.SortFunc(sorted, func(a, b DiscountTier) int {
		return cmp.Compare(b.Threshold, a.Threshold)
	})

	return Rules{
		tiers:            sorted,
		taxRate:          taxRate,
		flatShipping:     flatShipping,
		freeShippingOver: freeShippingOver,
		isConstructed:    true,
	}, nil
}

// DefaultRules returns the order desk pricing: 5/10/15% above $500/$1,000/$2,000,
// 13% tax and $10 shipping waived above $100 after discount.
func DefaultRules() Rules {
	r, err := NewRules(
		[]DiscountTier{
			{Threshold: 200000, Rate: decimal.RequireFromString("0.15")},
			{Threshold: 100000, Rate: decimal.RequireFromString("0.10")},
			{Threshold: 50000, Rate: decimal.RequireFromString("0.05")},
		},
		decimal.RequireFromString("0.13"),
		1000,
		10000,
	)
	if err != nil {
		panic(err)
	}
	return r
}

// Validate ensures the Rules instance was properly constructed.
func (r Rules) Validate() error {
	if !r.isConstructed {
		return ErrRulesAreNotConstructed
	}
	return nil
}

// Tiers returns the discount tiers, highest threshold first.
func (r Rules) Tiers() []DiscountTier          { return slices.Clone(r.tiers) }
func (r Rules) TaxRate() decimal.Decimal       { return r.taxRate }
func (r Rules) FlatShipping() kernel.Cents     { return r.flatShipping }
func (r Rules) FreeShippingOver() kernel.Cents { return r.freeShippingOver }

func validateRate(paramName string, rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return errs.NewValueIsOutOfRangeError(paramName, rate, 0, "1 (exclusive)")
	}
	return nil
}
