package services

import (
	"errors"
	"fmt"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/pricing"
	"orderdesk/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// TotalsCalculator derives order totals from line items under a fixed set of
// pricing.Rules.
//
// Pipeline, each stage consuming the previous stage's rounded output:
//
//	subtotal -> discount rate -> discount -> subtotal after discount -> tax -> shipping -> final
//
// Every multiplication is rounded to a whole cent immediately, halves away
// from zero.
//
// Example usage:
//
//	calc, _ := services.NewTotalsCalculator(pricing.DefaultRules())
//	totals, err := calc.OrderTotals(lines)
//	if err != nil {
//	    // lines were empty or malformed
//	}
//	fmt.Println(totals.FinalTotal) // "273.99"
type TotalsCalculator struct {
	rules pricing.Rules
}

// NewTotalsCalculator creates a calculator bound to rules.
func NewTotalsCalculator(rules pricing.Rules) (TotalsCalculator, error) {
	if err := rules.Validate(); err != nil {
		return TotalsCalculator{}, err
	}
	return TotalsCalculator{rules: rules}, nil
}

// Rules returns the rules the calculator applies.
func (c TotalsCalculator) Rules() pricing.Rules {
	return c.rules
}

// Subtotal sums quantity*unitPrice over items. An empty list yields zero.
//
// Errors:
//   - errs.ErrValueIsInvalid when a line has a non-positive quantity or a negative price
func (c TotalsCalculator) Subtotal(items []pricing.LineItem) (kernel.Cents, error) {
	var subtotal kernel.Cents
	for i, item := range items {
		if item == nil {
			return 0, errs.NewValueIsRequiredError(fmt.Sprintf("item %d", i))
		}
		if item.Quantity() <= 0 {
			return 0, errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("item %d quantity", i),
				fmt.Errorf("%d is not greater than 0", item.Quantity()))
		}
		if err := item.UnitPrice().Validate(fmt.Sprintf("item %d unit price", i)); err != nil {
			return 0, err
		}
		subtotal += lineTotal(item)
	}
	return subtotal, nil
}

// BulkDiscountRate returns the rate of the highest tier whose threshold the
// subtotal strictly exceeds, or zero when none does.
func (c TotalsCalculator) BulkDiscountRate(subtotal kernel.Cents) decimal.Decimal {
	for _, tier := range c.rules.Tiers() {
		if subtotal > tier.Threshold {
			return tier.Rate
		}
	}
	return decimal.Zero
}

// BulkDiscount returns the discount amount for subtotal.
func (c TotalsCalculator) BulkDiscount(subtotal kernel.Cents) kernel.Cents {
	return subtotal.MulRate(c.BulkDiscountRate(subtotal))
}

// Tax returns the tax on a post-discount amount.
func (c TotalsCalculator) Tax(subtotalAfterDiscount kernel.Cents) kernel.Cents {
	return subtotalAfterDiscount.MulRate(c.rules.TaxRate())
}

// Shipping returns the flat fee, or zero when the post-discount subtotal
// strictly exceeds the free shipping threshold.
func (c TotalsCalculator) Shipping(subtotalAfterDiscount kernel.Cents) kernel.Cents {
	if subtotalAfterDiscount > c.rules.FreeShippingOver() {
		return 0
	}
	return c.rules.FlatShipping()
}

// OrderTotals runs the full pipeline.
//
// Errors:
//   - errs.ErrValueIsRequired when items is empty
//   - errs.ErrValueIsInvalid when a line is malformed
func (c TotalsCalculator) OrderTotals(items []pricing.LineItem) (pricing.Totals, error) {
	if len(items) == 0 {
		return pricing.Totals{}, errs.NewValueIsRequiredErrorWithCause("items",
			errors.New("order must have at least one item"))
	}

	subtotal, err := c.Subtotal(items)
	if err != nil {
		return pricing.Totals{}, err
	}

	rate := c.BulkDiscountRate(subtotal)
	discount := subtotal.MulRate(rate)
	afterDiscount := subtotal - discount
	tax := c.Tax(afterDiscount)
	shipping := c.Shipping(afterDiscount)

	return pricing.Totals{
		Subtotal:              subtotal,
		DiscountRate:          rate,
		DiscountAmount:        discount,
		SubtotalAfterDiscount: afterDiscount,
		TaxRate:               c.rules.TaxRate(),
		TaxAmount:             tax,
		ShippingCost:          shipping,
		FinalTotal:            afterDiscount + tax + shipping,
	}, nil
}

// LineItems adapts a typed slice to the calculator input.
func LineItems[T pricing.LineItem](items []T) []pricing.LineItem {
	out := make([]pricing.LineItem, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}

func lineTotal(item pricing.LineItem) kernel.Cents {
	return kernel.Cents(item.Quantity()) * item.UnitPrice()
}
