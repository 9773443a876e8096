package pricing

import (
	"orderdesk/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// Totals is the full money breakdown of an order. It is recomputed on every
// call and never stored.
//
// FinalTotal == SubtotalAfterDiscount + TaxAmount + ShippingCost.
type Totals struct {
	Subtotal              kernel.Cents
	DiscountRate          decimal.Decimal
	DiscountAmount        kernel.Cents
	SubtotalAfterDiscount kernel.Cents
	TaxRate               decimal.Decimal
	TaxAmount             kernel.Cents
	ShippingCost          kernel.Cents
	FinalTotal            kernel.Cents
}

// FreeShipping reports whether the shipping fee was waived.
func (t Totals) FreeShipping() bool {
	return t.ShippingCost == 0
}
