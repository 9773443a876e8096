package pricing

import (
	"fmt"
	"slices"
	"strings"

	"orderdesk/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// LegendSection is one block of the rule legend.
type LegendSection struct {
	Title string
	Lines []string
}

// Legend renders the rules as the text shown beside an order summary.
func (r Rules) Legend() []LegendSection {
	tiers := slices.Clone(r.tiers)
	slices.Reverse(tiers)

	discountLines := make([]string, 0, len(tiers))
	for _, t := range tiers {
		discountLines = append(discountLines, fmt.Sprintf("%s discount when subtotal exceeds %s",
			percent(t.Rate), dollars(t.Threshold)))
	}
	if len(discountLines) == 0 {
		discountLines = append(discountLines, "No bulk discounts")
	}

	return []LegendSection{
		{Title: "Bulk Discounts", Lines: discountLines},
		{Title: "Tax", Lines: []string{
			fmt.Sprintf("%s calculated on the discounted subtotal", percent(r.taxRate)),
		}},
		{Title: "Shipping", Lines: []string{
			fmt.Sprintf("%s flat rate, FREE for orders over %s (after discount)",
				dollars(r.flatShipping), dollars(r.freeShippingOver)),
		}},
		{Title: "Final Total", Lines: []string{"Subtotal - Discount + Tax + Shipping"}},
	}
}

func percent(rate decimal.Decimal) string {
	return rate.Shift(2).String() + "%"
}

// dollars drops the cents part of whole-dollar amounts: "$1,000", "$12.50".
func dollars(c kernel.Cents) string {
	s := c.Grouped()
	if c%100 == 0 {
		s = strings.TrimSuffix(s, ".00")
	}
	return "$" + s
}
