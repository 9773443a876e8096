// Package pricing holds the monetary rules of the order desk: bulk discount
// tiers, the tax rate and the shipping policy, together with the Totals
// breakdown the calculator produces from them.
//
// Rules is built once at startup and passed to services.TotalsCalculator. The
// same Rules value renders the legend shown next to an order summary, so the
// displayed rules cannot drift from the ones applied.
package pricing
