// Package services provides stateless domain services of the order desk.
//
// The package includes:
//   - TotalsCalculator: derives the money breakdown of an order from its lines
//   - MetricsCalculator: aggregates dashboard figures over a set of orders
//
// Both services hold only read-only configuration and are safe for concurrent use.
package services
