// Package kernel provides the primitives shared by the order desk domain model.
//
// The package includes:
//   - Cents: an integer amount of money with rate multiplication and display formatting
//
// Money never travels as floating-point dollars. Every multiplication by a rate
// is rounded to a whole cent immediately, and conversion to a dollar string
// happens only at the presentation boundary.
package kernel
