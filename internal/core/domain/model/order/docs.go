// Package order provides the Order aggregate and its status lifecycle.
//
// The package includes:
//   - Status: the five lifecycle values with display Metadata
//   - StatusMachine: the fixed transition table and the queries over it
//   - TransitionError: a status change refused by the machine
//   - Order: the aggregate root holding customer, items and status history
//   - Item, Customer, StatusChange: value objects owned by Order
//
// Key business rules:
//   - pending -> processing -> shipped -> delivered is the happy path
//   - every non-cancelled status can be cancelled; cancelled is terminal
//   - a change to the current status is always rejected
//   - an unknown status is invalid input, never treated as a rejected transition
package order
