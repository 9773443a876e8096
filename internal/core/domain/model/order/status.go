package order

import (
	"fmt"

	"orderdesk/internal/pkg/errs"
)

// Status represents the lifecycle state of an order. The wire and storage
// representation is the lowercase name.
//
// State transitions (see DefaultStatusMachine):
//
//	pending ──> processing ──> shipped ──> delivered
//	   │             │            │            │
//	   └─────────────┴────────────┴────────────┴──> cancelled
//
// cancelled is terminal.
type Status string

const (
	// Pending is the initial status. The order is awaiting processing.
	Pending Status = "pending"

	// Processing means the order is being prepared.
	Processing Status = "processing"

	// Shipped means the order has left the warehouse.
	Shipped Status = "shipped"

	// Delivered means the order reached the customer. It can still be
	// cancelled for returns and refunds.
	Delivered Status = "delivered"

	// Cancelled is the terminal status.
	Cancelled Status = "cancelled"
)

// Color is the severity tag the dashboard uses when rendering a status.
type Color string

const (
	ColorSuccess Color = "success"
	ColorWarning Color = "warning"
	ColorInfo    Color = "info"
	ColorDanger  Color = "danger"
)

// Metadata holds the display attributes of a status. It never affects
// transition legality.
type Metadata struct {
	Label       string
	Color       Color
	Description string
}

func getValidStatuses() map[Status]struct{} {
	return map[Status]struct{}{
		Pending:    {},
		Processing: {},
		Shipped:    {},
		Delivered:  {},
		Cancelled:  {},
	}
}

// ParseStatus converts a raw value into a Status.
// Anything other than the five known names is rejected.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if err := s.Validate(); err != nil {
		return "", err
	}
	return s, nil
}

// Validate checks that the status is one of the five known values.
func (s Status) Validate() error {
	if _, ok := getValidStatuses()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", string(s)))
	}
	return nil
}

// String implements fmt.Stringer.
func (s Status) String() string {
	return string(s)
}
