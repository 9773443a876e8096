package order

import (
	"net/mail"
	"strings"

	"orderdesk/internal/pkg/errs"
)

// Customer is the buyer snapshot stored with an order.
type Customer struct {
	id    string
	name  string
	email string
}

// NewCustomer validates and creates a customer snapshot.
func NewCustomer(id, name, email string) (Customer, error) {
	if strings.TrimSpace(id) == "" {
		return Customer{}, errs.NewValueIsRequiredError("customer id")
	}
	if strings.TrimSpace(name) == "" {
		return Customer{}, errs.NewValueIsRequiredError("customer name")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return Customer{}, errs.NewValueIsInvalidErrorWithCause("customer email", err)
	}

	return Customer{id: id, name: name, email: email}, nil
}

func (c Customer) ID() string    { return c.id }
func (c Customer) Name() string  { return c.name }
func (c Customer) Email() string { return c.email }
