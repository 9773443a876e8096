package order

import (
	"fmt"
	"slices"
	"strings"

	"orderdesk/internal/pkg/errs"
)

// StatusMachine answers which status changes are legal. It is built once from
// a fixed adjacency table and never mutated afterwards, so a single instance
// can be shared by any number of goroutines.
type StatusMachine struct {
	order       []Status
	transitions map[Status][]Status
	flow        []Status
	metadata    map[Status]Metadata
}

// Transition is one row of the adjacency table.
type Transition struct {
	From Status
	To   []Status
}

// NewStatusMachine builds a machine from an adjacency table, the linear
// happy-path flow and the per-status metadata. Every known status must have a
// table row and metadata; every referenced status must be known.
func NewStatusMachine(table []Transition, flow []Status, metadata map[Status]Metadata) (*StatusMachine, error) {
	m := &StatusMachine{
		order:       make([]Status, 0, len(table)),
		transitions: make(map[Status][]Status, len(table)),
		flow:        slices.Clone(flow),
		metadata:    make(map[Status]Metadata, len(metadata)),
	}

	for _, row := range table {
		if err := row.From.Validate(); err != nil {
			return nil, err
		}
		if _, dup := m.transitions[row.From]; dup {
			return nil, errs.NewValueIsInvalidErrorWithCause("transition table",
				fmt.Errorf("duplicate row for %s", row.From))
		}
		for _, to := range row.To {
			if err := to.Validate(); err != nil {
				return nil, err
			}
		}
		m.order = append(m.order, row.From)
		m.transitions[row.From] = slices.Clone(row.To)
	}

	for s := range getValidStatuses() {
		if _, ok := m.transitions[s]; !ok {
			return nil, errs.NewValueIsRequiredErrorWithCause("transition table",
				fmt.Errorf("no row for %s", s))
		}
		md, ok := metadata[s]
		if !ok {
			return nil, errs.NewValueIsRequiredErrorWithCause("status metadata",
				fmt.Errorf("no metadata for %s", s))
		}
		m.metadata[s] = md
	}

	for _, s := range m.flow {
		if err := s.Validate(); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// DefaultStatusMachine returns the machine for the order desk lifecycle.
func DefaultStatusMachine() *StatusMachine {
	m, err := NewStatusMachine(
		[]Transition{
			{From: Pending, To: []Status{Processing, Cancelled}},
			{From: Processing, To: []Status{Shipped, Cancelled}},
			{From: Shipped, To: []Status{Delivered, Cancelled}},
			// returns and refunds
			{From: Delivered, To: []Status{Cancelled}},
			{From: Cancelled, To: []Status{}},
		},
		[]Status{Pending, Processing, Shipped, Delivered},
		map[Status]Metadata{
			Pending:    {Label: "Pending", Color: ColorWarning, Description: "Order received, awaiting processing"},
			Processing: {Label: "Processing", Color: ColorInfo, Description: "Order is being prepared"},
			Shipped:    {Label: "Shipped", Color: ColorInfo, Description: "Order has been shipped"},
			Delivered:  {Label: "Delivered", Color: ColorSuccess, Description: "Order has been delivered"},
			Cancelled:  {Label: "Cancelled", Color: ColorDanger, Description: "Order has been cancelled"},
		},
	)
	if err != nil {
		panic(err)
	}
	return m
}

// Statuses returns every status in table order.
func (m *StatusMachine) Statuses() []Status {
	return slices.Clone(m.order)
}

// Metadata returns the display attributes of a status.
func (m *StatusMachine) Metadata(s Status) (Metadata, error) {
	if err := s.Validate(); err != nil {
		return Metadata{}, err
	}
	return m.metadata[s], nil
}

// AllowedTransitions returns the statuses reachable from current in one step.
// The result is a fresh slice; it is empty for a terminal status.
func (m *StatusMachine) AllowedTransitions(current Status) ([]Status, error) {
	if err := current.Validate(); err != nil {
		return nil, err
	}
	return slices.Clone(m.transitions[current]), nil
}

// IsTerminal reports whether no transition leaves s.
func (m *StatusMachine) IsTerminal(s Status) (bool, error) {
	if err := s.Validate(); err != nil {
		return false, err
	}
	return len(m.transitions[s]) == 0, nil
}

// CanBeCancelled reports whether s has an edge to Cancelled.
func (m *StatusMachine) CanBeCancelled(s Status) (bool, error) {
	if err := s.Validate(); err != nil {
		return false, err
	}
	return slices.Contains(m.transitions[s], Cancelled), nil
}

// IsValidTransition is the boolean form of ValidateTransition. Unknown
// statuses and self-transitions are reported as false.
func (m *StatusMachine) IsValidTransition(current, next Status) bool {
	return m.ValidateTransition(current, next) == nil
}

// ValidateTransition checks current -> next. The checks run in a fixed order
// and the first failure wins:
//
//  1. either status unknown: invalid input (errs.ErrValueIsInvalid)
//  2. current == next: RejectedSameStatus
//  3. current is terminal: RejectedTerminalStatus
//  4. next not in the adjacency set of current: RejectedNotAllowed
//
// Rejections 2–4 are returned as *TransitionError.
func (m *StatusMachine) ValidateTransition(current, next Status) error {
	if err := current.Validate(); err != nil {
		return err
	}
	if err := next.Validate(); err != nil {
		return err
	}

	if current == next {
		return newTransitionError(current, next, RejectedSameStatus, "Order is already in this status")
	}

	allowed := m.transitions[current]
	if len(allowed) == 0 {
		return newTransitionError(current, next, RejectedTerminalStatus,
			fmt.Sprintf("Cannot change status of a %s order", current))
	}

	if !slices.Contains(allowed, next) {
		labels := make([]string, 0, len(allowed))
		for _, s := range allowed {
			labels = append(labels, m.metadata[s].Label)
		}
		return newTransitionError(current, next, RejectedNotAllowed,
			fmt.Sprintf("Cannot transition from %s to %s. Allowed: %s",
				m.metadata[current].Label, m.metadata[next].Label, strings.Join(labels, ", ")))
	}

	return nil
}

// NextStatus returns the status after current on the happy path.
// ok is false at the end of the flow and for statuses outside of it.
func (m *StatusMachine) NextStatus(current Status) (next Status, ok bool) {
	i := slices.Index(m.flow, current)
	if i == -1 || i == len(m.flow)-1 {
		return "", false
	}
	return m.flow[i+1], true
}

// PreviousStatus returns the status before current on the happy path.
// ok is false at the start of the flow and for statuses outside of it.
func (m *StatusMachine) PreviousStatus(current Status) (previous Status, ok bool) {
	i := slices.Index(m.flow, current)
	if i <= 0 {
		return "", false
	}
	return m.flow[i-1], true
}

// StatusPath returns the statuses an order passes through to reach target:
// [cancelled] for Cancelled, the happy-path prefix ending at target otherwise,
// and an empty slice when target is not on the path.
func (m *StatusMachine) StatusPath(target Status) []Status {
	if target == Cancelled {
		return []Status{Cancelled}
	}

	i := slices.Index(m.flow, target)
	if i == -1 {
		return []Status{}
	}
	return slices.Clone(m.flow[:i+1])
}
