package order

import "errors"

// ErrInvalidTransition is the sentinel wrapped by every *TransitionError.
var ErrInvalidTransition = errors.New("invalid status transition")

// Rejection names the rule that refused a status change.
type Rejection string

const (
	RejectedSameStatus     Rejection = "same_status"
	RejectedTerminalStatus Rejection = "terminal_status"
	RejectedNotAllowed     Rejection = "not_allowed"
)

// TransitionError is a status change refused by the StatusMachine.
// Message is the text shown to the dashboard user.
type TransitionError struct {
	Current   Status
	Requested Status
	Reason    Rejection
	Message   string
}

func newTransitionError(current, requested Status, reason Rejection, message string) *TransitionError {
	return &TransitionError{
		Current:   current,
		Requested: requested,
		Reason:    reason,
		Message:   message,
	}
}

func (e *TransitionError) Error() string {
	return e.Message
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}
