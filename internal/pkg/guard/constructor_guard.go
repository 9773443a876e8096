// Package guard detects values that bypassed their constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is given.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded into commands and queries whose constructors
// validate input. The zero value reports "not constructed", so a struct literal
// that skipped the constructor is rejected by the handler.
//
// Example:
//
//	var ErrListOrdersQueryIsNotConstructed = errors.New("ListOrdersQuery must be created via NewListOrdersQuery")
//
//	func (q ListOrdersQuery) Validate() error {
//	    return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a constructed guard and validationError otherwise.
// A nil validationError falls back to ErrDefaultConstructorGuard.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
