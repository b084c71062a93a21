// Package guard provides ConstructorGuard, a marker embedded in value objects,
// entities and commands so that zero values created with a struct literal can be
// told apart from instances built by their constructors.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is set by constructors and left zero everywhere else.
//
// Example:
//
//	type Schedule struct {
//	    pickup   time.Time
//	    delivery time.Time
//	    guard    guard.ConstructorGuard
//	}
//
//	func (s Schedule) Validate() error {
//	    return s.guard.Validate(ErrScheduleIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marking its owner as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when nil)
// if the owner was not built through its constructor.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
