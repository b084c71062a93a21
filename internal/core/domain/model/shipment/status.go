package shipment

import (
	"fmt"
	"strings"

	"logistics/internal/pkg/errs"
)

// Status represents the lifecycle state of a shipment.
// It is a closed set; the zero value Unknown is only used before the
// initial pending event is applied and is never persisted.
type Status int

const (
	// Unknown is the zero value and is not a valid stored status.
	Unknown Status = iota

	// Pending is the initial status of every registered shipment.
	Pending

	// InTransit means the shipment has been picked up.
	InTransit

	// Delivered is terminal.
	Delivered

	// Delayed means the shipment is still moving but behind schedule.
	Delayed

	// Cancelled is terminal.
	Cancelled
)

// transitions is the complete table of legal successors.
// Unknown -> Pending is the registration step.
var transitions = map[Status][]Status{
	Unknown:   {Pending},
	Pending:   {InTransit, Cancelled},
	InTransit: {Delivered, Delayed, Cancelled},
	Delayed:   {InTransit, Delivered, Cancelled},
	Delivered: nil,
	Cancelled: nil,
}

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		InTransit: "in_transit",
		Delivered: "delivered",
		Delayed:   "delayed",
		Cancelled: "cancelled",
	}
}

// Statuses returns every valid status in declaration order.
func Statuses() []Status {
	return []Status{Pending, InTransit, Delivered, Delayed, Cancelled}
}

// ParseStatus converts a wire name such as "in_transit" into a Status.
// Matching is case-insensitive; "unknown" is rejected.
func ParseStatus(s string) (Status, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, status := range Statuses() {
		if status.String() == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) Validate() error {
	if s < Pending || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsActive reports whether a shipment in this status counts against its carrier's capacity.
func (s Status) IsActive() bool {
	return s == Pending || s == InTransit || s == Delayed
}

// IsTerminal reports whether the status accepts no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Transition returns next when it is a legal successor of s and an
// InvalidTransitionError otherwise.
func (s Status) Transition(next Status) (Status, error) {
	if !s.CanTransitionTo(next) {
		return s, errs.NewInvalidTransitionError(s.String(), next.String())
	}
	return next, nil
}
