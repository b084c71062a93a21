package services

import (
	"logistics/internal/core/domain/model/carrier"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/pkg/errs"
)

// CapacityTracker enforces the per-carrier limit on active shipments.
//
// A shipment counts against its carrier while its status is pending,
// in_transit or delayed. Only a move from a non-active status into an
// active one consumes a slot; registration is such a move.
type CapacityTracker struct{}

func NewCapacityTracker() CapacityTracker {
	return CapacityTracker{}
}

// RequiresCheck reports whether moving from one status to another takes a new slot.
// Carrier-preserving moves such as in_transit -> delayed do not.
func (CapacityTracker) RequiresCheck(from, to shipment.Status) bool {
	return !from.IsActive() && to.IsActive()
}

// HasCapacity is true when active is below the carrier's maximum.
func (CapacityTracker) HasCapacity(c *carrier.Carrier, active int) bool {
	return active < c.MaxCapacity()
}

// Admit returns CapacityExceededError when the carrier, currently holding
// active shipments, cannot take one more.
func (t CapacityTracker) Admit(c *carrier.Carrier, active int) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if active < 0 {
		return errs.NewValueIsOutOfRangeError("active count", active, 0, "unbounded")
	}
	if !t.HasCapacity(c, active) {
		return errs.NewCapacityExceededError(c.ID().String(), active, c.MaxCapacity())
	}
	return nil
}

// AdmitTransition applies Admit only when the transition needs a new slot.
func (t CapacityTracker) AdmitTransition(c *carrier.Carrier, active int, from, to shipment.Status) error {
	if !t.RequiresCheck(from, to) {
		return nil
	}
	return t.Admit(c, active)
}
