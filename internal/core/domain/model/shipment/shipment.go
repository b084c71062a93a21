package shipment

import (
	"errors"
	"fmt"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var (
	// ErrShipmentIsNotConstructed is returned when using an improperly initialized Shipment.
	ErrShipmentIsNotConstructed = errs.NewValueIsRequiredError("shipment must be created via Register or RestoreShipment")
	// ErrSameOriginAndDestination is returned when a shipment starts and ends at the same place.
	ErrSameOriginAndDestination = errs.NewValueIsInvalidErrorWithCause("destination",
		errors.New("origin and destination must be different"))
)

// Assignment names the carrier responsible for a shipment and the driver and
// vehicle it put on it. Ownership of driver and vehicle is checked by the
// carrier aggregate, not here.
type Assignment struct {
	CarrierID kernel.UUID
	DriverID  kernel.UUID
	VehicleID kernel.UUID
}

func (a Assignment) Validate() error {
	return errors.Join(
		wrapID("carrier id", a.CarrierID),
		wrapID("driver id", a.DriverID),
		wrapID("vehicle id", a.VehicleID),
	)
}

func wrapID(param string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(param, err)
	}
	return nil
}

// Shipment is the aggregate root of the shipment registry.
//
// Its status is a projection of its Timeline: it changes only through Apply,
// which accepts events produced by Timeline.Append. A shipment is never
// deleted; it ends in a terminal status.
//
// Business rules:
//   - origin and destination are valid and different
//   - the schedule delivery is not before its pickup
//   - ActualPickup is stamped by the first in_transit event
//   - ActualDelivery is stamped by the delivered event
//
// Example:
//
//	shp, events, first, err := shipment.Register(
//	    kernel.NewUUID(), origin, destination,
//	    shipment.Assignment{CarrierID: c, DriverID: d, VehicleID: v},
//	    schedule, shipment.EventDraft{OccurredAt: now}, now,
//	)
type Shipment struct {
	id             kernel.UUID
	origin         kernel.Location
	destination    kernel.Location
	assignment     Assignment
	schedule       Schedule
	actualPickup   *time.Time
	actualDelivery *time.Time
	status         Status
	lastEventAt    time.Time
	guard          guard.ConstructorGuard
}

// Register creates a shipment together with its event log and initial
// pending event. draft.Status may be left Unknown; anything other than
// Pending fails with InvalidTransitionError.
func Register(
	id kernel.UUID,
	origin kernel.Location,
	destination kernel.Location,
	assignment Assignment,
	schedule Schedule,
	draft EventDraft,
	recordedAt time.Time,
) (*Shipment, *Timeline, *StatusEvent, error) {
	s := &Shipment{
		status: Unknown,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setRoute(origin, destination),
		s.setAssignment(assignment),
		s.setSchedule(schedule),
	); err != nil {
		return nil, nil, nil, err
	}

	if draft.Status == Unknown {
		draft.Status = Pending
	}

	timeline, err := NewTimeline(s.id, nil)
	if err != nil {
		return nil, nil, nil, err
	}
	first, err := timeline.Append(draft, RejectOutOfOrder, recordedAt)
	if err != nil {
		return nil, nil, nil, err
	}
	if err = s.Apply(first); err != nil {
		return nil, nil, nil, err
	}

	return s, timeline, first, nil
}

// RestoreShipment rebuilds a shipment from storage.
func RestoreShipment(
	id kernel.UUID,
	origin kernel.Location,
	destination kernel.Location,
	assignment Assignment,
	schedule Schedule,
	status Status,
	actualPickup *time.Time,
	actualDelivery *time.Time,
	lastEventAt time.Time,
) (*Shipment, error) {
	s := &Shipment{
		guard:       guard.NewConstructorGuard(),
		lastEventAt: normalizeTime(lastEventAt),
	}

	if err := errors.Join(
		s.setID(id),
		s.setRoute(origin, destination),
		s.setAssignment(assignment),
		s.setSchedule(schedule),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	s.status = status
	s.actualPickup = copyTime(actualPickup)
	s.actualDelivery = copyTime(actualDelivery)

	return s, nil
}

func (s *Shipment) Validate() error {
	if s == nil {
		return ErrShipmentIsNotConstructed
	}
	return s.guard.Validate(ErrShipmentIsNotConstructed)
}

func (s *Shipment) IsEqual(other *Shipment) bool {
	return other != nil && s.id.IsEqual(other.id)
}

func (s *Shipment) ID() kernel.UUID              { return s.id }
func (s *Shipment) Origin() kernel.Location      { return s.origin }
func (s *Shipment) Destination() kernel.Location { return s.destination }
func (s *Shipment) Assignment() Assignment       { return s.assignment }
func (s *Shipment) CarrierID() kernel.UUID       { return s.assignment.CarrierID }
func (s *Shipment) Schedule() Schedule           { return s.schedule }
func (s *Shipment) Status() Status               { return s.status }

// LastEventAt is the event timestamp of the event that set the current status.
func (s *Shipment) LastEventAt() time.Time { return s.lastEventAt }

func (s *Shipment) ActualPickup() *time.Time   { return copyTime(s.actualPickup) }
func (s *Shipment) ActualDelivery() *time.Time { return copyTime(s.actualDelivery) }

// Apply projects an appended event onto the shipment. Events flagged out of
// order are part of history only and leave the shipment untouched.
func (s *Shipment) Apply(e *StatusEvent) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if !e.ShipmentID().IsEqual(s.id) {
		return errs.NewInvariantViolationError(
			fmt.Sprintf("event %s belongs to shipment %s, not %s", e.ID(), e.ShipmentID(), s.id))
	}
	if e.OutOfOrder() {
		return nil
	}

	next, err := s.status.Transition(e.Status())
	if err != nil {
		return err
	}

	s.status = next
	s.lastEventAt = e.OccurredAt()

	switch next {
	case InTransit:
		if s.actualPickup == nil {
			at := e.OccurredAt()
			s.actualPickup = &at
		}
	case Delivered:
		at := e.OccurredAt()
		s.actualDelivery = &at
	}

	return nil
}

// IsOverdue reports whether the shipment is in transit past its scheduled delivery.
func (s *Shipment) IsOverdue(now time.Time) bool {
	return s.status == InTransit && now.After(s.schedule.Delivery())
}

func (s *Shipment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Shipment) setRoute(origin, destination kernel.Location) error {
	if err := errors.Join(origin.Validate(), destination.Validate()); err != nil {
		return err
	}
	if origin.IsEqual(destination) {
		return ErrSameOriginAndDestination
	}
	s.origin = origin
	s.destination = destination
	return nil
}

func (s *Shipment) setAssignment(a Assignment) error {
	if err := a.Validate(); err != nil {
		return err
	}
	s.assignment = a
	return nil
}

func (s *Shipment) setSchedule(schedule Schedule) error {
	if err := schedule.Validate(); err != nil {
		return err
	}
	s.schedule = schedule
	return nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
