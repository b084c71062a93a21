package commands

import (
	"errors"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/pkg/guard"
)

var ErrCreateShipmentCommandIsNotConstructed = errors.New(
	"CreateShipmentCommand must be created via NewCreateShipmentCommand constructor",
)

type CreateShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID  kernel.UUID
	origin      kernel.Location
	destination kernel.Location
	assignment  shipment.Assignment
	schedule    shipment.Schedule

	occurredAt time.Time
	source     string
	notes      string

	guard guard.ConstructorGuard
}

// NewCreateShipmentCommand validates identifiers, locations and the schedule.
// The initial pending event defaults to the current time and source "system";
// use WithInitialEvent to override.
func NewCreateShipmentCommand(
	shipmentID kernel.UUID,
	origin kernel.Location,
	destination kernel.Location,
	assignment shipment.Assignment,
	scheduledPickup time.Time,
	scheduledDelivery time.Time,
) (CreateShipmentCommand, error) {
	cmd := CreateShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	schedule, scheduleErr := shipment.NewSchedule(scheduledPickup, scheduledDelivery)

	if err := errors.Join(
		shipmentID.Validate(),
		origin.Validate(),
		destination.Validate(),
		assignment.Validate(),
		scheduleErr,
	); err != nil {
		return CreateShipmentCommand{}, err
	}

	cmd.shipmentID = shipmentID
	cmd.origin = origin
	cmd.destination = destination
	cmd.assignment = assignment
	cmd.schedule = schedule

	return cmd, nil
}

// WithInitialEvent returns a copy carrying the timestamp, source and notes of
// the initial pending event. A zero occurredAt means "now".
func (c CreateShipmentCommand) WithInitialEvent(occurredAt time.Time, source, notes string) CreateShipmentCommand {
	c.occurredAt = occurredAt
	c.source = source
	c.notes = notes
	return c
}

func (c CreateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateShipmentCommandIsNotConstructed)
}

func (c CreateShipmentCommand) ShipmentID() kernel.UUID         { return c.shipmentID }
func (c CreateShipmentCommand) Origin() kernel.Location         { return c.origin }
func (c CreateShipmentCommand) Destination() kernel.Location    { return c.destination }
func (c CreateShipmentCommand) Assignment() shipment.Assignment { return c.assignment }
func (c CreateShipmentCommand) Schedule() shipment.Schedule     { return c.schedule }
func (c CreateShipmentCommand) OccurredAt() time.Time           { return c.occurredAt }
func (c CreateShipmentCommand) Source() string                  { return c.source }
func (c CreateShipmentCommand) Notes() string                   { return c.notes }
