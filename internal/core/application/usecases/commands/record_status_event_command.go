package commands

import (
	"errors"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/pkg/guard"
)

var ErrRecordStatusEventCommandIsNotConstructed = errors.New(
	"RecordStatusEventCommand must be created via NewRecordStatusEventCommand constructor",
)

type RecordStatusEventCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID
	status     shipment.Status
	occurredAt time.Time
	source     string
	notes      string

	guard guard.ConstructorGuard
}

// NewRecordStatusEventCommand builds a request to append an event.
// A zero occurredAt is replaced by the clock when the command is handled.
func NewRecordStatusEventCommand(
	shipmentID kernel.UUID,
	status shipment.Status,
	occurredAt time.Time,
	source string,
	notes string,
) (RecordStatusEventCommand, error) {
	if err := errors.Join(shipmentID.Validate(), status.Validate()); err != nil {
		return RecordStatusEventCommand{}, err
	}

	return RecordStatusEventCommand{
		shipmentID: shipmentID,
		status:     status,
		occurredAt: occurredAt,
		source:     source,
		notes:      notes,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c RecordStatusEventCommand) Validate() error {
	return c.guard.Validate(ErrRecordStatusEventCommandIsNotConstructed)
}

func (c RecordStatusEventCommand) ShipmentID() kernel.UUID { return c.shipmentID }
func (c RecordStatusEventCommand) Status() shipment.Status { return c.status }
func (c RecordStatusEventCommand) OccurredAt() time.Time   { return c.occurredAt }
func (c RecordStatusEventCommand) Source() string          { return c.source }
func (c RecordStatusEventCommand) Notes() string           { return c.notes }
