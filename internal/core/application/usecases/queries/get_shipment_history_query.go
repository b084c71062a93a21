package queries

import (
	"errors"
	"iter"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/pkg/guard"
)

var ErrGetShipmentHistoryQueryIsNotConstructed = errors.New(
	"GetShipmentHistoryQuery must be created via NewGetShipmentHistoryQuery constructor",
)

type GetShipmentHistoryQuery struct {
	shipmentID kernel.UUID
	guard      guard.ConstructorGuard
}

func NewGetShipmentHistoryQuery(shipmentID kernel.UUID) (GetShipmentHistoryQuery, error) {
	if err := shipmentID.Validate(); err != nil {
		return GetShipmentHistoryQuery{}, err
	}
	return GetShipmentHistoryQuery{shipmentID: shipmentID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetShipmentHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentHistoryQueryIsNotConstructed)
}

func (q GetShipmentHistoryQuery) ShipmentID() kernel.UUID {
	return q.shipmentID
}

// GetShipmentHistoryQueryResponse carries the event log ordered by event
// timestamp. Events can be ranged over any number of times.
type GetShipmentHistoryQueryResponse struct {
	ShipmentID kernel.UUID
	Events     iter.Seq[*shipment.StatusEvent]
	Count      int
}
