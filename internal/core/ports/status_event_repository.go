package ports

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
)

// StatusEventRepository is the append-only storage of the event log.
// There is no update or delete.
type StatusEventRepository interface {
	Append(ctx context.Context, event *shipment.StatusEvent) error

	// ListByShipment returns events ordered by event timestamp, then sequence.
	ListByShipment(ctx context.Context, shipmentID kernel.UUID) ([]*shipment.StatusEvent, error)
}
