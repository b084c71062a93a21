package ports

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
)

// ShipmentRepository is the storage side of the shipment registry.
type ShipmentRepository interface {
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	Update(ctx context.Context, aggregate *shipment.Shipment) error

	Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)

	// GetForUpdate loads the shipment and holds its lock until the unit of work ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)

	// CountActiveByCarrier counts shipments of the carrier whose current status is active.
	CountActiveByCarrier(ctx context.Context, carrierID kernel.UUID) (int, error)

	// ListActiveByCarrier returns active shipments ordered by scheduled pickup.
	ListActiveByCarrier(ctx context.Context, carrierID kernel.UUID) ([]*shipment.Shipment, error)

	// GetOverdue returns in-transit shipments whose scheduled delivery is before now.
	GetOverdue(ctx context.Context, now time.Time) ([]*shipment.Shipment, error)
}
