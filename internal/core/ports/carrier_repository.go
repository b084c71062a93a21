package ports

import (
	"context"

	"logistics/internal/core/domain/model/carrier"
	"logistics/internal/core/domain/model/kernel"
)

// CarrierRepository persists Carrier aggregates together with their drivers and vehicles.
type CarrierRepository interface {
	Add(ctx context.Context, aggregate *carrier.Carrier) error

	// Update saves name, capacity and any drivers or vehicles added since the carrier was loaded.
	Update(ctx context.Context, aggregate *carrier.Carrier) error

	Get(ctx context.Context, id kernel.UUID) (*carrier.Carrier, error)

	// GetForUpdate loads the carrier and holds its lock until the unit of work ends.
	// Capacity-affecting operations take this lock before any shipment lock.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*carrier.Carrier, error)

	GetAll(ctx context.Context) ([]*carrier.Carrier, error)

	ExistsByMCNumber(ctx context.Context, mcNumber string) (bool, error)

	ExistsByPlateNumber(ctx context.Context, plateNumber string) (bool, error)

	DriverExists(ctx context.Context, id kernel.UUID) (bool, error)

	VehicleExists(ctx context.Context, id kernel.UUID) (bool, error)
}
