package ports

import (
	"context"

	"logistics/internal/core/domain/model/shipment"
)

type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork groups repository calls into one atomic change. Repositories
// obtained before Begin or after Commit/Rollback read committed state only.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	Commit(ctx context.Context) error

	Rollback(ctx context.Context) error

	CarrierRepository() CarrierRepository

	ShipmentRepository() ShipmentRepository

	StatusEventRepository() StatusEventRepository

	// CommittedEvents returns the status events appended through this unit of
	// work once Commit has succeeded, and nil before that.
	CommittedEvents() []*shipment.StatusEvent
}
