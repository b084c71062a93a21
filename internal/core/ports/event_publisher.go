package ports

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
)

// StatusEventPublisher announces committed status events to other services.
type StatusEventPublisher interface {
	Publish(ctx context.Context, carrierID kernel.UUID, event *shipment.StatusEvent) error
}
