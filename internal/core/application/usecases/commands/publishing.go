package commands

import (
	"context"

	"go.uber.org/zap"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/core/ports"
)

// publishCommitted is best effort: the state is already committed, so a
// broker failure is logged and swallowed.
func publishCommitted(
	ctx context.Context,
	publisher ports.StatusEventPublisher,
	log *zap.Logger,
	carrierID kernel.UUID,
	events []*shipment.StatusEvent,
) {
	for _, e := range events {
		if err := publisher.Publish(ctx, carrierID, e); err != nil {
			log.Warn("failed to publish status event",
				zap.String("shipment_id", e.ShipmentID().String()),
				zap.String("event_id", e.ID().String()),
				zap.String("status", e.Status().String()),
				zap.Error(err),
			)
		}
	}
}
