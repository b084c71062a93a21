package commands

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/core/domain/services"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"
)

type CreateShipmentCommandHandler struct {
	uowFactory UoWFactory
	tracker    services.CapacityTracker
	clock      ports.Clock
	publisher  ports.StatusEventPublisher
	metrics    ports.LifecycleMetrics
	log        *zap.Logger
}

func NewCreateShipmentCommandHandler(
	uowFactory UoWFactory,
	tracker services.CapacityTracker,
	clock ports.Clock,
	publisher ports.StatusEventPublisher,
	metrics ports.LifecycleMetrics,
	log *zap.Logger,
) CreateShipmentCommandHandler {
	return CreateShipmentCommandHandler{
		uowFactory: uowFactory,
		tracker:    tracker,
		clock:      clock,
		publisher:  publisher,
		metrics:    metrics,
		log:        log.With(zap.String("component", "create_shipment")),
	}
}

// Handle registers a shipment in pending status and appends its first event.
//
// The carrier row is locked for the whole unit of work, so two concurrent
// registrations against the same carrier cannot both pass the capacity check.
func (h *CreateShipmentCommandHandler) Handle(
	ctx context.Context,
	cmd CreateShipmentCommand,
) (*shipment.Shipment, *shipment.StatusEvent, error) {
	if err := cmd.Validate(); err != nil {
		return nil, nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	carrierRepo := uow.CarrierRepository()
	c, err := carrierRepo.GetForUpdate(ctx, cmd.Assignment().CarrierID)
	if err != nil {
		return nil, nil, err
	}

	if err = ensureAssignable(ctx, carrierRepo, c, cmd.Assignment()); err != nil {
		return nil, nil, err
	}

	shipmentRepo := uow.ShipmentRepository()
	active, err := shipmentRepo.CountActiveByCarrier(ctx, c.ID())
	if err != nil {
		return nil, nil, err
	}

	if err = h.tracker.AdmitTransition(c, active, shipment.Unknown, shipment.Pending); err != nil {
		if errors.Is(err, errs.ErrCapacityExceeded) {
			h.metrics.CapacityRejected()
		}
		return nil, nil, err
	}

	now := h.clock.Now()
	occurredAt := cmd.OccurredAt()
	if occurredAt.IsZero() {
		occurredAt = now
	}

	shp, _, first, err := shipment.Register(
		cmd.ShipmentID(),
		cmd.Origin(),
		cmd.Destination(),
		cmd.Assignment(),
		cmd.Schedule(),
		shipment.EventDraft{
			Status:     shipment.Pending,
			OccurredAt: occurredAt,
			Source:     cmd.Source(),
			Notes:      cmd.Notes(),
		},
		now,
	)
	if err != nil {
		return nil, nil, err
	}

	if err = shipmentRepo.Add(ctx, shp); err != nil {
		return nil, nil, err
	}

	if err = uow.StatusEventRepository().Append(ctx, first); err != nil {
		return nil, nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, nil, err
	}

	h.metrics.EventRecorded(first.Status().String())
	publishCommitted(ctx, h.publisher, h.log, shp.CarrierID(), uow.CommittedEvents())

	h.log.Info("shipment registered",
		zap.String("shipment_id", shp.ID().String()),
		zap.String("carrier_id", shp.CarrierID().String()),
		zap.Int("carrier_active", active+1),
	)

	return shp, first, nil
}
