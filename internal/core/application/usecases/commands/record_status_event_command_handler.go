package commands

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"logistics/internal/core/domain/model/carrier"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/core/domain/services"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"
)

type RecordStatusEventCommandHandler struct {
	uowFactory UoWFactory
	tracker    services.CapacityTracker
	clock      ports.Clock
	policy     shipment.OrderingPolicy
	publisher  ports.StatusEventPublisher
	metrics    ports.LifecycleMetrics
	log        *zap.Logger
}

func NewRecordStatusEventCommandHandler(
	uowFactory UoWFactory,
	tracker services.CapacityTracker,
	clock ports.Clock,
	policy shipment.OrderingPolicy,
	publisher ports.StatusEventPublisher,
	metrics ports.LifecycleMetrics,
	log *zap.Logger,
) RecordStatusEventCommandHandler {
	return RecordStatusEventCommandHandler{
		uowFactory: uowFactory,
		tracker:    tracker,
		clock:      clock,
		policy:     policy,
		publisher:  publisher,
		metrics:    metrics,
		log:        log.With(zap.String("component", "record_status_event")),
	}
}

// Handle appends one event to a shipment's log and, unless the event was
// accepted out of order, moves the shipment to the event's status.
//
// Locks are taken carrier first, then shipment. The carrier is locked only
// when the move needs a new capacity slot, which means leaving a terminal
// status. Terminal statuses are absorbing and Timeline.Append rejects such a
// move, so the lock and the capacity check in admit never admit anything
// today. They stay as a defensive check so that a future transition out of a
// terminal status still counts against the carrier's capacity.
func (h *RecordStatusEventCommandHandler) Handle(
	ctx context.Context,
	cmd RecordStatusEventCommand,
) (*shipment.StatusEvent, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipmentRepo := uow.ShipmentRepository()
	peek, err := shipmentRepo.Get(ctx, cmd.ShipmentID())
	if err != nil {
		return nil, err
	}

	var locked *carrier.Carrier
	if h.tracker.RequiresCheck(peek.Status(), cmd.Status()) {
		if locked, err = uow.CarrierRepository().GetForUpdate(ctx, peek.CarrierID()); err != nil {
			return nil, err
		}
	}

	shp, err := shipmentRepo.GetForUpdate(ctx, cmd.ShipmentID())
	if err != nil {
		return nil, err
	}

	eventRepo := uow.StatusEventRepository()
	stored, err := eventRepo.ListByShipment(ctx, shp.ID())
	if err != nil {
		return nil, err
	}
	if len(stored) == 0 {
		return nil, errs.NewInvariantViolationError(fmt.Sprintf("shipment %s has no status events", shp.ID()))
	}

	timeline, err := shipment.NewTimeline(shp.ID(), stored)
	if err != nil {
		return nil, err
	}

	now := h.clock.Now()
	occurredAt := cmd.OccurredAt()
	if occurredAt.IsZero() {
		occurredAt = now
	}

	event, err := timeline.Append(shipment.EventDraft{
		Status:     cmd.Status(),
		OccurredAt: occurredAt,
		Source:     cmd.Source(),
		Notes:      cmd.Notes(),
	}, h.policy, now)
	if err != nil {
		h.metrics.TransitionRejected(rejectionReason(err))
		return nil, err
	}

	if !event.OutOfOrder() {
		if err = h.admit(ctx, uow, locked, shp, event.Status()); err != nil {
			return nil, err
		}
		if err = shp.Apply(event); err != nil {
			return nil, err
		}
		if err = shipmentRepo.Update(ctx, shp); err != nil {
			return nil, err
		}
	}

	if err = eventRepo.Append(ctx, event); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.metrics.EventRecorded(event.Status().String())
	publishCommitted(ctx, h.publisher, h.log, shp.CarrierID(), uow.CommittedEvents())

	if event.OutOfOrder() {
		h.log.Info("out of order status event accepted",
			zap.String("shipment_id", shp.ID().String()),
			zap.String("status", event.Status().String()),
			zap.Time("occurred_at", event.OccurredAt()),
		)
	}

	return event, nil
}

// admit is the defensive capacity check described on Handle. It is
// unreachable while terminal statuses stay absorbing.
func (h *RecordStatusEventCommandHandler) admit(
	ctx context.Context,
	uow UoW,
	locked *carrier.Carrier,
	shp *shipment.Shipment,
	to shipment.Status,
) error {
	if !h.tracker.RequiresCheck(shp.Status(), to) {
		return nil
	}
	if locked == nil {
		return errs.NewInvariantViolationError(
			fmt.Sprintf("shipment %s left a terminal status while unlocked", shp.ID()))
	}

	active, err := uow.ShipmentRepository().CountActiveByCarrier(ctx, locked.ID())
	if err != nil {
		return err
	}

	if err = h.tracker.Admit(locked, active); err != nil {
		if errors.Is(err, errs.ErrCapacityExceeded) {
			h.metrics.CapacityRejected()
		}
		return err
	}
	return nil
}
