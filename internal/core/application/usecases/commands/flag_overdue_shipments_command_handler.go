package commands

import (
	"context"

	"go.uber.org/zap"

	"logistics/internal/core/domain/model/shipment"
)

// OverdueNote is stored on events raised by the overdue scan.
const OverdueNote = "scheduled delivery passed"

type StatusEventRecorder interface {
	Handle(ctx context.Context, cmd RecordStatusEventCommand) (*shipment.StatusEvent, error)
}

type FlagOverdueShipmentsCommandHandler struct {
	uowFactory UoWFactory
	recorder   StatusEventRecorder
	log        *zap.Logger
}

func NewFlagOverdueShipmentsCommandHandler(
	uowFactory UoWFactory,
	recorder StatusEventRecorder,
	log *zap.Logger,
) FlagOverdueShipmentsCommandHandler {
	return FlagOverdueShipmentsCommandHandler{
		uowFactory: uowFactory,
		recorder:   recorder,
		log:        log.With(zap.String("component", "flag_overdue_shipments")),
	}
}

// Handle records a delayed event for every overdue shipment, each in its own
// unit of work. A failure on one shipment is logged and the scan continues.
// It returns the number of shipments flagged.
func (h *FlagOverdueShipmentsCommandHandler) Handle(ctx context.Context, cmd FlagOverdueShipmentsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	overdue, err := h.uowFactory.Create().ShipmentRepository().GetOverdue(ctx, cmd.Now())
	if err != nil {
		return 0, err
	}

	flagged := 0
	for _, shp := range overdue {
		if ctx.Err() != nil {
			return flagged, ctx.Err()
		}

		record, err := NewRecordStatusEventCommand(shp.ID(), shipment.Delayed, cmd.Now(), shipment.SourceSystem, OverdueNote)
		if err != nil {
			return flagged, err
		}

		if _, err = h.recorder.Handle(ctx, record); err != nil {
			h.log.Warn("failed to flag overdue shipment",
				zap.String("shipment_id", shp.ID().String()),
				zap.Error(err),
			)
			continue
		}
		flagged++
	}

	return flagged, nil
}
