package queries

import (
	"context"
	"fmt"

	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/pkg/errs"
)

type GetShipmentHistoryQueryHandler struct {
	uowFactory ReadUoWFactory
}

func NewGetShipmentHistoryQueryHandler(uowFactory ReadUoWFactory) GetShipmentHistoryQueryHandler {
	return GetShipmentHistoryQueryHandler{uowFactory: uowFactory}
}

// Handle fails with ObjectNotFoundError for an unknown shipment and with
// InvariantViolationError for a registered shipment without events.
func (h GetShipmentHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetShipmentHistoryQuery,
) (GetShipmentHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetShipmentHistoryQueryResponse{}, err
	}

	uow := h.uowFactory.Create()
	if _, err := uow.ShipmentRepository().Get(ctx, query.ShipmentID()); err != nil {
		return GetShipmentHistoryQueryResponse{}, err
	}

	events, err := uow.StatusEventRepository().ListByShipment(ctx, query.ShipmentID())
	if err != nil {
		return GetShipmentHistoryQueryResponse{}, err
	}
	if len(events) == 0 {
		return GetShipmentHistoryQueryResponse{}, errs.NewInvariantViolationError(
			fmt.Sprintf("shipment %s has no status events", query.ShipmentID()))
	}

	timeline, err := shipment.NewTimeline(query.ShipmentID(), events)
	if err != nil {
		return GetShipmentHistoryQueryResponse{}, err
	}

	return GetShipmentHistoryQueryResponse{
		ShipmentID: query.ShipmentID(),
		Events:     timeline.All(),
		Count:      timeline.Len(),
	}, nil
}
