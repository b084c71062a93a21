package queries

import "context"

type GetCarrierActiveCountQueryHandler struct {
	uowFactory ReadUoWFactory
}

func NewGetCarrierActiveCountQueryHandler(uowFactory ReadUoWFactory) GetCarrierActiveCountQueryHandler {
	return GetCarrierActiveCountQueryHandler{uowFactory: uowFactory}
}

// Handle derives the count from stored shipment statuses on every call.
func (h GetCarrierActiveCountQueryHandler) Handle(
	ctx context.Context,
	query GetCarrierActiveCountQuery,
) (GetCarrierActiveCountQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCarrierActiveCountQueryResponse{}, err
	}

	uow := h.uowFactory.Create()
	c, err := uow.CarrierRepository().Get(ctx, query.CarrierID())
	if err != nil {
		return GetCarrierActiveCountQueryResponse{}, err
	}

	active, err := uow.ShipmentRepository().CountActiveByCarrier(ctx, c.ID())
	if err != nil {
		return GetCarrierActiveCountQueryResponse{}, err
	}

	return GetCarrierActiveCountQueryResponse{
		CarrierID:   c.ID(),
		Active:      active,
		MaxCapacity: c.MaxCapacity(),
	}, nil
}
