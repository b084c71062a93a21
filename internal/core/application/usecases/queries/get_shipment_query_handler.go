package queries

import "context"

type GetShipmentQueryHandler struct {
	uowFactory ReadUoWFactory
}

func NewGetShipmentQueryHandler(uowFactory ReadUoWFactory) GetShipmentQueryHandler {
	return GetShipmentQueryHandler{uowFactory: uowFactory}
}

func (h GetShipmentQueryHandler) Handle(ctx context.Context, query GetShipmentQuery) (GetShipmentQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetShipmentQueryResponse{}, err
	}

	shp, err := h.uowFactory.Create().ShipmentRepository().Get(ctx, query.ShipmentID())
	if err != nil {
		return GetShipmentQueryResponse{}, err
	}

	return GetShipmentQueryResponse{Shipment: shp}, nil
}
