package queries

import "context"

type ListActiveShipmentsQueryHandler struct {
	uowFactory ReadUoWFactory
}

func NewListActiveShipmentsQueryHandler(uowFactory ReadUoWFactory) ListActiveShipmentsQueryHandler {
	return ListActiveShipmentsQueryHandler{uowFactory: uowFactory}
}

func (h ListActiveShipmentsQueryHandler) Handle(
	ctx context.Context,
	query ListActiveShipmentsQuery,
) (ListActiveShipmentsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListActiveShipmentsQueryResponse{}, err
	}

	uow := h.uowFactory.Create()
	if _, err := uow.CarrierRepository().Get(ctx, query.CarrierID()); err != nil {
		return ListActiveShipmentsQueryResponse{}, err
	}

	shipments, err := uow.ShipmentRepository().ListActiveByCarrier(ctx, query.CarrierID())
	if err != nil {
		return ListActiveShipmentsQueryResponse{}, err
	}

	return ListActiveShipmentsQueryResponse{CarrierID: query.CarrierID(), Shipments: shipments}, nil
}
