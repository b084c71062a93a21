package queries

import "context"

type GetCapacityUsageQueryHandler struct {
	uowFactory ReadUoWFactory
}

func NewGetCapacityUsageQueryHandler(uowFactory ReadUoWFactory) GetCapacityUsageQueryHandler {
	return GetCapacityUsageQueryHandler{uowFactory: uowFactory}
}

func (h GetCapacityUsageQueryHandler) Handle(
	ctx context.Context,
	query GetCapacityUsageQuery,
) (GetCapacityUsageQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCapacityUsageQueryResponse{}, err
	}

	uow := h.uowFactory.Create()
	carriers, err := uow.CarrierRepository().GetAll(ctx)
	if err != nil {
		return GetCapacityUsageQueryResponse{}, err
	}

	usage := make([]GetCarrierActiveCountQueryResponse, 0, len(carriers))
	for _, c := range carriers {
		active, countErr := uow.ShipmentRepository().CountActiveByCarrier(ctx, c.ID())
		if countErr != nil {
			return GetCapacityUsageQueryResponse{}, countErr
		}
		usage = append(usage, GetCarrierActiveCountQueryResponse{
			CarrierID:   c.ID(),
			Active:      active,
			MaxCapacity: c.MaxCapacity(),
		})
	}

	return GetCapacityUsageQueryResponse{Carriers: usage}, nil
}
