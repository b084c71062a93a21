package queries

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/pkg/guard"
)

var ErrListActiveShipmentsQueryIsNotConstructed = errors.New(
	"ListActiveShipmentsQuery must be created via NewListActiveShipmentsQuery constructor",
)

type ListActiveShipmentsQuery struct {
	carrierID kernel.UUID
	guard     guard.ConstructorGuard
}

func NewListActiveShipmentsQuery(carrierID kernel.UUID) (ListActiveShipmentsQuery, error) {
	if err := carrierID.Validate(); err != nil {
		return ListActiveShipmentsQuery{}, err
	}
	return ListActiveShipmentsQuery{carrierID: carrierID, guard: guard.NewConstructorGuard()}, nil
}

func (q ListActiveShipmentsQuery) Validate() error {
	return q.guard.Validate(ErrListActiveShipmentsQueryIsNotConstructed)
}

func (q ListActiveShipmentsQuery) CarrierID() kernel.UUID {
	return q.carrierID
}

type ListActiveShipmentsQueryResponse struct {
	CarrierID kernel.UUID
	Shipments []*shipment.Shipment
}
