package queries

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrGetCarrierActiveCountQueryIsNotConstructed = errors.New(
	"GetCarrierActiveCountQuery must be created via NewGetCarrierActiveCountQuery constructor",
)

type GetCarrierActiveCountQuery struct {
	carrierID kernel.UUID
	guard     guard.ConstructorGuard
}

func NewGetCarrierActiveCountQuery(carrierID kernel.UUID) (GetCarrierActiveCountQuery, error) {
	if err := carrierID.Validate(); err != nil {
		return GetCarrierActiveCountQuery{}, err
	}
	return GetCarrierActiveCountQuery{carrierID: carrierID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetCarrierActiveCountQuery) Validate() error {
	return q.guard.Validate(ErrGetCarrierActiveCountQueryIsNotConstructed)
}

func (q GetCarrierActiveCountQuery) CarrierID() kernel.UUID {
	return q.carrierID
}

type GetCarrierActiveCountQueryResponse struct {
	CarrierID   kernel.UUID
	Active      int
	MaxCapacity int
}
