package queries

import (
	"errors"

	"logistics/internal/pkg/guard"
)

var ErrGetCapacityUsageQueryIsNotConstructed = errors.New(
	"GetCapacityUsageQuery must be created via NewGetCapacityUsageQuery constructor",
)

// GetCapacityUsageQuery asks for the active count of every carrier.
type GetCapacityUsageQuery struct {
	guard guard.ConstructorGuard
}

func NewGetCapacityUsageQuery() GetCapacityUsageQuery {
	return GetCapacityUsageQuery{guard: guard.NewConstructorGuard()}
}

func (q GetCapacityUsageQuery) Validate() error {
	return q.guard.Validate(ErrGetCapacityUsageQueryIsNotConstructed)
}

type GetCapacityUsageQueryResponse struct {
	Carriers []GetCarrierActiveCountQueryResponse
}
