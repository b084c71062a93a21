package commands

import (
	"context"

	"logistics/internal/core/domain/model/carrier"
)

type ReconfigureCapacityCommandHandler struct {
	uowFactory CarrierUoWFactory
}

func NewReconfigureCapacityCommandHandler(uowFactory CarrierUoWFactory) ReconfigureCapacityCommandHandler {
	return ReconfigureCapacityCommandHandler{uowFactory: uowFactory}
}

// Handle takes the carrier lock so the change cannot interleave with a
// capacity check of a concurrent registration.
func (h *ReconfigureCapacityCommandHandler) Handle(
	ctx context.Context,
	cmd ReconfigureCapacityCommand,
) (*carrier.Carrier, error) {
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

	repo := uow.CarrierRepository()
	c, err := repo.GetForUpdate(ctx, cmd.CarrierID())
	if err != nil {
		return nil, err
	}

	if err = c.ReconfigureCapacity(cmd.MaxCapacity()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, c); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return c, nil
}
