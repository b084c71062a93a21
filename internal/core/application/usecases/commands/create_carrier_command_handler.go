package commands

import (
	"context"

	"logistics/internal/core/domain/model/carrier"
	"logistics/internal/pkg/errs"
)

type CreateCarrierCommandHandler struct {
	uowFactory CarrierUoWFactory
}

func NewCreateCarrierCommandHandler(uowFactory CarrierUoWFactory) CreateCarrierCommandHandler {
	return CreateCarrierCommandHandler{uowFactory: uowFactory}
}

func (h *CreateCarrierCommandHandler) Handle(ctx context.Context, cmd CreateCarrierCommand) (*carrier.Carrier, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	c, err := carrier.NewCarrier(cmd.CarrierID(), cmd.Name(), cmd.MCNumber(), cmd.MaxCapacity())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.CarrierRepository()
	exists, err := repo.ExistsByMCNumber(ctx, c.MCNumber())
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errs.NewObjectExistsError("mc number", c.MCNumber())
	}

	if err = repo.Add(ctx, c); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return c, nil
}
