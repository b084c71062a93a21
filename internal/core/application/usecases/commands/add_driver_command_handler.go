package commands

import (
	"context"

	"logistics/internal/core/domain/model/carrier"
)

type AddDriverCommandHandler struct {
	uowFactory CarrierUoWFactory
}

func NewAddDriverCommandHandler(uowFactory CarrierUoWFactory) AddDriverCommandHandler {
	return AddDriverCommandHandler{uowFactory: uowFactory}
}

func (h *AddDriverCommandHandler) Handle(ctx context.Context, cmd AddDriverCommand) (*carrier.Driver, error) {
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

	driver, err := c.AddDriver(cmd.FirstName(), cmd.LastName(), cmd.Email(), cmd.Phone())
	if err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, c); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return driver, nil
}
