package commands

import (
	"context"

	"logistics/internal/core/domain/model/carrier"
	"logistics/internal/pkg/errs"
)

type AddVehicleCommandHandler struct {
	uowFactory CarrierUoWFactory
}

func NewAddVehicleCommandHandler(uowFactory CarrierUoWFactory) AddVehicleCommandHandler {
	return AddVehicleCommandHandler{uowFactory: uowFactory}
}

// Handle rejects a plate already registered to any carrier with ObjectExistsError.
func (h *AddVehicleCommandHandler) Handle(ctx context.Context, cmd AddVehicleCommand) (*carrier.Vehicle, error) {
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

	vehicle, err := c.AddVehicle(cmd.PlateNumber())
	if err != nil {
		return nil, err
	}

	exists, err := repo.ExistsByPlateNumber(ctx, vehicle.PlateNumber())
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errs.NewObjectExistsError("plate number", vehicle.PlateNumber())
	}

	if err = repo.Update(ctx, c); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return vehicle, nil
}
