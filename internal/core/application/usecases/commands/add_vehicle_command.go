package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrAddVehicleCommandIsNotConstructed = errors.New(
	"AddVehicleCommand must be created via NewAddVehicleCommand constructor",
)

type AddVehicleCommand struct { //nolint:recvcheck //using for validation
	carrierID   kernel.UUID
	plateNumber string

	guard guard.ConstructorGuard
}

func NewAddVehicleCommand(carrierID kernel.UUID, plateNumber string) (AddVehicleCommand, error) {
	if err := carrierID.Validate(); err != nil {
		return AddVehicleCommand{}, err
	}

	return AddVehicleCommand{
		carrierID:   carrierID,
		plateNumber: plateNumber,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c AddVehicleCommand) Validate() error {
	return c.guard.Validate(ErrAddVehicleCommandIsNotConstructed)
}

func (c AddVehicleCommand) CarrierID() kernel.UUID { return c.carrierID }
func (c AddVehicleCommand) PlateNumber() string    { return c.plateNumber }
