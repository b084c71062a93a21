package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrReconfigureCapacityCommandIsNotConstructed = errors.New(
	"ReconfigureCapacityCommand must be created via NewReconfigureCapacityCommand constructor",
)

type ReconfigureCapacityCommand struct { //nolint:recvcheck //using for validation
	carrierID   kernel.UUID
	maxCapacity int

	guard guard.ConstructorGuard
}

func NewReconfigureCapacityCommand(carrierID kernel.UUID, maxCapacity int) (ReconfigureCapacityCommand, error) {
	if err := carrierID.Validate(); err != nil {
		return ReconfigureCapacityCommand{}, err
	}

	return ReconfigureCapacityCommand{
		carrierID:   carrierID,
		maxCapacity: maxCapacity,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c ReconfigureCapacityCommand) Validate() error {
	return c.guard.Validate(ErrReconfigureCapacityCommandIsNotConstructed)
}

func (c ReconfigureCapacityCommand) CarrierID() kernel.UUID { return c.carrierID }
func (c ReconfigureCapacityCommand) MaxCapacity() int       { return c.maxCapacity }
