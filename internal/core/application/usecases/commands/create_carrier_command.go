package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrCreateCarrierCommandIsNotConstructed = errors.New(
	"CreateCarrierCommand must be created via NewCreateCarrierCommand constructor",
)

type CreateCarrierCommand struct { //nolint:recvcheck //using for validation
	carrierID   kernel.UUID
	name        string
	mcNumber    string
	maxCapacity int

	guard guard.ConstructorGuard
}

// NewCreateCarrierCommand only checks the identifier; name, MC number and
// capacity rules belong to the Carrier aggregate.
func NewCreateCarrierCommand(carrierID kernel.UUID, name, mcNumber string, maxCapacity int) (CreateCarrierCommand, error) {
	if err := carrierID.Validate(); err != nil {
		return CreateCarrierCommand{}, err
	}

	return CreateCarrierCommand{
		carrierID:   carrierID,
		name:        name,
		mcNumber:    mcNumber,
		maxCapacity: maxCapacity,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c CreateCarrierCommand) Validate() error {
	return c.guard.Validate(ErrCreateCarrierCommandIsNotConstructed)
}

func (c CreateCarrierCommand) CarrierID() kernel.UUID { return c.carrierID }
func (c CreateCarrierCommand) Name() string           { return c.name }
func (c CreateCarrierCommand) MCNumber() string       { return c.mcNumber }
func (c CreateCarrierCommand) MaxCapacity() int       { return c.maxCapacity }
