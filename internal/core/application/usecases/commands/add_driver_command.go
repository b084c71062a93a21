package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrAddDriverCommandIsNotConstructed = errors.New(
	"AddDriverCommand must be created via NewAddDriverCommand constructor",
)

type AddDriverCommand struct { //nolint:recvcheck //using for validation
	carrierID kernel.UUID
	firstName string
	lastName  string
	email     string
	phone     string

	guard guard.ConstructorGuard
}

func NewAddDriverCommand(carrierID kernel.UUID, firstName, lastName, email, phone string) (AddDriverCommand, error) {
	if err := carrierID.Validate(); err != nil {
		return AddDriverCommand{}, err
	}

	return AddDriverCommand{
		carrierID: carrierID,
		firstName: firstName,
		lastName:  lastName,
		email:     email,
		phone:     phone,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c AddDriverCommand) Validate() error {
	return c.guard.Validate(ErrAddDriverCommandIsNotConstructed)
}

func (c AddDriverCommand) CarrierID() kernel.UUID { return c.carrierID }
func (c AddDriverCommand) FirstName() string      { return c.firstName }
func (c AddDriverCommand) LastName() string       { return c.lastName }
func (c AddDriverCommand) Email() string          { return c.email }
func (c AddDriverCommand) Phone() string          { return c.phone }
