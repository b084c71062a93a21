package commands

import (
	"errors"
	"time"

	"logistics/internal/pkg/guard"
)

var ErrFlagOverdueShipmentsCommandIsNotConstructed = errors.New(
	"FlagOverdueShipmentsCommand must be created via NewFlagOverdueShipmentsCommand constructor",
)

type FlagOverdueShipmentsCommand struct { //nolint:recvcheck //using for validation
	now   time.Time
	guard guard.ConstructorGuard
}

// NewFlagOverdueShipmentsCommand marks in-transit shipments whose scheduled
// delivery is before now as delayed.
func NewFlagOverdueShipmentsCommand(now time.Time) (FlagOverdueShipmentsCommand, error) {
	if now.IsZero() {
		return FlagOverdueShipmentsCommand{}, errors.New("now is required")
	}
	return FlagOverdueShipmentsCommand{now: now, guard: guard.NewConstructorGuard()}, nil
}

func (c FlagOverdueShipmentsCommand) Validate() error {
	return c.guard.Validate(ErrFlagOverdueShipmentsCommandIsNotConstructed)
}

func (c FlagOverdueShipmentsCommand) Now() time.Time {
	return c.now
}
