package commands

import (
	"context"
	"errors"

	"logistics/internal/core/domain/model/carrier"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"
)

// rejectionReason is the metrics label for an event the log refused.
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, errs.ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, errs.ErrOutOfOrderEvent):
		return "out_of_order"
	case errors.Is(err, errs.ErrDuplicateEvent):
		return "duplicate"
	default:
		return "invalid_input"
	}
}

// ensureAssignable tells an unknown driver or vehicle (not found) apart from
// one that exists but belongs to another carrier (invalid input).
func ensureAssignable(
	ctx context.Context,
	repo ports.CarrierRepository,
	c *carrier.Carrier,
	assignment shipment.Assignment,
) error {
	if _, ok := c.FindDriver(assignment.DriverID); !ok {
		exists, err := repo.DriverExists(ctx, assignment.DriverID)
		if err != nil {
			return err
		}
		if !exists {
			return errs.NewObjectNotFoundError("driver", assignment.DriverID)
		}
	}

	if _, ok := c.FindVehicle(assignment.VehicleID); !ok {
		exists, err := repo.VehicleExists(ctx, assignment.VehicleID)
		if err != nil {
			return err
		}
		if !exists {
			return errs.NewObjectNotFoundError("vehicle", assignment.VehicleID)
		}
	}

	return c.ValidateAssignment(assignment.DriverID, assignment.VehicleID)
}
