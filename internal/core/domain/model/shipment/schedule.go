package shipment

import (
	"errors"
	"fmt"
	"time"

	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrScheduleIsNotConstructed = errs.NewValueIsRequiredError("schedule must be created via NewSchedule constructor")

// Schedule holds the planned pickup and delivery times of a shipment.
type Schedule struct { //nolint:recvcheck //using for validation
	pickup   time.Time
	delivery time.Time
	guard    guard.ConstructorGuard
}

// NewSchedule requires both times and rejects a delivery before the pickup.
func NewSchedule(pickup, delivery time.Time) (Schedule, error) {
	var errList []error
	if pickup.IsZero() {
		errList = append(errList, errs.NewValueIsRequiredError("scheduled pickup"))
	}
	if delivery.IsZero() {
		errList = append(errList, errs.NewValueIsRequiredError("scheduled delivery"))
	}
	if err := errors.Join(errList...); err != nil {
		return Schedule{}, err
	}

	if delivery.Before(pickup) {
		return Schedule{}, errs.NewValueIsInvalidErrorWithCause("scheduled delivery",
			fmt.Errorf("%s is before scheduled pickup %s",
				delivery.Format(time.RFC3339), pickup.Format(time.RFC3339)))
	}

	return Schedule{
		pickup:   normalizeTime(pickup),
		delivery: normalizeTime(delivery),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (s Schedule) Validate() error {
	return s.guard.Validate(ErrScheduleIsNotConstructed)
}

func (s Schedule) Pickup() time.Time {
	return s.pickup
}

func (s Schedule) Delivery() time.Time {
	return s.delivery
}
