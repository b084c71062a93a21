package carrier

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var (
	ErrVehicleIsNotConstructed = errs.NewValueIsRequiredError("vehicle must be created via its constructor")

	platePattern = regexp.MustCompile(`^[A-Z0-9-]{1,20}$`)
)

// Vehicle is an entity of the Carrier aggregate identified by its plate number.
type Vehicle struct {
	id          kernel.UUID
	plateNumber string
	guard       guard.ConstructorGuard
}

// NewVehicle upper-cases the plate, which may contain letters, digits and dashes.
func NewVehicle(id kernel.UUID, plateNumber string) (*Vehicle, error) {
	v := &Vehicle{guard: guard.NewConstructorGuard()}

	if err := errors.Join(v.setID(id), v.setPlateNumber(plateNumber)); err != nil {
		return nil, err
	}

	return v, nil
}

func (v *Vehicle) Validate() error {
	if v == nil {
		return ErrVehicleIsNotConstructed
	}
	return v.guard.Validate(ErrVehicleIsNotConstructed)
}

func (v *Vehicle) ID() kernel.UUID {
	return v.id
}

func (v *Vehicle) PlateNumber() string {
	return v.plateNumber
}

func (v *Vehicle) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	v.id = id
	return nil
}

func (v *Vehicle) setPlateNumber(plate string) error {
	plate = strings.ToUpper(strings.TrimSpace(plate))
	if plate == "" {
		return errs.NewValueIsRequiredError("plate number")
	}
	if !platePattern.MatchString(plate) {
		return errs.NewValueIsInvalidErrorWithCause("plate number",
			fmt.Errorf("%q must be 1-20 letters, digits or dashes", plate))
	}
	v.plateNumber = plate
	return nil
}
