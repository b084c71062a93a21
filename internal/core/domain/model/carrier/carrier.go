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

const maxCarrierNameLength = 255

var (
	// ErrCarrierIsNotConstructed is returned when using an improperly initialized Carrier.
	ErrCarrierIsNotConstructed = errs.NewValueIsRequiredError("carrier must be created via NewCarrier or RestoreCarrier")

	mcNumberPattern = regexp.MustCompile(`^MC\d{6}$`)
)

// Carrier is the aggregate root for a transport company. It owns the
// drivers and vehicles that can be assigned to its shipments and carries the
// maximum number of shipments it may hold in an active status at once.
//
// The active count itself is not stored here; it is derived from shipments
// by the capacity tracker.
//
// Business rules:
//   - name is required
//   - the MC number matches MC followed by six digits and is stored upper case
//   - max capacity is not negative
//   - a plate number appears at most once within the carrier
//
// Example:
//
//	c, err := carrier.NewCarrier(kernel.NewUUID(), "Lone Star Freight", "mc123456", 25)
//	if err != nil {
//	    return err
//	}
//	driver, err := c.AddDriver("Ana", "Lopez", "ana@lonestar.example", "512-555-0101")
type Carrier struct {
	id          kernel.UUID
	name        string
	mcNumber    string
	maxCapacity int
	drivers     []*Driver
	vehicles    []*Vehicle
	guard       guard.ConstructorGuard
}

func NewCarrier(id kernel.UUID, name, mcNumber string, maxCapacity int) (*Carrier, error) {
	c := &Carrier{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setMCNumber(mcNumber),
		c.setMaxCapacity(maxCapacity),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreCarrier rebuilds a carrier with its drivers and vehicles from storage.
func RestoreCarrier(
	id kernel.UUID,
	name string,
	mcNumber string,
	maxCapacity int,
	drivers []*Driver,
	vehicles []*Vehicle,
) (*Carrier, error) {
	c, err := NewCarrier(id, name, mcNumber, maxCapacity)
	if err != nil {
		return nil, err
	}

	for _, d := range drivers {
		if err = c.attachDriver(d); err != nil {
			return nil, err
		}
	}
	for _, v := range vehicles {
		if err = c.attachVehicle(v); err != nil {
			return nil, err
		}
	}

	return c, nil
}

func (c *Carrier) Validate() error {
	if c == nil {
		return ErrCarrierIsNotConstructed
	}
	return c.guard.Validate(ErrCarrierIsNotConstructed)
}

func (c *Carrier) IsEqual(other *Carrier) bool {
	return other != nil && c.id.IsEqual(other.id)
}

func (c *Carrier) ID() kernel.UUID {
	return c.id
}

func (c *Carrier) Name() string {
	return c.name
}

// MCNumber returns the normalized motor carrier number, e.g. "MC123456".
func (c *Carrier) MCNumber() string {
	return c.mcNumber
}

func (c *Carrier) MaxCapacity() int {
	return c.maxCapacity
}

func (c *Carrier) Drivers() []*Driver {
	out := make([]*Driver, len(c.drivers))
	copy(out, c.drivers)
	return out
}

func (c *Carrier) Vehicles() []*Vehicle {
	out := make([]*Vehicle, len(c.vehicles))
	copy(out, c.vehicles)
	return out
}

// AddDriver creates a driver owned by this carrier.
func (c *Carrier) AddDriver(firstName, lastName, email, phone string) (*Driver, error) {
	d, err := NewDriver(kernel.NewUUID(), firstName, lastName, email, phone)
	if err != nil {
		return nil, err
	}
	if err = c.attachDriver(d); err != nil {
		return nil, err
	}
	return d, nil
}

// AddVehicle creates a vehicle owned by this carrier. Uniqueness of the plate
// across all carriers is checked by the caller against the repository.
func (c *Carrier) AddVehicle(plateNumber string) (*Vehicle, error) {
	v, err := NewVehicle(kernel.NewUUID(), plateNumber)
	if err != nil {
		return nil, err
	}
	if err = c.attachVehicle(v); err != nil {
		return nil, err
	}
	return v, nil
}

// ReconfigureCapacity changes the maximum number of active shipments.
// A value below the current active count is accepted; it only blocks new
// activations until enough shipments reach a terminal status.
func (c *Carrier) ReconfigureCapacity(maxCapacity int) error {
	return c.setMaxCapacity(maxCapacity)
}

func (c *Carrier) FindDriver(id kernel.UUID) (*Driver, bool) {
	for _, d := range c.drivers {
		if d.ID().IsEqual(id) {
			return d, true
		}
	}
	return nil, false
}

func (c *Carrier) FindVehicle(id kernel.UUID) (*Vehicle, bool) {
	for _, v := range c.vehicles {
		if v.ID().IsEqual(id) {
			return v, true
		}
	}
	return nil, false
}

// ValidateAssignment checks that both the driver and the vehicle belong to this carrier.
func (c *Carrier) ValidateAssignment(driverID, vehicleID kernel.UUID) error {
	var errList []error
	if _, ok := c.FindDriver(driverID); !ok {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("driver id",
			fmt.Errorf("driver %s does not belong to carrier %s", driverID, c.id)))
	}
	if _, ok := c.FindVehicle(vehicleID); !ok {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("vehicle id",
			fmt.Errorf("vehicle %s does not belong to carrier %s", vehicleID, c.id)))
	}
	return errors.Join(errList...)
}

func (c *Carrier) attachDriver(d *Driver) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if _, ok := c.FindDriver(d.ID()); ok {
		return errs.NewObjectExistsError("driver", d.ID())
	}
	c.drivers = append(c.drivers, d)
	return nil
}

func (c *Carrier) attachVehicle(v *Vehicle) error {
	if err := v.Validate(); err != nil {
		return err
	}
	for _, existing := range c.vehicles {
		if existing.ID().IsEqual(v.ID()) || existing.PlateNumber() == v.PlateNumber() {
			return errs.NewObjectExistsError("plate number", v.PlateNumber())
		}
	}
	c.vehicles = append(c.vehicles, v)
	return nil
}

func (c *Carrier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Carrier) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	if len(name) > maxCarrierNameLength {
		return errs.NewValueIsOutOfRangeError("name length", len(name), 1, maxCarrierNameLength)
	}
	c.name = name
	return nil
}

func (c *Carrier) setMCNumber(mcNumber string) error {
	mcNumber = strings.ToUpper(strings.TrimSpace(mcNumber))
	if mcNumber == "" {
		return errs.NewValueIsRequiredError("mc number")
	}
	if !mcNumberPattern.MatchString(mcNumber) {
		return errs.NewValueIsInvalidErrorWithCause("mc number",
			fmt.Errorf("%q must be MC followed by 6 digits", mcNumber))
	}
	c.mcNumber = mcNumber
	return nil
}

func (c *Carrier) setMaxCapacity(maxCapacity int) error {
	if maxCapacity < 0 {
		return errs.NewValueIsOutOfRangeError("max capacity", maxCapacity, 0, "unbounded")
	}
	c.maxCapacity = maxCapacity
	return nil
}
