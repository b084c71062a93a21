package carrier

import (
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"strings"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

const maxPersonNameLength = 100

var (
	ErrDriverIsNotConstructed = errs.NewValueIsRequiredError("driver must be created via its constructor")

	phonePattern = regexp.MustCompile(`^\d{10}$`)
)

// Driver is an entity of the Carrier aggregate.
type Driver struct {
	id        kernel.UUID
	firstName string
	lastName  string
	email     string
	phone     string
	guard     guard.ConstructorGuard
}

// NewDriver lower-cases the email and strips dashes from the phone number.
// The phone is optional; when present it must have exactly 10 digits.
func NewDriver(id kernel.UUID, firstName, lastName, email, phone string) (*Driver, error) {
	d := &Driver{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		d.setID(id),
		d.setName(firstName, lastName),
		d.setEmail(email),
		d.setPhone(phone),
	); err != nil {
		return nil, err
	}

	return d, nil
}

func (d *Driver) Validate() error {
	if d == nil {
		return ErrDriverIsNotConstructed
	}
	return d.guard.Validate(ErrDriverIsNotConstructed)
}

func (d *Driver) ID() kernel.UUID   { return d.id }
func (d *Driver) FirstName() string { return d.firstName }
func (d *Driver) LastName() string  { return d.lastName }
func (d *Driver) Email() string     { return d.email }
func (d *Driver) Phone() string     { return d.phone }

func (d *Driver) FullName() string {
	return d.firstName + " " + d.lastName
}

func (d *Driver) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Driver) setName(firstName, lastName string) error {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)

	var errList []error
	for param, v := range map[string]string{"first name": firstName, "last name": lastName} {
		switch {
		case v == "":
			errList = append(errList, errs.NewValueIsRequiredError(param))
		case len(v) > maxPersonNameLength:
			errList = append(errList, errs.NewValueIsOutOfRangeError(param+" length", len(v), 1, maxPersonNameLength))
		}
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}

	d.firstName = firstName
	d.lastName = lastName
	return nil
}

func (d *Driver) setEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return errs.NewValueIsInvalidErrorWithCause("email", fmt.Errorf("%q is not a valid address", email))
	}
	d.email = email
	return nil
}

func (d *Driver) setPhone(phone string) error {
	phone = strings.ReplaceAll(strings.TrimSpace(phone), "-", "")
	if phone != "" && !phonePattern.MatchString(phone) {
		return errs.NewValueIsInvalidErrorWithCause("phone", fmt.Errorf("%q must contain exactly 10 digits", phone))
	}
	d.phone = phone
	return nil
}
