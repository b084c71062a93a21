package kernel

import (
	"errors"
	"fmt"
	"strings"

	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

const (
	// DefaultCountry is used when a location is created without a country code.
	DefaultCountry = "US"

	LatitudeMin  = -90.0
	LatitudeMax  = 90.0
	LongitudeMin = -180.0
	LongitudeMax = 180.0

	maxNameLength       = 255
	maxAddressLength    = 255
	maxCityLength       = 100
	maxStateLength      = 100
	maxPostalCodeLength = 20
)

var (
	// ErrLocationIsNotConstructed is returned when a zero-value Location is used.
	ErrLocationIsNotConstructed = errs.NewValueIsRequiredError("location must be created via NewLocation constructor")
	// ErrGeoPointIsNotConstructed is returned when a zero-value GeoPoint is used.
	ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError("geo point must be created via NewGeoPoint constructor")
)

// GeoPoint is a latitude/longitude pair in decimal degrees.
type GeoPoint struct { //nolint:recvcheck //using for validation
	latitude  float64
	longitude float64
	guard     guard.ConstructorGuard
}

// NewGeoPoint validates that latitude is within [-90, 90] and longitude within [-180, 180].
func NewGeoPoint(latitude, longitude float64) (GeoPoint, error) {
	p := GeoPoint{guard: guard.NewConstructorGuard()}

	if err := errors.Join(p.setLatitude(latitude), p.setLongitude(longitude)); err != nil {
		return GeoPoint{}, err
	}

	return p, nil
}

// Validate ensures the point was created through NewGeoPoint.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

func (p GeoPoint) Latitude() float64 {
	return p.latitude
}

func (p GeoPoint) Longitude() float64 {
	return p.longitude
}

func (p *GeoPoint) setLatitude(latitude float64) error {
	if latitude < LatitudeMin || latitude > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, LatitudeMin, LatitudeMax)
	}
	p.latitude = latitude
	return nil
}

func (p *GeoPoint) setLongitude(longitude float64) error {
	if longitude < LongitudeMin || longitude > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, LongitudeMin, LongitudeMax)
	}
	p.longitude = longitude
	return nil
}

// Address is the raw postal address accepted by NewLocation.
type Address struct {
	Line1      string
	Line2      string
	City       string
	State      string
	PostalCode string
	Country    string
}

// Location is a named physical place used as a shipment origin or destination,
// for example "Houston Terminal" or "Warehouse 12".
//
// Location is an immutable value object. Two locations are equal when all of
// their attributes match; the zero value is invalid.
//
// Example:
//
//	point, _ := kernel.NewGeoPoint(29.7604, -95.3698)
//	origin, err := kernel.NewLocation("Houston Terminal", kernel.Address{
//	    Line1:      "100 Main St",
//	    City:       "Houston",
//	    State:      "TX",
//	    PostalCode: "77002",
//	}, &point)
type Location struct { //nolint:recvcheck //using for validation
	name    string
	address Address
	point   *GeoPoint
	guard   guard.ConstructorGuard
}

// NewLocation validates and normalizes a location. Line2 and point are optional;
// an empty country defaults to DefaultCountry and country codes are upper-cased.
func NewLocation(name string, address Address, point *GeoPoint) (Location, error) {
	loc := Location{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		loc.setName(name),
		loc.setAddress(address),
		loc.setPoint(point),
	); err != nil {
		return Location{}, err
	}

	return loc, nil
}

// Validate ensures the location was created through NewLocation.
func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

func (l Location) Name() string {
	return l.name
}

func (l Location) Address() Address {
	return l.address
}

// Point returns the optional coordinates; nil when unknown.
func (l Location) Point() *GeoPoint {
	if l.point == nil {
		return nil
	}
	p := *l.point
	return &p
}

// IsEqual compares every attribute, including coordinates.
func (l Location) IsEqual(other Location) bool {
	if l.name != other.name || l.address != other.address {
		return false
	}
	if l.point == nil || other.point == nil {
		return l.point == nil && other.point == nil
	}
	return l.point.latitude == other.point.latitude && l.point.longitude == other.point.longitude
}

// String returns the location name followed by city and state, e.g. "Houston Terminal (Houston, TX)".
func (l Location) String() string {
	return fmt.Sprintf("%s (%s, %s)", l.name, l.address.City, l.address.State)
}

func (l *Location) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("location name")
	}
	if len(name) > maxNameLength {
		return errs.NewValueIsOutOfRangeError("location name length", len(name), 1, maxNameLength)
	}
	l.name = name
	return nil
}

func (l *Location) setAddress(address Address) error {
	address.Line1 = strings.TrimSpace(address.Line1)
	address.Line2 = strings.TrimSpace(address.Line2)
	address.City = strings.TrimSpace(address.City)
	address.State = strings.TrimSpace(address.State)
	address.PostalCode = strings.TrimSpace(address.PostalCode)
	address.Country = strings.ToUpper(strings.TrimSpace(address.Country))
	if address.Country == "" {
		address.Country = DefaultCountry
	}

	if err := errors.Join(
		requiredWithin("address line 1", address.Line1, maxAddressLength),
		within("address line 2", address.Line2, maxAddressLength),
		requiredWithin("city", address.City, maxCityLength),
		requiredWithin("state", address.State, maxStateLength),
		requiredWithin("postal code", address.PostalCode, maxPostalCodeLength),
		validateCountry(address.Country),
	); err != nil {
		return err
	}

	l.address = address
	return nil
}

func (l *Location) setPoint(point *GeoPoint) error {
	if point == nil {
		l.point = nil
		return nil
	}
	if err := point.Validate(); err != nil {
		return err
	}
	p := *point
	l.point = &p
	return nil
}

func requiredWithin(param, value string, maxLength int) error {
	if value == "" {
		return errs.NewValueIsRequiredError(param)
	}
	return within(param, value, maxLength)
}

func within(param, value string, maxLength int) error {
	if len(value) > maxLength {
		return errs.NewValueIsOutOfRangeError(param+" length", len(value), 0, maxLength)
	}
	return nil
}

func validateCountry(country string) error {
	if len(country) != 2 {
		return errs.NewValueIsInvalidErrorWithCause("country",
			fmt.Errorf("%q is not an ISO 3166-1 alpha-2 code", country))
	}
	for _, r := range country {
		if r < 'A' || r > 'Z' {
			return errs.NewValueIsInvalidErrorWithCause("country",
				fmt.Errorf("%q is not an ISO 3166-1 alpha-2 code", country))
		}
	}
	return nil
}
