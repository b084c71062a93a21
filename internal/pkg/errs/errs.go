package errs

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Sentinel errors used for classification with errors.Is.
var (
	ErrObjectNotFound     = errors.New("object not found")
	ErrObjectExists       = errors.New("object already exists")
	ErrValueIsInvalid     = errors.New("value is invalid")
	ErrValueIsOutOfRange  = errors.New("value is out of range")
	ErrValueIsRequired    = errors.New("value is required")
	ErrInvalidTransition  = errors.New("invalid transition")
	ErrCapacityExceeded   = errors.New("capacity exceeded")
	ErrOutOfOrderEvent    = errors.New("out of order event")
	ErrDuplicateEvent     = errors.New("duplicate event")
	ErrInvariantViolation = errors.New("invariant violation")
)

// sanitize keeps user supplied values on a single log line.
func sanitize(v any) string {
	s := fmt.Sprintf("%v", v)
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "\r", " ")
}

func withCause(msg string, cause error) string {
	if cause == nil {
		return msg
	}
	return fmt.Sprintf("%s (cause: %v)", msg, cause)
}

// ObjectNotFoundError is returned when a referenced aggregate or entity does not exist.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %v)",
			ErrObjectNotFound, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ObjectExistsError is returned when a uniqueness rule is violated,
// for example a second carrier with the same MC number.
type ObjectExistsError struct {
	ParamName string
	Value     any
	Cause     error
}

func NewObjectExistsError(paramName string, value any) *ObjectExistsError {
	return &ObjectExistsError{ParamName: paramName, Value: value}
}

func NewObjectExistsErrorWithCause(paramName string, value any, cause error) *ObjectExistsError {
	return &ObjectExistsError{ParamName: paramName, Value: value, Cause: cause}
}

func (e *ObjectExistsError) Error() string {
	return withCause(fmt.Sprintf("%s: %s %s", ErrObjectExists, e.ParamName, sanitize(e.Value)), e.Cause)
}

func (e *ObjectExistsError) Unwrap() error {
	return ErrObjectExists
}

// ValueIsInvalidError reports a value that fails a domain rule.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName), e.Cause)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError reports a value outside of [Min, Max].
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string, value, minValue, maxValue any, cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %s is %s, min value is %s, max value is %s",
		ErrValueIsInvalid, sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max))
	return withCause(msg, e.Cause)
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError reports a missing mandatory value.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName), e.Cause)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// InvalidTransitionError is returned when a requested status is not a legal
// successor of the current one, or when a shipment's first event is not pending.
type InvalidTransitionError struct {
	From string
	To   string
}

func NewInvalidTransitionError(from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// CapacityExceededError is returned when a carrier has no free active-shipment slot.
type CapacityExceededError struct {
	CarrierID string
	Active    int
	Max       int
}

func NewCapacityExceededError(carrierID string, active, maxCapacity int) *CapacityExceededError {
	return &CapacityExceededError{CarrierID: carrierID, Active: active, Max: maxCapacity}
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("%s: carrier %s has %d of %d active shipments",
		ErrCapacityExceeded, e.CarrierID, e.Active, e.Max)
}

func (e *CapacityExceededError) Unwrap() error {
	return ErrCapacityExceeded
}

// OutOfOrderEventError is returned when an event timestamp precedes the latest
// recorded event of the shipment and out-of-order events are not accepted.
type OutOfOrderEventError struct {
	ShipmentID string
	EventAt    time.Time
	LatestAt   time.Time
}

func NewOutOfOrderEventError(shipmentID string, eventAt, latestAt time.Time) *OutOfOrderEventError {
	return &OutOfOrderEventError{ShipmentID: shipmentID, EventAt: eventAt, LatestAt: latestAt}
}

func (e *OutOfOrderEventError) Error() string {
	return fmt.Sprintf("%s: shipment %s event at %s precedes latest event at %s",
		ErrOutOfOrderEvent, e.ShipmentID, e.EventAt.Format(time.RFC3339Nano), e.LatestAt.Format(time.RFC3339Nano))
}

func (e *OutOfOrderEventError) Unwrap() error {
	return ErrOutOfOrderEvent
}

// DuplicateEventError is returned when the same (status, event timestamp)
// pair is recorded twice for one shipment.
type DuplicateEventError struct {
	ShipmentID string
	Status     string
	EventAt    time.Time
}

func NewDuplicateEventError(shipmentID, status string, eventAt time.Time) *DuplicateEventError {
	return &DuplicateEventError{ShipmentID: shipmentID, Status: status, EventAt: eventAt}
}

func (e *DuplicateEventError) Error() string {
	return fmt.Sprintf("%s: shipment %s already has %s at %s",
		ErrDuplicateEvent, e.ShipmentID, e.Status, e.EventAt.Format(time.RFC3339Nano))
}

func (e *DuplicateEventError) Unwrap() error {
	return ErrDuplicateEvent
}

// InvariantViolationError signals stored state that breaks a domain invariant,
// such as a registered shipment without any status event.
type InvariantViolationError struct {
	Description string
}

func NewInvariantViolationError(description string) *InvariantViolationError {
	return &InvariantViolationError{Description: description}
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvariantViolation, e.Description)
}

func (e *InvariantViolationError) Unwrap() error {
	return ErrInvariantViolation
}
