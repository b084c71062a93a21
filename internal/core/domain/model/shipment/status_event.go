package shipment

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

const (
	// SourceSystem is the default provenance of an event.
	SourceSystem = "system"
	// SourceTrackingAPI marks events pushed by an external tracking feed.
	SourceTrackingAPI = "tracking_api"
	// SourceUserAction marks events entered by an operator.
	SourceUserAction = "user_action"

	MaxSourceLength = 100
	MaxNotesLength  = 500
)

var (
	ErrStatusEventIsNotConstructed = errs.NewValueIsRequiredError("status event must be created via its constructor")
	ErrOccurredAtIsRequired        = errs.NewValueIsRequiredError("event timestamp")
)

// EventDraft carries the caller supplied part of a status event.
type EventDraft struct {
	Status     Status
	OccurredAt time.Time
	Source     string
	Notes      string
}

// StatusEvent is one immutable entry in a shipment's event log.
//
// OccurredAt is when the real-world change happened; RecordedAt is when the
// event was stored. Sequence is the 1-based insertion position within the
// shipment and breaks ties between equal OccurredAt values. OutOfOrder is set
// when the event was accepted with a timestamp before the shipment's latest
// event; such events never change the shipment's current status.
type StatusEvent struct {
	id         kernel.UUID
	shipmentID kernel.UUID
	status     Status
	occurredAt time.Time
	recordedAt time.Time
	sequence   int
	source     string
	notes      string
	outOfOrder bool
	guard      guard.ConstructorGuard
}

// newStatusEvent validates a draft. Sequence, recordedAt and the out-of-order
// flag are assigned by the timeline when the event is appended.
func newStatusEvent(shipmentID kernel.UUID, draft EventDraft) (*StatusEvent, error) {
	e := &StatusEvent{
		id:    kernel.NewUUID(),
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		e.setShipmentID(shipmentID),
		e.setStatus(draft.Status),
		e.setOccurredAt(draft.OccurredAt),
		e.setSource(draft.Source),
		e.setNotes(draft.Notes),
	); err != nil {
		return nil, err
	}

	return e, nil
}

// RestoreStatusEvent rebuilds a stored event.
func RestoreStatusEvent(
	id kernel.UUID,
	shipmentID kernel.UUID,
	status Status,
	occurredAt time.Time,
	recordedAt time.Time,
	sequence int,
	source string,
	notes string,
	outOfOrder bool,
) (*StatusEvent, error) {
	e := &StatusEvent{
		guard:      guard.NewConstructorGuard(),
		recordedAt: normalizeTime(recordedAt),
		outOfOrder: outOfOrder,
	}

	var seqErr error
	if sequence < 1 {
		seqErr = errs.NewValueIsOutOfRangeError("sequence", sequence, 1, "unbounded")
	}

	if err := errors.Join(
		e.setID(id),
		e.setShipmentID(shipmentID),
		e.setStatus(status),
		e.setOccurredAt(occurredAt),
		e.setSource(source),
		e.setNotes(notes),
		seqErr,
	); err != nil {
		return nil, err
	}
	e.sequence = sequence

	return e, nil
}

func (e *StatusEvent) Validate() error {
	if e == nil {
		return ErrStatusEventIsNotConstructed
	}
	return e.guard.Validate(ErrStatusEventIsNotConstructed)
}

func (e *StatusEvent) ID() kernel.UUID         { return e.id }
func (e *StatusEvent) ShipmentID() kernel.UUID { return e.shipmentID }
func (e *StatusEvent) Status() Status          { return e.status }
func (e *StatusEvent) OccurredAt() time.Time   { return e.occurredAt }
func (e *StatusEvent) RecordedAt() time.Time   { return e.recordedAt }
func (e *StatusEvent) Sequence() int           { return e.sequence }
func (e *StatusEvent) Source() string          { return e.source }
func (e *StatusEvent) Notes() string           { return e.notes }
func (e *StatusEvent) OutOfOrder() bool        { return e.outOfOrder }

// before orders events by event timestamp, then by insertion sequence.
func (e *StatusEvent) before(other *StatusEvent) bool {
	if !e.occurredAt.Equal(other.occurredAt) {
		return e.occurredAt.Before(other.occurredAt)
	}
	return e.sequence < other.sequence
}

func (e *StatusEvent) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.id = id
	return nil
}

func (e *StatusEvent) setShipmentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.shipmentID = id
	return nil
}

func (e *StatusEvent) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	e.status = status
	return nil
}

func (e *StatusEvent) setOccurredAt(at time.Time) error {
	if at.IsZero() {
		return ErrOccurredAtIsRequired
	}
	e.occurredAt = normalizeTime(at)
	return nil
}

// normalizeTime drops the monotonic clock reading and sub-microsecond precision
// so that timestamps compare equal after a round trip through storage.
func normalizeTime(at time.Time) time.Time {
	return at.UTC().Truncate(time.Microsecond)
}

func (e *StatusEvent) setSource(source string) error {
	source = strings.TrimSpace(source)
	if source == "" {
		source = SourceSystem
	}
	if n := utf8.RuneCountInString(source); n > MaxSourceLength {
		return errs.NewValueIsOutOfRangeError("source length", n, 1, MaxSourceLength)
	}
	e.source = source
	return nil
}

func (e *StatusEvent) setNotes(notes string) error {
	if n := utf8.RuneCountInString(notes); n > MaxNotesLength {
		return errs.NewValueIsOutOfRangeError("notes length", n, 0, MaxNotesLength)
	}
	e.notes = notes
	return nil
}
