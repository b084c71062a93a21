package shipment

import (
	"fmt"
	"iter"
	"slices"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
)

// OrderingPolicy decides what happens to an event whose timestamp is earlier
// than the latest event already recorded for the shipment.
type OrderingPolicy int

const (
	// RejectOutOfOrder keeps history monotonic and fails with OutOfOrderEventError.
	RejectOutOfOrder OrderingPolicy = iota
	// AcceptOutOfOrder inserts the event at its chronological position, flagged
	// as out of order, without changing the shipment's current status.
	AcceptOutOfOrder
)

func ParseOrderingPolicy(s string) (OrderingPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "reject":
		return RejectOutOfOrder, nil
	case "accept":
		return AcceptOutOfOrder, nil
	default:
		return RejectOutOfOrder, errs.NewValueIsInvalidErrorWithCause("out of order policy",
			fmt.Errorf("%q must be reject or accept", s))
	}
}

func (p OrderingPolicy) String() string {
	if p == AcceptOutOfOrder {
		return "accept"
	}
	return "reject"
}

// Timeline is the append-only event log of one shipment, kept ordered by
// event timestamp with ties broken by insertion sequence.
//
// The last event of a timeline is never out of order, so its status is
// always the shipment's current status.
type Timeline struct {
	shipmentID kernel.UUID
	events     []*StatusEvent
}

// NewTimeline builds a timeline from stored events in any order.
func NewTimeline(shipmentID kernel.UUID, events []*StatusEvent) (*Timeline, error) {
	if err := shipmentID.Validate(); err != nil {
		return nil, err
	}

	sorted := make([]*StatusEvent, 0, len(events))
	for _, e := range events {
		if err := e.Validate(); err != nil {
			return nil, err
		}
		if !e.ShipmentID().IsEqual(shipmentID) {
			return nil, errs.NewInvariantViolationError(
				fmt.Sprintf("event %s belongs to shipment %s, not %s", e.ID(), e.ShipmentID(), shipmentID))
		}
		sorted = append(sorted, e)
	}
	slices.SortStableFunc(sorted, compareEvents)

	return &Timeline{shipmentID: shipmentID, events: sorted}, nil
}

func compareEvents(a, b *StatusEvent) int {
	switch {
	case a.before(b):
		return -1
	case b.before(a):
		return 1
	default:
		return 0
	}
}

func (t *Timeline) ShipmentID() kernel.UUID {
	return t.shipmentID
}

func (t *Timeline) Len() int {
	return len(t.events)
}

// Latest returns the chronologically last event, or nil for an empty timeline.
func (t *Timeline) Latest() *StatusEvent {
	if len(t.events) == 0 {
		return nil
	}
	return t.events[len(t.events)-1]
}

// Current is the status of the latest event, Unknown when empty.
func (t *Timeline) Current() Status {
	if latest := t.Latest(); latest != nil {
		return latest.Status()
	}
	return Unknown
}

// All yields the events in order. The sequence is a snapshot taken when All
// is called and can be ranged over any number of times.
func (t *Timeline) All() iter.Seq[*StatusEvent] {
	snapshot := slices.Clone(t.events)
	return func(yield func(*StatusEvent) bool) {
		for _, e := range snapshot {
			if !yield(e) {
				return
			}
		}
	}
}

// Append validates draft against the log and inserts it.
//
// Checks run in this order: the first event must be pending; a repeated
// (status, timestamp) pair is a duplicate; an earlier timestamp than the
// latest event is handled by policy; otherwise the status must be a legal
// successor of the current one.
func (t *Timeline) Append(draft EventDraft, policy OrderingPolicy, recordedAt time.Time) (*StatusEvent, error) {
	e, err := newStatusEvent(t.shipmentID, draft)
	if err != nil {
		return nil, err
	}

	if len(t.events) == 0 {
		if e.status != Pending {
			return nil, errs.NewInvalidTransitionError("none", e.status.String())
		}
		return t.insert(e, recordedAt), nil
	}

	if t.hasDuplicate(e) {
		return nil, errs.NewDuplicateEventError(t.shipmentID.String(), e.status.String(), e.occurredAt)
	}

	latest := t.Latest()
	if e.occurredAt.Before(latest.occurredAt) {
		first := t.events[0]
		if policy != AcceptOutOfOrder || e.occurredAt.Before(first.occurredAt) {
			return nil, errs.NewOutOfOrderEventError(t.shipmentID.String(), e.occurredAt, latest.occurredAt)
		}
		e.outOfOrder = true
		return t.insert(e, recordedAt), nil
	}

	if _, err = latest.status.Transition(e.status); err != nil {
		return nil, err
	}

	return t.insert(e, recordedAt), nil
}

func (t *Timeline) hasDuplicate(e *StatusEvent) bool {
	return slices.ContainsFunc(t.events, func(existing *StatusEvent) bool {
		return existing.status == e.status && existing.occurredAt.Equal(e.occurredAt)
	})
}

func (t *Timeline) insert(e *StatusEvent, recordedAt time.Time) *StatusEvent {
	next := 0
	for _, existing := range t.events {
		next = max(next, existing.sequence)
	}
	e.sequence = next + 1
	e.recordedAt = normalizeTime(recordedAt)

	pos := slices.IndexFunc(t.events, func(existing *StatusEvent) bool {
		return e.before(existing)
	})
	if pos < 0 {
		pos = len(t.events)
	}
	t.events = slices.Insert(t.events, pos, e)

	return e
}
