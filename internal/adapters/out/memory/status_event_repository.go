package memory

import (
	"context"
	"slices"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/pkg/errs"
)

type StatusEventRepository struct {
	uow *UnitOfWork
}

// Append stores an immutable event. Outside a transaction it is written
// through and reported by CommittedEvents of the next transaction only.
func (r *StatusEventRepository) Append(_ context.Context, e *shipment.StatusEvent) error {
	if err := e.Validate(); err != nil {
		return err
	}

	r.uow.store.mu.Lock()
	defer r.uow.store.mu.Unlock()

	key := e.ShipmentID().Bytes()
	if _, ok := r.uow.store.shipments[key]; !ok {
		if _, staged := r.uow.shipments[key]; !staged {
			return errs.NewObjectNotFoundError("shipment", e.ShipmentID())
		}
	}

	if r.uow.inTx {
		r.uow.events = append(r.uow.events, e)
		return nil
	}
	r.uow.store.events[key] = append(r.uow.store.events[key], e)
	return nil
}

func (r *StatusEventRepository) ListByShipment(_ context.Context, shipmentID kernel.UUID) ([]*shipment.StatusEvent, error) {
	r.uow.store.mu.RLock()
	defer r.uow.store.mu.RUnlock()

	out := slices.Clone(r.uow.store.events[shipmentID.Bytes()])
	if r.uow.inTx {
		for _, e := range r.uow.events {
			if e.ShipmentID().IsEqual(shipmentID) {
				out = append(out, e)
			}
		}
	}

	slices.SortStableFunc(out, func(a, b *shipment.StatusEvent) int {
		if c := a.OccurredAt().Compare(b.OccurredAt()); c != 0 {
			return c
		}
		return a.Sequence() - b.Sequence()
	})
	return out, nil
}
