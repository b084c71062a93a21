package memory

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/pkg/errs"
)

type ShipmentRepository struct {
	uow *UnitOfWork
}

func (r *ShipmentRepository) Add(_ context.Context, s *shipment.Shipment) error {
	if err := s.Validate(); err != nil {
		return err
	}
	snapshot, err := cloneShipment(s)
	if err != nil {
		return err
	}

	r.uow.store.mu.Lock()
	defer r.uow.store.mu.Unlock()
	if _, ok := r.view()[s.ID().Bytes()]; ok {
		return errs.NewObjectExistsError("shipment", s.ID())
	}

	r.put(snapshot)
	return nil
}

func (r *ShipmentRepository) Update(_ context.Context, s *shipment.Shipment) error {
	if err := s.Validate(); err != nil {
		return err
	}
	snapshot, err := cloneShipment(s)
	if err != nil {
		return err
	}

	r.uow.store.mu.Lock()
	defer r.uow.store.mu.Unlock()
	if _, ok := r.view()[s.ID().Bytes()]; !ok {
		return errs.NewObjectNotFoundError("shipment", s.ID())
	}

	r.put(snapshot)
	return nil
}

func (r *ShipmentRepository) put(s *shipment.Shipment) {
	if r.uow.inTx {
		r.uow.shipments[s.ID().Bytes()] = s
		return
	}
	r.uow.store.shipments[s.ID().Bytes()] = s
}

func (r *ShipmentRepository) Get(_ context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	r.uow.store.mu.RLock()
	defer r.uow.store.mu.RUnlock()

	s, ok := r.view()[id.Bytes()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("shipment", id)
	}
	return cloneShipment(s)
}

func (r *ShipmentRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	if err := r.uow.lock(ctx, "shipment:"+id.String()); err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

func (r *ShipmentRepository) CountActiveByCarrier(_ context.Context, carrierID kernel.UUID) (int, error) {
	r.uow.store.mu.RLock()
	defer r.uow.store.mu.RUnlock()

	count := 0
	for _, s := range r.view() {
		if s.CarrierID().IsEqual(carrierID) && s.Status().IsActive() {
			count++
		}
	}
	return count, nil
}

func (r *ShipmentRepository) ListActiveByCarrier(_ context.Context, carrierID kernel.UUID) ([]*shipment.Shipment, error) {
	out, err := r.filter(func(s *shipment.Shipment) bool {
		return s.CarrierID().IsEqual(carrierID) && s.Status().IsActive()
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(out, func(a, b *shipment.Shipment) int {
		if c := a.Schedule().Pickup().Compare(b.Schedule().Pickup()); c != 0 {
			return c
		}
		return strings.Compare(a.ID().String(), b.ID().String())
	})
	return out, nil
}

func (r *ShipmentRepository) GetOverdue(_ context.Context, now time.Time) ([]*shipment.Shipment, error) {
	out, err := r.filter(func(s *shipment.Shipment) bool {
		return s.IsOverdue(now)
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(out, func(a, b *shipment.Shipment) int {
		return a.Schedule().Delivery().Compare(b.Schedule().Delivery())
	})
	return out, nil
}

func (r *ShipmentRepository) filter(match func(s *shipment.Shipment) bool) ([]*shipment.Shipment, error) {
	r.uow.store.mu.RLock()
	defer r.uow.store.mu.RUnlock()

	out := make([]*shipment.Shipment, 0)
	for _, s := range r.view() {
		if !match(s) {
			continue
		}
		clone, err := cloneShipment(s)
		if err != nil {
			return nil, err
		}
		out = append(out, clone)
	}
	return out, nil
}

// view overlays staged shipments on committed ones. The caller holds the store lock.
func (r *ShipmentRepository) view() map[uuid.UUID]*shipment.Shipment {
	if !r.uow.inTx || len(r.uow.shipments) == 0 {
		return r.uow.store.shipments
	}
	merged := make(map[uuid.UUID]*shipment.Shipment, len(r.uow.store.shipments)+len(r.uow.shipments))
	for id, s := range r.uow.store.shipments {
		merged[id] = s
	}
	for id, s := range r.uow.shipments {
		merged[id] = s
	}
	return merged
}
