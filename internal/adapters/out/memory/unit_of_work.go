package memory

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"logistics/internal/core/domain/model/carrier"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"
)

var (
	ErrNoTransaction   = errors.New("no active transaction")
	ErrLockOutsideOfTx = errors.New("GetForUpdate requires an active transaction")
)

type UnitOfWorkFactory struct {
	store *Store
}

func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

type UnitOfWork struct {
	store *Store
	inTx  bool

	carriers  map[uuid.UUID]*carrier.Carrier
	shipments map[uuid.UUID]*shipment.Shipment
	events    []*shipment.StatusEvent
	held      map[string]struct{}

	committed []*shipment.StatusEvent
}

func (u *UnitOfWork) Begin(_ context.Context) error {
	if u.inTx {
		return nil
	}
	u.inTx = true
	u.carriers = make(map[uuid.UUID]*carrier.Carrier)
	u.shipments = make(map[uuid.UUID]*shipment.Shipment)
	u.events = nil
	u.held = make(map[string]struct{})
	u.committed = nil
	return nil
}

// Commit validates uniqueness against committed state, publishes the staged
// writes atomically and releases every lock held by the unit of work.
func (u *UnitOfWork) Commit(_ context.Context) error {
	if !u.inTx {
		return ErrNoTransaction
	}
	defer u.end()

	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	if err := u.checkUnique(); err != nil {
		return err
	}

	for id, c := range u.carriers {
		u.store.carriers[id] = c
	}
	for id, s := range u.shipments {
		u.store.shipments[id] = s
	}
	for _, e := range u.events {
		key := e.ShipmentID().Bytes()
		u.store.events[key] = append(u.store.events[key], e)
	}

	u.committed = u.events
	return nil
}

func (u *UnitOfWork) Rollback(_ context.Context) error {
	if !u.inTx {
		return ErrNoTransaction
	}
	u.end()
	return nil
}

func (u *UnitOfWork) CommittedEvents() []*shipment.StatusEvent {
	if u.inTx {
		return nil
	}
	return u.committed
}

func (u *UnitOfWork) CarrierRepository() ports.CarrierRepository {
	return &CarrierRepository{uow: u}
}

func (u *UnitOfWork) ShipmentRepository() ports.ShipmentRepository {
	return &ShipmentRepository{uow: u}
}

func (u *UnitOfWork) StatusEventRepository() ports.StatusEventRepository {
	return &StatusEventRepository{uow: u}
}

func (u *UnitOfWork) end() {
	for key := range u.held {
		u.store.locks.Unlock(key)
	}
	u.inTx = false
	u.held = nil
	u.carriers = nil
	u.shipments = nil
	u.events = nil
}

func (u *UnitOfWork) lock(ctx context.Context, key string) error {
	if !u.inTx {
		return ErrLockOutsideOfTx
	}
	if _, ok := u.held[key]; ok {
		return nil
	}
	if err := u.store.locks.Lock(ctx, key); err != nil {
		return err
	}
	u.held[key] = struct{}{}
	return nil
}

// checkUnique must run under the store write lock.
func (u *UnitOfWork) checkUnique() error {
	for id, staged := range u.carriers {
		for otherID, other := range u.store.carriers {
			if otherID == id {
				continue
			}
			if other.MCNumber() == staged.MCNumber() {
				return errs.NewObjectExistsError("mc number", staged.MCNumber())
			}
			for _, v := range staged.Vehicles() {
				for _, ov := range other.Vehicles() {
					if ov.PlateNumber() == v.PlateNumber() {
						return errs.NewObjectExistsError("plate number", v.PlateNumber())
					}
				}
			}
		}
	}

	for _, e := range u.events {
		for _, existing := range u.store.events[e.ShipmentID().Bytes()] {
			if existing.Sequence() == e.Sequence() ||
				(existing.Status() == e.Status() && existing.OccurredAt().Equal(e.OccurredAt())) {
				return fmt.Errorf("append event %s: %w",
					e.ID(), errs.NewDuplicateEventError(e.ShipmentID().String(), e.Status().String(), e.OccurredAt()))
			}
		}
	}
	return nil
}
