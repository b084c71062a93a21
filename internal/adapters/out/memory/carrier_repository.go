package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/google/uuid"

	"logistics/internal/core/domain/model/carrier"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
)

type CarrierRepository struct {
	uow *UnitOfWork
}

func (r *CarrierRepository) Add(_ context.Context, c *carrier.Carrier) error {
	if err := c.Validate(); err != nil {
		return err
	}
	snapshot, err := cloneCarrier(c)
	if err != nil {
		return err
	}

	if r.uow.inTx {
		if _, ok := r.uow.carriers[c.ID().Bytes()]; ok {
			return errs.NewObjectExistsError("carrier", c.ID())
		}
	}

	r.uow.store.mu.Lock()
	defer r.uow.store.mu.Unlock()
	if _, ok := r.uow.store.carriers[c.ID().Bytes()]; ok {
		return errs.NewObjectExistsError("carrier", c.ID())
	}

	return r.put(snapshot)
}

func (r *CarrierRepository) Update(_ context.Context, c *carrier.Carrier) error {
	if err := c.Validate(); err != nil {
		return err
	}
	snapshot, err := cloneCarrier(c)
	if err != nil {
		return err
	}

	r.uow.store.mu.Lock()
	defer r.uow.store.mu.Unlock()
	_, stored := r.uow.store.carriers[c.ID().Bytes()]
	_, staged := r.uow.carriers[c.ID().Bytes()]
	if !stored && !staged {
		return errs.NewObjectNotFoundError("carrier", c.ID())
	}

	return r.put(snapshot)
}

// put stages the snapshot inside a transaction and writes it through otherwise.
// The caller holds the store lock.
func (r *CarrierRepository) put(c *carrier.Carrier) error {
	if r.uow.inTx {
		r.uow.carriers[c.ID().Bytes()] = c
		return nil
	}
	r.uow.store.carriers[c.ID().Bytes()] = c
	return nil
}

func (r *CarrierRepository) Get(_ context.Context, id kernel.UUID) (*carrier.Carrier, error) {
	r.uow.store.mu.RLock()
	defer r.uow.store.mu.RUnlock()

	c, ok := r.view()[id.Bytes()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("carrier", id)
	}
	return cloneCarrier(c)
}

func (r *CarrierRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*carrier.Carrier, error) {
	if err := r.uow.lock(ctx, "carrier:"+id.String()); err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

func (r *CarrierRepository) GetAll(_ context.Context) ([]*carrier.Carrier, error) {
	r.uow.store.mu.RLock()
	defer r.uow.store.mu.RUnlock()

	out := make([]*carrier.Carrier, 0)
	for _, c := range r.view() {
		clone, err := cloneCarrier(c)
		if err != nil {
			return nil, err
		}
		out = append(out, clone)
	}
	slices.SortFunc(out, func(a, b *carrier.Carrier) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return out, nil
}

func (r *CarrierRepository) ExistsByMCNumber(_ context.Context, mcNumber string) (bool, error) {
	mcNumber = strings.ToUpper(strings.TrimSpace(mcNumber))
	return r.any(func(c *carrier.Carrier) bool {
		return c.MCNumber() == mcNumber
	}), nil
}

func (r *CarrierRepository) ExistsByPlateNumber(_ context.Context, plateNumber string) (bool, error) {
	plateNumber = strings.ToUpper(strings.TrimSpace(plateNumber))
	return r.any(func(c *carrier.Carrier) bool {
		return slices.ContainsFunc(c.Vehicles(), func(v *carrier.Vehicle) bool {
			return v.PlateNumber() == plateNumber
		})
	}), nil
}

func (r *CarrierRepository) DriverExists(_ context.Context, id kernel.UUID) (bool, error) {
	return r.any(func(c *carrier.Carrier) bool {
		_, ok := c.FindDriver(id)
		return ok
	}), nil
}

func (r *CarrierRepository) VehicleExists(_ context.Context, id kernel.UUID) (bool, error) {
	return r.any(func(c *carrier.Carrier) bool {
		_, ok := c.FindVehicle(id)
		return ok
	}), nil
}

func (r *CarrierRepository) any(match func(c *carrier.Carrier) bool) bool {
	r.uow.store.mu.RLock()
	defer r.uow.store.mu.RUnlock()

	for _, c := range r.view() {
		if match(c) {
			return true
		}
	}
	return false
}

// view overlays staged carriers on committed ones. The caller holds the store lock.
func (r *CarrierRepository) view() map[uuid.UUID]*carrier.Carrier {
	if !r.uow.inTx || len(r.uow.carriers) == 0 {
		return r.uow.store.carriers
	}
	merged := make(map[uuid.UUID]*carrier.Carrier, len(r.uow.store.carriers)+len(r.uow.carriers))
	for id, c := range r.uow.store.carriers {
		merged[id] = c
	}
	for id, c := range r.uow.carriers {
		merged[id] = c
	}
	return merged
}
