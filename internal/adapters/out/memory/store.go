package memory

import (
	"sync"

	"github.com/google/uuid"

	"logistics/internal/core/domain/model/carrier"
	"logistics/internal/core/domain/model/shipment"
)

// Store holds committed state. Aggregates are kept as private snapshots and
// cloned on every read so callers never share mutable state.
type Store struct {
	mu        sync.RWMutex
	carriers  map[uuid.UUID]*carrier.Carrier
	shipments map[uuid.UUID]*shipment.Shipment
	events    map[uuid.UUID][]*shipment.StatusEvent
	locks     *keyedLocks
}

func NewStore() *Store {
	return &Store{
		carriers:  make(map[uuid.UUID]*carrier.Carrier),
		shipments: make(map[uuid.UUID]*shipment.Shipment),
		events:    make(map[uuid.UUID][]*shipment.StatusEvent),
		locks:     newKeyedLocks(),
	}
}

func cloneCarrier(c *carrier.Carrier) (*carrier.Carrier, error) {
	return carrier.RestoreCarrier(c.ID(), c.Name(), c.MCNumber(), c.MaxCapacity(), c.Drivers(), c.Vehicles())
}

func cloneShipment(s *shipment.Shipment) (*shipment.Shipment, error) {
	return shipment.RestoreShipment(
		s.ID(),
		s.Origin(),
		s.Destination(),
		s.Assignment(),
		s.Schedule(),
		s.Status(),
		s.ActualPickup(),
		s.ActualDelivery(),
		s.LastEventAt(),
	)
}
