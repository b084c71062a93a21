package queries

import "logistics/internal/core/ports"

type (
	// ReadUoW hands out repositories outside of a transaction; they see
	// committed state only.
	ReadUoW interface {
		CarrierRepository() ports.CarrierRepository
		ShipmentRepository() ports.ShipmentRepository
		StatusEventRepository() ports.StatusEventRepository
	}

	ReadUoWFactory interface {
		Create() ReadUoW
	}
)
