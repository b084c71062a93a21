package commands

import (
	"context"

	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/core/ports"
)

type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	CarrierRepoFactory interface {
		CarrierRepository() ports.CarrierRepository
	}

	ShipmentRepoFactory interface {
		ShipmentRepository() ports.ShipmentRepository
	}

	StatusEventRepoFactory interface {
		StatusEventRepository() ports.StatusEventRepository
	}

	EventTracker interface {
		CommittedEvents() []*shipment.StatusEvent
	}

	CarrierUoW interface {
		TxManager
		CarrierRepoFactory
	}

	CarrierUoWFactory interface {
		Create() CarrierUoW
	}

	UoW interface {
		TxManager
		CarrierRepoFactory
		ShipmentRepoFactory
		StatusEventRepoFactory
		EventTracker
	}

	UoWFactory interface {
		Create() UoW
	}
)
