package eventrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/pkg/errs"
)

// GormStatusEventRepository implements ports.StatusEventRepository using GORM.
type GormStatusEventRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormStatusEventRepository(db *gorm.DB, tracker aggregateTracker) *GormStatusEventRepository {
	return &GormStatusEventRepository{
		db:      db,
		tracker: tracker,
	}
}

// Append inserts one event. Events are never updated or deleted.
func (r *GormStatusEventRepository) Append(ctx context.Context, event *shipment.StatusEvent) error {
	if err := event.Validate(); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)

	var shipments int64
	if err := db.Table("shipments").Where("id = ?", event.ShipmentID().Bytes()).Count(&shipments).Error; err != nil {
		return err
	}
	if shipments == 0 {
		return errs.NewObjectNotFoundError("shipment", event.ShipmentID())
	}

	dto := fromDomain(event)
	if err := db.Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewDuplicateEventError(
				event.ShipmentID().String(), event.Status().String(), event.OccurredAt())
		}
		return err
	}

	r.tracker.TrackAggregate(event.ID(), event)
	return nil
}

func (r *GormStatusEventRepository) ListByShipment(
	ctx context.Context,
	shipmentID kernel.UUID,
) ([]*shipment.StatusEvent, error) {
	if err := shipmentID.Validate(); err != nil {
		return nil, err
	}

	var dtos []StatusEventDTO
	err := r.db.WithContext(ctx).
		Where("shipment_id = ?", shipmentID.Bytes()).
		Order("event_timestamp, sequence").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	events := make([]*shipment.StatusEvent, 0, len(dtos))
	for _, dto := range dtos {
		e, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		events = append(events, e)
	}
	return events, nil
}
