// Package eventrepo stores the append-only status event log. Uniqueness of
// (shipment, sequence) and (shipment, status, event timestamp) is enforced by
// the database, so concurrent duplicates lose at insert time.
package eventrepo

import (
	"time"

	"github.com/google/uuid"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
)

type StatusEventDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShipmentID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_status_events_sequence,priority:1;uniqueIndex:ux_status_events_status_at,priority:1;index:idx_status_events_timeline,priority:1"`
	Sequence       int       `gorm:"not null;uniqueIndex:ux_status_events_sequence,priority:2;index:idx_status_events_timeline,priority:3"`
	Status         string    `gorm:"type:varchar(20);not null;uniqueIndex:ux_status_events_status_at,priority:2"`
	EventTimestamp time.Time `gorm:"not null;uniqueIndex:ux_status_events_status_at,priority:3;index:idx_status_events_timeline,priority:2"`
	RecordedAt     time.Time `gorm:"not null"`
	Source         string    `gorm:"type:varchar(100);not null"`
	Notes          string    `gorm:"type:varchar(500)"`
	OutOfOrder     bool      `gorm:"not null;default:false"`
}

func (StatusEventDTO) TableName() string {
	return "status_events"
}

func fromDomain(e *shipment.StatusEvent) StatusEventDTO {
	return StatusEventDTO{
		ID:             e.ID().Bytes(),
		ShipmentID:     e.ShipmentID().Bytes(),
		Sequence:       e.Sequence(),
		Status:         e.Status().String(),
		EventTimestamp: e.OccurredAt(),
		RecordedAt:     e.RecordedAt(),
		Source:         e.Source(),
		Notes:          e.Notes(),
		OutOfOrder:     e.OutOfOrder(),
	}
}

func toDomain(dto StatusEventDTO) (*shipment.StatusEvent, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	shipmentID, err := kernel.UUIDFromBytes(dto.ShipmentID[:])
	if err != nil {
		return nil, err
	}
	status, err := shipment.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return shipment.RestoreStatusEvent(
		id,
		shipmentID,
		status,
		dto.EventTimestamp.UTC(),
		dto.RecordedAt.UTC(),
		dto.Sequence,
		dto.Source,
		dto.Notes,
		dto.OutOfOrder,
	)
}
