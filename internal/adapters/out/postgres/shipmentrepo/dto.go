// Package shipmentrepo maps the Shipment aggregate to the shipments table.
// Origin and destination are embedded columns; status is stored by name.
package shipmentrepo

import (
	"time"

	"github.com/google/uuid"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
)

type ShipmentDTO struct {
	ID                uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Origin            LocationDTO `gorm:"embedded;embeddedPrefix:origin_"`
	Destination       LocationDTO `gorm:"embedded;embeddedPrefix:destination_"`
	CarrierID         uuid.UUID   `gorm:"type:uuid;not null;index:idx_shipments_carrier_status,priority:1"`
	DriverID          uuid.UUID   `gorm:"type:uuid;not null"`
	VehicleID         uuid.UUID   `gorm:"type:uuid;not null"`
	Status            string      `gorm:"type:varchar(20);not null;index:idx_shipments_carrier_status,priority:2"`
	ScheduledPickup   time.Time   `gorm:"not null"`
	ScheduledDelivery time.Time   `gorm:"not null;index"`
	ActualPickup      *time.Time
	ActualDelivery    *time.Time
	LastEventAt       time.Time `gorm:"not null"`
}

func (ShipmentDTO) TableName() string {
	return "shipments"
}

type LocationDTO struct {
	Name         string   `gorm:"type:varchar(255);not null"`
	AddressLine1 string   `gorm:"type:varchar(255);not null"`
	AddressLine2 string   `gorm:"type:varchar(255)"`
	City         string   `gorm:"type:varchar(100);not null"`
	State        string   `gorm:"type:varchar(50);not null"`
	PostalCode   string   `gorm:"type:varchar(20);not null"`
	Country      string   `gorm:"type:varchar(2);not null"`
	Latitude     *float64 `gorm:"type:double precision"`
	Longitude    *float64 `gorm:"type:double precision"`
}

func fromDomain(s *shipment.Shipment) ShipmentDTO {
	a := s.Assignment()
	return ShipmentDTO{
		ID:                s.ID().Bytes(),
		Origin:            locationFromDomain(s.Origin()),
		Destination:       locationFromDomain(s.Destination()),
		CarrierID:         a.CarrierID.Bytes(),
		DriverID:          a.DriverID.Bytes(),
		VehicleID:         a.VehicleID.Bytes(),
		Status:            s.Status().String(),
		ScheduledPickup:   s.Schedule().Pickup(),
		ScheduledDelivery: s.Schedule().Delivery(),
		ActualPickup:      s.ActualPickup(),
		ActualDelivery:    s.ActualDelivery(),
		LastEventAt:       s.LastEventAt(),
	}
}

func locationFromDomain(l kernel.Location) LocationDTO {
	addr := l.Address()
	dto := LocationDTO{
		Name:         l.Name(),
		AddressLine1: addr.Line1,
		AddressLine2: addr.Line2,
		City:         addr.City,
		State:        addr.State,
		PostalCode:   addr.PostalCode,
		Country:      addr.Country,
	}
	if p := l.Point(); p != nil {
		lat, lng := p.Latitude(), p.Longitude()
		dto.Latitude = &lat
		dto.Longitude = &lng
	}
	return dto
}

func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var assignment shipment.Assignment
	if assignment.CarrierID, err = kernel.UUIDFromBytes(dto.CarrierID[:]); err != nil {
		return nil, err
	}
	if assignment.DriverID, err = kernel.UUIDFromBytes(dto.DriverID[:]); err != nil {
		return nil, err
	}
	if assignment.VehicleID, err = kernel.UUIDFromBytes(dto.VehicleID[:]); err != nil {
		return nil, err
	}

	origin, err := locationToDomain(dto.Origin)
	if err != nil {
		return nil, err
	}
	destination, err := locationToDomain(dto.Destination)
	if err != nil {
		return nil, err
	}

	schedule, err := shipment.NewSchedule(dto.ScheduledPickup, dto.ScheduledDelivery)
	if err != nil {
		return nil, err
	}

	status, err := shipment.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return shipment.RestoreShipment(
		id,
		origin,
		destination,
		assignment,
		schedule,
		status,
		utcPtr(dto.ActualPickup),
		utcPtr(dto.ActualDelivery),
		dto.LastEventAt.UTC(),
	)
}

func locationToDomain(dto LocationDTO) (kernel.Location, error) {
	var point *kernel.GeoPoint
	if dto.Latitude != nil && dto.Longitude != nil {
		p, err := kernel.NewGeoPoint(*dto.Latitude, *dto.Longitude)
		if err != nil {
			return kernel.Location{}, err
		}
		point = &p
	}

	return kernel.NewLocation(dto.Name, kernel.Address{
		Line1:      dto.AddressLine1,
		Line2:      dto.AddressLine2,
		City:       dto.City,
		State:      dto.State,
		PostalCode: dto.PostalCode,
		Country:    dto.Country,
	}, point)
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
