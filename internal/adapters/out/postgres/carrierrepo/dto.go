// Package carrierrepo persists the Carrier aggregate. A carrier row is stored
// together with its drivers and vehicles, which are separate tables keyed by
// carrier_id.
package carrierrepo

import (
	"github.com/google/uuid"

	"logistics/internal/core/domain/model/carrier"
	"logistics/internal/core/domain/model/kernel"
)

type CarrierDTO struct {
	ID          uuid.UUID    `gorm:"type:uuid;primaryKey"`
	Name        string       `gorm:"type:varchar(255);not null"`
	MCNumber    string       `gorm:"column:mc_number;type:varchar(8);not null;uniqueIndex"`
	MaxCapacity int          `gorm:"not null"`
	Drivers     []DriverDTO  `gorm:"foreignKey:CarrierID;constraint:OnDelete:CASCADE"`
	Vehicles    []VehicleDTO `gorm:"foreignKey:CarrierID;constraint:OnDelete:CASCADE"`
}

func (CarrierDTO) TableName() string {
	return "carriers"
}

type DriverDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CarrierID uuid.UUID `gorm:"type:uuid;not null;index"`
	FirstName string    `gorm:"type:varchar(100);not null"`
	LastName  string    `gorm:"type:varchar(100);not null"`
	Email     string    `gorm:"type:varchar(254);not null"`
	Phone     string    `gorm:"type:varchar(10)"`
}

func (DriverDTO) TableName() string {
	return "drivers"
}

type VehicleDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	CarrierID   uuid.UUID `gorm:"type:uuid;not null;index"`
	PlateNumber string    `gorm:"type:varchar(20);not null;uniqueIndex"`
}

func (VehicleDTO) TableName() string {
	return "vehicles"
}

func fromDomain(c *carrier.Carrier) CarrierDTO {
	dto := CarrierDTO{
		ID:          c.ID().Bytes(),
		Name:        c.Name(),
		MCNumber:    c.MCNumber(),
		MaxCapacity: c.MaxCapacity(),
	}

	for _, d := range c.Drivers() {
		dto.Drivers = append(dto.Drivers, DriverDTO{
			ID:        d.ID().Bytes(),
			CarrierID: dto.ID,
			FirstName: d.FirstName(),
			LastName:  d.LastName(),
			Email:     d.Email(),
			Phone:     d.Phone(),
		})
	}
	for _, v := range c.Vehicles() {
		dto.Vehicles = append(dto.Vehicles, VehicleDTO{
			ID:          v.ID().Bytes(),
			CarrierID:   dto.ID,
			PlateNumber: v.PlateNumber(),
		})
	}

	return dto
}

func toDomain(dto CarrierDTO) (*carrier.Carrier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	drivers := make([]*carrier.Driver, 0, len(dto.Drivers))
	for _, d := range dto.Drivers {
		driverID, idErr := kernel.UUIDFromBytes(d.ID[:])
		if idErr != nil {
			return nil, idErr
		}
		driver, driverErr := carrier.NewDriver(driverID, d.FirstName, d.LastName, d.Email, d.Phone)
		if driverErr != nil {
			return nil, driverErr
		}
		drivers = append(drivers, driver)
	}

	vehicles := make([]*carrier.Vehicle, 0, len(dto.Vehicles))
	for _, v := range dto.Vehicles {
		vehicleID, idErr := kernel.UUIDFromBytes(v.ID[:])
		if idErr != nil {
			return nil, idErr
		}
		vehicle, vehicleErr := carrier.NewVehicle(vehicleID, v.PlateNumber)
		if vehicleErr != nil {
			return nil, vehicleErr
		}
		vehicles = append(vehicles, vehicle)
	}

	return carrier.RestoreCarrier(id, dto.Name, dto.MCNumber, dto.MaxCapacity, drivers, vehicles)
}
