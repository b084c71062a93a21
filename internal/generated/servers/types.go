// Package servers holds the HTTP contract of the service: the request and
// response types, the echo server interface with its parameter-binding
// wrapper, and the embedded OpenAPI document. It follows the layout produced
// by oapi-codegen for the echo target and must be kept in step with openapi.yaml.
package servers

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Defines values for ShipmentStatus.
const (
	ShipmentStatusCancelled ShipmentStatus = "cancelled"
	ShipmentStatusDelayed   ShipmentStatus = "delayed"
	ShipmentStatusDelivered ShipmentStatus = "delivered"
	ShipmentStatusInTransit ShipmentStatus = "in_transit"
	ShipmentStatusPending   ShipmentStatus = "pending"
)

// Address defines model for Address.
type Address struct {
	City       string  `json:"city"`
	Country    *string `json:"country,omitempty"`
	Line1      string  `json:"line1"`
	Line2      *string `json:"line2,omitempty"`
	PostalCode string  `json:"postalCode"`
	State      string  `json:"state"`
}

// CapacityUpdate defines model for CapacityUpdate.
type CapacityUpdate struct {
	MaxCapacity int `json:"maxCapacity"`
}

// CapacityUsage defines model for CapacityUsage.
type CapacityUsage struct {
	ActiveCount int                `json:"activeCount"`
	CarrierId   openapi_types.UUID `json:"carrierId"`
	MaxCapacity int                `json:"maxCapacity"`
}

// Carrier defines model for Carrier.
type Carrier struct {
	Drivers     []Driver           `json:"drivers"`
	Id          openapi_types.UUID `json:"id"`
	MaxCapacity int                `json:"maxCapacity"`
	McNumber    string             `json:"mcNumber"`
	Name        string             `json:"name"`
	Vehicles    []Vehicle          `json:"vehicles"`
}

// Driver defines model for Driver.
type Driver struct {
	Email     string             `json:"email"`
	FirstName string             `json:"firstName"`
	Id        openapi_types.UUID `json:"id"`
	LastName  string             `json:"lastName"`
	Phone     *string            `json:"phone,omitempty"`
}

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// GeoPoint defines model for GeoPoint.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// InitialEvent defines model for InitialEvent.
type InitialEvent struct {
	EventTimestamp *time.Time `json:"eventTimestamp,omitempty"`
	Notes          *string    `json:"notes,omitempty"`
	Source         *string    `json:"source,omitempty"`
}

// Location defines model for Location.
type Location struct {
	Address Address   `json:"address"`
	Name    string    `json:"name"`
	Point   *GeoPoint `json:"point,omitempty"`
}

// NewCarrier defines model for NewCarrier.
type NewCarrier struct {
	MaxCapacity int    `json:"maxCapacity"`
	McNumber    string `json:"mcNumber"`
	Name        string `json:"name"`
}

// NewDriver defines model for NewDriver.
type NewDriver struct {
	Email     string  `json:"email"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Phone     *string `json:"phone,omitempty"`
}

// NewShipment defines model for NewShipment.
type NewShipment struct {
	CarrierId         openapi_types.UUID  `json:"carrierId"`
	Destination       Location            `json:"destination"`
	DriverId          openapi_types.UUID  `json:"driverId"`
	Id                *openapi_types.UUID `json:"id,omitempty"`
	InitialEvent      *InitialEvent       `json:"initialEvent,omitempty"`
	Origin            Location            `json:"origin"`
	ScheduledDelivery time.Time           `json:"scheduledDelivery"`
	ScheduledPickup   time.Time           `json:"scheduledPickup"`
	VehicleId         openapi_types.UUID  `json:"vehicleId"`
}

// NewStatusEvent defines model for NewStatusEvent.
type NewStatusEvent struct {
	EventTimestamp *time.Time     `json:"eventTimestamp,omitempty"`
	Notes          *string        `json:"notes,omitempty"`
	Source         *string        `json:"source,omitempty"`
	Status         ShipmentStatus `json:"status"`
}

// NewVehicle defines model for NewVehicle.
type NewVehicle struct {
	PlateNumber string `json:"plateNumber"`
}

// Shipment defines model for Shipment.
type Shipment struct {
	ActualDelivery    *time.Time         `json:"actualDelivery,omitempty"`
	ActualPickup      *time.Time         `json:"actualPickup,omitempty"`
	CarrierId         openapi_types.UUID `json:"carrierId"`
	Destination       Location           `json:"destination"`
	DriverId          openapi_types.UUID `json:"driverId"`
	Id                openapi_types.UUID `json:"id"`
	LastEventAt       time.Time          `json:"lastEventAt"`
	Origin            Location           `json:"origin"`
	ScheduledDelivery time.Time          `json:"scheduledDelivery"`
	ScheduledPickup   time.Time          `json:"scheduledPickup"`
	Status            ShipmentStatus     `json:"status"`
	VehicleId         openapi_types.UUID `json:"vehicleId"`
}

// ShipmentRegistration defines model for ShipmentRegistration.
type ShipmentRegistration struct {
	InitialEvent StatusEvent `json:"initialEvent"`
	Shipment     Shipment    `json:"shipment"`
}

// ShipmentStatus defines model for ShipmentStatus.
type ShipmentStatus string

// StatusEvent defines model for StatusEvent.
type StatusEvent struct {
	EventTimestamp time.Time          `json:"eventTimestamp"`
	Id             openapi_types.UUID `json:"id"`
	Notes          *string            `json:"notes,omitempty"`
	OutOfOrder     bool               `json:"outOfOrder"`
	RecordedAt     time.Time          `json:"recordedAt"`
	Sequence       int                `json:"sequence"`
	Source         string             `json:"source"`
	ShipmentId     openapi_types.UUID `json:"shipmentId"`
	Status         ShipmentStatus     `json:"status"`
}

// Vehicle defines model for Vehicle.
type Vehicle struct {
	Id          openapi_types.UUID `json:"id"`
	PlateNumber string             `json:"plateNumber"`
}

// CarrierId defines model for CarrierId.
type CarrierId = openapi_types.UUID

// ShipmentId defines model for ShipmentId.
type ShipmentId = openapi_types.UUID

// CreateCarrierJSONRequestBody defines body for CreateCarrier for application/json ContentType.
type CreateCarrierJSONRequestBody = NewCarrier

// UpdateCarrierCapacityJSONRequestBody defines body for UpdateCarrierCapacity for application/json ContentType.
type UpdateCarrierCapacityJSONRequestBody = CapacityUpdate

// AddDriverJSONRequestBody defines body for AddDriver for application/json ContentType.
type AddDriverJSONRequestBody = NewDriver

// AddVehicleJSONRequestBody defines body for AddVehicle for application/json ContentType.
type AddVehicleJSONRequestBody = NewVehicle

// CreateShipmentJSONRequestBody defines body for CreateShipment for application/json ContentType.
type CreateShipmentJSONRequestBody = NewShipment

// RecordShipmentEventJSONRequestBody defines body for RecordShipmentEvent for application/json ContentType.
type RecordShipmentEventJSONRequestBody = NewStatusEvent
