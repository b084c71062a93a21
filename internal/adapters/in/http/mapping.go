package http

import (
	openapi_types "github.com/oapi-codegen/runtime/types"

	"logistics/internal/core/application/lifecycle"
	"logistics/internal/core/domain/model/carrier"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/generated/servers"
	"logistics/internal/pkg/errs"
)

func toKernelID(param string, id openapi_types.UUID) (kernel.UUID, error) {
	kid, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(param, err)
	}
	return kid, nil
}

func toShipmentRequest(body servers.NewShipment) (lifecycle.ShipmentRequest, error) {
	var req lifecycle.ShipmentRequest
	var err error

	if body.Id != nil {
		if req.ID, err = toKernelID("id", *body.Id); err != nil {
			return req, err
		}
	}
	if req.Assignment.CarrierID, err = toKernelID("carrierId", body.CarrierId); err != nil {
		return req, err
	}
	if req.Assignment.DriverID, err = toKernelID("driverId", body.DriverId); err != nil {
		return req, err
	}
	if req.Assignment.VehicleID, err = toKernelID("vehicleId", body.VehicleId); err != nil {
		return req, err
	}
	if req.Origin, err = toLocation(body.Origin); err != nil {
		return req, errs.NewValueIsInvalidErrorWithCause("origin", err)
	}
	if req.Destination, err = toLocation(body.Destination); err != nil {
		return req, errs.NewValueIsInvalidErrorWithCause("destination", err)
	}

	req.ScheduledPickup = body.ScheduledPickup
	req.ScheduledDelivery = body.ScheduledDelivery

	if initial := body.InitialEvent; initial != nil {
		if initial.EventTimestamp != nil {
			req.InitialEventAt = *initial.EventTimestamp
		}
		req.Source = deref(initial.Source)
		req.Notes = deref(initial.Notes)
	}

	return req, nil
}

func toLocation(l servers.Location) (kernel.Location, error) {
	var point *kernel.GeoPoint
	if l.Point != nil {
		p, err := kernel.NewGeoPoint(l.Point.Latitude, l.Point.Longitude)
		if err != nil {
			return kernel.Location{}, err
		}
		point = &p
	}

	return kernel.NewLocation(l.Name, kernel.Address{
		Line1:      l.Address.Line1,
		Line2:      deref(l.Address.Line2),
		City:       l.Address.City,
		State:      l.Address.State,
		PostalCode: l.Address.PostalCode,
		Country:    deref(l.Address.Country),
	}, point)
}

func toEventDraft(body servers.NewStatusEvent) (shipment.EventDraft, error) {
	status, err := shipment.ParseStatus(string(body.Status))
	if err != nil {
		return shipment.EventDraft{}, err
	}

	draft := shipment.EventDraft{
		Status: status,
		Source: deref(body.Source),
		Notes:  deref(body.Notes),
	}
	if body.EventTimestamp != nil {
		draft.OccurredAt = *body.EventTimestamp
	}
	return draft, nil
}

func toCarrier(c *carrier.Carrier) servers.Carrier {
	drivers := make([]servers.Driver, 0, len(c.Drivers()))
	for _, d := range c.Drivers() {
		drivers = append(drivers, toDriver(d))
	}
	vehicles := make([]servers.Vehicle, 0, len(c.Vehicles()))
	for _, v := range c.Vehicles() {
		vehicles = append(vehicles, servers.Vehicle{Id: v.ID().Bytes(), PlateNumber: v.PlateNumber()})
	}

	return servers.Carrier{
		Id:          c.ID().Bytes(),
		Name:        c.Name(),
		McNumber:    c.MCNumber(),
		MaxCapacity: c.MaxCapacity(),
		Drivers:     drivers,
		Vehicles:    vehicles,
	}
}

func toDriver(d *carrier.Driver) servers.Driver {
	return servers.Driver{
		Id:        d.ID().Bytes(),
		FirstName: d.FirstName(),
		LastName:  d.LastName(),
		Email:     d.Email(),
		Phone:     optional(d.Phone()),
	}
}

func toShipment(s *shipment.Shipment) servers.Shipment {
	a := s.Assignment()
	return servers.Shipment{
		Id:                s.ID().Bytes(),
		Origin:            fromLocation(s.Origin()),
		Destination:       fromLocation(s.Destination()),
		CarrierId:         a.CarrierID.Bytes(),
		DriverId:          a.DriverID.Bytes(),
		VehicleId:         a.VehicleID.Bytes(),
		Status:            servers.ShipmentStatus(s.Status().String()),
		ScheduledPickup:   s.Schedule().Pickup(),
		ScheduledDelivery: s.Schedule().Delivery(),
		ActualPickup:      s.ActualPickup(),
		ActualDelivery:    s.ActualDelivery(),
		LastEventAt:       s.LastEventAt(),
	}
}

func fromLocation(l kernel.Location) servers.Location {
	addr := l.Address()
	loc := servers.Location{
		Name: l.Name(),
		Address: servers.Address{
			Line1:      addr.Line1,
			Line2:      optional(addr.Line2),
			City:       addr.City,
			State:      addr.State,
			PostalCode: addr.PostalCode,
			Country:    optional(addr.Country),
		},
	}
	if p := l.Point(); p != nil {
		loc.Point = &servers.GeoPoint{Latitude: p.Latitude(), Longitude: p.Longitude()}
	}
	return loc
}

func toStatusEvent(e *shipment.StatusEvent) servers.StatusEvent {
	return servers.StatusEvent{
		Id:             e.ID().Bytes(),
		ShipmentId:     e.ShipmentID().Bytes(),
		Status:         servers.ShipmentStatus(e.Status().String()),
		EventTimestamp: e.OccurredAt(),
		RecordedAt:     e.RecordedAt(),
		Sequence:       e.Sequence(),
		Source:         e.Source(),
		Notes:          optional(e.Notes()),
		OutOfOrder:     e.OutOfOrder(),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
