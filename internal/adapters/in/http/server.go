package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"logistics/internal/core/application/lifecycle"
	"logistics/internal/core/domain/model/carrier"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/generated/servers"
)

// Engine is the part of the lifecycle engine served over HTTP.
type Engine interface {
	CreateCarrier(ctx context.Context, name, mcNumber string, maxCapacity int) (*carrier.Carrier, error)
	AddDriver(ctx context.Context, carrierID kernel.UUID, req lifecycle.DriverRequest) (*carrier.Driver, error)
	AddVehicle(ctx context.Context, carrierID kernel.UUID, plateNumber string) (*carrier.Vehicle, error)
	ReconfigureCapacity(ctx context.Context, carrierID kernel.UUID, maxCapacity int) (*carrier.Carrier, error)
	CreateShipment(ctx context.Context, req lifecycle.ShipmentRequest) (*shipment.Shipment, *shipment.StatusEvent, error)
	RecordEvent(ctx context.Context, shipmentID kernel.UUID, draft shipment.EventDraft) (*shipment.StatusEvent, error)
	GetShipment(ctx context.Context, shipmentID kernel.UUID) (*shipment.Shipment, error)
	GetHistory(ctx context.Context, shipmentID kernel.UUID) ([]*shipment.StatusEvent, error)
	CarrierActiveCount(ctx context.Context, carrierID kernel.UUID) (lifecycle.CapacityUsage, error)
	ListActiveShipments(ctx context.Context, carrierID kernel.UUID) ([]*shipment.Shipment, error)
}

// Server implements servers.ServerInterface on top of the lifecycle engine.
type Server struct {
	engine Engine
	log    *zap.Logger
}

var _ servers.ServerInterface = (*Server)(nil)

func NewServer(engine Engine, log *zap.Logger) *Server {
	return &Server{
		engine: engine,
		log:    log.With(zap.String("component", "http")),
	}
}

// CreateCarrier handles POST /api/v1/carriers.
func (s *Server) CreateCarrier(ctx echo.Context) error {
	var body servers.CreateCarrierJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return invalidBody(ctx)
	}

	c, err := s.engine.CreateCarrier(ctx.Request().Context(), body.Name, body.McNumber, body.MaxCapacity)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toCarrier(c))
}

// GetCarrierActiveCount handles GET /api/v1/carriers/{carrierId}/active-count.
func (s *Server) GetCarrierActiveCount(ctx echo.Context, carrierId servers.CarrierId) error {
	id, err := toKernelID("carrierId", carrierId)
	if err != nil {
		return s.fail(ctx, err)
	}

	usage, err := s.engine.CarrierActiveCount(ctx.Request().Context(), id)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, servers.CapacityUsage{
		CarrierId:   usage.CarrierID.Bytes(),
		ActiveCount: usage.Active,
		MaxCapacity: usage.MaxCapacity,
	})
}

// UpdateCarrierCapacity handles PUT /api/v1/carriers/{carrierId}/capacity.
func (s *Server) UpdateCarrierCapacity(ctx echo.Context, carrierId servers.CarrierId) error {
	id, err := toKernelID("carrierId", carrierId)
	if err != nil {
		return s.fail(ctx, err)
	}

	var body servers.UpdateCarrierCapacityJSONRequestBody
	if err = ctx.Bind(&body); err != nil {
		return invalidBody(ctx)
	}

	c, err := s.engine.ReconfigureCapacity(ctx.Request().Context(), id, body.MaxCapacity)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toCarrier(c))
}

// AddDriver handles POST /api/v1/carriers/{carrierId}/drivers.
func (s *Server) AddDriver(ctx echo.Context, carrierId servers.CarrierId) error {
	id, err := toKernelID("carrierId", carrierId)
	if err != nil {
		return s.fail(ctx, err)
	}

	var body servers.AddDriverJSONRequestBody
	if err = ctx.Bind(&body); err != nil {
		return invalidBody(ctx)
	}

	d, err := s.engine.AddDriver(ctx.Request().Context(), id, lifecycle.DriverRequest{
		FirstName: body.FirstName,
		LastName:  body.LastName,
		Email:     body.Email,
		Phone:     deref(body.Phone),
	})
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toDriver(d))
}

// ListActiveShipments handles GET /api/v1/carriers/{carrierId}/shipments/active.
func (s *Server) ListActiveShipments(ctx echo.Context, carrierId servers.CarrierId) error {
	id, err := toKernelID("carrierId", carrierId)
	if err != nil {
		return s.fail(ctx, err)
	}

	shipments, err := s.engine.ListActiveShipments(ctx.Request().Context(), id)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]servers.Shipment, len(shipments))
	for i, shp := range shipments {
		response[i] = toShipment(shp)
	}
	return ctx.JSON(http.StatusOK, response)
}

// AddVehicle handles POST /api/v1/carriers/{carrierId}/vehicles.
func (s *Server) AddVehicle(ctx echo.Context, carrierId servers.CarrierId) error {
	id, err := toKernelID("carrierId", carrierId)
	if err != nil {
		return s.fail(ctx, err)
	}

	var body servers.AddVehicleJSONRequestBody
	if err = ctx.Bind(&body); err != nil {
		return invalidBody(ctx)
	}

	v, err := s.engine.AddVehicle(ctx.Request().Context(), id, body.PlateNumber)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, servers.Vehicle{Id: v.ID().Bytes(), PlateNumber: v.PlateNumber()})
}

// CreateShipment handles POST /api/v1/shipments.
func (s *Server) CreateShipment(ctx echo.Context) error {
	var body servers.CreateShipmentJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return invalidBody(ctx)
	}

	req, err := toShipmentRequest(body)
	if err != nil {
		return s.fail(ctx, err)
	}

	shp, first, err := s.engine.CreateShipment(ctx.Request().Context(), req)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, servers.ShipmentRegistration{
		Shipment:     toShipment(shp),
		InitialEvent: toStatusEvent(first),
	})
}

// GetShipment handles GET /api/v1/shipments/{shipmentId}.
func (s *Server) GetShipment(ctx echo.Context, shipmentId servers.ShipmentId) error {
	id, err := toKernelID("shipmentId", shipmentId)
	if err != nil {
		return s.fail(ctx, err)
	}

	shp, err := s.engine.GetShipment(ctx.Request().Context(), id)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toShipment(shp))
}

// GetShipmentEvents handles GET /api/v1/shipments/{shipmentId}/events.
func (s *Server) GetShipmentEvents(ctx echo.Context, shipmentId servers.ShipmentId) error {
	id, err := toKernelID("shipmentId", shipmentId)
	if err != nil {
		return s.fail(ctx, err)
	}

	events, err := s.engine.GetHistory(ctx.Request().Context(), id)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]servers.StatusEvent, len(events))
	for i, e := range events {
		response[i] = toStatusEvent(e)
	}
	return ctx.JSON(http.StatusOK, response)
}

// RecordShipmentEvent handles POST /api/v1/shipments/{shipmentId}/events.
func (s *Server) RecordShipmentEvent(ctx echo.Context, shipmentId servers.ShipmentId) error {
	id, err := toKernelID("shipmentId", shipmentId)
	if err != nil {
		return s.fail(ctx, err)
	}

	var body servers.RecordShipmentEventJSONRequestBody
	if err = ctx.Bind(&body); err != nil {
		return invalidBody(ctx)
	}

	draft, err := toEventDraft(body)
	if err != nil {
		return s.fail(ctx, err)
	}

	e, err := s.engine.RecordEvent(ctx.Request().Context(), id, draft)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toStatusEvent(e))
}
