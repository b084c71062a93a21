package servers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Register a carrier
	// (POST /api/v1/carriers)
	CreateCarrier(ctx echo.Context) error
	// Active shipment count of a carrier
	// (GET /api/v1/carriers/{carrierId}/active-count)
	GetCarrierActiveCount(ctx echo.Context, carrierId CarrierId) error
	// Change the maximum number of active shipments
	// (PUT /api/v1/carriers/{carrierId}/capacity)
	UpdateCarrierCapacity(ctx echo.Context, carrierId CarrierId) error
	// Add a driver to a carrier
	// (POST /api/v1/carriers/{carrierId}/drivers)
	AddDriver(ctx echo.Context, carrierId CarrierId) error
	// Active shipments of a carrier ordered by scheduled pickup
	// (GET /api/v1/carriers/{carrierId}/shipments/active)
	ListActiveShipments(ctx echo.Context, carrierId CarrierId) error
	// Add a vehicle to a carrier
	// (POST /api/v1/carriers/{carrierId}/vehicles)
	AddVehicle(ctx echo.Context, carrierId CarrierId) error
	// Register a shipment in pending status
	// (POST /api/v1/shipments)
	CreateShipment(ctx echo.Context) error
	// Current state of a shipment
	// (GET /api/v1/shipments/{shipmentId})
	GetShipment(ctx echo.Context, shipmentId ShipmentId) error
	// Status history ordered by event timestamp, then sequence
	// (GET /api/v1/shipments/{shipmentId}/events)
	GetShipmentEvents(ctx echo.Context, shipmentId ShipmentId) error
	// Append a status event
	// (POST /api/v1/shipments/{shipmentId}/events)
	RecordShipmentEvent(ctx echo.Context, shipmentId ShipmentId) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// CreateCarrier converts echo context to params.
func (w *ServerInterfaceWrapper) CreateCarrier(ctx echo.Context) error {
	return w.Handler.CreateCarrier(ctx)
}

// GetCarrierActiveCount converts echo context to params.
func (w *ServerInterfaceWrapper) GetCarrierActiveCount(ctx echo.Context) error {
	carrierId, err := bindUUIDPathParam(ctx, "carrierId")
	if err != nil {
		return err
	}
	return w.Handler.GetCarrierActiveCount(ctx, carrierId)
}

// UpdateCarrierCapacity converts echo context to params.
func (w *ServerInterfaceWrapper) UpdateCarrierCapacity(ctx echo.Context) error {
	carrierId, err := bindUUIDPathParam(ctx, "carrierId")
	if err != nil {
		return err
	}
	return w.Handler.UpdateCarrierCapacity(ctx, carrierId)
}

// AddDriver converts echo context to params.
func (w *ServerInterfaceWrapper) AddDriver(ctx echo.Context) error {
	carrierId, err := bindUUIDPathParam(ctx, "carrierId")
	if err != nil {
		return err
	}
	return w.Handler.AddDriver(ctx, carrierId)
}

// ListActiveShipments converts echo context to params.
func (w *ServerInterfaceWrapper) ListActiveShipments(ctx echo.Context) error {
	carrierId, err := bindUUIDPathParam(ctx, "carrierId")
	if err != nil {
		return err
	}
	return w.Handler.ListActiveShipments(ctx, carrierId)
}

// AddVehicle converts echo context to params.
func (w *ServerInterfaceWrapper) AddVehicle(ctx echo.Context) error {
	carrierId, err := bindUUIDPathParam(ctx, "carrierId")
	if err != nil {
		return err
	}
	return w.Handler.AddVehicle(ctx, carrierId)
}

// CreateShipment converts echo context to params.
func (w *ServerInterfaceWrapper) CreateShipment(ctx echo.Context) error {
	return w.Handler.CreateShipment(ctx)
}

// GetShipment converts echo context to params.
func (w *ServerInterfaceWrapper) GetShipment(ctx echo.Context) error {
	shipmentId, err := bindUUIDPathParam(ctx, "shipmentId")
	if err != nil {
		return err
	}
	return w.Handler.GetShipment(ctx, shipmentId)
}

// GetShipmentEvents converts echo context to params.
func (w *ServerInterfaceWrapper) GetShipmentEvents(ctx echo.Context) error {
	shipmentId, err := bindUUIDPathParam(ctx, "shipmentId")
	if err != nil {
		return err
	}
	return w.Handler.GetShipmentEvents(ctx, shipmentId)
}

// RecordShipmentEvent converts echo context to params.
func (w *ServerInterfaceWrapper) RecordShipmentEvent(ctx echo.Context) error {
	shipmentId, err := bindUUIDPathParam(ctx, "shipmentId")
	if err != nil {
		return err
	}
	return w.Handler.RecordShipmentEvent(ctx, shipmentId)
}

func bindUUIDPathParam(ctx echo.Context, name string) (openapi_types.UUID, error) {
	var value openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &value,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return value, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return value, nil
}

// EchoRouter is the subset of echo routing used by RegisterHandlers; both
// *echo.Echo and *echo.Group satisfy it.
type EchoRouter interface {
	CONNECT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	HEAD(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	OPTIONS(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	TRACE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers handlers, and prepends BaseURL to the
// paths, so that the paths can be served under a prefix.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.POST(baseURL+"/api/v1/carriers", wrapper.CreateCarrier)
	router.GET(baseURL+"/api/v1/carriers/:carrierId/active-count", wrapper.GetCarrierActiveCount)
	router.PUT(baseURL+"/api/v1/carriers/:carrierId/capacity", wrapper.UpdateCarrierCapacity)
	router.POST(baseURL+"/api/v1/carriers/:carrierId/drivers", wrapper.AddDriver)
	router.GET(baseURL+"/api/v1/carriers/:carrierId/shipments/active", wrapper.ListActiveShipments)
	router.POST(baseURL+"/api/v1/carriers/:carrierId/vehicles", wrapper.AddVehicle)
	router.POST(baseURL+"/api/v1/shipments", wrapper.CreateShipment)
	router.GET(baseURL+"/api/v1/shipments/:shipmentId", wrapper.GetShipment)
	router.GET(baseURL+"/api/v1/shipments/:shipmentId/events", wrapper.GetShipmentEvents)
	router.POST(baseURL+"/api/v1/shipments/:shipmentId/events", wrapper.RecordShipmentEvent)
}
