// Package lifecycle is the single entry point for shipment lifecycle
// operations. Engine wires the command and query handlers over one storage
// backend and exposes them as plain methods to the HTTP adapter and the jobs.
package lifecycle

import (
	"context"
	"slices"
	"time"

	"go.uber.org/zap"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/carrier"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/core/domain/services"
	"logistics/internal/core/ports"
)

// ShipmentRequest describes a shipment to register. A zero ID is replaced by
// a fresh one; a zero InitialEventAt means "now".
type ShipmentRequest struct {
	ID                kernel.UUID
	Origin            kernel.Location
	Destination       kernel.Location
	Assignment        shipment.Assignment
	ScheduledPickup   time.Time
	ScheduledDelivery time.Time

	InitialEventAt time.Time
	Source         string
	Notes          string
}

type DriverRequest struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// CapacityUsage is a carrier's derived active count next to its limit.
type CapacityUsage struct {
	CarrierID   kernel.UUID
	Active      int
	MaxCapacity int
}

type Engine struct {
	clock ports.Clock

	createCarrier       commands.CreateCarrierCommandHandler
	addDriver           commands.AddDriverCommandHandler
	addVehicle          commands.AddVehicleCommandHandler
	reconfigureCapacity commands.ReconfigureCapacityCommandHandler
	createShipment      commands.CreateShipmentCommandHandler
	recordEvent         commands.RecordStatusEventCommandHandler
	flagOverdue         commands.FlagOverdueShipmentsCommandHandler

	getShipment   queries.GetShipmentQueryHandler
	getHistory    queries.GetShipmentHistoryQueryHandler
	activeCount   queries.GetCarrierActiveCountQueryHandler
	capacityUsage queries.GetCapacityUsageQueryHandler
	listActive    queries.ListActiveShipmentsQueryHandler
}

func NewEngine(
	uowFactory ports.UnitOfWorkFactory,
	clock ports.Clock,
	policy shipment.OrderingPolicy,
	publisher ports.StatusEventPublisher,
	metrics ports.LifecycleMetrics,
	log *zap.Logger,
) *Engine {
	var uows commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return uowFactory.Create()
	})
	var carrierUoWs commands.CarrierUoWFactory = FuncCarrierUoWFactory(func() commands.CarrierUoW {
		return uowFactory.Create()
	})
	var readUoWs queries.ReadUoWFactory = FuncReadUoWFactory(func() queries.ReadUoW {
		return uowFactory.Create()
	})
	tracker := services.NewCapacityTracker()

	e := &Engine{
		clock:               clock,
		createCarrier:       commands.NewCreateCarrierCommandHandler(carrierUoWs),
		addDriver:           commands.NewAddDriverCommandHandler(carrierUoWs),
		addVehicle:          commands.NewAddVehicleCommandHandler(carrierUoWs),
		reconfigureCapacity: commands.NewReconfigureCapacityCommandHandler(carrierUoWs),
		createShipment:      commands.NewCreateShipmentCommandHandler(uows, tracker, clock, publisher, metrics, log),
		recordEvent: commands.NewRecordStatusEventCommandHandler(
			uows, tracker, clock, policy, publisher, metrics, log),
		getShipment:   queries.NewGetShipmentQueryHandler(readUoWs),
		getHistory:    queries.NewGetShipmentHistoryQueryHandler(readUoWs),
		activeCount:   queries.NewGetCarrierActiveCountQueryHandler(readUoWs),
		capacityUsage: queries.NewGetCapacityUsageQueryHandler(readUoWs),
		listActive:    queries.NewListActiveShipmentsQueryHandler(readUoWs),
	}
	e.flagOverdue = commands.NewFlagOverdueShipmentsCommandHandler(uows, &e.recordEvent, log)

	return e
}

func (e *Engine) CreateCarrier(ctx context.Context, name, mcNumber string, maxCapacity int) (*carrier.Carrier, error) {
	cmd, err := commands.NewCreateCarrierCommand(kernel.NewUUID(), name, mcNumber, maxCapacity)
	if err != nil {
		return nil, err
	}
	return e.createCarrier.Handle(ctx, cmd)
}

func (e *Engine) AddDriver(ctx context.Context, carrierID kernel.UUID, req DriverRequest) (*carrier.Driver, error) {
	cmd, err := commands.NewAddDriverCommand(carrierID, req.FirstName, req.LastName, req.Email, req.Phone)
	if err != nil {
		return nil, err
	}
	return e.addDriver.Handle(ctx, cmd)
}

func (e *Engine) AddVehicle(ctx context.Context, carrierID kernel.UUID, plateNumber string) (*carrier.Vehicle, error) {
	cmd, err := commands.NewAddVehicleCommand(carrierID, plateNumber)
	if err != nil {
		return nil, err
	}
	return e.addVehicle.Handle(ctx, cmd)
}

// ReconfigureCapacity changes a carrier's limit. Lowering it below the current
// active count only blocks further activations.
func (e *Engine) ReconfigureCapacity(ctx context.Context, carrierID kernel.UUID, maxCapacity int) (*carrier.Carrier, error) {
	cmd, err := commands.NewReconfigureCapacityCommand(carrierID, maxCapacity)
	if err != nil {
		return nil, err
	}
	return e.reconfigureCapacity.Handle(ctx, cmd)
}

// CreateShipment registers a shipment in pending status with its initial event.
func (e *Engine) CreateShipment(ctx context.Context, req ShipmentRequest) (*shipment.Shipment, *shipment.StatusEvent, error) {
	id := req.ID
	if id.Validate() != nil {
		id = kernel.NewUUID()
	}

	cmd, err := commands.NewCreateShipmentCommand(
		id,
		req.Origin,
		req.Destination,
		req.Assignment,
		req.ScheduledPickup,
		req.ScheduledDelivery,
	)
	if err != nil {
		return nil, nil, err
	}

	return e.createShipment.Handle(ctx, cmd.WithInitialEvent(req.InitialEventAt, req.Source, req.Notes))
}

// RecordEvent appends one status event. A zero draft.OccurredAt means "now".
func (e *Engine) RecordEvent(
	ctx context.Context,
	shipmentID kernel.UUID,
	draft shipment.EventDraft,
) (*shipment.StatusEvent, error) {
	cmd, err := commands.NewRecordStatusEventCommand(shipmentID, draft.Status, draft.OccurredAt, draft.Source, draft.Notes)
	if err != nil {
		return nil, err
	}
	return e.recordEvent.Handle(ctx, cmd)
}

func (e *Engine) GetShipment(ctx context.Context, shipmentID kernel.UUID) (*shipment.Shipment, error) {
	query, err := queries.NewGetShipmentQuery(shipmentID)
	if err != nil {
		return nil, err
	}
	resp, err := e.getShipment.Handle(ctx, query)
	if err != nil {
		return nil, err
	}
	return resp.Shipment, nil
}

// GetHistory returns all events of a shipment ordered by event timestamp, then sequence.
func (e *Engine) GetHistory(ctx context.Context, shipmentID kernel.UUID) ([]*shipment.StatusEvent, error) {
	query, err := queries.NewGetShipmentHistoryQuery(shipmentID)
	if err != nil {
		return nil, err
	}
	resp, err := e.getHistory.Handle(ctx, query)
	if err != nil {
		return nil, err
	}
	return slices.Collect(resp.Events), nil
}

func (e *Engine) CarrierActiveCount(ctx context.Context, carrierID kernel.UUID) (CapacityUsage, error) {
	query, err := queries.NewGetCarrierActiveCountQuery(carrierID)
	if err != nil {
		return CapacityUsage{}, err
	}
	resp, err := e.activeCount.Handle(ctx, query)
	if err != nil {
		return CapacityUsage{}, err
	}
	return CapacityUsage(resp), nil
}

// CapacityUsage reports every carrier, ordered by name.
func (e *Engine) CapacityUsage(ctx context.Context) ([]CapacityUsage, error) {
	resp, err := e.capacityUsage.Handle(ctx, queries.NewGetCapacityUsageQuery())
	if err != nil {
		return nil, err
	}

	out := make([]CapacityUsage, 0, len(resp.Carriers))
	for _, c := range resp.Carriers {
		out = append(out, CapacityUsage(c))
	}
	return out, nil
}

// ListActiveShipments returns the carrier's active shipments ordered by scheduled pickup.
func (e *Engine) ListActiveShipments(ctx context.Context, carrierID kernel.UUID) ([]*shipment.Shipment, error) {
	query, err := queries.NewListActiveShipmentsQuery(carrierID)
	if err != nil {
		return nil, err
	}
	resp, err := e.listActive.Handle(ctx, query)
	if err != nil {
		return nil, err
	}
	return resp.Shipments, nil
}

// FlagOverdue records a delayed event on every in-transit shipment whose
// scheduled delivery has passed and returns how many were flagged.
func (e *Engine) FlagOverdue(ctx context.Context) (int, error) {
	cmd, err := commands.NewFlagOverdueShipmentsCommand(e.clock.Now())
	if err != nil {
		return 0, err
	}
	return e.flagOverdue.Handle(ctx, cmd)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncCarrierUoWFactory func() commands.CarrierUoW

func (f FuncCarrierUoWFactory) Create() commands.CarrierUoW {
	return f()
}

type FuncReadUoWFactory func() queries.ReadUoW

func (f FuncReadUoWFactory) Create() queries.ReadUoW {
	return f()
}
