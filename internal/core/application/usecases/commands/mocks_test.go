package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/carrier"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/core/ports"
)

var baseTime = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

type MockCarrierRepository struct{ mock.Mock }

func (m *MockCarrierRepository) Add(ctx context.Context, c *carrier.Carrier) error {
	return m.Called(ctx, c).Error(0)
}
func (m *MockCarrierRepository) Update(ctx context.Context, c *carrier.Carrier) error {
	return m.Called(ctx, c).Error(0)
}
func (m *MockCarrierRepository) Get(ctx context.Context, id kernel.UUID) (*carrier.Carrier, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*carrier.Carrier)
	return c, args.Error(1)
}
func (m *MockCarrierRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*carrier.Carrier, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*carrier.Carrier)
	return c, args.Error(1)
}
func (m *MockCarrierRepository) GetAll(ctx context.Context) ([]*carrier.Carrier, error) {
	args := m.Called(ctx)
	c, _ := args.Get(0).([]*carrier.Carrier)
	return c, args.Error(1)
}
func (m *MockCarrierRepository) ExistsByMCNumber(ctx context.Context, mcNumber string) (bool, error) {
	args := m.Called(ctx, mcNumber)
	return args.Bool(0), args.Error(1)
}
func (m *MockCarrierRepository) ExistsByPlateNumber(ctx context.Context, plateNumber string) (bool, error) {
	args := m.Called(ctx, plateNumber)
	return args.Bool(0), args.Error(1)
}
func (m *MockCarrierRepository) DriverExists(ctx context.Context, id kernel.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
func (m *MockCarrierRepository) VehicleExists(ctx context.Context, id kernel.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockShipmentRepository struct{ mock.Mock }

func (m *MockShipmentRepository) Add(ctx context.Context, s *shipment.Shipment) error {
	return m.Called(ctx, s).Error(0)
}
func (m *MockShipmentRepository) Update(ctx context.Context, s *shipment.Shipment) error {
	return m.Called(ctx, s).Error(0)
}
func (m *MockShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*shipment.Shipment)
	return s, args.Error(1)
}
func (m *MockShipmentRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*shipment.Shipment)
	return s, args.Error(1)
}
func (m *MockShipmentRepository) CountActiveByCarrier(ctx context.Context, carrierID kernel.UUID) (int, error) {
	args := m.Called(ctx, carrierID)
	return args.Int(0), args.Error(1)
}
func (m *MockShipmentRepository) ListActiveByCarrier(ctx context.Context, carrierID kernel.UUID) ([]*shipment.Shipment, error) {
	args := m.Called(ctx, carrierID)
	s, _ := args.Get(0).([]*shipment.Shipment)
	return s, args.Error(1)
}
func (m *MockShipmentRepository) GetOverdue(ctx context.Context, now time.Time) ([]*shipment.Shipment, error) {
	args := m.Called(ctx, now)
	s, _ := args.Get(0).([]*shipment.Shipment)
	return s, args.Error(1)
}

type MockStatusEventRepository struct{ mock.Mock }

func (m *MockStatusEventRepository) Append(ctx context.Context, e *shipment.StatusEvent) error {
	return m.Called(ctx, e).Error(0)
}
func (m *MockStatusEventRepository) ListByShipment(ctx context.Context, id kernel.UUID) ([]*shipment.StatusEvent, error) {
	args := m.Called(ctx, id)
	e, _ := args.Get(0).([]*shipment.StatusEvent)
	return e, args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) CarrierRepository() ports.CarrierRepository {
	return m.Called().Get(0).(ports.CarrierRepository)
}
func (m *MockUoW) ShipmentRepository() ports.ShipmentRepository {
	return m.Called().Get(0).(ports.ShipmentRepository)
}
func (m *MockUoW) StatusEventRepository() ports.StatusEventRepository {
	return m.Called().Get(0).(ports.StatusEventRepository)
}
func (m *MockUoW) CommittedEvents() []*shipment.StatusEvent {
	e, _ := m.Called().Get(0).([]*shipment.StatusEvent)
	return e
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	return m.Called().Get(0).(commands.UoW)
}

type MockCarrierUoWFactory struct{ mock.Mock }

func (m *MockCarrierUoWFactory) Create() commands.CarrierUoW {
	return m.Called().Get(0).(commands.CarrierUoW)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, carrierID kernel.UUID, e *shipment.StatusEvent) error {
	return m.Called(ctx, carrierID, e).Error(0)
}

type MockMetrics struct{ mock.Mock }

func (m *MockMetrics) EventRecorded(status string)      { m.Called(status) }
func (m *MockMetrics) CapacityRejected()                { m.Called() }
func (m *MockMetrics) TransitionRejected(reason string) { m.Called(reason) }
func (m *MockMetrics) CarrierActiveShipments(carrierID string, active int) {
	m.Called(carrierID, active)
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func location(t *testing.T, name, city string) kernel.Location {
	t.Helper()
	loc, err := kernel.NewLocation(name, kernel.Address{Line1: "1 Dock Rd", City: city, State: "TX", PostalCode: "75201"}, nil)
	require.NoError(t, err)
	return loc
}

// fleetCarrier returns a carrier with one driver and one vehicle and the
// assignment that uses them.
func fleetCarrier(t *testing.T, capacity int) (*carrier.Carrier, shipment.Assignment) {
	t.Helper()
	c, err := carrier.NewCarrier(kernel.NewUUID(), "Lone Star Freight", "MC123456", capacity)
	require.NoError(t, err)
	d, err := c.AddDriver("Ana", "Lopez", "ana@example.com", "")
	require.NoError(t, err)
	v, err := c.AddVehicle("TRK-1")
	require.NoError(t, err)
	return c, shipment.Assignment{CarrierID: c.ID(), DriverID: d.ID(), VehicleID: v.ID()}
}

// pendingShipment registers a shipment and returns it with its initial event.
func pendingShipment(t *testing.T, assignment shipment.Assignment) (*shipment.Shipment, *shipment.StatusEvent) {
	t.Helper()
	schedule, err := shipment.NewSchedule(baseTime.Add(time.Hour), baseTime.Add(24*time.Hour))
	require.NoError(t, err)

	shp, _, first, err := shipment.Register(
		kernel.NewUUID(),
		location(t, "Dallas DC", "Dallas"),
		location(t, "Austin DC", "Austin"),
		assignment,
		schedule,
		shipment.EventDraft{Status: shipment.Pending, OccurredAt: baseTime},
		baseTime,
	)
	require.NoError(t, err)
	return shp, first
}
