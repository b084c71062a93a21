package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/carrier"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"
)

type MockCarrierRepository struct{ mock.Mock }

func (m *MockCarrierRepository) Add(_ context.Context, _ *carrier.Carrier) error    { return nil }
func (m *MockCarrierRepository) Update(_ context.Context, _ *carrier.Carrier) error { return nil }
func (m *MockCarrierRepository) Get(ctx context.Context, id kernel.UUID) (*carrier.Carrier, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*carrier.Carrier)
	return c, args.Error(1)
}
func (m *MockCarrierRepository) GetForUpdate(_ context.Context, _ kernel.UUID) (*carrier.Carrier, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockCarrierRepository) GetAll(ctx context.Context) ([]*carrier.Carrier, error) {
	args := m.Called(ctx)
	c, _ := args.Get(0).([]*carrier.Carrier)
	return c, args.Error(1)
}
func (m *MockCarrierRepository) ExistsByMCNumber(_ context.Context, _ string) (bool, error) {
	return false, errors.New("not implemented in mock")
}
func (m *MockCarrierRepository) ExistsByPlateNumber(_ context.Context, _ string) (bool, error) {
	return false, errors.New("not implemented in mock")
}
func (m *MockCarrierRepository) DriverExists(_ context.Context, _ kernel.UUID) (bool, error) {
	return false, errors.New("not implemented in mock")
}
func (m *MockCarrierRepository) VehicleExists(_ context.Context, _ kernel.UUID) (bool, error) {
	return false, errors.New("not implemented in mock")
}

type MockShipmentRepository struct{ mock.Mock }

func (m *MockShipmentRepository) Add(_ context.Context, _ *shipment.Shipment) error    { return nil }
func (m *MockShipmentRepository) Update(_ context.Context, _ *shipment.Shipment) error { return nil }
func (m *MockShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*shipment.Shipment)
	return s, args.Error(1)
}
func (m *MockShipmentRepository) GetForUpdate(_ context.Context, _ kernel.UUID) (*shipment.Shipment, error) {
	return nil, errors.New("not implemented in mock")
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
func (m *MockShipmentRepository) GetOverdue(_ context.Context, _ time.Time) ([]*shipment.Shipment, error) {
	return nil, errors.New("not implemented in mock")
}

type MockStatusEventRepository struct{ mock.Mock }

func (m *MockStatusEventRepository) Append(_ context.Context, _ *shipment.StatusEvent) error {
	return errors.New("not implemented in mock")
}
func (m *MockStatusEventRepository) ListByShipment(ctx context.Context, id kernel.UUID) ([]*shipment.StatusEvent, error) {
	args := m.Called(ctx, id)
	e, _ := args.Get(0).([]*shipment.StatusEvent)
	return e, args.Error(1)
}

type MockReadUoW struct {
	carriers  *MockCarrierRepository
	shipments *MockShipmentRepository
	events    *MockStatusEventRepository
}

func (u MockReadUoW) CarrierRepository() ports.CarrierRepository         { return u.carriers }
func (u MockReadUoW) ShipmentRepository() ports.ShipmentRepository       { return u.shipments }
func (u MockReadUoW) StatusEventRepository() ports.StatusEventRepository { return u.events }

type readFactory struct{ uow MockReadUoW }

func (f readFactory) Create() queries.ReadUoW { return f.uow }

func newReadUoW() MockReadUoW {
	return MockReadUoW{
		carriers:  new(MockCarrierRepository),
		shipments: new(MockShipmentRepository),
		events:    new(MockStatusEventRepository),
	}
}

func newCarrier(t *testing.T, name string, capacity int) *carrier.Carrier {
	t.Helper()
	c, err := carrier.NewCarrier(kernel.NewUUID(), name, "MC123456", capacity)
	require.NoError(t, err)
	return c
}

func TestGetCarrierActiveCountQueryHandler_Handle(t *testing.T) {
	ctx := t.Context()
	c := newCarrier(t, "Lone Star Freight", 3)
	uow := newReadUoW()
	uow.carriers.On("Get", ctx, c.ID()).Return(c, nil).Once()
	uow.shipments.On("CountActiveByCarrier", ctx, c.ID()).Return(2, nil).Once()

	query, err := queries.NewGetCarrierActiveCountQuery(c.ID())
	require.NoError(t, err)

	resp, err := queries.NewGetCarrierActiveCountQueryHandler(readFactory{uow}).Handle(ctx, query)
	require.NoError(t, err)
	assert.Equal(t, c.ID(), resp.CarrierID)
	assert.Equal(t, 2, resp.Active)
	assert.Equal(t, 3, resp.MaxCapacity)
}

func TestGetCarrierActiveCountQueryHandler_Handle_UnknownCarrier(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	uow := newReadUoW()
	uow.carriers.On("Get", ctx, id).Return(nil, errs.NewObjectNotFoundError("carrier", id)).Once()

	query, _ := queries.NewGetCarrierActiveCountQuery(id)
	_, err := queries.NewGetCarrierActiveCountQueryHandler(readFactory{uow}).Handle(ctx, query)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.shipments.AssertNotCalled(t, "CountActiveByCarrier", mock.Anything, mock.Anything)
}

func TestGetCapacityUsageQueryHandler_Handle(t *testing.T) {
	ctx := t.Context()
	first := newCarrier(t, "Alamo Haulage", 1)
	second := newCarrier(t, "Brazos Lines", 4)
	uow := newReadUoW()
	uow.carriers.On("GetAll", ctx).Return([]*carrier.Carrier{first, second}, nil).Once()
	uow.shipments.On("CountActiveByCarrier", ctx, first.ID()).Return(1, nil).Once()
	uow.shipments.On("CountActiveByCarrier", ctx, second.ID()).Return(0, nil).Once()

	resp, err := queries.NewGetCapacityUsageQueryHandler(readFactory{uow}).Handle(ctx, queries.NewGetCapacityUsageQuery())
	require.NoError(t, err)
	require.Len(t, resp.Carriers, 2)
	assert.Equal(t, first.ID(), resp.Carriers[0].CarrierID)
	assert.Equal(t, 1, resp.Carriers[0].Active)
	assert.Equal(t, 4, resp.Carriers[1].MaxCapacity)
}

func TestGetShipmentHistoryQueryHandler_Handle_NoEventsIsInvariantViolation(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	uow := newReadUoW()
	uow.shipments.On("Get", ctx, id).Return(&shipment.Shipment{}, nil).Once()
	uow.events.On("ListByShipment", ctx, id).Return([]*shipment.StatusEvent{}, nil).Once()

	query, err := queries.NewGetShipmentHistoryQuery(id)
	require.NoError(t, err)

	_, err = queries.NewGetShipmentHistoryQueryHandler(readFactory{uow}).Handle(ctx, query)
	require.ErrorIs(t, err, errs.ErrInvariantViolation)
}

func TestGetShipmentHistoryQueryHandler_Handle_UnknownShipment(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	uow := newReadUoW()
	uow.shipments.On("Get", ctx, id).Return(nil, errs.NewObjectNotFoundError("shipment", id)).Once()

	query, _ := queries.NewGetShipmentHistoryQuery(id)
	_, err := queries.NewGetShipmentHistoryQueryHandler(readFactory{uow}).Handle(ctx, query)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.events.AssertNotCalled(t, "ListByShipment", mock.Anything, mock.Anything)
}
