package eventrepo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/gorm"

	postgresadapter "logistics/internal/adapters/out/postgres"
	"logistics/internal/adapters/out/postgres/eventrepo"
	"logistics/internal/adapters/out/postgres/shipmentrepo"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/pkg/errs"
)

var baseTime = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type StatusEventRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *eventrepo.GormStatusEventRepository
	shipments  *shipmentrepo.GormShipmentRepository
	tracker    *MockAggregateTracker
}

func (suite *StatusEventRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := postgresadapter.Open(connStr, zap.NewNop())
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgresadapter.Migrate(db))
}

func (suite *StatusEventRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE status_events, shipments").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = eventrepo.NewGormStatusEventRepository(suite.db, suite.tracker)
	suite.shipments = shipmentrepo.NewGormShipmentRepository(suite.db, suite.tracker)
}

func (suite *StatusEventRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

// registered stores a new shipment and returns it with its timeline and pending event.
func (suite *StatusEventRepositoryIntegrationTestSuite) registered() (*shipment.Shipment, *shipment.Timeline, *shipment.StatusEvent) {
	origin, err := kernel.NewLocation("Houston Terminal", kernel.Address{
		Line1: "100 Main St", City: "Houston", State: "TX", PostalCode: "77002",
	}, nil)
	suite.Require().NoError(err)
	destination, err := kernel.NewLocation("Dallas Hub", kernel.Address{
		Line1: "1 Elm St", City: "Dallas", State: "TX", PostalCode: "75201",
	}, nil)
	suite.Require().NoError(err)
	schedule, err := shipment.NewSchedule(baseTime, baseTime.Add(24*time.Hour))
	suite.Require().NoError(err)

	s, timeline, first, err := shipment.Register(
		kernel.NewUUID(),
		origin,
		destination,
		shipment.Assignment{CarrierID: kernel.NewUUID(), DriverID: kernel.NewUUID(), VehicleID: kernel.NewUUID()},
		schedule,
		shipment.EventDraft{OccurredAt: baseTime, Source: shipment.SourceUserAction, Notes: "booked"},
		baseTime,
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.shipments.Add(context.Background(), s))
	return s, timeline, first
}

func (suite *StatusEventRepositoryIntegrationTestSuite) TestAppend_RoundTrip() {
	ctx := context.Background()
	s, _, first := suite.registered()

	tracker := new(MockAggregateTracker)
	tracker.On("TrackAggregate", first.ID(), first).Once()
	repo := eventrepo.NewGormStatusEventRepository(suite.db, tracker)
	suite.Require().NoError(repo.Append(ctx, first))
	tracker.AssertExpectations(suite.T())

	events, err := repo.ListByShipment(ctx, s.ID())
	suite.Require().NoError(err)
	suite.Require().Len(events, 1)

	stored := events[0]
	suite.Equal(first.ID(), stored.ID())
	suite.Equal(shipment.Pending, stored.Status())
	suite.True(stored.OccurredAt().Equal(baseTime))
	suite.Equal(time.UTC, stored.OccurredAt().Location())
	suite.Equal(1, stored.Sequence())
	suite.Equal(shipment.SourceUserAction, stored.Source())
	suite.Equal("booked", stored.Notes())
	suite.False(stored.OutOfOrder())
}

func (suite *StatusEventRepositoryIntegrationTestSuite) TestAppend_UnknownShipment() {
	_, _, first := suite.registered()
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE shipments").Error)

	err := suite.repository.Append(context.Background(), first)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *StatusEventRepositoryIntegrationTestSuite) TestAppend_DuplicateSequence() {
	ctx := context.Background()
	_, _, first := suite.registered()
	suite.Require().NoError(suite.repository.Append(ctx, first))

	// A concurrent writer that loaded the same history produces the same sequence.
	clash, err := shipment.RestoreStatusEvent(kernel.NewUUID(), first.ShipmentID(), shipment.InTransit,
		baseTime.Add(time.Hour), baseTime, first.Sequence(), shipment.SourceSystem, "", false)
	suite.Require().NoError(err)

	err = suite.repository.Append(ctx, clash)
	suite.Require().ErrorIs(err, errs.ErrDuplicateEvent)
}

func (suite *StatusEventRepositoryIntegrationTestSuite) TestAppend_DuplicateStatusAndTimestamp() {
	ctx := context.Background()
	_, _, first := suite.registered()
	suite.Require().NoError(suite.repository.Append(ctx, first))

	clash, err := shipment.RestoreStatusEvent(kernel.NewUUID(), first.ShipmentID(), shipment.Pending,
		baseTime, baseTime, 2, shipment.SourceSystem, "", false)
	suite.Require().NoError(err)

	err = suite.repository.Append(ctx, clash)
	suite.Require().ErrorIs(err, errs.ErrDuplicateEvent)
}

func (suite *StatusEventRepositoryIntegrationTestSuite) TestListByShipment_OrderedByTimestampThenSequence() {
	ctx := context.Background()
	s, timeline, first := suite.registered()
	suite.Require().NoError(suite.repository.Append(ctx, first))

	moving, err := timeline.Append(shipment.EventDraft{Status: shipment.InTransit, OccurredAt: baseTime.Add(3 * time.Hour)},
		shipment.AcceptOutOfOrder, baseTime)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Append(ctx, moving))

	late, err := timeline.Append(shipment.EventDraft{Status: shipment.Delayed, OccurredAt: baseTime.Add(time.Hour)},
		shipment.AcceptOutOfOrder, baseTime)
	suite.Require().NoError(err)
	suite.Require().True(late.OutOfOrder())
	suite.Require().NoError(suite.repository.Append(ctx, late))

	events, err := suite.repository.ListByShipment(ctx, s.ID())
	suite.Require().NoError(err)
	suite.Require().Len(events, 3)
	suite.Equal(first.ID(), events[0].ID())
	suite.Equal(late.ID(), events[1].ID())
	suite.True(events[1].OutOfOrder())
	suite.Equal(3, events[1].Sequence())
	suite.Equal(moving.ID(), events[2].ID())

	empty, err := suite.repository.ListByShipment(ctx, kernel.NewUUID())
	suite.Require().NoError(err)
	suite.Empty(empty)
}

func TestStatusEventRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(StatusEventRepositoryIntegrationTestSuite))
}
