package lifecycle_test

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"logistics/internal/adapters/out/memory"
	"logistics/internal/core/application/lifecycle"
	"logistics/internal/core/domain/model/carrier"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/pkg/clock"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/metrics"
)

var baseTime = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

type recordingPublisher struct {
	mu     sync.Mutex
	events []*shipment.StatusEvent
	fail   bool
}

func (p *recordingPublisher) Publish(_ context.Context, _ kernel.UUID, e *shipment.StatusEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return errors.New("broker unavailable")
	}
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) published() []*shipment.StatusEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*shipment.StatusEvent(nil), p.events...)
}

type fixture struct {
	t         *testing.T
	ctx       context.Context
	clock     *clock.Fixed
	publisher *recordingPublisher
	engine    *lifecycle.Engine
}

func newFixture(t *testing.T, policy shipment.OrderingPolicy) *fixture {
	t.Helper()
	f := &fixture{
		t:         t,
		ctx:       context.Background(),
		clock:     clock.NewFixed(baseTime),
		publisher: &recordingPublisher{},
	}
	f.engine = lifecycle.NewEngine(
		memory.NewUnitOfWorkFactory(memory.NewStore()),
		f.clock,
		policy,
		f.publisher,
		metrics.Nop{},
		zap.NewNop(),
	)
	return f
}

type fleet struct {
	carrier *carrier.Carrier
	driver  *carrier.Driver
	vehicle *carrier.Vehicle
}

func (f *fixture) fleet(mc string, capacity int) fleet {
	f.t.Helper()
	c, err := f.engine.CreateCarrier(f.ctx, "Carrier "+mc, mc, capacity)
	require.NoError(f.t, err)
	d, err := f.engine.AddDriver(f.ctx, c.ID(), lifecycle.DriverRequest{
		FirstName: "Ana", LastName: "Lopez", Email: "ana." + mc + "@example.com",
	})
	require.NoError(f.t, err)
	v, err := f.engine.AddVehicle(f.ctx, c.ID(), "TRK-"+mc)
	require.NoError(f.t, err)
	return fleet{carrier: c, driver: d, vehicle: v}
}

func (f *fixture) location(name, city string) kernel.Location {
	f.t.Helper()
	loc, err := kernel.NewLocation(name, kernel.Address{Line1: "1 Dock Rd", City: city, State: "TX", PostalCode: "75201"}, nil)
	require.NoError(f.t, err)
	return loc
}

func (f *fixture) request(fl fleet) lifecycle.ShipmentRequest {
	return lifecycle.ShipmentRequest{
		Origin:            f.location("Dallas DC", "Dallas"),
		Destination:       f.location("Austin DC", "Austin"),
		Assignment:        shipment.Assignment{CarrierID: fl.carrier.ID(), DriverID: fl.driver.ID(), VehicleID: fl.vehicle.ID()},
		ScheduledPickup:   baseTime.Add(2 * time.Hour),
		ScheduledDelivery: baseTime.Add(26 * time.Hour),
	}
}

func (f *fixture) create(fl fleet) *shipment.Shipment {
	f.t.Helper()
	shp, _, err := f.engine.CreateShipment(f.ctx, f.request(fl))
	require.NoError(f.t, err)
	return shp
}

// move records status one hour after the clock and advances the clock to it.
func (f *fixture) move(id kernel.UUID, status shipment.Status) (*shipment.StatusEvent, error) {
	at := f.clock.Advance(time.Hour)
	return f.engine.RecordEvent(f.ctx, id, shipment.EventDraft{Status: status, OccurredAt: at, Source: shipment.SourceTrackingAPI})
}

func (f *fixture) active(fl fleet) int {
	f.t.Helper()
	usage, err := f.engine.CarrierActiveCount(f.ctx, fl.carrier.ID())
	require.NoError(f.t, err)
	return usage.Active
}

func TestEngine_CapacityIsEnforcedOnRegistration(t *testing.T) {
	f := newFixture(t, shipment.RejectOutOfOrder)
	c1 := f.fleet("MC100001", 2)

	f.create(c1)
	f.create(c1)
	assert.Equal(t, 2, f.active(c1))

	_, _, err := f.engine.CreateShipment(f.ctx, f.request(c1))
	require.ErrorIs(t, err, errs.ErrCapacityExceeded)

	var capErr *errs.CapacityExceededError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, 2, f.active(c1))

	active, err := f.engine.ListActiveShipments(f.ctx, c1.carrier.ID())
	require.NoError(t, err)
	assert.Len(t, active, 2)
}

func TestEngine_ActiveCountDropsOnlyOnDelivery(t *testing.T) {
	f := newFixture(t, shipment.RejectOutOfOrder)
	c1 := f.fleet("MC100002", 5)
	s1 := f.create(c1)
	require.Equal(t, 1, f.active(c1))

	_, err := f.move(s1.ID(), shipment.InTransit)
	require.NoError(t, err)
	assert.Equal(t, 1, f.active(c1))

	_, err = f.move(s1.ID(), shipment.Delivered)
	require.NoError(t, err)
	assert.Equal(t, 0, f.active(c1))

	got, err := f.engine.GetShipment(f.ctx, s1.ID())
	require.NoError(t, err)
	assert.Equal(t, shipment.Delivered, got.Status())
	require.NotNil(t, got.ActualPickup())
	require.NotNil(t, got.ActualDelivery())
	assert.True(t, got.ActualDelivery().After(*got.ActualPickup()))
}

func TestEngine_DelayedBackToInTransit_SkipsCapacityCheck(t *testing.T) {
	f := newFixture(t, shipment.RejectOutOfOrder)
	c1 := f.fleet("MC100003", 1)
	s2 := f.create(c1)

	_, err := f.move(s2.ID(), shipment.InTransit)
	require.NoError(t, err)
	_, err = f.move(s2.ID(), shipment.Delayed)
	require.NoError(t, err)

	// The carrier is full with s2 itself; resuming must not be refused.
	_, err = f.engine.ReconfigureCapacity(f.ctx, c1.carrier.ID(), 0)
	require.NoError(t, err)

	e, err := f.move(s2.ID(), shipment.InTransit)
	require.NoError(t, err)
	assert.Equal(t, shipment.InTransit, e.Status())
	assert.Equal(t, 1, f.active(c1))
}

func TestEngine_TerminalStatusRejectsTransitions(t *testing.T) {
	f := newFixture(t, shipment.RejectOutOfOrder)
	c1 := f.fleet("MC100004", 1)
	s := f.create(c1)

	_, err := f.move(s.ID(), shipment.InTransit)
	require.NoError(t, err)
	_, err = f.move(s.ID(), shipment.Delivered)
	require.NoError(t, err)

	for _, next := range shipment.Statuses() {
		_, err = f.move(s.ID(), next)
		require.ErrorIs(t, err, errs.ErrInvalidTransition, "delivered -> %s", next)
	}

	got, err := f.engine.GetShipment(f.ctx, s.ID())
	require.NoError(t, err)
	assert.Equal(t, shipment.Delivered, got.Status())

	history, err := f.engine.GetHistory(f.ctx, s.ID())
	require.NoError(t, err)
	assert.Len(t, history, 3)
}

func TestEngine_EarlierEventIsRejectedByDefault(t *testing.T) {
	f := newFixture(t, shipment.RejectOutOfOrder)
	c1 := f.fleet("MC100005", 1)
	s := f.create(c1)

	latest, err := f.move(s.ID(), shipment.InTransit)
	require.NoError(t, err)

	_, err = f.engine.RecordEvent(f.ctx, s.ID(), shipment.EventDraft{
		Status:     shipment.Delayed,
		OccurredAt: latest.OccurredAt().Add(-time.Minute),
	})
	require.ErrorIs(t, err, errs.ErrOutOfOrderEvent)

	history, err := f.engine.GetHistory(f.ctx, s.ID())
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestEngine_AcceptPolicy_KeepsCurrentStatus(t *testing.T) {
	f := newFixture(t, shipment.AcceptOutOfOrder)
	c1 := f.fleet("MC100006", 1)
	s := f.create(c1)

	_, err := f.move(s.ID(), shipment.InTransit)
	require.NoError(t, err)
	_, err = f.move(s.ID(), shipment.Delivered)
	require.NoError(t, err)

	late, err := f.engine.RecordEvent(f.ctx, s.ID(), shipment.EventDraft{
		Status:     shipment.Delayed,
		OccurredAt: baseTime.Add(90 * time.Minute),
		Source:     shipment.SourceTrackingAPI,
	})
	require.NoError(t, err)
	assert.True(t, late.OutOfOrder())

	got, err := f.engine.GetShipment(f.ctx, s.ID())
	require.NoError(t, err)
	assert.Equal(t, shipment.Delivered, got.Status())
	assert.Equal(t, 0, f.active(c1))

	history, err := f.engine.GetHistory(f.ctx, s.ID())
	require.NoError(t, err)
	require.Len(t, history, 4)
	assert.Equal(t, late.ID(), history[2].ID())
	assert.Equal(t, shipment.Delivered, history[3].Status())

	_, err = f.engine.RecordEvent(f.ctx, s.ID(), shipment.EventDraft{
		Status:     shipment.Delayed,
		OccurredAt: baseTime.Add(-time.Hour),
	})
	require.ErrorIs(t, err, errs.ErrOutOfOrderEvent, "nothing may precede the pending event")
}

func TestEngine_DuplicateEventIsRejected(t *testing.T) {
	f := newFixture(t, shipment.AcceptOutOfOrder)
	c1 := f.fleet("MC100007", 1)
	s := f.create(c1)

	e, err := f.move(s.ID(), shipment.InTransit)
	require.NoError(t, err)

	_, err = f.engine.RecordEvent(f.ctx, s.ID(), shipment.EventDraft{Status: shipment.InTransit, OccurredAt: e.OccurredAt()})
	require.ErrorIs(t, err, errs.ErrDuplicateEvent)
}

func TestEngine_CancelledShipmentFreesCapacity(t *testing.T) {
	f := newFixture(t, shipment.RejectOutOfOrder)
	c1 := f.fleet("MC100008", 1)
	s := f.create(c1)

	_, _, err := f.engine.CreateShipment(f.ctx, f.request(c1))
	require.ErrorIs(t, err, errs.ErrCapacityExceeded)

	_, err = f.move(s.ID(), shipment.Cancelled)
	require.NoError(t, err)

	f.create(c1)
	assert.Equal(t, 1, f.active(c1))
}

func TestEngine_CreateShipment_ValidatesReferences(t *testing.T) {
	f := newFixture(t, shipment.RejectOutOfOrder)
	c1 := f.fleet("MC100009", 3)
	c2 := f.fleet("MC100010", 3)

	req := f.request(c1)
	req.Assignment.CarrierID = kernel.NewUUID()
	_, _, err := f.engine.CreateShipment(f.ctx, req)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)

	req = f.request(c1)
	req.Assignment.DriverID = kernel.NewUUID()
	_, _, err = f.engine.CreateShipment(f.ctx, req)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)

	req = f.request(c1)
	req.Assignment.VehicleID = c2.vehicle.ID()
	_, _, err = f.engine.CreateShipment(f.ctx, req)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	req = f.request(c1)
	req.Destination = req.Origin
	_, _, err = f.engine.CreateShipment(f.ctx, req)
	require.ErrorIs(t, err, shipment.ErrSameOriginAndDestination)

	req = f.request(c1)
	req.ScheduledDelivery = req.ScheduledPickup.Add(-time.Minute)
	_, _, err = f.engine.CreateShipment(f.ctx, req)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	assert.Equal(t, 0, f.active(c1))
}

func TestEngine_CreateShipment_InitialEvent(t *testing.T) {
	f := newFixture(t, shipment.RejectOutOfOrder)
	c1 := f.fleet("MC100011", 3)

	shp, first, err := f.engine.CreateShipment(f.ctx, f.request(c1))
	require.NoError(t, err)
	assert.Equal(t, shipment.Pending, shp.Status())
	assert.Equal(t, shipment.Pending, first.Status())
	assert.Equal(t, baseTime, first.OccurredAt())
	assert.Equal(t, shipment.SourceSystem, first.Source())
	assert.Equal(t, 1, first.Sequence())

	req := f.request(c1)
	req.InitialEventAt = baseTime.Add(-30 * time.Minute)
	req.Source = shipment.SourceUserAction
	req.Notes = "booked by phone"
	_, first, err = f.engine.CreateShipment(f.ctx, req)
	require.NoError(t, err)
	assert.Equal(t, req.InitialEventAt, first.OccurredAt())
	assert.Equal(t, shipment.SourceUserAction, first.Source())
	assert.Equal(t, "booked by phone", first.Notes())
	assert.Equal(t, baseTime, first.RecordedAt())
}

func TestEngine_RecordEvent_DefaultsTimestampToClock(t *testing.T) {
	f := newFixture(t, shipment.RejectOutOfOrder)
	c1 := f.fleet("MC100012", 1)
	s := f.create(c1)

	now := f.clock.Advance(15 * time.Minute)
	e, err := f.engine.RecordEvent(f.ctx, s.ID(), shipment.EventDraft{Status: shipment.InTransit})
	require.NoError(t, err)
	assert.Equal(t, now, e.OccurredAt())
	assert.Equal(t, 2, e.Sequence())
}

func TestEngine_NotFound(t *testing.T) {
	f := newFixture(t, shipment.RejectOutOfOrder)
	unknown := kernel.NewUUID()

	_, err := f.engine.GetShipment(f.ctx, unknown)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)

	_, err = f.engine.GetHistory(f.ctx, unknown)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)

	_, err = f.engine.RecordEvent(f.ctx, unknown, shipment.EventDraft{Status: shipment.InTransit})
	require.ErrorIs(t, err, errs.ErrObjectNotFound)

	_, err = f.engine.CarrierActiveCount(f.ctx, unknown)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)

	_, err = f.engine.ListActiveShipments(f.ctx, unknown)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)

	_, err = f.engine.AddVehicle(f.ctx, unknown, "TRK-1")
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestEngine_CarrierAdministration(t *testing.T) {
	f := newFixture(t, shipment.RejectOutOfOrder)
	c1 := f.fleet("MC100013", 1)

	_, err := f.engine.CreateCarrier(f.ctx, "Copycat", "mc100013", 1)
	require.ErrorIs(t, err, errs.ErrObjectExists)

	other, err := f.engine.CreateCarrier(f.ctx, "Other", "MC100014", 1)
	require.NoError(t, err)
	_, err = f.engine.AddVehicle(f.ctx, other.ID(), "trk-mc100013")
	require.ErrorIs(t, err, errs.ErrObjectExists, "plates are unique across carriers")

	c, err := f.engine.ReconfigureCapacity(f.ctx, c1.carrier.ID(), 4)
	require.NoError(t, err)
	assert.Equal(t, 4, c.MaxCapacity())

	_, err = f.engine.ReconfigureCapacity(f.ctx, c1.carrier.ID(), -1)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	usage, err := f.engine.CapacityUsage(f.ctx)
	require.NoError(t, err)
	require.Len(t, usage, 2)
}

func TestEngine_PublishesCommittedEvents(t *testing.T) {
	f := newFixture(t, shipment.RejectOutOfOrder)
	c1 := f.fleet("MC100015", 1)
	s := f.create(c1)
	moved, err := f.move(s.ID(), shipment.InTransit)
	require.NoError(t, err)

	published := f.publisher.published()
	require.Len(t, published, 2)
	assert.Equal(t, shipment.Pending, published[0].Status())
	assert.Equal(t, moved.ID(), published[1].ID())

	_, err = f.move(s.ID(), shipment.Pending)
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	assert.Len(t, f.publisher.published(), 2, "rejected events are not published")

	f.publisher.fail = true
	_, err = f.move(s.ID(), shipment.Delivered)
	require.NoError(t, err, "publishing is best effort")

	got, err := f.engine.GetShipment(f.ctx, s.ID())
	require.NoError(t, err)
	assert.Equal(t, shipment.Delivered, got.Status())
}

func TestEngine_FlagOverdue(t *testing.T) {
	f := newFixture(t, shipment.RejectOutOfOrder)
	c1 := f.fleet("MC100016", 5)
	late := f.create(c1)
	waiting := f.create(c1)

	_, err := f.move(late.ID(), shipment.InTransit)
	require.NoError(t, err)

	flagged, err := f.engine.FlagOverdue(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, flagged)

	f.clock.Set(late.Schedule().Delivery().Add(time.Minute))
	flagged, err = f.engine.FlagOverdue(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, flagged)

	got, err := f.engine.GetShipment(f.ctx, late.ID())
	require.NoError(t, err)
	assert.Equal(t, shipment.Delayed, got.Status())

	history, err := f.engine.GetHistory(f.ctx, late.ID())
	require.NoError(t, err)
	last := history[len(history)-1]
	assert.Equal(t, shipment.SourceSystem, last.Source())
	assert.NotEmpty(t, last.Notes())

	untouched, err := f.engine.GetShipment(f.ctx, waiting.ID())
	require.NoError(t, err)
	assert.Equal(t, shipment.Pending, untouched.Status())

	flagged, err = f.engine.FlagOverdue(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, flagged, "delayed shipments are not flagged twice")
}

func TestEngine_HistoryIsRepeatable(t *testing.T) {
	f := newFixture(t, shipment.RejectOutOfOrder)
	c1 := f.fleet("MC100017", 1)
	s := f.create(c1)
	_, err := f.move(s.ID(), shipment.InTransit)
	require.NoError(t, err)

	first, err := f.engine.GetHistory(f.ctx, s.ID())
	require.NoError(t, err)
	second, err := f.engine.GetHistory(f.ctx, s.ID())
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].ID(), second[i].ID())
		assert.Equal(t, first[i].Sequence(), second[i].Sequence())
	}
}

// TestEngine_RandomWalk drives random transitions and checks that the
// current status always matches the latest event and capacity is never exceeded.
func TestEngine_RandomWalk(t *testing.T) {
	f := newFixture(t, shipment.RejectOutOfOrder)
	const capacity = 3
	c1 := f.fleet("MC100018", capacity)
	rng := rand.New(rand.NewPCG(7, 11))
	statuses := shipment.Statuses()

	var ids []kernel.UUID
	for range 200 {
		if rng.IntN(4) == 0 {
			shp, _, err := f.engine.CreateShipment(f.ctx, f.request(c1))
			if err != nil {
				require.ErrorIs(t, err, errs.ErrCapacityExceeded)
			} else {
				ids = append(ids, shp.ID())
			}
		} else if len(ids) > 0 {
			id := ids[rng.IntN(len(ids))]
			before, err := f.engine.GetShipment(f.ctx, id)
			require.NoError(t, err)

			next := statuses[rng.IntN(len(statuses))]
			_, err = f.move(id, next)
			if !before.Status().CanTransitionTo(next) {
				require.ErrorIs(t, err, errs.ErrInvalidTransition)
			} else if err != nil {
				require.ErrorIs(t, err, errs.ErrCapacityExceeded)
			}
		}

		require.LessOrEqual(t, f.active(c1), capacity)
	}

	for _, id := range ids {
		shp, err := f.engine.GetShipment(f.ctx, id)
		require.NoError(t, err)
		history, err := f.engine.GetHistory(f.ctx, id)
		require.NoError(t, err)
		require.NotEmpty(t, history)
		assert.Equal(t, history[len(history)-1].Status(), shp.Status())
	}
}

func TestEngine_ConcurrentRegistrationsRespectCapacity(t *testing.T) {
	f := newFixture(t, shipment.RejectOutOfOrder)
	const capacity = 4
	c1 := f.fleet("MC100019", capacity)

	var (
		wg        sync.WaitGroup
		succeeded atomic.Int32
		rejected  atomic.Int32
	)
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := f.engine.CreateShipment(f.ctx, f.request(c1))
			switch {
			case err == nil:
				succeeded.Add(1)
			case errors.Is(err, errs.ErrCapacityExceeded):
				rejected.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(capacity), succeeded.Load())
	assert.Equal(t, int32(16-capacity), rejected.Load())
	assert.Equal(t, capacity, f.active(c1))
}

func TestEngine_ConcurrentTransitionsOnOneShipment(t *testing.T) {
	f := newFixture(t, shipment.RejectOutOfOrder)
	c1 := f.fleet("MC100020", 1)
	s := f.create(c1)
	at := baseTime.Add(time.Hour)

	var (
		wg        sync.WaitGroup
		succeeded atomic.Int32
	)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.engine.RecordEvent(f.ctx, s.ID(), shipment.EventDraft{Status: shipment.InTransit, OccurredAt: at})
			if err == nil {
				succeeded.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), succeeded.Load())
	history, err := f.engine.GetHistory(f.ctx, s.ID())
	require.NoError(t, err)
	assert.Len(t, history, 2)
}
