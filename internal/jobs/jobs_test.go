package jobs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"logistics/internal/core/application/lifecycle"
	"logistics/internal/core/domain/model/kernel"
)

type MockEngine struct {
	mock.Mock
}

func (m *MockEngine) FlagOverdue(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockEngine) CapacityUsage(ctx context.Context) ([]lifecycle.CapacityUsage, error) {
	args := m.Called(ctx)
	usage, _ := args.Get(0).([]lifecycle.CapacityUsage)
	return usage, args.Error(1)
}

type MockGauge struct {
	mock.Mock
}

func (m *MockGauge) CarrierActiveShipments(carrierID string, active int) {
	m.Called(carrierID, active)
}

func observedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

func TestDelayDetectionJob_Run(t *testing.T) {
	engine := new(MockEngine)
	engine.On("FlagOverdue", mock.Anything).Return(2, nil).Once()
	log, logs := observedLogger()

	NewDelayDetectionJob(engine, "", log).Run(context.Background())

	engine.AssertExpectations(t)
	entries := logs.FilterMessage("Overdue shipments flagged as delayed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(2), entries[0].ContextMap()["count"])
	assert.Equal(t, "delay_detection_job", entries[0].ContextMap()["component"])
}

func TestDelayDetectionJob_RunNothingOverdue(t *testing.T) {
	engine := new(MockEngine)
	engine.On("FlagOverdue", mock.Anything).Return(0, nil).Once()
	log, logs := observedLogger()

	NewDelayDetectionJob(engine, "", log).Run(context.Background())

	engine.AssertExpectations(t)
	assert.Zero(t, logs.FilterMessage("Overdue shipments flagged as delayed").Len())
}

func TestDelayDetectionJob_RunLogsFailure(t *testing.T) {
	engine := new(MockEngine)
	engine.On("FlagOverdue", mock.Anything).Return(0, errors.New("db down")).Once()
	log, logs := observedLogger()

	NewDelayDetectionJob(engine, "", log).Run(context.Background())

	entries := logs.FilterLevelExact(zapcore.ErrorLevel).All()
	require.Len(t, entries, 1)
	assert.Equal(t, "Delay detection failed", entries[0].Message)
}

func TestCapacitySnapshotJob_Run(t *testing.T) {
	first, second := kernel.NewUUID(), kernel.NewUUID()
	engine := new(MockEngine)
	engine.On("CapacityUsage", mock.Anything).Return([]lifecycle.CapacityUsage{
		{CarrierID: first, Active: 2, MaxCapacity: 5},
		{CarrierID: second, Active: 3, MaxCapacity: 1},
	}, nil).Once()

	gauge := new(MockGauge)
	gauge.On("CarrierActiveShipments", first.String(), 2).Once()
	gauge.On("CarrierActiveShipments", second.String(), 3).Once()
	log, logs := observedLogger()

	NewCapacitySnapshotJob(engine, gauge, "", log).Run(context.Background())

	engine.AssertExpectations(t)
	gauge.AssertExpectations(t)

	warnings := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warnings, 1)
	assert.Equal(t, second.String(), warnings[0].ContextMap()["carrier_id"])
}

func TestCapacitySnapshotJob_RunLeavesGaugeOnFailure(t *testing.T) {
	engine := new(MockEngine)
	engine.On("CapacityUsage", mock.Anything).Return(nil, errors.New("db down")).Once()
	gauge := new(MockGauge)
	log, logs := observedLogger()

	NewCapacitySnapshotJob(engine, gauge, "", log).Run(context.Background())

	gauge.AssertNotCalled(t, "CarrierActiveShipments", mock.Anything, mock.Anything)
	assert.Equal(t, 1, logs.FilterMessage("Capacity snapshot failed").Len())
}

func TestJobManager_StartAndStop(t *testing.T) {
	engine := new(MockEngine)
	engine.On("FlagOverdue", mock.Anything).Return(0, nil).Maybe()
	engine.On("CapacityUsage", mock.Anything).Return([]lifecycle.CapacityUsage{}, nil).Maybe()
	log, logs := observedLogger()

	jm := NewJobManager(engine, new(MockGauge), Schedules{DelayScan: "@every 1h", CapacitySnapshot: "@every 1h"}, log)
	require.NoError(t, jm.StartAll())
	jm.StopAll()

	assert.Equal(t, 1, logs.FilterMessage("Delay detection job started").Len())
	assert.Equal(t, 1, logs.FilterMessage("Capacity snapshot job started").Len())
	assert.Equal(t, 1, logs.FilterMessage("Delay detection job stopped").Len())
	assert.Equal(t, 1, logs.FilterMessage("Capacity snapshot job stopped").Len())
}

func TestJobManager_StartAllStopsStartedJobsOnFailure(t *testing.T) {
	log, logs := observedLogger()

	jm := NewJobManager(new(MockEngine), new(MockGauge), Schedules{CapacitySnapshot: "every now and then"}, log)
	err := jm.StartAll()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "capacity snapshot job")
	assert.Equal(t, 1, logs.FilterMessage("Delay detection job stopped").Len())
}

func TestNewDelayDetectionJob_DefaultSchedule(t *testing.T) {
	j := NewDelayDetectionJob(new(MockEngine), "", zap.NewNop())
	assert.Equal(t, DefaultDelayScanSchedule, j.schedule)

	c := NewCapacitySnapshotJob(new(MockEngine), new(MockGauge), "", zap.NewNop())
	assert.Equal(t, DefaultCapacitySnapshotSchedule, c.schedule)
}
