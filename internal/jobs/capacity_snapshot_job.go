package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"logistics/internal/core/application/lifecycle"
)

// DefaultCapacitySnapshotSchedule refreshes the gauge every 30 seconds.
const DefaultCapacitySnapshotSchedule = "*/30 * * * * *"

const capacitySnapshotTimeout = 10 * time.Second

type CapacityReporter interface {
	CapacityUsage(ctx context.Context) ([]lifecycle.CapacityUsage, error)
}

type ActiveShipmentsGauge interface {
	CarrierActiveShipments(carrierID string, active int)
}

// CapacitySnapshotJob copies the derived active count of every carrier into
// the metrics gauge.
type CapacitySnapshotJob struct {
	reporter CapacityReporter
	gauge    ActiveShipmentsGauge
	schedule string
	cron     *cron.Cron
	logger   *zap.Logger
}

func NewCapacitySnapshotJob(
	reporter CapacityReporter,
	gauge ActiveShipmentsGauge,
	schedule string,
	logger *zap.Logger,
) *CapacitySnapshotJob {
	if schedule == "" {
		schedule = DefaultCapacitySnapshotSchedule
	}
	logger = logger.With(zap.String("component", "capacity_snapshot_job"))

	return &CapacitySnapshotJob{
		reporter: reporter,
		gauge:    gauge,
		schedule: schedule,
		cron:     newCron(logger),
		logger:   logger,
	}
}

func (j *CapacitySnapshotJob) Run(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, capacitySnapshotTimeout)
	defer cancel()

	usage, err := j.reporter.CapacityUsage(ctx)
	if err != nil {
		j.logger.Error("Capacity snapshot failed", zap.Error(err))
		return
	}

	for _, u := range usage {
		j.gauge.CarrierActiveShipments(u.CarrierID.String(), u.Active)
		if u.Active > u.MaxCapacity {
			// Possible after a capacity reduction; new activations stay blocked.
			j.logger.Warn("Carrier is above its capacity",
				zap.Stringer("carrier_id", u.CarrierID),
				zap.Int("active", u.Active),
				zap.Int("max_capacity", u.MaxCapacity))
		}
	}
	j.logger.Debug("Capacity snapshot taken", zap.Int("carriers", len(usage)))
}

func (j *CapacitySnapshotJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Capacity snapshot job started", zap.String("schedule", j.schedule))
	return nil
}

func (j *CapacitySnapshotJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Capacity snapshot job stopped")
}
