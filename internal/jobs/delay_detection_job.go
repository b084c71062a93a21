package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultDelayScanSchedule runs the overdue scan at the top of every minute.
const DefaultDelayScanSchedule = "0 * * * * *"

const delayScanTimeout = 30 * time.Second

// OverdueFlagger records a delayed event on overdue in-transit shipments and
// reports how many it flagged.
type OverdueFlagger interface {
	FlagOverdue(ctx context.Context) (int, error)
}

// DelayDetectionJob periodically marks overdue in-transit shipments as delayed.
type DelayDetectionJob struct {
	flagger  OverdueFlagger
	schedule string
	cron     *cron.Cron
	logger   *zap.Logger
}

func NewDelayDetectionJob(flagger OverdueFlagger, schedule string, logger *zap.Logger) *DelayDetectionJob {
	if schedule == "" {
		schedule = DefaultDelayScanSchedule
	}
	logger = logger.With(zap.String("component", "delay_detection_job"))

	return &DelayDetectionJob{
		flagger:  flagger,
		schedule: schedule,
		cron:     newCron(logger),
		logger:   logger,
	}
}

// Run performs a single scan.
func (j *DelayDetectionJob) Run(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, delayScanTimeout)
	defer cancel()

	flagged, err := j.flagger.FlagOverdue(ctx)
	if err != nil {
		j.logger.Error("Delay detection failed", zap.Error(err))
		return
	}
	if flagged > 0 {
		j.logger.Info("Overdue shipments flagged as delayed", zap.Int("count", flagged))
	}
}

func (j *DelayDetectionJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Delay detection job started", zap.String("schedule", j.schedule))
	return nil
}

// Stop waits for a running scan to finish.
func (j *DelayDetectionJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Delay detection job stopped")
}
