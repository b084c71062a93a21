package jobs

import (
	"fmt"

	"go.uber.org/zap"
)

// Engine is the part of the lifecycle engine the jobs drive.
type Engine interface {
	OverdueFlagger
	CapacityReporter
}

// Schedules holds the cron expressions of the jobs. Empty values fall back
// to the defaults.
type Schedules struct {
	DelayScan        string
	CapacitySnapshot string
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	delayDetectionJob   *DelayDetectionJob
	capacitySnapshotJob *CapacitySnapshotJob
}

func NewJobManager(engine Engine, gauge ActiveShipmentsGauge, schedules Schedules, logger *zap.Logger) *JobManager {
	return &JobManager{
		delayDetectionJob:   NewDelayDetectionJob(engine, schedules.DelayScan, logger),
		capacitySnapshotJob: NewCapacitySnapshotJob(engine, gauge, schedules.CapacitySnapshot, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.delayDetectionJob.Start(); err != nil {
		return fmt.Errorf("failed to start delay detection job: %w", err)
	}

	if err := jm.capacitySnapshotJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.delayDetectionJob.Stop()
		return fmt.Errorf("failed to start capacity snapshot job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs and waits for running ones to finish.
func (jm *JobManager) StopAll() {
	jm.capacitySnapshotJob.Stop()
	jm.delayDetectionJob.Stop()
}
