// Package jobs runs the scheduled background work of the shipment service.
//
// Jobs are built on github.com/robfig/cron/v3 with a seconds field, so a
// schedule is either a six-field expression or a descriptor such as
// "@every 30s".
//
// # Available Jobs
//
//  1. DelayDetectionJob records a delayed event on every in-transit shipment
//     whose scheduled delivery has passed.
//  2. CapacitySnapshotJob publishes the active shipment count of every carrier
//     to the carrier_active_shipments gauge.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(engine, metrics, jobs.Schedules{
//		DelayScan:        "0 * * * * *",
//		CapacitySnapshot: "*/30 * * * * *",
//	}, log)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("failed to start jobs", zap.Error(err))
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A run that fails is logged and the next tick tries again. A run still in
// progress when its next tick fires causes that tick to be skipped, and a
// panic inside a run is recovered and logged.
package jobs
