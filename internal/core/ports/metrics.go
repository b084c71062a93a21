package ports

// LifecycleMetrics receives counters from the lifecycle use cases.
type LifecycleMetrics interface {
	EventRecorded(status string)
	CapacityRejected()
	TransitionRejected(reason string)
	CarrierActiveShipments(carrierID string, active int)
}
