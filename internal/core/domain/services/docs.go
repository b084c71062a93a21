// Package services holds domain logic that spans aggregates.
//
// CapacityTracker decides whether a carrier may take one more active
// shipment. It works on an active count supplied by the caller, which is
// always derived from stored shipment statuses and never kept as a counter.
package services
