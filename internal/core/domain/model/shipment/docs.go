// Package shipment models the shipment lifecycle.
//
// The package includes:
//   - Status: the closed set of lifecycle states and the transition table
//   - StatusEvent: an immutable entry of a shipment's event log
//   - Timeline: the ordered, append-only event log of one shipment
//   - Shipment: the aggregate root whose status is a projection of its timeline
//   - Schedule: planned pickup and delivery times
//
// Transitions:
//
//	pending    -> in_transit, cancelled
//	in_transit -> delivered, delayed, cancelled
//	delayed    -> in_transit, delivered, cancelled
//	delivered, cancelled: terminal
//
// Pending, in_transit and delayed shipments are active and count against the
// capacity of their carrier.
package shipment
