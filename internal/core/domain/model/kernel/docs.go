// Package kernel provides the domain primitives shared by the carrier and
// shipment models.
//
// The package includes:
//   - UUID: identifier value object with validation and comparison
//   - Location: a named postal address with optional geographic coordinates,
//     used as shipment origin and destination
//
// Both are immutable value objects whose zero values fail validation, so an
// identifier or a location that was never constructed cannot reach persistence.
package kernel
