// Package kernel provides shared value objects used across the fulfillment
// domain model.
//
// The package includes:
//   - UUID: validated unique identifier wrapping github.com/google/uuid
//   - Window: a start/end time range for delivery or pickup scheduling
//   - Role and Actor: the acting party (buyer or supplier) on an order
//
// All value objects are immutable, created through validating constructors,
// and safe for concurrent use. The zero value of each type is invalid and is
// rejected by Validate.
package kernel
