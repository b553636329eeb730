// Package handover provides the HandoverEvent aggregate: the record of a
// physical transfer of goods or rented equipment, its photo evidence, and the
// confirmation deadline after which the order auto-completes without buyer
// action.
//
// Key business rules:
//   - Every event carries at least one photo reference and a
//     quantity/condition record appropriate to its kind
//   - The confirmation deadline is occurrence time plus a kind-specific
//     duration (24h for deliveries, 2h for rental handovers)
//   - An event is resolved exactly once: by buyer confirmation, by a reported
//     issue, or by deadline-driven auto-completion; the persistence layer
//     enforces this with a resolve-if-open compare-and-swap
package handover
