// Package services provides domain services that orchestrate business
// operations across multiple domain entities in the fuel delivery system.
// It implements workflows that don't naturally belong to a single aggregate
// root.
//
// The package includes:
//   - CompensationPlanner: builds the ordered, durable reversal sequence for a cancelled order
//
// Domain services coordinate between aggregates, implementing business logic
// that spans multiple bounded contexts following Domain-Driven Design
// principles.
package services
