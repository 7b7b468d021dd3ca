// Package services provides domain services for the logistics system: business rules
// that need collaborators beyond a single aggregate.
//
// The package includes:
//   - CodeGenerator: produces tracking codes that are unique against the shipment store
package services
