// Package kernel holds the primitives shared by every aggregate of the logistics domain
// (shipments, tracking events, users, branches and packages): the UUID identifier value
// object and the bounded text checks used by their constructors.
//
// UUID is immutable and safe for concurrent use. Its zero value is invalid, which lets
// aggregates detect identifiers that were never assigned.
package kernel
