// Package shipment models the shipment aggregate: a parcel consignment moving from an
// origin branch to a destination branch on behalf of a customer.
//
// A shipment owns its tracking code, weight, price, estimated delivery date and lifecycle
// status. Status changes follow the rules encoded in Status.CanTransitionTo:
//
//	CREADO ──> RECOLECTADO ──> EN_TRANSITO ──> EN_DESTINO ──> ENTREGADO
//	   │            │               │              │              │
//	   └────────────┴───────────────┴──────────────┴──> DEVUELTO <┘
//	   └────────────┴───────────────┴──────────────┴──> CANCELADO
//
// Forward moves may skip intermediate states. DEVUELTO and CANCELADO are absorbing.
//
// Price and estimated delivery are derived through a PricingPolicy and recomputed whenever
// the weight changes, so they never drift from the configured formulas.
package shipment
