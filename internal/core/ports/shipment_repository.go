// Package ports defines the contracts between the logistics core and its infrastructure:
// persistence, the tracking ledger, credentials, tokens, revocation and event publishing.
package ports

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
)

// ShipmentRepository persists shipment aggregates.
type ShipmentRepository interface {
	// Add inserts a new shipment. A code already taken by another shipment yields
	// the same business error as an exhausted code generator.
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	// Update persists the mutable fields (parties, weight, price, ETA, notes, status).
	Update(ctx context.Context, aggregate *shipment.Shipment) error

	// Get returns ObjectNotFoundError for unknown ids.
	Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)

	// GetForUpdate is Get holding a row lock until the surrounding transaction ends.
	// Read-modify-write flows use it so concurrent transitions serialize.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)

	// GetByCode returns ObjectNotFoundError for unknown codes.
	GetByCode(ctx context.Context, code shipment.Code) (*shipment.Shipment, error)

	ExistsByCode(ctx context.Context, code shipment.Code) (bool, error)

	// Delete removes the shipment; its tracking events and packages go with it.
	Delete(ctx context.Context, id kernel.UUID) error
}
