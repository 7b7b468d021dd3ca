package ports

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/parcel"
)

type PackageRepository interface {
	// Add returns ObjectNotFoundError when the shipment does not exist.
	Add(ctx context.Context, aggregate *parcel.Package) error
	ListByShipment(ctx context.Context, shipmentID kernel.UUID) ([]*parcel.Package, error)
}
