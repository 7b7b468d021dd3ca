package queries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListPackagesQueryHandler struct {
	db *gorm.DB
}

func NewListPackagesQueryHandler(db *gorm.DB) ListPackagesQueryHandler {
	return ListPackagesQueryHandler{db: db}
}

// Handle returns ObjectNotFoundError for unknown shipments.
func (h ListPackagesQueryHandler) Handle(ctx context.Context, query ListPackagesQuery) ([]PackageView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)
	if err := ensureShipmentExists(db, query.ShipmentID()); err != nil {
		return nil, err
	}
	return packagesOf(db, query.ShipmentID().Bytes())
}

func packagesOf(db *gorm.DB, shipmentID uuid.UUID) ([]PackageView, error) {
	rows, err := db.Raw(packageSelect+" WHERE shipment_id = ? ORDER BY description, id", shipmentID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	packages := make([]PackageView, 0)
	for rows.Next() {
		view, scanErr := scanPackage(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		packages = append(packages, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return packages, nil
}
