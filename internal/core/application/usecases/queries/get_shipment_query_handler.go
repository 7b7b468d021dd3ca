package queries

import (
	"context"
	"database/sql"
	"errors"

	"logistics/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetShipmentQueryHandler assembles the full shipment view: parties, latest tracking
// event and packages.
type GetShipmentQueryHandler struct {
	db *gorm.DB
}

func NewGetShipmentQueryHandler(db *gorm.DB) GetShipmentQueryHandler {
	return GetShipmentQueryHandler{db: db}
}

// Handle returns ObjectNotFoundError when no shipment matches.
func (h GetShipmentQueryHandler) Handle(ctx context.Context, query GetShipmentQuery) (ShipmentView, error) {
	if err := query.Validate(); err != nil {
		return ShipmentView{}, err
	}

	db := h.db.WithContext(ctx)

	var row *sql.Row
	if query.ByCode() {
		row = db.Raw(shipmentViewSelect+" WHERE s.code = ?", query.Code()).Row()
	} else {
		row = db.Raw(shipmentViewSelect+" WHERE s.id = ?", query.ID().Bytes()).Row()
	}

	view, err := scanShipmentView(row)
	if errors.Is(err, sql.ErrNoRows) {
		if query.ByCode() {
			return ShipmentView{}, errs.NewObjectNotFoundError("code", query.Code())
		}
		return ShipmentView{}, errs.NewObjectNotFoundError("shipment", query.ID())
	}
	if err != nil {
		return ShipmentView{}, err
	}

	latest, err := latestTrackingEvent(db, view.ID.Bytes())
	if err != nil {
		return ShipmentView{}, err
	}
	view.Latest = latest

	packages, err := packagesOf(db, view.ID.Bytes())
	if err != nil {
		return ShipmentView{}, err
	}
	view.Packages = packages

	return view, nil
}
