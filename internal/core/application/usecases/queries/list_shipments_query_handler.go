package queries

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

// ListShipmentsQueryHandler serves shipment listings. Items carry the parties but not
// the latest event or packages.
type ListShipmentsQueryHandler struct {
	db *gorm.DB
}

func NewListShipmentsQueryHandler(db *gorm.DB) ListShipmentsQueryHandler {
	return ListShipmentsQueryHandler{db: db}
}

func (h ListShipmentsQueryHandler) Handle(ctx context.Context, query ListShipmentsQuery) (ShipmentPage, error) {
	if err := query.Validate(); err != nil {
		return ShipmentPage{}, err
	}

	var conditions []string
	var args []any
	if query.status != nil {
		conditions = append(conditions, "s.status = ?")
		args = append(args, query.status.String())
	}
	if query.customerID != nil {
		conditions = append(conditions, "s.customer_id = ?")
		args = append(args, query.customerID.Bytes())
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	db := h.db.WithContext(ctx)

	var total int64
	if err := db.Raw("SELECT count(*) FROM shipments s"+where, args...).Scan(&total).Error; err != nil {
		return ShipmentPage{}, err
	}

	page := ShipmentPage{
		Items:      make([]ShipmentView, 0, query.size),
		Page:       query.page,
		Size:       query.size,
		TotalItems: total,
		TotalPages: int((total + int64(query.size) - 1) / int64(query.size)),
	}
	if total == 0 {
		return page, nil
	}

	rows, err := db.Raw(
		shipmentViewSelect+where+" ORDER BY s.created_at DESC, s.code DESC LIMIT ? OFFSET ?",
		append(args, query.size, query.page*query.size)...,
	).Rows()
	if err != nil {
		return ShipmentPage{}, err
	}
	defer rows.Close()

	for rows.Next() {
		view, scanErr := scanShipmentView(rows)
		if scanErr != nil {
			return ShipmentPage{}, scanErr
		}
		page.Items = append(page.Items, view)
	}

	if err = rows.Err(); err != nil {
		return ShipmentPage{}, err
	}
	return page, nil
}
