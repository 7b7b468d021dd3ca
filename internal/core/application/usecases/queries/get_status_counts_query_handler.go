package queries

import (
	"context"

	"logistics/internal/core/domain/model/shipment"

	"gorm.io/gorm"
)

type GetStatusCountsQueryHandler struct {
	db *gorm.DB
}

func NewGetStatusCountsQueryHandler(db *gorm.DB) GetStatusCountsQueryHandler {
	return GetStatusCountsQueryHandler{db: db}
}

// Handle returns one entry per status in lifecycle order. Statuses without shipments
// are reported with a zero count.
func (h GetStatusCountsQueryHandler) Handle(ctx context.Context, query GetStatusCountsQuery) ([]StatusCount, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			count(*)
		FROM shipments
		GROUP BY status
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counted := make(map[string]int64)
	for rows.Next() {
		var status string
		var count int64
		if err = rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counted[status] = count
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	all := shipment.AllStatuses()
	result := make([]StatusCount, 0, len(all))
	for _, s := range all {
		result = append(result, StatusCount{Status: s.String(), Count: counted[s.String()]})
	}
	return result, nil
}
