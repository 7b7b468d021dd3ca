package queries

import (
	"context"

	"logistics/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListBranchesQueryHandler struct {
	db *gorm.DB
}

func NewListBranchesQueryHandler(db *gorm.DB) ListBranchesQueryHandler {
	return ListBranchesQueryHandler{db: db}
}

// Handle lists every branch ordered by city, then name.
func (h ListBranchesQueryHandler) Handle(ctx context.Context, query ListBranchesQuery) ([]BranchView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			city,
			address,
			phone
		FROM branches
		ORDER BY city, name
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	branches := make([]BranchView, 0)
	for rows.Next() {
		var view BranchView
		var id uuid.UUID

		if err = rows.Scan(&id, &view.Name, &view.City, &view.Address, &view.Phone); err != nil {
			return nil, err
		}

		branchID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		view.ID = branchID
		branches = append(branches, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return branches, nil
}
