package ports

import (
	"context"

	"logistics/internal/core/domain/model/branch"
	"logistics/internal/core/domain/model/kernel"
)

type BranchRepository interface {
	Add(ctx context.Context, aggregate *branch.Branch) error
	Get(ctx context.Context, id kernel.UUID) (*branch.Branch, error)
}
