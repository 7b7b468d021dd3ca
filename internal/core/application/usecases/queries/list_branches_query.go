package queries

import (
	"errors"

	"logistics/internal/pkg/guard"
)

var ErrListBranchesQueryIsNotConstructed = errors.New(
	"ListBranchesQuery must be created via NewListBranchesQuery constructor",
)

type ListBranchesQuery struct {
	guard guard.ConstructorGuard
}

func NewListBranchesQuery() ListBranchesQuery {
	return ListBranchesQuery{guard: guard.NewConstructorGuard()}
}

func (q ListBranchesQuery) Validate() error {
	return q.guard.Validate(ErrListBranchesQueryIsNotConstructed)
}
