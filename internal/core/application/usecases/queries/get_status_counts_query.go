package queries

import (
	"errors"

	"logistics/internal/pkg/guard"
)

var ErrGetStatusCountsQueryIsNotConstructed = errors.New(
	"GetStatusCountsQuery must be created via NewGetStatusCountsQuery constructor",
)

type GetStatusCountsQuery struct {
	guard guard.ConstructorGuard
}

func NewGetStatusCountsQuery() GetStatusCountsQuery {
	return GetStatusCountsQuery{guard: guard.NewConstructorGuard()}
}

func (q GetStatusCountsQuery) Validate() error {
	return q.guard.Validate(ErrGetStatusCountsQueryIsNotConstructed)
}

type StatusCount struct {
	Status string
	Count  int64
}
