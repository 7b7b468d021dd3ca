package queries

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

var ErrListShipmentsQueryIsNotConstructed = errors.New(
	"ListShipmentsQuery must be created via NewListShipmentsQuery constructor",
)

// ListShipmentsQuery pages through shipments, newest first. Pages are zero-based.
// Filters are optional and combine with AND.
type ListShipmentsQuery struct {
	page       int
	size       int
	status     *shipment.Status
	customerID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewListShipmentsQuery applies DefaultPageSize when size is 0.
func NewListShipmentsQuery(page, size int) (ListShipmentsQuery, error) {
	if size == 0 {
		size = DefaultPageSize
	}

	var pageErr, sizeErr error
	if page < 0 {
		pageErr = errs.NewValueIsOutOfRangeError("page", page, 0, "unbounded")
	}
	if size < 1 || size > MaxPageSize {
		sizeErr = errs.NewValueIsOutOfRangeError("size", size, 1, MaxPageSize)
	}
	if err := errors.Join(pageErr, sizeErr); err != nil {
		return ListShipmentsQuery{}, err
	}

	return ListShipmentsQuery{page: page, size: size, guard: guard.NewConstructorGuard()}, nil
}

// WithStatus restricts the listing to one status.
func (q ListShipmentsQuery) WithStatus(status shipment.Status) ListShipmentsQuery {
	q.status = &status
	return q
}

// WithCustomer restricts the listing to one customer's shipments.
func (q ListShipmentsQuery) WithCustomer(customerID kernel.UUID) ListShipmentsQuery {
	q.customerID = &customerID
	return q
}

func (q ListShipmentsQuery) Validate() error {
	return q.guard.Validate(ErrListShipmentsQueryIsNotConstructed)
}

func (q ListShipmentsQuery) Page() int {
	return q.page
}

func (q ListShipmentsQuery) Size() int {
	return q.size
}

// Status returns the status filter, nil when unfiltered.
func (q ListShipmentsQuery) Status() *shipment.Status {
	return q.status
}

// CustomerID returns the customer filter, nil when unfiltered.
func (q ListShipmentsQuery) CustomerID() *kernel.UUID {
	return q.customerID
}

// ShipmentPage is one page of a listing.
type ShipmentPage struct {
	Items      []ShipmentView
	Page       int
	Size       int
	TotalItems int64
	TotalPages int
}
