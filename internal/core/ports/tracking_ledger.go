package ports

import (
	"context"
	"fmt"
	"strings"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/tracking"
	"logistics/internal/pkg/errs"
)

// SortOrder selects the direction of a chronological listing.
type SortOrder int

const (
	Ascending SortOrder = iota
	Descending
)

// ParseSortOrder accepts "asc" / "desc" in any case; empty means Ascending.
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc":
		return Ascending, nil
	case "desc":
		return Descending, nil
	default:
		return Ascending, errs.NewValueIsInvalidErrorWithCause("order", fmt.Errorf("%q is not asc or desc", s))
	}
}

func (o SortOrder) String() string {
	if o == Descending {
		return "desc"
	}
	return "asc"
}

// TrackingLedger is the append-only history of a shipment.
//
// Entries are totally ordered by (occurredAt, insertion sequence), so events sharing
// a timestamp still list in the order they were appended.
type TrackingLedger interface {
	// Append stores the event, stamping it with the current time when it is unstamped,
	// and returns the stored entry. Unknown shipments yield ObjectNotFoundError.
	Append(ctx context.Context, event tracking.Event) (tracking.Event, error)

	// ListByShipment returns the full history in the requested order; empty when none.
	ListByShipment(ctx context.Context, shipmentID kernel.UUID, order SortOrder) ([]tracking.Event, error)

	// Latest returns the most recent entry, or nil when the shipment has no history.
	Latest(ctx context.Context, shipmentID kernel.UUID) (*tracking.Event, error)
}
