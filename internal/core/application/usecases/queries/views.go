// Package queries contains the read side: shipment views, listings, status statistics,
// tracking history, branches and packages.
//
// Handlers run SQL directly through *gorm.DB and return flat read models. They never
// load aggregates, so they are free to join across tables.
package queries

import (
	"errors"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/tracking"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CustomerSummary is the part of a user shown next to a shipment.
type CustomerSummary struct {
	ID       kernel.UUID
	Username string
	FullName string
}

// BranchSummary is the part of a branch shown next to a shipment.
type BranchSummary struct {
	ID   kernel.UUID
	Name string
	City string
}

type TrackingEventView struct {
	ID         kernel.UUID
	ShipmentID kernel.UUID
	OccurredAt time.Time
	Label      string
	Location   string
	UserID     *kernel.UUID
	Notes      string
}

// TrackingEventViewOf renders a ledger entry the way the read side returns it.
func TrackingEventViewOf(e tracking.Event) TrackingEventView {
	return TrackingEventView{
		ID:         e.ID(),
		ShipmentID: e.ShipmentID(),
		OccurredAt: e.OccurredAt(),
		Label:      e.Label(),
		Location:   e.Location(),
		UserID:     e.UserID(),
		Notes:      e.Notes(),
	}
}

type PackageView struct {
	ID            kernel.UUID
	ShipmentID    kernel.UUID
	Description   string
	DeclaredValue decimal.Decimal
	Weight        decimal.Decimal
	Dimensions    string
}

type BranchView struct {
	ID      kernel.UUID
	Name    string
	City    string
	Address string
	Phone   string
}

// ShipmentView is the read model of a shipment. Latest is nil when the shipment has no
// history; Packages is only filled by GetShipmentQueryHandler.
type ShipmentView struct {
	ID                kernel.UUID
	Code              string
	Status            string
	Customer          CustomerSummary
	Origin            BranchSummary
	Destination       BranchSummary
	Weight            decimal.Decimal
	Price             decimal.Decimal
	CreatedAt         time.Time
	EstimatedDelivery time.Time
	Notes             string
	Latest            *TrackingEventView
	Packages          []PackageView
}

type rowScanner interface {
	Scan(dest ...any) error
}

const shipmentViewSelect = `
	SELECT
		s.id,
		s.code,
		s.status,
		s.weight,
		s.price,
		s.created_at,
		s.estimated_delivery,
		s.notes,
		u.id,
		u.username,
		u.full_name,
		o.id,
		o.name,
		o.city,
		d.id,
		d.name,
		d.city
	FROM shipments s
	JOIN users u ON u.id = s.customer_id
	JOIN branches o ON o.id = s.origin_id
	JOIN branches d ON d.id = s.destination_id
`

func scanShipmentView(row rowScanner) (ShipmentView, error) {
	var view ShipmentView
	var id, customerID, originID, destinationID uuid.UUID

	err := row.Scan(
		&id,
		&view.Code,
		&view.Status,
		&view.Weight,
		&view.Price,
		&view.CreatedAt,
		&view.EstimatedDelivery,
		&view.Notes,
		&customerID,
		&view.Customer.Username,
		&view.Customer.FullName,
		&originID,
		&view.Origin.Name,
		&view.Origin.City,
		&destinationID,
		&view.Destination.Name,
		&view.Destination.City,
	)
	if err != nil {
		return ShipmentView{}, err
	}

	var idErrs [4]error
	view.ID, idErrs[0] = kernel.UUIDFromBytes(id[:])
	view.Customer.ID, idErrs[1] = kernel.UUIDFromBytes(customerID[:])
	view.Origin.ID, idErrs[2] = kernel.UUIDFromBytes(originID[:])
	view.Destination.ID, idErrs[3] = kernel.UUIDFromBytes(destinationID[:])
	if err = errors.Join(idErrs[:]...); err != nil {
		return ShipmentView{}, err
	}

	view.CreatedAt = view.CreatedAt.UTC()
	view.EstimatedDelivery = view.EstimatedDelivery.UTC()
	return view, nil
}

const trackingEventSelect = `
	SELECT
		id,
		shipment_id,
		occurred_at,
		label,
		COALESCE(location, ''),
		user_id,
		COALESCE(notes, '')
	FROM tracking_events
`

func scanTrackingEvent(row rowScanner) (TrackingEventView, error) {
	var view TrackingEventView
	var id, shipmentID uuid.UUID
	var userID uuid.NullUUID

	err := row.Scan(
		&id,
		&shipmentID,
		&view.OccurredAt,
		&view.Label,
		&view.Location,
		&userID,
		&view.Notes,
	)
	if err != nil {
		return TrackingEventView{}, err
	}

	var idErr, shipmentErr error
	view.ID, idErr = kernel.UUIDFromBytes(id[:])
	view.ShipmentID, shipmentErr = kernel.UUIDFromBytes(shipmentID[:])
	if err = errors.Join(idErr, shipmentErr); err != nil {
		return TrackingEventView{}, err
	}

	if userID.Valid {
		actor, actorErr := kernel.UUIDFromBytes(userID.UUID[:])
		if actorErr != nil {
			return TrackingEventView{}, actorErr
		}
		view.UserID = &actor
	}

	view.OccurredAt = view.OccurredAt.UTC()
	return view, nil
}

const packageSelect = `
	SELECT
		id,
		shipment_id,
		description,
		declared_value,
		weight,
		dimensions
	FROM packages
`

func scanPackage(row rowScanner) (PackageView, error) {
	var view PackageView
	var id, shipmentID uuid.UUID

	err := row.Scan(
		&id,
		&shipmentID,
		&view.Description,
		&view.DeclaredValue,
		&view.Weight,
		&view.Dimensions,
	)
	if err != nil {
		return PackageView{}, err
	}

	var idErr, shipmentErr error
	view.ID, idErr = kernel.UUIDFromBytes(id[:])
	view.ShipmentID, shipmentErr = kernel.UUIDFromBytes(shipmentID[:])
	if err = errors.Join(idErr, shipmentErr); err != nil {
		return PackageView{}, err
	}
	return view, nil
}
