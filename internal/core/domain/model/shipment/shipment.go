package shipment

import (
	"errors"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

const NotesMaxLength = 1000

// MaxWeight is the largest weight the numeric(8,2) weight column holds.
var MaxWeight = decimal.RequireFromString("999999.99")

var ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment or RestoreShipment constructor")

// Shipment is the aggregate root of the shipment lifecycle.
//
// Invariants:
//   - id, code, customer and both branches are set
//   - weight is positive with at most two decimals
//   - price and estimated delivery always follow the pricing policy of the last write
//   - status only moves through CanTransitionTo
//
// Timestamps are kept in UTC at microsecond precision so they survive a storage round trip.
type Shipment struct {
	id                kernel.UUID
	code              Code
	customerID        kernel.UUID
	originID          kernel.UUID
	destinationID     kernel.UUID
	weight            decimal.Decimal
	price             decimal.Decimal
	status            Status
	createdAt         time.Time
	estimatedDelivery time.Time
	notes             string

	guard guard.ConstructorGuard
}

// NewShipment registers a shipment in status CREADO. References to the customer and the
// branches are checked for existence by the caller; here they only need to be valid ids.
//
// Example:
//
//	s, err := shipment.NewShipment(kernel.NewUUID(), code, customerID, originID, destinationID,
//	    decimal.RequireFromString("2.5"), "fragile", time.Now(), shipment.DefaultPricingPolicy())
//	// s.Price() == 25.00, s.EstimatedDelivery() == createdAt + 3 days
func NewShipment(
	id kernel.UUID,
	code Code,
	customerID, originID, destinationID kernel.UUID,
	weight decimal.Decimal,
	notes string,
	createdAt time.Time,
	policy PricingPolicy,
) (*Shipment, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	if createdAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("createdAt")
	}

	s := &Shipment{
		status:    Created,
		createdAt: normalizeTime(createdAt),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setCode(code),
		s.setParties(customerID, originID, destinationID),
		s.setWeight(weight),
		s.setNotes(notes),
	); err != nil {
		return nil, err
	}

	s.reprice(policy)
	return s, nil
}

// RestoreShipment rebuilds a persisted shipment without re-deriving price or ETA,
// so historical values survive a change of pricing configuration.
func RestoreShipment(
	id kernel.UUID,
	code Code,
	customerID, originID, destinationID kernel.UUID,
	weight, price decimal.Decimal,
	status Status,
	createdAt, estimatedDelivery time.Time,
	notes string,
) (*Shipment, error) {
	s := &Shipment{
		price:             price,
		createdAt:         normalizeTime(createdAt),
		estimatedDelivery: normalizeTime(estimatedDelivery),
		guard:             guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setCode(code),
		s.setParties(customerID, originID, destinationID),
		s.setWeight(weight),
		s.setNotes(notes),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	s.status = status

	return s, nil
}

// Update replaces customer, branches, weight and notes, then recomputes price and ETA.
// Status and code never change here, and no tracking event is implied.
// Shipments that reached a final status are read-only.
func (s *Shipment) Update(
	customerID, originID, destinationID kernel.UUID,
	weight decimal.Decimal,
	notes string,
	policy PricingPolicy,
) error {
	if err := errors.Join(s.Validate(), policy.Validate()); err != nil {
		return err
	}
	if s.status.IsFinal() {
		return errs.NewBusinessRuleViolationError("shipment in status " + s.status.String() + " cannot be modified")
	}

	updated := *s
	if err := errors.Join(
		updated.setParties(customerID, originID, destinationID),
		updated.setWeight(weight),
		updated.setNotes(notes),
	); err != nil {
		return err
	}
	updated.reprice(policy)

	*s = updated
	return nil
}

// ChangeStatus applies a lifecycle transition. The caller records the matching tracking event.
func (s *Shipment) ChangeStatus(next Status) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := s.status.CanTransitionTo(next); err != nil {
		return err
	}

	s.status = next
	return nil
}

func (s *Shipment) Validate() error {
	if s == nil {
		return ErrShipmentIsNotConstructed
	}
	return s.guard.Validate(ErrShipmentIsNotConstructed)
}

func (s *Shipment) ID() kernel.UUID {
	return s.id
}

func (s *Shipment) Code() Code {
	return s.code
}

func (s *Shipment) CustomerID() kernel.UUID {
	return s.customerID
}

func (s *Shipment) OriginID() kernel.UUID {
	return s.originID
}

func (s *Shipment) DestinationID() kernel.UUID {
	return s.destinationID
}

func (s *Shipment) Weight() decimal.Decimal {
	return s.weight
}

func (s *Shipment) Price() decimal.Decimal {
	return s.price
}

func (s *Shipment) Status() Status {
	return s.status
}

func (s *Shipment) CreatedAt() time.Time {
	return s.createdAt
}

func (s *Shipment) EstimatedDelivery() time.Time {
	return s.estimatedDelivery
}

func (s *Shipment) Notes() string {
	return s.notes
}

func (s *Shipment) BelongsTo(userID kernel.UUID) bool {
	return s.customerID.IsEqual(userID)
}

func (s *Shipment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Shipment) setCode(code Code) error {
	if err := code.Validate(); err != nil {
		return err
	}
	s.code = code
	return nil
}

func (s *Shipment) setParties(customerID, originID, destinationID kernel.UUID) error {
	if err := errors.Join(
		wrapID("customerID", customerID),
		wrapID("originID", originID),
		wrapID("destinationID", destinationID),
	); err != nil {
		return err
	}
	s.customerID = customerID
	s.originID = originID
	s.destinationID = destinationID
	return nil
}

func (s *Shipment) setWeight(weight decimal.Decimal) error {
	if !weight.IsPositive() {
		return errs.NewValueIsInvalidError("weight must be greater than 0")
	}
	if weight.Round(2).GreaterThan(MaxWeight) {
		return errs.NewValueIsOutOfRangeError("weight", weight, "0.01", MaxWeight)
	}
	s.weight = weight.Round(2)
	return nil
}

func (s *Shipment) setNotes(notes string) error {
	trimmed, err := kernel.OptionalText("notes", notes, NotesMaxLength)
	if err != nil {
		return err
	}
	s.notes = trimmed
	return nil
}

func (s *Shipment) reprice(policy PricingPolicy) {
	s.price = policy.Price(s.weight)
	s.estimatedDelivery = policy.EstimatedDelivery(s.createdAt)
}

func wrapID(paramName string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(paramName, err)
	}
	return nil
}

func normalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
