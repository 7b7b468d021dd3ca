package shipment

import (
	"errors"
	"time"

	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

const (
	DefaultUnitRate = 10
	DefaultETADays  = 3
)

var ErrPricingPolicyIsNotConstructed = errors.New("PricingPolicy must be created via NewPricingPolicy constructor")

// PricingPolicy derives price and estimated delivery of a shipment.
//
//	price             = round(weight × unitRate, 2)
//	estimatedDelivery = createdAt + etaDays
type PricingPolicy struct {
	unitRate decimal.Decimal
	etaDays  int
	guard    guard.ConstructorGuard
}

func NewPricingPolicy(unitRate decimal.Decimal, etaDays int) (PricingPolicy, error) {
	if unitRate.IsNegative() {
		return PricingPolicy{}, errs.NewValueIsOutOfRangeError("unit rate", unitRate, 0, "unbounded")
	}
	if etaDays < 0 {
		return PricingPolicy{}, errs.NewValueIsOutOfRangeError("eta days", etaDays, 0, "unbounded")
	}
	return PricingPolicy{unitRate: unitRate, etaDays: etaDays, guard: guard.NewConstructorGuard()}, nil
}

// DefaultPricingPolicy charges 10 per weight unit and promises delivery in 3 days.
func DefaultPricingPolicy() PricingPolicy {
	policy, _ := NewPricingPolicy(decimal.NewFromInt(DefaultUnitRate), DefaultETADays)
	return policy
}

func (p PricingPolicy) Validate() error {
	return p.guard.Validate(ErrPricingPolicyIsNotConstructed)
}

func (p PricingPolicy) UnitRate() decimal.Decimal {
	return p.unitRate
}

func (p PricingPolicy) ETADays() int {
	return p.etaDays
}

// Price rounds half away from zero to two decimals.
func (p PricingPolicy) Price(weight decimal.Decimal) decimal.Decimal {
	return weight.Mul(p.unitRate).Round(2)
}

// EstimatedDelivery adds etaDays calendar days to createdAt.
func (p PricingPolicy) EstimatedDelivery(createdAt time.Time) time.Time {
	return createdAt.AddDate(0, 0, p.etaDays)
}
