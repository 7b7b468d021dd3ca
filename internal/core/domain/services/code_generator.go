package services

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/pkg/errs"
)

// MaxCodeAttempts bounds how many candidates Generate tries before giving up.
const MaxCodeAttempts = 5

// ErrCodeGenerationExhausted is returned when every candidate collided with a stored code.
var ErrCodeGenerationExhausted = errs.NewBusinessRuleViolationError("could not generate unique code")

// CodeLookup reports whether a tracking code is already taken.
type CodeLookup interface {
	ExistsByCode(ctx context.Context, code shipment.Code) (bool, error)
}

// CodeGenerator builds tracking codes of the form
//
//	ENV<unix milliseconds><3-digit random suffix>   e.g. ENV1718035200123042
//
// Uniqueness is checked against the store and enforced again by the unique index on
// insert, so a concurrent writer racing for the same code loses with an error rather
// than a duplicate.
type CodeGenerator struct {
	now    func() time.Time
	suffix func() int
}

// NewCodeGenerator uses the wall clock and math/rand/v2.
func NewCodeGenerator() CodeGenerator {
	return NewCodeGeneratorWithSource(time.Now, func() int { return rand.IntN(1000) })
}

// NewCodeGeneratorWithSource injects the clock and the suffix source, for tests.
func NewCodeGeneratorWithSource(now func() time.Time, suffix func() int) CodeGenerator {
	return CodeGenerator{now: now, suffix: suffix}
}

// Generate returns the first free candidate within MaxCodeAttempts tries.
// Lookup errors are returned unchanged.
func (g CodeGenerator) Generate(ctx context.Context, lookup CodeLookup) (shipment.Code, error) {
	for range MaxCodeAttempts {
		candidate, err := shipment.NewCode(
			fmt.Sprintf("%s%d%03d", shipment.CodePrefix, g.now().UnixMilli(), g.suffix()%1000),
		)
		if err != nil {
			return shipment.Code{}, err
		}

		exists, err := lookup.ExistsByCode(ctx, candidate)
		if err != nil {
			return shipment.Code{}, err
		}
		if !exists {
			return candidate, nil
		}
	}

	return shipment.Code{}, ErrCodeGenerationExhausted
}
