package shipment

import (
	"errors"
	"fmt"
	"strings"

	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

const (
	// CodePrefix starts every generated tracking code.
	CodePrefix = "ENV"

	// CodeMaxLength matches the width of the code column.
	CodeMaxLength = 20
)

var ErrCodeIsNotConstructed = errors.New("Code must be created via NewCode constructor")

// Code is the public tracking code customers quote, e.g. "ENV1718035200123042".
type Code struct {
	value string
	guard guard.ConstructorGuard
}

// NewCode accepts any non-blank code of at most CodeMaxLength characters without spaces.
// Generation rules live in the code generator service; this type only guards the shape.
func NewCode(value string) (Code, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Code{}, errs.NewValueIsRequiredError("code")
	}
	if len(value) > CodeMaxLength {
		return Code{}, errs.NewValueIsOutOfRangeError("code length", len(value), 1, CodeMaxLength)
	}
	if strings.ContainsAny(value, " \t\n") {
		return Code{}, errs.NewValueIsInvalidErrorWithCause("code", fmt.Errorf("%q contains whitespace", value))
	}
	return Code{value: value, guard: guard.NewConstructorGuard()}, nil
}

func (c Code) String() string {
	return c.value
}

func (c Code) IsEqual(other Code) bool {
	return c.value == other.value
}

func (c Code) Validate() error {
	return c.guard.Validate(ErrCodeIsNotConstructed)
}
