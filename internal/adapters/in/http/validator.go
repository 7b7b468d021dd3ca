package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"logistics/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
)

// requestValidator plugs validator/v10 into echo.Context.Validate.
type requestValidator struct {
	validate *validator.Validate
}

func newRequestValidator() *requestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &requestValidator{validate: v}
}

func (v *requestValidator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errs.NewValueIsInvalidErrorWithCause("request", err)
	}

	problems := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		problems = append(problems, describe(fe))
	}
	return errors.Join(problems...)
}

func describe(fe validator.FieldError) error {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return errs.NewValueIsRequiredError(field)
	case "max", "min":
		return errs.NewValueIsInvalidErrorWithCause(field, fmt.Errorf("length must be %s %s", bound(fe.Tag()), fe.Param()))
	case "oneof":
		return errs.NewValueIsInvalidErrorWithCause(field, fmt.Errorf("must be one of %s", fe.Param()))
	default:
		return errs.NewValueIsInvalidErrorWithCause(field, fmt.Errorf("failed %q check", fe.Tag()))
	}
}

func bound(tag string) string {
	if tag == "max" {
		return "at most"
	}
	return "at least"
}
