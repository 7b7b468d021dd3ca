package kernel

import (
	"strings"
	"unicode/utf8"

	"logistics/internal/pkg/errs"
)

// RequiredText trims value and checks it is non-empty and at most maxLen runes long.
func RequiredText(paramName, value string, maxLen int) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", errs.NewValueIsRequiredError(paramName)
	}
	return OptionalText(paramName, trimmed, maxLen)
}

// OptionalText trims value and checks it is at most maxLen runes long. Empty is allowed.
func OptionalText(paramName, value string, maxLen int) (string, error) {
	trimmed := strings.TrimSpace(value)
	if n := utf8.RuneCountInString(trimmed); n > maxLen {
		return "", errs.NewValueIsOutOfRangeError(paramName+" length", n, 0, maxLen)
	}
	return trimmed, nil
}
