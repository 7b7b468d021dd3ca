package commands

import (
	"errors"
	"unicode/utf8"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/user"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

// PasswordMinLength and PasswordMaxLength bound raw passwords at registration.
const (
	PasswordMinLength = 8
	PasswordMaxLength = 72
)

var ErrRegisterUserCommandIsNotConstructed = errors.New(
	"RegisterUserCommand must be created via NewRegisterUserCommand constructor",
)

// RegisterUserCommand creates an account. The raw password only lives in the command
// until the handler hashes it.
type RegisterUserCommand struct { //nolint:recvcheck //using for validation
	userID   kernel.UUID
	username string
	password string
	fullName string
	email    string
	role     user.Role

	guard guard.ConstructorGuard
}

func NewRegisterUserCommand(
	userID kernel.UUID,
	username, password, fullName, email, role string,
) (RegisterUserCommand, error) {
	parsedRole, roleErr := user.ParseRole(role)

	var passwordErr error
	if n := utf8.RuneCountInString(password); n < PasswordMinLength || n > PasswordMaxLength {
		passwordErr = errs.NewValueIsOutOfRangeError("password length", n, PasswordMinLength, PasswordMaxLength)
	}

	if err := errors.Join(requireID("userID", userID), roleErr, passwordErr); err != nil {
		return RegisterUserCommand{}, err
	}

	return RegisterUserCommand{
		userID:   userID,
		username: username,
		password: password,
		fullName: fullName,
		email:    email,
		role:     parsedRole,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c RegisterUserCommand) Validate() error {
	return c.guard.Validate(ErrRegisterUserCommandIsNotConstructed)
}

func (c RegisterUserCommand) UserID() kernel.UUID {
	return c.userID
}

func (c RegisterUserCommand) Username() string {
	return c.username
}

func (c RegisterUserCommand) Password() string {
	return c.password
}

func (c RegisterUserCommand) FullName() string {
	return c.fullName
}

func (c RegisterUserCommand) Email() string {
	return c.email
}

func (c RegisterUserCommand) Role() user.Role {
	return c.role
}
