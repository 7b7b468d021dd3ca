// Package user models the accounts that authenticate against the logistics API.
package user

import (
	"errors"
	"fmt"
	"strings"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

const (
	UsernameMinLength = 3
	UsernameMaxLength = 50
	FullNameMaxLength = 100
	EmailMaxLength    = 100
)

var ErrUserIsNotConstructed = errors.New("User must be created via NewUser or RestoreUser constructor")

// User is an account. The password is held only as an encoded hash; verifying it is
// the job of a PasswordVerifier.
type User struct {
	id           kernel.UUID
	username     string
	passwordHash string
	fullName     string
	email        string
	role         Role
	active       bool

	guard guard.ConstructorGuard
}

// NewUser creates an active account.
func NewUser(id kernel.UUID, username, passwordHash, fullName, email string, role Role) (*User, error) {
	return RestoreUser(id, username, passwordHash, fullName, email, role, true)
}

// RestoreUser rebuilds a persisted account.
func RestoreUser(
	id kernel.UUID,
	username, passwordHash, fullName, email string,
	role Role,
	active bool,
) (*User, error) {
	u := &User{active: active, guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		u.setID(id),
		u.setUsername(username),
		u.setPasswordHash(passwordHash),
		u.setFullName(fullName),
		u.setEmail(email),
		u.setRole(role),
	); err != nil {
		return nil, err
	}

	return u, nil
}

func (u *User) Validate() error {
	if u == nil {
		return ErrUserIsNotConstructed
	}
	return u.guard.Validate(ErrUserIsNotConstructed)
}

func (u *User) Deactivate() {
	u.active = false
}

func (u *User) Activate() {
	u.active = true
}

func (u *User) ID() kernel.UUID {
	return u.id
}

func (u *User) Username() string {
	return u.username
}

func (u *User) PasswordHash() string {
	return u.passwordHash
}

func (u *User) FullName() string {
	return u.fullName
}

func (u *User) Email() string {
	return u.email
}

func (u *User) Role() Role {
	return u.role
}

func (u *User) IsActive() bool {
	return u.active
}

func (u *User) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *User) setUsername(username string) error {
	trimmed, err := kernel.RequiredText("username", username, UsernameMaxLength)
	if err != nil {
		return err
	}
	if n := len([]rune(trimmed)); n < UsernameMinLength {
		return errs.NewValueIsOutOfRangeError("username length", n, UsernameMinLength, UsernameMaxLength)
	}
	if strings.ContainsAny(trimmed, " \t\n") {
		return errs.NewValueIsInvalidErrorWithCause("username", fmt.Errorf("%q contains whitespace", trimmed))
	}
	u.username = trimmed
	return nil
}

func (u *User) setPasswordHash(hash string) error {
	if hash == "" {
		return errs.NewValueIsRequiredError("password hash")
	}
	u.passwordHash = hash
	return nil
}

func (u *User) setFullName(fullName string) (err error) {
	u.fullName, err = kernel.RequiredText("full name", fullName, FullNameMaxLength)
	return err
}

func (u *User) setEmail(email string) error {
	trimmed, err := kernel.RequiredText("email", email, EmailMaxLength)
	if err != nil {
		return err
	}
	if at := strings.Index(trimmed, "@"); at <= 0 || at == len(trimmed)-1 {
		return errs.NewValueIsInvalidError("email")
	}
	u.email = trimmed
	return nil
}

func (u *User) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	u.role = role
	return nil
}
