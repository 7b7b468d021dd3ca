// Package branch models the physical offices where shipments start and end.
package branch

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

const (
	NameMaxLength    = 100
	CityMaxLength    = 50
	AddressMaxLength = 200
	PhoneMaxLength   = 20
)

var ErrBranchIsNotConstructed = errors.New("Branch must be created via NewBranch constructor")

type Branch struct {
	id      kernel.UUID
	name    string
	city    string
	address string
	phone   string

	guard guard.ConstructorGuard
}

// NewBranch requires name and city; address and phone are optional.
func NewBranch(id kernel.UUID, name, city, address, phone string) (*Branch, error) {
	b := &Branch{guard: guard.NewConstructorGuard()}

	var idErr error
	if idErr = id.Validate(); idErr == nil {
		b.id = id
	}

	var nameErr, cityErr, addressErr, phoneErr error
	b.name, nameErr = kernel.RequiredText("name", name, NameMaxLength)
	b.city, cityErr = kernel.RequiredText("city", city, CityMaxLength)
	b.address, addressErr = kernel.OptionalText("address", address, AddressMaxLength)
	b.phone, phoneErr = kernel.OptionalText("phone", phone, PhoneMaxLength)

	if err := errors.Join(idErr, nameErr, cityErr, addressErr, phoneErr); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Branch) Validate() error {
	if b == nil {
		return ErrBranchIsNotConstructed
	}
	return b.guard.Validate(ErrBranchIsNotConstructed)
}

func (b *Branch) ID() kernel.UUID {
	return b.id
}

func (b *Branch) Name() string {
	return b.name
}

func (b *Branch) City() string {
	return b.city
}

func (b *Branch) Address() string {
	return b.address
}

func (b *Branch) Phone() string {
	return b.phone
}
