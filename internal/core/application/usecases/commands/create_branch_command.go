package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrCreateBranchCommandIsNotConstructed = errors.New(
	"CreateBranchCommand must be created via NewCreateBranchCommand constructor",
)

type CreateBranchCommand struct { //nolint:recvcheck //using for validation
	branchID kernel.UUID
	name     string
	city     string
	address  string
	phone    string

	guard guard.ConstructorGuard
}

func NewCreateBranchCommand(branchID kernel.UUID, name, city, address, phone string) (CreateBranchCommand, error) {
	if err := requireID("branchID", branchID); err != nil {
		return CreateBranchCommand{}, err
	}

	return CreateBranchCommand{
		branchID: branchID,
		name:     name,
		city:     city,
		address:  address,
		phone:    phone,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c CreateBranchCommand) Validate() error {
	return c.guard.Validate(ErrCreateBranchCommandIsNotConstructed)
}

func (c CreateBranchCommand) BranchID() kernel.UUID {
	return c.branchID
}

func (c CreateBranchCommand) Name() string {
	return c.name
}

func (c CreateBranchCommand) City() string {
	return c.city
}

func (c CreateBranchCommand) Address() string {
	return c.address
}

func (c CreateBranchCommand) Phone() string {
	return c.phone
}
