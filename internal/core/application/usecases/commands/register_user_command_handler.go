package commands

import (
	"context"

	"logistics/internal/core/domain/model/user"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"
)

type RegisterUserCommandHandler struct {
	uowFactory UserUoWFactory
	hasher     ports.PasswordHasher
}

func NewRegisterUserCommandHandler(uowFactory UserUoWFactory, hasher ports.PasswordHasher) RegisterUserCommandHandler {
	return RegisterUserCommandHandler{
		uowFactory: uowFactory,
		hasher:     hasher,
	}
}

// Handle returns ObjectAlreadyExistsError when the username is taken.
func (h *RegisterUserCommandHandler) Handle(ctx context.Context, cmd RegisterUserCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	users := uow.UserRepository()
	exists, err := users.ExistsByUsername(ctx, cmd.Username())
	if err != nil {
		return err
	}
	if exists {
		return errs.NewObjectAlreadyExistsError("username", cmd.Username())
	}

	hash, err := h.hasher.Hash(cmd.Password())
	if err != nil {
		return err
	}

	aggregate, err := user.NewUser(cmd.UserID(), cmd.Username(), hash, cmd.FullName(), cmd.Email(), cmd.Role())
	if err != nil {
		return err
	}

	if err = users.Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
