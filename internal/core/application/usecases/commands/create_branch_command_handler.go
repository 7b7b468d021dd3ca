package commands

import (
	"context"

	"logistics/internal/core/domain/model/branch"
)

type CreateBranchCommandHandler struct {
	uowFactory BranchUoWFactory
}

func NewCreateBranchCommandHandler(uowFactory BranchUoWFactory) CreateBranchCommandHandler {
	return CreateBranchCommandHandler{uowFactory: uowFactory}
}

func (h *CreateBranchCommandHandler) Handle(ctx context.Context, cmd CreateBranchCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregate, err := branch.NewBranch(cmd.BranchID(), cmd.Name(), cmd.City(), cmd.Address(), cmd.Phone())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.BranchRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
