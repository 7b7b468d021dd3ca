package commands

import (
	"context"

	"logistics/internal/core/domain/model/parcel"
)

type AddPackageCommandHandler struct {
	uowFactory PackageUoWFactory
}

func NewAddPackageCommandHandler(uowFactory PackageUoWFactory) AddPackageCommandHandler {
	return AddPackageCommandHandler{uowFactory: uowFactory}
}

func (h *AddPackageCommandHandler) Handle(ctx context.Context, cmd AddPackageCommand) error {
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

	if _, err := uow.ShipmentRepository().Get(ctx, cmd.ShipmentID()); err != nil {
		return err
	}

	aggregate, err := parcel.NewPackage(
		cmd.PackageID(), cmd.ShipmentID(), cmd.Description(),
		cmd.DeclaredValue(), cmd.Weight(), cmd.Dimensions(),
	)
	if err != nil {
		return err
	}

	if err = uow.PackageRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
