package commands

import (
	"context"
	"log/slog"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/core/domain/model/tracking"
	"logistics/internal/core/domain/services"
	"logistics/internal/core/ports"
)

// CreateShipmentCommandHandler registers shipments. The shipment row and its CREADO
// ledger entry are written in one transaction: either both exist or neither does.
type CreateShipmentCommandHandler struct {
	uowFactory    ShipmentUoWFactory
	codeGenerator services.CodeGenerator
	policy        shipment.PricingPolicy
	now           func() time.Time
	notifier      eventNotifier
}

// NewCreateShipmentCommandHandler wires the handler. publisher may be nil.
func NewCreateShipmentCommandHandler(
	uowFactory ShipmentUoWFactory,
	codeGenerator services.CodeGenerator,
	policy shipment.PricingPolicy,
	now func() time.Time,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) CreateShipmentCommandHandler {
	return CreateShipmentCommandHandler{
		uowFactory:    uowFactory,
		codeGenerator: codeGenerator,
		policy:        policy,
		now:           now,
		notifier:      newEventNotifier(publisher, logger),
	}
}

// Handle checks that the customer and both branches exist, generates a unique code,
// prices the shipment and records the CREADO milestone.
func (h *CreateShipmentCommandHandler) Handle(ctx context.Context, cmd CreateShipmentCommand) error {
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

	if err := checkReferences(ctx, uow, cmd.CustomerID(), cmd.OriginID(), cmd.DestinationID()); err != nil {
		return err
	}

	shipmentRepo := uow.ShipmentRepository()
	code, err := h.codeGenerator.Generate(ctx, shipmentRepo)
	if err != nil {
		return err
	}

	aggregate, err := shipment.NewShipment(
		cmd.ShipmentID(), code,
		cmd.CustomerID(), cmd.OriginID(), cmd.DestinationID(),
		cmd.Weight(), cmd.Notes(), h.now(), h.policy,
	)
	if err != nil {
		return err
	}

	if err = shipmentRepo.Add(ctx, aggregate); err != nil {
		return err
	}

	event, err := tracking.NewEvent(kernel.NewUUID(), aggregate.ID(), shipment.Created.String(), "", cmd.ActorID(), "")
	if err != nil {
		return err
	}
	if _, err = uow.TrackingLedger().Append(ctx, event.Stamped(aggregate.CreatedAt())); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.notify(ctx, ports.ShipmentCreatedEvent, aggregate, shipment.Created.String(), aggregate.CreatedAt())
	return nil
}

// checkReferences loads the customer and both branches inside the open transaction.
// Missing ones surface as ObjectNotFoundError from the repositories.
func checkReferences(ctx context.Context, uow ShipmentUoW, customerID, originID, destinationID kernel.UUID) error {
	if _, err := uow.UserRepository().Get(ctx, customerID); err != nil {
		return err
	}

	branches := uow.BranchRepository()
	if _, err := branches.Get(ctx, originID); err != nil {
		return err
	}
	if _, err := branches.Get(ctx, destinationID); err != nil {
		return err
	}
	return nil
}
