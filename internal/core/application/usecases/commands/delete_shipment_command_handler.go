package commands

import (
	"context"
	"fmt"

	"timberops/internal/core/ports"
	"timberops/internal/pkg/errs"
)

// DeleteShipmentCommandHandler deletes draft shipments.
//
// Package disposal depends on where the packages came from. Drafts between
// internal organisations carry packages selected from the sender's inventory,
// so deletion unlinks them back to free inventory. Incoming drafts from
// external suppliers carry packages created just for the draft, so those are
// deleted outright. A package referenced by a production input blocks the
// whole deletion either way.
type DeleteShipmentCommandHandler struct {
	uowFactory UoWFactory
	directory  ports.OrganisationDirectory
}

// NewDeleteShipmentCommandHandler creates a handler for draft deletion.
func NewDeleteShipmentCommandHandler(
	uowFactory UoWFactory,
	directory ports.OrganisationDirectory,
) DeleteShipmentCommandHandler {
	return DeleteShipmentCommandHandler{uowFactory: uowFactory, directory: directory}
}

// Handle validates caller rights and draft status, disposes of the shipment's
// packages, and removes the shipment with its pallets.
func (h DeleteShipmentCommandHandler) Handle(ctx context.Context, cmd DeleteShipmentCommand) error {
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

	// The row lock pins the draft status until commit; a concurrent submit
	// waits here and then fails on the deleted row.
	aggregate, err := uow.ShipmentRepository().GetLocked(ctx, cmd.ShipmentID())
	if err != nil {
		return err
	}

	sender, err := h.directory.GetOrganisation(ctx, aggregate.FromOrganisationID())
	if err != nil {
		return errs.NewDomainErrorWithCause(errs.CodeOrgNotFound, "sender organisation not found", err)
	}

	if err = aggregate.ValidateDelete(cmd.Actor().OrganisationID(), sender.IsExternal); err != nil {
		return err
	}

	refs, err := uow.PackageRepository().CountProductionReferences(ctx, aggregate.ID())
	if err != nil {
		return errs.NewDomainErrorWithCause(errs.CodeCountFailed, "production reference count failed", err)
	}
	if refs > 0 {
		return errs.NewDomainError(
			errs.CodeValidationFailed,
			fmt.Sprintf("%d of the shipment's packages are referenced by production inputs", refs),
		)
	}

	if sender.IsExternal {
		err = uow.PackageRepository().DeleteByShipment(ctx, aggregate.ID())
	} else {
		err = uow.PackageRepository().UnlinkByShipment(ctx, aggregate.ID())
	}
	if err != nil {
		return errs.NewDomainErrorWithCause(errs.CodeDeleteFailed, "package disposal failed", err)
	}

	if err = uow.ShipmentRepository().Delete(ctx, aggregate.ID()); err != nil {
		return errs.NewDomainErrorWithCause(errs.CodeDeleteFailed, "shipment delete failed", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return errs.NewDomainErrorWithCause(errs.CodeDeleteFailed, "shipment delete failed", err)
	}
	return nil
}
