package commands

import (
	"context"
	"errors"

	"timberops/internal/core/ports"
	"timberops/internal/pkg/errs"
)

// DeletePalletCommandHandler removes pallets from draft shipments, making
// their packages loose in the same transaction.
type DeletePalletCommandHandler struct {
	uowFactory UoWFactory
	directory  ports.OrganisationDirectory
}

// NewDeletePalletCommandHandler creates a handler for pallet deletion.
func NewDeletePalletCommandHandler(
	uowFactory UoWFactory,
	directory ports.OrganisationDirectory,
) DeletePalletCommandHandler {
	return DeletePalletCommandHandler{uowFactory: uowFactory, directory: directory}
}

// Handle removes the pallet from the aggregate and clears the pallet linkage
// of every package that sat on it.
func (h DeletePalletCommandHandler) Handle(ctx context.Context, cmd DeletePalletCommand) error {
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

	aggregate, err := uow.ShipmentRepository().Get(ctx, cmd.ShipmentID())
	if err != nil {
		return err
	}

	if err = ensureDraftEditor(ctx, h.directory, aggregate, cmd.Actor().OrganisationID()); err != nil {
		return err
	}

	if err = aggregate.DeletePallet(cmd.PalletID()); err != nil {
		return err
	}

	if err = uow.PackageRepository().ClearPallet(ctx, cmd.PalletID()); err != nil {
		return errs.NewDomainErrorWithCause(errs.CodeUpdateFailed, "package update failed", err)
	}

	if err = uow.ShipmentRepository().Update(ctx, aggregate); err != nil {
		if errors.Is(err, ports.ErrVersionConflict) {
			return errs.NewDomainErrorWithCause(
				errs.CodeNotDraft, "shipment was changed by another request and is no longer a draft", err)
		}
		return errs.NewDomainErrorWithCause(errs.CodeUpdateFailed, "shipment update failed", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return errs.NewDomainErrorWithCause(errs.CodeUpdateFailed, "shipment update failed", err)
	}
	return nil
}
