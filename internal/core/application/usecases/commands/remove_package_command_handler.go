package commands

import (
	"context"
	"fmt"

	"timberops/internal/core/ports"
	"timberops/internal/pkg/errs"
)

// RemovePackageCommandHandler removes packages from draft shipments.
type RemovePackageCommandHandler struct {
	uowFactory UoWFactory
	directory  ports.OrganisationDirectory
}

// NewRemovePackageCommandHandler creates a handler for package removal.
func NewRemovePackageCommandHandler(
	uowFactory UoWFactory,
	directory ports.OrganisationDirectory,
) RemovePackageCommandHandler {
	return RemovePackageCommandHandler{uowFactory: uowFactory, directory: directory}
}

// Handle verifies the package belongs to the given draft shipment and deletes
// its row. A package linked elsewhere, or not linked at all, is WrongShipment.
func (h RemovePackageCommandHandler) Handle(ctx context.Context, cmd RemovePackageCommand) error {
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

	// The row lock pins the draft status until commit, so the package cannot
	// be deleted out of a shipment that just went pending.
	aggregate, err := uow.ShipmentRepository().GetLocked(ctx, cmd.ShipmentID())
	if err != nil {
		return err
	}

	if err = aggregate.Status().ValidateDraft(); err != nil {
		return err
	}
	if err = ensureDraftEditor(ctx, h.directory, aggregate, cmd.Actor().OrganisationID()); err != nil {
		return err
	}

	pkg, err := uow.PackageRepository().Get(ctx, cmd.PackageID())
	if err != nil {
		return err
	}
	if pkg.ShipmentID() == nil || !pkg.ShipmentID().IsEqual(aggregate.ID()) {
		return errs.NewDomainError(
			errs.CodeWrongShipment,
			fmt.Sprintf("package %s does not belong to shipment %s", pkg.ID(), aggregate.Code()),
		)
	}

	if err = uow.PackageRepository().Delete(ctx, pkg.ID()); err != nil {
		return errs.NewDomainErrorWithCause(errs.CodeDeleteFailed, "package delete failed", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return errs.NewDomainErrorWithCause(errs.CodeDeleteFailed, "package delete failed", err)
	}
	return nil
}
