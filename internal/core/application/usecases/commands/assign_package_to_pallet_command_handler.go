package commands

import (
	"context"
	"fmt"

	"timberops/internal/core/ports"
	"timberops/internal/pkg/errs"
)

// AssignPackageToPalletCommandHandler moves packages between pallets within
// their draft shipment.
type AssignPackageToPalletCommandHandler struct {
	uowFactory UoWFactory
	directory  ports.OrganisationDirectory
}

// NewAssignPackageToPalletCommandHandler creates a handler for pallet
// assignment.
func NewAssignPackageToPalletCommandHandler(
	uowFactory UoWFactory,
	directory ports.OrganisationDirectory,
) AssignPackageToPalletCommandHandler {
	return AssignPackageToPalletCommandHandler{uowFactory: uowFactory, directory: directory}
}

// Handle verifies that package and pallet both belong to the given draft
// shipment, then records the assignment. No pallet id makes the package
// loose.
func (h AssignPackageToPalletCommandHandler) Handle(ctx context.Context, cmd AssignPackageToPalletCommand) error {
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

	// The row lock pins the draft status until commit.
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

	if palletID := cmd.PalletID(); palletID != nil {
		if _, ok := aggregate.FindPallet(*palletID); !ok {
			return errs.NewDomainError(
				errs.CodePalletNotFound,
				fmt.Sprintf("pallet %s does not belong to shipment %s", palletID, aggregate.Code()),
			)
		}
	}

	if err = pkg.AssignToPallet(cmd.PalletID()); err != nil {
		return err
	}

	if err = uow.PackageRepository().Update(ctx, pkg); err != nil {
		return errs.NewDomainErrorWithCause(errs.CodeUpdateFailed, "package update failed", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return errs.NewDomainErrorWithCause(errs.CodeUpdateFailed, "package update failed", err)
	}
	return nil
}
