package commands

import (
	"context"
	"errors"

	"timberops/internal/core/ports"
	"timberops/internal/pkg/errs"
)

// CreatePalletResult reports the created pallet and its number within the
// shipment.
type CreatePalletResult struct {
	PalletID     string
	PalletNumber int
}

// CreatePalletCommandHandler adds pallets to draft shipments.
// Pallets live inside the shipment aggregate, so the version
// compare-and-swap already serializes concurrent numbering.
type CreatePalletCommandHandler struct {
	uowFactory ShipmentUoWFactory
	directory  ports.OrganisationDirectory
}

// NewCreatePalletCommandHandler creates a handler for pallet creation.
func NewCreatePalletCommandHandler(
	uowFactory ShipmentUoWFactory,
	directory ports.OrganisationDirectory,
) CreatePalletCommandHandler {
	return CreatePalletCommandHandler{uowFactory: uowFactory, directory: directory}
}

// Handle creates a pallet numbered max existing + 1 on the draft.
func (h CreatePalletCommandHandler) Handle(ctx context.Context, cmd CreatePalletCommand) (CreatePalletResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreatePalletResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CreatePalletResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.ShipmentRepository().Get(ctx, cmd.ShipmentID())
	if err != nil {
		return CreatePalletResult{}, err
	}

	if err = ensureDraftEditor(ctx, h.directory, aggregate, cmd.Actor().OrganisationID()); err != nil {
		return CreatePalletResult{}, err
	}

	pallet, err := aggregate.CreatePallet(cmd.PalletID())
	if err != nil {
		return CreatePalletResult{}, err
	}

	if err = uow.ShipmentRepository().Update(ctx, aggregate); err != nil {
		if errors.Is(err, ports.ErrVersionConflict) {
			return CreatePalletResult{}, errs.NewDomainErrorWithCause(
				errs.CodeNotDraft, "shipment was changed by another request and is no longer a draft", err)
		}
		return CreatePalletResult{}, errs.NewDomainErrorWithCause(
			errs.CodeUpdateFailed, "shipment update failed", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return CreatePalletResult{}, errs.NewDomainErrorWithCause(
			errs.CodeUpdateFailed, "shipment update failed", err)
	}

	return CreatePalletResult{
		PalletID:     pallet.ID().String(),
		PalletNumber: pallet.PalletNumber(),
	}, nil
}
