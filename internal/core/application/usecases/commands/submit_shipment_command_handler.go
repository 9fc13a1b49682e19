package commands

import (
	"context"
	"errors"
	"time"

	"timberops/internal/core/ports"
	"timberops/internal/pkg/errs"
)

// SubmitShipmentCommandHandler moves draft shipments into pending review.
type SubmitShipmentCommandHandler struct {
	uowFactory UoWFactory
}

// NewSubmitShipmentCommandHandler creates a handler for the submit transition.
func NewSubmitShipmentCommandHandler(uowFactory UoWFactory) SubmitShipmentCommandHandler {
	return SubmitShipmentCommandHandler{uowFactory: uowFactory}
}

// Handle re-reads the shipment, counts its packages, and applies the
// draft-to-pending transition. A version conflict on the write means another
// request changed the row first; the caller sees the state-conflict code.
func (h SubmitShipmentCommandHandler) Handle(ctx context.Context, cmd SubmitShipmentCommand) error {
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

	// The row lock serializes against the draft mutations (which also lock),
	// so the package count cannot go stale before the transition commits.
	aggregate, err := uow.ShipmentRepository().GetLocked(ctx, cmd.ShipmentID())
	if err != nil {
		return err
	}

	count, err := uow.PackageRepository().CountByShipment(ctx, cmd.ShipmentID())
	if err != nil {
		return errs.NewDomainErrorWithCause(errs.CodeCountFailed, "package count failed", err)
	}

	if err = aggregate.Submit(cmd.Actor().OrganisationID(), int(count), time.Now().UTC()); err != nil {
		return err
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
