package commands

import (
	"context"
	"errors"

	"timberops/internal/core/ports"
	"timberops/internal/pkg/errs"
)

// CancelSubmissionCommandHandler returns pending shipments to draft.
// It only touches the shipment row, so it runs on the shipment-only unit of
// work.
type CancelSubmissionCommandHandler struct {
	uowFactory ShipmentUoWFactory
}

// NewCancelSubmissionCommandHandler creates a handler for submission cancelling.
func NewCancelSubmissionCommandHandler(uowFactory ShipmentUoWFactory) CancelSubmissionCommandHandler {
	return CancelSubmissionCommandHandler{uowFactory: uowFactory}
}

// Handle re-reads the shipment and applies the pending-to-draft transition.
// A version conflict means the receiver's review won the race; the caller
// sees the NotPending code.
func (h CancelSubmissionCommandHandler) Handle(ctx context.Context, cmd CancelSubmissionCommand) error {
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

	if err = aggregate.CancelSubmission(cmd.Actor().OrganisationID()); err != nil {
		return err
	}

	if err = uow.ShipmentRepository().Update(ctx, aggregate); err != nil {
		if errors.Is(err, ports.ErrVersionConflict) {
			return errs.NewDomainErrorWithCause(
				errs.CodeNotPending, "shipment was reviewed by another request and is no longer pending", err)
		}
		return errs.NewDomainErrorWithCause(errs.CodeUpdateFailed, "shipment update failed", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return errs.NewDomainErrorWithCause(errs.CodeUpdateFailed, "shipment update failed", err)
	}
	return nil
}
