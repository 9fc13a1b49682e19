package commands

import (
	"context"
	"errors"
	"time"

	"timberops/internal/core/ports"
	"timberops/internal/pkg/errs"
)

// RejectShipmentCommandHandler declines pending shipments.
// It runs on the shipment-only unit of work; the narrow interface is what
// proves rejection can never touch a package row.
type RejectShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
}

// NewRejectShipmentCommandHandler creates a handler for the reject transition.
func NewRejectShipmentCommandHandler(uowFactory ShipmentUoWFactory) RejectShipmentCommandHandler {
	return RejectShipmentCommandHandler{uowFactory: uowFactory}
}

// Handle re-reads the shipment and applies the pending-to-rejected transition
// with the supplied reason.
func (h RejectShipmentCommandHandler) Handle(ctx context.Context, cmd RejectShipmentCommand) error {
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

	actor := cmd.Actor()
	if err = aggregate.Reject(actor.OrganisationID(), actor.UserID(), cmd.Reason(), time.Now().UTC()); err != nil {
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
