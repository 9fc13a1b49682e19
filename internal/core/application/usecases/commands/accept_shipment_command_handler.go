package commands

import (
	"context"
	"errors"
	"time"

	"timberops/internal/core/ports"
	"timberops/internal/pkg/errs"
)

// AcceptShipmentResult reports the outcome of a successful accept.
type AcceptShipmentResult struct {
	PackagesTransferred int64
}

// AcceptShipmentCommandHandler finalizes pending shipments.
//
// The ownership transfer protocol runs in one transaction: the package
// bulk-transfer and the shipment finalize commit or roll back together, so
// "packages moved but shipment still pending" and its mirror image cannot be
// observed, and no compensation step exists. Two racing accepts are decided
// by the version compare-and-swap; the loser rolls back its transfer and
// reports NotPending.
type AcceptShipmentCommandHandler struct {
	uowFactory UoWFactory
}

// NewAcceptShipmentCommandHandler creates a handler for the accept transition.
func NewAcceptShipmentCommandHandler(uowFactory UoWFactory) AcceptShipmentCommandHandler {
	return AcceptShipmentCommandHandler{uowFactory: uowFactory}
}

// Handle re-reads the shipment, applies the pending-to-completed transition,
// and bulk-moves every linked package to the receiver, all in one transaction.
func (h AcceptShipmentCommandHandler) Handle(
	ctx context.Context,
	cmd AcceptShipmentCommand,
) (AcceptShipmentResult, error) {
	if err := cmd.Validate(); err != nil {
		return AcceptShipmentResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AcceptShipmentResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.ShipmentRepository().Get(ctx, cmd.ShipmentID())
	if err != nil {
		return AcceptShipmentResult{}, err
	}

	actor := cmd.Actor()
	if err = aggregate.Accept(actor.OrganisationID(), actor.UserID(), time.Now().UTC()); err != nil {
		return AcceptShipmentResult{}, err
	}

	moved, err := uow.PackageRepository().TransferOwnership(
		ctx, aggregate.ID(), aggregate.ToOrganisationID())
	if err != nil {
		return AcceptShipmentResult{}, errs.NewDomainErrorWithCause(
			errs.CodeTransferFailed, "package ownership transfer failed, nothing was moved", err)
	}

	if err = uow.ShipmentRepository().Update(ctx, aggregate); err != nil {
		if errors.Is(err, ports.ErrVersionConflict) {
			return AcceptShipmentResult{}, errs.NewDomainErrorWithCause(
				errs.CodeNotPending, "shipment was reviewed by another request and is no longer pending", err)
		}
		return AcceptShipmentResult{}, errs.NewDomainErrorWithCause(
			errs.CodeUpdateFailed, "shipment update failed", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return AcceptShipmentResult{}, errs.NewDomainErrorWithCause(
			errs.CodeUpdateFailed, "shipment update failed", err)
	}

	return AcceptShipmentResult{PackagesTransferred: moved}, nil
}
