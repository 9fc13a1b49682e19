package commands

import (
	"context"
	"fmt"

	"timberops/internal/core/domain/model/inventory"
	"timberops/internal/core/domain/model/kernel"
	"timberops/internal/core/domain/model/shipment"
	"timberops/internal/core/ports"
	"timberops/internal/pkg/errs"
)

// SavePackagesResult reports the per-item outcome of a batch save: counts of
// successful creates, updates, and deletes, plus a human-readable error per
// failed item. The whole call fails only when every item failed.
type SavePackagesResult struct {
	Created int
	Updated int
	Deleted int
	Errors  []string
}

// SavePackagesCommandHandler applies batched package mutations to draft
// shipments. Items are independent; a failed one is reported in the result
// and the rest proceed.
type SavePackagesCommandHandler struct {
	uowFactory UoWFactory
	directory  ports.OrganisationDirectory
}

// NewSavePackagesCommandHandler creates a handler for batched package saves.
func NewSavePackagesCommandHandler(
	uowFactory UoWFactory,
	directory ports.OrganisationDirectory,
) SavePackagesCommandHandler {
	return SavePackagesCommandHandler{uowFactory: uowFactory, directory: directory}
}

// Handle applies the batch. Created packages belong to the receiving
// organisation in available status and are linked with the next sequence
// numbers; updated and deleted packages are re-verified to belong to the
// target shipment first. The shipment row is read under a row lock so
// concurrent batches cannot hand out the same sequence.
func (h SavePackagesCommandHandler) Handle(ctx context.Context, cmd SavePackagesCommand) (SavePackagesResult, error) {
	if err := cmd.Validate(); err != nil {
		return SavePackagesResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return SavePackagesResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.ShipmentRepository().GetLocked(ctx, cmd.ShipmentID())
	if err != nil {
		return SavePackagesResult{}, err
	}

	if err = aggregate.Status().ValidateDraft(); err != nil {
		return SavePackagesResult{}, err
	}
	if err = ensureDraftEditor(ctx, h.directory, aggregate, cmd.Actor().OrganisationID()); err != nil {
		return SavePackagesResult{}, err
	}

	maxSeq, err := uow.PackageRepository().MaxSequence(ctx, aggregate.ID())
	if err != nil {
		return SavePackagesResult{}, errs.NewDomainErrorWithCause(
			errs.CodeSeqFailed, "package sequence lookup failed", err)
	}

	// Each item runs inside its own savepoint: a storage failure (say a
	// constraint violation) rolls back that item alone instead of aborting
	// the transaction the rest of the batch still needs.
	var result SavePackagesResult
	item := 0

	for _, attrs := range cmd.Creates() {
		item++
		createErr := withSavepoint(ctx, uow, item, func() error {
			return h.createPackage(ctx, uow, aggregate, attrs, maxSeq+result.Created+1)
		})
		if createErr != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("create %q: %s", attrs.ProductName, createErr))
			continue
		}
		result.Created++
	}

	for _, update := range cmd.Updates() {
		item++
		updateErr := withSavepoint(ctx, uow, item, func() error {
			return h.updatePackage(ctx, uow, aggregate, update)
		})
		if updateErr != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("update %s: %s", update.ID, updateErr))
			continue
		}
		result.Updated++
	}

	for _, id := range cmd.Deletes() {
		item++
		deleteErr := withSavepoint(ctx, uow, item, func() error {
			return h.deletePackage(ctx, uow, aggregate, id)
		})
		if deleteErr != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("delete %s: %s", id, deleteErr))
			continue
		}
		result.Deleted++
	}

	if result.Created+result.Updated+result.Deleted == 0 {
		return result, errs.NewDomainError(errs.CodeValidationFailed, "every item in the batch failed")
	}

	if err = uow.Commit(ctx); err != nil {
		return SavePackagesResult{}, errs.NewDomainErrorWithCause(
			errs.CodeUpdateFailed, "package batch save failed", err)
	}
	return result, nil
}

// withSavepoint runs fn under a savepoint and rolls back to it when fn
// fails, so the failed item's writes never reach the final commit.
func withSavepoint(ctx context.Context, uow UoW, item int, fn func() error) error {
	name := fmt.Sprintf("batch_item_%d", item)
	if err := uow.SavePoint(ctx, name); err != nil {
		return err
	}
	if err := fn(); err != nil {
		if rbErr := uow.RollbackTo(ctx, name); rbErr != nil {
			return rbErr
		}
		return err
	}
	return nil
}

func (h SavePackagesCommandHandler) createPackage(
	ctx context.Context,
	uow UoW,
	aggregate *shipment.Shipment,
	attrs inventory.Attributes,
	sequence int,
) error {
	pkg, err := inventory.NewPackage(kernel.NewUUID(), aggregate.ToOrganisationID(), attrs)
	if err != nil {
		return err
	}
	number := fmt.Sprintf("%s/%03d", aggregate.Code(), sequence)
	if err = pkg.AssignToShipment(aggregate.ID(), sequence, number); err != nil {
		return err
	}
	return uow.PackageRepository().Add(ctx, pkg)
}

func (h SavePackagesCommandHandler) updatePackage(
	ctx context.Context,
	uow UoW,
	aggregate *shipment.Shipment,
	update PackageUpdate,
) error {
	pkg, err := uow.PackageRepository().Get(ctx, update.ID)
	if err != nil {
		return err
	}
	if pkg.ShipmentID() == nil || !pkg.ShipmentID().IsEqual(aggregate.ID()) {
		return errs.ErrWrongShipment
	}
	if err = pkg.ApplyAttributes(update.Attributes); err != nil {
		return err
	}
	return uow.PackageRepository().Update(ctx, pkg)
}

func (h SavePackagesCommandHandler) deletePackage(
	ctx context.Context,
	uow UoW,
	aggregate *shipment.Shipment,
	id kernel.UUID,
) error {
	pkg, err := uow.PackageRepository().Get(ctx, id)
	if err != nil {
		return err
	}
	if pkg.ShipmentID() == nil || !pkg.ShipmentID().IsEqual(aggregate.ID()) {
		return errs.ErrWrongShipment
	}
	return uow.PackageRepository().Delete(ctx, pkg.ID())
}
