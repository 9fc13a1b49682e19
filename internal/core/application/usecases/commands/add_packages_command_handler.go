package commands

import (
	"context"
	"fmt"

	"timberops/internal/core/domain/model/inventory"
	"timberops/internal/core/domain/model/kernel"
	"timberops/internal/core/ports"
	"timberops/internal/pkg/errs"

	"github.com/samber/lo"
)

// AddPackagesResult reports which of the requested packages were linked and
// which were skipped because they were not available to the caller.
type AddPackagesResult struct {
	LinkedIDs  []kernel.UUID
	SkippedIDs []kernel.UUID
}

// AddPackagesCommandHandler links free inventory packages to draft shipments,
// assigning each its sequence and number within the shipment.
type AddPackagesCommandHandler struct {
	uowFactory UoWFactory
	directory  ports.OrganisationDirectory
}

// NewAddPackagesCommandHandler creates a handler for adding packages.
func NewAddPackagesCommandHandler(
	uowFactory UoWFactory,
	directory ports.OrganisationDirectory,
) AddPackagesCommandHandler {
	return AddPackagesCommandHandler{uowFactory: uowFactory, directory: directory}
}

// Handle filters the requested ids down to packages the caller's organisation
// owns, in available status and not on another shipment, then links them with
// consecutive sequence numbers. The shipment row is read under a row lock so
// that concurrent adds to the same shipment cannot hand out the same sequence.
func (h AddPackagesCommandHandler) Handle(ctx context.Context, cmd AddPackagesCommand) (AddPackagesResult, error) {
	if err := cmd.Validate(); err != nil {
		return AddPackagesResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AddPackagesResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.ShipmentRepository().GetLocked(ctx, cmd.ShipmentID())
	if err != nil {
		return AddPackagesResult{}, err
	}

	if err = aggregate.Status().ValidateDraft(); err != nil {
		return AddPackagesResult{}, err
	}
	callerOrg := cmd.Actor().OrganisationID()
	if err = ensureDraftEditor(ctx, h.directory, aggregate, callerOrg); err != nil {
		return AddPackagesResult{}, err
	}

	owned, err := uow.PackageRepository().GetOwnedAvailable(ctx, callerOrg, cmd.PackageIDs())
	if err != nil {
		return AddPackagesResult{}, err
	}
	if len(owned) == 0 {
		return AddPackagesResult{}, errs.ErrNoValidPackages
	}

	maxSeq, err := uow.PackageRepository().MaxSequence(ctx, aggregate.ID())
	if err != nil {
		return AddPackagesResult{}, errs.NewDomainErrorWithCause(
			errs.CodeSeqFailed, "package sequence lookup failed", err)
	}

	for i, pkg := range owned {
		seq := maxSeq + 1 + i
		number := fmt.Sprintf("%s/%03d", aggregate.Code(), seq)
		if err = pkg.AssignToShipment(aggregate.ID(), seq, number); err != nil {
			return AddPackagesResult{}, err
		}
		if err = uow.PackageRepository().Update(ctx, pkg); err != nil {
			return AddPackagesResult{}, errs.NewDomainErrorWithCause(
				errs.CodeUpdateFailed, "package update failed", err)
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return AddPackagesResult{}, errs.NewDomainErrorWithCause(
			errs.CodeUpdateFailed, "package update failed", err)
	}

	linked := lo.Map(owned, func(p *inventory.Package, _ int) kernel.UUID {
		return p.ID()
	})
	skipped := lo.Filter(cmd.PackageIDs(), func(id kernel.UUID, _ int) bool {
		return !lo.ContainsBy(linked, id.IsEqual)
	})

	return AddPackagesResult{LinkedIDs: linked, SkippedIDs: skipped}, nil
}
