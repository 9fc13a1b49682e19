package commands

import (
	"context"
	"errors"

	"timberops/internal/core/domain/model/shipment"
	"timberops/internal/core/domain/services"
	"timberops/internal/core/ports"
	"timberops/internal/pkg/errs"

	"github.com/avast/retry-go/v4"
)

// createDraftAttempts bounds retries when two concurrent creations for the
// same organisation pair collide on the code unique constraint.
const createDraftAttempts = 3

// CreateDraftShipmentResult reports the created shipment.
type CreateDraftShipmentResult struct {
	ShipmentID     string
	ShipmentCode   string
	ShipmentNumber int64
}

// CreateDraftShipmentCommandHandler creates draft shipments.
//
// Party rules: both organisations must exist and be active, sender and
// receiver must differ, and the caller must be one of the parties. When the
// sender is an external organisation the caller's organisation must be a
// registered trading partner of it; external suppliers have no portal users,
// so the receiver creates incoming drafts on their behalf.
type CreateDraftShipmentCommandHandler struct {
	uowFactory  ShipmentUoWFactory
	directory   ports.OrganisationDirectory
	codeService *services.ShipmentCodeService
}

// NewCreateDraftShipmentCommandHandler creates a handler for draft creation.
func NewCreateDraftShipmentCommandHandler(
	uowFactory ShipmentUoWFactory,
	directory ports.OrganisationDirectory,
	codeService *services.ShipmentCodeService,
) CreateDraftShipmentCommandHandler {
	return CreateDraftShipmentCommandHandler{
		uowFactory:  uowFactory,
		directory:   directory,
		codeService: codeService,
	}
}

// Handle validates the parties, derives code and number, and persists the new
// draft. A DuplicateCode collision from a concurrent creation for the same
// pair is retried with a fresh count before surfacing to the caller.
func (h CreateDraftShipmentCommandHandler) Handle(
	ctx context.Context,
	cmd CreateDraftShipmentCommand,
) (CreateDraftShipmentResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateDraftShipmentResult{}, err
	}

	fromOrg, toOrg, err := h.resolveParties(ctx, cmd)
	if err != nil {
		return CreateDraftShipmentResult{}, err
	}

	return retry.DoWithData(
		func() (CreateDraftShipmentResult, error) {
			return h.createDraft(ctx, cmd, fromOrg, toOrg)
		},
		retry.Context(ctx),
		retry.Attempts(createDraftAttempts),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return errors.Is(err, errs.ErrDuplicateCode)
		}),
	)
}

func (h CreateDraftShipmentCommandHandler) resolveParties(
	ctx context.Context,
	cmd CreateDraftShipmentCommand,
) (ports.Organisation, ports.Organisation, error) {
	var none ports.Organisation

	if cmd.FromOrganisationID().IsEqual(cmd.ToOrganisationID()) {
		return none, none, errs.ErrSameOrg
	}

	fromOrg, err := h.directory.GetOrganisation(ctx, cmd.FromOrganisationID())
	if err != nil {
		return none, none, errs.NewDomainErrorWithCause(errs.CodeOrgNotFound, "sender organisation not found", err)
	}
	toOrg, err := h.directory.GetOrganisation(ctx, cmd.ToOrganisationID())
	if err != nil {
		return none, none, errs.NewDomainErrorWithCause(errs.CodeOrgNotFound, "receiver organisation not found", err)
	}
	if !fromOrg.IsActive || !toOrg.IsActive {
		return none, none, errs.NewDomainError(errs.CodeValidationFailed, "both organisations must be active")
	}

	callerOrg := cmd.Actor().OrganisationID()
	if !callerOrg.IsEqual(fromOrg.ID) && !callerOrg.IsEqual(toOrg.ID) {
		return none, none, errs.NewDomainError(errs.CodeForbidden, "caller is not a party of this shipment")
	}

	if fromOrg.IsExternal && !callerOrg.IsEqual(fromOrg.ID) {
		partner, partnerErr := h.directory.IsTradingPartner(ctx, fromOrg.ID, callerOrg)
		if partnerErr != nil {
			return none, none, errs.NewDomainErrorWithCause(errs.CodeOrgNotFound, "trading partner lookup failed", partnerErr)
		}
		if !partner {
			return none, none, errs.NewDomainError(
				errs.CodeForbidden,
				"caller is not a registered trading partner of the external sender",
			)
		}
	}

	return fromOrg, toOrg, nil
}

func (h CreateDraftShipmentCommandHandler) createDraft(
	ctx context.Context,
	cmd CreateDraftShipmentCommand,
	fromOrg, toOrg ports.Organisation,
) (CreateDraftShipmentResult, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CreateDraftShipmentResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ShipmentRepository()

	count, err := repo.CountBetween(ctx, cmd.FromOrganisationID(), cmd.ToOrganisationID())
	if err != nil {
		return CreateDraftShipmentResult{}, errs.NewDomainErrorWithCause(errs.CodeCountFailed, "shipment count failed", err)
	}

	code, err := h.codeService.NextCode(fromOrg.Code, toOrg.Code, count)
	if err != nil {
		return CreateDraftShipmentResult{}, err
	}

	number, err := repo.NextShipmentNumber(ctx)
	if err != nil {
		return CreateDraftShipmentResult{}, errs.NewDomainErrorWithCause(errs.CodeSeqFailed, "shipment number generation failed", err)
	}

	aggregate, err := shipment.NewShipment(
		cmd.ShipmentID(), code, number,
		cmd.FromOrganisationID(), cmd.ToOrganisationID(),
	)
	if err != nil {
		return CreateDraftShipmentResult{}, err
	}

	if cost := cmd.TransportCost(); cost != nil {
		if err = aggregate.SetTransportCost(*cost); err != nil {
			return CreateDraftShipmentResult{}, err
		}
	}

	if err = repo.Add(ctx, aggregate); err != nil {
		return CreateDraftShipmentResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CreateDraftShipmentResult{}, err
	}

	return CreateDraftShipmentResult{
		ShipmentID:     aggregate.ID().String(),
		ShipmentCode:   aggregate.Code(),
		ShipmentNumber: aggregate.ShipmentNumber(),
	}, nil
}
