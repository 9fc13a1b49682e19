package commands

import (
	"context"
	"errors"

	"timberops/internal/core/domain/model/kernel"
	"timberops/internal/core/domain/model/shipment"
	"timberops/internal/core/ports"
	"timberops/internal/pkg/errs"
	"timberops/internal/pkg/guard"
)

// ErrActorIsNotConstructed is returned when an Actor was not created via NewActor.
var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")

// Actor is the caller identity every entry point receives from the session
// context: the organisation acting and the user acting for it. The engine
// trusts this context and does not itself authenticate.
type Actor struct { //nolint:recvcheck //using for validation
	organisationID kernel.UUID
	userID         kernel.UUID

	guard guard.ConstructorGuard
}

// NewActor creates a caller identity. Both ids must be valid; a missing
// organisation is the NoOrganisation case, a missing user Unauthenticated.
func NewActor(organisationID, userID kernel.UUID) (Actor, error) {
	if err := userID.Validate(); err != nil {
		return Actor{}, errs.ErrUnauthenticated
	}
	if err := organisationID.Validate(); err != nil {
		return Actor{}, errs.ErrNoOrganisation
	}

	return Actor{
		organisationID: organisationID,
		userID:         userID,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the actor was created through the constructor.
func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

// OrganisationID returns the acting organisation.
func (a Actor) OrganisationID() kernel.UUID {
	return a.organisationID
}

// UserID returns the acting user.
func (a Actor) UserID() kernel.UUID {
	return a.userID
}

// ensureDraftEditor checks that the caller may mutate a draft shipment: the
// sender always may; the receiver only when the sender is an external
// organisation, since incoming drafts are maintained on the sender's behalf.
func ensureDraftEditor(
	ctx context.Context,
	directory ports.OrganisationDirectory,
	aggregate *shipment.Shipment,
	callerOrg kernel.UUID,
) error {
	if aggregate.IsSender(callerOrg) {
		return nil
	}
	if aggregate.IsReceiver(callerOrg) {
		sender, err := directory.GetOrganisation(ctx, aggregate.FromOrganisationID())
		if err != nil {
			return errs.NewDomainErrorWithCause(errs.CodeOrgNotFound, "sender organisation not found", err)
		}
		if sender.IsExternal {
			return nil
		}
	}
	return errs.NewDomainError(errs.CodeForbidden, "caller may not modify this draft")
}
