package commands

import (
	"errors"

	"timberops/internal/core/domain/model/kernel"
	"timberops/internal/pkg/errs"
	"timberops/internal/pkg/guard"
)

// ErrAddPackagesCommandIsNotConstructed is returned when the command was not
// created via its constructor.
var ErrAddPackagesCommandIsNotConstructed = errors.New(
	"AddPackagesCommand must be created via NewAddPackagesCommand constructor",
)

// AddPackagesCommand requests linking existing inventory packages to a draft
// shipment. Ids that do not resolve to an available package owned by the
// caller are skipped, not rejected.
type AddPackagesCommand struct { //nolint:recvcheck //using for validation
	actor      Actor
	shipmentID kernel.UUID
	packageIDs []kernel.UUID

	guard guard.ConstructorGuard
}

// NewAddPackagesCommand creates a validated add-packages command.
// At least one package id must be supplied and each must be well-formed.
func NewAddPackagesCommand(
	actor Actor,
	shipmentID kernel.UUID,
	packageIDs []kernel.UUID,
) (AddPackagesCommand, error) {
	if err := actor.Validate(); err != nil {
		return AddPackagesCommand{}, err
	}
	if err := shipmentID.Validate(); err != nil {
		return AddPackagesCommand{}, err
	}
	if len(packageIDs) == 0 {
		return AddPackagesCommand{}, errs.NewValueIsRequiredError("packageIDs")
	}
	for _, id := range packageIDs {
		if err := id.Validate(); err != nil {
			return AddPackagesCommand{}, err
		}
	}

	return AddPackagesCommand{
		actor:      actor,
		shipmentID: shipmentID,
		packageIDs: packageIDs,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AddPackagesCommand) Validate() error {
	return c.guard.Validate(ErrAddPackagesCommandIsNotConstructed)
}

// Actor returns the caller identity.
func (c AddPackagesCommand) Actor() Actor {
	return c.actor
}

// ShipmentID returns the draft shipment to link packages to.
func (c AddPackagesCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// PackageIDs returns the requested package ids.
func (c AddPackagesCommand) PackageIDs() []kernel.UUID {
	return c.packageIDs
}
