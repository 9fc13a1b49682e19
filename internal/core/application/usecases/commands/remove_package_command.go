package commands

import (
	"errors"

	"timberops/internal/core/domain/model/kernel"
	"timberops/internal/pkg/guard"
)

// ErrRemovePackageCommandIsNotConstructed is returned when the command was
// not created via its constructor.
var ErrRemovePackageCommandIsNotConstructed = errors.New(
	"RemovePackageCommand must be created via NewRemovePackageCommand constructor",
)

// RemovePackageCommand requests removing a package from a draft shipment.
// Removal deletes the package row; callers wanting the package back in free
// inventory recreate it there instead.
type RemovePackageCommand struct { //nolint:recvcheck //using for validation
	actor      Actor
	shipmentID kernel.UUID
	packageID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewRemovePackageCommand creates a validated remove-package command.
func NewRemovePackageCommand(
	actor Actor,
	shipmentID kernel.UUID,
	packageID kernel.UUID,
) (RemovePackageCommand, error) {
	if err := actor.Validate(); err != nil {
		return RemovePackageCommand{}, err
	}
	if err := shipmentID.Validate(); err != nil {
		return RemovePackageCommand{}, err
	}
	if err := packageID.Validate(); err != nil {
		return RemovePackageCommand{}, err
	}

	return RemovePackageCommand{
		actor:      actor,
		shipmentID: shipmentID,
		packageID:  packageID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RemovePackageCommand) Validate() error {
	return c.guard.Validate(ErrRemovePackageCommandIsNotConstructed)
}

// Actor returns the caller identity.
func (c RemovePackageCommand) Actor() Actor {
	return c.actor
}

// ShipmentID returns the draft shipment.
func (c RemovePackageCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// PackageID returns the package to remove.
func (c RemovePackageCommand) PackageID() kernel.UUID {
	return c.packageID
}
