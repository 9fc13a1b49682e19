package commands

import (
	"errors"

	"timberops/internal/core/domain/model/kernel"
	"timberops/internal/pkg/guard"
)

// ErrAssignPackageToPalletCommandIsNotConstructed is returned when the
// command was not created via its constructor.
var ErrAssignPackageToPalletCommandIsNotConstructed = errors.New(
	"AssignPackageToPalletCommand must be created via NewAssignPackageToPalletCommand constructor",
)

// AssignPackageToPalletCommand requests moving a package onto a pallet of its
// shipment, or off its pallet when no pallet id is given.
type AssignPackageToPalletCommand struct { //nolint:recvcheck //using for validation
	actor      Actor
	shipmentID kernel.UUID
	packageID  kernel.UUID

	// palletID nil means "make the package loose".
	palletID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignPackageToPalletCommand creates a validated pallet-assignment
// command.
func NewAssignPackageToPalletCommand(
	actor Actor,
	shipmentID kernel.UUID,
	packageID kernel.UUID,
	palletID *kernel.UUID,
) (AssignPackageToPalletCommand, error) {
	if err := actor.Validate(); err != nil {
		return AssignPackageToPalletCommand{}, err
	}
	if err := shipmentID.Validate(); err != nil {
		return AssignPackageToPalletCommand{}, err
	}
	if err := packageID.Validate(); err != nil {
		return AssignPackageToPalletCommand{}, err
	}
	if palletID != nil {
		if err := palletID.Validate(); err != nil {
			return AssignPackageToPalletCommand{}, err
		}
	}

	return AssignPackageToPalletCommand{
		actor:      actor,
		shipmentID: shipmentID,
		packageID:  packageID,
		palletID:   palletID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignPackageToPalletCommand) Validate() error {
	return c.guard.Validate(ErrAssignPackageToPalletCommandIsNotConstructed)
}

// Actor returns the caller identity.
func (c AssignPackageToPalletCommand) Actor() Actor {
	return c.actor
}

// ShipmentID returns the draft shipment.
func (c AssignPackageToPalletCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// PackageID returns the package to move.
func (c AssignPackageToPalletCommand) PackageID() kernel.UUID {
	return c.packageID
}

// PalletID returns the target pallet, or nil to make the package loose.
func (c AssignPackageToPalletCommand) PalletID() *kernel.UUID {
	return c.palletID
}
