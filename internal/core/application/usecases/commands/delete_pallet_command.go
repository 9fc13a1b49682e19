package commands

import (
	"errors"

	"timberops/internal/core/domain/model/kernel"
	"timberops/internal/pkg/guard"
)

// ErrDeletePalletCommandIsNotConstructed is returned when the command was not
// created via its constructor.
var ErrDeletePalletCommandIsNotConstructed = errors.New(
	"DeletePalletCommand must be created via NewDeletePalletCommand constructor",
)

// DeletePalletCommand requests removing a pallet from a draft shipment.
// Packages on the pallet become loose; their shipment linkage is untouched.
type DeletePalletCommand struct { //nolint:recvcheck //using for validation
	actor      Actor
	shipmentID kernel.UUID
	palletID   kernel.UUID

	guard guard.ConstructorGuard
}

// NewDeletePalletCommand creates a validated pallet-deletion command.
func NewDeletePalletCommand(
	actor Actor,
	shipmentID kernel.UUID,
	palletID kernel.UUID,
) (DeletePalletCommand, error) {
	if err := actor.Validate(); err != nil {
		return DeletePalletCommand{}, err
	}
	if err := shipmentID.Validate(); err != nil {
		return DeletePalletCommand{}, err
	}
	if err := palletID.Validate(); err != nil {
		return DeletePalletCommand{}, err
	}

	return DeletePalletCommand{
		actor:      actor,
		shipmentID: shipmentID,
		palletID:   palletID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DeletePalletCommand) Validate() error {
	return c.guard.Validate(ErrDeletePalletCommandIsNotConstructed)
}

// Actor returns the caller identity.
func (c DeletePalletCommand) Actor() Actor {
	return c.actor
}

// ShipmentID returns the draft shipment.
func (c DeletePalletCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// PalletID returns the pallet to delete.
func (c DeletePalletCommand) PalletID() kernel.UUID {
	return c.palletID
}
