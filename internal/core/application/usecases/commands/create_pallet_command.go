package commands

import (
	"errors"

	"timberops/internal/core/domain/model/kernel"
	"timberops/internal/pkg/guard"
)

// ErrCreatePalletCommandIsNotConstructed is returned when the command was not
// created via its constructor.
var ErrCreatePalletCommandIsNotConstructed = errors.New(
	"CreatePalletCommand must be created via NewCreatePalletCommand constructor",
)

// CreatePalletCommand requests adding a pallet to a draft shipment. The
// pallet number is assigned by the aggregate; the id comes from the client.
type CreatePalletCommand struct { //nolint:recvcheck //using for validation
	actor      Actor
	shipmentID kernel.UUID
	palletID   kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreatePalletCommand creates a validated pallet-creation command.
func NewCreatePalletCommand(
	actor Actor,
	shipmentID kernel.UUID,
	palletID kernel.UUID,
) (CreatePalletCommand, error) {
	if err := actor.Validate(); err != nil {
		return CreatePalletCommand{}, err
	}
	if err := shipmentID.Validate(); err != nil {
		return CreatePalletCommand{}, err
	}
	if err := palletID.Validate(); err != nil {
		return CreatePalletCommand{}, err
	}

	return CreatePalletCommand{
		actor:      actor,
		shipmentID: shipmentID,
		palletID:   palletID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreatePalletCommand) Validate() error {
	return c.guard.Validate(ErrCreatePalletCommandIsNotConstructed)
}

// Actor returns the caller identity.
func (c CreatePalletCommand) Actor() Actor {
	return c.actor
}

// ShipmentID returns the draft shipment to add the pallet to.
func (c CreatePalletCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// PalletID returns the client-generated identifier for the new pallet.
func (c CreatePalletCommand) PalletID() kernel.UUID {
	return c.palletID
}
