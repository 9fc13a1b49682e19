package commands

import (
	"errors"

	"timberops/internal/core/domain/model/kernel"
	"timberops/internal/pkg/guard"
)

// ErrDeleteShipmentCommandIsNotConstructed is returned when the command was
// not created via its constructor.
var ErrDeleteShipmentCommandIsNotConstructed = errors.New(
	"DeleteShipmentCommand must be created via NewDeleteShipmentCommand constructor",
)

// DeleteShipmentCommand requests deleting a draft shipment.
type DeleteShipmentCommand struct { //nolint:recvcheck //using for validation
	actor      Actor
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewDeleteShipmentCommand creates a validated delete command.
func NewDeleteShipmentCommand(actor Actor, shipmentID kernel.UUID) (DeleteShipmentCommand, error) {
	if err := actor.Validate(); err != nil {
		return DeleteShipmentCommand{}, err
	}
	if err := shipmentID.Validate(); err != nil {
		return DeleteShipmentCommand{}, err
	}

	return DeleteShipmentCommand{
		actor:      actor,
		shipmentID: shipmentID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteShipmentCommand) Validate() error {
	return c.guard.Validate(ErrDeleteShipmentCommandIsNotConstructed)
}

// Actor returns the caller identity.
func (c DeleteShipmentCommand) Actor() Actor {
	return c.actor
}

// ShipmentID returns the shipment to delete.
func (c DeleteShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}
