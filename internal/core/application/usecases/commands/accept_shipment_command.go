package commands

import (
	"errors"

	"timberops/internal/core/domain/model/kernel"
	"timberops/internal/pkg/guard"
)

// ErrAcceptShipmentCommandIsNotConstructed is returned when the command was
// not created via its constructor.
var ErrAcceptShipmentCommandIsNotConstructed = errors.New(
	"AcceptShipmentCommand must be created via NewAcceptShipmentCommand constructor",
)

// AcceptShipmentCommand requests accepting a pending shipment: ownership of
// every linked package moves to the receiver and the shipment completes.
type AcceptShipmentCommand struct { //nolint:recvcheck //using for validation
	actor      Actor
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAcceptShipmentCommand creates a validated accept command.
func NewAcceptShipmentCommand(actor Actor, shipmentID kernel.UUID) (AcceptShipmentCommand, error) {
	if err := actor.Validate(); err != nil {
		return AcceptShipmentCommand{}, err
	}
	if err := shipmentID.Validate(); err != nil {
		return AcceptShipmentCommand{}, err
	}

	return AcceptShipmentCommand{
		actor:      actor,
		shipmentID: shipmentID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptShipmentCommand) Validate() error {
	return c.guard.Validate(ErrAcceptShipmentCommandIsNotConstructed)
}

// Actor returns the caller identity.
func (c AcceptShipmentCommand) Actor() Actor {
	return c.actor
}

// ShipmentID returns the shipment to accept.
func (c AcceptShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}
