package commands

import (
	"errors"

	"timberops/internal/core/domain/model/kernel"
	"timberops/internal/pkg/guard"
)

// ErrSubmitShipmentCommandIsNotConstructed is returned when the command was
// not created via its constructor.
var ErrSubmitShipmentCommandIsNotConstructed = errors.New(
	"SubmitShipmentCommand must be created via NewSubmitShipmentCommand constructor",
)

// SubmitShipmentCommand requests moving a draft shipment into pending review.
type SubmitShipmentCommand struct { //nolint:recvcheck //using for validation
	actor      Actor
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewSubmitShipmentCommand creates a validated submit command.
func NewSubmitShipmentCommand(actor Actor, shipmentID kernel.UUID) (SubmitShipmentCommand, error) {
	if err := actor.Validate(); err != nil {
		return SubmitShipmentCommand{}, err
	}
	if err := shipmentID.Validate(); err != nil {
		return SubmitShipmentCommand{}, err
	}

	return SubmitShipmentCommand{
		actor:      actor,
		shipmentID: shipmentID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitShipmentCommand) Validate() error {
	return c.guard.Validate(ErrSubmitShipmentCommandIsNotConstructed)
}

// Actor returns the caller identity.
func (c SubmitShipmentCommand) Actor() Actor {
	return c.actor
}

// ShipmentID returns the shipment to submit.
func (c SubmitShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}
