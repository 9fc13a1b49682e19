package commands

import (
	"errors"

	"timberops/internal/core/domain/model/kernel"
	"timberops/internal/pkg/guard"
)

// ErrRejectShipmentCommandIsNotConstructed is returned when the command was
// not created via its constructor.
var ErrRejectShipmentCommandIsNotConstructed = errors.New(
	"RejectShipmentCommand must be created via NewRejectShipmentCommand constructor",
)

// RejectShipmentCommand requests declining a pending shipment with a reason.
// Rejection never touches package ownership.
type RejectShipmentCommand struct { //nolint:recvcheck //using for validation
	actor      Actor
	shipmentID kernel.UUID
	reason     string

	guard guard.ConstructorGuard
}

// NewRejectShipmentCommand creates a validated reject command.
// The reason may not be empty; the sender needs to know why.
func NewRejectShipmentCommand(actor Actor, shipmentID kernel.UUID, reason string) (RejectShipmentCommand, error) {
	if err := actor.Validate(); err != nil {
		return RejectShipmentCommand{}, err
	}
	if err := shipmentID.Validate(); err != nil {
		return RejectShipmentCommand{}, err
	}

	return RejectShipmentCommand{
		actor:      actor,
		shipmentID: shipmentID,
		reason:     reason,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RejectShipmentCommand) Validate() error {
	return c.guard.Validate(ErrRejectShipmentCommandIsNotConstructed)
}

// Actor returns the caller identity.
func (c RejectShipmentCommand) Actor() Actor {
	return c.actor
}

// ShipmentID returns the shipment to reject.
func (c RejectShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// Reason returns the rejection reason shown to the sender.
func (c RejectShipmentCommand) Reason() string {
	return c.reason
}
