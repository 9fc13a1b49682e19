package commands

import (
	"errors"

	"timberops/internal/core/domain/model/kernel"
	"timberops/internal/pkg/guard"
)

// ErrCancelSubmissionCommandIsNotConstructed is returned when the command was
// not created via its constructor.
var ErrCancelSubmissionCommandIsNotConstructed = errors.New(
	"CancelSubmissionCommand must be created via NewCancelSubmissionCommand constructor",
)

// CancelSubmissionCommand requests returning a pending shipment to draft
// before the receiver reviews it.
type CancelSubmissionCommand struct { //nolint:recvcheck //using for validation
	actor      Actor
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCancelSubmissionCommand creates a validated cancel command.
func NewCancelSubmissionCommand(actor Actor, shipmentID kernel.UUID) (CancelSubmissionCommand, error) {
	if err := actor.Validate(); err != nil {
		return CancelSubmissionCommand{}, err
	}
	if err := shipmentID.Validate(); err != nil {
		return CancelSubmissionCommand{}, err
	}

	return CancelSubmissionCommand{
		actor:      actor,
		shipmentID: shipmentID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelSubmissionCommand) Validate() error {
	return c.guard.Validate(ErrCancelSubmissionCommandIsNotConstructed)
}

// Actor returns the caller identity.
func (c CancelSubmissionCommand) Actor() Actor {
	return c.actor
}

// ShipmentID returns the shipment to return to draft.
func (c CancelSubmissionCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}
