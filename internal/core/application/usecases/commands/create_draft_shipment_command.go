package commands

import (
	"errors"

	"timberops/internal/core/domain/model/kernel"
	"timberops/internal/pkg/guard"
)

// ErrCreateDraftShipmentCommandIsNotConstructed is returned when the command
// was not created via its constructor.
var ErrCreateDraftShipmentCommandIsNotConstructed = errors.New(
	"CreateDraftShipmentCommand must be created via NewCreateDraftShipmentCommand constructor",
)

// CreateDraftShipmentCommand requests a new draft shipment between two
// organisations. The shipment code and number are derived by the handler;
// transport cost is optional.
type CreateDraftShipmentCommand struct { //nolint:recvcheck //using for validation
	actor              Actor
	shipmentID         kernel.UUID
	fromOrganisationID kernel.UUID
	toOrganisationID   kernel.UUID
	transportCost      *kernel.Money

	guard guard.ConstructorGuard
}

// NewCreateDraftShipmentCommand creates a validated draft-creation command.
func NewCreateDraftShipmentCommand(
	actor Actor,
	shipmentID kernel.UUID,
	fromOrganisationID kernel.UUID,
	toOrganisationID kernel.UUID,
	transportCost *kernel.Money,
) (CreateDraftShipmentCommand, error) {
	cmd := CreateDraftShipmentCommand{
		transportCost: transportCost,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setShipmentID(shipmentID),
		cmd.setParties(fromOrganisationID, toOrganisationID),
	); err != nil {
		return CreateDraftShipmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateDraftShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateDraftShipmentCommandIsNotConstructed)
}

// Actor returns the caller identity.
func (c CreateDraftShipmentCommand) Actor() Actor {
	return c.actor
}

// ShipmentID returns the client-generated identifier for the new shipment.
func (c CreateDraftShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// FromOrganisationID returns the sending organisation.
func (c CreateDraftShipmentCommand) FromOrganisationID() kernel.UUID {
	return c.fromOrganisationID
}

// ToOrganisationID returns the receiving organisation.
func (c CreateDraftShipmentCommand) ToOrganisationID() kernel.UUID {
	return c.toOrganisationID
}

// TransportCost returns the optional transport cost in EUR.
func (c CreateDraftShipmentCommand) TransportCost() *kernel.Money {
	return c.transportCost
}

func (c *CreateDraftShipmentCommand) setActor(actor Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *CreateDraftShipmentCommand) setShipmentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.shipmentID = id
	return nil
}

func (c *CreateDraftShipmentCommand) setParties(from, to kernel.UUID) error {
	if err := from.Validate(); err != nil {
		return err
	}
	if err := to.Validate(); err != nil {
		return err
	}
	c.fromOrganisationID = from
	c.toOrganisationID = to
	return nil
}
