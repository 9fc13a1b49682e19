package commands

import (
	"errors"

	"timberops/internal/core/domain/model/inventory"
	"timberops/internal/core/domain/model/kernel"
	"timberops/internal/pkg/errs"
	"timberops/internal/pkg/guard"
)

// ErrSavePackagesCommandIsNotConstructed is returned when the command was not
// created via its constructor.
var ErrSavePackagesCommandIsNotConstructed = errors.New(
	"SavePackagesCommand must be created via NewSavePackagesCommand constructor",
)

// PackageUpdate pairs an existing package id with its replacement attributes.
type PackageUpdate struct {
	ID         kernel.UUID
	Attributes inventory.Attributes
}

// SavePackagesCommand requests a batched create/update/delete of packages on
// a draft shipment in one call. This is how incoming shipments from external
// suppliers are maintained: their packages do not pre-exist in inventory, so
// the receiver creates and edits them directly on the draft.
type SavePackagesCommand struct { //nolint:recvcheck //using for validation
	actor      Actor
	shipmentID kernel.UUID
	creates    []inventory.Attributes
	updates    []PackageUpdate
	deletes    []kernel.UUID

	guard guard.ConstructorGuard
}

// NewSavePackagesCommand creates a validated batch-save command.
// The batch must not be empty; per-item validity is decided by the handler so
// one bad item cannot sink the rest.
func NewSavePackagesCommand(
	actor Actor,
	shipmentID kernel.UUID,
	creates []inventory.Attributes,
	updates []PackageUpdate,
	deletes []kernel.UUID,
) (SavePackagesCommand, error) {
	if err := actor.Validate(); err != nil {
		return SavePackagesCommand{}, err
	}
	if err := shipmentID.Validate(); err != nil {
		return SavePackagesCommand{}, err
	}
	if len(creates)+len(updates)+len(deletes) == 0 {
		return SavePackagesCommand{}, errs.NewValueIsRequiredError("batch")
	}

	return SavePackagesCommand{
		actor:      actor,
		shipmentID: shipmentID,
		creates:    creates,
		updates:    updates,
		deletes:    deletes,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SavePackagesCommand) Validate() error {
	return c.guard.Validate(ErrSavePackagesCommandIsNotConstructed)
}

// Actor returns the caller identity.
func (c SavePackagesCommand) Actor() Actor {
	return c.actor
}

// ShipmentID returns the draft shipment the batch applies to.
func (c SavePackagesCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// Creates returns the attribute sets for packages to create.
func (c SavePackagesCommand) Creates() []inventory.Attributes {
	return c.creates
}

// Updates returns the per-package attribute replacements.
func (c SavePackagesCommand) Updates() []PackageUpdate {
	return c.updates
}

// Deletes returns the ids of packages to delete.
func (c SavePackagesCommand) Deletes() []kernel.UUID {
	return c.deletes
}
