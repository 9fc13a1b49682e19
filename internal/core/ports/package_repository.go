package ports

import (
	"context"

	"timberops/internal/core/domain/model/inventory"
	"timberops/internal/core/domain/model/kernel"
)

// PackageRepository defines the slice of the inventory package store the
// engine mutates: ownership, shipment linkage, and pallet linkage. The full
// CRUD surface of the store lives outside this subsystem.
type PackageRepository interface {
	// Add persists a new package.
	Add(ctx context.Context, aggregate *inventory.Package) error

	// Update persists changes to an existing package.
	Update(ctx context.Context, aggregate *inventory.Package) error

	// Get retrieves a package by id.
	Get(ctx context.Context, id kernel.UUID) (*inventory.Package, error)

	// GetByShipment retrieves all packages linked to a shipment, ordered by
	// sequence.
	GetByShipment(ctx context.Context, shipmentID kernel.UUID) ([]*inventory.Package, error)

	// GetOwnedAvailable filters an id set down to packages owned by the
	// organisation, in available status, and not linked to any shipment.
	// Ids matching nothing are silently absent from the result.
	GetOwnedAvailable(ctx context.Context, organisationID kernel.UUID, ids []kernel.UUID) ([]*inventory.Package, error)

	// CountByShipment counts packages linked to a shipment.
	CountByShipment(ctx context.Context, shipmentID kernel.UUID) (int64, error)

	// MaxSequence returns the highest sequence number among a shipment's
	// packages, 0 when it has none. Callers must hold the shipment row lock
	// (ShipmentRepository.GetLocked) to make read-then-assign safe.
	MaxSequence(ctx context.Context, shipmentID kernel.UUID) (int, error)

	// TransferOwnership sets organisationId for every package linked to the
	// shipment in one bulk statement, returning the number of rows moved.
	// This is phase one of the accept protocol.
	TransferOwnership(ctx context.Context, shipmentID kernel.UUID, newOrganisationID kernel.UUID) (int64, error)

	// UnlinkByShipment returns all of a shipment's packages to free inventory:
	// shipment and pallet linkage cleared, numbering reset.
	UnlinkByShipment(ctx context.Context, shipmentID kernel.UUID) error

	// DeleteByShipment hard-deletes all packages linked to a shipment. Used
	// when deleting incoming drafts whose packages existed only for the draft.
	DeleteByShipment(ctx context.Context, shipmentID kernel.UUID) error

	// Delete hard-deletes a single package.
	Delete(ctx context.Context, id kernel.UUID) error

	// ClearPallet makes every package on the pallet loose without touching
	// shipment linkage.
	ClearPallet(ctx context.Context, palletID kernel.UUID) error

	// CountProductionReferences counts production inputs referencing any
	// package of the shipment. A non-zero count blocks shipment deletion.
	CountProductionReferences(ctx context.Context, shipmentID kernel.UUID) (int64, error)
}
