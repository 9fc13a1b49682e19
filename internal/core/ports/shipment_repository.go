// Package ports defines the persistence and collaborator contracts of the
// engine. These interfaces separate the domain layer from infrastructure and
// keep command handlers testable.
package ports

import (
	"context"
	"errors"

	"timberops/internal/core/domain/model/kernel"
	"timberops/internal/core/domain/model/shipment"
)

// ErrVersionConflict is returned by ShipmentRepository.Update when the
// compare-and-swap on the version column matched no row: another request
// already changed the shipment. Handlers translate it into the state-conflict
// code of their operation after re-reading the row.
var ErrVersionConflict = errors.New("shipment was modified concurrently")

// ShipmentRepository defines persistence for shipment aggregates, including
// their pallets.
type ShipmentRepository interface {
	// Add persists a new shipment aggregate. A violated shipment_code unique
	// constraint surfaces as a DuplicateCode error.
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	// Update persists changes to an existing shipment, compare-and-swapping on
	// the aggregate's version. Returns ErrVersionConflict when the version no
	// longer matches.
	Update(ctx context.Context, aggregate *shipment.Shipment) error

	// Get retrieves a shipment with its pallets by id.
	Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)

	// GetLocked retrieves a shipment acquiring a row lock for the duration of
	// the surrounding transaction. Used to serialize per-shipment sequence
	// assignment under concurrent adds.
	GetLocked(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)

	// CountBetween counts shipments from one organisation to another,
	// feeding the per-pair code sequence.
	CountBetween(ctx context.Context, fromOrganisationID, toOrganisationID kernel.UUID) (int64, error)

	// NextShipmentNumber returns the next monotonic shipment number.
	NextShipmentNumber(ctx context.Context) (int64, error)

	// Delete removes a draft shipment row and its pallets.
	Delete(ctx context.Context, id kernel.UUID) error
}
