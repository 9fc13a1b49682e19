// Package commands contains the engine's write operations: lifecycle
// transitions and draft mutations. Each operation is a command object plus a
// handler; handlers open a unit-of-work transaction, re-fetch the shipment,
// re-validate status and caller identity against the fresh row, mutate, and
// commit. No handler lets an error escape uncoded.
package commands

import (
	"context"

	"timberops/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Handlers declare the narrowest interface they need so tests can mock
// exactly that surface.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// ShipmentRepoFactory provides access to the shipment repository within a
	// transaction.
	ShipmentRepoFactory interface {
		ShipmentRepository() ports.ShipmentRepository
	}

	// PackageRepoFactory provides access to the package repository within a
	// transaction.
	PackageRepoFactory interface {
		PackageRepository() ports.PackageRepository
	}

	// ShipmentUoW manages transactions for shipment-only operations, such as
	// reject, which provably never touches a package row.
	ShipmentUoW interface {
		TxManager
		ShipmentRepoFactory
	}

	// ShipmentUoWFactory creates new shipment unit of work instances.
	ShipmentUoWFactory interface {
		Create() ShipmentUoW
	}

	// SavepointManager marks and restores points inside the open transaction
	// so a batch can drop a failed item without poisoning the writes around
	// it.
	SavepointManager interface {
		SavePoint(ctx context.Context, name string) error
		RollbackTo(ctx context.Context, name string) error
	}

	// UoW manages transactions spanning the shipment and its packages. The
	// accept transfer runs entirely inside one of these, which is what makes
	// "packages moved but shipment still pending" unrepresentable.
	UoW interface {
		TxManager
		SavepointManager
		ShipmentRepoFactory
		PackageRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-repository
	// operations.
	UoWFactory interface {
		Create() UoW
	}
)
