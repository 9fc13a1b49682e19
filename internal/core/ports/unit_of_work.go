package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary. The accept protocol
// relies on it: the package bulk-transfer and the shipment finalize commit or
// roll back together, which removes the compensation path a non-transactional
// store would need.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// SavePoint marks a named savepoint inside the current transaction.
	// Returns error if no active transaction.
	SavePoint(ctx context.Context, name string) error

	// RollbackTo discards everything written since the named savepoint while
	// keeping the surrounding transaction alive.
	RollbackTo(ctx context.Context, name string) error

	// ShipmentRepository returns a ShipmentRepository bound to the current
	// transaction.
	ShipmentRepository() ShipmentRepository

	// PackageRepository returns a PackageRepository bound to the current
	// transaction.
	PackageRepository() PackageRepository
}
