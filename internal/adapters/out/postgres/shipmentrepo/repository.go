package shipmentrepo

import (
	"context"
	"errors"

	"timberops/internal/core/domain/model/kernel"
	"timberops/internal/core/domain/model/shipment"
	"timberops/internal/core/ports"
	"timberops/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// pq error code for unique constraint violations.
const uniqueViolation = "23505"

// GormShipmentRepository implements ShipmentRepository using GORM.
type GormShipmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormShipmentRepository creates a new GORM shipment repository.
func NewGormShipmentRepository(db *gorm.DB, tracker aggregateTracker) *GormShipmentRepository {
	return &GormShipmentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new shipment with its pallets. A violated unique constraint on
// the shipment code or number surfaces as DuplicateCode so the creation flow
// can recount and retry.
func (r *GormShipmentRepository) Add(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = 1
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if isUniqueViolation(err) {
			return errs.NewDomainErrorWithCause(errs.CodeDuplicateCode, "shipment code already exists", err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing shipment, compare-and-swapping on the version the
// aggregate was loaded with. Zero rows affected means the row moved on since
// the read; the caller gets ErrVersionConflict and decides what that means
// for its operation. Pallet rows are replaced wholesale.
func (r *GormShipmentRepository) Update(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	loadedVersion := dto.Version
	dto.Version = loadedVersion + 1

	result := r.db.WithContext(ctx).
		Model(&ShipmentDTO{}).
		Where("id = ? AND version = ?", dto.ID, loadedVersion).
		Select("*").
		Omit("id", "Pallets").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrVersionConflict
	}

	if err := r.db.WithContext(ctx).
		Where("shipment_id = ?", dto.ID).
		Delete(&PalletDTO{}).Error; err != nil {
		return err
	}
	if len(dto.Pallets) > 0 {
		if err := r.db.WithContext(ctx).Create(&dto.Pallets).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a shipment with its pallets by ID.
func (r *GormShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	return r.get(ctx, id, false)
}

// GetLocked retrieves a shipment acquiring FOR UPDATE on its row, serializing
// sequence assignment for concurrent adds to the same shipment. Only
// meaningful inside a transaction.
func (r *GormShipmentRepository) GetLocked(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	return r.get(ctx, id, true)
}

func (r *GormShipmentRepository) get(ctx context.Context, id kernel.UUID, locked bool) (*shipment.Shipment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	tx := r.db.WithContext(ctx).Preload("Pallets")
	if locked {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var dto ShipmentDTO
	if err := tx.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipment", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// CountBetween counts shipments from one organisation to another.
func (r *GormShipmentRepository) CountBetween(
	ctx context.Context,
	fromOrganisationID, toOrganisationID kernel.UUID,
) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&ShipmentDTO{}).
		Where("from_organisation_id = ? AND to_organisation_id = ?",
			fromOrganisationID.Bytes(), toOrganisationID.Bytes()).
		Count(&count).Error
	return count, err
}

// NextShipmentNumber returns the next monotonic shipment number. The unique
// index on shipment_number backstops the read-then-insert race; a collision
// surfaces from Add as DuplicateCode and the creation flow retries.
func (r *GormShipmentRepository) NextShipmentNumber(ctx context.Context) (int64, error) {
	var number int64
	err := r.db.WithContext(ctx).
		Raw(`SELECT COALESCE(MAX(shipment_number), 0) + 1 FROM shipments`).
		Scan(&number).Error
	return number, err
}

// Delete removes a shipment row and its pallets.
func (r *GormShipmentRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).
		Where("shipment_id = ?", id.Bytes()).
		Delete(&PalletDTO{}).Error; err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&ShipmentDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("shipment", id.String())
	}
	return nil
}

// isUniqueViolation recognizes unique constraint violations from either
// postgres driver in use: pgx underneath the GORM driver, lib/pq for plain
// database/sql connections.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return true
	}
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
