package packagerepo

import (
	"context"
	"errors"

	"timberops/internal/core/domain/model/inventory"
	"timberops/internal/core/domain/model/kernel"
	"timberops/internal/pkg/errs"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

// GormPackageRepository implements PackageRepository using GORM.
type GormPackageRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormPackageRepository creates a new GORM package repository.
func NewGormPackageRepository(db *gorm.DB, tracker aggregateTracker) *GormPackageRepository {
	return &GormPackageRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new package to the database.
func (r *GormPackageRepository) Add(ctx context.Context, aggregate *inventory.Package) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing package to the database. All columns are written,
// including the nullable linkage fields, so an unlink round-trips correctly.
func (r *GormPackageRepository) Update(ctx context.Context, aggregate *inventory.Package) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&PackageDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a package by ID.
func (r *GormPackageRepository) Get(ctx context.Context, id kernel.UUID) (*inventory.Package, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PackageDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("package", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByShipment retrieves all packages linked to a shipment, ordered by
// sequence.
func (r *GormPackageRepository) GetByShipment(
	ctx context.Context,
	shipmentID kernel.UUID,
) ([]*inventory.Package, error) {
	var dtos []PackageDTO
	err := r.db.WithContext(ctx).
		Order("sequence").
		Find(&dtos, "shipment_id = ?", shipmentID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	return r.toDomainAll(dtos)
}

// GetOwnedAvailable filters an id set down to packages the organisation owns
// in available status and not linked to any shipment. Ids matching nothing
// are silently absent.
func (r *GormPackageRepository) GetOwnedAvailable(
	ctx context.Context,
	organisationID kernel.UUID,
	ids []kernel.UUID,
) ([]*inventory.Package, error) {
	raw := lo.Map(ids, func(id kernel.UUID, _ int) any { return id.Bytes() })

	var dtos []PackageDTO
	err := r.db.WithContext(ctx).
		Where("id IN ?", raw).
		Where("organisation_id = ?", organisationID.Bytes()).
		Where("status = ?", inventory.StatusAvailable.String()).
		Where("shipment_id IS NULL").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return r.toDomainAll(dtos)
}

// CountByShipment counts packages linked to a shipment.
func (r *GormPackageRepository) CountByShipment(ctx context.Context, shipmentID kernel.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&PackageDTO{}).
		Where("shipment_id = ?", shipmentID.Bytes()).
		Count(&count).Error
	return count, err
}

// MaxSequence returns the highest sequence among a shipment's packages, 0 when
// it has none. Callers serialize via the shipment row lock.
func (r *GormPackageRepository) MaxSequence(ctx context.Context, shipmentID kernel.UUID) (int, error) {
	var max int
	err := r.db.WithContext(ctx).
		Raw(`SELECT COALESCE(MAX(sequence), 0) FROM packages WHERE shipment_id = ?`,
			shipmentID.Bytes()).
		Scan(&max).Error
	return max, err
}

// TransferOwnership moves every package of the shipment to the new owner in
// one bulk statement and reports the number of rows moved.
func (r *GormPackageRepository) TransferOwnership(
	ctx context.Context,
	shipmentID kernel.UUID,
	newOrganisationID kernel.UUID,
) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&PackageDTO{}).
		Where("shipment_id = ?", shipmentID.Bytes()).
		Update("organisation_id", newOrganisationID.Bytes())
	return result.RowsAffected, result.Error
}

// UnlinkByShipment returns all of a shipment's packages to free inventory.
func (r *GormPackageRepository) UnlinkByShipment(ctx context.Context, shipmentID kernel.UUID) error {
	return r.db.WithContext(ctx).
		Model(&PackageDTO{}).
		Where("shipment_id = ?", shipmentID.Bytes()).
		Updates(map[string]any{
			"shipment_id":    nil,
			"pallet_id":      nil,
			"sequence":       0,
			"package_number": "",
		}).Error
}

// DeleteByShipment hard-deletes all packages linked to a shipment.
func (r *GormPackageRepository) DeleteByShipment(ctx context.Context, shipmentID kernel.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&PackageDTO{}, "shipment_id = ?", shipmentID.Bytes()).Error
}

// Delete hard-deletes a single package.
func (r *GormPackageRepository) Delete(ctx context.Context, id kernel.UUID) error {
	result := r.db.WithContext(ctx).Delete(&PackageDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("package", id.String())
	}
	return nil
}

// ClearPallet makes every package on the pallet loose.
func (r *GormPackageRepository) ClearPallet(ctx context.Context, palletID kernel.UUID) error {
	return r.db.WithContext(ctx).
		Model(&PackageDTO{}).
		Where("pallet_id = ?", palletID.Bytes()).
		Update("pallet_id", nil).Error
}

// CountProductionReferences counts production inputs referencing any package
// of the shipment.
func (r *GormPackageRepository) CountProductionReferences(
	ctx context.Context,
	shipmentID kernel.UUID,
) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&ProductionInputDTO{}).
		Where("package_id IN (SELECT id FROM packages WHERE shipment_id = ?)", shipmentID.Bytes()).
		Count(&count).Error
	return count, err
}

func (r *GormPackageRepository) toDomainAll(dtos []PackageDTO) ([]*inventory.Package, error) {
	packages := make([]*inventory.Package, 0, len(dtos))
	for _, dto := range dtos {
		pkg, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		packages = append(packages, pkg)
	}
	return packages, nil
}
