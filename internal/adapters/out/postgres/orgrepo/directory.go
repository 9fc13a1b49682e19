package orgrepo

import (
	"context"
	"errors"

	"timberops/internal/core/domain/model/kernel"
	"timberops/internal/core/ports"
	"timberops/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrganisationDirectory implements OrganisationDirectory using GORM.
// The directory is read-only: organisations and trading relationships are
// managed elsewhere.
type GormOrganisationDirectory struct {
	db *gorm.DB
}

// NewGormOrganisationDirectory creates a new GORM organisation directory.
func NewGormOrganisationDirectory(db *gorm.DB) *GormOrganisationDirectory {
	return &GormOrganisationDirectory{db: db}
}

// GetOrganisation retrieves an organisation by ID.
func (d *GormOrganisationDirectory) GetOrganisation(
	ctx context.Context,
	id kernel.UUID,
) (ports.Organisation, error) {
	if err := id.Validate(); err != nil {
		return ports.Organisation{}, err
	}

	var dto OrganisationDTO
	if err := d.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Organisation{}, errs.NewObjectNotFoundError("organisationID", id.String())
		}
		return ports.Organisation{}, err
	}

	orgID, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.Organisation{}, err
	}

	return ports.Organisation{
		ID:         orgID,
		Code:       dto.Code,
		Name:       dto.Name,
		IsExternal: dto.IsExternal,
		IsActive:   dto.IsActive,
	}, nil
}

// IsTradingPartner reports whether a trading relationship exists in either
// direction between the two organisations.
func (d *GormOrganisationDirectory) IsTradingPartner(
	ctx context.Context,
	organisationID kernel.UUID,
	partnerID kernel.UUID,
) (bool, error) {
	var count int64
	err := d.db.WithContext(ctx).
		Model(&TradingPartnerDTO{}).
		Where(
			"(organisation_id = ? AND partner_id = ?) OR (organisation_id = ? AND partner_id = ?)",
			organisationID.Bytes(), partnerID.Bytes(),
			partnerID.Bytes(), organisationID.Bytes(),
		).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
