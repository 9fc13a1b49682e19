package queries

import (
	"context"

	"timberops/internal/core/domain/model/inventory"
	"timberops/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAvailablePackagesQueryHandler serves an organisation's free inventory.
type GetAvailablePackagesQueryHandler struct {
	db *gorm.DB
}

// NewGetAvailablePackagesQueryHandler creates a handler for free-inventory
// queries.
func NewGetAvailablePackagesQueryHandler(db *gorm.DB) GetAvailablePackagesQueryHandler {
	return GetAvailablePackagesQueryHandler{db: db}
}

// Handle lists the caller organisation's available, unlinked packages,
// ordered by product name for a stable pick list.
func (h GetAvailablePackagesQueryHandler) Handle(
	ctx context.Context,
	query GetAvailablePackagesQuery,
) ([]GetAvailablePackagesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			product_name,
			species,
			thickness,
			width,
			length,
			pieces,
			volume,
			volume_auto
		FROM packages
		WHERE organisation_id = ?
		  AND status = ?
		  AND shipment_id IS NULL
		ORDER BY product_name, id
	`, query.OrganisationID().Bytes(), inventory.StatusAvailable.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	packages := make([]GetAvailablePackagesQueryResponse, 0)
	for rows.Next() {
		var pkg GetAvailablePackagesQueryResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&pkg.ProductName,
			&pkg.Species,
			&pkg.Thickness,
			&pkg.Width,
			&pkg.Length,
			&pkg.Pieces,
			&pkg.Volume,
			&pkg.VolumeAuto,
		)
		if err != nil {
			return nil, err
		}

		if pkg.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		packages = append(packages, pkg)
	}

	return packages, rows.Err()
}
