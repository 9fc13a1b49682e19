package queries

import (
	"context"
	"database/sql"
	"time"

	"timberops/internal/core/domain/model/kernel"
	"timberops/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetShipmentQueryHandler serves the shipment detail view.
type GetShipmentQueryHandler struct {
	db *gorm.DB
}

// NewGetShipmentQueryHandler creates a handler for shipment detail queries.
func NewGetShipmentQueryHandler(db *gorm.DB) GetShipmentQueryHandler {
	return GetShipmentQueryHandler{db: db}
}

// Handle reads the shipment with its pallets and packages. Callers outside
// the shipment's two parties get Forbidden, indistinguishable from their
// perspective whether the shipment exists or not.
func (h GetShipmentQueryHandler) Handle(
	ctx context.Context,
	query GetShipmentQuery,
) (GetShipmentQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetShipmentQueryResponse{}, err
	}

	resp, err := h.loadShipment(ctx, query)
	if err != nil {
		return GetShipmentQueryResponse{}, err
	}

	resp.Pallets, err = h.loadPallets(ctx, query.ShipmentID())
	if err != nil {
		return GetShipmentQueryResponse{}, err
	}

	resp.Packages, err = h.loadPackages(ctx, query.ShipmentID())
	if err != nil {
		return GetShipmentQueryResponse{}, err
	}

	return resp, nil
}

func (h GetShipmentQueryHandler) loadShipment(
	ctx context.Context,
	query GetShipmentQuery,
) (GetShipmentQueryResponse, error) {
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			shipment_code,
			shipment_number,
			from_organisation_id,
			to_organisation_id,
			status,
			submitted_at,
			reviewed_at,
			reviewed_by,
			rejection_reason,
			completed_at,
			transport_cost
		FROM shipments
		WHERE id = ?
	`, query.ShipmentID().Bytes()).Row()

	var resp GetShipmentQueryResponse
	var id, fromID, toID uuid.UUID
	var reviewedBy *uuid.UUID
	var submittedAt, reviewedAt, completedAt sql.NullTime
	var rejectionReason sql.NullString
	var transportCost decimal.NullDecimal

	err := row.Scan(
		&id,
		&resp.ShipmentCode,
		&resp.ShipmentNumber,
		&fromID,
		&toID,
		&resp.Status,
		&submittedAt,
		&reviewedAt,
		&reviewedBy,
		&rejectionReason,
		&completedAt,
		&transportCost,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return GetShipmentQueryResponse{}, errs.NewObjectNotFoundError("shipmentID", query.ShipmentID())
		}
		return GetShipmentQueryResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetShipmentQueryResponse{}, err
	}
	if resp.FromOrganisationID, err = kernel.UUIDFromBytes(fromID[:]); err != nil {
		return GetShipmentQueryResponse{}, err
	}
	if resp.ToOrganisationID, err = kernel.UUIDFromBytes(toID[:]); err != nil {
		return GetShipmentQueryResponse{}, err
	}

	caller := query.CallerOrganisationID()
	if !caller.IsEqual(resp.FromOrganisationID) && !caller.IsEqual(resp.ToOrganisationID) {
		return GetShipmentQueryResponse{}, errs.ErrForbidden
	}

	resp.SubmittedAt = nullableTime(submittedAt)
	resp.ReviewedAt = nullableTime(reviewedAt)
	resp.CompletedAt = nullableTime(completedAt)
	resp.RejectionReason = rejectionReason.String
	if reviewedBy != nil {
		reviewer, reviewerErr := kernel.UUIDFromBytes((*reviewedBy)[:])
		if reviewerErr != nil {
			return GetShipmentQueryResponse{}, reviewerErr
		}
		resp.ReviewedBy = &reviewer
	}
	if transportCost.Valid {
		resp.TransportCost = &transportCost.Decimal
	}

	return resp, nil
}

func (h GetShipmentQueryHandler) loadPallets(ctx context.Context, shipmentID kernel.UUID) ([]PalletResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, pallet_number
		FROM pallets
		WHERE shipment_id = ?
		ORDER BY pallet_number
	`, shipmentID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pallets := make([]PalletResponse, 0)
	for rows.Next() {
		var id uuid.UUID
		var number int
		if err = rows.Scan(&id, &number); err != nil {
			return nil, err
		}
		palletID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		pallets = append(pallets, PalletResponse{ID: palletID, PalletNumber: number})
	}
	return pallets, rows.Err()
}

func (h GetShipmentQueryHandler) loadPackages(ctx context.Context, shipmentID kernel.UUID) ([]PackageResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			organisation_id,
			pallet_id,
			sequence,
			package_number,
			product_name,
			species,
			thickness,
			width,
			length,
			pieces,
			volume,
			volume_auto,
			status
		FROM packages
		WHERE shipment_id = ?
		ORDER BY sequence
	`, shipmentID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	packages := make([]PackageResponse, 0)
	for rows.Next() {
		var pkg PackageResponse
		var id, orgID uuid.UUID
		var palletID *uuid.UUID

		err = rows.Scan(
			&id,
			&orgID,
			&palletID,
			&pkg.Sequence,
			&pkg.PackageNumber,
			&pkg.ProductName,
			&pkg.Species,
			&pkg.Thickness,
			&pkg.Width,
			&pkg.Length,
			&pkg.Pieces,
			&pkg.Volume,
			&pkg.VolumeAuto,
			&pkg.Status,
		)
		if err != nil {
			return nil, err
		}

		if pkg.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if pkg.OrganisationID, err = kernel.UUIDFromBytes(orgID[:]); err != nil {
			return nil, err
		}
		if palletID != nil {
			pid, pidErr := kernel.UUIDFromBytes((*palletID)[:])
			if pidErr != nil {
				return nil, pidErr
			}
			pkg.PalletID = &pid
		}
		packages = append(packages, pkg)
	}
	return packages, rows.Err()
}

func nullableTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
