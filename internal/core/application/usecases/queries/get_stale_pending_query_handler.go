package queries

import (
	"context"
	"time"

	"timberops/internal/core/domain/model/kernel"
	"timberops/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetStalePendingQueryHandler finds pending shipments awaiting review past a
// cutoff.
type GetStalePendingQueryHandler struct {
	db *gorm.DB
}

// NewGetStalePendingQueryHandler creates a handler for the stale-pending
// sweep.
func NewGetStalePendingQueryHandler(db *gorm.DB) GetStalePendingQueryHandler {
	return GetStalePendingQueryHandler{db: db}
}

// Handle lists pending shipments submitted before the cutoff, oldest first.
func (h GetStalePendingQueryHandler) Handle(
	ctx context.Context,
	query GetStalePendingQuery,
) ([]GetStalePendingQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			shipment_code,
			to_organisation_id,
			submitted_at
		FROM shipments
		WHERE status = ?
		  AND submitted_at < ?
		ORDER BY submitted_at
	`, shipment.Pending.String(), query.SubmittedBefore()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shipments := make([]GetStalePendingQueryResponse, 0)
	for rows.Next() {
		var resp GetStalePendingQueryResponse
		var id, toID uuid.UUID
		var submittedAt time.Time

		if err = rows.Scan(&id, &resp.ShipmentCode, &toID, &submittedAt); err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.ToOrganisationID, err = kernel.UUIDFromBytes(toID[:]); err != nil {
			return nil, err
		}
		resp.SubmittedAt = submittedAt
		shipments = append(shipments, resp)
	}

	return shipments, rows.Err()
}
