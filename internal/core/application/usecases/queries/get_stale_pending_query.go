package queries

import (
	"errors"
	"time"

	"timberops/internal/core/domain/model/kernel"
	"timberops/internal/pkg/errs"
	"timberops/internal/pkg/guard"
)

// ErrGetStalePendingQueryIsNotConstructed is returned when the query was not
// created via its constructor.
var ErrGetStalePendingQueryIsNotConstructed = errors.New(
	"GetStalePendingQuery must be created via NewGetStalePendingQuery constructor",
)

// GetStalePendingQuery retrieves pending shipments submitted before a cutoff.
// The nightly sweep logs them so operators can chase slow reviews; nothing is
// transitioned automatically.
type GetStalePendingQuery struct {
	submittedBefore time.Time

	guard guard.ConstructorGuard
}

// NewGetStalePendingQuery creates a validated stale-pending query.
func NewGetStalePendingQuery(submittedBefore time.Time) (GetStalePendingQuery, error) {
	if submittedBefore.IsZero() {
		return GetStalePendingQuery{}, errs.NewValueIsRequiredError("submittedBefore")
	}

	return GetStalePendingQuery{
		submittedBefore: submittedBefore,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetStalePendingQuery) Validate() error {
	return q.guard.Validate(ErrGetStalePendingQueryIsNotConstructed)
}

// SubmittedBefore returns the staleness cutoff.
func (q GetStalePendingQuery) SubmittedBefore() time.Time {
	return q.submittedBefore
}

// GetStalePendingQueryResponse is one overdue pending shipment.
type GetStalePendingQueryResponse struct {
	ID               kernel.UUID
	ShipmentCode     string
	ToOrganisationID kernel.UUID
	SubmittedAt      time.Time
}
