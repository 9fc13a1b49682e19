package queries

import (
	"errors"

	"timberops/internal/core/domain/model/kernel"
	"timberops/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrGetAvailablePackagesQueryIsNotConstructed is returned when the query was
// not created via its constructor.
var ErrGetAvailablePackagesQueryIsNotConstructed = errors.New(
	"GetAvailablePackagesQuery must be created via NewGetAvailablePackagesQuery constructor",
)

// GetAvailablePackagesQuery retrieves an organisation's free inventory: the
// packages it owns in available status, not linked to any shipment. This is
// the pick list the add-packages flow selects from.
type GetAvailablePackagesQuery struct {
	organisationID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetAvailablePackagesQuery creates a validated free-inventory query.
func NewGetAvailablePackagesQuery(organisationID kernel.UUID) (GetAvailablePackagesQuery, error) {
	if err := organisationID.Validate(); err != nil {
		return GetAvailablePackagesQuery{}, err
	}

	return GetAvailablePackagesQuery{
		organisationID: organisationID,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAvailablePackagesQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailablePackagesQueryIsNotConstructed)
}

// OrganisationID returns the owning organisation.
func (q GetAvailablePackagesQuery) OrganisationID() kernel.UUID {
	return q.organisationID
}

// GetAvailablePackagesQueryResponse is one free-inventory package.
type GetAvailablePackagesQueryResponse struct {
	ID          kernel.UUID
	ProductName string
	Species     string
	Thickness   string
	Width       string
	Length      string
	Pieces      string
	Volume      decimal.Decimal
	VolumeAuto  bool
}
