// Package queries contains the engine's read side: denormalized views served
// straight from SQL, bypassing the aggregates. Reads never mutate and are not
// subject to the version compare-and-swap the write side uses.
package queries

import (
	"errors"
	"time"

	"timberops/internal/core/domain/model/kernel"
	"timberops/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrGetShipmentQueryIsNotConstructed is returned when the query was not
// created via its constructor.
var ErrGetShipmentQueryIsNotConstructed = errors.New(
	"GetShipmentQuery must be created via NewGetShipmentQuery constructor",
)

// GetShipmentQuery retrieves one shipment with its pallets and packages.
// Only the two party organisations may read a shipment.
type GetShipmentQuery struct {
	callerOrganisationID kernel.UUID
	shipmentID           kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetShipmentQuery creates a validated shipment detail query.
func NewGetShipmentQuery(callerOrganisationID, shipmentID kernel.UUID) (GetShipmentQuery, error) {
	if err := callerOrganisationID.Validate(); err != nil {
		return GetShipmentQuery{}, err
	}
	if err := shipmentID.Validate(); err != nil {
		return GetShipmentQuery{}, err
	}

	return GetShipmentQuery{
		callerOrganisationID: callerOrganisationID,
		shipmentID:           shipmentID,
		guard:                guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetShipmentQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentQueryIsNotConstructed)
}

// CallerOrganisationID returns the organisation reading the shipment.
func (q GetShipmentQuery) CallerOrganisationID() kernel.UUID {
	return q.callerOrganisationID
}

// ShipmentID returns the shipment to read.
func (q GetShipmentQuery) ShipmentID() kernel.UUID {
	return q.shipmentID
}

// PalletResponse is one pallet of the shipment view.
type PalletResponse struct {
	ID           kernel.UUID
	PalletNumber int
}

// PackageResponse is one package of the shipment view, ordered by sequence.
type PackageResponse struct {
	ID             kernel.UUID
	OrganisationID kernel.UUID
	PalletID       *kernel.UUID
	Sequence       int
	PackageNumber  string
	ProductName    string
	Species        string
	Thickness      string
	Width          string
	Length         string
	Pieces         string
	Volume         decimal.Decimal
	VolumeAuto     bool
	Status         string
}

// GetShipmentQueryResponse is the full shipment view.
type GetShipmentQueryResponse struct {
	ID                 kernel.UUID
	ShipmentCode       string
	ShipmentNumber     int64
	FromOrganisationID kernel.UUID
	ToOrganisationID   kernel.UUID
	Status             string
	SubmittedAt        *time.Time
	ReviewedAt         *time.Time
	ReviewedBy         *kernel.UUID
	RejectionReason    string
	CompletedAt        *time.Time
	TransportCost      *decimal.Decimal
	Pallets            []PalletResponse
	Packages           []PackageResponse
}
