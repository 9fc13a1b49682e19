// Package shipmentrepo provides data transfer objects and mapping functions
// for shipment persistence. It implements the repository for the shipment
// aggregate, including its pallets and the optimistic-concurrency version
// column.
package shipmentrepo

import (
	"time"

	"timberops/internal/core/domain/model/kernel"
	"timberops/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShipmentDTO represents the database structure for persisting shipment
// aggregates. The shipment_code unique index is the backstop against
// concurrent creation for the same organisation pair; version is the
// compare-and-swap token for updates.
type ShipmentDTO struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ShipmentCode       string     `gorm:"type:varchar(64);uniqueIndex"`
	ShipmentNumber     int64      `gorm:"uniqueIndex"`
	FromOrganisationID uuid.UUID  `gorm:"type:uuid;index"`
	ToOrganisationID   uuid.UUID  `gorm:"type:uuid;index"`
	Status             string     `gorm:"type:varchar(16);index"`
	SubmittedAt        *time.Time
	ReviewedAt         *time.Time
	ReviewedBy         *uuid.UUID `gorm:"type:uuid"`
	RejectionReason    string
	CompletedAt        *time.Time
	TransportCost      decimal.NullDecimal `gorm:"type:numeric(12,2)"`
	Version            int64               `gorm:"not null"`

	Pallets []PalletDTO `gorm:"foreignKey:ShipmentID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for shipment entities.
func (ShipmentDTO) TableName() string {
	return "shipments"
}

// PalletDTO represents a pallet row belonging to one shipment.
type PalletDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShipmentID   uuid.UUID `gorm:"type:uuid;index"`
	PalletNumber int
}

// TableName specifies the database table name for pallet entities.
func (PalletDTO) TableName() string {
	return "pallets"
}

// fromDomain converts a shipment aggregate to its database representation.
// The version column carries the aggregate's current token; Update bumps it.
func fromDomain(aggregate *shipment.Shipment) ShipmentDTO {
	var reviewedBy *uuid.UUID
	if id := aggregate.ReviewedBy(); id != nil {
		raw := id.Bytes()
		reviewedBy = &raw
	}

	var transportCost decimal.NullDecimal
	if cost := aggregate.TransportCost(); cost != nil {
		transportCost = decimal.NewNullDecimal(cost.Amount())
	}

	pallets := make([]PalletDTO, 0, len(aggregate.Pallets()))
	for _, p := range aggregate.Pallets() {
		pallets = append(pallets, PalletDTO{
			ID:           p.ID().Bytes(),
			ShipmentID:   aggregate.ID().Bytes(),
			PalletNumber: p.PalletNumber(),
		})
	}

	return ShipmentDTO{
		ID:                 aggregate.ID().Bytes(),
		ShipmentCode:       aggregate.Code(),
		ShipmentNumber:     aggregate.ShipmentNumber(),
		FromOrganisationID: aggregate.FromOrganisationID().Bytes(),
		ToOrganisationID:   aggregate.ToOrganisationID().Bytes(),
		Status:             aggregate.Status().String(),
		SubmittedAt:        aggregate.SubmittedAt(),
		ReviewedAt:         aggregate.ReviewedAt(),
		ReviewedBy:         reviewedBy,
		RejectionReason:    aggregate.RejectionReason(),
		CompletedAt:        aggregate.CompletedAt(),
		TransportCost:      transportCost,
		Version:            aggregate.Version(),
		Pallets:            pallets,
	}
}

// toDomain converts a database DTO to a shipment aggregate using
// RestoreShipment.
func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	fromID, err := kernel.UUIDFromBytes(dto.FromOrganisationID[:])
	if err != nil {
		return nil, err
	}
	toID, err := kernel.UUIDFromBytes(dto.ToOrganisationID[:])
	if err != nil {
		return nil, err
	}

	status, err := shipment.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var reviewedBy *kernel.UUID
	if dto.ReviewedBy != nil {
		reviewer, reviewerErr := kernel.UUIDFromBytes((*dto.ReviewedBy)[:])
		if reviewerErr != nil {
			return nil, reviewerErr
		}
		reviewedBy = &reviewer
	}

	var transportCost *kernel.Money
	if dto.TransportCost.Valid {
		cost, costErr := kernel.NewMoney(dto.TransportCost.Decimal)
		if costErr != nil {
			return nil, costErr
		}
		transportCost = &cost
	}

	pallets := make([]*shipment.Pallet, 0, len(dto.Pallets))
	for _, p := range dto.Pallets {
		palletID, palletErr := kernel.UUIDFromBytes(p.ID[:])
		if palletErr != nil {
			return nil, palletErr
		}
		pallet, palletErr := shipment.RestorePallet(palletID, p.PalletNumber)
		if palletErr != nil {
			return nil, palletErr
		}
		pallets = append(pallets, pallet)
	}

	return shipment.RestoreShipment(
		id,
		dto.ShipmentCode,
		dto.ShipmentNumber,
		fromID,
		toID,
		status,
		dto.SubmittedAt,
		dto.ReviewedAt,
		reviewedBy,
		dto.RejectionReason,
		dto.CompletedAt,
		transportCost,
		pallets,
		dto.Version,
	)
}
