// Package packagerepo provides data transfer objects and mapping functions
// for inventory package persistence. It implements the slice of the package
// store the shipment workflow mutates: ownership, shipment linkage, and
// pallet linkage.
package packagerepo

import (
	"timberops/internal/core/domain/model/inventory"
	"timberops/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PackageDTO represents the database structure for persisting inventory
// packages. Dimensions are stored as the raw user-entered text, so ranges
// like "25-32" round-trip unchanged.
type PackageDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrganisationID uuid.UUID  `gorm:"type:uuid;index"`
	ShipmentID     *uuid.UUID `gorm:"type:uuid;index"`
	PalletID       *uuid.UUID `gorm:"type:uuid;index"`
	Sequence       int
	PackageNumber  string `gorm:"type:varchar(80)"`

	ProductName string `gorm:"type:varchar(255)"`
	Species     string `gorm:"type:varchar(64)"`
	Humidity    string `gorm:"type:varchar(64)"`
	WoodType    string `gorm:"type:varchar(64)"`
	Processing  string `gorm:"type:varchar(64)"`
	FSC         string `gorm:"type:varchar(64)"`
	Quality     string `gorm:"type:varchar(64)"`
	Thickness   string `gorm:"type:varchar(32)"`
	Width       string `gorm:"type:varchar(32)"`
	Length      string `gorm:"type:varchar(32)"`
	Pieces      string `gorm:"type:varchar(32)"`

	Volume     decimal.Decimal `gorm:"type:numeric(14,6)"`
	VolumeAuto bool
	Status     string `gorm:"type:varchar(16);index"`
}

// TableName specifies the database table name for package entities.
func (PackageDTO) TableName() string {
	return "packages"
}

// ProductionInputDTO records a package consumed by a production run.
// The workflow only reads it: a referenced package blocks shipment deletion.
type ProductionInputDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	PackageID uuid.UUID `gorm:"type:uuid;index"`
}

// TableName specifies the database table name for production input entities.
func (ProductionInputDTO) TableName() string {
	return "production_inputs"
}

// fromDomain converts a package entity to its database representation.
func fromDomain(aggregate *inventory.Package) PackageDTO {
	var shipmentID, palletID *uuid.UUID
	if id := aggregate.ShipmentID(); id != nil {
		raw := id.Bytes()
		shipmentID = &raw
	}
	if id := aggregate.PalletID(); id != nil {
		raw := id.Bytes()
		palletID = &raw
	}

	attrs := aggregate.Attributes()
	return PackageDTO{
		ID:             aggregate.ID().Bytes(),
		OrganisationID: aggregate.OrganisationID().Bytes(),
		ShipmentID:     shipmentID,
		PalletID:       palletID,
		Sequence:       aggregate.Sequence(),
		PackageNumber:  aggregate.PackageNumber(),
		ProductName:    attrs.ProductName,
		Species:        attrs.Species,
		Humidity:       attrs.Humidity,
		WoodType:       attrs.WoodType,
		Processing:     attrs.Processing,
		FSC:            attrs.FSC,
		Quality:        attrs.Quality,
		Thickness:      attrs.Thickness.String(),
		Width:          attrs.Width.String(),
		Length:         attrs.Length.String(),
		Pieces:         attrs.Pieces.String(),
		Volume:         aggregate.Volume(),
		VolumeAuto:     aggregate.VolumeIsDerived(),
		Status:         aggregate.Status().String(),
	}
}

// toDomain converts a database DTO to a package entity using RestorePackage.
func toDomain(dto PackageDTO) (*inventory.Package, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orgID, err := kernel.UUIDFromBytes(dto.OrganisationID[:])
	if err != nil {
		return nil, err
	}

	var shipmentID, palletID *kernel.UUID
	if dto.ShipmentID != nil {
		sID, sErr := kernel.UUIDFromBytes((*dto.ShipmentID)[:])
		if sErr != nil {
			return nil, sErr
		}
		shipmentID = &sID
	}
	if dto.PalletID != nil {
		pID, pErr := kernel.UUIDFromBytes((*dto.PalletID)[:])
		if pErr != nil {
			return nil, pErr
		}
		palletID = &pID
	}

	status, err := inventory.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	attrs := inventory.Attributes{
		ProductName: dto.ProductName,
		Species:     dto.Species,
		Humidity:    dto.Humidity,
		WoodType:    dto.WoodType,
		Processing:  dto.Processing,
		FSC:         dto.FSC,
		Quality:     dto.Quality,
		Thickness:   inventory.NewDimension(dto.Thickness),
		Width:       inventory.NewDimension(dto.Width),
		Length:      inventory.NewDimension(dto.Length),
		Pieces:      inventory.NewDimension(dto.Pieces),
		Volume:      dto.Volume,
	}

	return inventory.RestorePackage(
		id,
		orgID,
		shipmentID,
		palletID,
		dto.Sequence,
		dto.PackageNumber,
		attrs,
		dto.Volume,
		dto.VolumeAuto,
		status,
	)
}
