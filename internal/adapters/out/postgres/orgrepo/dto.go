package orgrepo

import (
	"github.com/google/uuid"
)

// OrganisationDTO maps organisations to the database table.
type OrganisationDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code       string    `gorm:"type:varchar(16);not null;uniqueIndex"`
	Name       string    `gorm:"type:varchar(255);not null"`
	IsExternal bool      `gorm:"not null"`
	IsActive   bool      `gorm:"not null"`
}

// TableName overrides the default table name.
func (OrganisationDTO) TableName() string {
	return "organisations"
}

// TradingPartnerDTO maps a directed trading relationship between two
// organisations.
type TradingPartnerDTO struct {
	OrganisationID uuid.UUID `gorm:"type:uuid;primaryKey"`
	PartnerID      uuid.UUID `gorm:"type:uuid;primaryKey"`
}

// TableName overrides the default table name.
func (TradingPartnerDTO) TableName() string {
	return "trading_partners"
}
