package shipment

import (
	"errors"
	"fmt"

	"timberops/internal/core/domain/model/kernel"
	"timberops/internal/pkg/errs"
)

// ErrPalletIsNotConstructed is returned when a Pallet instance was not created
// through NewPallet or RestorePallet.
var ErrPalletIsNotConstructed = errors.New("Pallet must be created via NewPallet or RestorePallet")

// Pallet is an optional physical grouping of packages within one shipment.
// Pallets are numbered sequentially within their shipment starting at 1 and
// exist only while the parent shipment is a draft; packages reference a pallet
// by id and become loose when it is deleted.
type Pallet struct {
	id           kernel.UUID
	palletNumber int

	isConstructed bool
}

// NewPallet creates a pallet with its number within the shipment.
// Numbering is owned by the aggregate (Shipment.CreatePallet).
func NewPallet(id kernel.UUID, palletNumber int) (*Pallet, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if palletNumber < 1 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"palletNumber",
			fmt.Errorf("%d is not greater than 0", palletNumber),
		)
	}

	return &Pallet{
		id:            id,
		palletNumber:  palletNumber,
		isConstructed: true,
	}, nil
}

// RestorePallet reconstructs a pallet from persistence.
func RestorePallet(id kernel.UUID, palletNumber int) (*Pallet, error) {
	return NewPallet(id, palletNumber)
}

// Validate ensures the Pallet was constructed through a factory function.
func (p *Pallet) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPalletIsNotConstructed
	}
	return nil
}

// ID returns the pallet's unique identifier.
func (p *Pallet) ID() kernel.UUID {
	return p.id
}

// PalletNumber returns the pallet's sequential number within its shipment.
func (p *Pallet) PalletNumber() int {
	return p.palletNumber
}
