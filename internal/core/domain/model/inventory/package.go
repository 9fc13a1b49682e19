package inventory

import (
	"errors"
	"fmt"

	"timberops/internal/core/domain/model/kernel"
	"timberops/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrPackageIsNotConstructed is returned when a Package instance was not
	// created through NewPackage or RestorePackage.
	ErrPackageIsNotConstructed = errors.New("Package must be created via NewPackage or RestorePackage")

	// ErrPackageAlreadyLinked is returned when linking a package that already
	// belongs to a shipment.
	ErrPackageAlreadyLinked = errors.New("package is already linked to a shipment")

	// ErrPackageNotLinked is returned when a pallet assignment is attempted on
	// a loose package outside any shipment.
	ErrPackageNotLinked = errors.New("package is not linked to a shipment")
)

// Attributes groups the descriptive and physical fields of a package.
// The seven vocabulary fields hold codes from the portal's controlled
// vocabularies; dimensions are millimetres.
type Attributes struct {
	ProductName string
	Species     string
	Humidity    string
	WoodType    string
	Processing  string
	FSC         string
	Quality     string
	Thickness   Dimension
	Width       Dimension
	Length      Dimension
	Pieces      Dimension
	// Volume is the manual cubic-metre volume; it is overridden whenever the
	// derivation rule is eligible.
	Volume decimal.Decimal
}

// Package is a discrete physical inventory unit owned by exactly one
// organisation at a time.
//
// Package follows these invariants:
//   - Must have a valid unique identifier and owning organisation
//   - Volume equals thickness × width × length × pieces (unit-converted)
//     whenever all four inputs are single positive numbers; the moment any of
//     them is a range or cleared, volume reverts to manual entry and the last
//     derived value is retained
//   - Pallet assignment requires shipment linkage
//   - Can only be created through NewPackage or RestorePackage
type Package struct {
	id             kernel.UUID
	organisationID kernel.UUID

	// shipmentID is nil while the package sits in free inventory.
	shipmentID *kernel.UUID

	// palletID is nil for a loose package within its shipment.
	palletID *kernel.UUID

	// sequence and packageNumber exist only while linked to a shipment.
	sequence      int
	packageNumber string

	attrs      Attributes
	volume     decimal.Decimal
	volumeAuto bool

	status Status

	isConstructed bool
}

// NewPackage creates a package in available status owned by the given
// organisation. Volume derivation is evaluated immediately, so an eligible set
// of dimensions overrides any manual volume in attrs.
func NewPackage(id kernel.UUID, organisationID kernel.UUID, attrs Attributes) (*Package, error) {
	p := &Package{
		status:        StatusAvailable,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setOrganisationID(organisationID),
		p.setAttributes(attrs),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestorePackage reconstructs a package from persistence with its full state.
func RestorePackage(
	id kernel.UUID,
	organisationID kernel.UUID,
	shipmentID *kernel.UUID,
	palletID *kernel.UUID,
	sequence int,
	packageNumber string,
	attrs Attributes,
	volume decimal.Decimal,
	volumeAuto bool,
	status Status,
) (*Package, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	p := &Package{
		shipmentID:    shipmentID,
		palletID:      palletID,
		sequence:      sequence,
		packageNumber: packageNumber,
		volume:        volume,
		volumeAuto:    volumeAuto,
		status:        status,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setOrganisationID(organisationID),
	); err != nil {
		return nil, err
	}
	p.attrs = attrs

	return p, nil
}

// Validate ensures the Package was constructed through a factory function.
func (p *Package) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPackageIsNotConstructed
	}
	return nil
}

// IsEqual compares two packages by identifier.
func (p *Package) IsEqual(other *Package) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the package's unique identifier.
func (p *Package) ID() kernel.UUID {
	return p.id
}

// OrganisationID returns the current owning organisation.
func (p *Package) OrganisationID() kernel.UUID {
	return p.organisationID
}

// ShipmentID returns the linked shipment, or nil for free inventory.
func (p *Package) ShipmentID() *kernel.UUID {
	return p.shipmentID
}

// PalletID returns the pallet the package sits on, or nil when loose.
func (p *Package) PalletID() *kernel.UUID {
	return p.palletID
}

// Sequence returns the package's sequence number within its shipment.
func (p *Package) Sequence() int {
	return p.sequence
}

// PackageNumber returns the human-readable number within the shipment's
// numbering scheme.
func (p *Package) PackageNumber() string {
	return p.packageNumber
}

// Attributes returns the descriptive and physical attributes.
func (p *Package) Attributes() Attributes {
	return p.attrs
}

// Volume returns the cubic-metre volume, derived or manual.
func (p *Package) Volume() decimal.Decimal {
	return p.volume
}

// VolumeIsDerived reports whether the current volume was auto-calculated.
func (p *Package) VolumeIsDerived() bool {
	return p.volumeAuto
}

// Status returns the package lifecycle status.
func (p *Package) Status() Status {
	return p.status
}

// IsConsumed reports whether the package was used as a production input.
func (p *Package) IsConsumed() bool {
	return p.status == StatusConsumed
}

// ApplyAttributes replaces all descriptive and physical attributes at once and
// re-evaluates volume derivation, as the batched update flow does on save.
func (p *Package) ApplyAttributes(attrs Attributes) error {
	return p.setAttributes(attrs)
}

// SetThickness updates the thickness and re-evaluates volume derivation.
func (p *Package) SetThickness(d Dimension) {
	p.attrs.Thickness = d
	p.recomputeVolume()
}

// SetWidth updates the width and re-evaluates volume derivation.
func (p *Package) SetWidth(d Dimension) {
	p.attrs.Width = d
	p.recomputeVolume()
}

// SetLength updates the length and re-evaluates volume derivation.
func (p *Package) SetLength(d Dimension) {
	p.attrs.Length = d
	p.recomputeVolume()
}

// SetPieces updates the piece count and re-evaluates volume derivation.
func (p *Package) SetPieces(d Dimension) {
	p.attrs.Pieces = d
	p.recomputeVolume()
}

// SetManualVolume overrides the volume with a user-entered value and switches
// the field to manual mode. Rejected while derivation is active, since the
// derived value is authoritative until an input becomes a range or is cleared.
func (p *Package) SetManualVolume(volume decimal.Decimal) error {
	if p.volumeAuto {
		return errs.NewValueIsInvalidErrorWithCause(
			"volume",
			errors.New("volume is derived from dimensions while none of them is a range"),
		)
	}
	if volume.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("volume", fmt.Errorf("%s is negative", volume))
	}
	p.volume = volume
	return nil
}

// AssignToShipment links the package to a shipment with its position in the
// shipment's numbering scheme. The package must currently be unlinked.
func (p *Package) AssignToShipment(shipmentID kernel.UUID, sequence int, packageNumber string) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}
	if p.shipmentID != nil {
		return ErrPackageAlreadyLinked
	}
	if sequence <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("sequence", fmt.Errorf("%d is not greater than 0", sequence))
	}
	if packageNumber == "" {
		return errs.NewValueIsRequiredError("packageNumber")
	}

	p.shipmentID = &shipmentID
	p.sequence = sequence
	p.packageNumber = packageNumber
	return nil
}

// UnlinkFromShipment returns the package to free inventory, clearing shipment
// linkage, pallet assignment, and the shipment-scoped numbering.
func (p *Package) UnlinkFromShipment() {
	p.shipmentID = nil
	p.palletID = nil
	p.sequence = 0
	p.packageNumber = ""
}

// AssignToPallet puts the package on a pallet within its shipment, or makes it
// loose when palletID is nil. Validating that the pallet belongs to the same
// shipment is the caller's job; a loose package outside a shipment cannot be
// palletized at all.
func (p *Package) AssignToPallet(palletID *kernel.UUID) error {
	if p.shipmentID == nil {
		return ErrPackageNotLinked
	}
	if palletID != nil {
		if err := palletID.Validate(); err != nil {
			return err
		}
	}
	p.palletID = palletID
	return nil
}

// MakeLoose removes the package from its pallet without touching shipment
// linkage. Used when a pallet is deleted.
func (p *Package) MakeLoose() {
	p.palletID = nil
}

// TransferTo changes the owning organisation. This is the field the accept
// protocol mutates in bulk.
func (p *Package) TransferTo(organisationID kernel.UUID) error {
	return p.setOrganisationID(organisationID)
}

func (p *Package) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Package) setOrganisationID(organisationID kernel.UUID) error {
	if err := organisationID.Validate(); err != nil {
		return err
	}
	p.organisationID = organisationID
	return nil
}

func (p *Package) setAttributes(attrs Attributes) error {
	if attrs.ProductName == "" {
		return errs.NewValueIsRequiredError("productName")
	}
	if attrs.Volume.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("volume", fmt.Errorf("%s is negative", attrs.Volume))
	}

	p.attrs = attrs
	p.volume = attrs.Volume
	p.recomputeVolume()
	return nil
}

// recomputeVolume applies the derivation rule after any edit to a contributing
// field. When ineligible, the last value stays in place as a manual entry.
func (p *Package) recomputeVolume() {
	if v, ok := DeriveVolume(p.attrs.Thickness, p.attrs.Width, p.attrs.Length, p.attrs.Pieces); ok {
		p.volume = v
		p.volumeAuto = true
		return
	}
	p.volumeAuto = false
}
