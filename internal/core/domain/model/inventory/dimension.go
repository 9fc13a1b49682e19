package inventory

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Dimension is a physical measurement as entered by a user: either a single
// numeric value ("25") or a range ("25-32"). Piece counts follow the same
// rules. A range is any value containing a '-' past the first character, so a
// leading minus sign still parses as a (negative, invalid) single value.
//
// The zero value is an empty dimension, meaning the field was cleared.
type Dimension struct {
	raw string
}

// NewDimension creates a Dimension from raw user input.
// Surrounding whitespace is ignored; any content is accepted, since a
// non-numeric entry simply makes the value ineligible for volume derivation.
func NewDimension(raw string) Dimension {
	return Dimension{raw: strings.TrimSpace(raw)}
}

// String returns the raw entered value.
func (d Dimension) String() string {
	return d.raw
}

// IsEmpty reports whether the field was left blank or cleared.
func (d Dimension) IsEmpty() bool {
	return d.raw == ""
}

// IsRange reports whether the value expresses a range, i.e. contains a '-'
// that is not the first character.
func (d Dimension) IsRange() bool {
	return strings.Index(d.raw, "-") > 0
}

// Value returns the numeric value of a single (non-range) dimension.
// The second result is false for empty, range, or non-numeric input.
func (d Dimension) Value() (decimal.Decimal, bool) {
	if d.IsEmpty() || d.IsRange() {
		return decimal.Zero, false
	}
	v, err := decimal.NewFromString(d.raw)
	if err != nil {
		return decimal.Zero, false
	}
	return v, true
}

// IsEqual reports whether both dimensions hold the same raw value.
func (d Dimension) IsEqual(other Dimension) bool {
	return d.raw == other.raw
}

// volumeDivisor converts mm × mm × mm to m³.
var volumeDivisor = decimal.NewFromInt(1_000_000_000)

// DeriveVolume computes thickness × width × length × pieces / 1e9, the cubic
// metre volume of a package whose dimensions are entered in millimetres.
// The second result is false when any input is empty, a range, non-numeric,
// or not positive; in that case the volume stays under manual control.
func DeriveVolume(thickness, width, length, pieces Dimension) (decimal.Decimal, bool) {
	product := decimal.NewFromInt(1)
	for _, d := range []Dimension{thickness, width, length, pieces} {
		v, ok := d.Value()
		if !ok || !v.IsPositive() {
			return decimal.Zero, false
		}
		product = product.Mul(v)
	}
	return product.Div(volumeDivisor), true
}
