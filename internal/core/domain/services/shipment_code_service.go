package services

import (
	"fmt"
	"strings"

	"timberops/internal/pkg/errs"
)

// ShipmentCodeService derives the human-readable shipment code from the
// organisation pair and a per-pair sequence.
//
// The code format is "{FROM}-{TO}-{NNN}" with a zero-padded sequence unique
// per (from, to) pair. The sequence is the count of existing shipments between
// the pair plus one; the unique constraint on shipment_code is the backstop
// against concurrent creation for the same pair, surfacing as DuplicateCode to
// a caller who may retry.
//
// The same computation serves the commit path and the side-effect-free preview.
type ShipmentCodeService struct{}

// NewShipmentCodeService creates the code service.
func NewShipmentCodeService() *ShipmentCodeService {
	return &ShipmentCodeService{}
}

// BuildCode renders the code for a known sequence number.
// Organisation codes are upper-cased; the sequence is padded to three digits
// and grows naturally past 999.
func (s *ShipmentCodeService) BuildCode(fromOrgCode, toOrgCode string, sequence int64) (string, error) {
	fromOrgCode = strings.ToUpper(strings.TrimSpace(fromOrgCode))
	toOrgCode = strings.ToUpper(strings.TrimSpace(toOrgCode))

	if fromOrgCode == "" {
		return "", errs.NewValueIsRequiredError("fromOrgCode")
	}
	if toOrgCode == "" {
		return "", errs.NewValueIsRequiredError("toOrgCode")
	}
	if sequence < 1 {
		return "", errs.NewValueIsInvalidErrorWithCause(
			"sequence",
			fmt.Errorf("%d is not greater than 0", sequence),
		)
	}

	return fmt.Sprintf("%s-%s-%03d", fromOrgCode, toOrgCode, sequence), nil
}

// NextCode derives the code following existingCount shipments between the
// pair. Pure; callers pass the count they read, and preview uses the exact
// same computation without committing anything.
func (s *ShipmentCodeService) NextCode(fromOrgCode, toOrgCode string, existingCount int64) (string, error) {
	if existingCount < 0 {
		return "", errs.NewValueIsInvalidErrorWithCause(
			"existingCount",
			fmt.Errorf("%d is negative", existingCount),
		)
	}
	return s.BuildCode(fromOrgCode, toOrgCode, existingCount+1)
}
