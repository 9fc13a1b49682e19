package inventory

import (
	"fmt"

	"timberops/internal/pkg/errs"
)

// Status represents the lifecycle state of a package within inventory.
//
// Available packages can be selected into shipments. Produced packages came
// out of a production run. Consumed packages were used as production inputs;
// they are excluded from every "available for shipment" query and survive
// shipment deletion.
type Status int

const (
	// StatusUnknown catches uninitialized Status values.
	StatusUnknown Status = iota

	// StatusAvailable marks a package that can be shipped.
	StatusAvailable

	// StatusProduced marks a package created by a production run.
	StatusProduced

	// StatusConsumed marks a package used up as a production input.
	StatusConsumed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "Unknown",
		StatusAvailable: "available",
		StatusProduced:  "produced",
		StatusConsumed:  "consumed",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusAvailable: "available",
		StatusProduced:  "produced",
		StatusConsumed:  "consumed",
	}
}

// Validate checks the Status is one of the defined lifecycle states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid package status", s))
	}
	return nil
}

// StatusFromString parses the lower-case status name used in persistence.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// String returns the lower-case name used in persistence and the API.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}
