package escrow

import (
	"github.com/tillit-one/tillit/errors"
)

// Error codes 1200-1219 are reserved for the escrow extension.
var (
	// ErrConditionNotMet is returned when a release is attempted while
	// the verifier predicate is still false. The caller may retry later.
	ErrConditionNotMet = errors.Register(1200, "condition not met")

	// ErrAuthorityNotSet is returned when an operation requires the
	// one-time authority configuration that was never performed.
	ErrAuthorityNotSet = errors.Register(1201, "authority not set")
)
