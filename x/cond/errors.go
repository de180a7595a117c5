package cond

import (
	"github.com/tillit-one/tillit/errors"
)

// Error codes 1100-1119 are reserved for the cond extension.
var (
	// ErrNotAttestor is returned when an attest message is signed by
	// anyone but the condition's registered attestor.
	ErrNotAttestor = errors.Register(1100, "not the attestor")

	// ErrAlreadyAttested is returned when the attestor confirms the same
	// condition a second time. The observed state does not change.
	ErrAlreadyAttested = errors.Register(1101, "already attested")

	// ErrNotSigner is returned when an approve message is signed by an
	// address outside the condition's signer set.
	ErrNotSigner = errors.Register(1102, "not a signer")

	// ErrAlreadySigned is returned when a signer approves the same
	// condition a second time.
	ErrAlreadySigned = errors.Register(1103, "already signed")

	// ErrUnknownPolicy is returned when a condition references a policy
	// that is not registered.
	ErrUnknownPolicy = errors.Register(1104, "unknown condition policy")
)
