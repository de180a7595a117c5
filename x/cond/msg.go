package cond

import (
	"github.com/tillit-one/tillit/errors"
)

const (
	pathAttestMsg  = "cond/attest"
	pathApproveMsg = "cond/approve"

	// handleSize is the length of every condition handle. Handles are
	// sequence values encoded as 8 bytes.
	handleSize = 8

	// MaxProofSize bounds the attestation payload.
	MaxProofSize = 4096
)

// Path fulfills tillit.Msg interface to allow routing.
func (AttestMsg) Path() string {
	return pathAttestMsg
}

// Validate makes sure that this is sensible.
func (m *AttestMsg) Validate() error {
	if len(m.ConditionID) != handleSize {
		return errors.Wrapf(errors.ErrInput, "condition id must be %d bytes", handleSize)
	}
	if len(m.Proof) == 0 {
		return errors.Wrap(errors.ErrEmpty, "proof")
	}
	if len(m.Proof) > MaxProofSize {
		return errors.Wrapf(errors.ErrInput, "proof above %d bytes", MaxProofSize)
	}
	return nil
}

// Path fulfills tillit.Msg interface to allow routing.
func (ApproveMsg) Path() string {
	return pathApproveMsg
}

// Validate makes sure that this is sensible.
func (m *ApproveMsg) Validate() error {
	if len(m.ConditionID) != handleSize {
		return errors.Wrapf(errors.ErrInput, "condition id must be %d bytes", handleSize)
	}
	return nil
}
