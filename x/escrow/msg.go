package escrow

import (
	"github.com/tillit-one/tillit/errors"
)

const (
	pathCreateMsg       = "escrow/create"
	pathReleaseMsg      = "escrow/release"
	pathReturnMsg       = "escrow/return"
	pathSetAuthorityMsg = "escrow/set_authority"
	pathUpdateFeeMsg    = "escrow/update_fee"

	// MaxParamsSize bounds the opaque condition parameters.
	MaxParamsSize = 1024

	// escrowIDSize is the length of every escrow id, a sequence value
	// encoded as 8 bytes.
	escrowIDSize = 8

	maxMemoSize = 128
)

// Path fulfills tillit.Msg interface to allow routing.
func (CreateMsg) Path() string {
	return pathCreateMsg
}

// Validate makes sure that this is sensible. The check order is part of the
// contract: destination, then amount, then verifier reference, then params.
func (m *CreateMsg) Validate() error {
	if err := m.Destination.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if m.Amount == nil {
		return errors.Wrap(errors.ErrAmount, "amount missing")
	}
	if !m.Amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive amount: %d", m.Amount.Whole)
	}
	if err := m.Amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if err := m.VerifierRef.Validate(); err != nil {
		return errors.Wrap(err, "verifier ref")
	}
	if len(m.Params) == 0 {
		return errors.Wrap(errors.ErrEmpty, "params")
	}
	if len(m.Params) > MaxParamsSize {
		return errors.Wrapf(errors.ErrInput, "params above %d bytes", MaxParamsSize)
	}
	if len(m.Memo) > maxMemoSize {
		return errors.Wrapf(errors.ErrInput, "memo above %d characters", maxMemoSize)
	}
	return nil
}

// Path fulfills tillit.Msg interface to allow routing.
func (ReleaseMsg) Path() string {
	return pathReleaseMsg
}

// Validate makes sure that this is sensible.
func (m *ReleaseMsg) Validate() error {
	return validateEscrowID(m.EscrowID)
}

// Path fulfills tillit.Msg interface to allow routing.
func (ReturnMsg) Path() string {
	return pathReturnMsg
}

// Validate makes sure that this is sensible.
func (m *ReturnMsg) Validate() error {
	return validateEscrowID(m.EscrowID)
}

// Path fulfills tillit.Msg interface to allow routing.
func (SetAuthorityMsg) Path() string {
	return pathSetAuthorityMsg
}

// Validate makes sure that this is sensible.
func (m *SetAuthorityMsg) Validate() error {
	if err := m.Authority.Validate(); err != nil {
		return errors.Wrap(err, "authority")
	}
	return nil
}

// Path fulfills tillit.Msg interface to allow routing.
func (UpdateFeeMsg) Path() string {
	return pathUpdateFeeMsg
}

// Validate makes sure that this is sensible. A zero fee is legal and means
// free escrow creation.
func (m *UpdateFeeMsg) Validate() error {
	if m.Fee == nil {
		return errors.Wrap(errors.ErrEmpty, "fee")
	}
	if !m.Fee.IsNonNegative() {
		return errors.Wrapf(errors.ErrAmount, "negative fee: %d", m.Fee.Whole)
	}
	if err := m.Fee.Validate(); err != nil {
		return errors.Wrap(err, "fee")
	}
	return nil
}

func validateEscrowID(id []byte) error {
	if len(id) != escrowIDSize {
		return errors.Wrapf(errors.ErrInput, "escrow id must be %d bytes", escrowIDSize)
	}
	return nil
}
