package cond

import (
	"github.com/gogo/protobuf/proto"
	"github.com/tillit-one/tillit"
	"github.com/tillit-one/tillit/errors"
)

const (
	// FingerprintSize is the exact byte length of an event fingerprint.
	FingerprintSize = 32

	// MaxSigners bounds the signer set of a threshold condition.
	MaxSigners = 10
)

// DeadlineParams are the creation parameters of a deadline condition.
type DeadlineParams struct {
	ReleaseHeight int64 `protobuf:"varint,1,opt,name=release_height,json=releaseHeight,proto3" json:"release_height,omitempty"`
}

var _ proto.Message = (*DeadlineParams)(nil)

func (m *DeadlineParams) Reset()         { *m = DeadlineParams{} }
func (m *DeadlineParams) String() string { return proto.CompactTextString(m) }
func (*DeadlineParams) ProtoMessage()    {}

// Validate requires a height the chain can actually reach.
func (m *DeadlineParams) Validate() error {
	if m.ReleaseHeight <= 0 {
		return errors.Wrap(errors.ErrInput, "release height must be greater than zero")
	}
	return nil
}

// DeadlineCondition is the stored state of one deadline condition.
type DeadlineCondition struct {
	ReleaseHeight int64 `protobuf:"varint,1,opt,name=release_height,json=releaseHeight,proto3" json:"release_height,omitempty"`
}

var _ proto.Message = (*DeadlineCondition)(nil)

func (m *DeadlineCondition) Reset()         { *m = DeadlineCondition{} }
func (m *DeadlineCondition) String() string { return proto.CompactTextString(m) }
func (*DeadlineCondition) ProtoMessage()    {}

func (m *DeadlineCondition) Validate() error {
	if m.ReleaseHeight <= 0 {
		return errors.Wrap(errors.ErrModel, "release height must be greater than zero")
	}
	return nil
}

// EventParams are the creation parameters of an attested-event condition.
type EventParams struct {
	Attestor    tillit.Address `protobuf:"bytes,1,opt,name=attestor,proto3,casttype=github.com/tillit-one/tillit.Address" json:"attestor,omitempty"`
	Fingerprint []byte         `protobuf:"bytes,2,opt,name=fingerprint,proto3" json:"fingerprint,omitempty"`
}

var _ proto.Message = (*EventParams)(nil)

func (m *EventParams) Reset()         { *m = EventParams{} }
func (m *EventParams) String() string { return proto.CompactTextString(m) }
func (*EventParams) ProtoMessage()    {}

func (m *EventParams) Validate() error {
	if err := m.Attestor.Validate(); err != nil {
		return errors.Wrap(err, "attestor")
	}
	if len(m.Fingerprint) != FingerprintSize {
		return errors.Wrapf(errors.ErrInput,
			"fingerprint must be exactly %d bytes", FingerprintSize)
	}
	return nil
}

// EventCondition is the stored state of one attested-event condition.
type EventCondition struct {
	Attestor    tillit.Address `protobuf:"bytes,1,opt,name=attestor,proto3,casttype=github.com/tillit-one/tillit.Address" json:"attestor,omitempty"`
	Fingerprint []byte         `protobuf:"bytes,2,opt,name=fingerprint,proto3" json:"fingerprint,omitempty"`
	Attested    bool           `protobuf:"varint,3,opt,name=attested,proto3" json:"attested,omitempty"`
}

var _ proto.Message = (*EventCondition)(nil)

func (m *EventCondition) Reset()         { *m = EventCondition{} }
func (m *EventCondition) String() string { return proto.CompactTextString(m) }
func (*EventCondition) ProtoMessage()    {}

func (m *EventCondition) Validate() error {
	if err := m.Attestor.Validate(); err != nil {
		return errors.Wrap(err, "attestor")
	}
	if len(m.Fingerprint) != FingerprintSize {
		return errors.Wrapf(errors.ErrModel,
			"fingerprint must be exactly %d bytes", FingerprintSize)
	}
	return nil
}

// ThresholdParams are the creation parameters of a threshold condition.
type ThresholdParams struct {
	Signers  []tillit.Address `protobuf:"bytes,1,rep,name=signers,proto3,casttype=github.com/tillit-one/tillit.Address" json:"signers,omitempty"`
	Required int32            `protobuf:"varint,2,opt,name=required,proto3" json:"required,omitempty"`
}

var _ proto.Message = (*ThresholdParams)(nil)

func (m *ThresholdParams) Reset()         { *m = ThresholdParams{} }
func (m *ThresholdParams) String() string { return proto.CompactTextString(m) }
func (*ThresholdParams) ProtoMessage()    {}

func (m *ThresholdParams) Validate() error {
	return validateSignerSet(errors.ErrInput, m.Signers, m.Required)
}

// ThresholdCondition is the stored state of one threshold condition.
type ThresholdCondition struct {
	Signers   []tillit.Address `protobuf:"bytes,1,rep,name=signers,proto3,casttype=github.com/tillit-one/tillit.Address" json:"signers,omitempty"`
	Required  int32            `protobuf:"varint,2,opt,name=required,proto3" json:"required,omitempty"`
	Approvals []tillit.Address `protobuf:"bytes,3,rep,name=approvals,proto3,casttype=github.com/tillit-one/tillit.Address" json:"approvals,omitempty"`
}

var _ proto.Message = (*ThresholdCondition)(nil)

func (m *ThresholdCondition) Reset()         { *m = ThresholdCondition{} }
func (m *ThresholdCondition) String() string { return proto.CompactTextString(m) }
func (*ThresholdCondition) ProtoMessage()    {}

func (m *ThresholdCondition) Validate() error {
	if err := validateSignerSet(errors.ErrModel, m.Signers, m.Required); err != nil {
		return err
	}
	if len(m.Approvals) > len(m.Signers) {
		return errors.Wrap(errors.ErrModel, "more approvals than signers")
	}
	for _, a := range m.Approvals {
		if !containsAddress(m.Signers, a) {
			return errors.Wrapf(errors.ErrModel, "approval %s outside the signer set", a)
		}
	}
	for i, a := range m.Approvals {
		if containsAddress(m.Approvals[:i], a) {
			return errors.Wrapf(errors.ErrModel, "duplicated approval %s", a)
		}
	}
	return nil
}

// validateSignerSet is shared between params and model validation.
func validateSignerSet(baseErr *errors.Error, signers []tillit.Address, required int32) error {
	switch n := len(signers); {
	case n == 0:
		return errors.Wrap(baseErr, "no signers")
	case n > MaxSigners:
		return errors.Wrapf(baseErr, "at most %d signers allowed", MaxSigners)
	}
	for i, s := range signers {
		if err := s.Validate(); err != nil {
			return errors.Wrapf(err, "signer %s", s)
		}
		if containsAddress(signers[:i], s) {
			return errors.Wrapf(baseErr, "duplicated signer %s", s)
		}
	}
	if required < 1 || int(required) > len(signers) {
		return errors.Wrapf(baseErr,
			"required count %d outside of 1..%d", required, len(signers))
	}
	return nil
}

func containsAddress(addrs []tillit.Address, addr tillit.Address) bool {
	for _, a := range addrs {
		if a.Equals(addr) {
			return true
		}
	}
	return false
}

// AttestMsg confirms an attested-event condition. Only the condition's
// registered attestor may send it.
type AttestMsg struct {
	ConditionID []byte `protobuf:"bytes,1,opt,name=condition_id,json=conditionId,proto3" json:"condition_id,omitempty"`
	// Proof is the attested event, it must hash to the condition's
	// fingerprint.
	Proof []byte `protobuf:"bytes,2,opt,name=proof,proto3" json:"proof,omitempty"`
}

var _ tillit.Msg = (*AttestMsg)(nil)

func (m *AttestMsg) Reset()         { *m = AttestMsg{} }
func (m *AttestMsg) String() string { return proto.CompactTextString(m) }
func (*AttestMsg) ProtoMessage()    {}

// ApproveMsg records one signer's approval on a threshold condition.
type ApproveMsg struct {
	ConditionID []byte `protobuf:"bytes,1,opt,name=condition_id,json=conditionId,proto3" json:"condition_id,omitempty"`
}

var _ tillit.Msg = (*ApproveMsg)(nil)

func (m *ApproveMsg) Reset()         { *m = ApproveMsg{} }
func (m *ApproveMsg) String() string { return proto.CompactTextString(m) }
func (*ApproveMsg) ProtoMessage()    {}
