package escrow

import (
	"github.com/gogo/protobuf/proto"
	"github.com/tillit-one/tillit"
	"github.com/tillit-one/tillit/coin"
	"github.com/tillit-one/tillit/errors"
)

// Status describes where in its lifecycle an escrow is. Released and
// Returned are terminal, a terminal escrow never changes again.
type Status int32

const (
	StatusInvalid  Status = 0
	StatusActive   Status = 1
	StatusReleased Status = 2
	StatusReturned Status = 3
)

var statusName = map[Status]string{
	StatusInvalid:  "invalid",
	StatusActive:   "active",
	StatusReleased: "released",
	StatusReturned: "returned",
}

func (s Status) String() string {
	if name, ok := statusName[s]; ok {
		return name
	}
	return "unknown"
}

// Escrow is the authoritative record of one conditional custody.
type Escrow struct {
	// Source is the account that funded the escrow and may take the
	// funds back until resolution.
	Source tillit.Address `protobuf:"bytes,1,opt,name=source,proto3,casttype=github.com/tillit-one/tillit.Address" json:"source,omitempty"`
	// Destination receives the funds once the condition is met.
	Destination tillit.Address `protobuf:"bytes,2,opt,name=destination,proto3,casttype=github.com/tillit-one/tillit.Address" json:"destination,omitempty"`
	// Amount is locked in the escrow's custody account while active.
	Amount *coin.Coin `protobuf:"bytes,3,opt,name=amount,proto3" json:"amount,omitempty"`
	// VerifierRef is the reference address of the condition policy.
	VerifierRef tillit.Address `protobuf:"bytes,4,opt,name=verifier_ref,json=verifierRef,proto3,casttype=github.com/tillit-one/tillit.Address" json:"verifier_ref,omitempty"`
	// ConditionID is the handle of this escrow's own condition instance.
	ConditionID []byte `protobuf:"bytes,5,opt,name=condition_id,json=conditionId,proto3" json:"condition_id,omitempty"`
	// CreatedAt is the block height of creation.
	CreatedAt int64  `protobuf:"varint,6,opt,name=created_at,json=createdAt,proto3" json:"created_at,omitempty"`
	Status    Status `protobuf:"varint,7,opt,name=status,proto3,casttype=Status" json:"status,omitempty"`
	// Memo is free text for the participants, not interpreted.
	Memo string `protobuf:"bytes,8,opt,name=memo,proto3" json:"memo,omitempty"`
}

var _ proto.Message = (*Escrow)(nil)

func (m *Escrow) Reset()         { *m = Escrow{} }
func (m *Escrow) String() string { return proto.CompactTextString(m) }
func (*Escrow) ProtoMessage()    {}

func (m *Escrow) Validate() error {
	if err := m.Source.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := m.Destination.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if m.Amount == nil || !m.Amount.IsPositive() {
		return errors.Wrap(errors.ErrAmount, "escrow amount must be positive")
	}
	if err := m.Amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if err := m.VerifierRef.Validate(); err != nil {
		return errors.Wrap(err, "verifier ref")
	}
	if len(m.ConditionID) == 0 {
		return errors.Wrap(errors.ErrEmpty, "condition id")
	}
	// CreatedAt is the block height the escrow was opened at; the first
	// block has height zero, so any non-negative value is legal.
	if m.CreatedAt < 0 {
		return errors.Wrap(errors.ErrModel, "created at cannot be negative")
	}
	switch m.Status {
	case StatusActive, StatusReleased, StatusReturned:
	default:
		return errors.Wrapf(errors.ErrState, "status %d", m.Status)
	}
	if len(m.Memo) > maxMemoSize {
		return errors.Wrapf(errors.ErrInput, "memo above %d characters", maxMemoSize)
	}
	return nil
}

// Config is the escrow extension configuration singleton. The authority is
// empty until configured through a SetAuthorityMsg; it can be set exactly
// once.
type Config struct {
	Authority tillit.Address `protobuf:"bytes,1,opt,name=authority,proto3,casttype=github.com/tillit-one/tillit.Address" json:"authority,omitempty"`
	// CreationFee is debited from the creator to the authority on every
	// new escrow. Nil or zero means free creation.
	CreationFee *coin.Coin `protobuf:"bytes,2,opt,name=creation_fee,json=creationFee,proto3" json:"creation_fee,omitempty"`
	// MaxEscrows caps the total number of escrows ever created. Zero
	// means no cap.
	MaxEscrows int64 `protobuf:"varint,3,opt,name=max_escrows,json=maxEscrows,proto3" json:"max_escrows,omitempty"`
}

var _ proto.Message = (*Config)(nil)

func (m *Config) Reset()         { *m = Config{} }
func (m *Config) String() string { return proto.CompactTextString(m) }
func (*Config) ProtoMessage()    {}

func (m *Config) Validate() error {
	if len(m.Authority) != 0 {
		if err := m.Authority.Validate(); err != nil {
			return errors.Wrap(err, "authority")
		}
	}
	if m.CreationFee != nil {
		if err := m.CreationFee.Validate(); err != nil {
			return errors.Wrap(err, "creation fee")
		}
		if !m.CreationFee.IsNonNegative() {
			return errors.Wrap(errors.ErrAmount, "negative creation fee")
		}
	}
	if m.MaxEscrows < 0 {
		return errors.Wrap(errors.ErrModel, "negative escrow cap")
	}
	return nil
}

// CreateMsg opens a new escrow. The funds and the creation fee are taken
// from the main signer.
type CreateMsg struct {
	Destination tillit.Address `protobuf:"bytes,1,opt,name=destination,proto3,casttype=github.com/tillit-one/tillit.Address" json:"destination,omitempty"`
	Amount      *coin.Coin     `protobuf:"bytes,2,opt,name=amount,proto3" json:"amount,omitempty"`
	VerifierRef tillit.Address `protobuf:"bytes,3,opt,name=verifier_ref,json=verifierRef,proto3,casttype=github.com/tillit-one/tillit.Address" json:"verifier_ref,omitempty"`
	// Params is the policy specific condition encoding, passed through
	// opaque to the verifier.
	Params []byte `protobuf:"bytes,4,opt,name=params,proto3" json:"params,omitempty"`
	Memo   string `protobuf:"bytes,5,opt,name=memo,proto3" json:"memo,omitempty"`
}

var _ tillit.Msg = (*CreateMsg)(nil)

func (m *CreateMsg) Reset()         { *m = CreateMsg{} }
func (m *CreateMsg) String() string { return proto.CompactTextString(m) }
func (*CreateMsg) ProtoMessage()    {}

// ReleaseMsg pays an active escrow out to the destination, provided its
// condition is met. Anyone can send it.
type ReleaseMsg struct {
	EscrowID []byte `protobuf:"bytes,1,opt,name=escrow_id,json=escrowId,proto3" json:"escrow_id,omitempty"`
}

var _ tillit.Msg = (*ReleaseMsg)(nil)

func (m *ReleaseMsg) Reset()         { *m = ReleaseMsg{} }
func (m *ReleaseMsg) String() string { return proto.CompactTextString(m) }
func (*ReleaseMsg) ProtoMessage()    {}

// ReturnMsg gives an active escrow back to the source. Only the source can
// send it and no condition is consulted.
type ReturnMsg struct {
	EscrowID []byte `protobuf:"bytes,1,opt,name=escrow_id,json=escrowId,proto3" json:"escrow_id,omitempty"`
}

var _ tillit.Msg = (*ReturnMsg)(nil)

func (m *ReturnMsg) Reset()         { *m = ReturnMsg{} }
func (m *ReturnMsg) String() string { return proto.CompactTextString(m) }
func (*ReturnMsg) ProtoMessage()    {}

// SetAuthorityMsg performs the one-time authority registration.
type SetAuthorityMsg struct {
	Authority tillit.Address `protobuf:"bytes,1,opt,name=authority,proto3,casttype=github.com/tillit-one/tillit.Address" json:"authority,omitempty"`
}

var _ tillit.Msg = (*SetAuthorityMsg)(nil)

func (m *SetAuthorityMsg) Reset()         { *m = SetAuthorityMsg{} }
func (m *SetAuthorityMsg) String() string { return proto.CompactTextString(m) }
func (*SetAuthorityMsg) ProtoMessage()    {}

// UpdateFeeMsg changes the creation fee. Only the authority can send it.
type UpdateFeeMsg struct {
	Fee *coin.Coin `protobuf:"bytes,1,opt,name=fee,proto3" json:"fee,omitempty"`
}

var _ tillit.Msg = (*UpdateFeeMsg)(nil)

func (m *UpdateFeeMsg) Reset()         { *m = UpdateFeeMsg{} }
func (m *UpdateFeeMsg) String() string { return proto.CompactTextString(m) }
func (*UpdateFeeMsg) ProtoMessage()    {}
