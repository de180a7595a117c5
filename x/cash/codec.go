package cash

import (
	"github.com/gogo/protobuf/proto"
	"github.com/tillit-one/tillit"
	"github.com/tillit-one/tillit/coin"
	"github.com/tillit-one/tillit/errors"
)

// Set keeps the balances of one account. It is stored in the wallet bucket
// under the account address.
type Set struct {
	Coins []*coin.Coin `protobuf:"bytes,1,rep,name=coins,proto3" json:"coins,omitempty"`
}

var _ proto.Message = (*Set)(nil)

func (m *Set) Reset()         { *m = Set{} }
func (m *Set) String() string { return proto.CompactTextString(m) }
func (*Set) ProtoMessage()    {}

// Validate requires a well formed coin set. Balances may never go negative.
func (m *Set) Validate() error {
	cs := coin.Coins(m.Coins)
	if err := cs.Validate(); err != nil {
		return err
	}
	if !cs.IsNonNegative() {
		return errors.Wrap(errors.ErrAmount, "negative balance")
	}
	return nil
}

// SendMsg moves funds between two accounts. It is the raw value-transfer
// primitive every other extension builds on.
type SendMsg struct {
	Source      tillit.Address `protobuf:"bytes,1,opt,name=source,proto3,casttype=github.com/tillit-one/tillit.Address" json:"source,omitempty"`
	Destination tillit.Address `protobuf:"bytes,2,opt,name=destination,proto3,casttype=github.com/tillit-one/tillit.Address" json:"destination,omitempty"`
	Amount      *coin.Coin     `protobuf:"bytes,3,opt,name=amount,proto3" json:"amount,omitempty"`
	Memo        string         `protobuf:"bytes,4,opt,name=memo,proto3" json:"memo,omitempty"`
}

var _ tillit.Msg = (*SendMsg)(nil)

func (m *SendMsg) Reset()         { *m = SendMsg{} }
func (m *SendMsg) String() string { return proto.CompactTextString(m) }
func (*SendMsg) ProtoMessage()    {}
