package currency

import (
	"github.com/gogo/protobuf/proto"
	"github.com/tillit-one/tillit/coin"
	"github.com/tillit-one/tillit/errors"
)

// MaxTokens bounds the allow-list size.
const MaxTokens = 10

// TokenList is the single record holding all allow-listed tickers. The
// whole list is small enough to be stored and rewritten as one entity.
type TokenList struct {
	Tickers []string `protobuf:"bytes,1,rep,name=tickers,proto3" json:"tickers,omitempty"`
}

var _ proto.Message = (*TokenList)(nil)

func (m *TokenList) Reset()         { *m = TokenList{} }
func (m *TokenList) String() string { return proto.CompactTextString(m) }
func (*TokenList) ProtoMessage()    {}

func (m *TokenList) Validate() error {
	if len(m.Tickers) > MaxTokens {
		return errors.Wrapf(errors.ErrModel, "above %d tokens", MaxTokens)
	}
	for i, t := range m.Tickers {
		if !coin.IsCC(t) {
			return errors.Wrapf(errors.ErrCurrency, "invalid ticker: %s", t)
		}
		for _, prev := range m.Tickers[:i] {
			if prev == t {
				return errors.Wrapf(errors.ErrModel, "duplicated ticker: %s", t)
			}
		}
	}
	return nil
}

// Has returns true if the ticker is allow-listed.
func (m *TokenList) Has(ticker string) bool {
	for _, t := range m.Tickers {
		if t == ticker {
			return true
		}
	}
	return false
}

// RegisterTokenMsg adds one ticker to the allow-list. Only the configured
// authority can issue it.
type RegisterTokenMsg struct {
	Ticker string `protobuf:"bytes,1,opt,name=ticker,proto3" json:"ticker,omitempty"`
}

var _ proto.Message = (*RegisterTokenMsg)(nil)

func (m *RegisterTokenMsg) Reset()         { *m = RegisterTokenMsg{} }
func (m *RegisterTokenMsg) String() string { return proto.CompactTextString(m) }
func (*RegisterTokenMsg) ProtoMessage()    {}
