package coin

import (
	"regexp"

	"github.com/gogo/protobuf/proto"
	"github.com/tillit-one/tillit/errors"
)

// IsCC is the RegExp to ensure valid currency codes.
var IsCC = regexp.MustCompile(`^[A-Z]{3,20}$`).MatchString

const (
	// MaxInt is the largest whole value we accept.
	MaxInt int64 = 999999999999999 // 10^15-1
	// MinInt is the lowest whole value we accept.
	MinInt = -MaxInt
)

// Coin is an amount of a given currency. Fund custody and fees only ever
// deal in whole units.
type Coin struct {
	// Whole coins, -10^15 < whole < 10^15
	Whole int64 `protobuf:"varint,1,opt,name=whole,proto3" json:"whole,omitempty"`
	// Ticker is 3-20 upper-case letters
	Ticker string `protobuf:"bytes,2,opt,name=ticker,proto3" json:"ticker,omitempty"`
}

var _ proto.Message = (*Coin)(nil)

func (m *Coin) Reset()         { *m = Coin{} }
func (m *Coin) String() string { return proto.CompactTextString(m) }
func (*Coin) ProtoMessage()    {}

// NewCoin creates a new coin object.
func NewCoin(whole int64, ticker string) Coin {
	return Coin{
		Whole:  whole,
		Ticker: ticker,
	}
}

// NewCoinp returns a pointer to a new coin.
func NewCoinp(whole int64, ticker string) *Coin {
	c := NewCoin(whole, ticker)
	return &c
}

// Add combines two coins of the same currency.
func (c Coin) Add(o Coin) (Coin, error) {
	if !c.SameType(o) {
		return Coin{}, errors.Wrapf(errors.ErrCurrency, "adding %s to %s", o.Ticker, c.Ticker)
	}
	whole, err := add64(c.Whole, o.Whole)
	if err != nil {
		return Coin{}, err
	}
	res := Coin{Ticker: c.Ticker, Whole: whole}
	return res, res.Validate()
}

// Subtract removes the other coin's amount from this one.
func (c Coin) Subtract(o Coin) (Coin, error) {
	return c.Add(o.Negative())
}

// Negative returns the opposite coin.
//   c.Add(c.Negative()) == 0
func (c Coin) Negative() Coin {
	return Coin{
		Ticker: c.Ticker,
		Whole:  -1 * c.Whole,
	}
}

// Compare will check values of two coins of the same currency. It returns
// -1, 0 or 1 when c is smaller, equal or greater than o. It panics on
// different currencies.
func (c Coin) Compare(o Coin) int {
	if !c.SameType(o) {
		panic("comparing different currencies")
	}
	switch {
	case c.Whole < o.Whole:
		return -1
	case c.Whole > o.Whole:
		return 1
	}
	return 0
}

// Equals returns true if both coins are the same.
func (c Coin) Equals(o Coin) bool {
	return c.Ticker == o.Ticker && c.Whole == o.Whole
}

// IsZero returns true on a zero amount.
func (c Coin) IsZero() bool {
	return c.Whole == 0
}

// IsPositive returns true if the amount is greater than zero.
func (c Coin) IsPositive() bool {
	return c.Whole > 0
}

// IsNonNegative returns true if the amount is zero or greater.
func (c Coin) IsNonNegative() bool {
	return c.Whole >= 0
}

// SameType returns true if both coins use the same ticker.
func (c Coin) SameType(o Coin) bool {
	return c.Ticker == o.Ticker
}

// Clone provides an independent copy of a coin pointer.
func (c *Coin) Clone() *Coin {
	if c == nil {
		return nil
	}
	return &Coin{
		Ticker: c.Ticker,
		Whole:  c.Whole,
	}
}

// Validate ensures the coin is in the valid range and the currency code is
// well formed.
func (c Coin) Validate() error {
	if !IsCC(c.Ticker) {
		return errors.Wrapf(errors.ErrCurrency, "invalid currency: %s", c.Ticker)
	}
	if c.Whole < MinInt || c.Whole > MaxInt {
		return errors.Wrap(errors.ErrOverflow, "whole")
	}
	return nil
}

func add64(a, b int64) (int64, error) {
	c := a + b
	if (c > a) == (b > 0) {
		return c, nil
	}
	return 0, errors.Wrapf(errors.ErrOverflow, "adding %d to %d", b, a)
}
