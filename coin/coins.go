package coin

import (
	"sort"

	"github.com/tillit-one/tillit/errors"
)

// Coins is a set of coins, one per currency, sorted by ticker. A wallet can
// hold balances in multiple currencies at once.
type Coins []*Coin

// CombineCoins creates a Coins set out of the given coins, merging amounts
// of the same currency and dropping zero values.
func CombineCoins(cs ...Coin) (Coins, error) {
	var res Coins
	var err error
	for _, c := range cs {
		res, err = res.Add(c)
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

// Clone returns a deep copy of the set.
func (cs Coins) Clone() Coins {
	if cs == nil {
		return nil
	}
	res := make(Coins, len(cs))
	for i, c := range cs {
		res[i] = c.Clone()
	}
	return res
}

// Add modifies nothing and returns a new set with the given coin merged in.
// Zero results are removed from the set.
func (cs Coins) Add(c Coin) (Coins, error) {
	if c.Ticker == "" {
		return nil, errors.Wrap(errors.ErrCurrency, "missing ticker")
	}
	res := cs.Clone()
	for i, have := range res {
		if have.Ticker != c.Ticker {
			continue
		}
		sum, err := have.Add(c)
		if err != nil {
			return nil, err
		}
		if sum.IsZero() {
			return append(res[:i], res[i+1:]...), nil
		}
		res[i] = &sum
		return res, nil
	}
	if c.IsZero() {
		return res, nil
	}
	res = append(res, c.Clone())
	sort.Slice(res, func(i, j int) bool { return res[i].Ticker < res[j].Ticker })
	return res, nil
}

// Subtract returns a new set with the given coin removed.
func (cs Coins) Subtract(c Coin) (Coins, error) {
	return cs.Add(c.Negative())
}

// Amount returns the amount held in the given currency, zero if absent.
func (cs Coins) Amount(ticker string) Coin {
	for _, c := range cs {
		if c.Ticker == ticker {
			return *c
		}
	}
	return Coin{Ticker: ticker}
}

// Contains returns true if the set holds at least the given coin.
func (cs Coins) Contains(c Coin) bool {
	return cs.Amount(c.Ticker).Whole >= c.Whole
}

// IsPositive returns true if every coin in the set is positive.
func (cs Coins) IsPositive() bool {
	if len(cs) == 0 {
		return false
	}
	for _, c := range cs {
		if !c.IsPositive() {
			return false
		}
	}
	return true
}

// IsNonNegative returns true if no coin in the set is negative.
func (cs Coins) IsNonNegative() bool {
	for _, c := range cs {
		if !c.IsNonNegative() {
			return false
		}
	}
	return true
}

// Validate requires sorted, unique tickers and valid, non-zero coins.
func (cs Coins) Validate() error {
	last := ""
	for _, c := range cs {
		if c == nil {
			return errors.Wrap(errors.ErrEmpty, "nil coin")
		}
		if err := c.Validate(); err != nil {
			return err
		}
		if c.IsZero() {
			return errors.Wrap(errors.ErrAmount, "zero coin in set")
		}
		if c.Ticker <= last {
			return errors.Wrap(errors.ErrCurrency, "tickers not sorted or duplicated")
		}
		last = c.Ticker
	}
	return nil
}
