package cash

import (
	"github.com/tillit-one/tillit"
	"github.com/tillit-one/tillit/coin"
	"github.com/tillit-one/tillit/errors"
)

// Initializer fulfils the Initializer interface to load initial balances
// from genesis data.
type Initializer struct{}

var _ tillit.Initializer = (*Initializer)(nil)

// FromGenesis will parse initial account balances from genesis and save them
// to the database.
func (Initializer) FromGenesis(opts tillit.Options, db tillit.KVStore) error {
	accounts := []struct {
		Address tillit.Address `json:"address"`
		Coins   []coin.Coin    `json:"coins"`
	}{}
	if err := opts.ReadOptions("cash", &accounts); err != nil {
		return errors.Wrap(err, "read cash")
	}

	ctrl := NewController()
	for i, acc := range accounts {
		if err := acc.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account #%d", i)
		}
		for _, c := range acc.Coins {
			if err := ctrl.IssueCoins(db, acc.Address, c); err != nil {
				return errors.Wrapf(err, "issue %s to account #%d", c.Ticker, i)
			}
		}
	}
	return nil
}
