package currency

import (
	"github.com/tillit-one/tillit"
	"github.com/tillit-one/tillit/errors"
)

// Initializer fulfils the Initializer interface to load the initial currency
// allow-list from genesis data.
type Initializer struct{}

var _ tillit.Initializer = (*Initializer)(nil)

// FromGenesis will parse the initial tickers from genesis and save them to
// the database. A genesis without a currencies list is legal; tickers are
// then registered later through RegisterTokenMsg.
func (Initializer) FromGenesis(opts tillit.Options, db tillit.KVStore) error {
	var tickers []string
	if err := opts.ReadOptions("currencies", &tickers); err != nil {
		return errors.Wrap(err, "read currencies")
	}

	bucket := NewTokenBucket()
	for _, t := range tickers {
		if err := bucket.Register(db, t); err != nil {
			return errors.Wrapf(err, "register %q", t)
		}
	}
	return nil
}
