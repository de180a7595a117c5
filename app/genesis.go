package app

import (
	"encoding/json"

	"github.com/tillit-one/tillit"
	"github.com/tillit-one/tillit/errors"
)

// ChainInitializers lets you initialize many extensions with one function.
func ChainInitializers(inits ...tillit.Initializer) tillit.Initializer {
	return chainInitializer{inits: inits}
}

type chainInitializer struct {
	inits []tillit.Initializer
}

// FromGenesis will pass opts to all the initializers in the list. If any
// returns an error, it aborts.
func (c chainInitializer) FromGenesis(opts tillit.Options, db tillit.KVStore) error {
	for _, init := range c.inits {
		if err := init.FromGenesis(opts, db); err != nil {
			return err
		}
	}
	return nil
}

// ParseGenesis reads raw genesis bytes into the option map consumed by the
// initializers.
func ParseGenesis(raw []byte) (tillit.Options, error) {
	var opts tillit.Options
	if err := json.Unmarshal(raw, &opts); err != nil {
		return nil, errors.Wrap(err, "cannot parse genesis")
	}
	return opts, nil
}
