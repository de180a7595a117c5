package escrow

import (
	"github.com/tillit-one/tillit"
	"github.com/tillit-one/tillit/errors"
	"github.com/tillit-one/tillit/gconf"
)

// Initializer fulfils the Initializer interface to load the escrow
// configuration from genesis data.
type Initializer struct{}

var _ tillit.Initializer = (*Initializer)(nil)

// FromGenesis will parse the initial configuration from genesis and save it
// to the database. A genesis without an escrow configuration is legal; the
// authority is then registered later through a SetAuthorityMsg.
func (Initializer) FromGenesis(opts tillit.Options, db tillit.KVStore) error {
	var conf Config
	switch err := gconf.InitConfig(db, opts, configPkg, &conf); {
	case err == nil, errors.ErrNotFound.Is(err):
		return nil
	default:
		return errors.Wrap(err, "init config")
	}
}
