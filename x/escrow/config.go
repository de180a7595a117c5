package escrow

import (
	"github.com/tillit-one/tillit"
	"github.com/tillit-one/tillit/errors"
	"github.com/tillit-one/tillit/gconf"
)

// configPkg is the gconf namespace of this extension.
const configPkg = "escrow"

// loadConf returns the stored configuration, or the zero configuration when
// none was stored yet.
func loadConf(db tillit.ReadOnlyKVStore) (*Config, error) {
	var conf Config
	switch err := gconf.Load(db, configPkg, &conf); {
	case err == nil:
		return &conf, nil
	case errors.ErrNotFound.Is(err):
		return &Config{}, nil
	default:
		return nil, err
	}
}

// Authority returns the configured authority address. It fails with
// ErrAuthorityNotSet when the one-time registration did not happen yet.
// This is also the lookup injected into the currency extension.
func Authority(db tillit.ReadOnlyKVStore) (tillit.Address, error) {
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	if len(conf.Authority) == 0 {
		return nil, ErrAuthorityNotSet
	}
	return conf.Authority, nil
}
