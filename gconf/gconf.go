/*
Package gconf provides a toolset for managing an extension configuration.

Every extension can declare its own configuration as a protobuf message and
persist it as a singleton under its own package namespace. Clients update the
configuration through the owning extension's handlers, never by direct store
access.
*/
package gconf

import (
	"github.com/gogo/protobuf/proto"
	"github.com/tillit-one/tillit"
	"github.com/tillit-one/tillit/errors"
)

// Configuration is implemented by extension configuration protobuf messages.
type Configuration interface {
	proto.Message
	Validate() error
}

func dbKey(pkg string) []byte {
	return []byte("_c:" + pkg)
}

// Save validates the configuration and writes it to a special
// "configuration" singleton for that package name.
func Save(db tillit.KVStore, pkg string, src Configuration) error {
	key := dbKey(pkg)
	if err := src.Validate(); err != nil {
		return errors.Wrapf(err, "validation: key %q", key)
	}
	raw, err := proto.Marshal(src)
	if err != nil {
		return errors.Wrapf(err, "marshal: key %q", key)
	}
	return db.Set(key, raw)
}

// Load reads the configuration singleton of that package name into dst. It
// returns ErrNotFound when the package was never configured.
func Load(db tillit.ReadOnlyKVStore, pkg string, dst Configuration) error {
	key := dbKey(pkg)
	raw, err := db.Get(key)
	if err != nil {
		return err
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "key %q", key)
	}
	dst.Reset()
	if err := proto.Unmarshal(raw, dst); err != nil {
		return errors.Wrapf(err, "unmarshal: key %q", key)
	}
	return nil
}

// Exists returns true if a configuration was stored for that package name.
func Exists(db tillit.ReadOnlyKVStore, pkg string) (bool, error) {
	return db.Has(dbKey(pkg))
}

// InitConfig will take opts["conf"][pkg], parse it into the given
// Configuration object, validate it, and store it under the proper key in
// the database. Returns an error if anything goes wrong.
func InitConfig(db tillit.KVStore, opts tillit.Options, pkg string, conf Configuration) error {
	var confOptions tillit.Options
	if err := opts.ReadOptions("conf", &confOptions); err != nil {
		return errors.Wrap(err, "read conf")
	}
	if confOptions[pkg] == nil {
		return errors.Wrapf(errors.ErrNotFound, "no configuration in genesis for %q package", pkg)
	}
	if err := confOptions.ReadOptions(pkg, conf); err != nil {
		return errors.Wrapf(err, "read configuration for %s", pkg)
	}
	if err := Save(db, pkg, conf); err != nil {
		return errors.Wrapf(err, "save configuration for %s", pkg)
	}
	return nil
}
