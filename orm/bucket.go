package orm

import (
	"regexp"

	"github.com/gogo/protobuf/proto"
	"github.com/tillit-one/tillit"
	"github.com/tillit-one/tillit/errors"
)

// Model is implemented by any entity that can be stored in a Bucket. All
// models are protobuf messages, serialized through the proto codec.
type Model interface {
	proto.Message
	Validate() error
}

var isBucketName = regexp.MustCompile(`^[a-z]{3,10}$`).MatchString

// Bucket is a generic holder that stores models of one type under a private
// key namespace. All keys are transparently prefixed with the bucket name so
// separate buckets never collide.
type Bucket struct {
	name   string
	prefix []byte
}

// NewBucket creates a bucket to store models under the given name. The name
// must be a valid short lowercase identifier; this is enforced with a panic
// as buckets are only created during the setup phase.
func NewBucket(name string) Bucket {
	if !isBucketName(name) {
		panic("invalid bucket name: " + name)
	}
	return Bucket{
		name:   name,
		prefix: []byte(name + ":"),
	}
}

// Name returns the bucket name.
func (b Bucket) Name() string {
	return b.name
}

// DBKey is the full key we store in the db, including the bucket prefix.
// The result is always a fresh slice, never an alias of the prefix.
func (b Bucket) DBKey(key []byte) []byte {
	out := make([]byte, len(b.prefix)+len(key))
	copy(out, b.prefix)
	copy(out[len(b.prefix):], key)
	return out
}

// Register exposes this bucket for read-only queries under the given path
// name, or the bucket name when none is given.
func (b Bucket) Register(name string, r tillit.QueryRouter) {
	if name == "" {
		name = b.name
	}
	r.Register("/"+name, b)
}

// Query handles queries from the QueryRouter. Only exact key lookups are
// supported; a miss returns no models.
func (b Bucket) Query(db tillit.ReadOnlyKVStore, mod string, data []byte) ([]tillit.Model, error) {
	switch mod {
	case tillit.KeyQueryMod:
		key := b.DBKey(data)
		value, err := db.Get(key)
		if err != nil {
			return nil, err
		}
		if value == nil {
			return nil, nil
		}
		return []tillit.Model{{Key: key, Value: value}}, nil
	default:
		return nil, errors.Wrapf(errors.ErrHuman, "unsupported query mod: %q", mod)
	}
}

// One loads the entity stored under the key into the destination model. It
// returns ErrNotFound when there is no entity under this key.
func (b Bucket) One(db tillit.ReadOnlyKVStore, key []byte, dest Model) error {
	raw, err := db.Get(b.DBKey(key))
	if err != nil {
		return err
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}
	dest.Reset()
	if err := proto.Unmarshal(raw, dest); err != nil {
		return errors.Wrapf(err, "cannot unmarshal %T", dest)
	}
	return nil
}

// Has returns true if an entity is stored under the key.
func (b Bucket) Has(db tillit.ReadOnlyKVStore, key []byte) (bool, error) {
	return db.Has(b.DBKey(key))
}

// Put validates the model and saves it under the key.
func (b Bucket) Put(db tillit.KVStore, key []byte, m Model) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	raw, err := proto.Marshal(m)
	if err != nil {
		return errors.Wrapf(err, "cannot marshal %T", m)
	}
	return db.Set(b.DBKey(key), raw)
}

// Delete removes the entity stored under the key. It returns ErrNotFound
// when there is no entity under this key.
func (b Bucket) Delete(db tillit.KVStore, key []byte) error {
	switch has, err := b.Has(db, key); {
	case err != nil:
		return err
	case !has:
		return errors.Wrap(errors.ErrNotFound, b.name)
	}
	return db.Delete(b.DBKey(key))
}
