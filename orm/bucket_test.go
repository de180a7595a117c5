package orm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tillit-one/tillit/errors"
	"github.com/tillit-one/tillit/store"
)

func TestBucketPutOneDelete(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("refs")

	stored := &IDSet{IDs: [][]byte{[]byte("a"), []byte("b")}}
	require.NoError(t, b.Put(db, []byte("k"), stored))

	var loaded IDSet
	require.NoError(t, b.One(db, []byte("k"), &loaded))
	assert.Equal(t, stored.IDs, loaded.IDs)

	require.NoError(t, b.Delete(db, []byte("k")))
	err := b.One(db, []byte("k"), &loaded)
	assert.True(t, errors.ErrNotFound.Is(err))
	err = b.Delete(db, []byte("k"))
	assert.True(t, errors.ErrNotFound.Is(err))
}

func TestBucketRejectsInvalidModel(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("refs")

	unsorted := &IDSet{IDs: [][]byte{[]byte("b"), []byte("a")}}
	err := b.Put(db, []byte("k"), unsorted)
	assert.True(t, errors.ErrModel.Is(err))
}

func TestBucketPrefixesDoNotCollide(t *testing.T) {
	db := store.MemStore()
	one := NewBucket("one")
	two := NewBucket("two")

	require.NoError(t, one.Put(db, []byte("k"), &IDSet{IDs: [][]byte{[]byte("1")}}))

	var loaded IDSet
	err := two.One(db, []byte("k"), &loaded)
	assert.True(t, errors.ErrNotFound.Is(err))
}

func TestBucketNamePanicsOnInvalid(t *testing.T) {
	assert.Panics(t, func() { NewBucket("Bad Name") })
}

func TestSequence(t *testing.T) {
	db := store.MemStore()
	seq := NewSequence("escrow", "id")

	val, err := seq.NextInt(db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), val)

	raw, err := seq.NextVal(db)
	require.NoError(t, err)
	assert.Equal(t, int64(2), DecodeSequence(raw))

	// Latest does not advance the counter.
	latest, _, err := seq.Latest(db)
	require.NoError(t, err)
	assert.Equal(t, int64(2), latest)
	latest, _, err = seq.Latest(db)
	require.NoError(t, err)
	assert.Equal(t, int64(2), latest)
}

func TestIDSet(t *testing.T) {
	var set IDSet
	require.NoError(t, set.Add([]byte("m")))
	require.NoError(t, set.Add([]byte("a")))
	require.NoError(t, set.Add([]byte("z")))

	// sorted insert, duplicates rejected
	assert.Equal(t, [][]byte{[]byte("a"), []byte("m"), []byte("z")}, set.IDs)
	assert.True(t, errors.ErrDuplicate.Is(set.Add([]byte("m"))))
	assert.Equal(t, 3, set.Size())
	assert.True(t, set.Has([]byte("z")))

	require.NoError(t, set.Remove([]byte("m")))
	assert.False(t, set.Has([]byte("m")))
	assert.True(t, errors.ErrNotFound.Is(set.Remove([]byte("m"))))
}
