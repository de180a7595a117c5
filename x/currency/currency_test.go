package currency

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tillit-one/tillit"
	"github.com/tillit-one/tillit/errors"
	"github.com/tillit-one/tillit/store"
	"github.com/tillit-one/tillit/tillittest"
)

func TestTokenBucketRegister(t *testing.T) {
	db := store.MemStore()
	b := NewTokenBucket()

	ok, err := b.Registered(db, "STX")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, b.Register(db, "STX"))
	ok, err = b.Registered(db, "STX")
	require.NoError(t, err)
	assert.True(t, ok)

	// registering twice is a silent no-op
	require.NoError(t, b.Register(db, "STX"))
	list, err := b.Tokens(db)
	require.NoError(t, err)
	assert.Len(t, list.Tickers, 1)
}

func TestTokenBucketCapacity(t *testing.T) {
	db := store.MemStore()
	b := NewTokenBucket()

	for i := 0; i < MaxTokens; i++ {
		ticker := fmt.Sprintf("TOK%c", 'A'+i)
		require.NoError(t, b.Register(db, ticker))
	}
	err := b.Register(db, "ONEMORE")
	assert.True(t, errors.ErrCapacity.Is(err))

	// an already listed token still succeeds on the full list
	require.NoError(t, b.Register(db, "TOKA"))
}

func TestRegisterTokenMsgValidate(t *testing.T) {
	assert.Equal(t, "currency/register", RegisterTokenMsg{}.Path())

	require.NoError(t, (&RegisterTokenMsg{Ticker: "STX"}).Validate())
	for _, ticker := range []string{"", "st", "toolongtickername", "st x"} {
		err := (&RegisterTokenMsg{Ticker: ticker}).Validate()
		assert.True(t, errors.ErrCurrency.Is(err), ticker)
	}
}

func TestRegisterTokenHandler(t *testing.T) {
	db := store.MemStore()
	authority := tillittest.NewCondition()

	lookup := func(tillit.ReadOnlyKVStore) (tillit.Address, error) {
		return authority.Address(), nil
	}

	h := RegisterTokenHandler{
		auth:      &tillittest.Auth{Signer: authority},
		authority: lookup,
		bucket:    NewTokenBucket(),
	}
	ctx := context.Background()
	tx := &tillittest.Tx{Msg: &RegisterTokenMsg{Ticker: "ETH"}}

	cres, err := h.Check(ctx, db, tx)
	require.NoError(t, err)
	assert.Equal(t, registerTokenCost, cres.GasAllocated)

	_, err = h.Deliver(ctx, db, tx)
	require.NoError(t, err)

	ok, err := h.bucket.Registered(db, "ETH")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRegisterTokenHandlerAuthorization(t *testing.T) {
	db := store.MemStore()
	authority := tillittest.NewCondition()

	lookup := func(tillit.ReadOnlyKVStore) (tillit.Address, error) {
		return authority.Address(), nil
	}

	h := RegisterTokenHandler{
		auth:      &tillittest.Auth{Signer: tillittest.NewCondition()},
		authority: lookup,
		bucket:    NewTokenBucket(),
	}
	_, err := h.Deliver(context.Background(), db, &tillittest.Tx{Msg: &RegisterTokenMsg{Ticker: "ETH"}})
	assert.True(t, errors.ErrUnauthorized.Is(err))
}

func TestRegisterTokenHandlerNoAuthority(t *testing.T) {
	db := store.MemStore()

	lookup := func(tillit.ReadOnlyKVStore) (tillit.Address, error) {
		return nil, errors.Wrap(errors.ErrState, "no authority")
	}

	h := RegisterTokenHandler{
		auth:      &tillittest.Auth{Signer: tillittest.NewCondition()},
		authority: lookup,
		bucket:    NewTokenBucket(),
	}
	_, err := h.Deliver(context.Background(), db, &tillittest.Tx{Msg: &RegisterTokenMsg{Ticker: "ETH"}})
	assert.True(t, errors.ErrState.Is(err))
}

func TestGenesisInitializer(t *testing.T) {
	db := store.MemStore()
	opts := tillit.Options{
		"currencies": []byte(`["STX", "IOV"]`),
	}
	require.NoError(t, Initializer{}.FromGenesis(opts, db))

	for _, ticker := range []string{"STX", "IOV"} {
		ok, err := NewTokenBucket().Registered(db, ticker)
		require.NoError(t, err)
		assert.True(t, ok, ticker)
	}

	// a genesis without currencies is legal and registers nothing
	require.NoError(t, Initializer{}.FromGenesis(tillit.Options{}, db))

	// invalid tickers are rejected
	err := Initializer{}.FromGenesis(tillit.Options{
		"currencies": []byte(`["st"]`),
	}, db)
	assert.True(t, errors.ErrCurrency.Is(err))
}
