package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tillit-one/tillit"
	"github.com/tillit-one/tillit/errors"
	"github.com/tillit-one/tillit/store"
	"github.com/tillit-one/tillit/tillittest"
)

func TestRouterDispatch(t *testing.T) {
	r := NewRouter()
	good := &tillittest.Handler{}
	r.Handle(&tillittest.Msg{RoutePath: "test/good"}, good)

	db := store.MemStore()
	ctx := context.Background()

	_, err := r.Deliver(ctx, db, &tillittest.Tx{Msg: &tillittest.Msg{RoutePath: "test/good"}})
	require.NoError(t, err)
	_, err = r.Check(ctx, db, &tillittest.Tx{Msg: &tillittest.Msg{RoutePath: "test/good"}})
	require.NoError(t, err)
	assert.Equal(t, 2, good.CallCount())

	_, err = r.Deliver(ctx, db, &tillittest.Tx{Msg: &tillittest.Msg{RoutePath: "test/missing"}})
	assert.True(t, errors.ErrNotFound.Is(err))
}

func TestRouterRegistration(t *testing.T) {
	r := NewRouter()
	r.Handle(&tillittest.Msg{RoutePath: "test/dup"}, &tillittest.Handler{})

	assert.Panics(t, func() {
		r.Handle(&tillittest.Msg{RoutePath: "test/dup"}, &tillittest.Handler{})
	})
	assert.Panics(t, func() {
		r.Handle(&tillittest.Msg{RoutePath: "Bad Path"}, &tillittest.Handler{})
	})
}

func TestChainDecorators(t *testing.T) {
	first := &tillittest.Decorator{}
	second := &tillittest.Decorator{}
	h := &tillittest.Handler{}

	stack := ChainDecorators(first, nil, second).WithHandler(h)

	db := store.MemStore()
	_, err := stack.Deliver(context.Background(), db, &tillittest.Tx{})
	require.NoError(t, err)

	assert.Equal(t, 1, first.DeliverCallCount())
	assert.Equal(t, 1, second.DeliverCallCount())
	assert.Equal(t, 1, h.DeliverCallCount())
}

func TestChainDecoratorsShortCircuit(t *testing.T) {
	boom := errors.Wrap(errors.ErrState, "boom")
	first := &tillittest.Decorator{DeliverErr: boom}
	h := &tillittest.Handler{}

	stack := ChainDecorators(first).WithHandler(h)

	_, err := stack.Deliver(context.Background(), store.MemStore(), &tillittest.Tx{})
	assert.True(t, errors.ErrState.Is(err))
	assert.Equal(t, 0, h.DeliverCallCount())
}

func TestChainInitializers(t *testing.T) {
	db := store.MemStore()
	opts := tillit.Options{"k": []byte(`"v"`)}

	var calls int
	init := initFn(func(o tillit.Options, kv tillit.KVStore) error {
		calls++
		return nil
	})
	require.NoError(t, ChainInitializers(init, init).FromGenesis(opts, db))
	assert.Equal(t, 2, calls)

	boom := errors.Wrap(errors.ErrHuman, "bad genesis")
	failing := initFn(func(tillit.Options, tillit.KVStore) error { return boom })
	err := ChainInitializers(init, failing, init).FromGenesis(opts, db)
	assert.True(t, errors.ErrHuman.Is(err))
}

type initFn func(tillit.Options, tillit.KVStore) error

func (f initFn) FromGenesis(opts tillit.Options, db tillit.KVStore) error {
	return f(opts, db)
}

func TestParseGenesis(t *testing.T) {
	opts, err := ParseGenesis([]byte(`{"cash": [{"address": "aabbcc"}]}`))
	require.NoError(t, err)
	assert.Contains(t, opts, "cash")

	_, err = ParseGenesis([]byte(`not json`))
	require.Error(t, err)
}
