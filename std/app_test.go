package std

import (
	"context"
	"fmt"
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tillit-one/tillit"
	"github.com/tillit-one/tillit/app"
	"github.com/tillit-one/tillit/coin"
	"github.com/tillit-one/tillit/errors"
	"github.com/tillit-one/tillit/store"
	"github.com/tillit-one/tillit/tillittest"
	"github.com/tillit-one/tillit/x/cash"
	"github.com/tillit-one/tillit/x/cond"
	"github.com/tillit-one/tillit/x/currency"
	"github.com/tillit-one/tillit/x/escrow"
)

type testStack struct {
	db      tillit.CacheableKVStore
	auth    *tillittest.CtxAuth
	handler tillit.Handler

	authority tillit.Condition
	source    tillit.Condition
	dest      tillit.Condition
}

func newTestStack(t *testing.T) *testStack {
	t.Helper()

	s := &testStack{
		db:        store.MemStore(),
		auth:      &tillittest.CtxAuth{Key: "auth"},
		authority: tillittest.NewCondition(),
		source:    tillittest.NewCondition(),
		dest:      tillittest.NewCondition(),
	}
	s.handler = Stack(s.auth)

	genesis := fmt.Sprintf(`{
		"cash": [
			{"address": "%s", "coins": [{"whole": 10000, "ticker": "STX"}]}
		],
		"conf": {
			"escrow": {
				"authority": "%s",
				"creation_fee": {"whole": 25, "ticker": "STX"},
				"max_escrows": 1000
			}
		}
	}`, s.source.Address(), s.authority.Address())

	opts, err := app.ParseGenesis([]byte(genesis))
	require.NoError(t, err)
	require.NoError(t, Initializer().FromGenesis(opts, s.db))
	return s
}

func (s *testStack) ctx(height int64, signers ...tillit.Condition) tillit.Context {
	ctx := tillit.WithHeight(context.Background(), height)
	return s.auth.SetConditions(ctx, signers...)
}

func (s *testStack) deliver(ctx tillit.Context, msg tillit.Msg) (*tillit.DeliverResult, error) {
	return s.handler.Deliver(ctx, s.db, &tillittest.Tx{Msg: msg})
}

func (s *testStack) balance(t *testing.T, addr tillit.Address) int64 {
	t.Helper()
	cs, err := cash.NewController().Balance(s.db, addr)
	require.NoError(t, err)
	return cs.Amount("STX").Whole
}

func (s *testStack) registerSTX(t *testing.T) {
	t.Helper()
	_, err := s.deliver(s.ctx(1, s.authority), &currency.RegisterTokenMsg{Ticker: "STX"})
	require.NoError(t, err)
}

func TestEscrowThroughFullStack(t *testing.T) {
	s := newTestStack(t)
	s.registerSTX(t)

	params, err := proto.Marshal(&cond.DeadlineParams{ReleaseHeight: 100})
	require.NoError(t, err)

	res, err := s.deliver(s.ctx(5, s.source), &escrow.CreateMsg{
		Destination: s.dest.Address(),
		Amount:      coin.NewCoinp(1000, "STX"),
		VerifierRef: cond.PolicyRef(cond.DeadlinePolicyName),
		Params:      params,
	})
	require.NoError(t, err)
	id := res.Data

	// the fee went to the authority, the amount into custody
	assert.Equal(t, int64(25), s.balance(t, s.authority.Address()))
	assert.Equal(t, int64(10000-1000-25), s.balance(t, s.source.Address()))

	_, err = s.deliver(s.ctx(50), &escrow.ReleaseMsg{EscrowID: id})
	assert.True(t, escrow.ErrConditionNotMet.Is(err))

	_, err = s.deliver(s.ctx(100), &escrow.ReleaseMsg{EscrowID: id})
	require.NoError(t, err)
	assert.Equal(t, int64(1000), s.balance(t, s.dest.Address()))
}

func TestCurrencyMustBeRegisteredFirst(t *testing.T) {
	// scenario: create with an unlisted currency fails, the authority
	// registers it, the retry succeeds
	s := newTestStack(t)

	params, err := proto.Marshal(&cond.DeadlineParams{ReleaseHeight: 100})
	require.NoError(t, err)
	create := &escrow.CreateMsg{
		Destination: s.dest.Address(),
		Amount:      coin.NewCoinp(100, "STX"),
		VerifierRef: cond.PolicyRef(cond.DeadlinePolicyName),
		Params:      params,
	}

	_, err = s.deliver(s.ctx(1, s.source), create)
	assert.True(t, errors.ErrCurrency.Is(err))

	// a non-authority cannot register
	_, err = s.deliver(s.ctx(2, s.source), &currency.RegisterTokenMsg{Ticker: "STX"})
	assert.True(t, errors.ErrUnauthorized.Is(err))

	s.registerSTX(t)
	_, err = s.deliver(s.ctx(3, s.source), create)
	require.NoError(t, err)
}

func TestFailedCreateLeavesNoTrace(t *testing.T) {
	s := newTestStack(t)
	s.registerSTX(t)

	params, err := proto.Marshal(&cond.DeadlineParams{ReleaseHeight: 100})
	require.NoError(t, err)

	// more than the source holds, the transfer fails after the fee was
	// already debited
	_, err = s.deliver(s.ctx(1, s.source), &escrow.CreateMsg{
		Destination: s.dest.Address(),
		Amount:      coin.NewCoinp(99999, "STX"),
		VerifierRef: cond.PolicyRef(cond.DeadlinePolicyName),
		Params:      params,
	})
	assert.True(t, errors.ErrInsufficientAmount.Is(err))

	// the whole call rolled back: no fee, no id, no record
	assert.Equal(t, int64(0), s.balance(t, s.authority.Address()))
	assert.Equal(t, int64(10000), s.balance(t, s.source.Address()))
	count, err := escrow.GetEscrowCount(s.db)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestThresholdThroughFullStack(t *testing.T) {
	s := newTestStack(t)
	s.registerSTX(t)

	a := tillittest.NewCondition()
	b := tillittest.NewCondition()
	c := tillittest.NewCondition()
	d := tillittest.NewCondition()

	params, err := proto.Marshal(&cond.ThresholdParams{
		Signers:  []tillit.Address{a.Address(), b.Address(), c.Address()},
		Required: 2,
	})
	require.NoError(t, err)

	res, err := s.deliver(s.ctx(1, s.source), &escrow.CreateMsg{
		Destination: s.dest.Address(),
		Amount:      coin.NewCoinp(300, "STX"),
		VerifierRef: cond.PolicyRef(cond.ThresholdPolicyName),
		Params:      params,
	})
	require.NoError(t, err)
	id := res.Data

	esc, err := escrow.GetEscrow(s.db, id)
	require.NoError(t, err)
	handle := esc.ConditionID

	_, err = s.deliver(s.ctx(2, a), &cond.ApproveMsg{ConditionID: handle})
	require.NoError(t, err)
	_, err = s.deliver(s.ctx(3), &escrow.ReleaseMsg{EscrowID: id})
	assert.True(t, escrow.ErrConditionNotMet.Is(err))

	_, err = s.deliver(s.ctx(4, b), &cond.ApproveMsg{ConditionID: handle})
	require.NoError(t, err)

	// repeated and foreign approvals fail
	_, err = s.deliver(s.ctx(5, a), &cond.ApproveMsg{ConditionID: handle})
	assert.True(t, cond.ErrAlreadySigned.Is(err))
	_, err = s.deliver(s.ctx(6, d), &cond.ApproveMsg{ConditionID: handle})
	assert.True(t, cond.ErrNotSigner.Is(err))

	_, err = s.deliver(s.ctx(7), &escrow.ReleaseMsg{EscrowID: id})
	require.NoError(t, err)
	assert.Equal(t, int64(300), s.balance(t, s.dest.Address()))
}

func TestQueryRouter(t *testing.T) {
	s := newTestStack(t)
	s.registerSTX(t)

	params, err := proto.Marshal(&cond.DeadlineParams{ReleaseHeight: 100})
	require.NoError(t, err)
	res, err := s.deliver(s.ctx(10, s.source), &escrow.CreateMsg{
		Destination: s.dest.Address(),
		Amount:      coin.NewCoinp(50, "STX"),
		VerifierRef: cond.PolicyRef(cond.DeadlinePolicyName),
		Params:      params,
	})
	require.NoError(t, err)
	id := res.Data

	qr := QueryRouter()

	models, err := qr.Handler("/escrows").Query(s.db, "", id)
	require.NoError(t, err)
	require.Len(t, models, 1)
	var esc escrow.Escrow
	require.NoError(t, proto.Unmarshal(models[0].Value, &esc))
	assert.Equal(t, s.dest.Address(), esc.Destination)

	models, err = qr.Handler("/wallets").Query(s.db, "", s.source.Address())
	require.NoError(t, err)
	require.Len(t, models, 1)

	models, err = qr.Handler("/tokens").Query(s.db, "", []byte("all"))
	require.NoError(t, err)
	require.Len(t, models, 1)
	var list currency.TokenList
	require.NoError(t, proto.Unmarshal(models[0].Value, &list))
	assert.Equal(t, []string{"STX"}, list.Tickers)

	// a miss is an empty answer, not an error
	models, err = qr.Handler("/escrows").Query(s.db, "", tillittest.SequenceID(999))
	require.NoError(t, err)
	assert.Nil(t, models)

	assert.Nil(t, qr.Handler("/no/such/path"))

	_, err = qr.Handler("/escrows").Query(s.db, "prefix", id)
	assert.True(t, errors.ErrHuman.Is(err))
}

func TestFeeRollbackOnSenderCapacity(t *testing.T) {
	s := newTestStack(t)
	s.registerSTX(t)

	params, err := proto.Marshal(&cond.DeadlineParams{ReleaseHeight: 100})
	require.NoError(t, err)
	msg := &escrow.CreateMsg{
		Destination: s.dest.Address(),
		Amount:      coin.NewCoinp(1, "STX"),
		VerifierRef: cond.PolicyRef(cond.DeadlinePolicyName),
		Params:      params,
	}
	for i := 0; i < escrow.MaxPerSender; i++ {
		_, err := s.deliver(s.ctx(int64(i+1), s.source), msg)
		require.NoError(t, err)
	}

	sourceBefore := s.balance(t, s.source.Address())
	authorityBefore := s.balance(t, s.authority.Address())

	// the fee is debited before the by-sender index fills up, so the
	// savepoint must roll it back together with everything else
	_, err = s.deliver(s.ctx(200, s.source), msg)
	assert.True(t, errors.ErrCapacity.Is(err))

	assert.Equal(t, sourceBefore, s.balance(t, s.source.Address()))
	assert.Equal(t, authorityBefore, s.balance(t, s.authority.Address()))

	count, err := escrow.GetEscrowCount(s.db)
	require.NoError(t, err)
	assert.Equal(t, int64(escrow.MaxPerSender), count)

	ids, err := escrow.GetEscrowsBySource(s.db, s.source.Address())
	require.NoError(t, err)
	assert.Len(t, ids, escrow.MaxPerSender)
}
