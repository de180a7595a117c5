package currency

import (
	"github.com/tillit-one/tillit"
	"github.com/tillit-one/tillit/errors"
	"github.com/tillit-one/tillit/x"
)

const registerTokenCost int64 = 100

// AuthorityFn resolves the address allowed to administer the allow-list.
// It must fail when no authority was configured yet.
type AuthorityFn func(db tillit.ReadOnlyKVStore) (tillit.Address, error)

// RegisterRoutes will instantiate and register all handlers in this package.
// The authority lookup is injected so this package stays independent of
// where the authority is configured.
func RegisterRoutes(r tillit.Registry, auth x.Authenticator, authority AuthorityFn) {
	r.Handle(&RegisterTokenMsg{}, RegisterTokenHandler{
		auth:      auth,
		authority: authority,
		bucket:    NewTokenBucket(),
	})
}

// RegisterQuery will register the allow-list as "/tokens".
func RegisterQuery(qr tillit.QueryRouter) {
	NewTokenBucket().Bucket.Register("tokens", qr)
}

// RegisterTokenHandler adds tokens to the allow-list on behalf of the
// authority.
type RegisterTokenHandler struct {
	auth      x.Authenticator
	authority AuthorityFn
	bucket    TokenBucket
}

var _ tillit.Handler = RegisterTokenHandler{}

func (h RegisterTokenHandler) Check(ctx tillit.Context, db tillit.KVStore, tx tillit.Tx) (*tillit.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tillit.CheckResult{GasAllocated: registerTokenCost}, nil
}

func (h RegisterTokenHandler) Deliver(ctx tillit.Context, db tillit.KVStore, tx tillit.Tx) (*tillit.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.bucket.Register(db, msg.Ticker); err != nil {
		return nil, err
	}
	res := &tillit.DeliverResult{
		Tags: []tillit.KVPair{
			tillit.Pair("action", "register_token"),
			tillit.Pair("ticker", msg.Ticker),
		},
	}
	return res, nil
}

func (h RegisterTokenHandler) validate(ctx tillit.Context, db tillit.KVStore, tx tillit.Tx) (*RegisterTokenMsg, error) {
	var msg RegisterTokenMsg
	if err := tillit.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	authority, err := h.authority(db)
	if err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, authority) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "authority signature required")
	}
	return &msg, nil
}
