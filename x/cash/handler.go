package cash

import (
	"github.com/tillit-one/tillit"
	"github.com/tillit-one/tillit/errors"
	"github.com/tillit-one/tillit/x"
)

const sendTxCost int64 = 100

// RegisterRoutes will instantiate and register all handlers in this package.
func RegisterRoutes(r tillit.Registry, auth x.Authenticator, ctrl Controller) {
	r.Handle(&SendMsg{}, SendHandler{auth: auth, ctrl: ctrl})
}

// RegisterQuery will register this bucket as "/wallets".
func RegisterQuery(qr tillit.QueryRouter) {
	NewBucket().Register("wallets", qr)
}

// SendHandler moves funds between accounts on behalf of the source.
type SendHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ tillit.Handler = SendHandler{}

// Check just verifies it is properly formed and returns the cost of
// executing it.
func (h SendHandler) Check(ctx tillit.Context, db tillit.KVStore, tx tillit.Tx) (*tillit.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tillit.CheckResult{GasAllocated: sendTxCost}, nil
}

// Deliver moves the tokens from source to destination if all preconditions
// are met.
func (h SendHandler) Deliver(ctx tillit.Context, db tillit.KVStore, tx tillit.Tx) (*tillit.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.MoveCoins(db, msg.Source, msg.Destination, *msg.Amount); err != nil {
		return nil, err
	}
	res := &tillit.DeliverResult{
		Tags: []tillit.KVPair{
			tillit.Pair("action", "send"),
			tillit.Pair("source", msg.Source.String()),
			tillit.Pair("destination", msg.Destination.String()),
		},
	}
	return res, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h SendHandler) validate(ctx tillit.Context, db tillit.KVStore, tx tillit.Tx) (*SendMsg, error) {
	var msg SendMsg
	if err := tillit.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, errors.ErrUnauthorized
	}
	return &msg, nil
}
