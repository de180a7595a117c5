package cond

import (
	"github.com/tillit-one/tillit"
	"github.com/tillit-one/tillit/errors"
	"github.com/tillit-one/tillit/orm"
	"github.com/tillit-one/tillit/x"
)

const (
	attestTxCost  int64 = 150
	approveTxCost int64 = 100
)

// RegisterRoutes will instantiate and register all handlers in this package.
// The verifiers must be the same instances that were used to create the
// conditions, usually the ones held by a shared Registry.
func RegisterRoutes(r tillit.Registry, auth x.Authenticator, events *EventVerifier, thresholds *ThresholdVerifier) {
	r.Handle(&AttestMsg{}, AttestHandler{auth: auth, events: events})
	r.Handle(&ApproveMsg{}, ApproveHandler{auth: auth, thresholds: thresholds})
}

// RegisterQuery will register every policy bucket under "/conditions".
func RegisterQuery(qr tillit.QueryRouter) {
	orm.NewBucket("deadline").Register("conditions/deadline", qr)
	orm.NewBucket("event").Register("conditions/event", qr)
	orm.NewBucket("threshold").Register("conditions/threshold", qr)
}

// AttestHandler lets the registered attestor confirm an event condition.
type AttestHandler struct {
	auth   x.Authenticator
	events *EventVerifier
}

var _ tillit.Handler = AttestHandler{}

func (h AttestHandler) Check(ctx tillit.Context, db tillit.KVStore, tx tillit.Tx) (*tillit.CheckResult, error) {
	var msg AttestMsg
	if err := tillit.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return &tillit.CheckResult{GasAllocated: attestTxCost}, nil
}

func (h AttestHandler) Deliver(ctx tillit.Context, db tillit.KVStore, tx tillit.Tx) (*tillit.DeliverResult, error) {
	var msg AttestMsg
	if err := tillit.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := h.events.Attest(ctx, db, h.auth, msg.ConditionID, msg.Proof); err != nil {
		return nil, err
	}
	res := &tillit.DeliverResult{
		Tags: []tillit.KVPair{
			tillit.Pair("action", "attest"),
			tillit.Pair("condition", conditionTag(msg.ConditionID)),
		},
	}
	return res, nil
}

// ApproveHandler lets a signer approve a threshold condition.
type ApproveHandler struct {
	auth       x.Authenticator
	thresholds *ThresholdVerifier
}

var _ tillit.Handler = ApproveHandler{}

func (h ApproveHandler) Check(ctx tillit.Context, db tillit.KVStore, tx tillit.Tx) (*tillit.CheckResult, error) {
	var msg ApproveMsg
	if err := tillit.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return &tillit.CheckResult{GasAllocated: approveTxCost}, nil
}

func (h ApproveHandler) Deliver(ctx tillit.Context, db tillit.KVStore, tx tillit.Tx) (*tillit.DeliverResult, error) {
	var msg ApproveMsg
	if err := tillit.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := h.thresholds.Approve(ctx, db, h.auth, msg.ConditionID); err != nil {
		return nil, err
	}
	res := &tillit.DeliverResult{
		Tags: []tillit.KVPair{
			tillit.Pair("action", "approve"),
			tillit.Pair("condition", conditionTag(msg.ConditionID)),
		},
	}
	return res, nil
}

func conditionTag(id []byte) string {
	return tillit.Address(id).String()
}
