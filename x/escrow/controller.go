package escrow

import (
	"github.com/tillit-one/tillit"
	"github.com/tillit-one/tillit/errors"
	"github.com/tillit-one/tillit/orm"
	"github.com/tillit-one/tillit/x/cash"
	"github.com/tillit-one/tillit/x/cond"
)

// Ledger owns the escrow records and every fund movement in and out of the
// custody accounts. Handlers perform authorization and policy checks and
// delegate here; nothing else may touch the locked funds.
type Ledger struct {
	bucket   orm.Bucket
	cash     cash.Controller
	policies *cond.Registry
}

func NewLedger(ctrl cash.Controller, policies *cond.Registry) Ledger {
	return Ledger{
		bucket:   NewBucket(),
		cash:     ctrl,
		policies: policies,
	}
}

// Init records a new active escrow and locks its amount in the custody
// account. The caller already validated the message and debited the fee.
func (l Ledger) Init(db tillit.KVStore, id []byte, esc *Escrow) error {
	switch has, err := l.bucket.Has(db, id); {
	case err != nil:
		return err
	case has:
		return errors.Wrapf(errors.ErrDuplicate, "escrow %X", id)
	}
	if esc.Status != StatusActive {
		return errors.Wrap(errors.ErrState, "a new escrow must be active")
	}
	if err := l.bucket.Put(db, id, esc); err != nil {
		return err
	}
	custody := Condition(id).Address()
	return l.cash.MoveCoins(db, esc.Source, custody, *esc.Amount)
}

// Release pays an active escrow out to the destination if its condition
// holds. The record is marked terminal before any funds move, so a
// re-entering call observes a non-active escrow and fails.
func (l Ledger) Release(ctx tillit.Context, db tillit.KVStore, id []byte) (*Escrow, error) {
	esc, err := loadEscrow(db, l.bucket, id)
	if err != nil {
		return nil, err
	}
	if esc.Status != StatusActive {
		return nil, errors.Wrapf(errors.ErrState, "escrow is %s", esc.Status)
	}
	verifier, err := l.policies.Lookup(esc.VerifierRef)
	if err != nil {
		return nil, err
	}
	ok, err := verifier.Verify(ctx, db, esc.Destination, esc.ConditionID)
	if err != nil {
		return nil, errors.Wrap(err, "verify")
	}
	if !ok {
		return nil, ErrConditionNotMet
	}

	esc.Status = StatusReleased
	if err := l.bucket.Put(db, id, esc); err != nil {
		return nil, err
	}
	custody := Condition(id).Address()
	if err := l.cash.MoveCoins(db, custody, esc.Destination, *esc.Amount); err != nil {
		return nil, err
	}
	return esc, nil
}

// Refund gives an active escrow unconditionally back to the source. The
// caller is responsible for checking that the source requested this.
func (l Ledger) Refund(db tillit.KVStore, id []byte) (*Escrow, error) {
	esc, err := loadEscrow(db, l.bucket, id)
	if err != nil {
		return nil, err
	}
	if esc.Status != StatusActive {
		return nil, errors.Wrapf(errors.ErrState, "escrow is %s", esc.Status)
	}

	esc.Status = StatusReturned
	if err := l.bucket.Put(db, id, esc); err != nil {
		return nil, err
	}
	custody := Condition(id).Address()
	if err := l.cash.MoveCoins(db, custody, esc.Source, *esc.Amount); err != nil {
		return nil, err
	}
	return esc, nil
}
