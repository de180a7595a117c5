package utils

import (
	"github.com/tillit-one/tillit"
	"github.com/tillit-one/tillit/errors"
)

// Recovery is a decorator to recover from panics in transactions, so we can
// log them as errors.
type Recovery struct{}

var _ tillit.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator.
func NewRecovery() Recovery {
	return Recovery{}
}

// Check turns panics into normal errors.
func (r Recovery) Check(ctx tillit.Context, store tillit.KVStore, tx tillit.Tx, next tillit.Checker) (_ *tillit.CheckResult, err error) {
	defer errors.Recover(&err)
	return next.Check(ctx, store, tx)
}

// Deliver turns panics into normal errors.
func (r Recovery) Deliver(ctx tillit.Context, store tillit.KVStore, tx tillit.Tx, next tillit.Deliverer) (_ *tillit.DeliverResult, err error) {
	defer errors.Recover(&err)
	return next.Deliver(ctx, store, tx)
}
