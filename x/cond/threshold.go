package cond

import (
	"github.com/gogo/protobuf/proto"
	"github.com/tillit-one/tillit"
	"github.com/tillit-one/tillit/errors"
	"github.com/tillit-one/tillit/orm"
	"github.com/tillit-one/tillit/x"
)

// ThresholdPolicyName is the registration name of the threshold policy.
const ThresholdPolicyName = "threshold"

// ThresholdVerifier releases funds once enough of a fixed signer set has
// approved. Approvals are permanent and cannot be withdrawn.
type ThresholdVerifier struct {
	bucket orm.Bucket
	idSeq  orm.Sequence
}

var _ Verifier = (*ThresholdVerifier)(nil)

func NewThresholdVerifier() *ThresholdVerifier {
	return &ThresholdVerifier{
		bucket: orm.NewBucket("threshold"),
		idSeq:  orm.NewSequence("threshold", "id"),
	}
}

func (v *ThresholdVerifier) Create(db tillit.KVStore, params []byte) ([]byte, error) {
	var p ThresholdParams
	if err := proto.Unmarshal(params, &p); err != nil {
		return nil, errors.Wrap(errors.ErrInput, "malformed threshold parameters")
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	handle, err := v.idSeq.NextVal(db)
	if err != nil {
		return nil, errors.Wrap(err, "cannot acquire handle")
	}
	c := ThresholdCondition{
		Signers:  p.Signers,
		Required: p.Required,
	}
	if err := v.bucket.Put(db, handle, &c); err != nil {
		return nil, err
	}
	return handle, nil
}

func (v *ThresholdVerifier) Verify(ctx tillit.Context, db tillit.ReadOnlyKVStore, beneficiary tillit.Address, handle []byte) (bool, error) {
	var c ThresholdCondition
	if err := v.bucket.One(db, handle, &c); err != nil {
		return false, err
	}
	return len(c.Approvals) >= int(c.Required), nil
}

// Approve records an approval for every signer the transaction authorizes.
// A transaction with a single signer approves for exactly the caller; one
// carrying several signatures batches all of their approvals in one call.
// It fails when none of the signers authorized the transaction, or when all
// that did have already approved.
func (v *ThresholdVerifier) Approve(ctx tillit.Context, db tillit.KVStore, auth x.Authenticator, handle []byte) error {
	var c ThresholdCondition
	if err := v.bucket.One(db, handle, &c); err != nil {
		return err
	}
	var matched, added bool
	for _, s := range c.Signers {
		if !auth.HasAddress(ctx, s) {
			continue
		}
		matched = true
		if containsAddress(c.Approvals, s) {
			continue
		}
		c.Approvals = append(c.Approvals, s)
		added = true
	}
	switch {
	case !matched:
		return errors.Wrap(ErrNotSigner, "no signer authorized this transaction")
	case !added:
		return ErrAlreadySigned
	}
	return v.bucket.Put(db, handle, &c)
}
