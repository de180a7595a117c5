package cond

import (
	"github.com/gogo/protobuf/proto"
	"github.com/tillit-one/tillit"
	"github.com/tillit-one/tillit/errors"
	"github.com/tillit-one/tillit/orm"
)

// DeadlinePolicyName is the registration name of the deadline policy.
const DeadlinePolicyName = "deadline"

// DeadlineVerifier releases funds once the chain reaches a configured
// height. It needs no external input after creation.
type DeadlineVerifier struct {
	bucket orm.Bucket
	idSeq  orm.Sequence
}

var _ Verifier = (*DeadlineVerifier)(nil)

func NewDeadlineVerifier() *DeadlineVerifier {
	return &DeadlineVerifier{
		bucket: orm.NewBucket("deadline"),
		idSeq:  orm.NewSequence("deadline", "id"),
	}
}

func (v *DeadlineVerifier) Create(db tillit.KVStore, params []byte) ([]byte, error) {
	var p DeadlineParams
	if err := proto.Unmarshal(params, &p); err != nil {
		return nil, errors.Wrap(errors.ErrInput, "malformed deadline parameters")
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	handle, err := v.idSeq.NextVal(db)
	if err != nil {
		return nil, errors.Wrap(err, "cannot acquire handle")
	}
	c := DeadlineCondition{ReleaseHeight: p.ReleaseHeight}
	if err := v.bucket.Put(db, handle, &c); err != nil {
		return nil, err
	}
	return handle, nil
}

func (v *DeadlineVerifier) Verify(ctx tillit.Context, db tillit.ReadOnlyKVStore, beneficiary tillit.Address, handle []byte) (bool, error) {
	var c DeadlineCondition
	if err := v.bucket.One(db, handle, &c); err != nil {
		return false, err
	}
	height, err := tillit.MustHeight(ctx)
	if err != nil {
		return false, err
	}
	return height >= c.ReleaseHeight, nil
}
