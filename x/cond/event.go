package cond

import (
	"bytes"

	"github.com/gogo/protobuf/proto"
	"github.com/tillit-one/tillit"
	"github.com/tillit-one/tillit/errors"
	"github.com/tillit-one/tillit/orm"
	"github.com/tillit-one/tillit/x"
)

// EventPolicyName is the registration name of the attested-event policy.
const EventPolicyName = "event"

// EventVerifier releases funds once a designated attestor has confirmed an
// off-chain event. The event is stored as a fingerprint only; the attestor
// later submits the full payload as proof.
type EventVerifier struct {
	bucket orm.Bucket
	idSeq  orm.Sequence
}

var _ Verifier = (*EventVerifier)(nil)

func NewEventVerifier() *EventVerifier {
	return &EventVerifier{
		bucket: orm.NewBucket("event"),
		idSeq:  orm.NewSequence("event", "id"),
	}
}

func (v *EventVerifier) Create(db tillit.KVStore, params []byte) ([]byte, error) {
	var p EventParams
	if err := proto.Unmarshal(params, &p); err != nil {
		return nil, errors.Wrap(errors.ErrInput, "malformed event parameters")
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	handle, err := v.idSeq.NextVal(db)
	if err != nil {
		return nil, errors.Wrap(err, "cannot acquire handle")
	}
	c := EventCondition{
		Attestor:    p.Attestor,
		Fingerprint: p.Fingerprint,
	}
	if err := v.bucket.Put(db, handle, &c); err != nil {
		return nil, err
	}
	return handle, nil
}

func (v *EventVerifier) Verify(ctx tillit.Context, db tillit.ReadOnlyKVStore, beneficiary tillit.Address, handle []byte) (bool, error) {
	var c EventCondition
	if err := v.bucket.One(db, handle, &c); err != nil {
		return false, err
	}
	return c.Attested, nil
}

// Attest marks the condition as confirmed. Only the registered attestor can
// do so, and only with a proof that hashes to the stored fingerprint. A
// second attestation fails without changing state.
func (v *EventVerifier) Attest(ctx tillit.Context, db tillit.KVStore, auth x.Authenticator, handle, proof []byte) error {
	var c EventCondition
	if err := v.bucket.One(db, handle, &c); err != nil {
		return err
	}
	if !auth.HasAddress(ctx, c.Attestor) {
		return errors.Wrapf(ErrNotAttestor, "expected %s", c.Attestor)
	}
	if c.Attested {
		return ErrAlreadyAttested
	}
	if !bytes.Equal(Fingerprint(proof), c.Fingerprint) {
		return errors.Wrap(errors.ErrInput, "proof does not match the fingerprint")
	}
	c.Attested = true
	return v.bucket.Put(db, handle, &c)
}
