package cond

import (
	"context"
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tillit-one/tillit"
	"github.com/tillit-one/tillit/errors"
	"github.com/tillit-one/tillit/store"
	"github.com/tillit-one/tillit/tillittest"
)

func TestAttestMsgValidate(t *testing.T) {
	valid := AttestMsg{
		ConditionID: tillittest.SequenceID(1),
		Proof:       []byte("payload"),
	}
	assert.Equal(t, "cond/attest", valid.Path())
	require.NoError(t, valid.Validate())

	shortID := valid
	shortID.ConditionID = []byte("x")
	assert.True(t, errors.ErrInput.Is(shortID.Validate()))

	noProof := valid
	noProof.Proof = nil
	assert.True(t, errors.ErrEmpty.Is(noProof.Validate()))

	bigProof := valid
	bigProof.Proof = make([]byte, MaxProofSize+1)
	assert.True(t, errors.ErrInput.Is(bigProof.Validate()))
}

func TestApproveMsgValidate(t *testing.T) {
	valid := ApproveMsg{ConditionID: tillittest.SequenceID(1)}
	assert.Equal(t, "cond/approve", valid.Path())
	require.NoError(t, valid.Validate())

	var empty ApproveMsg
	assert.True(t, errors.ErrInput.Is(empty.Validate()))
}

func TestAttestHandler(t *testing.T) {
	db := store.MemStore()
	events := NewEventVerifier()

	attestor := tillittest.NewCondition()
	proof := []byte("bill of lading 7712")
	params, err := proto.Marshal(&EventParams{
		Attestor:    attestor.Address(),
		Fingerprint: Fingerprint(proof),
	})
	require.NoError(t, err)
	handle, err := events.Create(db, params)
	require.NoError(t, err)

	h := AttestHandler{
		auth:   &tillittest.Auth{Signer: attestor},
		events: events,
	}
	tx := &tillittest.Tx{Msg: &AttestMsg{ConditionID: handle, Proof: proof}}
	ctx := context.Background()

	cres, err := h.Check(ctx, db, tx)
	require.NoError(t, err)
	assert.Equal(t, attestTxCost, cres.GasAllocated)

	dres, err := h.Deliver(ctx, db, tx)
	require.NoError(t, err)
	require.NotEmpty(t, dres.Tags)
	assert.Equal(t, "attest", string(dres.Tags[0].Value))

	ok, err := events.Verify(ctx, db, tillittest.NewAddress(), handle)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = h.Deliver(ctx, db, tx)
	assert.True(t, ErrAlreadyAttested.Is(err))
}

func TestApproveHandler(t *testing.T) {
	db := store.MemStore()
	thresholds := NewThresholdVerifier()

	signer := tillittest.NewCondition()
	params, err := proto.Marshal(&ThresholdParams{
		Signers:  []tillit.Address{signer.Address()},
		Required: 1,
	})
	require.NoError(t, err)
	handle, err := thresholds.Create(db, params)
	require.NoError(t, err)

	h := ApproveHandler{
		auth:       &tillittest.Auth{Signer: signer},
		thresholds: thresholds,
	}
	tx := &tillittest.Tx{Msg: &ApproveMsg{ConditionID: handle}}
	ctx := context.Background()

	_, err = h.Check(ctx, db, tx)
	require.NoError(t, err)

	_, err = h.Deliver(ctx, db, tx)
	require.NoError(t, err)

	ok, err := thresholds.Verify(ctx, db, tillittest.NewAddress(), handle)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = h.Deliver(ctx, db, tx)
	assert.True(t, ErrAlreadySigned.Is(err))
}
