package cond

import (
	"github.com/tillit-one/tillit"
	"github.com/tillit-one/tillit/errors"
)

// Verifier is the capability every condition policy must provide. Handles
// returned by Create are opaque to the caller and unique within one policy
// only; each escrow owns exactly one handle and handles are never shared.
type Verifier interface {
	// Create parses the opaque parameters into the policy's own record
	// shape, stores a fresh condition instance and returns its handle.
	// It is purely additive and never overwrites an existing handle.
	Create(db tillit.KVStore, params []byte) ([]byte, error)

	// Verify evaluates the policy predicate for the given beneficiary
	// and handle. It fails with ErrNotFound on an unknown handle and
	// performs no state mutation, so repeated calls are safe.
	Verify(ctx tillit.Context, db tillit.ReadOnlyKVStore, beneficiary tillit.Address, handle []byte) (bool, error)
}

// PolicyRef derives the reference address of a named policy. Escrows store
// this address next to the handle so the right verifier can be located
// again at release time.
func PolicyRef(name string) tillit.Address {
	return tillit.NewCondition("cond", "policy", []byte(name)).Address()
}

// Registry resolves policy reference addresses into Verifier
// implementations. The escrow extension holds one instance and never talks
// to the concrete policies.
type Registry struct {
	verifiers map[string]Verifier
}

// NewRegistry returns an empty registry. Use Register to add policies.
func NewRegistry() *Registry {
	return &Registry{verifiers: make(map[string]Verifier)}
}

// StandardRegistry wires all policies this package ships with and returns
// the concrete verifiers as well, as the attest and approve handlers need
// them directly.
func StandardRegistry() (*Registry, *DeadlineVerifier, *EventVerifier, *ThresholdVerifier) {
	deadlines := NewDeadlineVerifier()
	events := NewEventVerifier()
	thresholds := NewThresholdVerifier()

	r := NewRegistry()
	r.Register(DeadlinePolicyName, deadlines)
	r.Register(EventPolicyName, events)
	r.Register(ThresholdPolicyName, thresholds)
	return r, deadlines, events, thresholds
}

// Register adds a named policy. Registering the same name twice is a coding
// error and panics, as registration only happens during the setup phase.
func (r *Registry) Register(name string, v Verifier) {
	ref := PolicyRef(name).String()
	if _, ok := r.verifiers[ref]; ok {
		panic("condition policy already registered: " + name)
	}
	r.verifiers[ref] = v
}

// Lookup returns the Verifier registered under this reference address.
func (r *Registry) Lookup(ref tillit.Address) (Verifier, error) {
	v, ok := r.verifiers[ref.String()]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownPolicy, "ref %s", ref)
	}
	return v, nil
}
