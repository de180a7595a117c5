/*
Package cond implements pluggable release conditions for escrows.

A condition policy is a predicate evaluator. Each policy owns its own
verification state, stored under per-policy handles, and exposes two
operations through the Verifier interface: Create parses opaque parameters
into a fresh condition instance, Verify evaluates the predicate. The escrow
extension depends only on the Verifier interface, so new policies can be
added without touching fund-custody code.

Three policies are provided:

Deadline releases once the chain reaches a given block height. It keeps no
mutable state; verification is a pure function of the chain clock and is
monotonic (false to true, never back).

Event releases once a registered attestor confirms that an external event,
identified by its fingerprint, has happened. The attestor confirms through
the cond/attest message, exactly once.

Threshold releases once enough members of a signer set have approved through
the cond/approve message. Approvals are a subset of the signer set and each
signer may approve only once.
*/
package cond
