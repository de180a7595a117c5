package cond

import "golang.org/x/crypto/blake2b"

// Fingerprint reduces an arbitrary event payload to the fixed size digest
// stored inside an event condition. Attestation proofs are matched against
// this digest, never against the raw payload.
func Fingerprint(payload []byte) []byte {
	sum := blake2b.Sum256(payload)
	return sum[:]
}
