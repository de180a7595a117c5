/*
Package escrow implements conditional custody of funds.

An escrow locks an amount from the source until a condition, evaluated by a
pluggable verifier policy, is met. Anyone may then trigger the release to
the destination. Until resolution the source can unconditionally take the
funds back. Fund movement is concentrated in the Ledger so the auditable
surface stays small; the handlers deal with policy only.
*/
package escrow
