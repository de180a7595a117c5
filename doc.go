/*
Package tillit defines the common vocabulary that glues the extension
packages together: addresses and conditions, the key-value store
contracts, message and transaction interfaces, and context helpers
carrying per-block information.

Extensions live under x/ and depend only on the interfaces declared
here, never on each other's concrete types. The escrow registry, the
condition verifiers and the cash ledger are wired together by the
application in app/.
*/
package tillit
