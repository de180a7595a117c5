// Package currency maintains the bounded allow-list of tokens that escrows
// may be denominated in. Registration is restricted to the configured
// authority and the list never shrinks.
package currency
