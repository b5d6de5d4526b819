// Package domain defines the core business entities of the Pium plant-growing
// application: users and their point balances, the plant catalog (species and
// their quiz steps), per-user plant instances with their growth state, the
// append-only attempt and ledger records, and the supporting expert-tip and
// moderation entities.
//
// Entities validate themselves via Validate methods and expose sentinel errors
// so callers can match failures with errors.Is. The package has no persistence
// concerns; stores and services build on top of it.
package domain
