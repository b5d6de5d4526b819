// Package store defines the persistence interfaces for the application's
// entities plus the shared plumbing they build on: the DBTX abstraction that
// lets every store run against either a *sql.DB or a *sql.Tx, the
// RunInTransaction helper that services use for atomic multi-step mutations,
// and the sentinel errors store implementations translate database failures
// into.
package store
