// Package postgres contains the PostgreSQL implementations of the store
// interfaces. Every store accepts a store.DBTX so it runs equally against a
// pooled connection or a transaction, and translates driver errors into the
// store package's sentinel errors.
package postgres
