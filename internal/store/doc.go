// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying document store from the
// application's core logic; the platform/mongo and platform/postgres
// packages provide the implementations.
package store
