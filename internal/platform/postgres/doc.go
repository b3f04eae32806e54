// Package postgres provides PostgreSQL implementations of the persistence
// interfaces defined in internal/store. Users and restaurants live in their
// own tables; a restaurant's menu is kept as a JSONB document so the
// embedded-menu model of the document store carries over unchanged.
//
// The schema is managed with goose; migrations are embedded in the binary.
package postgres
