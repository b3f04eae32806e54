// Package service contains the application use cases: account registration
// and login for users and restaurants, and catalog management (adding
// restaurants and changing their menus).
//
// Services depend on the persistence interfaces in internal/store and on the
// token and password primitives in service/auth, never on a concrete backend.
// They return sentinel errors (ErrInvalidCredentials, ErrForbidden) or wrapped
// store and domain errors, which the API layer maps to HTTP status codes.
package service
