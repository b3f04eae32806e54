// Package api handles incoming HTTP requests, request validation and
// response formatting. It adapts HTTP to the account and catalog services,
// translating their errors into status codes and the client-facing messages.
package api
