package adapter

import "errors"

// Errors mapped from HTTP status codes. The server's message follows the
// sentinel after ": ".
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrTooManyRequests     = errors.New("too many requests")
	ErrBadGateway          = errors.New("bad gateway")
	ErrInternalServerError = errors.New("internal server error")
	ErrUnexpectedStatus    = errors.New("unexpected status")
)

var (
	// ErrNoToken is returned by authenticated calls made before Login.
	ErrNoToken = errors.New("no bearer token, log in first")

	// ErrTransport wraps failures that produced no HTTP response at all.
	ErrTransport = errors.New("server is unreachable")

	// ErrInvalidAddress is returned by NewHTTPServerAdapter.
	ErrInvalidAddress = errors.New("invalid server address")
)
