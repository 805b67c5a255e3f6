// Package http implements the REST transport of the secure-vault server.
//
// It exposes route wiring, request handlers, and middleware. Cross-cutting
// concerns such as authentication, login throttling, request tracing,
// access logging and compression are handled in this package before
// requests are delegated to the service layer. Vault fields arrive and
// leave as opaque cipher strings; nothing here decrypts them.
package http
