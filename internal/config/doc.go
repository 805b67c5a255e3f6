// Package config loads, merges and validates secure-vault configuration.
//
// Configuration is assembled from environment variables, command-line flags,
// an optional JSON file and built-in defaults. A field is taken from the
// first source that sets it.
//
// The entry points are [GetStructuredConfig] for the server and
// [GetClientConfig] for the client.
package config
