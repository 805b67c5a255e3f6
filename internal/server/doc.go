// Package server wires and runs the vault server's transports.
//
// The HTTP listener serves the REST API; an optional gRPC listener serves
// the standard health checking protocol. Both start together and shut down
// gracefully on SIGINT, SIGTERM or SIGQUIT.
package server
