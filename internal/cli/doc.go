// Package cli is the command-line front end of the secure-vault client.
//
// Every vault command opens a client [client.App], prompts for the master
// password, logs in, runs and closes the session before returning. The key
// never outlives the command. The tui command hands the same App to the
// interactive interface in package tui.
package cli
