package server

// Server runs the vault API listeners of one process.
type Server interface {
	// RunServer blocks until SIGINT, SIGTERM or SIGQUIT, then shuts every
	// listener down.
	RunServer()

	Shutdown()
}
