// Package workers runs the client's background jobs.
//
// A Worker is started with a context and stopped explicitly; Stop blocks
// until the worker's goroutine has exited.
package workers

import "context"

// Worker is a background job.
type Worker interface {
	// Start launches the job. Calling Start on a running worker restarts
	// it.
	Start(ctx context.Context)

	// Stop cancels the job and waits for it to exit. It is a no-op on a
	// stopped worker.
	Stop()
}

// Lockable is anything the idle lock can destroy. *crypto.Session
// satisfies it.
type Lockable interface {
	Destroy()
}
