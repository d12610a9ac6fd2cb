package relay

// Invoker is the contract required from whatever drives the consumer
// side: a single-threaded execution context that can run a function at
// the next opportunity and that exposes its own teardown.
type Invoker interface {
	// Invoke schedules fn on the consumer context. It returns false once
	// the context is torn down; fn never runs in that case.
	Invoke(fn func()) bool

	// Done is closed when the consumer context tears down.
	Done() <-chan struct{}
}
