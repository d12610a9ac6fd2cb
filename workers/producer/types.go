package producer

import "time"

// Source yields successive work units for one run. Next is called until
// Stopped reports true; a value returned once Stopped is true is not a
// work unit. Implementations are driven from a single goroutine and
// need no internal locking.
type Source[T any] interface {
	Next() T
	Stopped() bool
}

// Sink is the producer-facing side of the delivery channel.
type Sink[T any] interface {
	Acquire() error
	Send(T) error
	Release()
}

// PrepareFunc finalizes a work unit right before sending. A failure
// skips only that send, the run continues.
type PrepareFunc[T any] func(T) (T, error)

// RunStats describes one finished producer run.
type RunStats struct {
	Units   int
	Sent    int
	Skipped int
	Err     error

	CreatedAt  time.Time
	StartedAt  time.Time
	FinishedAt time.Time
}
