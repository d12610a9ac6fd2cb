package relay

import "github.com/pkg/errors"

var (
	// ErrChannelClosed signals usage of a channel past its final release.
	// Acquiring or sending at that point is a lifecycle bug on the caller
	// side, not a condition worth retrying.
	ErrChannelClosed = errors.New("channel fully closed")

	// ErrQueueFull is returned by TrySend when no queue slot is free.
	ErrQueueFull = errors.New("delivery queue full")
)
