package queue

import "errors"

// Sentinel error kinds for this package.
var (
	ErrFull   = errors.New("queue full")
	ErrClosed = errors.New("queue closed")
)
