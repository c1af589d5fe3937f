package service

import "errors"

// Sentinel error kinds for this package.
var (
	ErrNotStarted   = errors.New("service not started")
	ErrNoLiveUpdate = errors.New("event carries no live update")
)
