package repository

import "errors"

// Sentinel kinds for tray errors.
var (
	ErrNotFound = errors.New("notification not found")
	ErrOngoing  = errors.New("notification is ongoing")
	ErrClosed   = errors.New("tray closed")
)
