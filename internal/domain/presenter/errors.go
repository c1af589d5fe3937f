package presenter

import "errors"

// Sentinel error kinds for this package.
var (
	ErrRender              = errors.New("render failed")
	ErrInvalidNotification = errors.New("invalid notification")
)
