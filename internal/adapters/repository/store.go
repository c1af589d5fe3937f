// Package repository keeps the notifications currently posted to the
// in-memory tray.
package repository

import (
	"context"

	"github.com/okian/liveupdates/internal/domain/model"
)

// Store provides read/write access to posted notifications, keyed by id.
type Store interface {
	// Post shows n, replacing any notification already posted with n.ID.
	// Returns true when an existing notification was replaced.
	Post(ctx context.Context, n model.Notification) (bool, error)

	// Get returns the notification posted under id or ErrNotFound.
	Get(ctx context.Context, id int) (model.Notification, error)

	// List returns posted notifications ordered by id.
	List(ctx context.Context) ([]model.Notification, error)

	// Dismiss removes a notification the way a user swipe would.
	// Ongoing notifications cannot be dismissed (ErrOngoing).
	Dismiss(ctx context.Context, id int) error

	// Cancel removes a notification regardless of its ongoing flag.
	Cancel(ctx context.Context, id int) error

	// Count returns the number of posted notifications.
	Count(ctx context.Context) int
}
