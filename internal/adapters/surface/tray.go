package surface

import (
	"context"
	"fmt"

	"github.com/okian/liveupdates/internal/adapters/repository"
	"github.com/okian/liveupdates/internal/domain/model"
)

// Tray posts notifications to a repository.Store.
type Tray struct {
	store    repository.Store
	channels channelSet
}

// NewTray creates a tray surface over store.
func NewTray(store repository.Store) *Tray {
	return &Tray{store: store}
}

// Name implements Surface.
func (t *Tray) Name() string { return NameTray }

// RegisterChannels implements Surface.
func (t *Tray) RegisterChannels(_ context.Context, channels []model.Channel) error {
	t.channels.register(channels)
	return nil
}

// Display implements Surface.
func (t *Tray) Display(ctx context.Context, n model.Notification) error {
	if _, err := t.channels.lookup(n.ChannelID); err != nil {
		return err
	}
	if _, err := t.store.Post(ctx, n); err != nil {
		return fmt.Errorf("post notification %d: %w", n.ID, err)
	}
	return nil
}

// Dismiss implements Surface.
func (t *Tray) Dismiss(ctx context.Context, id int) error {
	return t.store.Dismiss(ctx, id)
}

// Cancel implements Surface.
func (t *Tray) Cancel(ctx context.Context, id int) error {
	return t.store.Cancel(ctx, id)
}
