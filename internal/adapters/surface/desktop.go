package surface

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/gen2brain/beeep"

	"github.com/okian/liveupdates/internal/domain/model"
)

// NotifyFunc shows a desktop notification.
type NotifyFunc func(title, message, icon string) error

// Desktop shows notifications through the operating system's notifier.
// Desktop notifiers cannot replace a popup by id, so an update whose
// content matches the last popup for the same id is skipped.
type Desktop struct {
	icon     string
	notify   NotifyFunc
	channels channelSet

	mu   sync.Mutex
	last map[int]string
}

// DesktopOption configures a Desktop surface.
type DesktopOption func(*Desktop)

// WithIcon sets the icon path passed to the notifier.
func WithIcon(path string) DesktopOption {
	return func(d *Desktop) {
		d.icon = path
	}
}

// WithNotifyFunc replaces the notifier, mostly for tests.
func WithNotifyFunc(fn NotifyFunc) DesktopOption {
	return func(d *Desktop) {
		if fn != nil {
			d.notify = fn
		}
	}
}

// NewDesktop creates a desktop surface backed by beeep.
func NewDesktop(opts ...DesktopOption) *Desktop {
	d := &Desktop{
		notify: beeep.Notify,
		last:   make(map[int]string),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Name implements Surface.
func (d *Desktop) Name() string { return NameDesktop }

// RegisterChannels implements Surface.
func (d *Desktop) RegisterChannels(_ context.Context, channels []model.Channel) error {
	d.channels.register(channels)
	return nil
}

// Display implements Surface.
func (d *Desktop) Display(_ context.Context, n model.Notification) error {
	if _, err := d.channels.lookup(n.ChannelID); err != nil {
		return err
	}
	message := desktopMessage(n)
	key := n.Title + "\x00" + message

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.last[n.ID] == key {
		return nil
	}
	if err := d.notify(n.Title, message, d.icon); err != nil {
		return fmt.Errorf("desktop notify: %w", err)
	}
	d.last[n.ID] = key
	return nil
}

// Dismiss implements Surface. A popup has no ongoing state to protect.
func (d *Desktop) Dismiss(ctx context.Context, id int) error {
	return d.Cancel(ctx, id)
}

// Cancel implements Surface. Popups expire on their own; only the
// duplicate-suppression state is cleared.
func (d *Desktop) Cancel(_ context.Context, id int) error {
	d.mu.Lock()
	delete(d.last, id)
	d.mu.Unlock()
	return nil
}

func desktopMessage(n model.Notification) string {
	lines := []string{n.Text}
	if n.SubText != "" {
		lines = append(lines, n.SubText)
	}
	return strings.Join(lines, "\n")
}
