// Package surface delivers rendered notifications to wherever the user
// sees them: the in-memory tray, the desktop, or an ntfy topic.
package surface

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/okian/liveupdates/internal/domain/model"
	"github.com/okian/liveupdates/pkg/metrics"
)

// Sentinel error kinds for this package.
var (
	ErrChannelsNotRegistered = errors.New("channels not registered")
	ErrUnknownChannel        = errors.New("unknown channel")
	ErrNoSurfaces            = errors.New("no surfaces configured")
	ErrUnknownSurface        = errors.New("unknown surface")
)

// Surface names accepted in configuration.
const (
	NameTray    = "tray"
	NameDesktop = "desktop"
	NameNtfy    = "ntfy"
)

// Surface displays notifications.
type Surface interface {
	// Name identifies the surface in logs and metrics.
	Name() string

	// RegisterChannels declares the channels notifications may be posted
	// to. Only the first call has an effect; later calls are no-ops.
	RegisterChannels(ctx context.Context, channels []model.Channel) error

	// Display shows n, replacing a notification already shown under n.ID
	// where the surface supports it.
	Display(ctx context.Context, n model.Notification) error

	// Dismiss removes the notification shown under id the way a user
	// swipe would. Surfaces that keep ongoing notifications refuse with
	// repository.ErrOngoing, checked and removed in one step.
	Dismiss(ctx context.Context, id int) error

	// Cancel withdraws the notification shown under id regardless of its
	// ongoing flag.
	Cancel(ctx context.Context, id int) error
}

// channelSet records the channels registered on a surface.
type channelSet struct {
	once sync.Once
	mu   sync.RWMutex
	byID map[string]model.Channel
}

func (c *channelSet) register(channels []model.Channel) {
	c.once.Do(func() {
		byID := make(map[string]model.Channel, len(channels))
		for _, ch := range channels {
			byID[ch.ID] = ch
		}
		c.mu.Lock()
		c.byID = byID
		c.mu.Unlock()
	})
}

func (c *channelSet) lookup(id string) (model.Channel, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.byID == nil {
		return model.Channel{}, ErrChannelsNotRegistered
	}
	ch, ok := c.byID[id]
	if !ok {
		return model.Channel{}, fmt.Errorf("%w: %q", ErrUnknownChannel, id)
	}
	return ch, nil
}

// instrumented records display outcome and latency for the wrapped surface.
type instrumented struct {
	Surface
}

// Instrument wraps s so every Display is counted in metrics under s.Name().
func Instrument(s Surface) Surface {
	return instrumented{Surface: s}
}

func (i instrumented) Display(ctx context.Context, n model.Notification) error {
	start := time.Now()
	err := i.Surface.Display(ctx, n)
	metrics.RecordDisplay(i.Name(), err == nil, float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.RecordErrorByComponent("surface", i.Name())
	}
	return err
}
