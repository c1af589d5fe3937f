// Package presenter turns received push events into display requests.
//
// A Presenter is pure: it never talks to a surface. Callers classify and
// render an event with Present and decide what to do with the Decision.
package presenter

import (
	"fmt"
	"time"

	"github.com/okian/liveupdates/internal/domain/model"
)

// Channel ids used by the rendered notifications.
const (
	LiveUpdatesChannelID  = "live_updates"
	TestProgressChannelID = "test_progress"
)

// Kind is the presentation path chosen for an event.
type Kind int

// Presentation paths, in classification priority order.
const (
	KindNone Kind = iota
	KindDelivery
	KindScore
)

func (k Kind) String() string {
	switch k {
	case KindDelivery:
		return "delivery"
	case KindScore:
		return "score"
	default:
		return "none"
	}
}

// Decision is the outcome of presenting one event.
type Decision struct {
	Kind Kind
	// SuppressDefault is set when the provider's default rendering must be
	// replaced by Notification.
	SuppressDefault bool
	Notification    *model.Notification
}

// Presenter renders delivery and score events.
type Presenter struct {
	channelID string
	now       func() time.Time
}

// Option applies a configuration option to the Presenter.
type Option func(*Presenter)

// WithChannelID overrides the channel live updates are posted to.
func WithChannelID(id string) Option {
	return func(p *Presenter) {
		if id != "" {
			p.channelID = id
		}
	}
}

// WithClock sets the time source stamped on notifications.
func WithClock(now func() time.Time) Option {
	return func(p *Presenter) {
		if now != nil {
			p.now = now
		}
	}
}

// New constructs a Presenter.
func New(opts ...Option) *Presenter {
	p := &Presenter{
		channelID: LiveUpdatesChannelID,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Classify picks the presentation path. A delivery object always wins over
// a score object.
func Classify(ev model.Event) Kind {
	if ev.Object(model.DeliveryKey) != nil {
		return KindDelivery
	}
	if ev.Object(model.ScoreKey) != nil {
		return KindScore
	}
	return KindNone
}

// Present classifies ev and renders it. KindNone is not an error: the
// returned Decision leaves the default rendering in place. A render error
// still reports the chosen Kind so callers can account for it.
func (p *Presenter) Present(ev model.Event) (d Decision, err error) {
	d.Kind = Classify(ev)
	if d.Kind == KindNone {
		return d, nil
	}

	defer func() {
		if r := recover(); r != nil {
			d.Notification = nil
			err = fmt.Errorf("%w: %s: %v", ErrRender, d.Kind, r)
		}
	}()

	var n model.Notification
	switch d.Kind {
	case KindDelivery:
		n, err = p.RenderDelivery(model.DeliveryFromData(ev.Object(model.DeliveryKey)))
	case KindScore:
		n, err = p.RenderScore(model.ScoreFromData(ev.Object(model.ScoreKey)))
	}
	if err != nil {
		return d, err
	}
	d.SuppressDefault = true
	d.Notification = &n
	return d, nil
}
