// Package worker runs the dispatcher that turns queued push events into
// displayed notifications, one event at a time.
package worker

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/okian/liveupdates/internal/domain/model"
	"github.com/okian/liveupdates/internal/domain/presenter"
	"github.com/okian/liveupdates/pkg/logger"
	"github.com/okian/liveupdates/pkg/metrics"
)

// Queue defines how the dispatcher receives events.
type Queue interface {
	Dequeue(ctx context.Context) <-chan model.Event
}

// Presenter classifies and renders an event.
type Presenter interface {
	Present(ev model.Event) (presenter.Decision, error)
}

// Displayer shows rendered notifications.
type Displayer interface {
	Display(ctx context.Context, n model.Notification) error
}

// Stats counts dispatcher outcomes.
type Stats struct {
	Processed     int64 `json:"processed"`
	Displayed     int64 `json:"displayed"`
	Ignored       int64 `json:"ignored"`
	RenderErrors  int64 `json:"render_errors"`
	DisplayErrors int64 `json:"display_errors"`
}

// Dispatcher handles events strictly in arrival order. Failures are logged
// and counted; the event is then dropped.
type Dispatcher struct {
	queue     Queue
	presenter Presenter
	displayer Displayer
	name      string

	processed     atomic.Int64
	displayed     atomic.Int64
	ignored       atomic.Int64
	renderErrors  atomic.Int64
	displayErrors atomic.Int64

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// NewDispatcher creates a dispatcher. Call Run to start it.
func NewDispatcher(queue Queue, p Presenter, d Displayer, opts ...Option) *Dispatcher {
	w := &Dispatcher{
		queue:     queue,
		presenter: p,
		displayer: d,
		name:      "dispatcher",
		shutdown:  make(chan struct{}),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = logger.Get().Named(w.name)
	}
	return w
}

// Run consumes events until the queue is drained and closed, ctx is
// cancelled, or Shutdown gives up waiting.
func (w *Dispatcher) Run(ctx context.Context) {
	defer close(w.done)

	events := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if err := w.Handle(ctx, ev); err != nil {
				w.logger.Error(ctx, "event dropped",
					logger.String("event_id", ev.ID),
					logger.Error(err),
				)
			}
		}
	}
}

// Handle presents one event and displays the result.
func (w *Dispatcher) Handle(ctx context.Context, ev model.Event) error { //nolint:gocritic // hugeParam: Event is passed by value through the channel
	w.processed.Add(1)

	decision, err := w.presenter.Present(ev)
	kind := decision.Kind.String()
	if err != nil {
		w.renderErrors.Add(1)
		metrics.RecordRenderError(kind)
		metrics.RecordErrorByComponent("dispatcher", "render_error")
		return fmt.Errorf("present %s event: %w", kind, err)
	}
	metrics.RecordEventPresented(kind)

	if !decision.SuppressDefault || decision.Notification == nil {
		w.ignored.Add(1)
		w.logger.Debug(ctx, "no live update in event, default rendering kept",
			logger.String("event_id", ev.ID),
		)
		return nil
	}

	start := time.Now()
	if err := w.displayer.Display(ctx, *decision.Notification); err != nil {
		w.displayErrors.Add(1)
		metrics.RecordErrorByComponent("dispatcher", "display_error")
		return fmt.Errorf("display notification %d: %w", decision.Notification.ID, err)
	}
	w.displayed.Add(1)
	w.logger.Debug(ctx, "live update displayed",
		logger.String("event_id", ev.ID),
		logger.String("kind", kind),
		logger.Int("notification_id", decision.Notification.ID),
		logger.Duration("took", time.Since(start)),
	)
	return nil
}

// Stats returns a snapshot of the outcome counters.
func (w *Dispatcher) Stats() Stats {
	return Stats{
		Processed:     w.processed.Load(),
		Displayed:     w.displayed.Load(),
		Ignored:       w.ignored.Load(),
		RenderErrors:  w.renderErrors.Load(),
		DisplayErrors: w.displayErrors.Load(),
	}
}

// Shutdown closes the queue when it supports closing and waits for the
// remaining events to be handled. If ctx expires first the dispatcher is
// told to stop immediately.
func (w *Dispatcher) Shutdown(ctx context.Context) error {
	if closer, ok := w.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			w.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		close(w.shutdown)
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// Done is closed when Run returns.
func (w *Dispatcher) Done() <-chan struct{} { return w.done }
