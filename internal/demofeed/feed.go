// Package demofeed replays the sample sequences into the service on a cron
// schedule, one step of each sequence per tick.
package demofeed

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	service "github.com/okian/liveupdates/internal/app"
	"github.com/okian/liveupdates/internal/domain/model"
	"github.com/okian/liveupdates/internal/samples"
	"github.com/okian/liveupdates/pkg/logger"
)

const (
	tickTimeout = 10 * time.Second
	stopTimeout = 5 * time.Second
)

// Enqueuer accepts events for presentation.
type Enqueuer interface {
	Enqueue(ctx context.Context, ev model.Event) (model.Event, service.Outcome, error)
}

// Feed schedules sample replays.
type Feed struct {
	cron     *cron.Cron
	enqueuer Enqueuer
	schedule string
	logger   logger.Logger

	mu        sync.Mutex
	sequences [][]model.Event
	step      int
}

// New constructs a Feed. The schedule uses standard cron syntax or a
// descriptor such as "@every 30s".
func New(schedule string, enqueuer Enqueuer, l logger.Logger) (*Feed, error) {
	if l == nil {
		l = logger.Get().Named("demofeed")
	}
	f := &Feed{
		cron:      cron.New(),
		enqueuer:  enqueuer,
		schedule:  schedule,
		logger:    l,
		sequences: [][]model.Event{samples.Delivery(), samples.Score()},
	}
	if _, err := f.cron.AddFunc(schedule, f.run); err != nil {
		return nil, fmt.Errorf("schedule demo feed %q: %w", schedule, err)
	}
	return f, nil
}

// Start begins the schedule.
func (f *Feed) Start(ctx context.Context) {
	f.logger.Info(ctx, "starting demo feed", logger.String("cron", f.schedule))
	f.cron.Start()
}

// Stop halts the schedule and waits for a running tick to finish.
func (f *Feed) Stop(ctx context.Context) {
	stopCtx := f.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	case <-time.After(stopTimeout):
	}
	f.logger.Info(ctx, "demo feed stopped")
}

func (f *Feed) run() {
	ctx, cancel := context.WithTimeout(context.Background(), tickTimeout)
	defer cancel()
	if err := f.Tick(ctx); err != nil {
		f.logger.Error(ctx, "demo feed tick failed", logger.Error(err))
	}
}

// Tick enqueues the current step of every sequence and advances. A
// sequence that has finished restarts from its first step.
func (f *Feed) Tick(ctx context.Context) error {
	f.mu.Lock()
	step := f.step
	f.step++
	f.mu.Unlock()

	for _, seq := range f.sequences {
		ev := seq[step%len(seq)]
		ev.ID = uuid.NewString()
		if _, _, err := f.enqueuer.Enqueue(ctx, ev); err != nil {
			return fmt.Errorf("enqueue demo step %d: %w", step, err)
		}
	}
	f.logger.Debug(ctx, "demo feed advanced", logger.Int("step", step))
	return nil
}
