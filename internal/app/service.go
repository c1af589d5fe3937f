// Package service wires the presenter, the event queue, the dispatcher and
// the display surfaces behind the operations the HTTP API exposes.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	eventqueue "github.com/okian/liveupdates/internal/adapters/mq/queue"
	"github.com/okian/liveupdates/internal/adapters/mq/worker"
	"github.com/okian/liveupdates/internal/adapters/repository"
	"github.com/okian/liveupdates/internal/adapters/surface"
	"github.com/okian/liveupdates/internal/domain/dedupe"
	"github.com/okian/liveupdates/internal/domain/model"
	"github.com/okian/liveupdates/internal/domain/presenter"
	"github.com/okian/liveupdates/pkg/logger"
	"github.com/okian/liveupdates/pkg/metrics"
)

const (
	defaultQueueSize       = 1024
	defaultDedupeSize      = 4096
	defaultShutdownTimeout = 5 * time.Second
)

// Outcome of submitting an event.
type Outcome int

// Enqueue outcomes.
const (
	Accepted Outcome = iota
	Duplicate
)

func (o Outcome) String() string {
	if o == Duplicate {
		return "duplicate"
	}
	return "accepted"
}

// Stats is a snapshot of service state.
type Stats struct {
	Started       bool         `json:"started"`
	Surfaces      string       `json:"surfaces"`
	QueueLength   int          `json:"queue_length"`
	QueueCapacity int          `json:"queue_capacity"`
	DedupeSize    int          `json:"dedupe_size"`
	DedupeEntries int64        `json:"dedupe_entries"`
	Notifications int          `json:"notifications"`
	Dispatcher    worker.Stats `json:"dispatcher"`
}

// Service owns the live updates pipeline.
type Service struct {
	mu sync.RWMutex

	presenter  *presenter.Presenter
	tray       *repository.MemoryTray
	deduper    dedupe.Deduper
	eventQueue eventqueue.Queue
	dispatcher *worker.Dispatcher
	surface    surface.Surface

	queueSize    int
	dedupeSize   int
	surfaceNames []string
	surfaceDeps  surface.Deps
	custom       surface.Surface

	started   bool
	cancelRun context.CancelFunc

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithQueueSize sets the maximum number of pending events.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets how many recent message ids are remembered. Zero
// remembers every id.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size >= 0 {
			s.dedupeSize = size
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithPresenter replaces the default presenter.
func WithPresenter(p *presenter.Presenter) Option {
	return func(s *Service) {
		if p != nil {
			s.presenter = p
		}
	}
}

// WithSurfaces selects the configured surfaces by name. The tray surface
// is always backed by the service's own tray.
func WithSurfaces(names []string, deps surface.Deps) Option {
	return func(s *Service) {
		if len(names) > 0 {
			s.surfaceNames = names
			s.surfaceDeps = deps
		}
	}
}

// WithSurface displays through sf instead of configured surfaces.
func WithSurface(sf surface.Surface) Option {
	return func(s *Service) {
		if sf != nil {
			s.custom = sf
		}
	}
}

// New constructs a Service. Call Start before submitting events.
func New(opts ...Option) *Service {
	s := &Service{
		presenter:    presenter.New(),
		queueSize:    defaultQueueSize,
		dedupeSize:   defaultDedupeSize,
		surfaceNames: []string{surface.NameTray},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start builds the pipeline, registers notification channels on every
// surface exactly once and starts the dispatcher.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	s.tray = repository.NewMemoryTray(ctx)
	s.surface = s.custom
	if s.surface == nil {
		deps := s.surfaceDeps
		deps.Store = s.tray
		multi, err := surface.Build(s.surfaceNames, deps)
		if err != nil {
			return fmt.Errorf("build surfaces: %w", err)
		}
		s.surface = multi
	}

	channels := s.presenter.Channels()
	if err := s.surface.RegisterChannels(ctx, channels); err != nil {
		return fmt.Errorf("register channels: %w", err)
	}
	metrics.UpdateChannelsRegistered(len(channels))

	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))
	s.eventQueue = eventqueue.NewInMemoryQueue(eventqueue.WithCapacity(s.queueSize))
	s.dispatcher = worker.NewDispatcher(s.eventQueue, s.presenter, s.surface,
		worker.WithLogger(s.logger.Named("dispatcher")),
	)

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancelRun = cancel
	go s.dispatcher.Run(runCtx)

	s.started = true
	s.logger.Info(ctx, "live updates service started",
		logger.String("surfaces", s.surface.Name()),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
		logger.Int("channels", len(channels)),
	)
	return nil
}

// Stop drains the queue and shuts the pipeline down.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return nil
	}
	s.logger.Info(ctx, "stopping live updates service")

	shutdownCtx, cancel := context.WithTimeout(ctx, defaultShutdownTimeout)
	defer cancel()
	err := s.dispatcher.Shutdown(shutdownCtx)
	s.cancelRun()
	_ = s.tray.Close()

	s.started = false
	s.logger.Info(ctx, "live updates service stopped")
	return err
}

// Started reports whether Start has completed.
func (s *Service) Started() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started
}

// Enqueue submits a received push event. An event without an id gets a
// generated one. A message id seen recently is reported as Duplicate and
// not presented again.
func (s *Service) Enqueue(ctx context.Context, ev model.Event) (model.Event, Outcome, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return ev, Accepted, ErrNotStarted
	}

	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.ReceivedAt.IsZero() {
		ev.ReceivedAt = time.Now()
	}
	metrics.RecordEventReceived()

	if s.deduper.SeenAndRecord(ctx, ev.ID) {
		metrics.RecordEventDuplicate()
		s.logger.Debug(ctx, "duplicate push message skipped", logger.String("event_id", ev.ID))
		return ev, Duplicate, nil
	}
	if err := s.eventQueue.Enqueue(ctx, ev); err != nil {
		s.deduper.Unrecord(ctx, ev.ID)
		s.logger.Warn(ctx, "event not queued", logger.String("event_id", ev.ID), logger.Error(err))
		return ev, Accepted, fmt.Errorf("enqueue %s: %w", ev.ID, err)
	}
	return ev, Accepted, nil
}

// Preview renders ev without displaying it.
func (s *Service) Preview(ev model.Event) (presenter.Decision, error) {
	s.mu.RLock()
	started := s.started
	s.mu.RUnlock()
	if !started {
		return presenter.Decision{}, ErrNotStarted
	}

	d, err := s.presenter.Present(ev)
	if err != nil {
		metrics.RecordRenderError(d.Kind.String())
		return d, err
	}
	if d.Kind == presenter.KindNone {
		return d, ErrNoLiveUpdate
	}
	return d, nil
}

// TestProgress displays the fixed progress bar test notification.
func (s *Service) TestProgress(ctx context.Context) (model.Notification, error) {
	sf, err := s.activeSurface()
	if err != nil {
		return model.Notification{}, err
	}
	n := s.presenter.ProgressTest()
	if err := sf.Display(ctx, n); err != nil {
		return n, fmt.Errorf("display progress test: %w", err)
	}
	return n, nil
}

// Notifications lists the notifications currently in the tray.
func (s *Service) Notifications(ctx context.Context) ([]model.Notification, error) {
	tray, err := s.activeTray()
	if err != nil {
		return nil, err
	}
	return tray.List(ctx)
}

// Notification returns the tray notification posted under id.
func (s *Service) Notification(ctx context.Context, id int) (model.Notification, error) {
	tray, err := s.activeTray()
	if err != nil {
		return model.Notification{}, err
	}
	return tray.Get(ctx, id)
}

// Dismiss removes a notification. Without force it behaves like a user
// swipe: the surfaces refuse ongoing notifications with
// repository.ErrOngoing, checked at the moment of removal.
func (s *Service) Dismiss(ctx context.Context, id int, force bool) error {
	sf, err := s.activeSurface()
	if err != nil {
		return err
	}
	if force {
		return sf.Cancel(ctx, id)
	}
	return sf.Dismiss(ctx, id)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	st := Stats{
		Started:       s.started,
		QueueCapacity: s.queueSize,
		DedupeSize:    s.dedupeSize,
	}
	if !s.started {
		return st
	}
	st.Surfaces = s.surface.Name()
	st.QueueLength = s.eventQueue.Len(ctx)
	st.DedupeEntries = s.deduper.Size()
	st.Notifications = s.tray.Count(ctx)
	st.Dispatcher = s.dispatcher.Stats()
	return st
}

// Presenter returns the presenter used by the pipeline.
func (s *Service) Presenter() *presenter.Presenter { return s.presenter }

func (s *Service) activeTray() (*repository.MemoryTray, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	return s.tray, nil
}

func (s *Service) activeSurface() (surface.Surface, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	return s.surface, nil
}
