package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/okian/liveupdates/internal/domain/model"
	"github.com/okian/liveupdates/pkg/metrics"
)

// MemoryTray is a Store backed by a map.
type MemoryTray struct {
	mu     sync.RWMutex
	posted map[int]model.Notification
	closed bool
}

// NewMemoryTray creates an empty tray.
func NewMemoryTray(_ context.Context) *MemoryTray {
	t := &MemoryTray{posted: make(map[int]model.Notification)}
	metrics.UpdateTrayNotifications(0)
	return t
}

// Post implements Store.
func (t *MemoryTray) Post(_ context.Context, n model.Notification) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return false, ErrClosed
	}
	_, replaced := t.posted[n.ID]
	n.Actions = append([]model.Action(nil), n.Actions...)
	if n.Progress != nil {
		p := *n.Progress
		n.Progress = &p
	}
	t.posted[n.ID] = n
	metrics.UpdateTrayNotifications(len(t.posted))
	return replaced, nil
}

// Get implements Store.
func (t *MemoryTray) Get(_ context.Context, id int) (model.Notification, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	n, ok := t.posted[id]
	if !ok {
		return model.Notification{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return n, nil
}

// List implements Store.
func (t *MemoryTray) List(_ context.Context) ([]model.Notification, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]model.Notification, 0, len(t.posted))
	for _, n := range t.posted {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Dismiss implements Store.
func (t *MemoryTray) Dismiss(_ context.Context, id int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	n, ok := t.posted[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if n.Ongoing {
		return fmt.Errorf("%w: %d", ErrOngoing, id)
	}
	delete(t.posted, id)
	metrics.UpdateTrayNotifications(len(t.posted))
	return nil
}

// Cancel implements Store.
func (t *MemoryTray) Cancel(_ context.Context, id int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.posted[id]; !ok {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	delete(t.posted, id)
	metrics.UpdateTrayNotifications(len(t.posted))
	return nil
}

// Count implements Store.
func (t *MemoryTray) Count(_ context.Context) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.posted)
}

// Close rejects further posts. Posted notifications stay readable.
func (t *MemoryTray) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	return nil
}
