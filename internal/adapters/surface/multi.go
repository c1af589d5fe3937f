package surface

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/okian/liveupdates/internal/domain/model"
)

// Multi fans every call out to a list of surfaces. A failing member does
// not stop the others; the errors are joined.
type Multi struct {
	members []Surface
}

// NewMulti creates a fan-out surface.
func NewMulti(members ...Surface) *Multi {
	return &Multi{members: members}
}

// Members returns the wrapped surfaces.
func (m *Multi) Members() []Surface {
	return append([]Surface(nil), m.members...)
}

// Name implements Surface.
func (m *Multi) Name() string {
	names := make([]string, 0, len(m.members))
	for _, s := range m.members {
		names = append(names, s.Name())
	}
	return strings.Join(names, "+")
}

// RegisterChannels implements Surface.
func (m *Multi) RegisterChannels(ctx context.Context, channels []model.Channel) error {
	return m.each(func(s Surface) error { return s.RegisterChannels(ctx, channels) })
}

// Display implements Surface.
func (m *Multi) Display(ctx context.Context, n model.Notification) error {
	return m.each(func(s Surface) error { return s.Display(ctx, n) })
}

// Dismiss implements Surface. Members are asked in order; the first
// refusal stops the rest.
func (m *Multi) Dismiss(ctx context.Context, id int) error {
	if len(m.members) == 0 {
		return ErrNoSurfaces
	}
	for _, s := range m.members {
		if err := s.Dismiss(ctx, id); err != nil {
			return fmt.Errorf("%s: %w", s.Name(), err)
		}
	}
	return nil
}

// Cancel implements Surface.
func (m *Multi) Cancel(ctx context.Context, id int) error {
	return m.each(func(s Surface) error { return s.Cancel(ctx, id) })
}

func (m *Multi) each(fn func(Surface) error) error {
	if len(m.members) == 0 {
		return ErrNoSurfaces
	}
	var errs []error
	for _, s := range m.members {
		if err := fn(s); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
		}
	}
	return errors.Join(errs...)
}
