// Package progress renders 0-100 progress values as a textual gauge.
package progress

import (
	"errors"
	"fmt"
	"strings"
)

// Gauge geometry.
const (
	Segments = 10
	Max      = 100
	Filled   = "█"
	Empty    = "░"
)

// ErrOutOfRange is returned for values outside 0..Max.
var ErrOutOfRange = errors.New("progress out of range")

// InRange reports whether p can be shown as a native progress indicator.
func InRange(p int) bool {
	return p >= 0 && p <= Max
}

// Bar renders p as Segments blocks followed by the percentage, e.g.
// "███████░░░ 75%".
func Bar(p int) (string, error) {
	if !InRange(p) {
		return "", fmt.Errorf("%w: %d", ErrOutOfRange, p)
	}
	filled := p / (Max / Segments)
	return strings.Repeat(Filled, filled) + strings.Repeat(Empty, Segments-filled) + fmt.Sprintf(" %d%%", p), nil
}

// Text is Bar with the out-of-range case degraded to the bare percentage.
func Text(p int) string {
	bar, err := Bar(p)
	if err != nil {
		return fmt.Sprintf("%d%%", p)
	}
	return bar
}

// Indicator returns p for attaching to a notification, or nil when p is
// out of range. Out-of-range values are dropped, never clamped.
func Indicator(p int) *int {
	if !InRange(p) {
		return nil
	}
	v := p
	return &v
}
