package surface

import (
	"fmt"
	"strings"
	"time"

	"github.com/okian/liveupdates/internal/adapters/repository"
)

// Deps carries what the configurable surfaces need.
type Deps struct {
	Store       repository.Store
	DesktopIcon string
	NtfyURL     string
	NtfyTimeout time.Duration
}

// Build creates an instrumented fan-out over the named surfaces.
func Build(names []string, deps Deps) (*Multi, error) {
	members := make([]Surface, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, raw := range names {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		var s Surface
		switch name {
		case NameTray:
			if deps.Store == nil {
				return nil, fmt.Errorf("%w: tray needs a store", ErrUnknownSurface)
			}
			s = NewTray(deps.Store)
		case NameDesktop:
			s = NewDesktop(WithIcon(deps.DesktopIcon))
		case NameNtfy:
			s = NewNtfy(deps.NtfyURL, WithTimeout(deps.NtfyTimeout))
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownSurface, raw)
		}
		members = append(members, Instrument(s))
	}
	if len(members) == 0 {
		return nil, ErrNoSurfaces
	}
	return NewMulti(members...), nil
}
