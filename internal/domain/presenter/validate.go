package presenter

import (
	"fmt"
	"regexp"

	"github.com/okian/liveupdates/internal/domain/model"
	"github.com/okian/liveupdates/internal/domain/progress"
)

const maxActions = 2

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// validate checks what a platform builder would reject.
func validate(n model.Notification) error {
	switch {
	case n.Title == "":
		return fmt.Errorf("%w: empty title", ErrInvalidNotification)
	case n.ChannelID == "":
		return fmt.Errorf("%w: empty channel", ErrInvalidNotification)
	case n.Color != "" && !colorPattern.MatchString(n.Color):
		return fmt.Errorf("%w: bad color %q", ErrInvalidNotification, n.Color)
	case len(n.Actions) > maxActions:
		return fmt.Errorf("%w: %d actions", ErrInvalidNotification, len(n.Actions))
	case n.Progress != nil && !progress.InRange(*n.Progress):
		return fmt.Errorf("%w: progress %d", ErrInvalidNotification, *n.Progress)
	case n.Ongoing && n.AutoCancel:
		return fmt.Errorf("%w: ongoing notification cannot auto-cancel", ErrInvalidNotification)
	}
	return nil
}
