package presenter

import (
	"github.com/okian/liveupdates/internal/domain/model"
	"github.com/okian/liveupdates/internal/domain/progress"
)

// ProgressTest builds the device check notification showing a fixed 75%
// indicator on its own channel.
func (p *Presenter) ProgressTest() model.Notification {
	const pct = 75
	return model.Notification{
		ID:        model.ProgressTestNotificationID,
		ChannelID: TestProgressChannelID,
		Title:     "🧪 Progress Bar Test",
		Text:      "Testing if progress bars work on your device",
		BigText:   "If you see a horizontal bar below this text, progress bars work!\n\nProgress: " + progress.Text(pct),
		Progress:  progress.Indicator(pct),
		Actions:   []model.Action{},
		When:      p.now(),
	}
}
