package presenter

import "github.com/okian/liveupdates/internal/domain/model"

// Channels returns the channels every surface must register before the
// first notification is displayed.
func (p *Presenter) Channels() []model.Channel {
	return []model.Channel{
		{
			ID:          p.channelID,
			Name:        "Live Updates",
			Description: "Real-time delivery and score updates",
			Importance:  model.ImportanceHigh,
			Vibration:   true,
			ShowBadge:   true,
			LightColor:  "#0000FF",
		},
		{
			ID:         TestProgressChannelID,
			Name:       "Test Progress",
			Importance: model.ImportanceHigh,
		},
	}
}
