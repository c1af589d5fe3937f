package presenter

import (
	"fmt"
	"strings"

	"github.com/okian/liveupdates/internal/domain/model"
	"github.com/okian/liveupdates/internal/domain/progress"
	"github.com/okian/liveupdates/internal/domain/status"
)

// Action tokens handed back to the app when a button is pressed.
const (
	TokenCancel   = "cancel"
	TokenTrack    = "track"
	TokenCall     = "call"
	TokenViewGame = "view_game"
)

// DeliveryActions returns the buttons shown for a delivery status.
func DeliveryActions(s status.Status) []model.Action {
	switch s.Kind {
	case status.Confirmed, status.Preparing:
		return []model.Action{
			{Label: "Cancel", Token: TokenCancel, Icon: "ic_menu_close_clear_cancel"},
		}
	case status.OnTheWay, status.Nearby:
		return []model.Action{
			{Label: "Track", Token: TokenTrack, Icon: "ic_menu_mapmode"},
			{Label: "Call Driver", Token: TokenCall, Icon: "ic_menu_call"},
		}
	default:
		return []model.Action{}
	}
}

// RenderDelivery builds the live delivery notification.
func (p *Presenter) RenderDelivery(d model.DeliveryUpdate) (model.Notification, error) {
	st := status.Parse(d.Status)
	pres := st.Present(d.DriverName)
	progressText := progress.Text(d.Progress)
	title := pres.Emoji + " " + pres.Title

	var big strings.Builder
	big.WriteString(pres.Message)
	big.WriteString("\n\n")
	fmt.Fprintf(&big, "Progress: %s\n", progressText)
	fmt.Fprintf(&big, "ETA: %s\n", d.ETA)
	fmt.Fprintf(&big, "Driver: %s\n", d.DriverName)
	fmt.Fprintf(&big, "Status: %s", d.Status)

	ongoing := st.Ongoing()
	n := model.Notification{
		ID:            model.DeliveryNotificationID,
		ChannelID:     p.channelID,
		Category:      model.CategoryTransport,
		Title:         title,
		Text:          fmt.Sprintf("%s • %d%% • %s", pres.Message, d.Progress, d.ETA),
		BigTitle:      title,
		BigText:       big.String(),
		SubText:       progressText,
		Color:         pres.Color,
		Ongoing:       ongoing,
		AutoCancel:    st.Kind == status.Delivered,
		OnlyAlertOnce: true,
		Progress:      progress.Indicator(d.Progress),
		Actions:       DeliveryActions(st),
		When:          p.now(),
	}
	if err := validate(n); err != nil {
		return model.Notification{}, err
	}
	return n, nil
}
