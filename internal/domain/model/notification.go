package model

import "time"

// Stable notification ids. Posting an id that is already shown replaces it.
const (
	DeliveryNotificationID     = 1001
	ScoreNotificationID        = 2001
	ProgressTestNotificationID = 888
)

// Category hints how the platform should rank a notification.
type Category string

// Categories used by the presenter.
const (
	CategoryTransport Category = "transport"
	CategoryStatus    Category = "status"
)

// Importance of a channel.
type Importance string

// Channel importances.
const (
	ImportanceDefault Importance = "default"
	ImportanceHigh    Importance = "high"
)

// Channel groups notifications that share alerting behavior.
type Channel struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Importance  Importance `json:"importance"`
	Vibration   bool       `json:"vibration"`
	ShowBadge   bool       `json:"show_badge"`
	LightColor  string     `json:"light_color,omitempty"`
}

// Action is a button attached to a notification. Token is opaque to the
// surface and handed back to the app when the button is pressed.
type Action struct {
	Label string `json:"label"`
	Token string `json:"token"`
	Icon  string `json:"icon,omitempty"`
}

// Notification is a display request issued to a surface.
type Notification struct {
	ID            int       `json:"id"`
	ChannelID     string    `json:"channel_id"`
	Category      Category  `json:"category,omitempty"`
	Title         string    `json:"title"`
	Text          string    `json:"text"`
	BigTitle      string    `json:"big_title,omitempty"`
	BigText       string    `json:"big_text,omitempty"`
	SubText       string    `json:"sub_text,omitempty"`
	Color         string    `json:"color,omitempty"`
	Ongoing       bool      `json:"ongoing"`
	AutoCancel    bool      `json:"auto_cancel"`
	OnlyAlertOnce bool      `json:"only_alert_once"`
	Progress      *int      `json:"progress,omitempty"` // 0-100, nil when no indicator
	Actions       []Action  `json:"actions"`
	When          time.Time `json:"when"`
}

// Dismissible reports whether a user may swipe the notification away.
func (n Notification) Dismissible() bool {
	return !n.Ongoing
}
