// Package status maps delivery status codes to their fixed presentation.
package status

import "fmt"

// Kind enumerates the delivery statuses the app knows how to present.
type Kind int

// Known statuses. Unknown carries the raw code in Status.Raw.
const (
	Unknown Kind = iota
	Confirmed
	Preparing
	ReadyForPickup
	OnTheWay
	Nearby
	Arrived
	Delivered
	Cancelled
)

// Accent colors shared by the presentations.
const (
	ColorGreen  = "#34A853"
	ColorYellow = "#FBBC04"
	ColorBlue   = "#4285F4"
	ColorRed    = "#EA4335"
)

var codes = map[string]Kind{
	"confirmed":        Confirmed,
	"preparing":        Preparing,
	"ready_for_pickup": ReadyForPickup,
	"on_the_way":       OnTheWay,
	"nearby":           Nearby,
	"arrived":          Arrived,
	"delivered":        Delivered,
	"cancelled":        Cancelled,
}

// Status is a parsed delivery status code.
type Status struct {
	Kind Kind
	Raw  string
}

// Parse classifies a raw status code. Matching is exact, as sent by the
// backend; anything else is Unknown.
func Parse(raw string) Status {
	return Status{Kind: codes[raw], Raw: raw}
}

// Known reports whether the code matched the table.
func (s Status) Known() bool { return s.Kind != Unknown }

func (s Status) String() string { return s.Raw }

// Presentation is the fixed title, message, emoji and color for a status.
type Presentation struct {
	Title   string
	Message string
	Emoji   string
	Color   string
}

// Present returns the presentation for s, interpolating the driver name
// where the copy mentions the driver.
func (s Status) Present(driver string) Presentation {
	switch s.Kind {
	case Confirmed:
		return Presentation{"Order Confirmed", "Your order has been confirmed and is being prepared", "✅", ColorGreen}
	case Preparing:
		return Presentation{"Preparing Your Order", "The restaurant is preparing your food", "👨‍🍳", ColorYellow}
	case ReadyForPickup:
		return Presentation{"Ready for Pickup", fmt.Sprintf("Waiting for %s to collect", driver), "📦", ColorBlue}
	case OnTheWay:
		return Presentation{fmt.Sprintf("%s is on the way", driver), "Your order is being delivered", "🚗", ColorBlue}
	case Nearby:
		return Presentation{fmt.Sprintf("%s is nearby", driver), "Driver is approaching your location", "📍", ColorRed}
	case Arrived:
		return Presentation{"Driver has arrived!", fmt.Sprintf("%s is outside", driver), "🎯", ColorRed}
	case Delivered:
		return Presentation{"Order Delivered", "Enjoy your meal! Thanks for ordering", "🎉", ColorGreen}
	case Cancelled:
		return Presentation{"Order Cancelled", "Your order has been cancelled", "❌", ColorRed}
	default:
		return Presentation{"Delivery Update", "Status: " + s.Raw, "📱", ColorBlue}
	}
}

// Ongoing reports whether a notification for this status must stay pinned.
// Only terminal statuses may be swiped away.
func (s Status) Ongoing() bool {
	return s.Kind != Delivered && s.Kind != Cancelled
}
