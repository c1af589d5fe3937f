// Package samples holds scripted push payloads that walk a delivery and a
// game through their lifecycle.
package samples

import (
	"errors"
	"fmt"

	"github.com/okian/liveupdates/internal/domain/model"
)

// Sequence names.
const (
	DeliverySequence = "delivery"
	ScoreSequence    = "score"
)

// ErrUnknownSequence is returned for a sequence name that does not exist.
var ErrUnknownSequence = errors.New("unknown sample sequence")

const driver = "Alex"

type deliveryStep struct {
	status   string
	eta      string
	progress int
}

var deliverySteps = []deliveryStep{
	{"confirmed", "35 min", 10},
	{"preparing", "30 min", 25},
	{"ready_for_pickup", "20 min", 40},
	{"on_the_way", "12 min", 60},
	{"nearby", "3 min", 85},
	{"arrived", "Now", 95},
	{"delivered", "Delivered", 100},
}

type scoreStep struct {
	home, away int
	gameTime   string
	quarter    string
	progress   int
}

var scoreSteps = []scoreStep{
	{3, 0, "12:45", "Q1", 10},
	{7, 3, "4:10", "Q1", 22},
	{14, 10, "HALFTIME", "", 50},
	{14, 17, "9:30", "Q3", 65},
	{21, 17, "2:00", "Q4", 92},
	{24, 17, "Final", "", 100},
}

// Names lists the available sequences.
func Names() []string {
	return []string{DeliverySequence, ScoreSequence}
}

// Delivery returns the delivery lifecycle from confirmation to drop-off.
func Delivery() []model.Event {
	out := make([]model.Event, 0, len(deliverySteps))
	for _, s := range deliverySteps {
		out = append(out, model.Event{
			Title: "Your order",
			Body:  "Order update: " + s.status,
			Data: map[string]any{
				model.DeliveryKey: map[string]any{
					"status":      s.status,
					"driver_name": driver,
					"eta":         s.eta,
					"progress":    s.progress,
				},
			},
		})
	}
	return out
}

// Score returns a game from the first quarter to the final whistle.
func Score() []model.Event {
	out := make([]model.Event, 0, len(scoreSteps))
	for _, s := range scoreSteps {
		score := map[string]any{
			"home_team":  "Bears",
			"away_team":  "Lions",
			"home_score": s.home,
			"away_score": s.away,
			"game_time":  s.gameTime,
			"progress":   s.progress,
		}
		if s.quarter != "" {
			score["quarter"] = s.quarter
		}
		out = append(out, model.Event{
			Title: "Bears vs Lions",
			Body:  fmt.Sprintf("Bears %d - %d Lions", s.home, s.away),
			Data:  map[string]any{model.ScoreKey: score},
		})
	}
	return out
}

// Sequence returns the named sequence.
func Sequence(name string) ([]model.Event, error) {
	switch name {
	case DeliverySequence:
		return Delivery(), nil
	case ScoreSequence:
		return Score(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSequence, name)
	}
}

// Step returns step n (0-based) of the named sequence.
func Step(name string, n int) (model.Event, error) {
	seq, err := Sequence(name)
	if err != nil {
		return model.Event{}, err
	}
	if n < 0 || n >= len(seq) {
		return model.Event{}, fmt.Errorf("%w: step %d of %s (0-%d)", ErrUnknownSequence, n, name, len(seq)-1)
	}
	return seq[n], nil
}
