// Package model contains domain models passed between layers.
package model

import "time"

// Keys of the nested objects inside an event's additional data.
const (
	DeliveryKey = "delivery"
	ScoreKey    = "score"
)

// Event is one received push. Data holds the provider's additional data
// exactly as decoded from JSON.
type Event struct {
	ID         string         // push message id, used for idempotency
	Title      string         // default title the provider would show
	Body       string         // default body the provider would show
	Data       map[string]any // additional data; may be nil
	ReceivedAt time.Time
}

// Object returns the nested JSON object stored under key. It returns nil
// when the key is absent or holds anything other than an object.
func (e Event) Object(key string) map[string]any {
	if e.Data == nil {
		return nil
	}
	obj, ok := e.Data[key].(map[string]any)
	if !ok {
		return nil
	}
	return obj
}
