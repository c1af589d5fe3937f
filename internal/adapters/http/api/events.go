package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	service "github.com/okian/liveupdates/internal/app"
	"github.com/okian/liveupdates/internal/domain/model"
	"github.com/okian/liveupdates/internal/domain/presenter"
)

const maxEventBytes = 1 << 20

// EventDependencies defines the interface for event processing dependencies.
type EventDependencies interface {
	Enqueue(ctx context.Context, ev model.Event) (model.Event, service.Outcome, error)
	Preview(ev model.Event) (presenter.Decision, error)
}

// EventsHandler handles inbound push events.
type EventsHandler struct {
	deps EventDependencies
}

// NewEventsHandler creates a new events handler.
func NewEventsHandler(deps EventDependencies) *EventsHandler {
	return &EventsHandler{deps: deps}
}

// HandlePostEvent handles POST /events. The event is acknowledged before it
// is presented.
func (h *EventsHandler) HandlePostEvent(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_event"
	req, err := decodeEvent(w, r)
	if err != nil {
		writeFailure(w, op, WrapKind(op, ErrBadRequest, err))
		return
	}

	ev, outcome, err := h.deps.Enqueue(r.Context(), req.Event())
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	if outcome == service.Duplicate {
		writeJSON(w, http.StatusOK, AckResponse{ID: ev.ID, Status: outcome.String(), Duplicate: true})
		return
	}
	writeJSON(w, http.StatusAccepted, AckResponse{ID: ev.ID, Status: outcome.String()})
}

// HandlePreview handles POST /preview.
func (h *EventsHandler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	const op = "api.preview"
	req, err := decodeEvent(w, r)
	if err != nil {
		writeFailure(w, op, WrapKind(op, ErrBadRequest, err))
		return
	}

	d, err := h.deps.Preview(req.Event())
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, PreviewResponse{
		Kind:            d.Kind.String(),
		SuppressDefault: d.SuppressDefault,
		Notification:    d.Notification,
	})
}

func decodeEvent(w http.ResponseWriter, r *http.Request) (EventRequest, error) {
	var req EventRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxEventBytes))
	if err := dec.Decode(&req); err != nil {
		return req, err
	}
	if dec.More() {
		return req, errors.New("trailing data after event")
	}
	return req, nil
}
