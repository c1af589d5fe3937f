// Package api exposes the push webhook and tray inspection over HTTP.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	service "github.com/okian/liveupdates/internal/app"
	"github.com/okian/liveupdates/internal/domain/model"
	"github.com/okian/liveupdates/internal/domain/presenter"
)

// Dependencies required by HTTP handlers.
type Dependencies interface {
	// Enqueue submits a received push event for asynchronous presentation.
	Enqueue(ctx context.Context, ev model.Event) (model.Event, service.Outcome, error)

	// Preview renders an event without displaying it.
	Preview(ev model.Event) (presenter.Decision, error)

	// TestProgress displays the progress bar test notification.
	TestProgress(ctx context.Context) (model.Notification, error)

	// Tray read and removal operations.
	Notifications(ctx context.Context) ([]model.Notification, error)
	Notification(ctx context.Context, id int) (model.Notification, error)
	Dismiss(ctx context.Context, id int, force bool) error
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler        *HealthHandler
	statsHandler         *StatsHandler
	eventsHandler        *EventsHandler
	notificationsHandler *NotificationsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:        NewHealthHandler(),
		statsHandler:         NewStatsHandler(statsProvider),
		eventsHandler:        NewEventsHandler(deps),
		notificationsHandler: NewNotificationsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("POST /events", MetricsMiddleware(s.eventsHandler.HandlePostEvent, "events"))
	mux.HandleFunc("POST /preview", MetricsMiddleware(s.eventsHandler.HandlePreview, "preview"))
	mux.HandleFunc("POST /test-progress", MetricsMiddleware(s.notificationsHandler.HandleTestProgress, "test_progress"))
	mux.HandleFunc("GET /notifications", MetricsMiddleware(s.notificationsHandler.HandleList, "notifications"))
	mux.HandleFunc("GET /notifications/{id}", MetricsMiddleware(s.notificationsHandler.HandleGet, "notification"))
	mux.HandleFunc("DELETE /notifications/{id}", MetricsMiddleware(s.notificationsHandler.HandleDelete, "notification"))
}

// EventRequest is the push payload accepted by POST /events and /preview.
type EventRequest struct {
	ID             string         `json:"id,omitempty"`
	Title          string         `json:"title,omitempty"`
	Body           string         `json:"body,omitempty"`
	AdditionalData map[string]any `json:"additional_data,omitempty"`
}

// Event converts the payload to a domain event.
func (e EventRequest) Event() model.Event {
	return model.Event{ID: e.ID, Title: e.Title, Body: e.Body, Data: e.AdditionalData}
}

// AckResponse acknowledges a received event.
type AckResponse struct {
	ID        string `json:"id"`
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
}

// PreviewResponse carries the rendered decision for an event.
type PreviewResponse struct {
	Kind            string              `json:"kind"`
	SuppressDefault bool                `json:"suppress_default"`
	Notification    *model.Notification `json:"notification,omitempty"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeFailure maps err, raised under op, to its status code.
func writeFailure(w http.ResponseWriter, op string, err error) {
	err = upstream(op, err)
	status, code := classify(err)
	writeError(w, status, code, err)
}
