package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/okian/liveupdates/internal/domain/model"
)

// NotificationsDependencies defines the tray operations the handler needs.
type NotificationsDependencies interface {
	TestProgress(ctx context.Context) (model.Notification, error)
	Notifications(ctx context.Context) ([]model.Notification, error)
	Notification(ctx context.Context, id int) (model.Notification, error)
	Dismiss(ctx context.Context, id int, force bool) error
}

// NotificationsHandler exposes the tray.
type NotificationsHandler struct {
	deps NotificationsDependencies
}

// NewNotificationsHandler creates a new notifications handler.
func NewNotificationsHandler(deps NotificationsDependencies) *NotificationsHandler {
	return &NotificationsHandler{deps: deps}
}

// HandleList handles GET /notifications.
func (h *NotificationsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_notifications"
	list, err := h.deps.Notifications(r.Context())
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// HandleGet handles GET /notifications/{id}.
func (h *NotificationsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_notification"
	id, err := pathID(r)
	if err != nil {
		writeFailure(w, op, WrapKind(op, ErrBadRequest, err))
		return
	}
	n, err := h.deps.Notification(r.Context(), id)
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

// HandleDelete handles DELETE /notifications/{id}. Without force=true it
// acts as a user swipe and refuses ongoing notifications.
func (h *NotificationsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	const op = "api.delete_notification"
	id, err := pathID(r)
	if err != nil {
		writeFailure(w, op, WrapKind(op, ErrBadRequest, err))
		return
	}
	force := false
	if raw := r.URL.Query().Get("force"); raw != "" {
		if force, err = strconv.ParseBool(raw); err != nil {
			writeFailure(w, op, WrapKind(op, ErrBadRequest, err))
			return
		}
	}
	if err := h.deps.Dismiss(r.Context(), id, force); err != nil {
		writeFailure(w, op, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleTestProgress handles POST /test-progress.
func (h *NotificationsHandler) HandleTestProgress(w http.ResponseWriter, r *http.Request) {
	const op = "api.test_progress"
	n, err := h.deps.TestProgress(r.Context())
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, n)
}

func pathID(r *http.Request) (int, error) {
	return strconv.Atoi(r.PathValue("id"))
}
