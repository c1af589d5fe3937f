package api

import (
	"errors"
	"net/http"

	"github.com/okian/liveupdates/internal/adapters/mq/queue"
	"github.com/okian/liveupdates/internal/adapters/repository"
	service "github.com/okian/liveupdates/internal/app"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrBackpressure = errors.New("backpressure")
	ErrUnavailable  = errors.New("service unavailable")
)

// KindError tags an error with the operation that produced it and a
// sentinel kind callers can match with errors.Is.
type KindError struct {
	Op   string
	Kind error
	Err  error
}

func (e *KindError) Error() string {
	msg := e.Op + ": " + e.Kind.Error()
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind and the cause.
func (e *KindError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// WrapKind tags err with op and kind.
func WrapKind(op string, kind, err error) error {
	return &KindError{Op: op, Kind: kind, Err: err}
}

// upstream tags pipeline errors raised under op with the API kind they
// surface as. Errors already carrying a kind pass through.
func upstream(op string, err error) error {
	var kerr *KindError
	switch {
	case errors.As(err, &kerr):
		return err
	case errors.Is(err, queue.ErrFull):
		return WrapKind(op, ErrBackpressure, err)
	case errors.Is(err, service.ErrNotStarted), errors.Is(err, queue.ErrClosed),
		errors.Is(err, repository.ErrClosed):
		return WrapKind(op, ErrUnavailable, err)
	default:
		return err
	}
}

// classify maps an error to a status code and an error code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, ErrBackpressure):
		return http.StatusTooManyRequests, "backpressure"
	case errors.Is(err, service.ErrNoLiveUpdate):
		return http.StatusUnprocessableEntity, "no_live_update"
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, repository.ErrOngoing):
		return http.StatusConflict, "ongoing"
	case errors.Is(err, ErrUnavailable):
		return http.StatusServiceUnavailable, "unavailable"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
