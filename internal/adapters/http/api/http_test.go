package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/okian/liveupdates/internal/adapters/http/api"
	"github.com/okian/liveupdates/internal/adapters/mq/queue"
	"github.com/okian/liveupdates/internal/adapters/repository"
	service "github.com/okian/liveupdates/internal/app"
	"github.com/okian/liveupdates/internal/domain/model"
	"github.com/okian/liveupdates/internal/domain/presenter"
	"github.com/okian/liveupdates/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

type mockDeps struct {
	seen       map[string]bool
	enqueueErr error
	enqueued   []model.Event
	tray       map[int]model.Notification
	presenter  *presenter.Presenter
}

func newMockDeps() *mockDeps {
	return &mockDeps{
		seen:      make(map[string]bool),
		tray:      make(map[int]model.Notification),
		presenter: presenter.New(),
	}
}

func (m *mockDeps) Enqueue(_ context.Context, ev model.Event) (model.Event, service.Outcome, error) {
	if ev.ID == "" {
		ev.ID = "generated"
	}
	if m.enqueueErr != nil {
		return ev, service.Accepted, m.enqueueErr
	}
	if m.seen[ev.ID] {
		return ev, service.Duplicate, nil
	}
	m.seen[ev.ID] = true
	m.enqueued = append(m.enqueued, ev)
	return ev, service.Accepted, nil
}

func (m *mockDeps) Preview(ev model.Event) (presenter.Decision, error) {
	d, err := m.presenter.Present(ev)
	if err == nil && d.Kind == presenter.KindNone {
		return d, service.ErrNoLiveUpdate
	}
	return d, err
}

func (m *mockDeps) TestProgress(context.Context) (model.Notification, error) {
	n := m.presenter.ProgressTest()
	m.tray[n.ID] = n
	return n, nil
}

func (m *mockDeps) Notifications(context.Context) ([]model.Notification, error) {
	out := make([]model.Notification, 0, len(m.tray))
	for _, n := range m.tray {
		out = append(out, n)
	}
	return out, nil
}

func (m *mockDeps) Notification(_ context.Context, id int) (model.Notification, error) {
	n, ok := m.tray[id]
	if !ok {
		return n, fmt.Errorf("%w: %d", repository.ErrNotFound, id)
	}
	return n, nil
}

func (m *mockDeps) Dismiss(_ context.Context, id int, force bool) error {
	n, ok := m.tray[id]
	if !ok {
		return fmt.Errorf("%w: %d", repository.ErrNotFound, id)
	}
	if n.Ongoing && !force {
		return fmt.Errorf("%w: %d", repository.ErrOngoing, id)
	}
	delete(m.tray, id)
	return nil
}

type mockStats struct{}

func (mockStats) GetStats() service.Stats {
	return service.Stats{Started: true, Surfaces: "tray", QueueCapacity: 8}
}

func newMux(deps *mockDeps) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(deps, mockStats{}).Register(mux)
	return mux
}

func do(mux http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](rec *httptest.ResponseRecorder) T {
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		panic(err)
	}
	return v
}

const deliveryPayload = `{"id":"msg-1","title":"Order","body":"Your order","additional_data":{"delivery":{"status":"on_the_way","driver_name":"Sam","eta":"5 min","progress":75}}}`

func TestPostEvent(t *testing.T) {
	Convey("Given the API server", t, func() {
		deps := newMockDeps()
		mux := newMux(deps)

		Convey("When a delivery push is posted", func() {
			rec := do(mux, http.MethodPost, "/events", deliveryPayload)

			Convey("Then it is accepted for asynchronous presentation", func() {
				So(rec.Code, ShouldEqual, http.StatusAccepted)
				ack := decodeBody[api.AckResponse](rec)
				So(ack.ID, ShouldEqual, "msg-1")
				So(ack.Status, ShouldEqual, "accepted")
				So(deps.enqueued, ShouldHaveLength, 1)
				So(deps.enqueued[0].Object(model.DeliveryKey)["driver_name"], ShouldEqual, "Sam")
			})

			Convey("And posting it again is reported as a duplicate", func() {
				rec := do(mux, http.MethodPost, "/events", deliveryPayload)
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(decodeBody[api.AckResponse](rec).Duplicate, ShouldBeTrue)
			})
		})

		Convey("When the body is not JSON", func() {
			rec := do(mux, http.MethodPost, "/events", `{"id":`)

			Convey("Then it is rejected as a bad request", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
				So(rec.Body.String(), ShouldContainSubstring, "bad_request")
			})
		})

		Convey("When the queue is full", func() {
			deps.enqueueErr = queue.ErrFull
			rec := do(mux, http.MethodPost, "/events", deliveryPayload)
			So(rec.Code, ShouldEqual, http.StatusTooManyRequests)
			So(rec.Body.String(), ShouldContainSubstring, "api.post_event: backpressure")
		})

		Convey("When the service is not running", func() {
			deps.enqueueErr = service.ErrNotStarted
			rec := do(mux, http.MethodPost, "/events", deliveryPayload)
			So(rec.Code, ShouldEqual, http.StatusServiceUnavailable)
			So(rec.Body.String(), ShouldContainSubstring, "api.post_event: service unavailable")
		})

		Convey("When the wrong method is used", func() {
			rec := do(mux, http.MethodGet, "/events", "")
			So(rec.Code, ShouldEqual, http.StatusMethodNotAllowed)
		})
	})
}

func TestPreview(t *testing.T) {
	Convey("Given the API server", t, func() {
		mux := newMux(newMockDeps())

		Convey("When previewing a score payload", func() {
			rec := do(mux, http.MethodPost, "/preview", `{"additional_data":{"score":{"home_team":"Bears","away_team":"Lions","home_score":21,"away_score":14,"game_time":"Final"}}}`)

			Convey("Then the rendered notification is returned", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				resp := decodeBody[api.PreviewResponse](rec)
				So(resp.Kind, ShouldEqual, "score")
				So(resp.SuppressDefault, ShouldBeTrue)
				So(resp.Notification.Title, ShouldEqual, "🔥 Bears 21 - 14 Lions")
				So(resp.Notification.Ongoing, ShouldBeFalse)
			})
		})

		Convey("When previewing a payload without live data", func() {
			rec := do(mux, http.MethodPost, "/preview", `{"additional_data":{"promo":"x"}}`)
			So(rec.Code, ShouldEqual, http.StatusUnprocessableEntity)
		})
	})
}

func TestServiceLifecycleStatus(t *testing.T) {
	Convey("Given the API over a real service that is not started", t, func() {
		_ = logger.Init()
		ctx := context.Background()
		svc := service.New()
		mux := http.NewServeMux()
		api.NewServer(svc, svc).Register(mux)

		Convey("Then preview and events are both unavailable", func() {
			So(do(mux, http.MethodPost, "/preview", deliveryPayload).Code, ShouldEqual, http.StatusServiceUnavailable)
			So(do(mux, http.MethodPost, "/events", deliveryPayload).Code, ShouldEqual, http.StatusServiceUnavailable)
		})

		Convey("When it is started", func() {
			So(svc.Start(ctx), ShouldBeNil)
			Reset(func() { _ = svc.Stop(ctx) })

			Convey("Then preview renders", func() {
				So(do(mux, http.MethodPost, "/preview", deliveryPayload).Code, ShouldEqual, http.StatusOK)
			})

			Convey("Then after stop preview is unavailable again", func() {
				So(svc.Stop(ctx), ShouldBeNil)
				So(do(mux, http.MethodPost, "/preview", deliveryPayload).Code, ShouldEqual, http.StatusServiceUnavailable)
			})
		})
	})
}

func TestNotificationsEndpoints(t *testing.T) {
	Convey("Given a tray with an ongoing delivery", t, func() {
		deps := newMockDeps()
		n, err := deps.presenter.RenderDelivery(model.DeliveryUpdate{Status: "nearby", DriverName: "Sam", Progress: 90})
		So(err, ShouldBeNil)
		deps.tray[n.ID] = n
		mux := newMux(deps)

		Convey("When listing notifications", func() {
			rec := do(mux, http.MethodGet, "/notifications", "")
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(decodeBody[[]model.Notification](rec), ShouldHaveLength, 1)
		})

		Convey("When fetching by id", func() {
			rec := do(mux, http.MethodGet, "/notifications/1001", "")
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(decodeBody[model.Notification](rec).Title, ShouldEqual, "📍 Sam is nearby")
		})

		Convey("When fetching an unknown or malformed id", func() {
			So(do(mux, http.MethodGet, "/notifications/7", "").Code, ShouldEqual, http.StatusNotFound)
			So(do(mux, http.MethodGet, "/notifications/abc", "").Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When swiping the ongoing notification", func() {
			rec := do(mux, http.MethodDelete, "/notifications/1001", "")

			Convey("Then it is refused", func() {
				So(rec.Code, ShouldEqual, http.StatusConflict)
				So(deps.tray, ShouldContainKey, 1001)
			})
		})

		Convey("When force cancelling it", func() {
			rec := do(mux, http.MethodDelete, "/notifications/1001?force=true", "")

			Convey("Then it is removed", func() {
				So(rec.Code, ShouldEqual, http.StatusNoContent)
				So(deps.tray, ShouldNotContainKey, 1001)
			})
		})

		Convey("When force is not a boolean", func() {
			So(do(mux, http.MethodDelete, "/notifications/1001?force=maybe", "").Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When posting the progress test", func() {
			rec := do(mux, http.MethodPost, "/test-progress", "")

			Convey("Then the test notification is created", func() {
				So(rec.Code, ShouldEqual, http.StatusCreated)
				So(decodeBody[model.Notification](rec).ID, ShouldEqual, model.ProgressTestNotificationID)
			})
		})
	})
}

func TestStatsAndHealth(t *testing.T) {
	Convey("Given the API server", t, func() {
		mux := newMux(newMockDeps())

		Convey("When requesting stats", func() {
			rec := do(mux, http.MethodGet, "/stats", "")
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(decodeBody[service.Stats](rec).Surfaces, ShouldEqual, "tray")
		})

		Convey("When requesting health after traffic", func() {
			_ = do(mux, http.MethodGet, "/stats", "")
			rec := do(mux, http.MethodGet, "/healthz", "")

			Convey("Then Prometheus metrics are exposed", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Body.String(), ShouldContainSubstring, "liveupdates_")
			})
		})
	})
}

func TestWrapKind(t *testing.T) {
	Convey("Given a wrapped kind error", t, func() {
		cause := errors.New("unexpected EOF")
		err := api.WrapKind("api.op", api.ErrBadRequest, cause)

		Convey("Then both the kind and the cause match", func() {
			So(errors.Is(err, api.ErrBadRequest), ShouldBeTrue)
			So(errors.Is(err, cause), ShouldBeTrue)
			So(err.Error(), ShouldEqual, "api.op: bad request: unexpected EOF")
		})
	})
}
