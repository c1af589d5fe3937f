package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/okian/liveupdates/internal/adapters/http/api"
	service "github.com/okian/liveupdates/internal/app"
	"github.com/okian/liveupdates/internal/domain/model"
	"github.com/okian/liveupdates/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

const deliveryPayload = `{"id":"cli-1","title":"Order","body":"update",
"additional_data":{"delivery":{"status":"on_the_way","driver_name":"Sam","eta":"5 min","progress":60}}}`

func execute(stdin string, args ...string) (string, error) {
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRenderCommand(t *testing.T) {
	convey.Convey("Given a delivery payload on stdin", t, func() {
		convey.Convey("When rendered as a table", func() {
			out, err := execute(deliveryPayload, "render")

			convey.Convey("Then the notification row is printed", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out, convey.ShouldContainSubstring, "1001")
				convey.So(out, convey.ShouldContainSubstring, "Sam is on the way")
				convey.So(out, convey.ShouldContainSubstring, "60%")
			})
		})

		convey.Convey("When rendered as JSON", func() {
			out, err := execute(deliveryPayload, "render", "--json")
			convey.So(err, convey.ShouldBeNil)

			var resp api.PreviewResponse
			convey.So(json.Unmarshal([]byte(out), &resp), convey.ShouldBeNil)

			convey.Convey("Then the decision is a suppressed delivery", func() {
				convey.So(resp.Kind, convey.ShouldEqual, "delivery")
				convey.So(resp.SuppressDefault, convey.ShouldBeTrue)
				convey.So(resp.Notification.Ongoing, convey.ShouldBeTrue)
			})
		})
	})

	convey.Convey("Given a payload without live update data", t, func() {
		out, err := execute(`{"title":"hello"}`, "render")

		convey.Convey("Then the default rendering is reported", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(out, convey.ShouldContainSubstring, "no live update")
		})
	})

	convey.Convey("Given malformed input", t, func() {
		_, err := execute(`{`, "render")

		convey.Convey("Then decoding fails", func() {
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(err.Error(), convey.ShouldContainSubstring, "decode event from stdin")
		})
	})
}

func TestSampleCommand(t *testing.T) {
	convey.Convey("Given the score sample", t, func() {
		convey.Convey("When one step is printed", func() {
			out, err := execute("", "sample", "score", "--step", "5")
			convey.So(err, convey.ShouldBeNil)

			var req api.EventRequest
			convey.So(json.Unmarshal([]byte(out), &req), convey.ShouldBeNil)

			convey.Convey("Then it is the final whistle", func() {
				score, ok := req.AdditionalData[model.ScoreKey].(map[string]any)
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(score["game_time"], convey.ShouldEqual, "Final")
			})
		})

		convey.Convey("When the step is out of range", func() {
			_, err := execute("", "sample", "score", "--step", "40")
			convey.So(err, convey.ShouldNotBeNil)
		})
	})

	convey.Convey("Given an unknown sample", t, func() {
		_, err := execute("", "sample", "weather")
		convey.So(err, convey.ShouldNotBeNil)
		convey.So(err.Error(), convey.ShouldContainSubstring, "unknown sample sequence")
	})
}

func TestServiceCommands(t *testing.T) {
	convey.Convey("Given a running service", t, func() {
		_ = logger.Init()
		ctx := context.Background()
		svc := service.New(service.WithLogger(logger.Get()))
		mux := http.NewServeMux()
		api.NewServer(svc, svc).Register(mux)
		convey.So(svc.Start(ctx), convey.ShouldBeNil)

		srv := httptest.NewServer(mux)
		convey.Reset(func() {
			srv.Close()
			_ = svc.Stop(ctx)
		})

		waitTray := func(n int) {
			deadline := time.Now().Add(2 * time.Second)
			for svc.GetStats().Notifications < n && time.Now().Before(deadline) {
				time.Sleep(10 * time.Millisecond)
			}
		}

		convey.Convey("When a payload is sent", func() {
			out, err := execute(deliveryPayload, "send", "--url", srv.URL)
			convey.So(err, convey.ShouldBeNil)
			convey.So(out, convey.ShouldContainSubstring, "cli-1 accepted")
			waitTray(1)

			convey.Convey("Then the tray lists it", func() {
				out, err := execute("", "tray", "--url", srv.URL)
				convey.So(err, convey.ShouldBeNil)
				convey.So(out, convey.ShouldContainSubstring, "Sam is on the way")
			})

			convey.Convey("Then an ongoing notification needs force to dismiss", func() {
				_, err := execute("", "dismiss", "1001", "--url", srv.URL)
				convey.So(err, convey.ShouldNotBeNil)

				_, err = execute("", "dismiss", "1001", "--force", "--url", srv.URL)
				convey.So(err, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the tray is empty", func() {
			out, err := execute("", "tray", "--url", srv.URL)
			convey.So(err, convey.ShouldBeNil)
			convey.So(out, convey.ShouldContainSubstring, "tray is empty")
		})

		convey.Convey("When the progress test is requested", func() {
			out, err := execute("", "test-progress", "--url", srv.URL)
			convey.So(err, convey.ShouldBeNil)
			convey.So(out, convey.ShouldContainSubstring, "posted notification 888")
		})
	})
}
