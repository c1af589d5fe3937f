package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/okian/liveupdates/internal/adapters/http/api"
	service "github.com/okian/liveupdates/internal/app"
	"github.com/okian/liveupdates/internal/client"
	"github.com/okian/liveupdates/internal/samples"
	"github.com/okian/liveupdates/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestClientAgainstService(t *testing.T) {
	Convey("Given a running service behind an HTTP server", t, func() {
		_ = logger.Init()
		ctx := context.Background()
		svc := service.New()
		So(svc.Start(ctx), ShouldBeNil)
		mux := http.NewServeMux()
		api.NewServer(svc, svc).Register(mux)
		srv := httptest.NewServer(mux)
		Reset(func() {
			srv.Close()
			_ = svc.Stop(ctx)
		})
		c := client.New(srv.URL+"/", time.Second)

		Convey("When a sample step is sent twice with the same id", func() {
			ev, err := samples.Step(samples.DeliverySequence, 4)
			So(err, ShouldBeNil)
			ev.ID = "dup-1"

			first, err1 := c.Send(ctx, client.Request(ev))
			second, err2 := c.Send(ctx, client.Request(ev))

			Convey("Then the first is accepted and the second is a duplicate", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				So(first.Status, ShouldEqual, "accepted")
				So(second.Duplicate, ShouldBeTrue)
			})
		})

		Convey("When previewing a score", func() {
			ev, _ := samples.Step(samples.ScoreSequence, 2)
			resp, err := c.Preview(ctx, client.Request(ev))

			Convey("Then the halftime rendering is returned", func() {
				So(err, ShouldBeNil)
				So(resp.Notification.Text, ShouldEqual, "Halftime • HALFTIME")
			})
		})

		Convey("When the progress test is posted", func() {
			n, err := c.TestProgress(ctx)
			So(err, ShouldBeNil)

			Convey("Then the tray lists it and it can be dismissed", func() {
				list, err := c.Notifications(ctx)
				So(err, ShouldBeNil)
				So(list, ShouldHaveLength, 1)
				So(list[0].ID, ShouldEqual, n.ID)
				So(c.Dismiss(ctx, n.ID, false), ShouldBeNil)
			})
		})

		Convey("When dismissing an unknown id", func() {
			err := c.Dismiss(ctx, 5, true)
			So(errors.Is(err, client.ErrStatus), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "404")
		})
	})
}
