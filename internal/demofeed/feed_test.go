package demofeed_test

import (
	"context"
	"errors"
	"testing"

	service "github.com/okian/liveupdates/internal/app"
	"github.com/okian/liveupdates/internal/demofeed"
	"github.com/okian/liveupdates/internal/domain/model"
	"github.com/okian/liveupdates/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

type recorder struct {
	events []model.Event
	err    error
}

func (r *recorder) Enqueue(_ context.Context, ev model.Event) (model.Event, service.Outcome, error) {
	if r.err != nil {
		return ev, service.Accepted, r.err
	}
	r.events = append(r.events, ev)
	return ev, service.Accepted, nil
}

func statuses(events []model.Event) []any {
	var out []any
	for _, ev := range events {
		if d := ev.Object(model.DeliveryKey); d != nil {
			out = append(out, d["status"])
		}
	}
	return out
}

func TestFeed(t *testing.T) {
	Convey("Given a demo feed", t, func() {
		_ = logger.Init()
		rec := &recorder{}
		f, err := demofeed.New("@every 1h", rec, nil)
		So(err, ShouldBeNil)

		Convey("When it ticks twice", func() {
			ctx := context.Background()
			So(f.Tick(ctx), ShouldBeNil)
			So(f.Tick(ctx), ShouldBeNil)

			Convey("Then one step of each sequence is sent per tick", func() {
				So(rec.events, ShouldHaveLength, 4)
				So(statuses(rec.events), ShouldResemble, []any{"confirmed", "preparing"})
			})

			Convey("And every sent event has a fresh id", func() {
				So(rec.events[0].ID, ShouldNotBeBlank)
				So(rec.events[0].ID, ShouldNotEqual, rec.events[2].ID)
			})
		})

		Convey("When the delivery sequence is exhausted", func() {
			ctx := context.Background()
			for i := 0; i < 8; i++ {
				So(f.Tick(ctx), ShouldBeNil)
			}

			Convey("Then it restarts from the beginning", func() {
				st := statuses(rec.events)
				So(st[6], ShouldEqual, "delivered")
				So(st[7], ShouldEqual, "confirmed")
			})
		})

		Convey("When the service rejects an event", func() {
			rec.err = errors.New("queue full")
			So(f.Tick(context.Background()), ShouldNotBeNil)
		})

		Convey("Then it can start and stop", func() {
			f.Start(context.Background())
			f.Stop(context.Background())
		})
	})

	Convey("Given an invalid schedule", t, func() {
		_ = logger.Init()
		_, err := demofeed.New("sometimes", &recorder{}, nil)
		So(err, ShouldNotBeNil)
	})
}
