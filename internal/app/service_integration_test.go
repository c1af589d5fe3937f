package service_test

import (
	"context"
	"fmt"
	"testing"

	service "github.com/okian/liveupdates/internal/app"
	"github.com/okian/liveupdates/internal/adapters/surface"
	"github.com/okian/liveupdates/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func surfaceDeps() surface.Deps {
	return surface.Deps{}
}

func TestServiceIntegration(t *testing.T) {
	Convey("Given a service displaying to the tray", t, func() {
		ctx := context.Background()
		svc := service.New(service.WithQueueSize(64), service.WithDedupeSize(64))
		So(svc.Start(ctx), ShouldBeNil)
		Reset(func() { _ = svc.Stop(ctx) })

		Convey("When a full delivery lifecycle is pushed", func() {
			steps := []struct {
				status   string
				progress int
			}{
				{"confirmed", 10}, {"preparing", 25}, {"ready_for_pickup", 40},
				{"on_the_way", 60}, {"nearby", 85}, {"arrived", 95}, {"delivered", 100},
			}
			for i, s := range steps {
				_, _, err := svc.Enqueue(ctx, deliveryEvent(fmt.Sprintf("step-%d", i), s.status, s.progress))
				So(err, ShouldBeNil)
			}
			So(waitFor(func() bool { return svc.GetStats().Dispatcher.Processed == int64(len(steps)) }), ShouldBeTrue)

			Convey("Then one notification shows the final state", func() {
				list, err := svc.Notifications(ctx)
				So(err, ShouldBeNil)
				So(list, ShouldHaveLength, 1)
				So(list[0].ID, ShouldEqual, model.DeliveryNotificationID)
				So(list[0].Title, ShouldEqual, "🎉 Order Delivered")
				So(list[0].Ongoing, ShouldBeFalse)
				So(list[0].AutoCancel, ShouldBeTrue)
			})

			Convey("And the delivered notification can be swiped away", func() {
				So(svc.Dismiss(ctx, model.DeliveryNotificationID, false), ShouldBeNil)
				So(svc.GetStats().Notifications, ShouldEqual, 0)
			})
		})

		Convey("When a delivery and a score arrive", func() {
			_, _, err := svc.Enqueue(ctx, deliveryEvent("d", "nearby", 80))
			So(err, ShouldBeNil)
			_, _, err = svc.Enqueue(ctx, model.Event{ID: "s", Data: map[string]any{
				"score": map[string]any{"home_team": "Bears", "away_team": "Lions", "home_score": 21.0, "away_score": 14.0},
			}})
			So(err, ShouldBeNil)
			So(waitFor(func() bool { return svc.GetStats().Notifications == 2 }), ShouldBeTrue)

			Convey("Then both are shown side by side under their own ids", func() {
				list, _ := svc.Notifications(ctx)
				So(list[0].ID, ShouldEqual, model.DeliveryNotificationID)
				So(list[1].ID, ShouldEqual, model.ScoreNotificationID)
				So(list[1].Title, ShouldEqual, "🔥 Bears 21 - 14 Lions")
			})
		})

		Convey("When an event has no live update", func() {
			_, _, err := svc.Enqueue(ctx, model.Event{ID: "promo", Data: map[string]any{"promo": "x"}})
			So(err, ShouldBeNil)
			So(waitFor(func() bool { return svc.GetStats().Dispatcher.Ignored == 1 }), ShouldBeTrue)

			Convey("Then the tray stays empty", func() {
				So(svc.GetStats().Notifications, ShouldEqual, 0)
			})
		})
	})
}
