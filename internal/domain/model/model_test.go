package model_test

import (
	"encoding/json"
	"testing"

	"github.com/okian/liveupdates/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func decode(raw string) map[string]any {
	var m map[string]any
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		panic(err)
	}
	return m
}

func TestEventObject(t *testing.T) {
	convey.Convey("Given an event with additional data", t, func() {
		ev := model.Event{Data: decode(`{"delivery":{"status":"nearby"},"score":"not-an-object"}`)}

		convey.Convey("Then nested objects are returned", func() {
			convey.So(ev.Object(model.DeliveryKey), convey.ShouldNotBeNil)
		})

		convey.Convey("And non-object values are ignored", func() {
			convey.So(ev.Object(model.ScoreKey), convey.ShouldBeNil)
		})

		convey.Convey("And a nil data map is safe", func() {
			convey.So(model.Event{}.Object(model.DeliveryKey), convey.ShouldBeNil)
		})
	})
}

func TestDeliveryFromData(t *testing.T) {
	convey.Convey("Given a complete delivery object", t, func() {
		d := model.DeliveryFromData(decode(`{"status":"on_the_way","driver_name":"Sam","eta":"5 min","progress":60}`))

		convey.Convey("Then every field is read", func() {
			convey.So(d, convey.ShouldResemble, model.DeliveryUpdate{
				Status: "on_the_way", DriverName: "Sam", ETA: "5 min", Progress: 60,
			})
		})
	})

	convey.Convey("Given an empty delivery object", t, func() {
		d := model.DeliveryFromData(map[string]any{})

		convey.Convey("Then defaults are substituted", func() {
			convey.So(d.Status, convey.ShouldEqual, model.DefaultDeliveryStatus)
			convey.So(d.DriverName, convey.ShouldEqual, model.DefaultDriverName)
			convey.So(d.ETA, convey.ShouldEqual, model.DefaultETA)
			convey.So(d.Progress, convey.ShouldEqual, 0)
		})
	})

	convey.Convey("Given malformed field types", t, func() {
		d := model.DeliveryFromData(decode(`{"status":null,"driver_name":{"x":1},"eta":12,"progress":"abc"}`))

		convey.Convey("Then each malformed field falls back or is coerced", func() {
			convey.So(d.Status, convey.ShouldEqual, model.DefaultDeliveryStatus)
			convey.So(d.DriverName, convey.ShouldEqual, model.DefaultDriverName)
			convey.So(d.ETA, convey.ShouldEqual, "12")
			convey.So(d.Progress, convey.ShouldEqual, 0)
		})
	})

	convey.Convey("Given numeric strings and fractions for progress", t, func() {
		convey.So(model.DeliveryFromData(decode(`{"progress":"42"}`)).Progress, convey.ShouldEqual, 42)
		convey.So(model.DeliveryFromData(decode(`{"progress":79.9}`)).Progress, convey.ShouldEqual, 79)
		convey.So(model.DeliveryFromData(decode(`{"progress":-5}`)).Progress, convey.ShouldEqual, -5)
	})
}

func TestScoreFromData(t *testing.T) {
	convey.Convey("Given an empty score object", t, func() {
		s := model.ScoreFromData(nil)

		convey.Convey("Then defaults are substituted", func() {
			convey.So(s, convey.ShouldResemble, model.ScoreUpdate{
				HomeTeam: "Home", AwayTeam: "Away", GameTime: "LIVE",
			})
		})
	})

	convey.Convey("Given a full score object", t, func() {
		s := model.ScoreFromData(decode(`{"home_team":"Bears","away_team":"Lions","home_score":21,"away_score":"14","game_time":"8:12","quarter":"Q3","progress":65}`))

		convey.Convey("Then every field is read", func() {
			convey.So(s.HomeScore, convey.ShouldEqual, 21)
			convey.So(s.AwayScore, convey.ShouldEqual, 14)
			convey.So(s.Quarter, convey.ShouldEqual, "Q3")
			convey.So(s.Progress, convey.ShouldEqual, 65)
		})
	})
}

func TestNotificationDismissible(t *testing.T) {
	convey.Convey("Given ongoing and plain notifications", t, func() {
		convey.So(model.Notification{Ongoing: true}.Dismissible(), convey.ShouldBeFalse)
		convey.So(model.Notification{}.Dismissible(), convey.ShouldBeTrue)
	})
}
