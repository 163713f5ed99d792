package match_test

import (
	"testing"

	"github.com/okian/scorecard/internal/domain/match"
	. "github.com/smartystreets/goconvey/convey"
)

func TestPositionRank(t *testing.T) {
	Convey("Given team position labels", t, func() {
		Convey("Then known lanes rank top to support", func() {
			So(match.PositionRank(match.PositionTop), ShouldEqual, 0)
			So(match.PositionRank(match.PositionJungle), ShouldEqual, 1)
			So(match.PositionRank(match.PositionMiddle), ShouldEqual, 2)
			So(match.PositionRank(match.PositionBottom), ShouldEqual, 3)
			So(match.PositionRank(match.PositionUtility), ShouldEqual, 4)
		})

		Convey("Then unknown labels rank last", func() {
			So(match.PositionRank(""), ShouldEqual, 99)
			So(match.PositionRank("ARENA"), ShouldEqual, 99)
			So(match.PositionRank("top"), ShouldEqual, 99)
		})
	})
}

func TestMatchLookups(t *testing.T) {
	Convey("Given a match with two participants", t, func() {
		m := &match.Match{
			Mode:            "CLASSIC",
			DurationSeconds: 1867,
			Participants: []match.Participant{
				{PUUID: "alpha", MinionKills: 180, JungleKills: 24},
				{PUUID: "beta"},
			},
		}

		Convey("When looking up a present puuid", func() {
			p, ok := m.ParticipantByPUUID("alpha")
			So(ok, ShouldBeTrue)
			So(p.PUUID, ShouldEqual, "alpha")

			Convey("Then creep score combines lane and jungle kills", func() {
				So(p.CreepScore(), ShouldEqual, 204)
			})
		})

		Convey("When looking up an absent puuid", func() {
			_, ok := m.ParticipantByPUUID("missing")
			So(ok, ShouldBeFalse)
		})
	})
}

func TestMainItems(t *testing.T) {
	Convey("Given a participant inventory", t, func() {
		p := match.Participant{Item0: 1, Item1: 2, Item2: 3, Item3: 4, Item4: 5, Item5: 6, Trinket: 7}

		Convey("Then MainItems returns the six main slots in order", func() {
			So(p.MainItems(), ShouldResemble, []int{1, 2, 3, 4, 5, 6})
		})
	})
}
