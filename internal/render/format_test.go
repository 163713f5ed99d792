package render_test

import (
	"testing"

	"github.com/okian/scorecard/internal/render"
	. "github.com/smartystreets/goconvey/convey"
)

func TestTruncateName(t *testing.T) {
	Convey("Given player names of various lengths", t, func() {
		Convey("When the name fits in twelve characters", func() {
			So(render.TruncateName("Faker"), ShouldEqual, "Faker")
			So(render.TruncateName("TwelveCharss"), ShouldEqual, "TwelveCharss")
		})

		Convey("When the name is longer than twelve characters", func() {
			So(render.TruncateName("ThirteenChars"), ShouldEqual, "ThirteenCh..")
			So(render.TruncateName("AVeryLongSummonerName"), ShouldEqual, "AVeryLongS..")
		})

		Convey("When the name contains multi-byte runes", func() {
			So(render.TruncateName("ありがとうございました"), ShouldEqual, "ありがとうございました")
			So(render.TruncateName("ありがとうございましたぺこ"), ShouldEqual, "ありがとうございまし..")
		})
	})
}

func TestFormatStat(t *testing.T) {
	Convey("Given numeric stat values", t, func() {
		Convey("When the value is at least one thousand", func() {
			So(render.FormatStat(15432), ShouldEqual, "15.4k")
			So(render.FormatStat(1000), ShouldEqual, "1.0k")
			So(render.FormatStat(28400), ShouldEqual, "28.4k")
		})

		Convey("When the value is below one thousand", func() {
			So(render.FormatStat(850), ShouldEqual, "850")
			So(render.FormatStat(0), ShouldEqual, "0")
			So(render.FormatStat(999), ShouldEqual, "999")
		})
	})
}

func TestFormatKDA(t *testing.T) {
	Convey("Given kill, death, and assist counts", t, func() {
		So(render.FormatKDA(12, 3, 9), ShouldEqual, "12 / 3 / 9")
		So(render.FormatKDA(0, 0, 0), ShouldEqual, "0 / 0 / 0")
	})
}

func TestFormatClock(t *testing.T) {
	Convey("Given a game mode and duration", t, func() {
		Convey("Then seconds are zero-padded", func() {
			So(render.FormatClock("CLASSIC", 31*60+7), ShouldEqual, "CLASSIC • 31:07")
			So(render.FormatClock("ARAM", 19*60+40), ShouldEqual, "ARAM • 19:40")
			So(render.FormatClock("CLASSIC", 59), ShouldEqual, "CLASSIC • 0:59")
		})
	})
}
