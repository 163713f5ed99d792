package config_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/okian/scorecard/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDefaults(t *testing.T) {
	Convey("Given no file and no environment overrides", t, func() {
		cfg, err := config.Load(context.Background())
		So(err, ShouldBeNil)

		Convey("Then the defaults describe a working service", func() {
			So(cfg.Addr, ShouldEqual, ":9090")
			So(cfg.RenderConcurrency, ShouldEqual, 2)
			So(cfg.RenderTimeout, ShouldEqual, 10*time.Second)
			So(cfg.AdmissionWait, ShouldEqual, 3*time.Second)
			So(cfg.ImageWidth, ShouldEqual, 1000)
			So(cfg.MainItemSlots, ShouldEqual, 6)
			So(cfg.CacheDir, ShouldEqual, "cache")
		})
	})
}

func TestEnvOverrides(t *testing.T) {
	Convey("Given environment overrides", t, func() {
		t.Setenv("SCORECARD_ADDR", ":7070")
		t.Setenv("SCORECARD_RENDER_CONCURRENCY", "4")
		t.Setenv("SCORECARD_RENDER_TIMEOUT", "5s")
		t.Setenv("SCORECARD_ASSET_VERSION", "15.1.1")

		cfg, err := config.Load(context.Background())
		So(err, ShouldBeNil)

		Convey("Then the environment wins over defaults", func() {
			So(cfg.Addr, ShouldEqual, ":7070")
			So(cfg.RenderConcurrency, ShouldEqual, 4)
			So(cfg.RenderTimeout, ShouldEqual, 5*time.Second)
			So(cfg.AssetVersion, ShouldEqual, "15.1.1")
		})
	})
}

func TestValidation(t *testing.T) {
	Convey("Given invalid settings", t, func() {
		Convey("When the item slot count is out of range", func() {
			t.Setenv("SCORECARD_MAIN_ITEM_SLOTS", "5")
			_, err := config.Load(context.Background())
			So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
		})

		Convey("When the render concurrency is zero", func() {
			t.Setenv("SCORECARD_RENDER_CONCURRENCY", "0")
			_, err := config.Load(context.Background())
			So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
		})
	})
}
