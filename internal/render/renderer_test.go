package render_test

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/okian/scorecard/internal/domain/match"
	"github.com/okian/scorecard/internal/render"
	"github.com/okian/scorecard/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	_ = logger.Init()
	os.Exit(m.Run())
}

// stubAssets resolves every icon to the same path and counts lookups. When
// block is non-nil, champion lookups wait until it is closed or the context
// ends; entered receives one signal per blocked lookup.
type stubAssets struct {
	path       string
	champCalls atomic.Int32
	itemCalls  atomic.Int32
	block      chan struct{}
	entered    chan struct{}
}

func (s *stubAssets) ChampionIcon(ctx context.Context, name string) (string, error) {
	s.champCalls.Add(1)
	if s.block != nil {
		select {
		case s.entered <- struct{}{}:
		default:
		}
		select {
		case <-s.block:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return s.path, nil
}

func (s *stubAssets) ItemIcon(ctx context.Context, id int) (string, error) {
	s.itemCalls.Add(1)
	return s.path, nil
}

func testMatch(size int) *match.Match {
	positions := []string{
		match.PositionTop, match.PositionJungle, match.PositionMiddle,
		match.PositionBottom, match.PositionUtility,
	}
	m := &match.Match{Mode: "CLASSIC", DurationSeconds: 31*60 + 7}
	for i := 0; i < size; i++ {
		m.Participants = append(m.Participants, match.Participant{
			PUUID:        "puuid-" + string(rune('a'+i)),
			Name:         "Player" + string(rune('A'+i)),
			Champion:     "Ahri",
			Level:        15,
			Kills:        i,
			Deaths:       3,
			Assists:      7,
			GoldEarned:   15432,
			DamageDealt:  28950,
			Win:          i < size/2 || size == 1,
			TeamPosition: positions[i%len(positions)],
			Item0:        1001,
			Item2:        1002,
			Trinket:      3340,
		})
	}
	return m
}

func TestRenderSummary(t *testing.T) {
	Convey("Given a renderer over a healthy asset source", t, func() {
		assets := &stubAssets{}
		r := render.New(assets)

		Convey("When rendering a full ten-player match", func() {
			m := testMatch(10)
			img, err := r.RenderSummary(context.Background(), "puuid-a", m)
			So(err, ShouldBeNil)

			Convey("Then the output is a PNG with the exact layout dimensions", func() {
				decoded, decodeErr := png.Decode(bytes.NewReader(img))
				So(decodeErr, ShouldBeNil)
				So(decoded.Bounds().Dx(), ShouldEqual, 1000)
				// 60 + 2*(36+24+5*48) + 16 + 12
				So(decoded.Bounds().Dy(), ShouldEqual, 688)
			})

			Convey("And rendering the same input again yields identical bytes", func() {
				again, err := r.RenderSummary(context.Background(), "puuid-a", m)
				So(err, ShouldBeNil)
				So(bytes.Equal(again, img), ShouldBeTrue)
			})
		})

		Convey("When the tracked account is not in the match", func() {
			_, err := r.RenderSummary(context.Background(), "ghost", testMatch(10))

			Convey("Then it fails fast with no asset lookups at all", func() {
				So(errors.Is(err, render.ErrParticipantNotFound), ShouldBeTrue)
				So(assets.champCalls.Load(), ShouldEqual, 0)
				So(assets.itemCalls.Load(), ShouldEqual, 0)
			})
		})

		Convey("When every icon is unavailable", func() {
			broken := &stubAssets{path: ""}
			r := render.New(broken)
			img, err := r.RenderSummary(context.Background(), "puuid-a", testMatch(10))

			Convey("Then the render still succeeds with placeholder tiles", func() {
				So(err, ShouldBeNil)
				_, decodeErr := png.Decode(bytes.NewReader(img))
				So(decodeErr, ShouldBeNil)
			})
		})
	})
}

func TestRenderAdmission(t *testing.T) {
	Convey("Given a renderer with a single composition slot", t, func() {
		assets := &stubAssets{
			block:   make(chan struct{}),
			entered: make(chan struct{}, 1),
		}
		r := render.New(assets,
			render.WithConcurrency(1),
			render.WithAdmissionWait(50*time.Millisecond),
		)
		m := testMatch(1)

		Convey("When one render holds the slot", func() {
			type result struct {
				img []byte
				err error
			}
			first := make(chan result, 1)
			go func() {
				img, err := r.RenderSummary(context.Background(), "puuid-a", m)
				first <- result{img, err}
			}()
			<-assets.entered // slot is held, asset load in progress

			Convey("Then a second render fails with an admission timeout", func() {
				_, err := r.RenderSummary(context.Background(), "puuid-a", m)
				So(errors.Is(err, render.ErrAdmissionTimeout), ShouldBeTrue)

				Convey("And once the slot frees, renders are admitted again", func() {
					close(assets.block)
					res := <-first
					So(res.err, ShouldBeNil)
					So(res.img, ShouldNotBeEmpty)

					_, err := r.RenderSummary(context.Background(), "puuid-a", m)
					So(err, ShouldBeNil)
				})
			})
		})
	})
}

func TestRenderCancellation(t *testing.T) {
	Convey("Given a renderer whose asset source never responds", t, func() {
		assets := &stubAssets{
			block:   make(chan struct{}),
			entered: make(chan struct{}, 1),
		}
		r := render.New(assets, render.WithConcurrency(1))
		m := testMatch(1)

		Convey("When the caller cancels mid-render", func() {
			ctx, cancel := context.WithCancel(context.Background())
			go func() {
				<-assets.entered
				cancel()
			}()
			_, err := r.RenderSummary(ctx, "puuid-a", m)

			Convey("Then the failure is a cancellation, not an admission timeout", func() {
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
				So(errors.Is(err, render.ErrAdmissionTimeout), ShouldBeFalse)
			})

			Convey("And the slot was released on the way out", func() {
				// Reuse the same renderer; a fresh render must be admitted
				// immediately even though the previous one was cancelled.
				assets.block = nil
				img, err := r.RenderSummary(context.Background(), "puuid-a", m)
				So(err, ShouldBeNil)
				So(img, ShouldNotBeEmpty)
			})
		})
	})
}
