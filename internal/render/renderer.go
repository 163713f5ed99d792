// Package render composes post-match scoreboard images.
//
// Rendering is admission controlled: a bounded number of composition slots,
// a timed wait for a free slot, and a single deadline covering slot wait,
// asset downloads, and drawing. Asset loading inside one admitted render fans
// out per participant and joins fully before any drawing starts.
package render

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/okian/scorecard/internal/domain/layout"
	"github.com/okian/scorecard/internal/domain/match"
	"github.com/okian/scorecard/pkg/logger"
	"github.com/okian/scorecard/pkg/metrics"
)

// Default renderer configuration constants.
const (
	defaultConcurrency   = 2
	defaultRenderTimeout = 10 * time.Second
	defaultAdmissionWait = 3 * time.Second
)

// AssetSource resolves icons to local file paths. An empty path means the
// asset is unavailable and a placeholder tile is drawn instead.
type AssetSource interface {
	ChampionIcon(ctx context.Context, name string) (string, error)
	ItemIcon(ctx context.Context, id int) (string, error)
}

// Renderer turns match snapshots into encoded scoreboard PNGs.
type Renderer struct {
	assets        AssetSource
	geom          layout.Geometry
	concurrency   int64
	renderTimeout time.Duration
	admissionWait time.Duration

	slots *semaphore.Weighted

	log logger.Logger
}

// New creates a Renderer with configuration options.
func New(assets AssetSource, opts ...Option) *Renderer {
	r := &Renderer{
		assets:        assets,
		geom:          layout.DefaultGeometry(),
		concurrency:   defaultConcurrency,
		renderTimeout: defaultRenderTimeout,
		admissionWait: defaultAdmissionWait,
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.log == nil {
		r.log = logger.Named("render")
	}
	r.slots = semaphore.NewWeighted(r.concurrency)

	return r
}

// RenderSummary renders the scoreboard for one tracked account and returns
// the encoded PNG. It either fully succeeds or fails before producing output;
// no partial bitmap is ever returned.
func (r *Renderer) RenderSummary(ctx context.Context, puuid string, m *match.Match) ([]byte, error) {
	job := newJob(puuid)

	tracked, ok := m.ParticipantByPUUID(puuid)
	if !ok {
		metrics.RecordRenderFailure("input")
		return nil, fmt.Errorf("%w: %s", ErrParticipantNotFound, puuid)
	}

	ctx, cancel := context.WithTimeout(ctx, r.renderTimeout)
	defer cancel()

	// Slot acquisition runs under a child deadline so "never admitted" stays
	// distinguishable from "admitted then cancelled".
	admStart := time.Now()
	admCtx, admCancel := context.WithTimeout(ctx, r.admissionWait)
	if err := r.slots.Acquire(admCtx, 1); err != nil {
		admCancel()
		if ctx.Err() != nil {
			metrics.RecordRenderFailure("cancelled")
			return nil, fmt.Errorf("render %s: %w", job.ID, ctx.Err())
		}
		metrics.RecordRenderFailure("admission_timeout")
		return nil, fmt.Errorf("render %s: %w", job.ID, ErrAdmissionTimeout)
	}
	admCancel()
	metrics.RecordAdmissionWait(float64(time.Since(admStart).Milliseconds()))
	metrics.RenderStarted()
	defer func() {
		r.slots.Release(1)
		metrics.RenderFinished()
	}()

	lay := layout.Compute(m.Participants, r.geom)

	assets, err := r.loadAssets(ctx, &lay)
	if err != nil {
		metrics.RecordRenderFailure("cancelled")
		return nil, fmt.Errorf("render %s: %w", job.ID, err)
	}

	img := r.draw(&lay, m, tracked.PUUID, assets)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		metrics.RecordRenderFailure("encode")
		return nil, fmt.Errorf("render %s: encode: %w", job.ID, err)
	}

	metrics.RecordRender()
	metrics.RecordRenderDuration(float64(time.Since(job.Started).Milliseconds()))
	r.log.Debug(ctx, "render complete",
		logger.String("job", job.ID),
		logger.String("puuid", puuid),
		logger.Int("width", lay.Width),
		logger.Int("height", lay.Height),
		logger.Duration("took", time.Since(job.Started)))
	return buf.Bytes(), nil
}

// rowAssets carries the resolved icon paths for one scoreboard row. The slots
// slice is parallel to the row's item bar.
type rowAssets struct {
	champion string
	slots    []string
}

// loadAssets fans out one loader per row and joins them all before returning.
// Individual fetch failures leave an empty path (drawn as a placeholder);
// only cancellation of the render's context aborts the join.
func (r *Renderer) loadAssets(ctx context.Context, lay *layout.Layout) ([]rowAssets, error) {
	rows := lay.Rows()
	out := make([]rowAssets, len(rows))

	g, gctx := errgroup.WithContext(ctx)
	for i, row := range rows {
		i, row := i, row
		g.Go(func() error {
			out[i] = r.loadRowAssets(gctx, row)
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("asset load interrupted: %w", err)
	}
	return out, nil
}

func (r *Renderer) loadRowAssets(ctx context.Context, row *layout.Row) rowAssets {
	ra := rowAssets{slots: make([]string, len(row.Slots))}

	path, err := r.assets.ChampionIcon(ctx, row.Participant.Champion)
	if err != nil {
		r.log.Warn(ctx, "champion icon unavailable",
			logger.String("champion", row.Participant.Champion), logger.Error(err))
	} else {
		ra.champion = path
	}

	for i, slot := range row.Slots {
		if slot.ID == 0 {
			continue
		}
		path, err := r.assets.ItemIcon(ctx, slot.ID)
		if err != nil {
			r.log.Warn(ctx, "item icon unavailable",
				logger.Int("item", slot.ID), logger.Error(err))
			continue
		}
		ra.slots[i] = path
	}
	return ra
}
