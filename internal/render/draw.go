package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"strconv"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/okian/scorecard/internal/domain/layout"
	"github.com/okian/scorecard/internal/domain/match"
	"github.com/okian/scorecard/pkg/metrics"
)

// Fixed tile and padding sizes.
const (
	iconSize    = 40
	itemSize    = 24
	itemPad     = 2
	trinketGap  = 8
	textPadLeft = 16
)

// Scoreboard palette.
var (
	colBackground  = color.RGBA{R: 14, G: 20, B: 34, A: 255}
	colTitle       = color.RGBA{R: 240, G: 230, B: 210, A: 255}
	colText        = color.RGBA{R: 220, G: 224, B: 230, A: 255}
	colSubText     = color.RGBA{R: 150, G: 158, B: 170, A: 255}
	colWinBanner   = color.RGBA{R: 30, G: 60, B: 104, A: 255}
	colLossBanner  = color.RGBA{R: 96, G: 32, B: 44, A: 255}
	colWinRow      = color.RGBA{R: 22, G: 32, B: 52, A: 255}
	colLossRow     = color.RGBA{R: 44, G: 24, B: 30, A: 255}
	colTrackedRow  = color.RGBA{R: 58, G: 50, B: 26, A: 255}
	colEmptySlot   = color.RGBA{R: 28, G: 34, B: 46, A: 255}
	colPlaceholder = color.RGBA{R: 70, G: 76, B: 88, A: 255}
	colBadge       = color.RGBA{R: 10, G: 12, B: 18, A: 255}
)

// columns holds the x offsets of the scoreboard columns.
type columns struct {
	icon, name, items, kda, cs, gold, dmg int
}

func columnsFor(width int) columns {
	return columns{
		icon:  12,
		name:  64,
		items: width * 30 / 100,
		kda:   width * 63 / 100,
		cs:    width * 75 / 100,
		gold:  width * 82 / 100,
		dmg:   width * 91 / 100,
	}
}

// draw composes the full scoreboard bitmap. Row order is exactly the layout's
// order; asset loading already finished, so nothing here blocks.
func (r *Renderer) draw(lay *layout.Layout, m *match.Match, trackedPUUID string, assets []rowAssets) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, lay.Width, lay.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(colBackground), image.Point{}, draw.Src)

	tracked, _ := m.ParticipantByPUUID(trackedPUUID)
	title := "Defeat"
	if tracked != nil && tracked.Win {
		title = "Victory"
	}
	drawText(img, textPadLeft, 26, title, colTitle)
	drawText(img, textPadLeft, 44, FormatClock(m.Mode, m.DurationSeconds), colSubText)

	cols := columnsFor(lay.Width)
	idx := 0
	for ti := range lay.Teams {
		team := &lay.Teams[ti]
		r.drawTeamHeader(img, team, cols, lay.Width)
		for ri := range team.Rows {
			row := &team.Rows[ri]
			r.drawRow(img, row, &assets[idx], cols, team.Win, row.Participant.PUUID == trackedPUUID, lay.Width)
			idx++
		}
	}
	return img
}

func (r *Renderer) drawTeamHeader(img *image.RGBA, team *layout.Team, cols columns, width int) {
	banner := colLossBanner
	label := "Defeat"
	if team.Win {
		banner = colWinBanner
		label = "Victory"
	}
	rect := image.Rect(0, team.Y, width, team.Y+r.geom.TeamHeaderHeight)
	draw.Draw(img, rect, image.NewUniform(banner), image.Point{}, draw.Src)
	drawText(img, textPadLeft, team.Y+r.geom.TeamHeaderHeight/2+5, label, colTitle)

	labelY := team.Y + r.geom.TeamHeaderHeight + 16
	drawText(img, cols.name, labelY, "PLAYER", colSubText)
	drawText(img, cols.items, labelY, "ITEMS", colSubText)
	drawText(img, cols.kda, labelY, "K / D / A", colSubText)
	drawText(img, cols.cs, labelY, "CS", colSubText)
	drawText(img, cols.gold, labelY, "GOLD", colSubText)
	drawText(img, cols.dmg, labelY, "DMG", colSubText)
}

func (r *Renderer) drawRow(img *image.RGBA, row *layout.Row, ra *rowAssets, cols columns, win, tracked bool, width int) {
	tint := colLossRow
	if win {
		tint = colWinRow
	}
	if tracked {
		tint = colTrackedRow
	}
	rowRect := image.Rect(0, row.Y, width, row.Y+r.geom.RowHeight)
	draw.Draw(img, rowRect, image.NewUniform(tint), image.Point{}, draw.Src)

	p := &row.Participant

	iconTop := row.Y + (r.geom.RowHeight-iconSize)/2
	iconRect := image.Rect(cols.icon, iconTop, cols.icon+iconSize, iconTop+iconSize)
	if !drawIconTile(img, ra.champion, iconRect) {
		metrics.RecordPlaceholderTile()
	}
	badge := image.Rect(iconRect.Max.X-14, iconRect.Max.Y-12, iconRect.Max.X, iconRect.Max.Y)
	draw.Draw(img, badge, image.NewUniform(colBadge), image.Point{}, draw.Src)
	drawText(img, badge.Min.X+2, badge.Max.Y-2, strconv.Itoa(p.Level), colText)

	baseline := row.Y + r.geom.RowHeight/2 + 4
	drawText(img, cols.name, baseline-6, TruncateName(p.Name), colText)
	drawText(img, cols.name, baseline+10, p.Champion, colSubText)

	x := cols.items
	tileTop := row.Y + (r.geom.RowHeight-itemSize)/2
	for i, slot := range row.Slots {
		if slot.Kind == layout.SlotTrinket {
			x += trinketGap
		}
		tile := image.Rect(x, tileTop, x+itemSize, tileTop+itemSize)
		if slot.ID == 0 {
			draw.Draw(img, tile, image.NewUniform(colEmptySlot), image.Point{}, draw.Src)
		} else if !drawIconTile(img, ra.slots[i], tile) {
			metrics.RecordPlaceholderTile()
		}
		x += itemSize + itemPad
	}

	drawText(img, cols.kda, baseline, FormatKDA(p.Kills, p.Deaths, p.Assists), colText)
	drawText(img, cols.cs, baseline, strconv.Itoa(p.CreepScore()), colText)
	drawText(img, cols.gold, baseline, FormatStat(p.GoldEarned), colText)
	drawText(img, cols.dmg, baseline, FormatStat(p.DamageDealt), colText)
}

// drawIconTile scales the icon at path into rect. A missing path, unreadable
// file, or decode error degrades to a solid placeholder tile and returns
// false; it never fails the render.
func drawIconTile(img *image.RGBA, path string, rect image.Rectangle) bool {
	if path != "" {
		if icon, err := decodeIcon(path); err == nil {
			xdraw.ApproxBiLinear.Scale(img, rect, icon, icon.Bounds(), xdraw.Over, nil)
			return true
		}
	}
	draw.Draw(img, rect, image.NewUniform(colPlaceholder), image.Point{}, draw.Src)
	return false
}

func decodeIcon(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	icon, err := png.Decode(f)
	if err != nil {
		return nil, err
	}
	return icon, nil
}

func drawText(img *image.RGBA, x, y int, s string, col color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}
