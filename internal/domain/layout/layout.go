// Package layout computes scoreboard geometry from match participants.
//
// Everything here is pure: no I/O, no shared state, deterministic output for
// identical input. The renderer draws exactly what this package lays out.
package layout

import (
	"sort"

	"github.com/okian/scorecard/internal/domain/match"
)

// Geometry holds the pixel dimensions the layout is computed against.
type Geometry struct {
	Width              int
	HeaderHeight       int
	TeamHeaderHeight   int
	ColumnHeaderHeight int
	RowHeight          int
	TeamSpacing        int
	BottomPadding      int
	MainSlots          int
}

// DefaultGeometry returns the standard scoreboard dimensions.
func DefaultGeometry() Geometry {
	return Geometry{
		Width:              1000,
		HeaderHeight:       60,
		TeamHeaderHeight:   36,
		ColumnHeaderHeight: 24,
		RowHeight:          48,
		TeamSpacing:        16,
		BottomPadding:      12,
		MainSlots:          6,
	}
}

// SlotKind distinguishes how an item cell is drawn.
type SlotKind int

// Item cell kinds.
const (
	SlotMain SlotKind = iota
	SlotTrinket
	SlotRole
)

// ItemSlot is one cell of a row's item bar. ID 0 means an empty placeholder
// cell; empty cells are never fetched or drawn with network content.
type ItemSlot struct {
	Kind SlotKind
	ID   int
}

// Row is one participant line with its packed item bar and vertical offset.
type Row struct {
	Participant match.Participant
	Y           int
	Slots       []ItemSlot
}

// Team groups the rows of one side with its banner offset.
type Team struct {
	Win  bool
	Y    int
	Rows []Row
}

// Layout is the complete computed scoreboard geometry.
type Layout struct {
	Width  int
	Height int
	Teams  []Team
}

// Rows returns all rows across teams in draw order.
func (l *Layout) Rows() []*Row {
	var rows []*Row
	for ti := range l.Teams {
		for ri := range l.Teams[ti].Rows {
			rows = append(rows, &l.Teams[ti].Rows[ri])
		}
	}
	return rows
}

// PackItems left-compacts the non-zero item ids into a bar of the given slot
// count. Zeros are filtered out, the remainder keeps its order, and trailing
// cells are padded with 0. Ids beyond the slot count are dropped.
func PackItems(items []int, slots int) []int {
	packed := make([]int, 0, slots)
	for _, id := range items {
		if id == 0 {
			continue
		}
		if len(packed) == slots {
			break
		}
		packed = append(packed, id)
	}
	for len(packed) < slots {
		packed = append(packed, 0)
	}
	return packed
}

// Compute partitions participants into winning and losing teams, orders each
// team by lane position (unknown positions last, input order preserved among
// them), packs every item bar, and assigns pixel offsets.
//
// The resulting height is exactly:
//
//	header + Σ(teamHeader + columnHeader + rows·rowHeight) + teamSpacing·(teams-1) + bottomPadding
func Compute(participants []match.Participant, g Geometry) Layout {
	var winners, losers []match.Participant
	for _, p := range participants {
		if p.Win {
			winners = append(winners, p)
		} else {
			losers = append(losers, p)
		}
	}

	l := Layout{Width: g.Width}
	y := g.HeaderHeight
	for _, side := range [][]match.Participant{winners, losers} {
		if len(side) == 0 {
			continue
		}
		if len(l.Teams) > 0 {
			y += g.TeamSpacing
		}
		team := Team{Win: side[0].Win, Y: y}
		y += g.TeamHeaderHeight + g.ColumnHeaderHeight

		sort.SliceStable(side, func(i, j int) bool {
			return match.PositionRank(side[i].TeamPosition) < match.PositionRank(side[j].TeamPosition)
		})

		for _, p := range side {
			team.Rows = append(team.Rows, Row{
				Participant: p,
				Y:           y,
				Slots:       itemBar(&p, g.MainSlots),
			})
			y += g.RowHeight
		}
		l.Teams = append(l.Teams, team)
	}
	l.Height = y + g.BottomPadding
	return l
}

// itemBar builds the full cell sequence for one row: packed main slots, then
// the trinket cell, then the role cell only when a role item is present.
func itemBar(p *match.Participant, mainSlots int) []ItemSlot {
	bar := make([]ItemSlot, 0, mainSlots+2)
	for _, id := range PackItems(p.MainItems(), mainSlots) {
		bar = append(bar, ItemSlot{Kind: SlotMain, ID: id})
	}
	bar = append(bar, ItemSlot{Kind: SlotTrinket, ID: p.Trinket})
	if p.RoleItem != 0 {
		bar = append(bar, ItemSlot{Kind: SlotRole, ID: p.RoleItem})
	}
	return bar
}
