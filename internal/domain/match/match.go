// Package match defines the immutable match snapshot consumed by the renderer.
//
// The shapes mirror what the match-data provider returns; the renderer never
// mutates them.
package match

// Team position labels as reported by the provider.
const (
	PositionTop     = "TOP"
	PositionJungle  = "JUNGLE"
	PositionMiddle  = "MIDDLE"
	PositionBottom  = "BOTTOM"
	PositionUtility = "UTILITY"
)

// unknownPositionRank sorts unrecognized positions after every known lane.
const unknownPositionRank = 99

// positionRanks orders rows top lane first, support last.
var positionRanks = map[string]int{ //nolint:gochecknoglobals // static lookup table
	PositionTop:     0,
	PositionJungle:  1,
	PositionMiddle:  2,
	PositionBottom:  3,
	PositionUtility: 4,
}

// PositionRank returns the sort rank of a team position label. Unknown
// labels (remakes, arena modes) rank last.
func PositionRank(position string) int {
	if r, ok := positionRanks[position]; ok {
		return r
	}
	return unknownPositionRank
}

// Participant is one player's post-match snapshot.
type Participant struct {
	PUUID        string `json:"puuid"`
	Name         string `json:"riotIdGameName"`
	Champion     string `json:"championName"`
	Level        int    `json:"champLevel"`
	Kills        int    `json:"kills"`
	Deaths       int    `json:"deaths"`
	Assists      int    `json:"assists"`
	MinionKills  int    `json:"totalMinionsKilled"`
	JungleKills  int    `json:"neutralMinionsKilled"`
	GoldEarned   int    `json:"goldEarned"`
	DamageDealt  int    `json:"totalDamageDealtToChampions"`
	Win          bool   `json:"win"`
	TeamPosition string `json:"teamPosition"`

	// Inventory. Item id 0 is an empty slot everywhere.
	Item0    int `json:"item0"`
	Item1    int `json:"item1"`
	Item2    int `json:"item2"`
	Item3    int `json:"item3"`
	Item4    int `json:"item4"`
	Item5    int `json:"item5"`
	Trinket  int `json:"item6"`
	RoleItem int `json:"roleItem"`
}

// MainItems returns the six main inventory slots in declaration order.
func (p *Participant) MainItems() []int {
	return []int{p.Item0, p.Item1, p.Item2, p.Item3, p.Item4, p.Item5}
}

// CreepScore is the combined lane and jungle kill count shown in the CS column.
func (p *Participant) CreepScore() int {
	return p.MinionKills + p.JungleKills
}

// Match is the full match snapshot handed to the renderer.
type Match struct {
	Mode            string        `json:"gameMode"`
	DurationSeconds int           `json:"gameDuration"`
	Participants    []Participant `json:"participants"`
}

// ParticipantByPUUID finds the participant snapshot for a tracked account.
func (m *Match) ParticipantByPUUID(puuid string) (*Participant, bool) {
	for i := range m.Participants {
		if m.Participants[i].PUUID == puuid {
			return &m.Participants[i], true
		}
	}
	return nil, false
}
