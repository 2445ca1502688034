/* models.go
 * This file contains the values returned by the API
 */

package api

import (
	"tournament-assistant/api/shared"
	"tournament-assistant/api/tournament"
)

// StageUpdate describes the stage a tournament moved to and the text to show for it. Title and Body are empty when
// the stage has nothing to show
type StageUpdate struct {
	Stage tournament.Stage
	Title string
	Body  string
}

// HasPrompt reports whether there is text to show for the stage
func (s StageUpdate) HasPrompt() bool {
	return s.Title != "" || s.Body != ""
}

// SetupResult is returned when the tournament has been scheduled and is waiting for channels and roles
type SetupResult struct {
	Schedule  *shared.Schedule
	Directors []uint64
	Readers   []shared.Reader
	Teams     []shared.Team
	Players   []shared.Player
	Update    StageUpdate
}

// RebracketResult holds the rounds added by a rebracket. FirstRound is the number of the first added round
type RebracketResult struct {
	Rounds     []shared.Round
	FirstRound int
	Update     StageUpdate
}

// TeamSchedule is every game one team plays. Rounds[i] is the number of the round Games[i] is in
type TeamSchedule struct {
	Team   shared.Team
	Rounds []int
	Games  []shared.Game
}

// EndResult holds what the caller has to clean up once a tournament has ended
type EndResult struct {
	Name       string
	ChannelIDs []uint64
	Roles      tournament.RoleIDs
}

// Summary is a read only view of the current tournament
type Summary struct {
	GuildID     uint64          `json:"guildId,string"`
	Name        string          `json:"name"`
	Stage       string          `json:"stage"`
	RoundRobins int             `json:"roundRobins"`
	Directors   []uint64        `json:"directors"`
	Readers     []ReaderSummary `json:"readers"`
	Teams       []TeamSummary   `json:"teams"`
	Rounds      int             `json:"rounds"`
}

type ReaderSummary struct {
	ID   uint64 `json:"id,string"`
	Name string `json:"name"`
}

type TeamSummary struct {
	Name    string   `json:"name"`
	Bracket int      `json:"bracket"`
	Players []uint64 `json:"players"`
}

func newSummary(state *tournament.State) Summary {
	summary := Summary{
		GuildID:     state.GuildID,
		Name:        state.Name,
		Stage:       state.Stage().String(),
		RoundRobins: state.RoundRobins(),
		Directors:   state.Directors(),
		Readers:     []ReaderSummary{},
		Teams:       []TeamSummary{},
	}
	for _, reader := range state.Readers() {
		summary.Readers = append(summary.Readers, ReaderSummary{ID: reader.ID, Name: reader.Name})
	}

	playersByTeam := make(map[string][]uint64)
	for _, player := range state.Players() {
		playersByTeam[player.Team.Key()] = append(playersByTeam[player.Team.Key()], player.ID)
	}
	for _, team := range state.Teams() {
		players := playersByTeam[team.Key()]
		if players == nil {
			players = []uint64{}
		}
		summary.Teams = append(summary.Teams, TeamSummary{Name: team.Name, Bracket: team.Bracket, Players: players})
	}

	if schedule := state.Schedule(); schedule != nil {
		summary.Rounds = len(schedule.Rounds)
	}
	return summary
}

// copySchedule returns a schedule that shares no slices with the tournament's
func copySchedule(schedule *shared.Schedule) *shared.Schedule {
	if schedule == nil {
		return nil
	}
	copied := &shared.Schedule{Rounds: make([]shared.Round, len(schedule.Rounds))}
	for i, round := range schedule.Rounds {
		copied.Rounds[i] = shared.Round{Games: append([]shared.Game(nil), round.Games...)}
	}
	return copied
}
