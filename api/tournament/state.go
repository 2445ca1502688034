/* state.go
 * Contains the State of a single tournament: its roster, its stage and the bookkeeping needed while players join
 * and while the bot sets up channels. State is not safe for concurrent use. The registry that owns it is responsible
 * for serialising access
 */

package tournament

import (
	"errors"
	"fmt"
	"slices"

	"tournament-assistant/api/shared"
)

var (
	ErrInvalidStageTransition = errors.New("invalid stage transition")
	ErrCannotGoBack           = errors.New("cannot go back from the current stage")
	ErrScheduleRequired       = errors.New("a schedule is required to run the tournament")
)

// State is a tournament and everything the bot tracks about it
type State struct {
	Name    string
	GuildID uint64

	stage       Stage
	roundRobins int
	schedule    *shared.Schedule

	directors   map[uint64]struct{}
	readers     map[uint64]shared.Reader
	readerOrder []uint64
	teams       map[string]shared.Team
	teamOrder   []string
	players     map[uint64]shared.Player

	symbolToTeam       map[string]shared.Team
	joinTeamMessageIDs map[uint64]struct{}
	channelIDs         []uint64
	roleIDs            RoleIDs
}

// NewState creates an empty tournament in the Created stage
func NewState(guildID uint64, name string) *State {
	return &State{
		Name:               name,
		GuildID:            guildID,
		stage:              Created,
		directors:          make(map[uint64]struct{}),
		readers:            make(map[uint64]shared.Reader),
		teams:              make(map[string]shared.Team),
		players:            make(map[uint64]shared.Player),
		symbolToTeam:       make(map[string]shared.Team),
		joinTeamMessageIDs: make(map[uint64]struct{}),
		roleIDs:            NewRoleIDs(),
	}
}

// region Stage

// Stage returns the current stage of the tournament
func (s *State) Stage() Stage {
	return s.stage
}

// UpdateStage moves the tournament to a new stage.
// Preconditions: Receives the stage to move to. Forward moves are one stage at a time until the tournament is
// running; a running tournament can move to Rebracketing or Finals; Rebracketing returns to RunningTournament; any
// stage can move to Complete
// Postconditions: Returns the title and body to show for the new stage (empty when the stage has no prompt), or an
// error if the move is not allowed, in which case the stage is unchanged
func (s *State) UpdateStage(stage Stage) (string, string, error) {
	if !canMove(s.stage, stage) {
		return "", "", fmt.Errorf("%w: %s to %s", ErrInvalidStageTransition, s.stage, stage)
	}
	if stage >= RunningTournament && stage != Complete && s.schedule == nil {
		return "", "", ErrScheduleRequired
	}

	if stage == AddPlayers {
		s.ClearSymbolsToTeam()
		s.ClearJoinTeamMessageIDs()
	}
	s.stage = stage

	title, body := stagePromptFor(stage)
	return title, body, nil
}

// TryGoBack moves the tournament back one stage, undoing what the current stage's predecessor set up.
// Preconditions: The tournament is in SetRoundRobins, AddTeams or AddPlayers
// Postconditions: Returns the prompt for the previous stage, or ErrCannotGoBack and leaves the stage unchanged
func (s *State) TryGoBack() (string, string, error) {
	switch s.stage {
	case SetRoundRobins:
		s.readers = make(map[uint64]shared.Reader)
		s.readerOrder = nil
	case AddTeams:
		s.roundRobins = 0
	case AddPlayers:
		s.teams = make(map[string]shared.Team)
		s.teamOrder = nil
		s.players = make(map[uint64]shared.Player)
		s.ClearSymbolsToTeam()
		s.ClearJoinTeamMessageIDs()
	default:
		return "", "", fmt.Errorf("%w: %s", ErrCannotGoBack, s.stage)
	}

	s.stage--
	title, body := stagePromptFor(s.stage)
	return title, body, nil
}

func canMove(from Stage, to Stage) bool {
	if from == Complete {
		return false
	}
	if to == Complete {
		return true
	}

	switch {
	case from < RunningTournament:
		return to == from || to == from+1
	case from == RunningTournament:
		return to == Rebracketing || to == Finals
	case from == Rebracketing:
		return to == RunningTournament || to == Rebracketing
	}
	return false
}

func stagePromptFor(stage Stage) (string, string) {
	prompt, ok := stagePrompts[stage]
	if !ok {
		return "", ""
	}
	return prompt.title, prompt.body
}

// endregion

// region Directors

// TryAddDirector adds a director. Returns false if the user is already a director
func (s *State) TryAddDirector(id uint64) bool {
	if _, ok := s.directors[id]; ok {
		return false
	}
	s.directors[id] = struct{}{}
	return true
}

// TryRemoveDirector removes a director. Returns false if the user is not a director
func (s *State) TryRemoveDirector(id uint64) bool {
	if _, ok := s.directors[id]; !ok {
		return false
	}
	delete(s.directors, id)
	return true
}

func (s *State) IsDirector(id uint64) bool {
	_, ok := s.directors[id]
	return ok
}

// Directors returns the ids of the directors in ascending order
func (s *State) Directors() []uint64 {
	ids := make([]uint64, 0, len(s.directors))
	for id := range s.directors {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// endregion

// region Readers

// TryAddReader adds a reader. Returns false if the user is already a reader
func (s *State) TryAddReader(reader shared.Reader) bool {
	if _, ok := s.readers[reader.ID]; ok {
		return false
	}
	s.readers[reader.ID] = reader
	s.readerOrder = append(s.readerOrder, reader.ID)
	return true
}

// TryRemoveReader removes a reader. Returns false if the user is not a reader
func (s *State) TryRemoveReader(id uint64) bool {
	if _, ok := s.readers[id]; !ok {
		return false
	}
	delete(s.readers, id)
	s.readerOrder = slices.DeleteFunc(s.readerOrder, func(readerID uint64) bool { return readerID == id })
	return true
}

func (s *State) TryGetReader(id uint64) (shared.Reader, bool) {
	reader, ok := s.readers[id]
	return reader, ok
}

func (s *State) IsReader(id uint64) bool {
	_, ok := s.readers[id]
	return ok
}

// Readers returns the readers in the order they were added
func (s *State) Readers() []shared.Reader {
	readers := make([]shared.Reader, 0, len(s.readerOrder))
	for _, id := range s.readerOrder {
		readers = append(readers, s.readers[id])
	}
	return readers
}

// endregion

// region Teams

// AddTeams adds every team that is not already in the tournament. Team names are compared without case
// Postconditions: Returns the teams that were added
func (s *State) AddTeams(teams []shared.Team) []shared.Team {
	var added []shared.Team
	for _, team := range teams {
		key := team.Key()
		if key == "" {
			continue
		}
		if _, ok := s.teams[key]; ok {
			continue
		}
		s.teams[key] = team
		s.teamOrder = append(s.teamOrder, key)
		added = append(added, team)
	}
	return added
}

// RemoveTeams removes the teams from the tournament, along with their players and join symbols
// Postconditions: Returns the teams that were removed
func (s *State) RemoveTeams(teams []shared.Team) []shared.Team {
	var removed []shared.Team
	for _, team := range teams {
		existing, ok := s.teams[team.Key()]
		if !ok {
			continue
		}
		delete(s.teams, existing.Key())
		removed = append(removed, existing)
	}
	if len(removed) == 0 {
		return nil
	}

	s.teamOrder = slices.DeleteFunc(s.teamOrder, func(key string) bool {
		_, ok := s.teams[key]
		return !ok
	})
	for id, player := range s.players {
		if _, ok := s.teams[player.Team.Key()]; !ok {
			delete(s.players, id)
		}
	}
	for symbol, team := range s.symbolToTeam {
		if _, ok := s.teams[team.Key()]; !ok {
			delete(s.symbolToTeam, symbol)
		}
	}
	return removed
}

// TryGetTeamFromName looks up a team by name, ignoring case
func (s *State) TryGetTeamFromName(name string) (shared.Team, bool) {
	team, ok := s.teams[shared.TeamKey(name)]
	return team, ok
}

// Teams returns the teams in the order they were added
func (s *State) Teams() []shared.Team {
	teams := make([]shared.Team, 0, len(s.teamOrder))
	for _, key := range s.teamOrder {
		teams = append(teams, s.teams[key])
	}
	return teams
}

// TeamsByBracket groups the teams by bracket, in ascending bracket order. Empty brackets are skipped
func (s *State) TeamsByBracket() [][]shared.Team {
	byBracket := make(map[int][]shared.Team)
	var brackets []int
	for _, team := range s.Teams() {
		if _, ok := byBracket[team.Bracket]; !ok {
			brackets = append(brackets, team.Bracket)
		}
		byBracket[team.Bracket] = append(byBracket[team.Bracket], team)
	}
	slices.Sort(brackets)

	result := make([][]shared.Team, 0, len(brackets))
	for _, bracket := range brackets {
		result = append(result, byBracket[bracket])
	}
	return result
}

// SetTeamBracket moves a team to a different bracket. Players on the team keep their team
// Postconditions: Returns the updated team, or false if the team is not in the tournament
func (s *State) SetTeamBracket(name string, bracket int) (shared.Team, bool) {
	team, ok := s.teams[shared.TeamKey(name)]
	if !ok {
		return shared.Team{}, false
	}
	team.Bracket = bracket
	s.teams[team.Key()] = team
	for id, player := range s.players {
		if player.Team.Equals(team) {
			player.Team = team
			s.players[id] = player
		}
	}
	return team, true
}

// endregion

// region Players

// TryAddPlayer adds a player to their team.
// Postconditions: Returns false if the user is already on a team or the team is not in the tournament
func (s *State) TryAddPlayer(player shared.Player) bool {
	if _, ok := s.players[player.ID]; ok {
		return false
	}
	team, ok := s.teams[player.Team.Key()]
	if !ok {
		return false
	}
	player.Team = team
	s.players[player.ID] = player
	return true
}

// TryRemovePlayer removes a player. Returns false if the user is not on a team
func (s *State) TryRemovePlayer(id uint64) bool {
	if _, ok := s.players[id]; !ok {
		return false
	}
	delete(s.players, id)
	return true
}

// TryGetPlayerTeam returns the team the user plays for
func (s *State) TryGetPlayerTeam(id uint64) (shared.Team, bool) {
	player, ok := s.players[id]
	if !ok {
		return shared.Team{}, false
	}
	return player.Team, true
}

// Players returns every player ordered by user id
func (s *State) Players() []shared.Player {
	players := make([]shared.Player, 0, len(s.players))
	for _, player := range s.players {
		players = append(players, player)
	}
	slices.SortFunc(players, func(a, b shared.Player) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return players
}

// endregion

// region Join team bookkeeping

func (s *State) AddSymbolToTeam(symbol string, team shared.Team) {
	s.symbolToTeam[symbol] = team
}

func (s *State) ClearSymbolsToTeam() {
	s.symbolToTeam = make(map[string]shared.Team)
}

// TryGetTeamFromSymbol returns the team a join symbol was assigned to
func (s *State) TryGetTeamFromSymbol(symbol string) (shared.Team, bool) {
	team, ok := s.symbolToTeam[symbol]
	if !ok {
		return shared.Team{}, false
	}
	current, ok := s.teams[team.Key()]
	return current, ok
}

func (s *State) AddJoinTeamMessageID(id uint64) {
	s.joinTeamMessageIDs[id] = struct{}{}
}

func (s *State) ClearJoinTeamMessageIDs() {
	s.joinTeamMessageIDs = make(map[uint64]struct{})
}

// IsJoinTeamMessage reports whether the message is a live join prompt
func (s *State) IsJoinTeamMessage(id uint64) bool {
	_, ok := s.joinTeamMessageIDs[id]
	return ok
}

// JoinTeamMessageIDs returns the ids of the live join prompts in ascending order
func (s *State) JoinTeamMessageIDs() []uint64 {
	ids := make([]uint64, 0, len(s.joinTeamMessageIDs))
	for id := range s.joinTeamMessageIDs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// endregion

// region Schedule and setup

func (s *State) RoundRobins() int {
	return s.roundRobins
}

func (s *State) SetRoundRobins(count int) {
	s.roundRobins = count
}

// Schedule returns the schedule, which is nil until the tournament is running
func (s *State) Schedule() *shared.Schedule {
	return s.schedule
}

func (s *State) SetSchedule(schedule *shared.Schedule) {
	s.schedule = schedule
}

// ChannelIDs returns the ids of the channels created for the tournament
func (s *State) ChannelIDs() []uint64 {
	return slices.Clone(s.channelIDs)
}

func (s *State) SetChannelIDs(ids []uint64) {
	s.channelIDs = slices.Clone(ids)
}

// RoleIDs returns the ids of the roles created for the tournament
func (s *State) RoleIDs() RoleIDs {
	return s.roleIDs
}

func (s *State) SetRoleIDs(roles RoleIDs) {
	if roles.ReaderRoomRoleIDs == nil {
		roles.ReaderRoomRoleIDs = make(map[uint64]uint64)
	}
	if roles.TeamRoleIDs == nil {
		roles.TeamRoleIDs = make(map[string]uint64)
	}
	s.roleIDs = roles
}

// endregion
