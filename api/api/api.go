/* api.go
 * This file contains the public methods the bot uses to run tournaments. Every method resolves the guild's registry,
 * takes the lock it needs on the current tournament and returns either a value or an error describing why the action
 * was refused. No Discord calls are made here; the caller reflects the result into Discord once the lock is released
 */

package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"tournament-assistant/api/logic"
	"tournament-assistant/api/registry"
	"tournament-assistant/api/schedule"
	"tournament-assistant/api/shared"
	"tournament-assistant/api/store"
	"tournament-assistant/api/tournament"

	"github.com/google/uuid"
)

// MaxRoundRobins is the largest number of round robins a tournament can have
const MaxRoundRobins = 10

// API provides methods for running the tournaments of every guild
type API struct {
	Directory *registry.Directory
	Store     store.Interface
	Generator *schedule.Generator

	lockTimeout time.Duration
	now         func() time.Time
	newID       func() string
}

// NewAPI creates a new API instance.
// Preconditions: Receives the archive store, which may be nil to disable archiving, and how long actions wait for a
// tournament's lock (zero uses the registry default)
// Postconditions: Returns the API
func NewAPI(archive store.Interface, lockTimeout time.Duration) *API {
	return &API{
		Directory:   registry.NewDirectory(),
		Store:       archive,
		Generator:   schedule.NewGenerator(nil),
		lockTimeout: lockTimeout,
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

// Registry returns the guild's registry, creating it on first use
func (a *API) Registry(guildID uint64) *registry.Registry {
	return a.Directory.GetOrAdd(guildID, func(id uint64) *registry.Registry {
		return registry.NewRegistry(id, a.lockTimeout)
	})
}

// region Directors and pending tournaments

// AddDirector makes the user a director of the named tournament. If no tournament has that name a pending one is
// created. The running tournament is updated directly when it has the name
// Postconditions: Returns ErrAlreadyDirector if the user was already a director
func (a *API) AddDirector(ctx context.Context, guildID uint64, name string, userID uint64) error {
	if name == "" {
		return ErrInvalidTournamentName
	}
	r := a.Registry(guildID)

	added, err := registry.ReadWrite(ctx, r, func(state *tournament.State) (bool, error) {
		if state.Name != name {
			return false, errNotCurrent
		}
		return state.TryAddDirector(userID), nil
	})
	switch {
	case err == nil:
		return directorResult(added)
	case !errors.Is(err, errNotCurrent) && !errors.Is(err, registry.ErrNoCurrentTournament):
		return err
	}

	initial := tournament.NewState(guildID, name)
	added = initial.TryAddDirector(userID)
	r.AddOrUpdateTournament(name, initial, func(existing *tournament.State) *tournament.State {
		added = existing.TryAddDirector(userID)
		return existing
	})
	return directorResult(added)
}

// RemoveDirector removes the user as a director of the named tournament
// Postconditions: Returns ErrNotDirector if the user was not a director, or registry.ErrTournamentNotFound if there is
// no tournament with that name
func (a *API) RemoveDirector(ctx context.Context, guildID uint64, name string, userID uint64) error {
	r := a.Registry(guildID)

	removed, err := registry.ReadWrite(ctx, r, func(state *tournament.State) (bool, error) {
		if state.Name != name {
			return false, errNotCurrent
		}
		return state.TryRemoveDirector(userID), nil
	})
	if err != nil {
		if !errors.Is(err, errNotCurrent) && !errors.Is(err, registry.ErrNoCurrentTournament) {
			return err
		}
		found := r.WithPendingTournament(name, func(state *tournament.State) {
			removed = state.TryRemoveDirector(userID)
		})
		if !found {
			return fmt.Errorf("%w: '%s'", registry.ErrTournamentNotFound, name)
		}
	}

	if !removed {
		return ErrNotDirector
	}
	return nil
}

// CancelTournament deletes a pending tournament so it can no longer be set up
// Preconditions: The user is a director of the pending tournament or an administrator
// Postconditions: Returns registry.ErrTournamentNotFound if no pending tournament has the name
func (a *API) CancelTournament(guildID uint64, name string, userID uint64, isAdmin bool) error {
	r := a.Registry(guildID)

	allowed := false
	found := r.WithPendingTournament(name, func(state *tournament.State) {
		allowed = isAdmin || state.IsDirector(userID)
	})
	if !found {
		return fmt.Errorf("%w: no pending tournament is called '%s'", registry.ErrTournamentNotFound, name)
	}
	if !allowed {
		return ErrPermissionDenied
	}
	if !r.RemovePendingTournament(name) {
		return fmt.Errorf("%w: '%s'", registry.ErrTournamentNotFound, name)
	}
	log.Printf("[guild %d] pending tournament '%s' was cancelled", guildID, name)
	return nil
}

// PendingTournaments returns the names of the guild's tournaments that have not started
func (a *API) PendingTournaments(guildID uint64) []string {
	return a.Registry(guildID).PendingTournamentNames()
}

// CurrentTournamentName returns the name of the guild's running tournament
func (a *API) CurrentTournamentName(ctx context.Context, guildID uint64) (string, error) {
	return registry.Read(ctx, a.Registry(guildID), func(state *tournament.State) (string, error) {
		return state.Name, nil
	})
}

// CanManage reports whether the user may direct the current tournament: server administrators always can, otherwise
// the user must be one of its directors
func (a *API) CanManage(ctx context.Context, guildID uint64, userID uint64, isAdmin bool) (bool, error) {
	if isAdmin {
		return true, nil
	}
	return registry.Read(ctx, a.Registry(guildID), func(state *tournament.State) (bool, error) {
		return state.IsDirector(userID), nil
	})
}

// IsReader reports whether the user reads for the current tournament
func (a *API) IsReader(ctx context.Context, guildID uint64, userID uint64) (bool, error) {
	return registry.Read(ctx, a.Registry(guildID), func(state *tournament.State) (bool, error) {
		return state.IsReader(userID), nil
	})
}

// endregion

// region Setup stages

// Setup starts setting up a pending tournament, making it the guild's current tournament
// Preconditions: The user is a director of the pending tournament or an administrator, and no tournament is running
// Postconditions: The tournament is current and in the AddReaders stage, or an error is returned
func (a *API) Setup(ctx context.Context, guildID uint64, name string, userID uint64, isAdmin bool) (StageUpdate, error) {
	r := a.Registry(guildID)

	allowed := false
	found := r.WithPendingTournament(name, func(state *tournament.State) {
		allowed = isAdmin || state.IsDirector(userID)
	})
	if !found {
		return StageUpdate{}, fmt.Errorf("%w: '%s'", registry.ErrTournamentNotFound, name)
	}
	if !allowed {
		return StageUpdate{}, ErrPermissionDenied
	}

	if err := r.TrySetCurrentTournament(ctx, name); err != nil {
		return StageUpdate{}, err
	}

	return a.moveStage(ctx, guildID, tournament.AddReaders, func(state *tournament.State) error {
		return requireStage(state, tournament.Created)
	})
}

// AddReaders adds readers to the current tournament
// Postconditions: Returns the readers that were added; readers that were already added are skipped
func (a *API) AddReaders(ctx context.Context, guildID uint64, readers []shared.Reader) ([]shared.Reader, error) {
	return registry.ReadWrite(ctx, a.Registry(guildID), func(state *tournament.State) ([]shared.Reader, error) {
		if err := requireStage(state, tournament.AddReaders); err != nil {
			return nil, err
		}
		var added []shared.Reader
		for _, reader := range readers {
			if state.TryAddReader(reader) {
				added = append(added, reader)
			}
		}
		if len(added) == 0 && len(readers) > 0 {
			return nil, ErrAlreadyReader
		}
		return added, nil
	})
}

// RemoveReader removes a reader from the current tournament
func (a *API) RemoveReader(ctx context.Context, guildID uint64, readerID uint64) error {
	return a.Registry(guildID).TryReadWriteActionOnCurrentTournament(ctx, func(state *tournament.State) error {
		if err := requireStage(state, tournament.AddReaders); err != nil {
			return err
		}
		if !state.TryRemoveReader(readerID) {
			return ErrNotAReader
		}
		return nil
	})
}

// FinishReaders moves on from adding readers
// Preconditions: At least one reader has been added
func (a *API) FinishReaders(ctx context.Context, guildID uint64) (StageUpdate, error) {
	return a.moveStage(ctx, guildID, tournament.SetRoundRobins, func(state *tournament.State) error {
		if err := requireStage(state, tournament.AddReaders); err != nil {
			return err
		}
		if len(state.Readers()) == 0 {
			return schedule.ErrNoReaders
		}
		return nil
	})
}

// SetRoundRobins sets how many times each bracket's round robin is played and moves on to adding teams
func (a *API) SetRoundRobins(ctx context.Context, guildID uint64, count int) (StageUpdate, error) {
	return a.moveStage(ctx, guildID, tournament.AddTeams, func(state *tournament.State) error {
		if err := requireStage(state, tournament.SetRoundRobins); err != nil {
			return err
		}
		if count < 1 || count > MaxRoundRobins {
			return ErrInvalidRoundRobins
		}
		state.SetRoundRobins(count)
		return nil
	})
}

// AddTeams adds the teams of each bracket and moves on to adding players
// Preconditions: Receives the team names of each bracket, as returned by logic.ParseBrackets
// Postconditions: Returns the teams that were added and the AddPlayers prompt
func (a *API) AddTeams(ctx context.Context, guildID uint64, brackets [][]string) ([]shared.Team, StageUpdate, error) {
	if len(brackets) > schedule.MaxBrackets {
		return nil, StageUpdate{}, fmt.Errorf("%w: at most %d brackets are supported", schedule.ErrTooManyBrackets, schedule.MaxBrackets)
	}

	var added []shared.Team
	update, err := a.moveStage(ctx, guildID, tournament.AddPlayers, func(state *tournament.State) error {
		if err := requireStage(state, tournament.AddTeams); err != nil {
			return err
		}
		added = state.AddTeams(logic.ToTeams(brackets))
		if len(state.Teams()) < 2 {
			state.RemoveTeams(added)
			return schedule.ErrNotEnoughTeams
		}
		return nil
	})
	if err != nil {
		return nil, StageUpdate{}, err
	}
	return added, update, nil
}

// RegisterJoinMessage records a join team prompt and the symbol used for each team on it
// Preconditions: Receives the message id and a map of symbol to team name
func (a *API) RegisterJoinMessage(ctx context.Context, guildID uint64, messageID uint64, symbols map[string]string) error {
	return a.Registry(guildID).TryReadWriteActionOnCurrentTournament(ctx, func(state *tournament.State) error {
		if err := requireStage(state, tournament.AddPlayers); err != nil {
			return err
		}
		for symbol, name := range symbols {
			team, ok := state.TryGetTeamFromName(name)
			if !ok {
				return fmt.Errorf("%w: '%s'", ErrTeamNotFound, name)
			}
			state.AddSymbolToTeam(symbol, team)
		}
		state.AddJoinTeamMessageID(messageID)
		return nil
	})
}

// JoinMessageIDs returns the ids of the live join team prompts
func (a *API) JoinMessageIDs(ctx context.Context, guildID uint64) ([]uint64, error) {
	return registry.Read(ctx, a.Registry(guildID), func(state *tournament.State) ([]uint64, error) {
		return state.JoinTeamMessageIDs(), nil
	})
}

// AddPlayer puts the user on the team that best matches teamName
// Postconditions: Returns the team the player joined
func (a *API) AddPlayer(ctx context.Context, guildID uint64, userID uint64, teamName string) (shared.Team, error) {
	return registry.ReadWrite(ctx, a.Registry(guildID), func(state *tournament.State) (shared.Team, error) {
		if state.Stage() < tournament.AddPlayers || state.Stage() == tournament.Complete {
			return shared.Team{}, wrongStage(state)
		}
		team, err := matchTeam(state, teamName)
		if err != nil {
			return shared.Team{}, err
		}
		return addPlayer(state, userID, team)
	})
}

// AddPlayerBySymbol handles a reaction on a join team prompt
// Postconditions: Returns the team the player joined, ErrNotJoinMessage if the message is not a live prompt, or
// ErrTeamNotFound if the symbol belongs to no team
func (a *API) AddPlayerBySymbol(ctx context.Context, guildID uint64, messageID uint64, userID uint64, symbol string) (shared.Team, error) {
	return registry.ReadWrite(ctx, a.Registry(guildID), func(state *tournament.State) (shared.Team, error) {
		if state.Stage() != tournament.AddPlayers || !state.IsJoinTeamMessage(messageID) {
			return shared.Team{}, ErrNotJoinMessage
		}
		team, ok := state.TryGetTeamFromSymbol(symbol)
		if !ok {
			return shared.Team{}, fmt.Errorf("%w: no team uses %s", ErrTeamNotFound, symbol)
		}
		return addPlayer(state, userID, team)
	})
}

// RemovePlayer takes the user off their team
// Postconditions: Returns the team the player left
func (a *API) RemovePlayer(ctx context.Context, guildID uint64, userID uint64) (shared.Team, error) {
	return registry.ReadWrite(ctx, a.Registry(guildID), func(state *tournament.State) (shared.Team, error) {
		team, ok := state.TryGetPlayerTeam(userID)
		if !ok {
			return shared.Team{}, ErrNotAPlayer
		}
		state.TryRemovePlayer(userID)
		return team, nil
	})
}

// GoBack undoes the current setup stage
func (a *API) GoBack(ctx context.Context, guildID uint64) (StageUpdate, error) {
	return registry.ReadWrite(ctx, a.Registry(guildID), func(state *tournament.State) (StageUpdate, error) {
		title, body, err := state.TryGoBack()
		if err != nil {
			return StageUpdate{}, err
		}
		logStage(state)
		return StageUpdate{Stage: state.Stage(), Title: title, Body: body}, nil
	})
}

// endregion

// region Running the tournament

// Start generates the schedule and moves the tournament to BotSetup. The schedule is kept by the caller until the
// channels and roles exist, then handed back through CompleteSetup
// Postconditions: Returns the schedule and roster to provision, or the scheduling error; on error the tournament is
// left in AddPlayers unchanged
func (a *API) Start(ctx context.Context, guildID uint64) (SetupResult, error) {
	return registry.ReadWrite(ctx, a.Registry(guildID), func(state *tournament.State) (SetupResult, error) {
		if err := requireStage(state, tournament.AddPlayers); err != nil {
			return SetupResult{}, err
		}

		generated, err := a.Generator.Generate(state.TeamsByBracket(), state.Readers(), state.RoundRobins())
		if err != nil {
			return SetupResult{}, fmt.Errorf("unable to start the tournament: %w", err)
		}

		title, body, err := state.UpdateStage(tournament.BotSetup)
		if err != nil {
			return SetupResult{}, err
		}
		logStage(state)

		return SetupResult{
			Schedule:  generated,
			Directors: state.Directors(),
			Readers:   state.Readers(),
			Teams:     state.Teams(),
			Players:   state.Players(),
			Update:    StageUpdate{Stage: tournament.BotSetup, Title: title, Body: body},
		}, nil
	})
}

// CompleteSetup stores the schedule and the ids of the channels and roles created for it, and starts the tournament
func (a *API) CompleteSetup(ctx context.Context, guildID uint64, generated *shared.Schedule, channelIDs []uint64, roles tournament.RoleIDs) (StageUpdate, error) {
	return a.moveStage(ctx, guildID, tournament.RunningTournament, func(state *tournament.State) error {
		if err := requireStage(state, tournament.BotSetup); err != nil {
			return err
		}
		state.SetSchedule(generated)
		state.SetChannelIDs(channelIDs)
		state.SetRoleIDs(roles)
		return nil
	})
}

// BeginRebracket pauses the running tournament so the teams can be put into new brackets
func (a *API) BeginRebracket(ctx context.Context, guildID uint64) (StageUpdate, error) {
	return a.moveStage(ctx, guildID, tournament.Rebracketing, func(state *tournament.State) error {
		return requireStage(state, tournament.RunningTournament)
	})
}

// Rebracket puts the named teams into new brackets and appends a round robin for them to the schedule
// Preconditions: The tournament is Rebracketing. Receives the team names of each new bracket
// Postconditions: Returns the rounds that were added and the number of the first of them; on error the teams and
// schedule are unchanged
func (a *API) Rebracket(ctx context.Context, guildID uint64, brackets [][]string) (RebracketResult, error) {
	var result RebracketResult
	update, err := a.moveStage(ctx, guildID, tournament.RunningTournament, func(state *tournament.State) error {
		if err := requireStage(state, tournament.Rebracketing); err != nil {
			return err
		}

		var names []string
		var bracketOf []int
		for i, bracket := range brackets {
			for _, name := range bracket {
				names = append(names, name)
				bracketOf = append(bracketOf, i)
			}
		}
		teams, err := matchTeams(state, names)
		if err != nil {
			return err
		}

		teamsByBracket := make([][]shared.Team, len(brackets))
		for i := range teams {
			teams[i].Bracket = bracketOf[i]
			teamsByBracket[teams[i].Bracket] = append(teamsByBracket[teams[i].Bracket], teams[i])
		}

		generated, err := a.Generator.Generate(teamsByBracket, state.Readers(), state.RoundRobins())
		if err != nil {
			return fmt.Errorf("unable to rebracket: %w", err)
		}

		for _, team := range teams {
			state.SetTeamBracket(team.Name, team.Bracket)
		}
		result.FirstRound = len(state.Schedule().Rounds) + 1
		state.Schedule().Append(generated)
		result.Rounds = generated.Rounds
		return nil
	})
	if err != nil {
		return RebracketResult{}, err
	}
	result.Update = update
	return result, nil
}

// Finals schedules the final between two teams, read by the given reader
// Postconditions: Returns the final's game
func (a *API) Finals(ctx context.Context, guildID uint64, readerID uint64, firstTeam string, secondTeam string) (shared.Game, StageUpdate, error) {
	var final shared.Game
	update, err := a.moveStage(ctx, guildID, tournament.Finals, func(state *tournament.State) error {
		if err := requireStage(state, tournament.RunningTournament); err != nil {
			return err
		}
		reader, ok := state.TryGetReader(readerID)
		if !ok {
			return ErrNotAReader
		}
		teams, err := matchTeams(state, []string{firstTeam, secondTeam})
		if err != nil {
			return err
		}
		if teams[0].Equals(teams[1]) {
			return ErrSameTeam
		}

		final = shared.Game{Teams: [2]shared.Team{teams[0], teams[1]}, Reader: reader}
		state.Schedule().AddRound(shared.Round{Games: []shared.Game{final}})
		return nil
	})
	if err != nil {
		return shared.Game{}, StageUpdate{}, err
	}
	return final, update, nil
}

// End completes the current tournament, removes it from the guild and archives it. Completing and removing happen
// under one lock, so a tournament is never left current once it is Complete
// Postconditions: Returns the channels and roles the caller should delete
func (a *API) End(ctx context.Context, guildID uint64) (EndResult, error) {
	var result EndResult
	var record *store.TournamentRecord
	err := a.Registry(guildID).TryClearCurrentTournament(ctx, func(state *tournament.State) error {
		if state.Stage() != tournament.Complete {
			if _, _, err := state.UpdateStage(tournament.Complete); err != nil {
				return err
			}
			logStage(state)
		}

		if a.Store != nil {
			archived := store.NewTournamentRecord(a.newID(), state, a.now())
			record = &archived
		}
		result = EndResult{Name: state.Name, ChannelIDs: state.ChannelIDs(), Roles: state.RoleIDs()}
		return nil
	})
	if err != nil {
		return EndResult{}, err
	}

	if record != nil {
		if err := a.Store.ArchiveTournament(ctx, *record); err != nil {
			log.Printf("[guild %d] failed to archive tournament '%s': %v", guildID, record.Name, err)
		}
	}
	return result, nil
}

// endregion

// region Views

// Summary returns a view of the current tournament
func (a *API) Summary(ctx context.Context, guildID uint64) (Summary, error) {
	return registry.Read(ctx, a.Registry(guildID), func(state *tournament.State) (Summary, error) {
		return newSummary(state), nil
	})
}

// Schedule returns a copy of the current tournament's schedule
func (a *API) Schedule(ctx context.Context, guildID uint64) (*shared.Schedule, error) {
	return registry.Read(ctx, a.Registry(guildID), func(state *tournament.State) (*shared.Schedule, error) {
		if state.Schedule() == nil {
			return nil, wrongStage(state)
		}
		return copySchedule(state.Schedule()), nil
	})
}

// TeamSchedule returns the games the named team plays in the current tournament
func (a *API) TeamSchedule(ctx context.Context, guildID uint64, teamName string) (TeamSchedule, error) {
	return registry.Read(ctx, a.Registry(guildID), func(state *tournament.State) (TeamSchedule, error) {
		if state.Schedule() == nil {
			return TeamSchedule{}, wrongStage(state)
		}
		team, err := matchTeam(state, teamName)
		if err != nil {
			return TeamSchedule{}, err
		}
		rounds, games := state.Schedule().GamesForTeam(team)
		return TeamSchedule{Team: team, Rounds: rounds, Games: games}, nil
	})
}

// CurrentTournaments returns a summary of the running tournament of every guild that has one, ordered by guild id
// Postconditions: Returns the first error other than registry.ErrNoCurrentTournament, such as a lock timeout
func (a *API) CurrentTournaments(ctx context.Context) ([]Summary, error) {
	summaries := []Summary{}
	for _, guildID := range a.Directory.GuildIDs() {
		summary, err := a.Summary(ctx, guildID)
		if errors.Is(err, registry.ErrNoCurrentTournament) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("guild %d: %w", guildID, err)
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// Players returns every player in the current tournament
func (a *API) Players(ctx context.Context, guildID uint64) ([]shared.Player, error) {
	return registry.Read(ctx, a.Registry(guildID), func(state *tournament.State) ([]shared.Player, error) {
		return state.Players(), nil
	})
}

// PastTournaments returns the most recent archived tournaments of the guild
func (a *API) PastTournaments(ctx context.Context, guildID uint64, limit int64) ([]store.TournamentRecord, error) {
	if a.Store == nil {
		return nil, ErrArchiveDisabled
	}
	return a.Store.ListTournaments(ctx, guildID, limit)
}

// endregion

// errNotCurrent signals that the named tournament is not the running one
var errNotCurrent = errors.New("tournament is not the current tournament")

// moveStage runs prepare and, if it succeeds, moves the tournament to stage, all under the write lock
func (a *API) moveStage(ctx context.Context, guildID uint64, stage tournament.Stage, prepare func(*tournament.State) error) (StageUpdate, error) {
	return registry.ReadWrite(ctx, a.Registry(guildID), func(state *tournament.State) (StageUpdate, error) {
		if err := prepare(state); err != nil {
			return StageUpdate{}, err
		}
		title, body, err := state.UpdateStage(stage)
		if err != nil {
			return StageUpdate{}, err
		}
		logStage(state)
		return StageUpdate{Stage: stage, Title: title, Body: body}, nil
	})
}

func requireStage(state *tournament.State, stage tournament.Stage) error {
	if state.Stage() != stage {
		return wrongStage(state)
	}
	return nil
}

func wrongStage(state *tournament.State) error {
	return fmt.Errorf("%w: the tournament is in the %s stage", ErrWrongStage, state.Stage())
}

func directorResult(added bool) error {
	if !added {
		return ErrAlreadyDirector
	}
	return nil
}

func matchTeam(state *tournament.State, name string) (shared.Team, error) {
	teams, err := matchTeams(state, []string{name})
	if err != nil {
		return shared.Team{}, err
	}
	return teams[0], nil
}

// matchTeams resolves every name, reporting all the names that did not match at once
func matchTeams(state *tournament.State, names []string) ([]shared.Team, error) {
	teams := state.Teams()
	valid := make([]string, 0, len(teams))
	for _, team := range teams {
		valid = append(valid, team.Name)
	}

	matched, invalid := logic.CheckTeamNames(names, valid)
	if len(invalid) > 0 {
		return nil, errors.Join(invalid...)
	}

	result := make([]shared.Team, 0, len(matched))
	for _, name := range matched {
		team, _ := state.TryGetTeamFromName(name)
		result = append(result, team)
	}
	return result, nil
}

func addPlayer(state *tournament.State, userID uint64, team shared.Team) (shared.Team, error) {
	if current, ok := state.TryGetPlayerTeam(userID); ok {
		return current, fmt.Errorf("%w: already playing for '%s'", ErrPlayerOnTeam, current.Name)
	}
	if !state.TryAddPlayer(shared.Player{ID: userID, Team: team}) {
		return shared.Team{}, fmt.Errorf("%w: '%s'", ErrTeamNotFound, team.Name)
	}
	return team, nil
}

func logStage(state *tournament.State) {
	log.Printf("[guild %d] tournament '%s' is now in the %s stage", state.GuildID, state.Name, state.Stage())
}
