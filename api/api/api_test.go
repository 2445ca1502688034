/* api_test.go
 * Contains unit tests for api.go, driving tournaments through every stage
 */

package api

import (
	"context"
	"errors"
	"testing"
	"time"

	"tournament-assistant/api/registry"
	"tournament-assistant/api/schedule"
	"tournament-assistant/api/shared"
	"tournament-assistant/api/tournament"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	guildID    uint64 = 100
	directorID uint64 = 1
	otherUser  uint64 = 2
)

var testReaders = []shared.Reader{{ID: 11, Name: "Alice"}, {ID: 12, Name: "Bob"}}

func newTestAPI(t *testing.T) (*API, *MockStore) {
	t.Helper()
	mockStore := NewMockStore()
	a := NewAPI(mockStore, time.Second)
	a.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	a.newID = func() string { return "record-1" }
	return a, mockStore
}

// advanceTo drives a new tournament called "Open" up to the given stage
func advanceTo(t *testing.T, a *API, stage tournament.Stage) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, a.AddDirector(ctx, guildID, "Open", directorID))
	if stage == tournament.Created {
		return
	}
	_, err := a.Setup(ctx, guildID, "Open", directorID, false)
	require.NoError(t, err)
	if stage == tournament.AddReaders {
		return
	}
	_, err = a.AddReaders(ctx, guildID, testReaders)
	require.NoError(t, err)
	_, err = a.FinishReaders(ctx, guildID)
	require.NoError(t, err)
	if stage == tournament.SetRoundRobins {
		return
	}
	_, err = a.SetRoundRobins(ctx, guildID, 1)
	require.NoError(t, err)
	if stage == tournament.AddTeams {
		return
	}
	_, _, err = a.AddTeams(ctx, guildID, [][]string{{"Alpha", "Beta", "Gamma", "Delta"}})
	require.NoError(t, err)
	if stage == tournament.AddPlayers {
		return
	}
	result, err := a.Start(ctx, guildID)
	require.NoError(t, err)
	if stage == tournament.BotSetup {
		return
	}
	_, err = a.CompleteSetup(ctx, guildID, result.Schedule, []uint64{500, 501}, tournament.RoleIDs{DirectorRoleID: 900})
	require.NoError(t, err)
	if stage == tournament.RunningTournament {
		return
	}
	_, err = a.BeginRebracket(ctx, guildID)
	require.NoError(t, err)
}

func currentStage(t *testing.T, a *API) tournament.Stage {
	t.Helper()
	stage, err := registry.Read(context.Background(), a.Registry(guildID), func(state *tournament.State) (tournament.Stage, error) {
		return state.Stage(), nil
	})
	require.NoError(t, err)
	return stage
}

// region Director tests

func TestAddDirector_CreatesPendingTournament(t *testing.T) {
	a, _ := newTestAPI(t)
	ctx := context.Background()

	require.NoError(t, a.AddDirector(ctx, guildID, "Open", directorID))
	require.NoError(t, a.AddDirector(ctx, guildID, "Open", otherUser))

	assert.Equal(t, []string{"Open"}, a.PendingTournaments(guildID))
	assert.ErrorIs(t, a.AddDirector(ctx, guildID, "Open", directorID), ErrAlreadyDirector)
	assert.ErrorIs(t, a.AddDirector(ctx, guildID, "", directorID), ErrInvalidTournamentName)
}

func TestAddDirector_UpdatesCurrentTournament(t *testing.T) {
	a, _ := newTestAPI(t)
	ctx := context.Background()
	advanceTo(t, a, tournament.AddReaders)

	require.NoError(t, a.AddDirector(ctx, guildID, "Open", otherUser))

	canManage, err := a.CanManage(ctx, guildID, otherUser, false)
	require.NoError(t, err)
	assert.True(t, canManage)
	assert.Empty(t, a.PendingTournaments(guildID))
}

func TestRemoveDirector(t *testing.T) {
	a, _ := newTestAPI(t)
	ctx := context.Background()
	require.NoError(t, a.AddDirector(ctx, guildID, "Open", directorID))

	require.NoError(t, a.RemoveDirector(ctx, guildID, "Open", directorID))
	assert.ErrorIs(t, a.RemoveDirector(ctx, guildID, "Open", directorID), ErrNotDirector)
	assert.ErrorIs(t, a.RemoveDirector(ctx, guildID, "Missing", directorID), registry.ErrTournamentNotFound)
}

func TestCancelTournament(t *testing.T) {
	a, _ := newTestAPI(t)
	ctx := context.Background()
	require.NoError(t, a.AddDirector(ctx, guildID, "Open", directorID))

	assert.ErrorIs(t, a.CancelTournament(guildID, "Open", otherUser, false), ErrPermissionDenied)
	assert.ErrorIs(t, a.CancelTournament(guildID, "Missing", directorID, false), registry.ErrTournamentNotFound)

	require.NoError(t, a.CancelTournament(guildID, "Open", otherUser, true))
	assert.Empty(t, a.PendingTournaments(guildID))
	_, err := a.Setup(ctx, guildID, "Open", directorID, false)
	assert.ErrorIs(t, err, registry.ErrTournamentNotFound)
}

func TestCancelTournament_RunningTournamentIsNotPending(t *testing.T) {
	a, _ := newTestAPI(t)
	advanceTo(t, a, tournament.AddReaders)

	err := a.CancelTournament(guildID, "Open", directorID, false)
	assert.ErrorIs(t, err, registry.ErrTournamentNotFound)
	assert.Equal(t, tournament.AddReaders, currentStage(t, a))
}

func TestCanManage(t *testing.T) {
	a, _ := newTestAPI(t)
	ctx := context.Background()

	_, err := a.CanManage(ctx, guildID, directorID, false)
	assert.ErrorIs(t, err, registry.ErrNoCurrentTournament)

	advanceTo(t, a, tournament.AddReaders)

	canManage, err := a.CanManage(ctx, guildID, directorID, false)
	require.NoError(t, err)
	assert.True(t, canManage)

	canManage, err = a.CanManage(ctx, guildID, otherUser, false)
	require.NoError(t, err)
	assert.False(t, canManage)

	canManage, err = a.CanManage(ctx, guildID, otherUser, true)
	require.NoError(t, err)
	assert.True(t, canManage)
}

// endregion

// region Setup tests

func TestSetup_RequiresDirectorOrAdmin(t *testing.T) {
	a, _ := newTestAPI(t)
	ctx := context.Background()
	require.NoError(t, a.AddDirector(ctx, guildID, "Open", directorID))

	_, err := a.Setup(ctx, guildID, "Open", otherUser, false)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	update, err := a.Setup(ctx, guildID, "Open", otherUser, true)
	require.NoError(t, err)
	assert.Equal(t, tournament.AddReaders, update.Stage)
	assert.Equal(t, "Add Readers", update.Title)

	name, err := a.CurrentTournamentName(ctx, guildID)
	require.NoError(t, err)
	assert.Equal(t, "Open", name)
}

func TestSetup_UnknownTournament(t *testing.T) {
	a, _ := newTestAPI(t)

	_, err := a.Setup(context.Background(), guildID, "Missing", directorID, true)
	assert.ErrorIs(t, err, registry.ErrTournamentNotFound)
}

func TestSetup_OnlyOneCurrentTournament(t *testing.T) {
	a, _ := newTestAPI(t)
	ctx := context.Background()
	advanceTo(t, a, tournament.AddReaders)
	require.NoError(t, a.AddDirector(ctx, guildID, "Second", directorID))

	_, err := a.Setup(ctx, guildID, "Second", directorID, false)
	assert.ErrorIs(t, err, registry.ErrTournamentAlreadyRunning)
	assert.Equal(t, []string{"Second"}, a.PendingTournaments(guildID))
}

func TestAddReaders(t *testing.T) {
	a, _ := newTestAPI(t)
	ctx := context.Background()
	advanceTo(t, a, tournament.AddReaders)

	added, err := a.AddReaders(ctx, guildID, testReaders)
	require.NoError(t, err)
	assert.Equal(t, testReaders, added)

	_, err = a.AddReaders(ctx, guildID, testReaders[:1])
	assert.ErrorIs(t, err, ErrAlreadyReader)

	isReader, err := a.IsReader(ctx, guildID, 11)
	require.NoError(t, err)
	assert.True(t, isReader)

	require.NoError(t, a.RemoveReader(ctx, guildID, 11))
	assert.ErrorIs(t, a.RemoveReader(ctx, guildID, 11), ErrNotAReader)
}

func TestFinishReaders_RequiresAReader(t *testing.T) {
	a, _ := newTestAPI(t)
	ctx := context.Background()
	advanceTo(t, a, tournament.AddReaders)

	_, err := a.FinishReaders(ctx, guildID)
	assert.ErrorIs(t, err, schedule.ErrNoReaders)
	assert.Equal(t, tournament.AddReaders, currentStage(t, a))
}

func TestSetRoundRobins_Range(t *testing.T) {
	a, _ := newTestAPI(t)
	ctx := context.Background()
	advanceTo(t, a, tournament.SetRoundRobins)

	for _, count := range []int{0, -1, MaxRoundRobins + 1} {
		_, err := a.SetRoundRobins(ctx, guildID, count)
		assert.ErrorIs(t, err, ErrInvalidRoundRobins)
	}
	assert.Equal(t, tournament.SetRoundRobins, currentStage(t, a))

	update, err := a.SetRoundRobins(ctx, guildID, MaxRoundRobins)
	require.NoError(t, err)
	assert.Equal(t, tournament.AddTeams, update.Stage)
}

func TestAddTeams(t *testing.T) {
	a, _ := newTestAPI(t)
	ctx := context.Background()
	advanceTo(t, a, tournament.AddTeams)

	added, update, err := a.AddTeams(ctx, guildID, [][]string{{"Alpha", "Beta"}, {"Gamma", "Delta"}})
	require.NoError(t, err)
	assert.Equal(t, tournament.AddPlayers, update.Stage)
	assert.Equal(t, []shared.Team{
		{Name: "Alpha", Bracket: 0},
		{Name: "Beta", Bracket: 0},
		{Name: "Gamma", Bracket: 1},
		{Name: "Delta", Bracket: 1},
	}, added)
}

func TestAddTeams_Errors(t *testing.T) {
	a, _ := newTestAPI(t)
	ctx := context.Background()
	advanceTo(t, a, tournament.AddTeams)

	_, _, err := a.AddTeams(ctx, guildID, [][]string{{"Alpha"}})
	assert.ErrorIs(t, err, schedule.ErrNotEnoughTeams)

	tooMany := make([][]string, schedule.MaxBrackets+1)
	for i := range tooMany {
		tooMany[i] = []string{"A" + string(rune('a'+i)), "B" + string(rune('a'+i))}
	}
	_, _, err = a.AddTeams(ctx, guildID, tooMany)
	assert.ErrorIs(t, err, schedule.ErrTooManyBrackets)

	summary, err := a.Summary(ctx, guildID)
	require.NoError(t, err)
	assert.Empty(t, summary.Teams)
	assert.Equal(t, "AddTeams", summary.Stage)
}

func TestGoBack(t *testing.T) {
	a, _ := newTestAPI(t)
	ctx := context.Background()
	advanceTo(t, a, tournament.AddPlayers)

	update, err := a.GoBack(ctx, guildID)
	require.NoError(t, err)
	assert.Equal(t, tournament.AddTeams, update.Stage)
	assert.Equal(t, "Add Teams", update.Title)

	summary, err := a.Summary(ctx, guildID)
	require.NoError(t, err)
	assert.Empty(t, summary.Teams)
}

// endregion

// region Player tests

func TestAddPlayer_FuzzyMatch(t *testing.T) {
	a, _ := newTestAPI(t)
	ctx := context.Background()
	advanceTo(t, a, tournament.AddPlayers)

	team, err := a.AddPlayer(ctx, guildID, 50, "gma")
	require.NoError(t, err)
	assert.Equal(t, "Gamma", team.Name)

	_, err = a.AddPlayer(ctx, guildID, 50, "Alpha")
	assert.ErrorIs(t, err, ErrPlayerOnTeam)

	_, err = a.AddPlayer(ctx, guildID, 51, "zzzz")
	assert.ErrorIs(t, err, ErrTeamNotFound)
}

func TestAddPlayer_AmbiguousName(t *testing.T) {
	a, _ := newTestAPI(t)
	ctx := context.Background()
	advanceTo(t, a, tournament.AddTeams)
	_, _, err := a.AddTeams(ctx, guildID, [][]string{{"Team A", "Team B"}})
	require.NoError(t, err)

	_, err = a.AddPlayer(ctx, guildID, 50, "team")
	assert.ErrorIs(t, err, ErrAmbiguousTeam)

	players, err := a.Players(ctx, guildID)
	require.NoError(t, err)
	assert.Empty(t, players)
}

func TestAddPlayer_WrongStage(t *testing.T) {
	a, _ := newTestAPI(t)
	advanceTo(t, a, tournament.AddTeams)

	_, err := a.AddPlayer(context.Background(), guildID, 50, "Alpha")
	assert.ErrorIs(t, err, ErrWrongStage)
}

func TestAddPlayerBySymbol(t *testing.T) {
	a, _ := newTestAPI(t)
	ctx := context.Background()
	advanceTo(t, a, tournament.AddPlayers)

	require.NoError(t, a.RegisterJoinMessage(ctx, guildID, 700, map[string]string{"🇦": "Alpha", "🇧": "Beta"}))

	ids, err := a.JoinMessageIDs(ctx, guildID)
	require.NoError(t, err)
	assert.Equal(t, []uint64{700}, ids)

	team, err := a.AddPlayerBySymbol(ctx, guildID, 700, 50, "🇧")
	require.NoError(t, err)
	assert.Equal(t, "Beta", team.Name)

	_, err = a.AddPlayerBySymbol(ctx, guildID, 701, 51, "🇦")
	assert.ErrorIs(t, err, ErrNotJoinMessage)

	_, err = a.AddPlayerBySymbol(ctx, guildID, 700, 51, "🇿")
	assert.ErrorIs(t, err, ErrTeamNotFound)
}

func TestRegisterJoinMessage_UnknownTeam(t *testing.T) {
	a, _ := newTestAPI(t)
	advanceTo(t, a, tournament.AddPlayers)

	err := a.RegisterJoinMessage(context.Background(), guildID, 700, map[string]string{"🇦": "Nope"})
	assert.ErrorIs(t, err, ErrTeamNotFound)
}

func TestRemovePlayer(t *testing.T) {
	a, _ := newTestAPI(t)
	ctx := context.Background()
	advanceTo(t, a, tournament.AddPlayers)

	_, err := a.AddPlayer(ctx, guildID, 50, "Alpha")
	require.NoError(t, err)

	team, err := a.RemovePlayer(ctx, guildID, 50)
	require.NoError(t, err)
	assert.Equal(t, "Alpha", team.Name)

	_, err = a.RemovePlayer(ctx, guildID, 50)
	assert.ErrorIs(t, err, ErrNotAPlayer)
}

// endregion

// region Start and running tests

func TestStart_SchedulesAndWaitsForSetup(t *testing.T) {
	a, _ := newTestAPI(t)
	ctx := context.Background()
	advanceTo(t, a, tournament.AddPlayers)
	_, err := a.AddPlayer(ctx, guildID, 50, "Alpha")
	require.NoError(t, err)

	result, err := a.Start(ctx, guildID)
	require.NoError(t, err)
	assert.Equal(t, tournament.BotSetup, result.Update.Stage)
	require.NotNil(t, result.Schedule)
	assert.Len(t, result.Schedule.Rounds, 3)
	assert.Len(t, result.Teams, 4)
	assert.Len(t, result.Players, 1)
	assert.Equal(t, testReaders, result.Readers)

	_, err = a.Schedule(ctx, guildID)
	assert.ErrorIs(t, err, ErrWrongStage)

	update, err := a.CompleteSetup(ctx, guildID, result.Schedule, []uint64{500}, tournament.RoleIDs{DirectorRoleID: 900})
	require.NoError(t, err)
	assert.Equal(t, tournament.RunningTournament, update.Stage)
	assert.Equal(t, "Tournament Started", update.Title)

	stored, err := a.Schedule(ctx, guildID)
	require.NoError(t, err)
	assert.Equal(t, result.Schedule, stored)
	assert.NotSame(t, result.Schedule, stored)
}

func TestStart_SchedulerErrorLeavesStateUnchanged(t *testing.T) {
	a, _ := newTestAPI(t)
	ctx := context.Background()
	advanceTo(t, a, tournament.AddTeams)
	// Three brackets of two need three rooms but there are only two readers
	_, _, err := a.AddTeams(ctx, guildID, [][]string{{"A", "B"}, {"C", "D"}, {"E", "F"}})
	require.NoError(t, err)

	_, err = a.Start(ctx, guildID)
	assert.ErrorIs(t, err, schedule.ErrNotEnoughReaders)
	assert.Equal(t, tournament.AddPlayers, currentStage(t, a))
}

func TestRebracket(t *testing.T) {
	a, _ := newTestAPI(t)
	ctx := context.Background()
	advanceTo(t, a, tournament.Rebracketing)

	before, err := a.Schedule(ctx, guildID)
	require.NoError(t, err)

	result, err := a.Rebracket(ctx, guildID, [][]string{{"alpha", "delta"}, {"beta", "gamma"}})
	require.NoError(t, err)
	assert.Equal(t, tournament.RunningTournament, result.Update.Stage)
	require.Len(t, result.Rounds, 1)
	assert.Len(t, result.Rounds[0].Games, 2)
	assert.Equal(t, len(before.Rounds)+1, result.FirstRound)

	after, err := a.Schedule(ctx, guildID)
	require.NoError(t, err)
	assert.Len(t, after.Rounds, len(before.Rounds)+1)

	summary, err := a.Summary(ctx, guildID)
	require.NoError(t, err)
	brackets := make(map[string]int)
	for _, team := range summary.Teams {
		brackets[team.Name] = team.Bracket
	}
	assert.Equal(t, map[string]int{"Alpha": 0, "Delta": 0, "Beta": 1, "Gamma": 1}, brackets)
}

func TestRebracket_ErrorLeavesScheduleUnchanged(t *testing.T) {
	a, _ := newTestAPI(t)
	ctx := context.Background()
	advanceTo(t, a, tournament.Rebracketing)

	before, err := a.Schedule(ctx, guildID)
	require.NoError(t, err)

	_, err = a.Rebracket(ctx, guildID, [][]string{{"Alpha"}, {"Beta", "Gamma", "Delta"}})
	assert.ErrorIs(t, err, schedule.ErrBracketTooSmall)

	after, err := a.Schedule(ctx, guildID)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, tournament.Rebracketing, currentStage(t, a))
}

func TestRebracket_RequiresRebracketingStage(t *testing.T) {
	a, _ := newTestAPI(t)
	advanceTo(t, a, tournament.RunningTournament)

	_, err := a.Rebracket(context.Background(), guildID, [][]string{{"Alpha", "Beta"}})
	assert.ErrorIs(t, err, ErrWrongStage)
}

func TestRebracket_ReportsEveryUnknownTeam(t *testing.T) {
	a, _ := newTestAPI(t)
	ctx := context.Background()
	advanceTo(t, a, tournament.Rebracketing)

	_, err := a.Rebracket(ctx, guildID, [][]string{{"Alpha", "Nowhere"}, {"Beta", "Elsewhere"}})

	assert.ErrorIs(t, err, ErrTeamNotFound)
	assert.Contains(t, err.Error(), "Nowhere")
	assert.Contains(t, err.Error(), "Elsewhere")
	assert.Equal(t, tournament.Rebracketing, currentStage(t, a))
}

func TestRebracket_FirstRoundFollowsEarlierRebrackets(t *testing.T) {
	a, _ := newTestAPI(t)
	ctx := context.Background()
	advanceTo(t, a, tournament.Rebracketing)

	first, err := a.Rebracket(ctx, guildID, [][]string{{"Alpha", "Beta", "Gamma", "Delta"}})
	require.NoError(t, err)
	_, err = a.BeginRebracket(ctx, guildID)
	require.NoError(t, err)

	second, err := a.Rebracket(ctx, guildID, [][]string{{"Alpha", "Delta"}, {"Beta", "Gamma"}})
	require.NoError(t, err)
	assert.Equal(t, first.FirstRound+len(first.Rounds), second.FirstRound)
}

func TestFinals(t *testing.T) {
	a, _ := newTestAPI(t)
	ctx := context.Background()
	advanceTo(t, a, tournament.RunningTournament)

	_, _, err := a.Finals(ctx, guildID, 99, "Alpha", "Beta")
	assert.ErrorIs(t, err, ErrNotAReader)
	_, _, err = a.Finals(ctx, guildID, 11, "Alpha", "alpha")
	assert.ErrorIs(t, err, ErrSameTeam)
	_, _, err = a.Finals(ctx, guildID, 11, "Nowhere", "Elsewhere")
	assert.ErrorIs(t, err, ErrTeamNotFound)
	assert.Contains(t, err.Error(), "Nowhere")
	assert.Contains(t, err.Error(), "Elsewhere")

	final, update, err := a.Finals(ctx, guildID, 11, "Alpha", "Beta")
	require.NoError(t, err)
	assert.Equal(t, tournament.Finals, update.Stage)
	assert.Equal(t, "Alpha", final.Teams[0].Name)
	assert.Equal(t, "Beta", final.Teams[1].Name)
	assert.Equal(t, uint64(11), final.Reader.ID)

	stored, err := a.Schedule(ctx, guildID)
	require.NoError(t, err)
	last := stored.Rounds[len(stored.Rounds)-1]
	assert.Equal(t, []shared.Game{final}, last.Games)
}

// endregion

// region End tests

func TestEnd_ArchivesAndClears(t *testing.T) {
	a, mockStore := newTestAPI(t)
	ctx := context.Background()
	advanceTo(t, a, tournament.RunningTournament)

	result, err := a.End(ctx, guildID)
	require.NoError(t, err)
	assert.Equal(t, "Open", result.Name)
	assert.Equal(t, []uint64{500, 501}, result.ChannelIDs)
	assert.Equal(t, uint64(900), result.Roles.DirectorRoleID)

	_, err = a.CurrentTournamentName(ctx, guildID)
	assert.ErrorIs(t, err, registry.ErrNoCurrentTournament)

	require.Len(t, mockStore.Records, 1)
	record := mockStore.Records[0]
	assert.Equal(t, "record-1", record.ID)
	assert.Equal(t, "Complete", record.Stage)
	assert.Len(t, record.Teams, 4)
	assert.Len(t, record.Rounds, 3)

	past, err := a.PastTournaments(ctx, guildID, 5)
	require.NoError(t, err)
	assert.Len(t, past, 1)
}

func TestEnd_ArchiveFailureStillEnds(t *testing.T) {
	a, mockStore := newTestAPI(t)
	mockStore.ArchiveTournamentError = errors.New("mongo is down")
	ctx := context.Background()
	advanceTo(t, a, tournament.AddReaders)

	_, err := a.End(ctx, guildID)
	require.NoError(t, err)

	_, err = a.CurrentTournamentName(ctx, guildID)
	assert.ErrorIs(t, err, registry.ErrNoCurrentTournament)
}

func TestEnd_NoCurrentTournament(t *testing.T) {
	a, _ := newTestAPI(t)

	_, err := a.End(context.Background(), guildID)
	assert.ErrorIs(t, err, registry.ErrNoCurrentTournament)
}

func TestEnd_AllowsANewTournament(t *testing.T) {
	a, _ := newTestAPI(t)
	ctx := context.Background()
	advanceTo(t, a, tournament.AddPlayers)
	_, err := a.End(ctx, guildID)
	require.NoError(t, err)

	require.NoError(t, a.AddDirector(ctx, guildID, "Next", directorID))
	_, err = a.Setup(ctx, guildID, "Next", directorID, false)
	assert.NoError(t, err)
}

func TestEnd_CompleteTournamentIsStillCleared(t *testing.T) {
	a, mockStore := newTestAPI(t)
	ctx := context.Background()
	advanceTo(t, a, tournament.RunningTournament)
	err := a.Registry(guildID).TryReadWriteActionOnCurrentTournament(ctx, func(state *tournament.State) error {
		_, _, err := state.UpdateStage(tournament.Complete)
		return err
	})
	require.NoError(t, err)

	result, err := a.End(ctx, guildID)
	require.NoError(t, err)
	assert.Equal(t, "Open", result.Name)
	require.Len(t, mockStore.Records, 1)

	_, err = a.CurrentTournamentName(ctx, guildID)
	assert.ErrorIs(t, err, registry.ErrNoCurrentTournament)
	require.NoError(t, a.AddDirector(ctx, guildID, "Next", directorID))
	_, err = a.Setup(ctx, guildID, "Next", directorID, false)
	assert.NoError(t, err)
}

func TestEnd_TimeoutLeavesTournamentRunningAndRetrySucceeds(t *testing.T) {
	a, mockStore := newTestAPI(t)
	ctx := context.Background()
	a.lockTimeout = 50 * time.Millisecond
	advanceTo(t, a, tournament.RunningTournament)

	holding := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error)
	go func() {
		done <- a.Registry(guildID).TryReadWriteActionOnCurrentTournament(ctx, func(*tournament.State) error {
			close(holding)
			<-release
			return nil
		})
	}()
	<-holding

	_, err := a.End(ctx, guildID)
	assert.ErrorIs(t, err, registry.ErrUnableToGetAccess)
	close(release)
	require.NoError(t, <-done)

	assert.Equal(t, tournament.RunningTournament, currentStage(t, a))
	assert.Empty(t, mockStore.Records)

	_, err = a.End(ctx, guildID)
	require.NoError(t, err)
	_, err = a.CurrentTournamentName(ctx, guildID)
	assert.ErrorIs(t, err, registry.ErrNoCurrentTournament)
}

func TestTeamSchedule(t *testing.T) {
	a, _ := newTestAPI(t)
	ctx := context.Background()
	advanceTo(t, a, tournament.AddPlayers)

	_, err := a.TeamSchedule(ctx, guildID, "Alpha")
	assert.ErrorIs(t, err, ErrWrongStage)

	result, err := a.Start(ctx, guildID)
	require.NoError(t, err)
	_, err = a.CompleteSetup(ctx, guildID, result.Schedule, nil, tournament.RoleIDs{})
	require.NoError(t, err)

	games, err := a.TeamSchedule(ctx, guildID, "alp")
	require.NoError(t, err)
	assert.Equal(t, "Alpha", games.Team.Name)
	assert.Equal(t, []int{1, 2, 3}, games.Rounds)
	opponents := make([]string, 0, len(games.Games))
	for _, game := range games.Games {
		require.True(t, game.HasTeam(games.Team))
		for _, team := range game.Teams {
			if !team.Equals(games.Team) {
				opponents = append(opponents, team.Name)
			}
		}
	}
	assert.ElementsMatch(t, []string{"Beta", "Gamma", "Delta"}, opponents)
}

func TestCurrentTournaments(t *testing.T) {
	a, _ := newTestAPI(t)
	ctx := context.Background()
	advanceTo(t, a, tournament.AddReaders)
	a.Registry(guildID + 5)
	require.NoError(t, a.AddDirector(ctx, guildID+1, "Second", directorID))
	_, err := a.Setup(ctx, guildID+1, "Second", directorID, false)
	require.NoError(t, err)

	summaries, err := a.CurrentTournaments(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, guildID, summaries[0].GuildID)
	assert.Equal(t, "Open", summaries[0].Name)
	assert.Equal(t, guildID+1, summaries[1].GuildID)
	assert.Equal(t, "Second", summaries[1].Name)
}

func TestCurrentTournaments_None(t *testing.T) {
	a, _ := newTestAPI(t)

	summaries, err := a.CurrentTournaments(context.Background())
	require.NoError(t, err)
	assert.Empty(t, summaries)
}

func TestPastTournaments_ArchiveDisabled(t *testing.T) {
	a := NewAPI(nil, time.Second)

	_, err := a.PastTournaments(context.Background(), guildID, 5)
	assert.ErrorIs(t, err, ErrArchiveDisabled)
}

// endregion

// region Guild isolation tests

func TestGuildsAreIndependent(t *testing.T) {
	a, _ := newTestAPI(t)
	ctx := context.Background()
	advanceTo(t, a, tournament.AddReaders)

	_, err := a.CurrentTournamentName(ctx, guildID+1)
	assert.ErrorIs(t, err, registry.ErrNoCurrentTournament)

	require.NoError(t, a.AddDirector(ctx, guildID+1, "Open", directorID))
	_, err = a.Setup(ctx, guildID+1, "Open", directorID, false)
	assert.NoError(t, err)
	assert.ElementsMatch(t, []uint64{guildID, guildID + 1}, a.Directory.GuildIDs())
}

// endregion
