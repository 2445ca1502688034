/* generator_test.go
 * Contains unit tests for generator.go
 */

package schedule

import (
	"fmt"
	"testing"

	"tournament-assistant/api/shared"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sequenceRandom returns values from a fixed sequence, wrapping around, so shuffles are repeatable
type sequenceRandom struct {
	values []int
	index  int
}

func (r *sequenceRandom) IntN(n int) int {
	if len(r.values) == 0 || n <= 0 {
		return 0
	}
	value := r.values[r.index%len(r.values)]
	r.index++
	return value % n
}

func makeTeams(prefix string, count int, bracket int) []shared.Team {
	teams := make([]shared.Team, count)
	for i := range count {
		teams[i] = shared.Team{Name: fmt.Sprintf("%s%d", prefix, i+1), Bracket: bracket}
	}
	return teams
}

func makeReaders(count int) []shared.Reader {
	readers := make([]shared.Reader, count)
	for i := range count {
		readers[i] = shared.Reader{ID: uint64(100 + i), Name: fmt.Sprintf("Reader %d", i+1)}
	}
	return readers
}

func pairKey(a shared.Team, b shared.Team) string {
	if a.Key() > b.Key() {
		a, b = b, a
	}
	return a.Key() + "|" + b.Key()
}

// assertValidSchedule checks that nobody is double booked in a round and that every pair in a bracket meets
// exactly roundRobins times
func assertValidSchedule(t *testing.T, schedule *shared.Schedule, teamsByBracket [][]shared.Team, roundRobins int) {
	t.Helper()

	bracketOf := make(map[string]int)
	for b, bracket := range teamsByBracket {
		for _, team := range bracket {
			bracketOf[team.Key()] = b
		}
	}

	pairs := make(map[string]int)
	for r, round := range schedule.Rounds {
		teamsSeen := make(map[string]bool)
		readersSeen := make(map[uint64]bool)
		for _, game := range round.Games {
			first, second := game.Teams[0], game.Teams[1]
			assert.False(t, first.Equals(second), "round %d: team plays itself", r+1)
			assert.Equal(t, bracketOf[first.Key()], bracketOf[second.Key()], "round %d: cross bracket game", r+1)
			assert.False(t, teamsSeen[first.Key()], "round %d: %s double booked", r+1, first.Name)
			assert.False(t, teamsSeen[second.Key()], "round %d: %s double booked", r+1, second.Name)
			assert.False(t, readersSeen[game.Reader.ID], "round %d: reader %d double booked", r+1, game.Reader.ID)
			teamsSeen[first.Key()] = true
			teamsSeen[second.Key()] = true
			readersSeen[game.Reader.ID] = true
			pairs[pairKey(first, second)]++
		}
	}

	expectedPairs := 0
	for _, bracket := range teamsByBracket {
		for i := range bracket {
			for j := i + 1; j < len(bracket); j++ {
				expectedPairs++
				assert.Equal(t, roundRobins, pairs[pairKey(bracket[i], bracket[j])],
					"%s vs %s", bracket[i].Name, bracket[j].Name)
			}
		}
	}
	assert.Len(t, pairs, expectedPairs)
}

// region Scenario tests

func TestGenerate_TwoTeamsOneReader(t *testing.T) {
	teams := makeTeams("Team ", 2, 0)
	readers := makeReaders(1)

	schedule, err := Generate([][]shared.Team{teams}, readers, 1)
	require.NoError(t, err)

	require.Len(t, schedule.Rounds, 1)
	require.Len(t, schedule.Rounds[0].Games, 1)
	game := schedule.Rounds[0].Games[0]
	assert.True(t, game.HasTeam(teams[0]))
	assert.True(t, game.HasTeam(teams[1]))
	assert.Equal(t, readers[0], game.Reader)
}

func TestGenerate_FourTeamsTwoRoundRobins(t *testing.T) {
	teams := makeTeams("Team ", 4, 0)

	schedule, err := Generate([][]shared.Team{teams}, makeReaders(2), 2)
	require.NoError(t, err)

	assert.Len(t, schedule.Rounds, 6)
	for _, round := range schedule.Rounds {
		assert.Len(t, round.Games, 2)
	}
	for _, team := range teams {
		_, games := schedule.GamesForTeam(team)
		assert.Len(t, games, 6)
	}
	assertValidSchedule(t, schedule, [][]shared.Team{teams}, 2)
}

func TestGenerate_OddBracketGivesOneTeamABye(t *testing.T) {
	teams := makeTeams("Team ", 5, 0)

	schedule, err := Generate([][]shared.Team{teams}, makeReaders(2), 1)
	require.NoError(t, err)

	assert.Len(t, schedule.Rounds, 5)
	for _, round := range schedule.Rounds {
		assert.Len(t, round.Games, 2)
	}
	assertValidSchedule(t, schedule, [][]shared.Team{teams}, 1)
}

// endregion

// region Property tests

func TestGenerate_RoundRobinCompleteness(t *testing.T) {
	for size := 2; size <= 11; size++ {
		for roundRobins := 1; roundRobins <= 3; roundRobins++ {
			t.Run(fmt.Sprintf("%d teams x%d", size, roundRobins), func(t *testing.T) {
				teams := makeTeams("T", size, 0)
				schedule, err := Generate([][]shared.Team{teams}, makeReaders(size/2), roundRobins)
				require.NoError(t, err)

				assert.Len(t, schedule.Rounds, roundRobins*RoundsPerRoundRobin(size))
				assertValidSchedule(t, schedule, [][]shared.Team{teams}, roundRobins)
			})
		}
	}
}

func TestGenerate_MultipleBrackets(t *testing.T) {
	teamsByBracket := [][]shared.Team{
		makeTeams("A", 4, 0),
		makeTeams("B", 5, 1),
		makeTeams("C", 2, 2),
	}
	readers := makeReaders(RoomsNeeded(teamsByBracket))

	schedule, err := Generate(teamsByBracket, readers, 1)
	require.NoError(t, err)

	// The largest bracket (5 teams with a bye) decides the number of rounds
	require.Len(t, schedule.Rounds, 5)
	assert.Len(t, schedule.Rounds[0].Games, 2+2+1)
	assert.Len(t, schedule.Rounds[1].Games, 2+2)
	assert.Len(t, schedule.Rounds[3].Games, 2)
	assertValidSchedule(t, schedule, teamsByBracket, 1)
}

func TestGenerate_ReadersAreNotSharedBetweenBrackets(t *testing.T) {
	teamsByBracket := [][]shared.Team{makeTeams("A", 4, 0), makeTeams("B", 4, 1)}

	schedule, err := Generate(teamsByBracket, makeReaders(4), 2)
	require.NoError(t, err)

	readerBracket := make(map[uint64]int)
	for _, round := range schedule.Rounds {
		for _, game := range round.Games {
			bracket, ok := readerBracket[game.Reader.ID]
			if !ok {
				readerBracket[game.Reader.ID] = game.Teams[0].Bracket
				continue
			}
			assert.Equal(t, bracket, game.Teams[0].Bracket)
		}
	}
	assert.Len(t, readerBracket, 4)
}

func TestGenerate_PairingsIgnoreRandomness(t *testing.T) {
	teamsByBracket := [][]shared.Team{makeTeams("A", 6, 0), makeTeams("B", 3, 1)}
	readers := makeReaders(4)

	first, err := NewGenerator(&sequenceRandom{values: []int{0}}).Generate(teamsByBracket, readers, 2)
	require.NoError(t, err)
	second, err := NewGenerator(&sequenceRandom{values: []int{3, 1, 4, 1, 5, 9, 2, 6}}).Generate(teamsByBracket, readers, 2)
	require.NoError(t, err)

	pairings := func(schedule *shared.Schedule) [][]string {
		var result [][]string
		for _, round := range schedule.Rounds {
			var keys []string
			for _, game := range round.Games {
				keys = append(keys, pairKey(game.Teams[0], game.Teams[1]))
			}
			result = append(result, keys)
		}
		return result
	}
	if diff := cmp.Diff(pairings(first), pairings(second)); diff != "" {
		t.Errorf("pairings differ (-first +second):\n%s", diff)
	}
}

func TestGenerate_DuplicateReadersCountOnce(t *testing.T) {
	teams := makeTeams("T", 4, 0)
	readers := []shared.Reader{{ID: 1, Name: "One"}, {ID: 1, Name: "One again"}}

	_, err := Generate([][]shared.Team{teams}, readers, 1)
	assert.ErrorIs(t, err, ErrNotEnoughReaders)
}

// endregion

// region Precondition tests

func TestGenerate_NotEnoughReaders(t *testing.T) {
	for size := 4; size <= 12; size++ {
		for readerCount := 1; readerCount < size/2; readerCount++ {
			teams := makeTeams("T", size, 0)
			schedule, err := Generate([][]shared.Team{teams}, makeReaders(readerCount), 1)
			assert.ErrorIs(t, err, ErrNotEnoughReaders, "%d teams, %d readers", size, readerCount)
			assert.Nil(t, schedule)
		}
	}
}

func TestGenerate_NotEnoughReadersAcrossBrackets(t *testing.T) {
	teamsByBracket := [][]shared.Team{makeTeams("A", 4, 0), makeTeams("B", 4, 1)}

	_, err := Generate(teamsByBracket, makeReaders(3), 1)
	assert.ErrorIs(t, err, ErrNotEnoughReaders)
}

func TestGenerate_InvalidRoundRobins(t *testing.T) {
	_, err := Generate([][]shared.Team{makeTeams("T", 4, 0)}, makeReaders(2), 0)
	assert.ErrorIs(t, err, ErrInvalidRoundRobins)
}

func TestGenerate_TooManyBrackets(t *testing.T) {
	var teamsByBracket [][]shared.Team
	for i := range MaxBrackets + 1 {
		teamsByBracket = append(teamsByBracket, makeTeams(fmt.Sprintf("B%d-", i), 2, i))
	}

	_, err := Generate(teamsByBracket, makeReaders(MaxBrackets+1), 1)
	assert.ErrorIs(t, err, ErrTooManyBrackets)
}

func TestGenerate_NoBrackets(t *testing.T) {
	_, err := Generate(nil, makeReaders(1), 1)
	assert.ErrorIs(t, err, ErrNoBrackets)
}

func TestGenerate_OneTeam(t *testing.T) {
	_, err := Generate([][]shared.Team{makeTeams("T", 1, 0)}, makeReaders(1), 1)
	assert.ErrorIs(t, err, ErrNotEnoughTeams)
}

func TestGenerate_BracketTooSmall(t *testing.T) {
	teamsByBracket := [][]shared.Team{makeTeams("A", 4, 0), makeTeams("B", 1, 1)}

	_, err := Generate(teamsByBracket, makeReaders(3), 1)
	assert.ErrorIs(t, err, ErrBracketTooSmall)
}

func TestGenerate_NoReaders(t *testing.T) {
	_, err := Generate([][]shared.Team{makeTeams("T", 2, 0)}, nil, 1)
	assert.ErrorIs(t, err, ErrNoReaders)
}

func TestGenerate_DuplicateTeamAcrossBrackets(t *testing.T) {
	teamsByBracket := [][]shared.Team{
		{{Name: "Alpha"}, {Name: "Beta"}},
		{{Name: "ALPHA", Bracket: 1}, {Name: "Gamma", Bracket: 1}},
	}

	_, err := Generate(teamsByBracket, makeReaders(2), 1)
	assert.ErrorIs(t, err, ErrDuplicateTeam)
}

// endregion

// region rotate tests

func TestRotate_ReturnsToStartAfterFullCycle(t *testing.T) {
	top := []int{0, 1, 2}
	bottom := []int{3, 4, 5}

	for range 5 {
		rotate(top, bottom)
		assert.Equal(t, 0, top[0])
	}

	assert.Equal(t, []int{0, 1, 2}, top)
	assert.Equal(t, []int{3, 4, 5}, bottom)
}

func TestRotate_SingleColumnDoesNothing(t *testing.T) {
	top := []int{0}
	bottom := []int{1}

	rotate(top, bottom)

	assert.Equal(t, []int{0}, top)
	assert.Equal(t, []int{1}, bottom)
}

// endregion
